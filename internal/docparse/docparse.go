// Package docparse extracts named sections from a problem's README document.
//
// The document format is intentionally minimal: `## <Header>` markers open a
// section that runs until the next `\n## ` heading or the end of text, and
// complexity values live on lines prefixed `- **Time:**` / `- **Space:**`
// anywhere in the document. Extraction is a total function: malformed or
// empty input falls back to the documented defaults, never an error.
package docparse

import "strings"

// Section markers recognized in the document.
const (
	markerStatement = "## Problem Description"
	markerApproach  = "## Approach"
	markerNotes     = "## Notes"

	prefixTime  = "- **Time:**"
	prefixSpace = "- **Space:**"

	nextHeading = "\n## "
)

// Defaults used when a marker is absent from the document.
const (
	DefaultStatement  = "(Add the problem statement here.)"
	DefaultApproach   = "(Describe your thought process.)"
	DefaultComplexity = "O(...)"
)

// Sections is the fixed-shape result of extraction.
type Sections struct {
	Statement       string
	Approach        string
	TimeComplexity  string
	SpaceComplexity string
	Notes           string
}

// Extract parses the document text into its named sections.
func Extract(text string) Sections {
	return Sections{
		Statement:       section(text, markerStatement, DefaultStatement),
		Approach:        section(text, markerApproach, DefaultApproach),
		TimeComplexity:  lineAfter(text, prefixTime, DefaultComplexity),
		SpaceComplexity: lineAfter(text, prefixSpace, DefaultComplexity),
		Notes:           section(text, markerNotes, ""),
	}
}

// section returns the trimmed text between marker and the next heading
// (or end of text), or fallback when the marker is absent.
func section(text, marker, fallback string) string {
	i := strings.Index(text, marker)
	if i < 0 {
		return fallback
	}
	body := text[i+len(marker):]
	if j := strings.Index(body, nextHeading); j >= 0 {
		body = body[:j]
	}
	return strings.TrimSpace(body)
}

// lineAfter scans lines for prefix and returns the trimmed remainder of the
// first matching line. The scan ignores section boundaries.
func lineAfter(text, prefix, fallback string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(trimmed[len(prefix):])
		}
	}
	return fallback
}
