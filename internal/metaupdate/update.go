// Package metaupdate applies batches of key=value edits to a problem's
// metadata record.
package metaupdate

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kataforge/kataforge/internal/models"
)

// Edit is one key=value assignment. Raw holds the uncoerced value text.
type Edit struct {
	Key string
	Raw string
}

// ParseEdits converts CLI arguments of the form key=value into edits,
// preserving order. Arguments without an '=' are rejected.
func ParseEdits(args []string) ([]Edit, error) {
	edits := make([]Edit, 0, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: must be key=value", arg)
		}
		edits = append(edits, Edit{Key: key, Raw: raw})
	}
	return edits, nil
}

// Coerce converts a raw value string into its stored form. The rules are
// purely syntactic: the literals "true"/"false" (case-insensitive) become
// booleans, a value containing a comma becomes a list of trimmed substrings,
// anything else stays a string. A literal string containing a comma can
// therefore never be stored verbatim.
func Coerce(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = strings.TrimSpace(p)
		}
		return out
	}
	return raw
}

// Apply applies edits to meta in order; later edits to the same key win.
// It returns a warning message for every skipped edit. Skips never abort
// the batch.
//
// Keys with a single dot address one nested level: the parent container is
// created when absent (or when the existing value is not a container), which
// allows introducing fields the initial record shape omitted. Dotless keys
// are only set when already present as a top-level field.
func Apply(meta map[string]any, edits []Edit) []string {
	var warnings []string
	for _, e := range edits {
		value := Coerce(e.Raw)

		if parent, child, ok := strings.Cut(e.Key, "."); ok {
			container, isMap := meta[parent].(map[string]any)
			if !isMap {
				container = map[string]any{}
				meta[parent] = container
			}
			container[child] = value
			continue
		}

		if immutableKeys[e.Key] {
			warnings = append(warnings, fmt.Sprintf("key %q is immutable, skipping", e.Key))
			continue
		}
		if _, ok := meta[e.Key]; !ok {
			warnings = append(warnings, fmt.Sprintf("key %q not found in metadata, skipping", e.Key))
			continue
		}
		if e.Key == "difficulty" {
			if err := validateDifficulty(value); err != nil {
				warnings = append(warnings, fmt.Sprintf("difficulty %q: %v, skipping", e.Raw, err))
				continue
			}
		}
		meta[e.Key] = value
	}
	return warnings
}

// immutableKeys are record fields fixed at scaffold time: the problem
// number identifies the unit and created_at records its creation instant.
// Edits to them are skipped with a warning.
var immutableKeys = map[string]bool{
	"problem_number": true,
	"created_at":     true,
}

// validateDifficulty enforces the difficulty enum on incoming edits.
func validateDifficulty(value any) error {
	return validation.Validate(value,
		validation.In(models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard),
	)
}
