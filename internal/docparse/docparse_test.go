package docparse

import "testing"

const sampleReadme = `# 1. Two Sum

## Problem Description

Given an array of integers, return indices of the two numbers that add up to a target.

## Approach

Use a hash map for constant-time lookups.

## Complexity

- **Time:** O(n)
- **Space:** O(n)

## Notes

Watch out for duplicate values.
`

func TestExtract_AllSections(t *testing.T) {
	got := Extract(sampleReadme)
	if got.Statement != "Given an array of integers, return indices of the two numbers that add up to a target." {
		t.Errorf("statement = %q", got.Statement)
	}
	if got.Approach != "Use a hash map for constant-time lookups." {
		t.Errorf("approach = %q", got.Approach)
	}
	if got.TimeComplexity != "O(n)" {
		t.Errorf("time = %q", got.TimeComplexity)
	}
	if got.SpaceComplexity != "O(n)" {
		t.Errorf("space = %q", got.SpaceComplexity)
	}
	if got.Notes != "Watch out for duplicate values." {
		t.Errorf("notes = %q", got.Notes)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	got := Extract("")
	if got.Statement != DefaultStatement {
		t.Errorf("statement = %q, want default", got.Statement)
	}
	if got.Approach != DefaultApproach {
		t.Errorf("approach = %q, want default", got.Approach)
	}
	if got.TimeComplexity != DefaultComplexity || got.SpaceComplexity != DefaultComplexity {
		t.Errorf("complexity = %q / %q, want defaults", got.TimeComplexity, got.SpaceComplexity)
	}
	if got.Notes != "" {
		t.Errorf("notes = %q, want empty", got.Notes)
	}
}

func TestExtract_NoMarkers(t *testing.T) {
	got := Extract("just some free-form text\nwith no headings at all\n")
	if got.Statement != DefaultStatement || got.Approach != DefaultApproach {
		t.Errorf("got %+v, want all defaults", got)
	}
}

func TestExtract_SectionRunsToEnd(t *testing.T) {
	got := Extract("## Problem Description\n\nlast section, no trailing heading")
	if got.Statement != "last section, no trailing heading" {
		t.Errorf("statement = %q", got.Statement)
	}
}

func TestExtract_MissingSectionDoesNotAbortOthers(t *testing.T) {
	got := Extract("## Approach\n\ngreedy two-pointer scan\n")
	if got.Statement != DefaultStatement {
		t.Errorf("statement = %q, want default", got.Statement)
	}
	if got.Approach != "greedy two-pointer scan" {
		t.Errorf("approach = %q", got.Approach)
	}
}

func TestExtract_ComplexityOutsideSection(t *testing.T) {
	// The line scan is independent of section boundaries.
	got := Extract("- **Time:** O(log n)\n\n## Problem Description\n\nbody\n")
	if got.TimeComplexity != "O(log n)" {
		t.Errorf("time = %q", got.TimeComplexity)
	}
	if got.SpaceComplexity != DefaultComplexity {
		t.Errorf("space = %q, want default", got.SpaceComplexity)
	}
}

func TestExtract_ComplexityIndented(t *testing.T) {
	got := Extract("  - **Space:** O(1)  \n")
	if got.SpaceComplexity != "O(1)" {
		t.Errorf("space = %q", got.SpaceComplexity)
	}
}
