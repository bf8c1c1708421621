// Package models defines the domain types for kataforge.
package models

// LanguageEntry describes one supported language: the file extension used for
// its solution files (no leading dot) and the boilerplate written into new stubs.
type LanguageEntry struct {
	Ext         string `json:"ext"`
	Boilerplate string `json:"boilerplate"`
}

// Unit is a handle to one problem's folder on disk.
type Unit struct {
	Number int    `json:"number"`
	Dir    string `json:"dir"` // path relative to the repo root, e.g. "problems/0001_two-sum"
}

// Links holds the external references recorded for a problem.
type Links struct {
	LeetCode   string `json:"leetcode"`
	GitHub     string `json:"github"`
	Discussion string `json:"discussion"`
}

// Meta is the durable metadata record persisted as a problem's meta.json.
//
// It is written as a whole at scaffold time; later edits go through the
// metadata updater, which operates on the decoded JSON object so that
// previously absent nested fields can be introduced.
type Meta struct {
	ProblemNumber int      `json:"problem_number"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Template      string   `json:"template"`
	Languages     []string `json:"languages"`
	CreatedAt     string   `json:"created_at"`
	Solved        bool     `json:"solved"`
	NotesComplete bool     `json:"notes_complete"`
	Tags          []string `json:"tags"`
	Difficulty    string   `json:"difficulty"`
	Links         Links    `json:"links"`
}

// Difficulty levels accepted by the metadata updater.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Solution file kinds scaffolded per language.
const (
	KindUserSolution     = "user_solution"
	KindLeetCodeSolution = "leetcode_solution"
)

// SolutionKinds lists the per-language files created for every problem.
var SolutionKinds = []string{KindUserSolution, KindLeetCodeSolution}
