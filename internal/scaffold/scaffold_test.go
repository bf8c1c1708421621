package scaffold

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/problemstore"
	"github.com/kataforge/kataforge/internal/registry"
	"github.com/kataforge/kataforge/internal/storage"
	"github.com/kataforge/kataforge/internal/testutil"
)

func newTestScaffolder(t *testing.T) (storage.Provider, *problemstore.Store, *Scaffolder) {
	t.Helper()
	_, fs := testutil.TestRepo(t)
	store := problemstore.New(fs, "problems")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fs, store, New(fs, store, logger, "problems", "templates")
}

func pythonRegistry() *registry.Registry {
	reg := registry.New()
	reg.Add("python", "py", "# TODO\n")
	return reg
}

func TestFolderName(t *testing.T) {
	if got := FolderName(1, "Two Sum"); got != "0001_two-sum" {
		t.Errorf("FolderName = %q", got)
	}
	if got := FolderName(217, "Contains Duplicate"); got != "0217_contains-duplicate" {
		t.Errorf("FolderName = %q", got)
	}
}

func TestCreate_EndToEnd(t *testing.T) {
	fs, store, s := newTestScaffolder(t)
	_ = fs.Write("templates/problem-view/ProblemViewTemplate.tsx", []byte("view `__PROBLEM_DATA__`"))

	unit, err := s.Create(1, "Two Sum", "problem-view", pythonRegistry())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if unit.Dir != "problems/0001_two-sum" {
		t.Errorf("dir = %q", unit.Dir)
	}

	for _, p := range []string{
		"problems/0001_two-sum/python/user_solution.py",
		"problems/0001_two-sum/python/leetcode_solution.py",
	} {
		if got := fs.ReadText(p, ""); got != "# TODO\n" {
			t.Errorf("%s = %q, want boilerplate", p, got)
		}
	}

	readme := fs.ReadText("problems/0001_two-sum/README.md", "")
	if !strings.HasPrefix(readme, "# 1. Two Sum\n") {
		t.Errorf("README starts with %q", readme[:min(len(readme), 20)])
	}
	if !strings.Contains(readme, "## Problem Description") || !strings.Contains(readme, "- **Time:** O(...)") {
		t.Error("README skeleton missing sections")
	}

	if got := fs.ReadText("problems/0001_two-sum/ui/ProblemViewTemplate.tsx", ""); got != "view `__PROBLEM_DATA__`" {
		t.Errorf("view copy = %q", got)
	}

	meta, err := store.LoadMeta(unit)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if meta["problem_number"] != float64(1) || meta["title"] != "Two Sum" {
		t.Errorf("meta = %v", meta)
	}
	if meta["difficulty"] != "Easy" || meta["solved"] != false || meta["notes_complete"] != false {
		t.Errorf("meta defaults wrong: %v", meta)
	}
	if meta["slug"] != "two-sum" || meta["template"] != "problem-view" {
		t.Errorf("meta = %v", meta)
	}
	langs, _ := meta["languages"].([]any)
	if len(langs) != 1 || langs[0] != "python" {
		t.Errorf("languages = %v", langs)
	}
	if tags, ok := meta["tags"].([]any); !ok || len(tags) != 0 {
		t.Errorf("tags = %#v, want empty list", meta["tags"])
	}
}

func TestCreate_RerunIsAdditive(t *testing.T) {
	fs, _, s := newTestScaffolder(t)
	_ = fs.Write("templates/problem-view/ProblemViewTemplate.tsx", []byte("v1"))
	reg := pythonRegistry()

	if _, err := s.Create(1, "Two Sum", "problem-view", reg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// User edits their files; the template gets a new revision.
	_ = fs.Write("problems/0001_two-sum/README.md", []byte("# my notes\n"))
	_ = fs.Write("problems/0001_two-sum/python/user_solution.py", []byte("def twoSum(): pass\n"))
	_ = fs.Write("templates/problem-view/ProblemViewTemplate.tsx", []byte("v2"))

	if _, err := s.Create(1, "Two Sum", "problem-view", reg); err != nil {
		t.Fatalf("Create rerun: %v", err)
	}

	if got := fs.ReadText("problems/0001_two-sum/README.md", ""); got != "# my notes\n" {
		t.Errorf("README = %q, rerun must not truncate", got)
	}
	if got := fs.ReadText("problems/0001_two-sum/python/user_solution.py", ""); got != "def twoSum(): pass\n" {
		t.Errorf("solution = %q, rerun must not overwrite", got)
	}
	if got := fs.ReadText("problems/0001_two-sum/ui/ProblemViewTemplate.tsx", ""); got != "v2" {
		t.Errorf("view = %q, rerun must replace the view", got)
	}
}

func TestCreate_ViewReplacedWholesale(t *testing.T) {
	fs, _, s := newTestScaffolder(t)
	_ = fs.Write("templates/problem-view/a.tsx", []byte("a"))
	reg := pythonRegistry()

	if _, err := s.Create(1, "Two Sum", "problem-view", reg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// A stale file in the old view copy must disappear on recreate.
	_ = fs.Write("problems/0001_two-sum/ui/stale.tsx", []byte("stale"))

	if _, err := s.Create(1, "Two Sum", "problem-view", reg); err != nil {
		t.Fatalf("Create rerun: %v", err)
	}
	if fs.Exists("problems/0001_two-sum/ui/stale.tsx") {
		t.Error("stale view file should be removed")
	}
	if !fs.Exists("problems/0001_two-sum/ui/a.tsx") {
		t.Error("template file missing from view")
	}
}

func TestCreate_MissingTemplateIsNonFatal(t *testing.T) {
	fs, store, s := newTestScaffolder(t)

	unit, err := s.Create(7, "Reverse Integer", "no-such-template", pythonRegistry())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fs.Exists("problems/0007_reverse-integer/ui") {
		t.Error("no view should be created for a missing template")
	}
	// Metadata and stubs still exist.
	if _, err := store.LoadMeta(unit); err != nil {
		t.Errorf("LoadMeta: %v", err)
	}
	if !fs.Exists("problems/0007_reverse-integer/python/user_solution.py") {
		t.Error("solution stub missing")
	}
}

func TestBackfill(t *testing.T) {
	fs, _, s := newTestScaffolder(t)
	reg := pythonRegistry()
	if _, err := s.Create(1, "Two Sum", "problem-view", reg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = fs.Write("problems/0001_two-sum/python/user_solution.py", []byte("edited"))

	entry := models.LanguageEntry{Ext: "go", Boilerplate: "package main\n"}
	if err := s.Backfill("go", entry); err != nil {
		t.Fatalf("Backfill: %v", err)
	}

	if got := fs.ReadText("problems/0001_two-sum/go/user_solution.go", ""); got != "package main\n" {
		t.Errorf("backfilled stub = %q", got)
	}
	if got := fs.ReadText("problems/0001_two-sum/python/user_solution.py", ""); got != "edited" {
		t.Errorf("existing file = %q, backfill must not overwrite", got)
	}

	// Metadata language snapshot is untouched by backfill.
	data := fs.ReadText("problems/0001_two-sum/meta.json", "")
	var meta map[string]any
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		t.Fatal(err)
	}
	langs, _ := meta["languages"].([]any)
	if len(langs) != 1 || langs[0] != "python" {
		t.Errorf("languages = %v, backfill must not retroactively update", langs)
	}
}
