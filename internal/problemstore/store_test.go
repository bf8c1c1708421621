package problemstore

import (
	"errors"
	"testing"

	"github.com/kataforge/kataforge/internal/apperr"
	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/testutil"
)

func TestFind(t *testing.T) {
	_, fs := testutil.TestRepo(t)
	store := New(fs, "problems")
	_ = fs.EnsureDir("problems/0001_two-sum")
	_ = fs.EnsureDir("problems/0002_add-two-numbers")

	unit, err := store.Find(2)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if unit.Dir != "problems/0002_add-two-numbers" {
		t.Errorf("dir = %q", unit.Dir)
	}
	if unit.Number != 2 {
		t.Errorf("number = %d", unit.Number)
	}
}

func TestFind_NotFound(t *testing.T) {
	_, fs := testutil.TestRepo(t)
	store := New(fs, "problems")
	_ = fs.EnsureDir("problems/0001_two-sum")

	_, err := store.Find(42)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFind_MissingProblemsDir(t *testing.T) {
	_, fs := testutil.TestRepo(t)
	store := New(fs, "problems")
	_, err := store.Find(1)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	_, fs := testutil.TestRepo(t)
	store := New(fs, "problems")
	_ = fs.EnsureDir("problems/0001_two-sum")
	_ = fs.EnsureDir("problems/0001_two-sum-copy")

	unit, err := store.Find(1)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// Lexicographically first folder wins.
	if unit.Dir != "problems/0001_two-sum" {
		t.Errorf("dir = %q", unit.Dir)
	}
}

func TestUnits(t *testing.T) {
	_, fs := testutil.TestRepo(t)
	store := New(fs, "problems")
	_ = fs.EnsureDir("problems/0003_longest-substring")
	_ = fs.EnsureDir("problems/0001_two-sum")

	units, err := store.Units()
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("len = %d", len(units))
	}
	if units[0].Number != 1 || units[1].Number != 3 {
		t.Errorf("numbers = %d, %d", units[0].Number, units[1].Number)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	_, fs := testutil.TestRepo(t)
	store := New(fs, "problems")
	unit := models.Unit{Number: 1, Dir: "problems/0001_two-sum"}

	record := models.Meta{
		ProblemNumber: 1,
		Title:         "Two Sum",
		Slug:          "two-sum",
		Template:      "problem-view",
		Languages:     []string{"python"},
		CreatedAt:     "2026-08-30T10:00:00",
		Difficulty:    models.DifficultyEasy,
		Tags:          []string{},
	}
	if err := store.SaveMetaRecord(unit, record); err != nil {
		t.Fatalf("SaveMetaRecord: %v", err)
	}

	meta, err := store.LoadMeta(unit)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if meta["title"] != "Two Sum" {
		t.Errorf("title = %v", meta["title"])
	}
	if meta["problem_number"] != float64(1) {
		t.Errorf("problem_number = %v", meta["problem_number"])
	}
	links, ok := meta["links"].(map[string]any)
	if !ok || links["leetcode"] != "" {
		t.Errorf("links = %#v", meta["links"])
	}

	meta["solved"] = true
	if err := store.SaveMeta(unit, meta); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	reloaded, err := store.LoadMeta(unit)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if reloaded["solved"] != true {
		t.Errorf("solved = %v", reloaded["solved"])
	}
}

func TestLoadMeta_Missing(t *testing.T) {
	_, fs := testutil.TestRepo(t)
	store := New(fs, "problems")
	_ = fs.EnsureDir("problems/0001_two-sum")

	_, err := store.LoadMeta(models.Unit{Number: 1, Dir: "problems/0001_two-sum"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
