// Package testutil provides shared test helpers for setting up temporary
// practice repositories.
package testutil

import (
	"testing"

	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/registry"
	"github.com/kataforge/kataforge/internal/storage"
)

// TestRepo creates a temporary repository root with a storage.Provider.
func TestRepo(t *testing.T) (string, storage.Provider) {
	t.Helper()
	root := t.TempDir()
	fs, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, fs
}

// SeedRegistry persists a registry with the given languages at path and
// returns it.
func SeedRegistry(t *testing.T, fs storage.Provider, path string, langs map[string]models.LanguageEntry) *registry.Registry {
	t.Helper()
	reg := registry.New()
	for name, entry := range langs {
		reg.Languages[name] = entry
	}
	if err := registry.Save(fs, path, reg); err != nil {
		t.Fatal(err)
	}
	return reg
}
