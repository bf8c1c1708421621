// Package problemstore locates problem units on disk and owns their
// durable metadata records.
package problemstore

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/kataforge/kataforge/internal/apperr"
	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/storage"
)

// MetaFileName is the metadata record inside every problem folder.
const MetaFileName = "meta.json"

// Store resolves problem units under the problems directory.
type Store struct {
	fs          storage.Provider
	problemsDir string
}

// New creates a store over the given problems directory.
func New(fs storage.Provider, problemsDir string) *Store {
	return &Store{fs: fs, problemsDir: problemsDir}
}

// Find locates a problem unit by its number, matching the zero-padded
// numeric folder prefix. Folder names are scanned in sorted order, so when
// several folders share a prefix the lexicographically first one wins.
func (s *Store) Find(number int) (models.Unit, error) {
	prefix := fmt.Sprintf("%04d", number)
	dirs, err := s.fs.ListDirs(s.problemsDir)
	if err != nil {
		return models.Unit{}, err
	}
	for _, name := range dirs {
		if strings.HasPrefix(name, prefix) {
			return models.Unit{Number: number, Dir: path.Join(s.problemsDir, name)}, nil
		}
	}
	return models.Unit{}, fmt.Errorf("problem %d: %w", number, apperr.ErrNotFound)
}

// Units returns a handle for every problem folder, in sorted order.
// Folders without a parseable numeric prefix get Number 0; the template
// synchronizer visits them all regardless.
func (s *Store) Units() ([]models.Unit, error) {
	dirs, err := s.fs.ListDirs(s.problemsDir)
	if err != nil {
		return nil, err
	}
	units := make([]models.Unit, 0, len(dirs))
	for _, name := range dirs {
		n := 0
		if i := strings.IndexByte(name, '_'); i > 0 {
			fmt.Sscanf(name[:i], "%d", &n)
		}
		units = append(units, models.Unit{Number: n, Dir: path.Join(s.problemsDir, name)})
	}
	return units, nil
}

// MetaPath returns the unit's metadata file path.
func (s *Store) MetaPath(u models.Unit) string {
	return path.Join(u.Dir, MetaFileName)
}

// LoadMeta reads the unit's metadata record as a decoded JSON object.
// The updater and payload builder work on the decoded form so that nested
// fields absent from the original record shape can still be introduced.
func (s *Store) LoadMeta(u models.Unit) (map[string]any, error) {
	p := s.MetaPath(u)
	data, err := s.fs.Read(p)
	if err != nil {
		if !s.fs.Exists(p) {
			return nil, fmt.Errorf("metadata for problem %d: %w", u.Number, apperr.ErrNotFound)
		}
		return nil, err
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("problemstore: parse %s: %w", p, err)
	}
	return meta, nil
}

// SaveMeta overwrites the unit's metadata record. Merging of edits happens
// upstream in the updater; this is a total write.
func (s *Store) SaveMeta(u models.Unit, meta map[string]any) error {
	data, err := json.MarshalIndent(meta, "", "    ")
	if err != nil {
		return fmt.Errorf("problemstore: encode meta: %w", err)
	}
	return s.fs.Write(s.MetaPath(u), append(data, '\n'))
}

// SaveMetaRecord writes a typed metadata record, used at scaffold time.
func (s *Store) SaveMetaRecord(u models.Unit, meta models.Meta) error {
	data, err := json.MarshalIndent(meta, "", "    ")
	if err != nil {
		return fmt.Errorf("problemstore: encode meta: %w", err)
	}
	return s.fs.Write(s.MetaPath(u), append(data, '\n'))
}

// ReadText reads an optional file belonging to the unit's folder, returning
// fallback when it does not exist.
func (s *Store) ReadText(relPath, fallback string) string {
	return s.fs.ReadText(relPath, fallback)
}
