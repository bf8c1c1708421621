// Package scaffold creates problem units: folder, README skeleton,
// per-language solution stubs, view template copy, and metadata record.
// Scaffolding is additive: re-running it never truncates a README or
// overwrites a solution file. The view copy is the one exception, replaced
// wholesale because it is a generated artifact.
package scaffold

import (
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/gosimple/slug"

	"github.com/kataforge/kataforge/internal/apperr"
	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/problemstore"
	"github.com/kataforge/kataforge/internal/registry"
	"github.com/kataforge/kataforge/internal/storage"
)

// ViewDirName is the unit subfolder holding the rendered template copy.
const ViewDirName = "ui"

// ReadmeFileName is the unit's narrative document.
const ReadmeFileName = "README.md"

const createdAtFormat = "2006-01-02T15:04:05"

// Scaffolder creates and backfills problem units.
type Scaffolder struct {
	fs           storage.Provider
	store        *problemstore.Store
	logger       *slog.Logger
	problemsDir  string
	templatesDir string
}

// New creates a Scaffolder.
func New(fs storage.Provider, store *problemstore.Store, logger *slog.Logger, problemsDir, templatesDir string) *Scaffolder {
	return &Scaffolder{
		fs:           fs,
		store:        store,
		logger:       logger,
		problemsDir:  problemsDir,
		templatesDir: templatesDir,
	}
}

// FolderName returns the canonical folder name for a problem:
// the zero-padded number joined to the slugified title.
func FolderName(number int, title string) string {
	return fmt.Sprintf("%04d_%s", number, slug.Make(title))
}

// Create scaffolds the complete structure for a problem. A pre-existing
// folder is reused. A missing template is reported and skipped; the rest of
// the scaffold still completes.
func (s *Scaffolder) Create(number int, title, templateName string, reg *registry.Registry) (models.Unit, error) {
	folder := FolderName(number, title)
	unit := models.Unit{Number: number, Dir: path.Join(s.problemsDir, folder)}

	if err := s.fs.EnsureDir(unit.Dir); err != nil {
		return models.Unit{}, err
	}
	s.logger.Info("creating problem folder", slog.String("dir", unit.Dir))

	if err := s.writeReadme(unit, number, title); err != nil {
		return models.Unit{}, err
	}

	for _, name := range reg.Names() {
		entry := reg.Languages[name]
		if err := s.ensureLanguageStubs(unit, name, entry); err != nil {
			return models.Unit{}, err
		}
	}

	if err := s.copyView(unit, templateName); err != nil {
		// Missing template is a skipped step, not a scaffold failure.
		s.logger.Warn("template not found, skipping view files",
			slog.String("template", templateName),
			slog.String("error", err.Error()))
	}

	meta := models.Meta{
		ProblemNumber: number,
		Title:         title,
		Slug:          slug.Make(title),
		Template:      templateName,
		Languages:     reg.Names(),
		CreatedAt:     time.Now().Format(createdAtFormat),
		Solved:        false,
		NotesComplete: false,
		Tags:          []string{},
		Difficulty:    models.DifficultyEasy,
	}
	if err := s.store.SaveMetaRecord(unit, meta); err != nil {
		return models.Unit{}, err
	}
	s.logger.Info("wrote metadata", slog.String("path", s.store.MetaPath(unit)))

	return unit, nil
}

// writeReadme creates the README skeleton unless a document already exists.
func (s *Scaffolder) writeReadme(unit models.Unit, number int, title string) error {
	skeleton := fmt.Sprintf("# %d. %s\n\n", number, title) +
		"## Problem Description\n\n(Add the problem statement here.)\n\n" +
		"## Approach\n\n(Describe your thought process.)\n\n" +
		"## Complexity\n\n- **Time:** O(...)\n- **Space:** O(...)\n"

	written, err := s.fs.WriteIfAbsent(path.Join(unit.Dir, ReadmeFileName), []byte(skeleton))
	if err != nil {
		return err
	}
	if written {
		s.logger.Info("created README", slog.String("dir", unit.Dir))
	}
	return nil
}

// ensureLanguageStubs creates the language folder and both solution stubs,
// filling in only files that do not exist yet.
func (s *Scaffolder) ensureLanguageStubs(unit models.Unit, name string, entry models.LanguageEntry) error {
	langDir := path.Join(unit.Dir, name)
	if err := s.fs.EnsureDir(langDir); err != nil {
		return err
	}
	for _, kind := range models.SolutionKinds {
		p := path.Join(langDir, kind+"."+entry.Ext)
		written, err := s.fs.WriteIfAbsent(p, []byte(entry.Boilerplate))
		if err != nil {
			return err
		}
		if written {
			s.logger.Info("created solution stub", slog.String("path", p))
		}
	}
	return nil
}

// copyView replaces the unit's view folder with a fresh copy of the
// template tree. The view is generated, so the old copy is removed first.
func (s *Scaffolder) copyView(unit models.Unit, templateName string) error {
	src := path.Join(s.templatesDir, templateName)
	if !s.fs.IsDir(src) {
		return fmt.Errorf("%s: %w", src, apperr.ErrTemplateNotFound)
	}
	dst := path.Join(unit.Dir, ViewDirName)
	if err := s.fs.RemoveTree(dst); err != nil {
		return err
	}
	err := s.fs.WalkFiles(src, func(rel string) error {
		return s.fs.CopyFile(path.Join(src, rel), path.Join(dst, rel))
	})
	if err != nil {
		return err
	}
	s.logger.Info("copied view template",
		slog.String("template", templateName),
		slog.String("dest", dst))
	return nil
}

// Backfill adds a newly registered language's stub files to every existing
// problem unit that is missing them. Existing stubs are never overwritten,
// and the units' metadata language snapshots are left untouched.
func (s *Scaffolder) Backfill(name string, entry models.LanguageEntry) error {
	units, err := s.store.Units()
	if err != nil {
		return err
	}
	if len(units) == 0 {
		s.logger.Warn("no problems directory found, skipping backfill")
		return nil
	}
	for _, unit := range units {
		if err := s.ensureLanguageStubs(unit, name, entry); err != nil {
			return err
		}
	}
	s.logger.Info("backfilled language into existing problems",
		slog.String("language", name),
		slog.Int("problems", len(units)))
	return nil
}
