// Package templatesync propagates a template's current file set into every
// existing problem unit. Writes are content-addressed: a destination file is
// replaced only when missing or byte-different from the source, so re-runs
// against unchanged trees perform zero writes.
package templatesync

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/kataforge/kataforge/internal/apperr"
	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/problemstore"
	"github.com/kataforge/kataforge/internal/storage"
)

// DestDirName is the unit subfolder that mirrors propagated templates.
const DestDirName = "templates"

const logTimeFormat = "2006-01-02 15:04:05"

// Synchronizer copies template trees into problem units.
type Synchronizer struct {
	fs           storage.Provider
	store        *problemstore.Store
	logger       *slog.Logger
	templatesDir string
	logPath      string
}

// New creates a Synchronizer. Writes are recorded in the append-only log
// file at logPath.
func New(fs storage.Provider, store *problemstore.Store, logger *slog.Logger, templatesDir, logPath string) *Synchronizer {
	return &Synchronizer{
		fs:           fs,
		store:        store,
		logger:       logger,
		templatesDir: templatesDir,
		logPath:      logPath,
	}
}

// Propagate mirrors the named template into every problem unit and returns
// the number of units that had at least one file written. A missing problems
// directory is a no-op. A missing template yields apperr.ErrTemplateNotFound.
func (s *Synchronizer) Propagate(templateName string) (int, error) {
	src := path.Join(s.templatesDir, templateName)
	if !s.fs.IsDir(src) {
		return 0, fmt.Errorf("%s: %w", src, apperr.ErrTemplateNotFound)
	}

	units, err := s.store.Units()
	if err != nil {
		return 0, err
	}
	if len(units) == 0 {
		s.logger.Warn("no problem folders found, nothing to update")
		return 0, nil
	}

	s.logger.Info("propagating template", slog.String("template", templateName), slog.Int("problems", len(units)))

	updated := 0
	for _, unit := range units {
		changed, err := s.syncUnit(src, templateName, unit)
		if err != nil {
			return updated, err
		}
		if changed {
			updated++
		}
	}

	summary := fmt.Sprintf("Template '%s' updated in %d problem(s).", templateName, updated)
	s.logger.Info("propagation complete", slog.String("template", templateName), slog.Int("updated", updated))
	if err := s.appendLog(summary); err != nil {
		return updated, err
	}
	return updated, nil
}

// syncUnit mirrors the template tree into one unit. It reports whether any
// file was written.
func (s *Synchronizer) syncUnit(src, templateName string, unit models.Unit) (bool, error) {
	dest := path.Join(unit.Dir, DestDirName, templateName)
	changed := false

	err := s.fs.WalkFiles(src, func(rel string) error {
		srcPath := path.Join(src, rel)
		destPath := path.Join(dest, rel)

		srcData, err := s.fs.Read(srcPath)
		if err != nil {
			return err
		}
		if s.fs.Exists(destPath) {
			destData, err := s.fs.Read(destPath)
			if err != nil {
				return err
			}
			if checksum(destData) == checksum(srcData) {
				return nil
			}
		}

		if err := s.fs.CopyFile(srcPath, destPath); err != nil {
			return err
		}
		changed = true
		s.logger.Debug("updated file", slog.String("path", destPath))
		return s.appendLog("Updated " + destPath)
	})
	if err != nil {
		return changed, err
	}
	return changed, nil
}

// appendLog records a timestamped line in the synchronization log.
func (s *Synchronizer) appendLog(message string) error {
	line := fmt.Sprintf("[%s] %s", time.Now().Format(logTimeFormat), message)
	return s.fs.Append(s.logPath, []byte(line))
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
