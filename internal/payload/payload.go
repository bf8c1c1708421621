// Package payload aggregates a problem's metadata, extracted README
// sections, and solution sources into one document, and injects it into the
// unit's rendered view.
package payload

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/kataforge/kataforge/internal/apperr"
	"github.com/kataforge/kataforge/internal/docparse"
	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/registry"
	"github.com/kataforge/kataforge/internal/scaffold"
	"github.com/kataforge/kataforge/internal/storage"
)

// Placeholder is the token inside the master template that receives the
// serialized payload. It includes the surrounding backticks so the
// substitution yields a populated template literal.
const Placeholder = "`__PROBLEM_DATA__`"

// Builder assembles and injects problem payloads.
type Builder struct {
	fs           storage.Provider
	logger       *slog.Logger
	templatesDir string
	viewFile     string
}

// New creates a Builder. viewFile is the template component file that
// carries the placeholder, e.g. "ProblemViewTemplate.tsx".
func New(fs storage.Provider, logger *slog.Logger, templatesDir, viewFile string) *Builder {
	return &Builder{fs: fs, logger: logger, templatesDir: templatesDir, viewFile: viewFile}
}

// Build aggregates the unit's metadata, README sections, and per-language
// solution sources. The extracted sections overwrite any same-named metadata
// fields. Languages recorded in the metadata but absent from the current
// registry are skipped; registry drift is tolerated.
func (b *Builder) Build(unit models.Unit, meta map[string]any, reg *registry.Registry) map[string]any {
	out := make(map[string]any, len(meta)+7)
	for k, v := range meta {
		out[k] = v
	}

	readme := b.fs.ReadText(path.Join(unit.Dir, scaffold.ReadmeFileName), "")
	sections := docparse.Extract(readme)
	out["statement"] = sections.Statement
	out["approach"] = sections.Approach
	out["timeComplexity"] = sections.TimeComplexity
	out["spaceComplexity"] = sections.SpaceComplexity
	out["notes"] = sections.Notes
	out["examples"] = []any{} // reserved for structured example parsing

	code := map[string]any{}
	for _, lang := range languageList(meta) {
		entry, ok := reg.Get(lang)
		if !ok {
			b.logger.Debug("language missing from registry, skipping", slog.String("language", lang))
			continue
		}
		langDir := path.Join(unit.Dir, lang)
		code[lang] = map[string]any{
			models.KindUserSolution:     b.fs.ReadText(path.Join(langDir, models.KindUserSolution+"."+entry.Ext), ""),
			models.KindLeetCodeSolution: b.fs.ReadText(path.Join(langDir, models.KindLeetCodeSolution+"."+entry.Ext), ""),
		}
	}
	out["code"] = code

	return out
}

// Inject serializes the payload, escapes it for embedding in a template
// literal, and substitutes the placeholder in the master template, writing
// the result into the unit's view folder. The master copy is read (not the
// unit's, whose placeholder is already consumed), so injection is repeatable.
func (b *Builder) Inject(unit models.Unit, templateName string, data map[string]any) error {
	masterPath := path.Join(b.templatesDir, templateName, b.viewFile)
	template, err := b.fs.Read(masterPath)
	if err != nil {
		if !b.fs.Exists(masterPath) {
			return fmt.Errorf("%s: %w", masterPath, apperr.ErrTemplateNotFound)
		}
		return err
	}

	content := string(template)
	if !strings.Contains(content, Placeholder) {
		return fmt.Errorf("%s: %w", masterPath, apperr.ErrPlaceholderMissing)
	}

	serialized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("payload: encode: %w", err)
	}
	injected := strings.Replace(content, Placeholder, "`"+EscapeTemplateLiteral(string(serialized))+"`", 1)

	viewPath := path.Join(unit.Dir, scaffold.ViewDirName, b.viewFile)
	if err := b.fs.Write(viewPath, []byte(injected)); err != nil {
		return err
	}
	b.logger.Info("rebuilt view", slog.String("path", viewPath))
	return nil
}

// EscapeTemplateLiteral escapes text for safe embedding inside a JavaScript
// template literal: backslashes, backticks, and dollar signs.
func EscapeTemplateLiteral(s string) string {
	return templateLiteralEscaper.Replace(s)
}

var templateLiteralEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`$`, `\$`,
)

// languageList extracts the metadata "languages" field, tolerating both the
// decoded-JSON form ([]any) and the typed form ([]string).
func languageList(meta map[string]any) []string {
	switch v := meta["languages"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
