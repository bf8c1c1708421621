// Package registry manages the persisted mapping of supported languages to
// file extension and boilerplate text.
package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kataforge/kataforge/internal/apperr"
	"github.com/kataforge/kataforge/internal/models"
	"github.com/kataforge/kataforge/internal/storage"
)

// DefaultTemplateName is used when a registry is created from scratch.
const DefaultTemplateName = "problem-view"

// Registry is the persisted language configuration.
type Registry struct {
	Languages       map[string]models.LanguageEntry `json:"languages"`
	DefaultTemplate string                          `json:"default_template"`
}

// New returns an empty registry with the default template set.
func New() *Registry {
	return &Registry{
		Languages:       map[string]models.LanguageEntry{},
		DefaultTemplate: DefaultTemplateName,
	}
}

// Load reads the registry file at path. A missing file yields
// apperr.ErrConfigMissing; read-only consumers must not create one implicitly.
func Load(fs storage.Provider, path string) (*Registry, error) {
	data, err := fs.Read(path)
	if err != nil {
		if !fs.Exists(path) {
			return nil, fmt.Errorf("registry: %s: %w", path, apperr.ErrConfigMissing)
		}
		return nil, err
	}
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	if r.Languages == nil {
		r.Languages = map[string]models.LanguageEntry{}
	}
	if r.DefaultTemplate == "" {
		r.DefaultTemplate = DefaultTemplateName
	}
	return &r, nil
}

// LoadOrInit loads the registry, creating a fresh empty one when the file
// does not exist yet. It reports whether a new registry was created.
// Write consumers (add-language) initialize lazily through this path.
func LoadOrInit(fs storage.Provider, path string) (*Registry, bool, error) {
	r, err := Load(fs, path)
	if err == nil {
		return r, false, nil
	}
	if !fs.Exists(path) {
		return New(), true, nil
	}
	return nil, false, err
}

// Save persists the registry as indented JSON.
func Save(fs storage.Provider, path string, r *Registry) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("registry: encode: %w", err)
	}
	return fs.Write(path, append(data, '\n'))
}

// Add registers a new language. It reports false and leaves the registry
// untouched when the name is already present. The name must be non-empty
// and the extension a non-empty token without a leading dot.
func (r *Registry) Add(name, ext, boilerplate string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("registry: language name must be non-empty")
	}
	if ext == "" || strings.HasPrefix(ext, ".") {
		return false, fmt.Errorf("registry: extension must be a non-empty token without a leading dot, got %q", ext)
	}
	if _, ok := r.Languages[name]; ok {
		return false, nil
	}
	r.Languages[name] = models.LanguageEntry{Ext: ext, Boilerplate: boilerplate}
	return true, nil
}

// Get returns the entry for name, if registered.
func (r *Registry) Get(name string) (models.LanguageEntry, bool) {
	e, ok := r.Languages[name]
	return e, ok
}

// Names returns the registered language names in sorted order. The sorted
// order is what gets snapshotted into a new problem's metadata.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Languages))
	for n := range r.Languages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultBoilerplate returns the stub content used when add-language is
// invoked without an explicit boilerplate argument.
func DefaultBoilerplate(name string) string {
	title := name
	if len(title) > 0 {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return fmt.Sprintf("// Write your %s solution here\n", title)
}
