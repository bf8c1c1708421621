package internal

import (
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App  ApplicationConfig `yaml:"app"`
	Repo RepoConfig        `yaml:"repo"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Repo.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return nil
}

// RepoConfig holds the layout of the practice repository: where problems,
// templates, the language registry, and the sync log live. All paths except
// Root are relative to Root.
type RepoConfig struct {
	Root         string `yaml:"root"`
	ProblemsDir  string `yaml:"problems_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	RegistryPath string `yaml:"registry_path"`
	SyncLogPath  string `yaml:"sync_log_path"`
	ViewFile     string `yaml:"view_file"`
}

// Validate validates the repository configuration.
func (c *RepoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.ProblemsDir, validation.Required),
		validation.Field(&c.TemplatesDir, validation.Required),
		validation.Field(&c.RegistryPath, validation.Required),
		validation.Field(&c.SyncLogPath, validation.Required),
		validation.Field(&c.ViewFile, validation.Required, validation.By(bareFileName)),
	)
}

// bareFileName rejects view file values that carry a path component.
func bareFileName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return validation.NewError("view_file", "must be a bare file name")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Repo: RepoConfig{
			Root:         ".",
			ProblemsDir:  "problems",
			TemplatesDir: "templates",
			RegistryPath: "registry.json",
			SyncLogPath:  "sync.log",
			ViewFile:     "ProblemViewTemplate.tsx",
		},
	}
}
