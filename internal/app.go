// Package internal wires the kataforge components together and implements
// the command-level operations behind the CLI.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/kataforge/kataforge/internal/apperr"
	"github.com/kataforge/kataforge/internal/metaupdate"
	"github.com/kataforge/kataforge/internal/payload"
	"github.com/kataforge/kataforge/internal/problemstore"
	"github.com/kataforge/kataforge/internal/registry"
	"github.com/kataforge/kataforge/internal/scaffold"
	"github.com/kataforge/kataforge/internal/storage"
	"github.com/kataforge/kataforge/internal/templatesync"
)

// App holds the wired components for one command invocation. The language
// registry is deliberately not cached here: each operation loads it fresh,
// so no hidden state crosses invocations.
type App struct {
	cfg    *Config
	logger *slog.Logger

	fs         storage.Provider
	store      *problemstore.Store
	scaffolder *scaffold.Scaffolder
	sync       *templatesync.Synchronizer
	builder    *payload.Builder
}

// NewApp builds the application from options. The repository root is created
// when absent so that a fresh checkout works without setup.
func NewApp(opts ...Option) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		opt(app)
	}
	if app.cfg == nil {
		app.cfg = NewDefaultConfig()
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: app.cfg.App.LogLevel,
		}))
	}

	repo := app.cfg.Repo
	if err := os.MkdirAll(repo.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create repo root: %w", err)
	}
	fs, err := storage.NewFS(repo.Root)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	app.fs = fs
	app.store = problemstore.New(fs, repo.ProblemsDir)
	app.scaffolder = scaffold.New(fs, app.store, app.logger, repo.ProblemsDir, repo.TemplatesDir)
	app.sync = templatesync.New(fs, app.store, app.logger, repo.TemplatesDir, repo.SyncLogPath)
	app.builder = payload.New(fs, app.logger, repo.TemplatesDir, repo.ViewFile)
	return app, nil
}

// AddLanguage registers a language in the registry and optionally backfills
// its stub files into existing problems. Registering a name twice is benign.
func (a *App) AddLanguage(name, ext, boilerplate string, backfill bool) error {
	name = strings.ToLower(strings.TrimSpace(name))
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if boilerplate == "" {
		boilerplate = registry.DefaultBoilerplate(name)
	}

	reg, created, err := registry.LoadOrInit(a.fs, a.cfg.Repo.RegistryPath)
	if err != nil {
		return err
	}
	if created {
		a.logger.Info("registry not found, creating a new one", slog.String("path", a.cfg.Repo.RegistryPath))
	}

	added, err := reg.Add(name, ext, boilerplate)
	if err != nil {
		return err
	}
	if !added {
		a.logger.Warn("language already exists in registry", slog.String("language", name))
		return nil
	}
	if err := registry.Save(a.fs, a.cfg.Repo.RegistryPath, reg); err != nil {
		return err
	}
	a.logger.Info("added language", slog.String("language", name), slog.String("ext", ext))

	if backfill {
		entry, _ := reg.Get(name)
		return a.scaffolder.Backfill(name, entry)
	}
	return nil
}

// CreateProblem scaffolds a new problem unit. The template name defaults to
// the registry's default template.
func (a *App) CreateProblem(number int, title, templateName string) error {
	reg, err := registry.Load(a.fs, a.cfg.Repo.RegistryPath)
	if err != nil {
		if errors.Is(err, apperr.ErrConfigMissing) {
			return fmt.Errorf("%w: run add-language first", apperr.ErrConfigMissing)
		}
		return err
	}
	if templateName == "" {
		templateName = reg.DefaultTemplate
	}

	unit, err := a.scaffolder.Create(number, title, templateName, reg)
	if err != nil {
		return err
	}
	a.logger.Info("problem setup complete",
		slog.Int("number", number),
		slog.String("title", title),
		slog.String("dir", unit.Dir))
	return nil
}

// UpdateProblem applies metadata edits to a problem and rebuilds its view.
// Metadata is persisted before injection so a broken template never loses
// applied edits.
func (a *App) UpdateProblem(number int, args []string) error {
	edits, err := metaupdate.ParseEdits(args)
	if err != nil {
		return err
	}

	unit, err := a.store.Find(number)
	if err != nil {
		return err
	}
	meta, err := a.store.LoadMeta(unit)
	if err != nil {
		return err
	}

	for _, w := range metaupdate.Apply(meta, edits) {
		a.logger.Warn(w)
	}
	if err := a.store.SaveMeta(unit, meta); err != nil {
		return err
	}
	a.logger.Info("saved metadata", slog.String("path", a.store.MetaPath(unit)))

	reg, err := registry.Load(a.fs, a.cfg.Repo.RegistryPath)
	if err != nil {
		return err
	}

	templateName, _ := meta["template"].(string)
	data := a.builder.Build(unit, meta, reg)
	if err := a.builder.Inject(unit, templateName, data); err != nil {
		return err
	}

	title, _ := meta["title"].(string)
	a.logger.Info("updated problem", slog.Int("number", number), slog.String("title", title))
	return nil
}

// SyncTemplate propagates the named template into every problem unit. With
// watch enabled it keeps running, re-propagating on source changes until
// interrupted.
func (a *App) SyncTemplate(ctx context.Context, templateName string, watch bool) error {
	updated, err := a.sync.Propagate(templateName)
	if err != nil {
		if errors.Is(err, apperr.ErrTemplateNotFound) {
			// Reported but benign: nothing to propagate.
			a.logger.Warn("template not found, nothing to update", slog.String("template", templateName))
			return nil
		}
		return err
	}
	a.logger.Info("sync complete", slog.String("template", templateName), slog.Int("updated", updated))

	if !watch {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.sync.Watch(gCtx, templateName)
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			return context.Canceled
		case <-gCtx.Done():
			return gCtx.Err()
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
