package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/kataforge/kataforge/internal"
	pkgconfig "github.com/kataforge/kataforge/pkg/config"
)

// newApp resolves configuration for one command invocation and wires the
// application. The config file is optional; defaults apply when it is absent.
func newApp(cmd *cli.Command) (*internal.App, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if root := cmd.String("root"); root != "" {
		cfg.Repo.Root = root
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	return internal.NewApp(
		internal.WithConfig(cfg),
		internal.WithLogger(logger),
	)
}

func addLanguageCommand() *cli.Command {
	return &cli.Command{
		Name:      "add-language",
		Usage:     "Register a language and its solution-file boilerplate",
		ArgsUsage: "<name> <ext> [boilerplate]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "backfill",
				Usage: "Add the new language's stub files to every existing problem",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("usage: add-language <name> <ext> [boilerplate]")
			}
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			return app.AddLanguage(
				cmd.Args().Get(0),
				cmd.Args().Get(1),
				cmd.Args().Get(2),
				cmd.Bool("backfill"),
			)
		},
	}
}

func createProblemCommand() *cli.Command {
	return &cli.Command{
		Name:      "create-problem",
		Usage:     "Scaffold a new problem: folder, README, solution stubs, view, metadata",
		ArgsUsage: "<number> <title> [template]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("usage: create-problem <number> <title> [template]")
			}
			number, err := strconv.Atoi(cmd.Args().Get(0))
			if err != nil || number <= 0 {
				return fmt.Errorf("problem number must be a positive integer, got %q", cmd.Args().Get(0))
			}
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			return app.CreateProblem(number, cmd.Args().Get(1), cmd.Args().Get(2))
		},
	}
}

func updateProblemCommand() *cli.Command {
	return &cli.Command{
		Name:      "update-problem",
		Usage:     "Apply key=value metadata edits and rebuild the problem's view",
		ArgsUsage: "<number> <key=value>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("usage: update-problem <number> <key=value>...")
			}
			number, err := strconv.Atoi(cmd.Args().Get(0))
			if err != nil || number <= 0 {
				return fmt.Errorf("problem number must be a positive integer, got %q", cmd.Args().Get(0))
			}
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			return app.UpdateProblem(number, cmd.Args().Slice()[1:])
		},
	}
}

func syncTemplateCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync-template",
		Usage:     "Propagate a template's current files into every problem",
		ArgsUsage: "<template>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep running and re-propagate when the template source changes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 1 {
				return fmt.Errorf("usage: sync-template <template>")
			}
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			return app.SyncTemplate(ctx, cmd.Args().Get(0), cmd.Bool("watch"))
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "kataforge",
		Usage: "Scaffold and synchronize a repository of coding-practice problems",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "kataforge.yaml",
				Value:       "kataforge.yaml",
				Sources:     cli.EnvVars("KATAFORGE_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Repository root directory",
				Sources: cli.EnvVars("KATAFORGE_ROOT"),
			},
		},
		Commands: []*cli.Command{
			addLanguageCommand(),
			createProblemCommand(),
			updateProblemCommand(),
			syncTemplateCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
