package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/tag/internal"
	"github.com/starford/tag/internal/editor"
	pkgconfig "github.com/starford/tag/pkg/config"
)

// options loads the config file and turns the global flags into options.
func options(cmd *cli.Command) ([]internal.Option, error) {
	path, required, err := internal.ResolveConfigPath(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	cfg := internal.NewDefaultConfig()
	if required {
		err = pkgconfig.Load(path, cfg)
	} else {
		_, err = pkgconfig.LoadIfExists(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithJournalPath(cmd.String("file")),
		internal.WithEditorCommand(cmd.String("editor")),
	}
	if cmd.IsSet("message") {
		opts = append(opts, internal.WithEditor(editor.Static(cmd.String("message"))))
	}
	return opts, nil
}

// action adapts an internal entry point to a cli action.
func action(run func(ctx context.Context, cmd *cli.Command, opts []internal.Option) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		return run(ctx, cmd, opts)
	}
}

func messageFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "message",
		Aliases: []string{"m"},
		Usage:   "Use `TEXT` instead of opening the editor",
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "tag",
		Usage: "Keep a plain-text work journal: today's TODO, done entries and tagged notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.config/tag/config.yaml",
				Sources:     cli.EnvVars(internal.EnvConfigFile),
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Journal file (default $TAG_FILE, journal.path or ~/todo.txt)",
			},
			&cli.StringFlag{
				Name:  "editor",
				Usage: "Editor command (default editor.command, $EDITOR, $VISUAL or vim)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "todo",
				Usage: "Edit today's TODO list",
				Flags: []cli.Flag{messageFlag()},
				Action: action(func(ctx context.Context, _ *cli.Command, opts []internal.Option) error {
					return internal.Todo(ctx, opts...)
				}),
			},
			{
				Name:  "done",
				Usage: "Add a timestamped entry for finished work",
				Flags: []cli.Flag{messageFlag()},
				Action: action(func(ctx context.Context, _ *cli.Command, opts []internal.Option) error {
					return internal.Done(ctx, opts...)
				}),
			},
			{
				Name:      "note",
				Usage:     "Add a note under #TAG, or under the default note header",
				ArgsUsage: "[TAG]",
				Flags:     []cli.Flag{messageFlag()},
				Action: action(func(ctx context.Context, cmd *cli.Command, opts []internal.Option) error {
					return internal.Note(ctx, cmd.Args().First(), opts...)
				}),
			},
			{
				Name:  "show",
				Usage: "Print a day of the journal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Day to print as `YYYY-MM-DD` (default today)"},
				},
				Action: action(func(ctx context.Context, cmd *cli.Command, opts []internal.Option) error {
					return internal.Show(ctx, cmd.String("date"), opts...)
				}),
			},
			{
				Name:      "search",
				Usage:     "Search the journal",
				ArgsUsage: "QUERY",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum number of hits"},
				},
				Action: action(func(ctx context.Context, cmd *cli.Command, opts []internal.Option) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("search: QUERY is required")
					}
					return internal.Search(ctx, cmd.Args().First(), int(cmd.Int("limit")), opts...)
				}),
			},
			{
				Name:  "serve",
				Usage: "Run the HTTP API with live updates",
				Action: action(func(ctx context.Context, _ *cli.Command, opts []internal.Option) error {
					return internal.Serve(ctx, opts...)
				}),
			},
			{
				Name:  "mcp",
				Usage: "Run the MCP server on stdio",
				Action: action(func(ctx context.Context, _ *cli.Command, opts []internal.Option) error {
					return internal.ServeMCP(ctx, opts...)
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
