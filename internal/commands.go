package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/starford/tag/internal/apperr"
	"github.com/starford/tag/internal/clock"
	"github.com/starford/tag/internal/editor"
	"github.com/starford/tag/internal/index"
	"github.com/starford/tag/internal/journal"
	"github.com/starford/tag/internal/mcpserver"
	"github.com/starford/tag/internal/models"
	"github.com/starford/tag/internal/storage"
	"github.com/starford/tag/internal/worklog"
)

// workspace is everything a command needs, resolved once from the options.
type workspace struct {
	cfg    *Config
	store  *storage.FS
	name   string
	svc    *worklog.Service
	db     *index.DB
	logger *slog.Logger
}

func (w *workspace) Close() {
	if w.db != nil {
		_ = w.db.Close()
	}
}

// open resolves the journal path and builds the orchestrator. With
// requireIndex the SQLite index must open; otherwise a failure is logged
// and edits proceed without it.
func (a *application) open(logOut io.Writer, requireIndex, indexWrites bool) (*workspace, error) {
	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := a.config

	logger := a.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.App.LogLevel}))
	}

	path, err := ResolveJournalPath(a.journalPath, cfg, a.env)
	if err != nil {
		return nil, err
	}
	store, name, err := storage.ForFile(path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	ws := &workspace{cfg: cfg, store: store, name: name, logger: logger}

	dbPath, err := ExpandHome(cfg.SQLite.Path)
	if err == nil {
		ws.db, err = index.Open(dbPath)
	}
	if err != nil {
		if requireIndex {
			return nil, fmt.Errorf("init index: %w", err)
		}
		logger.Warn("index unavailable", slog.String("path", cfg.SQLite.Path), slog.String("error", err.Error()))
	}

	opts := []worklog.Option{
		worklog.WithClock(a.clock),
		worklog.WithStamper(clock.NewStamper(cfg.Journal.AMLabel, cfg.Journal.PMLabel)),
		worklog.WithLogger(logger),
	}
	if ws.db != nil && indexWrites {
		opts = append(opts, worklog.WithIndexer(ws.db))
	}
	ws.svc = worklog.NewService(store, name, opts...)

	logger.Debug("journal resolved", slog.String("path", path))
	return ws, nil
}

func (a *application) resolveEditor() (editor.Editor, error) {
	if a.editor != nil {
		return a.editor, nil
	}
	return editor.NewCommand(ResolveEditor(a.editorFlag, a.config, a.env))
}

// Todo edits today's TODO list.
func Todo(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	ws, err := app.open(app.logOut, false, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	ed, err := app.resolveEditor()
	if err != nil {
		return err
	}
	_, err = ws.svc.EditTodo(ctx, ed, "")
	return err
}

// Done adds a timestamped entry for finished work. An empty edit writes nothing.
func Done(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	ws, err := app.open(app.logOut, false, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	ed, err := app.resolveEditor()
	if err != nil {
		return err
	}
	_, err = ws.svc.AddDone(ctx, ed, "")
	return ignoreEmpty(ws.logger, err)
}

// Note adds a note under "#tag", or under the default note header when tag
// is empty. An empty edit writes nothing.
func Note(ctx context.Context, tag string, opts ...Option) error {
	app := newApplication(opts)
	ws, err := app.open(app.logOut, false, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	ed, err := app.resolveEditor()
	if err != nil {
		return err
	}
	_, err = ws.svc.AddNote(ctx, tag, ed, "")
	return ignoreEmpty(ws.logger, err)
}

func ignoreEmpty(logger *slog.Logger, err error) error {
	if errors.Is(err, apperr.ErrEmptyEntry) {
		logger.Info("nothing written: empty entry")
		return nil
	}
	return err
}

// Show prints the day section for date (today when empty).
func Show(ctx context.Context, date string, opts ...Option) error {
	app := newApplication(opts)
	ws, err := app.open(app.logOut, false, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	if date == "" {
		date = ws.svc.Today()
	}
	day, err := ws.svc.Day(ctx, date)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("show: no entry for %s: %w", date, err)
		}
		return err
	}
	renderDay(app.out, day.Text)
	return nil
}

var (
	dateColor      = color.New(color.FgCyan, color.Bold)
	underlineColor = color.New(color.Faint)
	headerColors   = map[journal.HeaderKind]*color.Color{
		journal.KindTodo: color.New(color.FgYellow, color.Bold),
		journal.KindDone: color.New(color.FgGreen),
		journal.KindTag:  color.New(color.FgMagenta),
		journal.KindNote: color.New(color.FgBlue),
	}
)

func renderDay(w io.Writer, text string) {
	for i, line := range strings.Split(text, "\n") {
		switch {
		case i == 0:
			dateColor.Fprintln(w, line)
		case i == 1 && line == journal.Underline:
			underlineColor.Fprintln(w, line)
		default:
			if c, ok := headerColors[journal.ClassifyHeader(strings.TrimSpace(line))]; ok {
				c.Fprintln(w, line)
				continue
			}
			fmt.Fprintln(w, line)
		}
	}
}

// Search syncs the index with the journal and prints matching entries.
func Search(ctx context.Context, query string, limit int, opts ...Option) error {
	app := newApplication(opts)
	ws, err := app.open(app.logOut, true, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	if _, err := index.Sync(ws.db, ws.store, ws.name, ws.logger); err != nil {
		return fmt.Errorf("sync index: %w", err)
	}
	hits, err := ws.db.Search(query, limit)
	if err != nil {
		return err
	}
	renderHits(app.out, hits)
	return nil
}

func renderHits(w io.Writer, hits []models.SearchHit) {
	for _, h := range hits {
		dateColor.Fprint(w, h.Date)
		fmt.Fprint(w, "  ")
		if c, ok := headerColors[journal.HeaderKind(h.Kind)]; ok {
			c.Fprintln(w, h.Header)
		} else {
			fmt.Fprintln(w, h.Header)
		}
		for _, line := range strings.Split(h.Snippet, "\n") {
			fmt.Fprintln(w, "    "+line)
		}
	}
}

// ServeMCP runs the MCP server on stdin/stdout until the client disconnects.
func ServeMCP(_ context.Context, opts ...Option) error {
	app := newApplication(opts)
	ws, err := app.open(app.logOut, true, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	if _, err := index.Sync(ws.db, ws.store, ws.name, ws.logger); err != nil {
		ws.logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}
	ws.logger.Info("mcp: serving on stdio", slog.String("journal", ws.name))
	return mcpserver.New(ws.svc, ws.store, ws.db, ws.logger).ServeStdio()
}
