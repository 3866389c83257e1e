package internal

import (
	"io"
	"log/slog"
	"os"

	"github.com/starford/tag/internal/clock"
	"github.com/starford/tag/internal/editor"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config      *Config
	journalPath string
	editorFlag  string
	editor      editor.Editor
	clock       clock.Clock
	out         io.Writer
	logOut      io.Writer
	env         LookupEnv
	logger      *slog.Logger
}

func newApplication(opts []Option) *application {
	app := &application{
		out:    os.Stdout,
		logOut: os.Stderr,
		env:    os.LookupEnv,
		clock:  clock.System{},
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithJournalPath overrides the journal file (the --file flag).
func WithJournalPath(path string) Option {
	return func(a *application) {
		a.journalPath = path
	}
}

// WithEditorCommand overrides the editor command line (the --editor flag).
func WithEditorCommand(command string) Option {
	return func(a *application) {
		a.editorFlag = command
	}
}

// WithEditor replaces the external editor, e.g. with editor.Static for --message.
func WithEditor(ed editor.Editor) Option {
	return func(a *application) {
		a.editor = ed
	}
}

// WithClock overrides the system clock.
func WithClock(c clock.Clock) Option {
	return func(a *application) {
		a.clock = c
	}
}

// WithOutput sets where command output is printed.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithLogOutput sets where CLI commands write their logs.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOut = w
	}
}

// WithEnv replaces os.LookupEnv for path and editor resolution.
func WithEnv(env LookupEnv) Option {
	return func(a *application) {
		a.env = env
	}
}

// WithLogger replaces the JSON logger built from the config.
func WithLogger(l *slog.Logger) Option {
	return func(a *application) {
		a.logger = l
	}
}
