// Package editor hands text to an external editor and reads the result back.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Editor turns initial text into edited text.
type Editor interface {
	Edit(ctx context.Context, initial string) (string, error)
}

// ExitError reports an editor process that exited unsuccessfully.
type ExitError struct {
	Program string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("editor: %s exited with status %d", e.Program, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Command runs an editor binary on a temporary file.
type Command struct {
	Program string
	Args    []string
	// Dir holds the temporary file; empty means os.TempDir().
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand splits a command line such as "code --wait" into program and
// arguments and attaches the process's standard streams.
func NewCommand(commandLine string) (*Command, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("editor: empty command")
	}
	return &Command{
		Program: fields[0],
		Args:    fields[1:],
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Edit writes initial to a temporary file, blocks until the editor exits,
// and returns the file's new content. The file is removed afterwards.
func (c *Command) Edit(ctx context.Context, initial string) (string, error) {
	tmp, err := os.CreateTemp(c.Dir, "tag-*.txt")
	if err != nil {
		return "", fmt.Errorf("editor: create temp: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(initial); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("editor: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("editor: close temp: %w", err)
	}

	args := append(append([]string{}, c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Program, args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{Program: c.Program, Code: exitErr.ExitCode(), Err: err}
		}
		return "", fmt.Errorf("editor: run %s: %w", c.Program, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editor: read back: %w", err)
	}
	return string(data), nil
}

// Static is an Editor that ignores the initial text and returns itself.
// It backs non-interactive input such as --message and the HTTP API.
type Static string

// Edit returns the static text.
func (s Static) Edit(context.Context, string) (string, error) {
	return string(s), nil
}
