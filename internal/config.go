package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/go-homedir"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Environment variables consulted by the Resolve functions.
const (
	EnvJournalFile = "TAG_FILE"
	EnvConfigFile  = "TAG_CONFIG_FILE"
	EnvEditor      = "EDITOR"
	EnvVisual      = "VISUAL"
)

const (
	defaultJournalFile = "todo.txt"
	defaultConfigFile  = "~/.config/tag/config.yaml"
	defaultEditor      = "vim"
)

// LookupEnv reports the value of an environment variable; os.LookupEnv satisfies it.
type LookupEnv func(key string) (string, bool)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Journal JournalConfig     `yaml:"journal"`
	Editor  EditorConfig      `yaml:"editor"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// JournalConfig holds the journal file location and the labels used in
// timestamp headers.
type JournalConfig struct {
	// Path is optional; see ResolveJournalPath.
	Path    string `yaml:"path"`
	AMLabel string `yaml:"am_label"`
	PMLabel string `yaml:"pm_label"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AMLabel, validation.Required),
		validation.Field(&c.PMLabel, validation.Required),
	)
}

// EditorConfig holds the editor command line, e.g. "code --wait".
type EditorConfig struct {
	Command string `yaml:"command"`
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for localhost.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Journal: JournalConfig{
			AMLabel: "오전",
			PMLabel: "오후",
		},
		SQLite: SQLiteConfig{
			Path: "~/.tag.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}

// ResolveJournalPath picks the journal file: the flag, then TAG_FILE, then
// journal.path, then todo.txt in the home directory (or the working
// directory when there is no home). A leading "~" is expanded.
func ResolveJournalPath(flag string, cfg *Config, env LookupEnv) (string, error) {
	candidates := []string{flag, lookup(env, EnvJournalFile), cfg.Journal.Path}
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return ExpandHome(c)
		}
	}
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return filepath.Join(".", defaultJournalFile), nil
	}
	return filepath.Join(home, defaultJournalFile), nil
}

// ResolveEditor picks the editor command line: the flag, then
// editor.command, then EDITOR, then VISUAL, then vim.
func ResolveEditor(flag string, cfg *Config, env LookupEnv) string {
	candidates := []string{flag, cfg.Editor.Command, lookup(env, EnvEditor), lookup(env, EnvVisual)}
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return defaultEditor
}

// ResolveConfigPath returns the config file to load and whether it must
// exist. An explicit path (flag or TAG_CONFIG_FILE) is required; the
// default location is optional.
func ResolveConfigPath(explicit string) (string, bool, error) {
	if strings.TrimSpace(explicit) != "" {
		p, err := ExpandHome(explicit)
		return p, true, err
	}
	p, err := ExpandHome(defaultConfigFile)
	return p, false, err
}

// ExpandHome expands a leading "~" to the user's home directory.
func ExpandHome(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return expanded, nil
}

func lookup(env LookupEnv, key string) string {
	if env == nil {
		return ""
	}
	v, _ := env(key)
	return v
}
