// Package config handles the XDG configuration directory, the config
// file, stored credentials and environment overrides.
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskctl"

	// ConfigFile is the optional YAML settings filename.
	ConfigFile = "config.yaml"

	// CredentialsFile is the stored API credentials filename.
	CredentialsFile = "credentials.toml"

	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000/api"

	// EnvBaseURL overrides the configured base URL.
	EnvBaseURL = "TASKS_API_BASE_URL"

	// EnvToken overrides the stored API token.
	EnvToken = "TASKS_API_TOKEN"
)

// Routes holds the path templates for the operations whose binding
// differs between API deployments. "{id}" is replaced by the task ID.
type Routes struct {
	Complete string `yaml:"complete"`
	Delete   string `yaml:"delete"`
}

// DefaultRoutes returns the bindings served by the reference backend.
func DefaultRoutes() Routes {
	return Routes{
		Complete: "/tasks/{id}/complete",
		Delete:   "/tasks/{id}/complete",
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// BaseURL is the API root that request paths are appended to.
	BaseURL string

	// Timeout bounds each API call. Zero means no timeout.
	Timeout time.Duration

	Routes Routes

	// Credentials is nil when nothing is stored and no token is in the environment.
	Credentials *Credentials

	// Logger receives debug output. Never nil after New.
	Logger *slog.Logger

	// Stdin is read by commands that ask for confirmation.
	Stdin io.Reader
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskctl or $HOME/.config/taskctl.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Routes:  DefaultRoutes(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdin:   os.Stdin,
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the YAML settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// CredentialsPath returns the path to the stored credentials file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Dir, CredentialsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCredentials checks if the credentials file exists.
func (c *Config) HasCredentials() bool {
	_, err := os.Stat(c.CredentialsPath())
	return err == nil
}

// RemoveCredentials deletes the credentials file.
func (c *Config) RemoveCredentials() error {
	return os.Remove(c.CredentialsPath())
}

// SetLogger replaces the debug logger. A nil logger discards output.
func (c *Config) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.Logger = l
}
