package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileSettings mirrors config.yaml.
type fileSettings struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
	Routes  Routes `yaml:"routes"`
}

// Load creates a Config for configDir and applies, in order of
// increasing precedence: defaults, config.yaml, credentials.toml and
// the environment. Missing files are not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if cfg.HasCredentials() {
		creds, err := LoadCredentials(cfg.CredentialsPath())
		if err != nil {
			return nil, err
		}
		cfg.Credentials = creds
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fs.BaseURL != "" {
		c.BaseURL = fs.BaseURL
	}
	if fs.Timeout != "" {
		d, err := time.ParseDuration(fs.Timeout)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid %s: bad timeout: %q", ConfigFile, fs.Timeout)
		}
		c.Timeout = d
	}
	if fs.Routes.Complete != "" {
		c.Routes.Complete = fs.Routes.Complete
	}
	if fs.Routes.Delete != "" {
		c.Routes.Delete = fs.Routes.Delete
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		if c.Credentials == nil {
			c.Credentials = &Credentials{}
		}
		c.Credentials.API.Token = v
	}
}
