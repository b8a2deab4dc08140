package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvToken, "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, DefaultRoutes(), cfg.Routes)
	assert.Nil(t, cfg.Credentials)
	assert.NotNil(t, cfg.Logger)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvToken, "")
	dir := t.TempDir()

	yml := "base_url: https://tasks.example.com/api\ntimeout: 3s\nroutes:\n  delete: /tasks/{id}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yml), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://tasks.example.com/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "/tasks/{id}", cfg.Routes.Delete)
	assert.Equal(t, "/tasks/{id}/complete", cfg.Routes.Complete)
}

func TestLoad_BadTimeout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("timeout: soon\n"), 0600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad timeout")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("base_url: http://file\n"), 0600))
	t.Setenv(EnvBaseURL, "http://env")
	t.Setenv(EnvToken, "env-token")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://env", cfg.BaseURL)
	require.NotNil(t, cfg.Credentials)
	assert.Equal(t, "env-token", cfg.Credentials.API.Token)
}

func TestCredentials_RoundTripThroughLoad(t *testing.T) {
	t.Setenv(EnvToken, "")
	dir := t.TempDir()
	cfg, err := New(dir)
	require.NoError(t, err)

	creds := &Credentials{
		API: APICredentials{Token: "secret"},
		OAuth: OAuthCredentials{
			ClientID:     "id",
			ClientSecret: "shh",
			TokenURL:     "https://auth.example.com/token",
			Scopes:       []string{"tasks"},
		},
	}
	require.NoError(t, SaveCredentials(cfg.CredentialsPath(), creds))
	assert.True(t, cfg.HasCredentials())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, creds, loaded.Credentials)
	assert.True(t, loaded.Credentials.HasToken())
	assert.True(t, loaded.Credentials.HasOAuthClient())
}

func TestLoadCredentials_InsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), CredentialsFile)
	require.NoError(t, os.WriteFile(path, []byte("[api]\ntoken = \"x\"\n"), 0644))
	require.NoError(t, os.Chmod(path, 0644))

	_, err := LoadCredentials(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsecurePermissions))
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestRemoveCredentials(t *testing.T) {
	cfg, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, SaveCredentials(cfg.CredentialsPath(), &Credentials{API: APICredentials{Token: "x"}}))

	require.NoError(t, cfg.RemoveCredentials())
	assert.False(t, cfg.HasCredentials())
}
