package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// ErrInsecurePermissions is returned when the credentials file is
// readable by group or others.
var ErrInsecurePermissions = errors.New("credentials file has insecure permissions")

// Credentials holds API credentials loaded from credentials.toml.
type Credentials struct {
	API   APICredentials   `toml:"api"`
	OAuth OAuthCredentials `toml:"oauth"`
}

// APICredentials is a static bearer token.
type APICredentials struct {
	Token string `toml:"token,omitempty"`
}

// OAuthCredentials configures the OAuth2 client-credentials grant.
type OAuthCredentials struct {
	ClientID     string   `toml:"client_id,omitempty"`
	ClientSecret string   `toml:"client_secret,omitempty"`
	TokenURL     string   `toml:"token_url,omitempty"`
	Scopes       []string `toml:"scopes,omitempty"`
}

// HasToken reports whether a static token is set.
func (c *Credentials) HasToken() bool {
	return c != nil && c.API.Token != ""
}

// HasOAuthClient reports whether a complete OAuth client is set.
func (c *Credentials) HasOAuthClient() bool {
	return c != nil && c.OAuth.ClientID != "" && c.OAuth.ClientSecret != "" && c.OAuth.TokenURL != ""
}

// LoadCredentials reads a credentials file.
// Returns ErrInsecurePermissions if the file is readable by group or others.
func LoadCredentials(path string) (*Credentials, error) {
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if mode := info.Mode().Perm(); mode&0077 != 0 {
			return nil, fmt.Errorf("%w: %s has mode %04o (must be 0600 or stricter)",
				ErrInsecurePermissions, path, mode)
		}
	}

	var creds Credentials
	if _, err := toml.DecodeFile(path, &creds); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", CredentialsFile, err)
	}
	return &creds, nil
}

// SaveCredentials writes creds to path with mode 0600.
func SaveCredentials(path string, creds *Credentials) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}
