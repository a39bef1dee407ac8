package client

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token across desk sessions, the way
// the browser frontend kept it in local storage
type TokenStore struct {
	path string
}

// NewTokenStore creates a token store backed by the given file path
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// DefaultTokenPath returns the token file location under the user's
// config directory
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ticketdesk", "token"), nil
}

// Load reads the cached token. A missing file is not an error: it just
// means the operator has to log in.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the parent directory if needed. The
// file is operator-private.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}
