package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SessionStore is the client's login state: an in-memory view plus a
// token file that survives restarts. The file holds only the token; the
// user is fetched again from /auth/me on Restore.
type SessionStore struct {
	LoggedIn bool
	User     *Profile
	Token    string

	path string
}

type sessionFile struct {
	Token string `json:"token"`
}

// NewSessionStore returns an empty, logged-out store persisting to path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath is $PARKCTL_SESSION_FILE, falling back to
// parkctl/session.json under the user's config directory.
func DefaultSessionPath() string {
	if envPath := os.Getenv("PARKCTL_SESSION_FILE"); envPath != "" {
		return envPath
	}
	configDirectory, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "parkctl-session.json")
	}
	return filepath.Join(configDirectory, "parkctl", "session.json")
}

// Path is where the token is persisted.
func (s *SessionStore) Path() string { return s.path }

// Login records a successful login and persists the token (mode 0600).
func (s *SessionStore) Login(user User, token string) error {
	s.LoggedIn = true
	s.User = &Profile{ID: user.ID, Email: user.Email}
	s.Token = token

	data, err := json.Marshal(sessionFile{Token: token})
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}
	return nil
}

// Logout clears memory and removes the token file.
func (s *SessionStore) Logout() error {
	s.LoggedIn = false
	s.User = nil
	s.Token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file %s: %w", s.path, err)
	}
	return nil
}

// Restore loads a persisted token and asks the server who it belongs to.
// With no file the store stays logged out. A token the server rejects is
// deleted. On success api carries the token for later calls.
func (s *SessionStore) Restore(ctx context.Context, api *Client) error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading session file %s: %w", s.path, err)
	}
	var stored sessionFile
	if err := json.Unmarshal(data, &stored); err != nil || stored.Token == "" {
		return s.Logout()
	}

	api.SetToken(stored.Token)
	profile, err := api.Me(ctx)
	if err != nil {
		api.SetToken("")
		if IsUnauthorized(err) {
			return s.Logout()
		}
		return err
	}

	s.LoggedIn = true
	s.User = &profile
	s.Token = stored.Token
	return nil
}
