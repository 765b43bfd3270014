package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// RememberedLogin is the persisted "remember me" preference: a flag and the
// username to pre-fill, kept across sessions with no expiry.
type RememberedLogin struct {
	Remember bool   `json:"remember"`
	Username string `json:"username"`
}

// RememberStore persists RememberedLogin as JSON in a single file.
type RememberStore struct {
	path string
}

func NewRememberStore(path string) *RememberStore {
	return &RememberStore{path: path}
}

// Load returns the stored preference, or the zero value when nothing has
// been saved yet.
func (s *RememberStore) Load() (RememberedLogin, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RememberedLogin{}, nil
		}
		return RememberedLogin{}, fmt.Errorf("reading remembered login: %w", err)
	}

	var login RememberedLogin
	if err := json.Unmarshal(data, &login); err != nil {
		return RememberedLogin{}, fmt.Errorf("decoding remembered login: %w", err)
	}
	return login, nil
}

// Save stores the preference. Saving with Remember false clears the store
// entirely, so an opted-out username never lingers on disk.
func (s *RememberStore) Save(login RememberedLogin) error {
	if !login.Remember {
		return s.Clear()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating remember store directory: %w", err)
	}

	data, err := json.Marshal(login)
	if err != nil {
		return fmt.Errorf("encoding remembered login: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing remembered login: %w", err)
	}
	return nil
}

func (s *RememberStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing remembered login: %w", err)
	}
	return nil
}
