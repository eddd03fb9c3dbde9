package services

import (
	"database/sql"
	"fmt"
	"sync"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	// DefaultTheme is used when a client has no stored preference.
	DefaultTheme = ThemeDark
)

// PreferenceStore persists the single per-client preference the service
// keeps: the theme flag. With a nil db it degrades to an in-memory map, so
// the rest of the service does not care whether persistence is configured.
type PreferenceStore struct {
	db *sql.DB

	mu     sync.RWMutex
	memory map[string]string
}

// NewPreferenceStore creates a preference store. db may be nil.
func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{
		db:     db,
		memory: make(map[string]string),
	}
}

// Theme returns the stored theme for a client, defaulting to dark.
func (s *PreferenceStore) Theme(clientID string) (string, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if theme, ok := s.memory[clientID]; ok {
			return theme, nil
		}
		return DefaultTheme, nil
	}

	var theme string
	err := s.db.QueryRow(
		`SELECT theme FROM client_preferences WHERE client_id = $1`, clientID,
	).Scan(&theme)
	if err == sql.ErrNoRows {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}
	return theme, nil
}

// SetTheme stores the theme for a client. Only light and dark are accepted.
func (s *PreferenceStore) SetTheme(clientID, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("invalid theme %q", theme)
	}

	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.memory[clientID] = theme
		return nil
	}

	_, err := s.db.Exec(
		`INSERT INTO client_preferences (client_id, theme, updated_at)
		 VALUES ($1, $2, CURRENT_TIMESTAMP)
		 ON CONFLICT (client_id)
		 DO UPDATE SET theme = $2, updated_at = CURRENT_TIMESTAMP`,
		clientID, theme,
	)
	if err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return nil
}
