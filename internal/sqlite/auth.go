// Token resolution and the rights table. The store only holds the
// grants; permission evaluation happens through the predicate handed
// to the representation engine.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/brennanma/restrack/pkg/types"
)

// UserForToken resolves an auth token to a user id.
func (s *Store) UserForToken(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var userID string
	err := s.db.QueryRow("SELECT user_id FROM tokens WHERE token = ?", token).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("resolving token: %w", err)
	}
	return userID, nil
}

// IssueToken binds an auth token to a user.
func (s *Store) IssueToken(token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO tokens (token, user_id) VALUES (?, ?)",
		token, userID,
	); err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}
	return nil
}

// Grant records that a principal may perform one named action.
func (s *Store) Grant(userID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO rights (principal_id, action) VALUES (?, ?)",
		userID, action,
	); err != nil {
		return fmt.Errorf("granting %s to %s: %w", action, userID, err)
	}
	return nil
}

// Revoke removes one grant.
func (s *Store) Revoke(userID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		"DELETE FROM rights WHERE principal_id = ? AND action = ?",
		userID, action,
	); err != nil {
		return fmt.Errorf("revoking %s from %s: %w", action, userID, err)
	}
	return nil
}

// PermissionFunc builds the permission predicate for one principal.
// The returned function is what the representation engine consumes; it
// answers from the rights table and fails closed on storage errors.
func (s *Store) PermissionFunc(userID string) func(action string) bool {
	return func(action string) bool {
		s.mu.RLock()
		defer s.mu.RUnlock()

		var one int
		err := s.db.QueryRow(
			"SELECT 1 FROM rights WHERE principal_id = ? AND action = ?",
			userID, action,
		).Scan(&one)
		if err != nil {
			if err != sql.ErrNoRows {
				s.log.Warn("rights lookup failed", "user", userID, "action", action, "error", err)
			}
			return false
		}
		return true
	}
}
