// User row access: hydration, creation, update, and criteria-based
// querying.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/brennanma/restrack/pkg/types"
)

// getUser hydrates one user row. Users carry no roles or custom
// fields.
func (s *Store) getUser(q querier, id string) (*types.User, error) {
	row := q.QueryRow(
		"SELECT user_id, name, email, real_name, disabled, created_at, updated_at FROM users WHERE user_id = ?",
		id,
	)
	u, err := hydrateUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return u, nil
}

func hydrateUser(row rowScanner) (*types.User, error) {
	var (
		u                    types.User
		disabled             int
		createdAt, updatedAt string
	)
	err := row.Scan(&u.ID, &u.Name, &u.EmailAddress, &u.RealName, &disabled, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	u.IsDisabled = disabled != 0
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}

// createUser inserts a new user row from a normalized update map.
func (s *Store) createUser(q querier, updates map[string]any) (string, error) {
	name := cast.ToString(updates["Name"])
	if name == "" {
		return "", fmt.Errorf("%w: Name is required", types.ErrInvalidData)
	}

	id := newUUID()
	now := timeString(time.Now())
	_, err := q.Exec(
		"INSERT INTO users (user_id, name, email, real_name, password, disabled, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, name,
		cast.ToString(updates["EmailAddress"]),
		cast.ToString(updates["RealName"]),
		cast.ToString(updates["Password"]),
		boolColumn(updates["Disabled"]),
		now, now,
	)
	if err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}
	return id, nil
}

// updateUser applies writable scalar fields to an existing user and
// appends one set transaction per changed field. Password changes are
// recorded without values.
func (s *Store) updateUser(q querier, current *types.User, updates map[string]any, creator string) error {
	for field, v := range updates {
		col, ok := columnsFor["user"][field]
		if !ok {
			continue
		}
		var value any
		switch field {
		case "Name":
			name := cast.ToString(v)
			if name == "" {
				return fmt.Errorf("%w: Name must not be empty", types.ErrInvalidData)
			}
			value = name
		case "EmailAddress", "RealName", "Password":
			value = cast.ToString(v)
		case "Disabled":
			value = boolColumn(v)
		default:
			continue
		}

		if _, err := q.Exec(
			fmt.Sprintf("UPDATE users SET %s = ? WHERE user_id = ?", col),
			value, current.ID,
		); err != nil {
			return fmt.Errorf("updating user %s: %w", current.ID, err)
		}

		txn := types.Transaction{
			RecordType: "user",
			RecordID:   current.ID,
			Type:       types.TxnSet,
			Field:      field,
			Creator:    creator,
		}
		if field != "Password" {
			txn.OldValue = fmt.Sprintf("%v", current.Fields()[field])
			txn.NewValue = fmt.Sprintf("%v", value)
		}
		if err := s.appendTxn(q, txn); err != nil {
			return err
		}
	}
	return nil
}

// queryUsers executes compiled criteria and returns the requested
// window plus the total match count.
func (s *Store) queryUsers(criteria types.Criteria, offset, limit int) ([]types.Record, int, error) {
	where, args, err := whereClause("user", criteria)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT user_id, name, email, real_name, disabled, created_at, updated_at FROM users"+
			where+" ORDER BY created_at, user_id LIMIT ? OFFSET ?",
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		u, err := hydrateUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("hydrating user row: %w", err)
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}
