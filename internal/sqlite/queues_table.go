// Queue row access: hydration, creation, update, and criteria-based
// querying.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/brennanma/restrack/pkg/types"
)

// getQueue hydrates one queue row plus its role memberships and custom
// field values.
func (s *Store) getQueue(q querier, id string) (*types.Queue, error) {
	row := q.QueryRow(
		"SELECT queue_id, name, description, disabled, created_at, updated_at FROM queues WHERE queue_id = ?",
		id,
	)
	queue, err := hydrateQueue(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting queue %s: %w", id, err)
	}
	if queue.Members, err = s.roleMembers(q, "queue", id); err != nil {
		return nil, err
	}
	if queue.CFValues, err = s.cfValues(q, "queue", id); err != nil {
		return nil, err
	}
	return queue, nil
}

func hydrateQueue(row rowScanner) (*types.Queue, error) {
	var (
		q                    types.Queue
		disabled             int
		createdAt, updatedAt string
	)
	err := row.Scan(&q.ID, &q.Name, &q.Description, &disabled, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	q.IsDisabled = disabled != 0
	q.CreatedAt = parseTime(createdAt)
	q.UpdatedAt = parseTime(updatedAt)
	return &q, nil
}

// createQueue inserts a new queue row from a normalized update map.
func (s *Store) createQueue(q querier, updates map[string]any) (string, error) {
	name := cast.ToString(updates["Name"])
	if name == "" {
		return "", fmt.Errorf("%w: Name is required", types.ErrInvalidData)
	}

	id := newUUID()
	now := timeString(time.Now())
	_, err := q.Exec(
		"INSERT INTO queues (queue_id, name, description, disabled, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, name, cast.ToString(updates["Description"]), boolColumn(updates["Disabled"]), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("creating queue: %w", err)
	}
	return id, nil
}

// updateQueue applies writable scalar fields to an existing queue and
// appends one set transaction per changed field.
func (s *Store) updateQueue(q querier, current *types.Queue, updates map[string]any, creator string) error {
	for field, v := range updates {
		col, ok := columnsFor["queue"][field]
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
		case "Description":
			value = cast.ToString(v)
		case "Disabled":
			value = boolColumn(v)
		default:
			continue
		}

		old := fmt.Sprintf("%v", current.Fields()[field])
		if _, err := q.Exec(
			fmt.Sprintf("UPDATE queues SET %s = ? WHERE queue_id = ?", col),
			value, current.ID,
		); err != nil {
			return fmt.Errorf("updating queue %s: %w", current.ID, err)
		}
		if err := s.appendTxn(q, types.Transaction{
			RecordType: "queue",
			RecordID:   current.ID,
			Type:       types.TxnSet,
			Field:      field,
			OldValue:   old,
			NewValue:   fmt.Sprintf("%v", value),
			Creator:    creator,
		}); err != nil {
			return err
		}
	}
	return nil
}

// queryQueues executes compiled criteria and returns the requested
// window plus the total match count.
func (s *Store) queryQueues(criteria types.Criteria, offset, limit int) ([]types.Record, int, error) {
	where, args, err := whereClause("queue", criteria)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM queues"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting queues: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT queue_id, name, description, disabled, created_at, updated_at FROM queues"+
			where+" ORDER BY created_at, queue_id LIMIT ? OFFSET ?",
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying queues: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		q, err := hydrateQueue(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("hydrating queue row: %w", err)
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}

// boolColumn coerces a JSON truthiness value into a 0/1 column value.
func boolColumn(v any) int {
	if cast.ToBool(v) {
		return 1
	}
	return 0
}
