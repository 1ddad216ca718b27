// Ticket row access: hydration, creation, update, and criteria-based
// querying.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/brennanma/restrack/pkg/types"
)

// getTicket hydrates one ticket row plus its role memberships and
// custom field values.
func (s *Store) getTicket(q querier, id string) (*types.Ticket, error) {
	row := q.QueryRow(
		"SELECT ticket_id, subject, status, queue_id, creator_id, priority, created_at, updated_at FROM tickets WHERE ticket_id = ?",
		id,
	)
	t, err := hydrateTicket(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting ticket %s: %w", id, err)
	}
	if t.Members, err = s.roleMembers(q, "ticket", id); err != nil {
		return nil, err
	}
	if t.CFValues, err = s.cfValues(q, "ticket", id); err != nil {
		return nil, err
	}
	return t, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for hydration helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func hydrateTicket(row rowScanner) (*types.Ticket, error) {
	var (
		t                    types.Ticket
		queueID              string
		createdAt, updatedAt string
	)
	err := row.Scan(&t.ID, &t.Subject, &t.Status, &queueID, &t.Creator, &t.Priority, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.Queue = "Queue-" + queueID
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

// createTicket inserts a new ticket row from a normalized update map.
func (s *Store) createTicket(q querier, updates map[string]any, creator string) (string, error) {
	subject := cast.ToString(updates["Subject"])
	if subject == "" {
		return "", fmt.Errorf("%w: Subject is required", types.ErrInvalidData)
	}
	queueID := bareID(updates["Queue"])
	if queueID == "" {
		return "", fmt.Errorf("%w: Queue is required", types.ErrInvalidData)
	}
	if _, err := s.getQueue(q, queueID); err != nil {
		return "", fmt.Errorf("resolving queue %s: %w", queueID, err)
	}

	status := strings.ToLower(cast.ToString(updates["Status"]))
	if status == "" {
		status = types.StatusNew
	}
	if !types.IsValidStatus(status) {
		return "", fmt.Errorf("%w: status %q", types.ErrInvalidData, status)
	}

	id := newUUID()
	now := timeString(time.Now())
	_, err := q.Exec(
		"INSERT INTO tickets (ticket_id, subject, status, queue_id, creator_id, priority, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, subject, status, queueID, creator, cast.ToInt64(updates["Priority"]), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("creating ticket: %w", err)
	}
	return id, nil
}

// updateTicket applies writable scalar fields to an existing ticket
// and appends one set transaction per changed field.
func (s *Store) updateTicket(q querier, current *types.Ticket, updates map[string]any, creator string) error {
	for field, v := range updates {
		col, ok := columnsFor["ticket"][field]
		if !ok {
			continue
		}
		var value any
		switch field {
		case "Subject":
			value = cast.ToString(v)
		case "Status":
			status := strings.ToLower(cast.ToString(v))
			if !types.IsValidStatus(status) {
				return fmt.Errorf("%w: status %q", types.ErrInvalidData, status)
			}
			value = status
		case "Queue":
			queueID := bareID(v)
			if _, err := s.getQueue(q, queueID); err != nil {
				return fmt.Errorf("resolving queue %s: %w", queueID, err)
			}
			value = queueID
		case "Priority":
			value = cast.ToInt64(v)
		default:
			continue
		}

		old := fmt.Sprintf("%v", current.Fields()[field])
		if _, err := q.Exec(
			fmt.Sprintf("UPDATE tickets SET %s = ? WHERE ticket_id = ?", col),
			value, current.ID,
		); err != nil {
			return fmt.Errorf("updating ticket %s: %w", current.ID, err)
		}
		if err := s.appendTxn(q, types.Transaction{
			RecordType: "ticket",
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

// queryTickets executes compiled criteria and returns the requested
// window plus the total match count.
func (s *Store) queryTickets(criteria types.Criteria, offset, limit int) ([]types.Record, int, error) {
	where, args, err := whereClause("ticket", criteria)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tickets"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting tickets: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT ticket_id, subject, status, queue_id, creator_id, priority, created_at, updated_at FROM tickets"+
			where+" ORDER BY created_at, ticket_id LIMIT ? OFFSET ?",
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying tickets: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		t, err := hydrateTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("hydrating ticket row: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// uidClasses are the class prefixes bareID strips.
var uidClasses = []string{"Ticket", "Queue", "User"}

// bareID extracts a bare record id from a normalized update value,
// accepting either a plain id or a UID string such as "Queue-<id>".
func bareID(v any) string {
	s := cast.ToString(v)
	for _, class := range uidClasses {
		if strings.HasPrefix(s, class+"-") {
			return s[len(class)+1:]
		}
	}
	return s
}
