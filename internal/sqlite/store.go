// Package sqlite implements the SQLite record store behind the
// restrack API: record persistence, criteria-based querying, history
// transactions, and the rights table consumed by the permission
// predicate.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/brennanma/restrack/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Store is the SQLite-backed record store. The mutex is the store's
// write-atomicity guarantee: a conditional update's version check and
// apply run under one critical section.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	cfg types.Config
	log *slog.Logger
}

// Open creates the data directory if needed, opens the database, and
// ensures the schema exists.
func Open(cfg types.Config, log *slog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "restrack.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Info("store opened", "path", dbPath)
	return &Store{db: db, cfg: cfg, log: log}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// querier is the statement-execution surface shared by *sql.DB and
// *sql.Tx. Row helpers take it so the same code serves plain reads and
// the transactional write paths.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// timeString renders a timestamp in the store's column format.
func timeString(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime reads a timestamp column back.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Record loads one record with its role memberships and custom field
// values. Returns ErrUnknownType for unregistered types and
// ErrNotFound when no row exists.
func (s *Store) Record(recordType, id string) (types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record(s.db, recordType, id)
}

// record is the lock-free variant used inside write critical sections.
func (s *Store) record(q querier, recordType, id string) (types.Record, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	switch recordType {
	case "ticket":
		return s.getTicket(q, id)
	case "queue":
		return s.getQueue(q, id)
	case "user":
		return s.getUser(q, id)
	default:
		return nil, types.ErrUnknownType
	}
}

// Query executes compiled search criteria against one record type and
// returns the requested window plus the total match count.
func (s *Store) Query(recordType string, criteria types.Criteria, offset, limit int) ([]types.Record, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch recordType {
	case "ticket":
		return s.queryTickets(criteria, offset, limit)
	case "queue":
		return s.queryQueues(criteria, offset, limit)
	case "user":
		return s.queryUsers(criteria, offset, limit)
	default:
		return nil, 0, types.ErrUnknownType
	}
}

// Create inserts a new record from a normalized field-update map and
// returns its id. Role assignments and custom field values in the map
// are persisted alongside the row, and a create transaction is
// appended to the record's history. The whole insert runs in one
// database transaction: a record never appears without its roles,
// values, and history entry.
func (s *Store) Create(recordType string, updates map[string]any, cfValues map[string][]types.CustomFieldValue, creator string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning create: %w", err)
	}
	defer tx.Rollback()

	var id string
	switch recordType {
	case "ticket":
		id, err = s.createTicket(tx, updates, creator)
	case "queue":
		id, err = s.createQueue(tx, updates)
	case "user":
		id, err = s.createUser(tx, updates)
	default:
		return "", types.ErrUnknownType
	}
	if err != nil {
		return "", err
	}

	if err := s.applyRoles(tx, recordType, id, updates); err != nil {
		return "", err
	}
	if err := s.replaceCFValues(tx, recordType, id, cfValues); err != nil {
		return "", err
	}
	if err := s.appendTxn(tx, types.Transaction{
		RecordType: recordType,
		RecordID:   id,
		Type:       types.TxnCreate,
		Creator:    creator,
	}); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing create: %w", err)
	}
	return id, nil
}

// Apply updates one record inside the store's write critical section.
// check runs against the currently stored record before anything is
// written; a non-nil result aborts the whole update, which is how the
// caller's optimistic-concurrency validation stays atomic with the
// apply. Field changes are recorded as history transactions. All
// statements run in one database transaction, so a rejected or failed
// update leaves the record untouched, including updates where an early
// field passes validation and a later one does not.
func (s *Store) Apply(recordType, id string, updates map[string]any, cfValues map[string][]types.CustomFieldValue, creator string, check func(types.Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	current, err := s.record(tx, recordType, id)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(current); err != nil {
			return err
		}
	}

	switch recordType {
	case "ticket":
		err = s.updateTicket(tx, current.(*types.Ticket), updates, creator)
	case "queue":
		err = s.updateQueue(tx, current.(*types.Queue), updates, creator)
	case "user":
		err = s.updateUser(tx, current.(*types.User), updates, creator)
	default:
		err = types.ErrUnknownType
	}
	if err != nil {
		return err
	}

	if err := s.applyRoles(tx, recordType, id, updates); err != nil {
		return err
	}
	if cfValues != nil {
		if err := s.replaceCFValues(tx, recordType, id, cfValues); err != nil {
			return err
		}
	}
	if err := s.touch(tx, recordType, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing update: %w", err)
	}
	return nil
}

// touch bumps a record's updated_at column.
func (s *Store) touch(q querier, recordType, id string) error {
	table, idCol, ok := tableFor(recordType)
	if !ok {
		return types.ErrUnknownType
	}
	_, err := q.Exec(
		fmt.Sprintf("UPDATE %s SET updated_at = ? WHERE %s = ?", table, idCol),
		timeString(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("touching %s %s: %w", recordType, id, err)
	}
	return nil
}

// tableFor maps a record type to its table and id column.
func tableFor(recordType string) (table, idCol string, ok bool) {
	switch recordType {
	case "ticket":
		return "tickets", "ticket_id", true
	case "queue":
		return "queues", "queue_id", true
	case "user":
		return "users", "user_id", true
	}
	return "", "", false
}
