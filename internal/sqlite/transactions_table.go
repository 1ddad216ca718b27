// Append-only history transactions per record.
package sqlite

import (
	"fmt"
	"time"

	"github.com/brennanma/restrack/pkg/types"
)

// appendTxn writes one history entry. The id and timestamp are filled
// in here.
func (s *Store) appendTxn(q querier, txn types.Transaction) error {
	_, err := q.Exec(
		"INSERT INTO transactions (txn_id, record_type, record_id, txn_type, field, old_value, new_value, creator_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		newUUID(), txn.RecordType, txn.RecordID, txn.Type, txn.Field,
		txn.OldValue, txn.NewValue, txn.Creator, timeString(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}
	return nil
}

// AppendTransaction records one externally-initiated history entry,
// such as a correspond or comment action.
func (s *Store) AppendTransaction(txn types.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning history append: %w", err)
	}
	defer tx.Rollback()

	if err := s.appendTxn(tx, txn); err != nil {
		return err
	}
	if err := s.touch(tx, txn.RecordType, txn.RecordID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history append: %w", err)
	}
	return nil
}

// History returns one window of a record's history in chronological
// order, plus the total entry count.
func (s *Store) History(recordType, id string, offset, limit int) ([]types.Transaction, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE record_type = ? AND record_id = ?",
		recordType, id,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT txn_id, record_type, record_id, txn_type, field, old_value, new_value, creator_id, created_at FROM transactions WHERE record_type = ? AND record_id = ? ORDER BY created_at, txn_id LIMIT ? OFFSET ?",
		recordType, id, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var out []types.Transaction
	for rows.Next() {
		var (
			txn       types.Transaction
			createdAt string
		)
		if err := rows.Scan(&txn.ID, &txn.RecordType, &txn.RecordID, &txn.Type, &txn.Field, &txn.OldValue, &txn.NewValue, &txn.Creator, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}
		txn.CreatedAt = parseTime(createdAt)
		out = append(out, txn)
	}
	return out, total, rows.Err()
}
