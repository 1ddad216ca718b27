// Custom field definitions and per-record value storage.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/brennanma/restrack/pkg/types"
)

// CreateCustomField registers a new custom field definition and
// returns its id.
func (s *Store) CreateCustomField(name, appliesTo, valueType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return "", fmt.Errorf("%w: custom field name is required", types.ErrInvalidData)
	}
	if _, ok := types.SchemaFor(appliesTo); !ok {
		return "", types.ErrUnknownType
	}
	if !types.IsValidCFType(valueType) {
		return "", fmt.Errorf("%w: custom field type %q", types.ErrInvalidData, valueType)
	}

	id := newUUID()
	_, err := s.db.Exec(
		"INSERT INTO custom_fields (cf_id, name, applies_to, value_type, created_at) VALUES (?, ?, ?, ?, ?)",
		id, name, appliesTo, valueType, timeString(time.Now()),
	)
	if err != nil {
		return "", fmt.Errorf("creating custom field: %w", err)
	}
	return id, nil
}

// CustomFieldsFor returns the custom fields applicable to one record
// type, in creation order.
func (s *Store) CustomFieldsFor(recordType string) ([]types.CustomField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT cf_id, name, applies_to, value_type FROM custom_fields WHERE applies_to = ? ORDER BY created_at, cf_id",
		recordType,
	)
	if err != nil {
		return nil, fmt.Errorf("loading custom fields for %s: %w", recordType, err)
	}
	defer rows.Close()

	var out []types.CustomField
	for rows.Next() {
		var cf types.CustomField
		if err := rows.Scan(&cf.ID, &cf.Name, &cf.AppliesTo, &cf.Type); err != nil {
			return nil, fmt.Errorf("scanning custom field: %w", err)
		}
		out = append(out, cf)
	}
	return out, rows.Err()
}

// CustomFieldValue loads one stored value by id, for the download
// endpoint.
func (s *Store) CustomFieldValue(valueID string) (types.CustomFieldValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v types.CustomFieldValue
	err := s.db.QueryRow(
		"SELECT value_id, cf_id, content, content_type, filename FROM custom_field_values WHERE value_id = ?",
		valueID,
	).Scan(&v.ID, &v.CustomFieldID, &v.Content, &v.ContentType, &v.Filename)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.CustomFieldValue{}, types.ErrNotFound
		}
		return types.CustomFieldValue{}, fmt.Errorf("getting custom field value %s: %w", valueID, err)
	}
	return v, nil
}

// SetCustomFieldValue stores one value (including binary content) for
// a custom field on a record, appending to the field's value list.
func (s *Store) SetCustomFieldValue(recordType, recordID, cfID string, v types.CustomFieldValue) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning value store: %w", err)
	}
	defer tx.Rollback()

	var ord int
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(ordinal)+1, 0) FROM custom_field_values WHERE record_type = ? AND record_id = ? AND cf_id = ?",
		recordType, recordID, cfID,
	).Scan(&ord)
	if err != nil {
		return "", fmt.Errorf("ordering custom field value: %w", err)
	}

	id := newUUID()
	_, err = tx.Exec(
		"INSERT INTO custom_field_values (value_id, cf_id, record_type, record_id, ordinal, content, content_type, filename) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, cfID, recordType, recordID, ord, v.Content, v.ContentType, v.Filename,
	)
	if err != nil {
		return "", fmt.Errorf("storing custom field value: %w", err)
	}
	if err := s.touch(tx, recordType, recordID); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing value store: %w", err)
	}
	return id, nil
}

// cfValues loads all custom field values of one record, keyed by
// custom field id, values in stored order.
func (s *Store) cfValues(q querier, recordType, id string) (map[string][]types.CustomFieldValue, error) {
	rows, err := q.Query(
		"SELECT value_id, cf_id, content, content_type, filename FROM custom_field_values WHERE record_type = ? AND record_id = ? ORDER BY cf_id, ordinal",
		recordType, id,
	)
	if err != nil {
		return nil, fmt.Errorf("loading custom field values for %s %s: %w", recordType, id, err)
	}
	defer rows.Close()

	out := make(map[string][]types.CustomFieldValue)
	for rows.Next() {
		var v types.CustomFieldValue
		if err := rows.Scan(&v.ID, &v.CustomFieldID, &v.Content, &v.ContentType, &v.Filename); err != nil {
			return nil, fmt.Errorf("scanning custom field value: %w", err)
		}
		out[v.CustomFieldID] = append(out[v.CustomFieldID], v)
	}
	return out, rows.Err()
}

// replaceCFValues replaces the text-valued custom field value lists
// named in the update set. Binary values are managed one at a time via
// SetCustomFieldValue and are untouched here.
func (s *Store) replaceCFValues(q querier, recordType, id string, values map[string][]types.CustomFieldValue) error {
	for cfID, list := range values {
		if _, err := q.Exec(
			"DELETE FROM custom_field_values WHERE record_type = ? AND record_id = ? AND cf_id = ?",
			recordType, id, cfID,
		); err != nil {
			return fmt.Errorf("clearing custom field %s on %s %s: %w", cfID, recordType, id, err)
		}
		for i, v := range list {
			if _, err := q.Exec(
				"INSERT INTO custom_field_values (value_id, cf_id, record_type, record_id, ordinal, content, content_type, filename) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				newUUID(), cfID, recordType, id, i, v.Content, v.ContentType, v.Filename,
			); err != nil {
				return fmt.Errorf("storing custom field %s on %s %s: %w", cfID, recordType, id, err)
			}
		}
	}
	return nil
}
