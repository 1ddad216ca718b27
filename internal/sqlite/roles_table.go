// Role membership storage shared by all role-capable record types.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/brennanma/restrack/pkg/types"
)

// roleMembers loads all role memberships of one record, keyed by role
// name, members in stored order.
func (s *Store) roleMembers(q querier, recordType, id string) (map[string][]string, error) {
	rows, err := q.Query(
		"SELECT role, member_uid FROM role_members WHERE record_type = ? AND record_id = ? ORDER BY role, ordinal",
		recordType, id,
	)
	if err != nil {
		return nil, fmt.Errorf("loading role members for %s %s: %w", recordType, id, err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var role, member string
		if err := rows.Scan(&role, &member); err != nil {
			return nil, fmt.Errorf("scanning role member: %w", err)
		}
		out[role] = append(out[role], member)
	}
	return out, rows.Err()
}

// applyRoles replaces the memberships of every role named in the
// update map. Values are bare user ids or UID strings, single or list.
func (s *Store) applyRoles(q querier, recordType, id string, updates map[string]any) error {
	schema, ok := types.SchemaFor(recordType)
	if !ok {
		return types.ErrUnknownType
	}
	for _, role := range schema.Roles {
		v, ok := updates[role.Name]
		if !ok {
			continue
		}
		if err := s.setRoleMembers(q, recordType, id, role.Name, memberUIDs(v)); err != nil {
			return err
		}
	}
	return nil
}

// setRoleMembers replaces one role's membership rows.
func (s *Store) setRoleMembers(q querier, recordType, id, role string, members []string) error {
	if _, err := q.Exec(
		"DELETE FROM role_members WHERE record_type = ? AND record_id = ? AND role = ?",
		recordType, id, role,
	); err != nil {
		return fmt.Errorf("clearing role %s on %s %s: %w", role, recordType, id, err)
	}
	for i, member := range members {
		if _, err := q.Exec(
			"INSERT INTO role_members (record_type, record_id, role, member_uid, ordinal) VALUES (?, ?, ?, ?, ?)",
			recordType, id, role, member, i,
		); err != nil {
			return fmt.Errorf("assigning role %s on %s %s: %w", role, recordType, id, err)
		}
	}
	return nil
}

// memberUIDs normalizes a role update value into member UID strings.
// Bare ids become user UIDs; strings already carrying a class prefix
// pass through.
func memberUIDs(v any) []string {
	var list []any
	if l, ok := v.([]any); ok {
		list = l
	} else {
		list = []any{v}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s := cast.ToString(item)
		if s == "" || s == "0" {
			continue
		}
		out = append(out, memberUID(s))
	}
	return out
}

func memberUID(s string) string {
	for _, class := range uidClasses {
		if strings.HasPrefix(s, class+"-") {
			return s
		}
	}
	return "User-" + s
}
