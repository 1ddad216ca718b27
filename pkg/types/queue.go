package types

import "time"

// Queue is a loaded view of one queue record.
type Queue struct {
	ID          string // UUID v7, generated on creation.
	Name        string
	Description string
	IsDisabled  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Members holds role memberships keyed by role name.
	Members map[string][]string

	// CFValues holds custom field values keyed by custom field ID.
	CFValues map[string][]CustomFieldValue
}

var (
	_ Record             = (*Queue)(nil)
	_ RoleCapable        = (*Queue)(nil)
	_ CustomFieldCapable = (*Queue)(nil)
)

func (q *Queue) RecordType() string { return "queue" }
func (q *Queue) RecordID() string   { return q.ID }
func (q *Queue) UID() string        { return "Queue-" + q.ID }

// Fields returns the raw stored field mapping.
func (q *Queue) Fields() map[string]any {
	return map[string]any{
		"Name":        q.Name,
		"Description": q.Description,
		"Disabled":    q.IsDisabled,
		"Created":     q.CreatedAt,
		"LastUpdated": q.UpdatedAt,
	}
}

// Value returns one field through the queue's public accessor.
func (q *Queue) Value(name string) (any, bool) {
	switch name {
	case "Name":
		return q.Name, true
	case "Description":
		return q.Description, true
	case "Disabled":
		return q.IsDisabled, true
	case "Created":
		return q.CreatedAt, true
	case "LastUpdated":
		return q.UpdatedAt, true
	}
	return nil, false
}

func (q *Queue) Disabled() bool          { return q.IsDisabled }
func (q *Queue) LastUpdated() time.Time  { return q.UpdatedAt }

// RoleMembers returns the member UIDs of one role in stored order.
func (q *Queue) RoleMembers(role string) []string {
	return q.Members[role]
}

// CustomFieldValues returns the ordered values stored for one custom
// field on this queue.
func (q *Queue) CustomFieldValues(cfID string) []CustomFieldValue {
	return q.CFValues[cfID]
}
