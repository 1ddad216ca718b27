package types

import (
	"strings"
	"time"
)

// Ticket statuses.
const (
	StatusNew      = "new"
	StatusOpen     = "open"
	StatusStalled  = "stalled"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
	StatusDeleted  = "deleted"
)

// validStatuses is the set of recognized ticket status values.
var validStatuses = map[string]bool{
	StatusNew:      true,
	StatusOpen:     true,
	StatusStalled:  true,
	StatusResolved: true,
	StatusRejected: true,
	StatusDeleted:  true,
}

// IsValidStatus reports whether the given string is a recognized
// ticket status.
func IsValidStatus(s string) bool {
	return validStatuses[strings.ToLower(s)]
}

// Ticket is a loaded view of one ticket record, including its role
// memberships and custom field values.
type Ticket struct {
	ID        string // UUID v7, generated on creation.
	Subject   string
	Status    string // One of the Status constants.
	Queue     string // Queue UID, e.g. "Queue-<id>".
	Creator   string // User UID of the creating principal.
	Priority  int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Members holds role memberships keyed by role name; each entry is
	// an ordered list of member UIDs.
	Members map[string][]string

	// CFValues holds custom field values keyed by custom field ID.
	CFValues map[string][]CustomFieldValue
}

var (
	_ Record             = (*Ticket)(nil)
	_ RoleCapable        = (*Ticket)(nil)
	_ CustomFieldCapable = (*Ticket)(nil)
)

func (t *Ticket) RecordType() string { return "ticket" }
func (t *Ticket) RecordID() string   { return t.ID }
func (t *Ticket) UID() string        { return "Ticket-" + t.ID }

// Fields returns the raw stored field mapping.
func (t *Ticket) Fields() map[string]any {
	return map[string]any{
		"Subject":     t.Subject,
		"Status":      t.Status,
		"Queue":       t.Queue,
		"Creator":     t.Creator,
		"Priority":    t.Priority,
		"Created":     t.CreatedAt,
		"LastUpdated": t.UpdatedAt,
	}
}

// Value returns one field through the ticket's public accessor. Status
// is normalized to lowercase regardless of how it was stored.
func (t *Ticket) Value(name string) (any, bool) {
	switch name {
	case "Subject":
		return t.Subject, true
	case "Status":
		return strings.ToLower(t.Status), true
	case "Queue":
		return t.Queue, true
	case "Creator":
		return t.Creator, true
	case "Priority":
		return t.Priority, true
	case "Created":
		return t.CreatedAt, true
	case "LastUpdated":
		return t.UpdatedAt, true
	}
	return nil, false
}

// Disabled reports whether the ticket has been deleted.
func (t *Ticket) Disabled() bool { return t.Status == StatusDeleted }

func (t *Ticket) LastUpdated() time.Time { return t.UpdatedAt }

// RoleMembers returns the member UIDs of one role in stored order.
func (t *Ticket) RoleMembers(role string) []string {
	return t.Members[role]
}

// CustomFieldValues returns the ordered values stored for one custom
// field on this ticket.
func (t *Ticket) CustomFieldValues(cfID string) []CustomFieldValue {
	return t.CFValues[cfID]
}
