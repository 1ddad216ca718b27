package types

import "time"

// Record is a read-only view over one stored domain record. The store
// produces Records on demand; the representation engine never mutates
// them and never caches them across requests.
type Record interface {
	// RecordType returns the lowercase type name (e.g. "ticket").
	RecordType() string

	// RecordID returns the record's opaque identifier.
	RecordID() string

	// UID returns the record's unique identifier string in
	// <ClassName>-<id> form (e.g. "Ticket-42").
	UID() string

	// Fields returns the raw field mapping as stored. Callers must not
	// modify the returned map.
	Fields() map[string]any

	// Value returns the value of one field through the record's public
	// accessor, applying any formatting the raw storage lacks. The
	// second return is false when the field has no accessor.
	Value(name string) (any, bool)

	// Disabled reports whether the record is in a disabled or
	// end-of-life state.
	Disabled() bool

	// LastUpdated returns the time of the record's last modification.
	LastUpdated() time.Time
}

// RoleCapable is implemented by record types that carry role-based
// group memberships (e.g. tickets and queues, but not users).
type RoleCapable interface {
	// RoleMembers returns the member UIDs assigned to the named role,
	// in stored order.
	RoleMembers(role string) []string
}

// CustomFieldCapable is implemented by record types that carry custom
// field values.
type CustomFieldCapable interface {
	// CustomFieldValues returns the ordered values stored for one
	// custom field on this record.
	CustomFieldValues(cfID string) []CustomFieldValue
}
