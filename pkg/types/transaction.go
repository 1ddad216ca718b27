package types

import "time"

// Transaction types recorded in a record's history.
const (
	TxnCreate     = "create"
	TxnSet        = "set"
	TxnCorrespond = "correspond"
	TxnComment    = "comment"
)

// Transaction is one history entry of a record: a creation, a field
// change, or a correspondence. History entries are append-only.
type Transaction struct {
	ID         string // UUID v7, generated on creation.
	RecordType string
	RecordID   string
	Type       string // One of the Txn constants.
	Field      string // Changed field name, for TxnSet.
	OldValue   string
	NewValue   string
	Creator    string // User UID of the acting principal.
	CreatedAt  time.Time
}
