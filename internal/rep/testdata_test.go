package rep

import (
	"io"
	"log/slog"
	"time"

	"github.com/brennanma/restrack/pkg/types"
)

// quietLogger discards log output in tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// allowAll and denyAll are the boundary permission predicates.
func allowAll(string) bool { return true }
func denyAll(string) bool  { return false }

// sampleTicket builds a ticket with a fixed timestamp, one single-role
// owner, two requestors, and one text custom field value.
func sampleTicket() *types.Ticket {
	created := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	return &types.Ticket{
		ID:        "t1",
		Subject:   "printer on fire",
		Status:    "Open",
		Queue:     "Queue-q1",
		Creator:   "User-u1",
		Priority:  10,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
		Members: map[string][]string{
			"Owner":     {"User-u1"},
			"Requestor": {"User-u2", "User-u3"},
		},
		CFValues: map[string][]types.CustomFieldValue{
			"cf1": {{ID: "v1", CustomFieldID: "cf1", Content: "severe"}},
		},
	}
}

func ticketSchema() types.Schema {
	s, _ := types.SchemaFor("ticket")
	// Copy Fields so tests that flip Readable on their local schema do
	// not mutate the shared builtin schema seen by other tests.
	s.Fields = append([]types.Field(nil), s.Fields...)
	return s
}

func queueSchema() types.Schema {
	s, _ := types.SchemaFor("queue")
	s.Fields = append([]types.Field(nil), s.Fields...)
	return s
}
