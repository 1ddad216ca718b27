package rep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennanma/restrack/pkg/types"
)

func TestDeserializeRefCollapsesToBareID(t *testing.T) {
	d := NewDeserializer(quietLogger())

	payload := map[string]any{
		"Queue": map[string]any{"type": "queue", "id": "q1", "_url": "http://rt.example/queue/q1"},
	}
	updates, diags := d.Deserialize(ticketSchema(), payload)

	assert.Empty(t, diags)
	assert.Equal(t, "q1", updates["Queue"])
}

func TestDeserializeFalsyRefID(t *testing.T) {
	d := NewDeserializer(quietLogger())

	tests := []struct {
		name string
		id   any
	}{
		{name: "nil id", id: nil},
		{name: "empty string id", id: ""},
		{name: "zero id", id: float64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := map[string]any{
				"Queue": map[string]any{"type": "queue", "id": tt.id, "_url": "x"},
			}
			updates, _ := d.Deserialize(ticketSchema(), payload)
			assert.Equal(t, 0, updates["Queue"])
		})
	}
}

func TestDeserializeRoleListNormalized(t *testing.T) {
	d := NewDeserializer(quietLogger())

	payload := map[string]any{
		"Requestor": []any{
			map[string]any{"type": "user", "id": "u2", "_url": "http://rt.example/user/u2"},
			"u3",
		},
	}
	updates, diags := d.Deserialize(ticketSchema(), payload)

	assert.Empty(t, diags)
	list, ok := updates["Requestor"].([]any)
	require.True(t, ok, "list shape is kept")
	assert.Equal(t, []any{"u2", "u3"}, list)
}

func TestDeserializeRoleScalarKeepsShape(t *testing.T) {
	d := NewDeserializer(quietLogger())

	payload := map[string]any{"Owner": "u1"}
	updates, _ := d.Deserialize(ticketSchema(), payload)
	assert.Equal(t, "u1", updates["Owner"])
}

func TestDeserializeUnknownCompoundDropped(t *testing.T) {
	d := NewDeserializer(quietLogger())

	payload := map[string]any{
		"Subject": "ok",
		"Weird":   map[string]any{"nested": []any{1, 2}},
	}
	updates, diags := d.Deserialize(ticketSchema(), payload)

	assert.Equal(t, "ok", updates["Subject"])
	_, present := updates["Weird"]
	assert.False(t, present, "unknown compound shapes never reach the domain layer")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Weird")
}

func TestDeserializeScalarsPassThrough(t *testing.T) {
	d := NewDeserializer(quietLogger())

	payload := map[string]any{
		"Subject":  "hello",
		"Priority": float64(3),
		"Status":   "open",
	}
	updates, diags := d.Deserialize(ticketSchema(), payload)

	assert.Empty(t, diags)
	assert.Equal(t, "hello", updates["Subject"])
	assert.Equal(t, float64(3), updates["Priority"])
	assert.Equal(t, "open", updates["Status"])
}

func TestDeserializeSkipsCustomFieldsKey(t *testing.T) {
	d := NewDeserializer(quietLogger())

	payload := map[string]any{
		types.KeyCustomFields: map[string]any{"cf1": "severe"},
		"Subject":             "hello",
	}
	updates, diags := d.Deserialize(ticketSchema(), payload)

	assert.Empty(t, diags)
	_, present := updates[types.KeyCustomFields]
	assert.False(t, present, "CustomFields is handled by its own codec")
	assert.Equal(t, "hello", updates["Subject"])
}

func TestSerializeDeserializeIDFieldsIdempotent(t *testing.T) {
	s := newTestSerializer()
	d := NewDeserializer(quietLogger())

	out := s.Serialize(sampleTicket(), ticketSchema(), nil, allowAll)

	// Re-encode the serialized references as plain JSON shapes.
	payload := map[string]any{}
	queue := out["Queue"].(*types.Ref)
	payload["Queue"] = map[string]any{"type": queue.Type, "id": queue.ID, "_url": queue.URL}

	updates, diags := d.Deserialize(ticketSchema(), payload)
	assert.Empty(t, diags)
	assert.Equal(t, "q1", updates["Queue"], "round-tripping an id-bearing field yields the raw id")
}
