package rep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennanma/restrack/pkg/types"
)

func newTestSerializer() *Serializer {
	return NewSerializer(NewCodec("http://rt.example", ""), quietLogger())
}

func TestSerializeScalarAndIdentity(t *testing.T) {
	s := newTestSerializer()
	out := s.Serialize(sampleTicket(), ticketSchema(), nil, allowAll)

	assert.Equal(t, "t1", out["id"])
	assert.Equal(t, "ticket", out["type"])
	assert.Equal(t, "http://rt.example/ticket/t1", out[types.KeyURL])
	assert.Equal(t, "printer on fire", out["Subject"])
	assert.Equal(t, int64(10), out["Priority"])
}

func TestSerializeAccessorOverridesRaw(t *testing.T) {
	s := newTestSerializer()
	// The stored status is "Open"; the public accessor lowercases it.
	out := s.Serialize(sampleTicket(), ticketSchema(), nil, allowAll)
	assert.Equal(t, "open", out["Status"])
}

func TestSerializeDatetimeNormalized(t *testing.T) {
	s := newTestSerializer()
	out := s.Serialize(sampleTicket(), ticketSchema(), nil, allowAll)

	assert.Equal(t, "2025-03-10T09:30:00Z", out["Created"])
	assert.Equal(t, "2025-03-10T10:30:00Z", out["LastUpdated"])
}

func TestSerializeUIDFieldsExpanded(t *testing.T) {
	s := newTestSerializer()
	out := s.Serialize(sampleTicket(), ticketSchema(), nil, allowAll)

	queue, ok := out["Queue"].(*types.Ref)
	require.True(t, ok, "Queue should expand to a reference")
	assert.Equal(t, "queue", queue.Type)
	assert.Equal(t, "q1", queue.ID)
	assert.Equal(t, "http://rt.example/queue/q1", queue.URL)

	creator, ok := out["Creator"].(*types.Ref)
	require.True(t, ok)
	assert.Equal(t, "user", creator.Type)
	assert.Equal(t, "u1", creator.ID)
}

func TestSerializeUnreadableFieldOmitted(t *testing.T) {
	s := newTestSerializer()

	schema := ticketSchema()
	for i := range schema.Fields {
		if schema.Fields[i].Name == "Subject" {
			schema.Fields[i].Readable = false
		}
	}

	out := s.Serialize(sampleTicket(), schema, nil, allowAll)
	_, present := out["Subject"]
	assert.False(t, present, "unreadable fields are removed, not nulled")
}

func TestSerializeSingleRoleCollapses(t *testing.T) {
	s := newTestSerializer()
	out := s.Serialize(sampleTicket(), ticketSchema(), nil, allowAll)

	owner, ok := out["Owner"].(*types.Ref)
	require.True(t, ok, "single-member role must collapse to a bare reference")
	assert.Equal(t, "u1", owner.ID)

	requestors, ok := out["Requestor"].([]any)
	require.True(t, ok, "multi-member role stays a list")
	assert.Len(t, requestors, 2)

	// Declared but unassigned multi-member roles serialize as empty lists.
	ccs, ok := out["Cc"].([]any)
	require.True(t, ok)
	assert.Empty(t, ccs)
}

func TestSerializeCustomFields(t *testing.T) {
	s := newTestSerializer()
	cfs := []types.CustomField{
		{ID: "cf1", Name: "Severity", AppliesTo: "ticket", Type: types.CFTypeText},
		{ID: "cf2", Name: "Screenshot", AppliesTo: "ticket", Type: types.CFTypeImage},
	}
	ticket := sampleTicket()
	ticket.CFValues["cf2"] = []types.CustomFieldValue{
		{ID: "v2", CustomFieldID: "cf2", Content: "\x89PNG", ContentType: "image/png", Filename: "shot.png"},
	}

	out := s.Serialize(ticket, ticketSchema(), cfs, allowAll)
	cfMap, ok := out[types.KeyCustomFields].(map[string][]any)
	require.True(t, ok)

	require.Len(t, cfMap["cf1"], 1)
	assert.Equal(t, "severe", cfMap["cf1"][0])

	require.Len(t, cfMap["cf2"], 1)
	desc, ok := cfMap["cf2"][0].(map[string]any)
	require.True(t, ok, "image values serialize as a descriptor")
	assert.Equal(t, "image/png", desc["content_type"])
	assert.Equal(t, "shot.png", desc["filename"])
	assert.Equal(t, "http://rt.example/download/cf/v2", desc[types.KeyURL])
	_, inline := desc["content"]
	assert.False(t, inline, "binary content is never inlined")
}

func TestSerializeNoCustomFieldsKeyWithoutCapability(t *testing.T) {
	s := newTestSerializer()
	user := &types.User{ID: "u9", Name: "rbloom"}
	schema, _ := types.SchemaFor("user")

	out := s.Serialize(user, schema, nil, allowAll)
	_, present := out[types.KeyCustomFields]
	assert.False(t, present)
	_, present = out["Owner"]
	assert.False(t, present, "role keys only appear on role-capable records")
}

func TestSerializeHyperlinksRespectPermissions(t *testing.T) {
	s := newTestSerializer()

	out := s.Serialize(sampleTicket(), ticketSchema(), nil, denyAll)
	links, ok := out[types.KeyHyperlinks].([]types.Link)
	require.True(t, ok)
	require.Len(t, links, 1)
	assert.Equal(t, LinkSelf, links[0].Ref)
}

func TestAbbreviate(t *testing.T) {
	s := newTestSerializer()
	ref := s.Abbreviate(sampleTicket())
	require.NotNil(t, ref)
	assert.Equal(t, "ticket", ref.Type)
	assert.Equal(t, "t1", ref.ID)
	assert.Equal(t, "http://rt.example/ticket/t1", ref.URL)
}
