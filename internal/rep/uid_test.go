package rep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecExpand(t *testing.T) {
	c := NewCodec("http://rt.example", "")

	tests := []struct {
		name     string
		uid      string
		wantType string
		wantID   string
		wantURL  string
		wantNil  bool
	}{
		{
			name:     "simple ticket uid",
			uid:      "Ticket-42",
			wantType: "ticket",
			wantID:   "42",
			wantURL:  "http://rt.example/ticket/42",
		},
		{
			name:     "namespace prefix stripped",
			uid:      "RT::Queue-7",
			wantType: "queue",
			wantID:   "7",
			wantURL:  "http://rt.example/queue/7",
		},
		{
			name:     "uuid id with dashes",
			uid:      "User-0191f0a2-1111-7222-8333-444455556666",
			wantType: "user",
			wantID:   "0191f0a2-1111-7222-8333-444455556666",
			wantURL:  "http://rt.example/user/0191f0a2-1111-7222-8333-444455556666",
		},
		{
			name:    "no separator",
			uid:     "Ticket42",
			wantNil: true,
		},
		{
			name:    "empty string",
			uid:     "",
			wantNil: true,
		},
		{
			name:    "missing id",
			uid:     "Ticket-",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := c.Expand(tt.uid)
			if tt.wantNil {
				assert.Nil(t, ref)
				return
			}
			require.NotNil(t, ref)
			assert.Equal(t, tt.wantType, ref.Type)
			assert.Equal(t, tt.wantID, ref.ID)
			assert.Equal(t, tt.wantURL, ref.URL)
		})
	}
}

func TestCodecExpandOrgSuffix(t *testing.T) {
	c := NewCodec("http://rt.example", "example.com")

	ref := c.Expand("Ticket-example.com-42")
	require.NotNil(t, ref)
	assert.Equal(t, "ticket", ref.Type)
	assert.Equal(t, "42", ref.ID)

	// The suffix is optional: plain identifiers still parse.
	ref = c.Expand("Ticket-42")
	require.NotNil(t, ref)
	assert.Equal(t, "42", ref.ID)
}

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec("http://rt.example", "example.com")

	for _, id := range []string{"1", "42", "0191f0a2-1111-7222-8333-444455556666"} {
		uid := c.FormatUID("Ticket", id)
		ref := c.Expand(uid)
		require.NotNil(t, ref, "uid %q should expand", uid)
		assert.Equal(t, id, ref.ID)
		assert.Equal(t, "ticket", ref.Type)
	}
}

func TestCodecExpandExternal(t *testing.T) {
	c := NewCodec("http://rt.example", "")

	ref := c.ExpandExternal("https://elsewhere.example/thing/9")
	require.NotNil(t, ref)
	assert.Equal(t, "external", ref.Type)
	assert.Empty(t, ref.ID)
	assert.Equal(t, "https://elsewhere.example/thing/9", ref.URL)
}
