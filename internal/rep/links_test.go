package rep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennanma/restrack/pkg/types"
)

func newTestLinkBuilder() *LinkBuilder {
	return NewLinkBuilder(NewCodec("http://rt.example", ""))
}

func TestLinksAlwaysSelf(t *testing.T) {
	b := newTestLinkBuilder()

	links := b.Links(ticketSchema(), "t1", false, denyAll)
	require.Len(t, links, 1)
	assert.Equal(t, LinkSelf, links[0].Ref)
	assert.Equal(t, "http://rt.example/ticket/t1", links[0].URL)
}

func TestLinksPermissionFiltering(t *testing.T) {
	b := newTestLinkBuilder()

	perm := func(action string) bool { return action == "correspond" }
	links := b.Links(ticketSchema(), "t1", false, perm)

	refs := make([]string, 0, len(links))
	for _, l := range links {
		refs = append(refs, l.Ref)
	}
	assert.Equal(t, []string{LinkSelf, "correspond"}, refs)
	assert.NotContains(t, refs, "comment", "denied links are omitted, never disabled")
	assert.NotContains(t, refs, LinkHistory)
}

func TestLinksCreateChild(t *testing.T) {
	b := newTestLinkBuilder()

	perm := func(action string) bool { return action == ActionCreate("ticket") }
	links := b.Links(queueSchema(), "q1", false, perm)

	require.Len(t, links, 2)
	assert.Equal(t, LinkCreate, links[1].Ref)
	assert.Equal(t, "ticket", links[1].Type)
	assert.Equal(t, "http://rt.example/ticket", links[1].URL)
}

func TestLinksDisabledRecord(t *testing.T) {
	b := newTestLinkBuilder()

	links := b.Links(queueSchema(), "q1", true, allowAll)
	refs := make([]string, 0, len(links))
	for _, l := range links {
		refs = append(refs, l.Ref)
	}
	assert.Equal(t, []string{LinkSelf, LinkHistory}, refs,
		"disabled records offer no create or lifecycle links")
}

func TestLinksDeterministic(t *testing.T) {
	b := newTestLinkBuilder()

	first := b.Links(ticketSchema(), "t1", false, allowAll)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, b.Links(ticketSchema(), "t1", false, allowAll))
	}
}

func TestLinksSameVocabularyAcrossTypes(t *testing.T) {
	b := newTestLinkBuilder()

	ticketLinks := b.Links(ticketSchema(), "t1", false, allowAll)
	queueLinks := b.Links(queueSchema(), "q1", false, allowAll)

	history := func(links []types.Link) *types.Link {
		for i := range links {
			if links[i].Ref == LinkHistory {
				return &links[i]
			}
		}
		return nil
	}
	require.NotNil(t, history(ticketLinks))
	require.NotNil(t, history(queueLinks))
	assert.Equal(t, history(ticketLinks).Ref, history(queueLinks).Ref)
}
