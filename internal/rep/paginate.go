package rep

import (
	"github.com/spf13/cast"

	"github.com/brennanma/restrack/pkg/types"
)

// Pagination sizing.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PageParams is a validated pagination window request.
type PageParams struct {
	Page    int
	PerPage int
}

// ParsePageParams coerces raw page and per_page query values into a
// valid window. Invalid or non-positive values clamp to the defaults
// and per_page is capped at MaxPerPage: pagination never fails the
// request.
func ParsePageParams(page, perPage string) PageParams {
	p := cast.ToInt(page)
	if p < 1 {
		p = DefaultPage
	}
	pp := cast.ToInt(perPage)
	if pp < 1 {
		pp = DefaultPerPage
	}
	if pp > MaxPerPage {
		pp = MaxPerPage
	}
	return PageParams{Page: p, PerPage: pp}
}

// Window returns the zero-based offset and limit of this page.
func (p PageParams) Window() (offset, limit int) {
	return (p.Page - 1) * p.PerPage, p.PerPage
}

// Envelope wraps an already-windowed item list and the full result
// count into the collection wire format.
func (p PageParams) Envelope(total int, items []any) types.Envelope {
	if items == nil {
		items = []any{}
	}
	return types.Envelope{
		Total:   total,
		Count:   len(items),
		Page:    p.Page,
		PerPage: p.PerPage,
		Items:   items,
	}
}

// Paginate windows a fully materialized result slice into this page's
// envelope.
func (p PageParams) Paginate(items []any) types.Envelope {
	offset, limit := p.Window()
	total := len(items)
	if offset >= total {
		return p.Envelope(total, nil)
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return p.Envelope(total, items[offset:end])
}
