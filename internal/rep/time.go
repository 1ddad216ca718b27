package rep

import "time"

// storedTimeLayouts are the backing-store time renderings the engine
// accepts when normalizing datetime values.
var storedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// normalizeTime renders any datetime value as an ISO-8601 UTC
// timestamp string, regardless of the backing store's native format.
// Values that are neither times nor parseable time strings are
// returned unchanged.
func normalizeTime(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case string:
		for _, layout := range storedTimeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC().Format(time.RFC3339)
			}
		}
	}
	return v
}
