package rep

import (
	"regexp"
	"strings"

	"github.com/brennanma/restrack/pkg/types"
)

// Codec parses and formats unique identifier strings. The base URI and
// the optional organization suffix are explicit constructor parameters;
// nothing is read from ambient globals.
type Codec struct {
	baseURI string
	org     string
	uidRe   *regexp.Regexp
}

// NewCodec creates a Codec. baseURI must not carry a trailing slash.
// org, if non-empty, is an organization suffix stripped between the
// class segment and the id when parsing.
func NewCodec(baseURI, org string) *Codec {
	pat := `^([\w:]+)-(.+)$`
	if org != "" {
		pat = `^([\w:]+)(?:-` + regexp.QuoteMeta(org) + `)?-(.+)$`
	}
	return &Codec{
		baseURI: baseURI,
		org:     org,
		uidRe:   regexp.MustCompile(pat),
	}
}

// BaseURI returns the codec's base URI.
func (c *Codec) BaseURI() string { return c.baseURI }

// Expand parses a unique identifier string into a typed reference.
// The class segment loses any namespace prefix and is lowercased to
// form the type. A string that does not match the identifier pattern
// is not expandable and yields nil, not an error; callers must treat
// such values as opaque.
func (c *Codec) Expand(uid string) *types.Ref {
	m := c.uidRe.FindStringSubmatch(uid)
	if m == nil {
		return nil
	}
	class, id := m[1], m[2]
	if i := strings.LastIndex(class, ":"); i >= 0 {
		class = class[i+1:]
	}
	if class == "" {
		return nil
	}
	typ := strings.ToLower(class)
	return &types.Ref{Type: typ, ID: id, URL: c.RecordURL(typ, id)}
}

// ExpandExternal builds a reference to a resource outside the record
// system. External references carry no id.
func (c *Codec) ExpandExternal(url string) *types.Ref {
	return &types.Ref{Type: "external", URL: url}
}

// FormatUID renders the canonical identifier string for a (class, id)
// pair, including the organization suffix when configured.
func (c *Codec) FormatUID(class, id string) string {
	if c.org != "" {
		return class + "-" + c.org + "-" + id
	}
	return class + "-" + id
}

// RecordURL returns the canonical URL of one record.
func (c *Codec) RecordURL(recordType, id string) string {
	return c.baseURI + "/" + recordType + "/" + id
}

// DownloadURL returns the content-retrieval URL for one stored custom
// field value.
func (c *Codec) DownloadURL(valueID string) string {
	return c.baseURI + "/download/cf/" + valueID
}
