package rep

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/brennanma/restrack/pkg/types"
)

// Token is a record's concurrency token: an opaque content-derived
// entity tag plus the record's last-modified timestamp. Tokens are
// computed fresh on every read and have no independent storage.
type Token struct {
	ETag         string
	LastModified time.Time
}

// NewToken derives the concurrency token for one record. The tag
// hashes a canonical rendering of every readable field, plus role
// memberships and the values of the applicable custom fields where the
// record carries them, so content-equal records always yield equal
// tags and any externally-visible change yields a different tag.
func NewToken(rec types.Record, schema types.Schema, cfs []types.CustomField) Token {
	var b strings.Builder

	names := make([]string, 0, len(schema.Fields))
	raw := rec.Fields()
	for _, f := range schema.Fields {
		if f.Readable {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "f:%s=%v\n", name, raw[name])
	}

	if rc, ok := rec.(types.RoleCapable); ok {
		for _, role := range schema.Roles {
			fmt.Fprintf(&b, "r:%s=%s\n", role.Name, strings.Join(rc.RoleMembers(role.Name), ","))
		}
	}
	if cc, ok := rec.(types.CustomFieldCapable); ok {
		for _, cf := range cfs {
			for _, v := range cc.CustomFieldValues(cf.ID) {
				fmt.Fprintf(&b, "c:%s=%s:%s\n", cf.ID, v.ID, v.Content)
			}
		}
	}

	sum := blake3.Sum256([]byte(b.String()))
	return Token{
		ETag:         `"` + hex.EncodeToString(sum[:16]) + `"`,
		LastModified: rec.LastUpdated().UTC().Truncate(time.Second),
	}
}

// Matches reports whether the token's entity tag satisfies an If-Match
// or If-None-Match header value: either the wildcard or any listed tag
// equal to ours.
func (t Token) Matches(header string) bool {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || part == t.ETag {
			return true
		}
	}
	return false
}

// NotModified reports whether a read may short-circuit with 304 given
// the client's If-None-Match and If-Modified-Since headers. Per the
// usual HTTP precedence, If-None-Match wins when both are present.
func (t Token) NotModified(ifNoneMatch, ifModifiedSince string) bool {
	if ifNoneMatch != "" {
		return t.Matches(ifNoneMatch)
	}
	if ifModifiedSince != "" {
		since, err := http.ParseTime(ifModifiedSince)
		if err != nil {
			return false
		}
		return !t.LastModified.After(since)
	}
	return false
}

// CheckWrite validates the client's If-Match and If-Unmodified-Since
// headers against the currently stored token. It returns
// ErrPreconditionFailed when either check fails; the caller must apply
// no mutation in that case. No precondition supplied permits an
// unconditional update.
func (t Token) CheckWrite(ifMatch, ifUnmodifiedSince string) error {
	if ifMatch != "" && !t.Matches(ifMatch) {
		return types.ErrPreconditionFailed
	}
	if ifUnmodifiedSince != "" {
		since, err := http.ParseTime(ifUnmodifiedSince)
		if err != nil {
			return types.ErrPreconditionFailed
		}
		if t.LastModified.After(since) {
			return types.ErrPreconditionFailed
		}
	}
	return nil
}
