package rep

import "github.com/brennanma/restrack/pkg/types"

// PermissionFunc reports whether the acting principal is authorized
// for one named action. The engine only consumes the result; it never
// evaluates permissions itself.
type PermissionFunc func(action string) bool

// Link refs with a fixed cross-type meaning. Lifecycle actions use
// their action name as the ref.
const (
	LinkSelf    = "self"
	LinkHistory = "history"
	LinkCreate  = "create"
)

// ActionCreate returns the permission name guarding creation of one
// child record type.
func ActionCreate(childType string) string {
	return "create:" + childType
}

// LinkBuilder computes the permission-filtered hyperlink list for a
// record.
type LinkBuilder struct {
	codec *Codec
}

// NewLinkBuilder creates a LinkBuilder using the given UID codec.
func NewLinkBuilder(codec *Codec) *LinkBuilder {
	return &LinkBuilder{codec: codec}
}

// Links returns the ordered hyperlink list for one record. self is
// always present. history appears when the history permission holds.
// Disabled records offer no create or lifecycle links. Every other
// link appears only when its permission check holds; denied links are
// omitted outright, never emitted in a disabled form. Output order is
// a pure function of the schema and the predicate's answers.
func (b *LinkBuilder) Links(schema types.Schema, id string, disabled bool, perm PermissionFunc) []types.Link {
	url := b.codec.RecordURL(schema.Type, id)
	links := []types.Link{{Ref: LinkSelf, URL: url}}

	if perm(LinkHistory) {
		links = append(links, types.Link{Ref: LinkHistory, URL: url + "/history"})
	}
	if disabled {
		return links
	}
	for _, child := range schema.Children {
		if perm(ActionCreate(child)) {
			links = append(links, types.Link{
				Ref:  LinkCreate,
				Type: child,
				URL:  b.codec.BaseURI() + "/" + child,
			})
		}
	}
	for _, action := range schema.Actions {
		if perm(action) {
			links = append(links, types.Link{
				Ref: action,
				URL: url + "/" + action,
			})
		}
	}
	return links
}
