package rep

import (
	"log/slog"

	"github.com/brennanma/restrack/pkg/types"
)

// Serializer produces the canonical JSON representation of one record:
// scalar fields, expanded foreign keys, role members, custom fields,
// and hyperlinks.
type Serializer struct {
	codec *Codec
	cf    *CustomFieldCodec
	roles *RoleExpander
	links *LinkBuilder
	log   *slog.Logger
}

// NewSerializer creates a Serializer and its sub-codecs around one UID
// codec.
func NewSerializer(codec *Codec, log *slog.Logger) *Serializer {
	return &Serializer{
		codec: codec,
		cf:    NewCustomFieldCodec(codec),
		roles: NewRoleExpander(codec),
		links: NewLinkBuilder(codec),
		log:   log,
	}
}

// Serialize renders one record for the wire. Fields the schema does
// not mark readable are removed outright, never emitted as null or
// redacted placeholders, and every emitted link passed the caller's
// permission predicate. Unreadable or unrepresentable values are
// dropped silently; serialization itself never fails.
func (s *Serializer) Serialize(rec types.Record, schema types.Schema, cfs []types.CustomField, perm PermissionFunc) map[string]any {
	out := make(map[string]any, len(schema.Fields)+6)

	for name, raw := range rec.Fields() {
		f, ok := schema.Field(name)
		if !ok || !f.Readable {
			continue
		}
		v, ok := rec.Value(name)
		if !ok {
			v = raw
		}
		switch f.Kind {
		case types.KindDatetime:
			v = normalizeTime(v)
		case types.KindUID:
			if uid, ok := v.(string); ok {
				if ref := s.codec.Expand(uid); ref != nil {
					v = ref
				}
			}
		}
		out[name] = v
	}

	out["id"] = rec.RecordID()
	out["type"] = schema.Type
	out[types.KeyURL] = s.codec.RecordURL(schema.Type, rec.RecordID())

	if rc, ok := rec.(types.RoleCapable); ok {
		for name, v := range s.roles.Expand(rc, schema.Roles) {
			out[name] = v
		}
	}
	if cc, ok := rec.(types.CustomFieldCapable); ok && len(cfs) > 0 {
		out[types.KeyCustomFields] = s.cf.Encode(cc, cfs)
	}

	out[types.KeyHyperlinks] = s.links.Links(schema, rec.RecordID(), rec.Disabled(), perm)
	return out
}

// Abbreviate renders the short reference form of one record used in
// collection items.
func (s *Serializer) Abbreviate(rec types.Record) *types.Ref {
	if ref := s.codec.Expand(rec.UID()); ref != nil {
		return ref
	}
	// UID() output always matches the identifier pattern; this is a
	// fallback for records with pathological ids.
	return &types.Ref{
		Type: rec.RecordType(),
		ID:   rec.RecordID(),
		URL:  s.codec.RecordURL(rec.RecordType(), rec.RecordID()),
	}
}

// CustomFieldCodec returns the serializer's custom field codec for use
// on the write path.
func (s *Serializer) CustomFieldCodec() *CustomFieldCodec { return s.cf }
