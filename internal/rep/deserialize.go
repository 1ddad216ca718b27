package rep

import (
	"fmt"
	"log/slog"

	"github.com/brennanma/restrack/pkg/types"
)

// Deserializer validates and normalizes an inbound JSON payload into a
// field-update set consumable by the domain layer.
type Deserializer struct {
	log *slog.Logger
}

// NewDeserializer creates a Deserializer.
func NewDeserializer(log *slog.Logger) *Deserializer {
	return &Deserializer{log: log}
}

// Deserialize normalizes one payload for a record of the given type.
// Reference-shaped values collapse to their bare id, role fields keep
// their scalar-or-list shape with each reference-shaped element
// normalized, scalars pass through, and any other compound value is
// dropped with a diagnostic: unknown shapes never reach the domain
// layer unexamined. The reserved CustomFields key is left to the
// custom field codec and skipped here.
//
// The returned diagnostics name each dropped field; the update map
// holds only accepted fields.
func (d *Deserializer) Deserialize(schema types.Schema, payload map[string]any) (map[string]any, []string) {
	updates := make(map[string]any, len(payload))
	var diags []string

	for name, v := range payload {
		if name == types.KeyCustomFields {
			continue
		}
		switch {
		case isRefShaped(v):
			updates[name] = refID(v.(map[string]any))
		case schema.IsRole(name):
			updates[name] = normalizeRoleValue(v)
		case isCompound(v):
			diags = append(diags, fmt.Sprintf("%s: value has an unrecognized shape and was dropped", name))
			d.log.Warn("dropping field with unrecognized value shape",
				"type", schema.Type, "field", name)
		default:
			updates[name] = v
		}
	}
	return updates, diags
}

// isRefShaped reports whether v looks like a serialized reference:
// an object carrying type, id, and url keys.
func isRefShaped(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := m["type"]; !ok {
		return false
	}
	if _, ok := m["id"]; !ok {
		return false
	}
	_, hasURL := m[types.KeyURL]
	_, hasPlain := m["url"]
	return hasURL || hasPlain
}

// refID extracts the bare id of a reference-shaped object. A falsy id
// collapses to 0: the domain layer always receives raw ids, never
// nested reference objects.
func refID(m map[string]any) any {
	id := m["id"]
	switch v := id.(type) {
	case nil:
		return 0
	case string:
		if v == "" {
			return 0
		}
		return v
	case float64:
		if v == 0 {
			return 0
		}
		return v
	case bool:
		if !v {
			return 0
		}
		return v
	}
	return id
}

// normalizeRoleValue accepts a single value or a list for a role field
// and normalizes each reference-shaped element to its bare id, keeping
// the caller's shape.
func normalizeRoleValue(v any) any {
	if list, ok := v.([]any); ok {
		out := make([]any, 0, len(list))
		for _, item := range list {
			out = append(out, normalizeRoleMember(item))
		}
		return out
	}
	return normalizeRoleMember(v)
}

func normalizeRoleMember(v any) any {
	if isRefShaped(v) {
		return refID(v.(map[string]any))
	}
	return v
}

// isCompound reports whether v is a non-scalar JSON value.
func isCompound(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
