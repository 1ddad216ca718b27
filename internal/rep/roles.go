package rep

import "github.com/brennanma/restrack/pkg/types"

// RoleExpander expands a record's role-based group memberships into
// reference lists.
type RoleExpander struct {
	codec *Codec
}

// NewRoleExpander creates a RoleExpander using the given UID codec.
func NewRoleExpander(codec *Codec) *RoleExpander {
	return &RoleExpander{codec: codec}
}

// Expand returns one entry per declared role, keyed by role name.
// Member UIDs become typed references; unexpandable member strings are
// kept as-is. A single-member role collapses from a one-element list
// to the bare reference (nil when the role is unassigned).
func (re *RoleExpander) Expand(rec types.RoleCapable, roles []types.RoleDef) map[string]any {
	out := make(map[string]any, len(roles))
	for _, role := range roles {
		members := rec.RoleMembers(role.Name)
		refs := make([]any, 0, len(members))
		for _, uid := range members {
			if ref := re.codec.Expand(uid); ref != nil {
				refs = append(refs, ref)
				continue
			}
			refs = append(refs, uid)
		}
		if role.Single {
			if len(refs) == 0 {
				out[role.Name] = nil
				continue
			}
			out[role.Name] = refs[0]
			continue
		}
		out[role.Name] = refs
	}
	return out
}
