package types

// Field kinds determine how the serializer renders a field value.
const (
	KindScalar   = "scalar"
	KindDatetime = "datetime"
	KindUID      = "uid"
	KindBinary   = "binary"
)

// Field describes one column of a record type: its wire name, value
// kind, and whether the current schema exposes it for read or write.
type Field struct {
	Name     string
	Kind     string
	Readable bool
	Writable bool
}

// RoleDef declares one role a record type defines. Single-member roles
// serialize as a bare reference instead of a list.
type RoleDef struct {
	Name   string
	Single bool
}

// Schema is the static description of one record type. The
// representation engine consults it instead of reflecting over record
// values at runtime.
type Schema struct {
	// Type is the lowercase wire name, e.g. "ticket".
	Type string
	// Class is the UID class segment, e.g. "Ticket".
	Class string
	// Fields lists the record's columns in canonical order.
	Fields []Field
	// Roles lists the roles the type defines, in serialization order.
	Roles []RoleDef
	// Children lists record types creatable from this record, in
	// hyperlink order (e.g. a ticket is creatable from a queue).
	Children []string
	// Actions lists the lifecycle actions the type offers, in
	// hyperlink order.
	Actions []string
}

// Field returns the schema entry for the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Role returns the role definition for the named role.
func (s Schema) Role(name string) (RoleDef, bool) {
	for _, r := range s.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return RoleDef{}, false
}

// IsRole reports whether the named field denotes a role of this type.
func (s Schema) IsRole(name string) bool {
	_, ok := s.Role(name)
	return ok
}

// builtin schemas, in route registration order.
var builtinSchemas = []Schema{
	{
		Type:  "ticket",
		Class: "Ticket",
		Fields: []Field{
			{Name: "Subject", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Status", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Queue", Kind: KindUID, Readable: true, Writable: true},
			{Name: "Creator", Kind: KindUID, Readable: true},
			{Name: "Priority", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Created", Kind: KindDatetime, Readable: true},
			{Name: "LastUpdated", Kind: KindDatetime, Readable: true},
		},
		Roles: []RoleDef{
			{Name: "Owner", Single: true},
			{Name: "Requestor"},
			{Name: "Cc"},
			{Name: "AdminCc"},
		},
		Actions: []string{"correspond", "comment"},
	},
	{
		Type:  "queue",
		Class: "Queue",
		Fields: []Field{
			{Name: "Name", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Description", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Disabled", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Created", Kind: KindDatetime, Readable: true},
			{Name: "LastUpdated", Kind: KindDatetime, Readable: true},
		},
		Roles: []RoleDef{
			{Name: "Cc"},
			{Name: "AdminCc"},
		},
		Children: []string{"ticket"},
	},
	{
		Type:  "user",
		Class: "User",
		Fields: []Field{
			{Name: "Name", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "EmailAddress", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "RealName", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Password", Kind: KindScalar, Writable: true},
			{Name: "Disabled", Kind: KindScalar, Readable: true, Writable: true},
			{Name: "Created", Kind: KindDatetime, Readable: true},
			{Name: "LastUpdated", Kind: KindDatetime, Readable: true},
		},
	},
}

// Schemas returns the registered record schemas in registration order.
func Schemas() []Schema {
	return builtinSchemas
}

// SchemaFor returns the schema for the named record type.
func SchemaFor(recordType string) (Schema, bool) {
	for _, s := range builtinSchemas {
		if s.Type == recordType {
			return s, true
		}
	}
	return Schema{}, false
}
