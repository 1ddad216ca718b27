package types

// Custom field value types.
const (
	CFTypeText   = "text"
	CFTypeDate   = "date"
	CFTypeBinary = "binary"
	CFTypeImage  = "image"
)

// validCFTypes is the set of recognized custom field value types.
var validCFTypes = map[string]bool{
	CFTypeText:   true,
	CFTypeDate:   true,
	CFTypeBinary: true,
	CFTypeImage:  true,
}

// IsValidCFType reports whether the given string is a recognized
// custom field value type.
func IsValidCFType(t string) bool {
	return validCFTypes[t]
}

// CustomField is a user-defined, per-record-type attribute definition.
type CustomField struct {
	ID        string // UUID v7, generated on creation.
	Name      string // Human-readable name.
	AppliesTo string // Record type the field applies to (e.g. "ticket").
	Type      string // One of the CFType constants.
}

// IsBinary reports whether values of this field carry binary content
// served through the download endpoint rather than inline.
func (cf CustomField) IsBinary() bool {
	return cf.Type == CFTypeBinary || cf.Type == CFTypeImage
}

// CustomFieldValue is one stored value of a custom field on one
// record. Binary and image values keep Content as the stored bytes and
// serialize as a {content_type, filename, _url} descriptor instead.
type CustomFieldValue struct {
	ID            string // UUID v7 of the stored value.
	CustomFieldID string
	Content       string
	ContentType   string // Binary/image values only.
	Filename      string // Binary/image values only.
}
