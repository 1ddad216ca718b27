package types

// Ref is the canonical placeholder for any foreign-key or cross-record
// relationship: an immutable (type, id, url) triple. External
// references carry only type and url.
type Ref struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
	URL  string `json:"_url"`
}

// Link is one entry of a record's _hyperlinks list. Ref is a stable,
// cross-type action vocabulary: the same ref names the same semantic
// action on every record type that offers it.
type Link struct {
	Ref  string `json:"ref"`
	Type string `json:"type,omitempty"`
	URL  string `json:"_url"`
}

// Reserved keys of the single-record wire representation.
const (
	KeyCustomFields = "CustomFields"
	KeyHyperlinks   = "_hyperlinks"
	KeyURL          = "_url"
)
