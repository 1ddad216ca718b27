package rep

import (
	"fmt"

	"github.com/brennanma/restrack/pkg/types"
)

// CustomFieldCodec encodes and decodes custom field values for one
// record, given the ordered list of custom fields applicable to it.
type CustomFieldCodec struct {
	codec *Codec
}

// NewCustomFieldCodec creates a CustomFieldCodec using the given UID
// codec for download URLs.
func NewCustomFieldCodec(codec *Codec) *CustomFieldCodec {
	return &CustomFieldCodec{codec: codec}
}

// Encode renders the custom field values of one record as the wire
// mapping keyed by custom field id. Value order per field is the
// stored order. Binary and image values serialize as a
// {content_type, filename, _url} descriptor pointing at the download
// endpoint; their content is never inlined.
func (cc *CustomFieldCodec) Encode(rec types.CustomFieldCapable, fields []types.CustomField) map[string][]any {
	out := make(map[string][]any, len(fields))
	for _, cf := range fields {
		values := rec.CustomFieldValues(cf.ID)
		encoded := make([]any, 0, len(values))
		for _, v := range values {
			encoded = append(encoded, cc.encodeValue(cf, v))
		}
		out[cf.ID] = encoded
	}
	return out
}

func (cc *CustomFieldCodec) encodeValue(cf types.CustomField, v types.CustomFieldValue) any {
	switch {
	case cf.IsBinary():
		return map[string]any{
			"content_type": v.ContentType,
			"filename":     v.Filename,
			types.KeyURL:   cc.codec.DownloadURL(v.ID),
		}
	case cf.Type == types.CFTypeDate:
		return normalizeTime(v.Content)
	default:
		return v.Content
	}
}

// Decode normalizes an inbound CustomFields payload into value update
// sets keyed by custom field id. Each field accepts a single scalar or
// a list of scalars. Unknown custom field ids and non-scalar values
// are rejected; binary content cannot be set through this path.
func (cc *CustomFieldCodec) Decode(payload any, fields []types.CustomField) (map[string][]types.CustomFieldValue, error) {
	byID := make(map[string]types.CustomField, len(fields))
	for _, cf := range fields {
		byID[cf.ID] = cf
	}

	m, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: CustomFields must be an object", types.ErrInvalidData)
	}

	out := make(map[string][]types.CustomFieldValue, len(m))
	for id, raw := range m {
		cf, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: custom field %q", types.ErrUnknownField, id)
		}
		if cf.IsBinary() {
			return nil, fmt.Errorf("%w: custom field %q content is set via upload", types.ErrInvalidData, id)
		}

		var list []any
		switch v := raw.(type) {
		case []any:
			list = v
		default:
			list = []any{raw}
		}

		values := make([]types.CustomFieldValue, 0, len(list))
		for _, item := range list {
			s, ok := scalarString(item)
			if !ok {
				return nil, fmt.Errorf("%w: custom field %q value", types.ErrInvalidData, id)
			}
			values = append(values, types.CustomFieldValue{
				CustomFieldID: id,
				Content:       s,
			})
		}
		out[id] = values
	}
	return out, nil
}

// scalarString renders a scalar JSON value as its stored string form.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return fmt.Sprintf("%v", s), true
	case bool:
		return fmt.Sprintf("%v", s), true
	case nil:
		return "", true
	}
	return "", false
}
