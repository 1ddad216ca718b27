package rep

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brennanma/restrack/pkg/types"
)

// searchOperators is the operator set the query executor understands.
// Keys are uppercase.
var searchOperators = map[string]bool{
	"=":        true,
	"!=":       true,
	"<":        true,
	">":        true,
	"<=":       true,
	">=":       true,
	"LIKE":     true,
	"NOT LIKE": true,
}

// CompileSearch parses a JSON array of {field, operator, value}
// predicate objects into the conjunctive criteria consumed by the
// query executor, returning the criteria and the number of validated
// predicates.
//
// The payload must be an array of objects each carrying at least a
// known, readable field name and a value key; operator defaults to
// equality.
// Any violation aborts the whole compilation: there is no partial
// compilation.
func CompileSearch(schema types.Schema, body []byte) (types.Criteria, int, error) {
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return types.Criteria{}, 0, fmt.Errorf("%w: expected a JSON array of predicate objects", types.ErrMalformedSearch)
	}
	if raw == nil {
		return types.Criteria{}, 0, fmt.Errorf("%w: expected a JSON array of predicate objects", types.ErrMalformedSearch)
	}

	clauses := make([]types.Clause, 0, len(raw))
	for i, obj := range raw {
		fieldRaw, ok := obj["field"]
		if !ok {
			return types.Criteria{}, 0, fmt.Errorf("%w: predicate %d is missing \"field\"", types.ErrMalformedSearch, i)
		}
		field, ok := fieldRaw.(string)
		if !ok || field == "" {
			return types.Criteria{}, 0, fmt.Errorf("%w: predicate %d has a non-string \"field\"", types.ErrMalformedSearch, i)
		}
		// Unreadable fields are invisible to search too: matching
		// against them would reveal values the caller is never
		// allowed to read.
		f, ok := schema.Field(field)
		if !ok || !f.Readable {
			return types.Criteria{}, 0, fmt.Errorf("%w: %q in predicate %d", types.ErrUnknownField, field, i)
		}

		value, ok := obj["value"]
		if !ok {
			return types.Criteria{}, 0, fmt.Errorf("%w: predicate %d is missing \"value\"", types.ErrMalformedSearch, i)
		}

		op := "="
		if opRaw, ok := obj["operator"]; ok {
			s, isStr := opRaw.(string)
			if !isStr {
				return types.Criteria{}, 0, fmt.Errorf("%w: predicate %d has a non-string \"operator\"", types.ErrMalformedSearch, i)
			}
			s = strings.ToUpper(strings.TrimSpace(s))
			if !searchOperators[s] {
				return types.Criteria{}, 0, fmt.Errorf("%w: %q in predicate %d", types.ErrBadOperator, opRaw, i)
			}
			op = s
		}

		clauses = append(clauses, types.Clause{Field: field, Op: op, Value: value})
	}

	return types.Criteria{Clauses: clauses}, len(clauses), nil
}
