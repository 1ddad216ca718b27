package sqlite

import (
	"fmt"
	"strings"

	"github.com/brennanma/restrack/pkg/types"
)

// columnsFor maps wire field names to columns per record type. Only
// mapped fields are queryable or writable; anything else is rejected
// before reaching SQL.
var columnsFor = map[string]map[string]string{
	"ticket": {
		"Subject":     "subject",
		"Status":      "status",
		"Queue":       "queue_id",
		"Creator":     "creator_id",
		"Priority":    "priority",
		"Created":     "created_at",
		"LastUpdated": "updated_at",
	},
	"queue": {
		"Name":        "name",
		"Description": "description",
		"Disabled":    "disabled",
		"Created":     "created_at",
		"LastUpdated": "updated_at",
	},
	"user": {
		"Name":         "name",
		"EmailAddress": "email",
		"RealName":     "real_name",
		"Password":     "password",
		"Disabled":     "disabled",
		"Created":      "created_at",
		"LastUpdated":  "updated_at",
	},
}

// sqlOperators whitelists the comparison operators the store executes.
var sqlOperators = map[string]string{
	"=":        "=",
	"!=":       "!=",
	"<":        "<",
	">":        ">",
	"<=":       "<=",
	">=":       ">=",
	"LIKE":     "LIKE",
	"NOT LIKE": "NOT LIKE",
}

// whereClause renders compiled criteria as a conjunctive WHERE clause
// with positional arguments. An empty criteria yields an empty clause.
func whereClause(recordType string, criteria types.Criteria) (string, []any, error) {
	cols, ok := columnsFor[recordType]
	if !ok {
		return "", nil, types.ErrUnknownType
	}
	if len(criteria.Clauses) == 0 {
		return "", nil, nil
	}

	var (
		parts []string
		args  []any
	)
	schema, _ := types.SchemaFor(recordType)
	for _, c := range criteria.Clauses {
		col, ok := cols[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", types.ErrUnknownField, c.Field)
		}
		// Write-only columns stay writable through columnsFor but are
		// never comparable: a predicate on one would expose the value.
		if f, ok := schema.Field(c.Field); ok && !f.Readable {
			return "", nil, fmt.Errorf("%w: %q", types.ErrUnknownField, c.Field)
		}
		op, ok := sqlOperators[c.Op]
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", types.ErrBadOperator, c.Op)
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", col, op))
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}
