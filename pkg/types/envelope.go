package types

// Envelope is the standard paginated-listing wire format. Count always
// equals len(Items) and never exceeds PerPage.
type Envelope struct {
	Total   int   `json:"total"`
	Count   int   `json:"count"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Items   []any `json:"items"`
}

// Predicate is one {field, operator, value} filter condition of a
// JSON-encoded search request. Predicates in a request are ANDed.
type Predicate struct {
	Field    string `json:"field"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value"`
}

// Clause is one validated, normalized predicate inside a Criteria.
type Clause struct {
	Field string
	Op    string
	Value any
}

// Criteria is the conjunctive query structure the search compiler
// produces and the query executor consumes. An empty clause list
// matches every record of the type.
type Criteria struct {
	Clauses []Clause
}
