// Package rep implements the generic record representation engine: the
// bidirectional mapping between a stored record and its hypermedia
// JSON representation, hyperlink computation, the optimistic
// concurrency token, collection pagination, and the JSON search
// predicate compiler.
//
// The engine is stateless. It consumes permission-check results through
// a caller-supplied predicate and never evaluates permissions itself.
package rep
