package types

import "errors"

// Store and lookup errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
	ErrUnknownType = errors.New("unknown record type")
)

// Representation and search errors.
var (
	ErrMalformedSearch    = errors.New("malformed search payload")
	ErrUnknownField       = errors.New("unknown field")
	ErrBadOperator        = errors.New("unsupported operator")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Config validation errors.
var (
	ErrBaseURIEmpty = errors.New("base URI must not be empty")
	ErrListenEmpty  = errors.New("listen address must not be empty")
)
