package hcl

import "errors"

var (
	// ErrUnknownDefinition is returned when no experiment block has the
	// requested name.
	ErrUnknownDefinition = errors.New("unknown experiment definition")
	// ErrUndeclaredVariable is returned for an argument with no matching
	// variable block.
	ErrUndeclaredVariable = errors.New("undeclared variable")
	// ErrMissingVariable is returned when a variable has no default and no
	// argument was given for it.
	ErrMissingVariable = errors.New("missing value for variable")
)
