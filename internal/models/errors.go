package models

import "fmt"

// SchemaError reports a malformed world description. Path is the dotted
// field path of the offending value, "(root)" for the document itself.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("world schema: %s: %s", e.Path, e.Reason)
}

// DanglingReferenceError reports a pathway whose destination is not a
// declared location.
type DanglingReferenceError struct {
	Location    string
	Pathway     string
	Destination string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("world schema: pathway %q in location %q leads to undeclared location %q",
		e.Pathway, e.Location, e.Destination)
}
