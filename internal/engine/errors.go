package engine

import "fmt"

// NoHandlerError reports a registered field with no bound decoding routine.
type NoHandlerError struct {
	Field string
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no handler bound for field %q", e.Field)
}

// InvalidDependencyError reports a declared dependency name that is not
// itself a registered field.
type InvalidDependencyError struct {
	Field      string
	Dependency string
}

func (e *InvalidDependencyError) Error() string {
	return fmt.Sprintf("field %q depends on %q, which is not a registered field", e.Field, e.Dependency)
}

// DependencyError wraps a failure that occurred while resolving a
// prerequisite of Field.
type DependencyError struct {
	Field      string
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("failed to resolve dependency %q of field %q: %v", e.Dependency, e.Field, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// CycleError reports that resolution revisited a field already in progress
// within one top-level resolve call.
type CycleError struct {
	Field string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency detected at field %q", e.Field)
}

// FieldFailure is the sentinel recorded for a field that failed during a
// full-registry run. It is handed to the continuation predicate in place of
// a result and exposed through Parser.Failures; it is never written to the
// field's backing slot.
type FieldFailure struct {
	Field string
	Err   error
}

func (f FieldFailure) Error() string {
	return fmt.Sprintf("field %q: %v", f.Field, f.Err)
}

func (f FieldFailure) Unwrap() error {
	return f.Err
}
