package field

import (
	"fmt"
	"strings"
)

// UnknownFieldError reports an access to a field name that is not part of
// the instance's registry.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not registered", e.Field)
}

// UnmetDependencyError reports a read of a field whose declared dependencies
// do not all hold resolved values yet.
type UnmetDependencyError struct {
	Field        string
	Dependencies []string
}

func (e *UnmetDependencyError) Error() string {
	return fmt.Sprintf("dependencies not met for field %q (%s)", e.Field, strings.Join(e.Dependencies, ", "))
}

// ReadOnlyError reports a write to a field marked read-only.
type ReadOnlyError struct {
	Field string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("field %q is read-only", e.Field)
}
