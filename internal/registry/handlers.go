package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Instance is the view of a parser instance a handler decodes against. The
// getter is guarded: reading a field whose dependencies are unmet is an
// error, while a registered-but-unresolved field reads as nil.
type Instance interface {
	Field(name string) (any, error)
}

// Handler is the decoding routine bound to a field name. It receives the
// owning instance (for reading already-resolved prerequisites), the active
// stream, and the prepared call arguments (caller overrides with
// field-shaped keys already replaced by resolved values), and returns the
// field's decoded tree.
type Handler func(ctx context.Context, inst Instance, stream io.ReadSeeker, args map[string]any) (any, error)

// BindHandler binds a Go decoding routine to a field name. The binding is
// the naming convention tying a field to its grammar: exactly one handler
// per field, bound once at startup. Parity with the declared catalogue is
// enforced by Validate.
func (r *Registry) BindHandler(fieldName string, h Handler) {
	if _, exists := r.handlers[fieldName]; exists {
		panic(fmt.Sprintf("parser type %q: handler for field %q already bound", r.name, fieldName))
	}
	slog.Debug("Binding field handler.", "parser", r.name, "field", fieldName)
	r.handlers[fieldName] = h
}

// Handler returns the decoding routine bound to the given field name. A
// binding made on this registry shadows inherited ones; otherwise bases are
// consulted in declaration order, so a subclass inherits its grammar the way
// it inherits its fields.
func (r *Registry) Handler(fieldName string) (Handler, bool) {
	if h, ok := r.handlers[fieldName]; ok {
		return h, true
	}
	for _, base := range r.bases {
		if h, ok := base.Handler(fieldName); ok {
			return h, true
		}
	}
	return nil, false
}
