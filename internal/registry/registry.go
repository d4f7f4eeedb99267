package registry

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vk/parsekit/internal/field"
)

// Registry is the ordered, inheritance-merged catalogue of a parser type's
// fields, plus the handler bound to each field name. It is immutable after
// Build except for handler binding, which happens once during module
// registration at startup.
type Registry struct {
	name     string
	fields   *orderedmap.OrderedMap[string, *field.Descriptor]
	handlers map[string]Handler
	// bases, in declaration order, provide handler fallback: a field whose
	// handler is not bound here inherits the binding from the first base
	// that carries one.
	bases []*Registry
}

// Name returns the parser type this registry was built for.
func (r *Registry) Name() string {
	return r.name
}

// Lookup returns the descriptor for the given field name.
func (r *Registry) Lookup(name string) (*field.Descriptor, bool) {
	return r.fields.Get(name)
}

// Has reports whether the given field name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.fields.Get(name)
	return ok
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return r.fields.Len()
}

// Descriptors returns the descriptors in final index order.
func (r *Registry) Descriptors() []*field.Descriptor {
	out := make([]*field.Descriptor, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// FieldNames returns the field names in final index order.
func (r *Registry) FieldNames() []string {
	out := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
