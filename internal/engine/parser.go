package engine

import (
	"github.com/vk/parsekit/internal/field"
	"github.com/vk/parsekit/internal/registry"
	"github.com/vk/parsekit/internal/source"
	"github.com/vk/parsekit/internal/tree"
)

// ContinueFunc decides, after each field of a full run, whether the run
// should proceed. result is the field's decoded value, or a FieldFailure
// sentinel when resolution failed.
type ContinueFunc func(fieldName string, result any) bool

// Parser is one parsing instance: a read-only reference to its type's
// registry, a backing slot per field, the source handle, and the failures
// recorded by the last full run. Slots are indexed by the registry's final
// index assignment; the by-name contract survives only at the boundary.
// A Parser is not safe for concurrent use.
type Parser struct {
	reg      *registry.Registry
	handle   *source.Handle
	slots    []any
	failures []FieldFailure
	cont     ContinueFunc
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithContinue installs the continuation predicate consulted after each
// field of a full run. The default always continues.
func WithContinue(fn ContinueFunc) Option {
	return func(p *Parser) { p.cont = fn }
}

// New returns a parser instance over src for the given registry.
func New(reg *registry.Registry, src source.Source, opts ...Option) *Parser {
	p := &Parser{
		reg:    reg,
		handle: source.NewHandle(src),
		slots:  make([]any, reg.Len()),
		cont:   func(string, any) bool { return true },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the parser type's field registry.
func (p *Parser) Registry() *registry.Registry {
	return p.reg
}

// Handle returns the stream lifecycle handle.
func (p *Parser) Handle() *source.Handle {
	return p.handle
}

// Failures returns the sentinels recorded during the last full run, in
// field order.
func (p *Parser) Failures() []FieldFailure {
	return p.failures
}

// HasField implements field.Instance.
func (p *Parser) HasField(name string) bool {
	return p.reg.Has(name)
}

// FieldValue implements field.Instance. A slot holding nil counts as
// unresolved, matching the dependency-satisfaction rule.
func (p *Parser) FieldValue(name string) (any, bool) {
	desc, ok := p.reg.Lookup(name)
	if !ok {
		return nil, false
	}
	v := p.slots[desc.Index]
	return v, v != nil
}

// StoreFieldValue implements field.Instance. It is the raw slot write; the
// read-only guard lives on the descriptor's Set. Seeding defaults onto
// read-only fields goes through here on purpose.
func (p *Parser) StoreFieldValue(name string, value any) {
	if desc, ok := p.reg.Lookup(name); ok {
		p.slots[desc.Index] = value
	}
}

// Field returns the resolved value of name through the descriptor's guarded
// getter.
func (p *Parser) Field(name string) (any, error) {
	desc, ok := p.reg.Lookup(name)
	if !ok {
		return nil, &field.UnknownFieldError{Field: name}
	}
	return desc.Get(p)
}

// SetField writes a value through the descriptor's guarded setter.
func (p *Parser) SetField(name string, value any) error {
	desc, ok := p.reg.Lookup(name)
	if !ok {
		return &field.UnknownFieldError{Field: name}
	}
	return desc.Set(p, value)
}

// Result snapshots the resolved fields into an ordered map node, in final
// index order. Unresolved fields are omitted.
func (p *Parser) Result() *tree.Map {
	out := tree.NewMap()
	for _, desc := range p.reg.Descriptors() {
		if v := p.slots[desc.Index]; v != nil {
			out.Set(desc.Name, v)
		}
	}
	return out
}
