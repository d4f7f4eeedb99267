package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of every declared parser type.
type Model struct {
	Parsers map[string]*ParserDefinition
}

// ParserDefinition is the format-agnostic declaration of one parser type:
// its bases, in declaration order, and its own fields.
type ParserDefinition struct {
	Type        string
	Description string
	Extends     []string
	Fields      []*FieldDefinition
}

// FieldDefinition declares a single field of a parser type. Index is the
// author-assigned declaration index; the registry builder re-derives the
// final index once bases are merged. Handler names the Go decoding routine;
// when empty, the field's own name is the handler name.
type FieldDefinition struct {
	Name        string
	Index       int
	DependsOn   []string
	ReadOnly    bool
	Handler     string
	Description string
	// Type is the declared shape of the decoded value, advisory for
	// consumers. DynamicPseudoType when the manifest omits it.
	Type cty.Type
	// Default, when present, pre-seeds the field's backing slot before any
	// resolution run.
	Default *cty.Value
}

// HandlerName returns the Go handler name the field binds to.
func (f *FieldDefinition) HandlerName() string {
	if f.Handler != "" {
		return f.Handler
	}
	return f.Name
}
