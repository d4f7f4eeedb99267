// Package schema holds the HCL decoding structs for parser manifests. The
// structs mirror manifest syntax one-to-one; translation into the
// format-agnostic config model happens in the hcl package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// FieldDefinition represents a `field` block inside a parser manifest.
type FieldDefinition struct {
	Name        string         `hcl:"name,label"`
	Index       int            `hcl:"index"`
	DependsOn   []string       `hcl:"depends_on,optional"`
	ReadOnly    bool           `hcl:"read_only,optional"`
	Handler     string         `hcl:"handler,optional"`
	Description string         `hcl:"description,optional"`
	Type        hcl.Expression `hcl:"type,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// ParserDefinition represents a top-level `parser` block.
type ParserDefinition struct {
	Type        string             `hcl:"type,label"`
	Description string             `hcl:"description,optional"`
	Extends     []string           `hcl:"extends,optional"`
	Fields      []*FieldDefinition `hcl:"field,block"`
}
