package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/parsekit/internal/config"
	"github.com/vk/parsekit/internal/ctxlog"
	"github.com/vk/parsekit/internal/schema"
)

// translateParserDefinition converts the HCL-specific parser schema into the
// agnostic model. Field type expressions become cty type constraints;
// default expressions are evaluated with no variables in scope, since
// manifests are static declarations.
func (l *Loader) translateParserDefinition(ctx context.Context, s *schema.ParserDefinition) (*config.ParserDefinition, error) {
	logger := ctxlog.FromContext(ctx)

	def := &config.ParserDefinition{
		Type:        s.Type,
		Description: s.Description,
		Extends:     s.Extends,
	}

	for _, f := range s.Fields {
		fieldType := cty.DynamicPseudoType
		if f.Type != nil {
			ty, diags := typeexpr.TypeConstraint(f.Type)
			if diags.HasErrors() {
				return nil, fmt.Errorf("parser '%s', field '%s': invalid type expression: %w", s.Type, f.Name, diags)
			}
			fieldType = ty
		}

		var defaultVal *cty.Value
		if f.Default != nil {
			val, diags := f.Default.Value(nil)
			// A default is only usable when it evaluates cleanly and is not
			// null; anything else is ignored rather than fatal.
			if !diags.HasErrors() && !val.IsNull() {
				defaultVal = &val
			} else if diags.HasErrors() {
				logger.Warn("Ignoring field default that does not evaluate statically.", "parser", s.Type, "field", f.Name)
			}
		}

		def.Fields = append(def.Fields, &config.FieldDefinition{
			Name:        f.Name,
			Index:       f.Index,
			DependsOn:   f.DependsOn,
			ReadOnly:    f.ReadOnly,
			Handler:     f.Handler,
			Description: f.Description,
			Type:        fieldType,
			Default:     defaultVal,
		})
	}

	return def, nil
}
