package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/parsekit/internal/ctxlog"
)

// Validate performs a strict parity check between the declared field
// catalogue and the bound Go handlers. Every declared field must have a
// handler, every dependency must itself be a declared field, and a read-only
// field must arrive pre-seeded or be unresolvable, which is reported here
// rather than at parse time.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		name, desc := pair.Key, pair.Value

		if _, ok := r.Handler(name); !ok {
			errs = append(errs, fmt.Sprintf("parser '%s': field '%s' has no bound Go handler", r.name, name))
		}
		for _, dep := range desc.Dependencies {
			if !r.Has(dep) {
				errs = append(errs, fmt.Sprintf("parser '%s': field '%s' depends on '%s', which is not a declared field", r.name, name, dep))
			}
		}
		if desc.ReadOnly {
			logger.Debug("Field is read-only; resolution results will not be stored for it.", "parser", r.name, "field", name)
		}
	}

	for name := range r.handlers {
		if !r.Has(name) {
			errs = append(errs, fmt.Sprintf("parser '%s': handler bound for '%s', which is not a declared field", r.name, name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
