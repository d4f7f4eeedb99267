package engine

import (
	"context"

	"github.com/vk/parsekit/internal/ctxlog"
	"github.com/vk/parsekit/internal/field"
)

// ResolveField resolves one field by name, first guaranteeing its declared
// prerequisites hold resolved values. Resolution is fail-fast: every error
// in the taxonomy surfaces to the caller. The stream must already be open;
// single-field resolution never acquires its own.
func (p *Parser) ResolveField(ctx context.Context, name string, overrides map[string]any) (any, error) {
	return p.resolve(ctx, name, overrides, make(map[string]bool))
}

// resolve carries the in-progress set for one top-level call. Revisiting a
// field still on the stack is a cycle; revisiting a field that already
// resolved is served from its backing slot and never recurses.
func (p *Parser) resolve(ctx context.Context, name string, overrides map[string]any, inProgress map[string]bool) (any, error) {
	desc, ok := p.reg.Lookup(name)
	if !ok {
		return nil, &field.UnknownFieldError{Field: name}
	}
	handler, ok := p.reg.Handler(name)
	if !ok {
		return nil, &NoHandlerError{Field: name}
	}
	if inProgress[name] {
		return nil, &CycleError{Field: name}
	}
	inProgress[name] = true
	defer delete(inProgress, name)

	for _, dep := range desc.Dependencies {
		if dep == name {
			continue
		}
		depDesc, ok := p.reg.Lookup(dep)
		if !ok {
			return nil, &InvalidDependencyError{Field: name, Dependency: dep}
		}
		if _, resolved := p.FieldValue(dep); resolved {
			continue
		}
		value, err := p.resolve(ctx, dep, overrides, inProgress)
		if err != nil {
			return nil, &DependencyError{Field: name, Dependency: dep, Err: err}
		}
		if err := depDesc.Set(p, value); err != nil {
			return nil, &DependencyError{Field: name, Dependency: dep, Err: err}
		}
	}

	ctxlog.FromContext(ctx).Debug("Calling field handler.", "parser", p.reg.Name(), "field", name)
	return handler(ctx, p, p.handle.Stream(), p.prepareArgs(name, overrides))
}

// prepareArgs builds the handler call arguments from the caller's overrides.
// An override whose key names a registered field (other than the field being
// resolved) is replaced by that field's current resolved value: binding is
// one-directional, resolved state always wins over caller-supplied values.
func (p *Parser) prepareArgs(name string, overrides map[string]any) map[string]any {
	args := make(map[string]any, len(overrides))
	for key, value := range overrides {
		if key != name && p.reg.Has(key) {
			args[key], _ = p.FieldValue(key)
			continue
		}
		args[key] = value
	}
	return args
}

// ResolveAll walks the registry in final index order, resolving each field
// and storing successes through the guarded setter. A field whose slot is
// already resolved, because it was seeded or stored earlier in the walk as a
// prerequisite, is served from the slot without re-running its handler. A
// field failure is logged, recorded as a FieldFailure sentinel and handed to
// the continuation predicate in place of a result; it never reaches the
// backing slot. A failure escaping the loop itself, including a panicking
// continuation predicate, is swallowed, leaving the caller the instance's
// partial state.
func (p *Parser) ResolveAll(ctx context.Context) *Parser {
	logger := ctxlog.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("Full-registry run aborted; partial state retained.", "parser", p.reg.Name(), "cause", r)
		}
	}()

	p.failures = p.failures[:0]
	for _, desc := range p.reg.Descriptors() {
		if value, resolved := p.FieldValue(desc.Name); resolved {
			if !p.cont(desc.Name, value) {
				break
			}
			continue
		}
		var result any
		value, err := p.ResolveField(ctx, desc.Name, nil)
		if err == nil {
			err = desc.Set(p, value)
		}
		if err != nil {
			logger.Error("Failed to resolve field.", "parser", p.reg.Name(), "field", desc.Name, "error", err)
			failure := FieldFailure{Field: desc.Name, Err: err}
			p.failures = append(p.failures, failure)
			result = failure
		} else {
			result = value
		}
		if !p.cont(desc.Name, result) {
			break
		}
	}
	return p
}

// Parse is the full-run boundary: it acquires the stream, runs ResolveAll
// and releases the stream on every exit path. Acquisition failure is the one
// error Parse surfaces; everything past the open follows the full-run
// swallow contract.
func (p *Parser) Parse(ctx context.Context) (*Parser, error) {
	if err := p.handle.EnsureOpen(); err != nil {
		ctxlog.FromContext(ctx).Error("Failed to open source stream.", "parser", p.reg.Name(), "error", err)
		return p, err
	}
	defer p.handle.Release()
	return p.ResolveAll(ctx), nil
}
