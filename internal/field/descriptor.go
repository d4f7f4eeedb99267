package field

// Instance is the per-parser state a descriptor reads and writes through.
// The engine's parser instance implements it with slot-backed storage keyed
// by the registry's index assignment.
type Instance interface {
	// HasField reports whether name is part of the instance's registry.
	HasField(name string) bool
	// FieldValue returns the backing value for name and whether it has been
	// resolved. An unresolved field yields (nil, false).
	FieldValue(name string) (any, bool)
	// StoreFieldValue overwrites the backing value for name unconditionally.
	StoreFieldValue(name string, value any)
}

// Descriptor is the immutable metadata for one declared field. Index is
// author-assigned at declaration time and re-derived by the registry builder
// once the owning type's registry is merged; the copy held by a built
// registry is never mutated afterward.
type Descriptor struct {
	Index        int
	Name         string
	Dependencies []string
	ReadOnly     bool
}

// New returns a descriptor for a field declared at the given author index.
func New(index int, name string, opts ...Option) *Descriptor {
	d := &Descriptor{Index: index, Name: name}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option mutates a descriptor during construction.
type Option func(*Descriptor)

// WithDependencies declares the fields that must hold resolved values before
// this field's handler may run, in resolution order.
func WithDependencies(names ...string) Option {
	return func(d *Descriptor) { d.Dependencies = names }
}

// ReadOnly marks the field as rejecting writes.
func ReadOnly() Option {
	return func(d *Descriptor) { d.ReadOnly = true }
}

// Clone returns a copy of the descriptor carrying the given index. The
// registry builder uses it so that built registries never alias author-owned
// descriptors.
func (d *Descriptor) Clone(index int) *Descriptor {
	deps := make([]string, len(d.Dependencies))
	copy(deps, d.Dependencies)
	if len(deps) == 0 {
		deps = nil
	}
	return &Descriptor{
		Index:        index,
		Name:         d.Name,
		Dependencies: deps,
		ReadOnly:     d.ReadOnly,
	}
}

// DependenciesSatisfied reports whether every declared dependency other than
// the field's own name holds a resolved value on inst.
func (d *Descriptor) DependenciesSatisfied(inst Instance) bool {
	for _, dep := range d.Dependencies {
		if dep == d.Name {
			continue
		}
		if _, ok := inst.FieldValue(dep); !ok {
			return false
		}
	}
	return true
}

// Get returns the backing value for the field. It fails when the instance's
// registry does not contain the field or when the field's dependencies are
// unmet. An unresolved backing slot is not an error: Get returns nil, which
// distinguishes "never computed" from "dependency missing".
func (d *Descriptor) Get(inst Instance) (any, error) {
	if !inst.HasField(d.Name) {
		return nil, &UnknownFieldError{Field: d.Name}
	}
	if !d.DependenciesSatisfied(inst) {
		return nil, &UnmetDependencyError{Field: d.Name, Dependencies: d.Dependencies}
	}
	value, _ := inst.FieldValue(d.Name)
	return value, nil
}

// Set overwrites the backing value for the field. It fails for read-only
// fields and performs no type check on the value.
func (d *Descriptor) Set(inst Instance, value any) error {
	if d.ReadOnly {
		return &ReadOnlyError{Field: d.Name}
	}
	inst.StoreFieldValue(d.Name, value)
	return nil
}
