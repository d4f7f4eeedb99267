package registry

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vk/parsekit/internal/field"
)

// Build constructs the registry for a parser type. It is the explicit
// once-per-type registration step: base registries contribute their fields
// first, in base declaration order, then the type's own descriptors follow
// sorted by their author-assigned index. Overriding an inherited name
// replaces its descriptor but keeps the position fixed by the base ordering.
// Finally every descriptor is renumbered contiguously from 0 in traversal
// order, so author indices only ever decide relative order within one
// declaration block.
func Build(name string, bases []*Registry, declared []*field.Descriptor) (*Registry, error) {
	merged := orderedmap.New[string, *field.Descriptor]()

	for _, base := range bases {
		for pair := base.fields.Oldest(); pair != nil; pair = pair.Next() {
			// A name declared by two bases keeps the position given by the
			// first; later bases replace the descriptor in place.
			merged.Set(pair.Key, pair.Value)
		}
	}

	own := make([]*field.Descriptor, len(declared))
	copy(own, declared)
	sort.SliceStable(own, func(i, j int) bool { return own[i].Index < own[j].Index })

	seen := make(map[string]bool, len(own))
	for _, d := range own {
		if d.Name == "" {
			return nil, fmt.Errorf("parser type %q: field with empty name", name)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("parser type %q: field %q declared twice", name, d.Name)
		}
		seen[d.Name] = true
		for _, dep := range d.Dependencies {
			if dep == d.Name {
				return nil, fmt.Errorf("parser type %q: field %q lists itself as a dependency", name, d.Name)
			}
		}
		merged.Set(d.Name, d)
	}

	reg := &Registry{
		name:     name,
		fields:   orderedmap.New[string, *field.Descriptor](),
		handlers: make(map[string]Handler),
		bases:    append([]*Registry(nil), bases...),
	}
	idx := 0
	for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
		reg.fields.Set(pair.Key, pair.Value.Clone(idx))
		idx++
	}

	return reg, nil
}
