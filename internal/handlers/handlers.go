// Package handlers holds the compiled Go decoding routines that parser
// manifests refer to by name. It is populated once at startup by the
// built-in parser modules (and by tests), then consulted while binding
// registries.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/parsekit/internal/registry"
)

// Module is the interface a parser package implements to contribute its
// decoding routines.
type Module interface {
	Register(h *Handlers)
}

// Handlers maps handler names to decoding routines.
type Handlers struct {
	all map[string]registry.Handler
}

// New creates an empty handler store.
func New() *Handlers {
	return &Handlers{all: make(map[string]registry.Handler)}
}

// Register adds a decoding routine under the given name. Registering the
// same name twice is a programmer error.
func (h *Handlers) Register(name string, fn registry.Handler) {
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("field handler with name '%s' already registered", name))
	}
	slog.Debug("Registering field handler.", "name", name)
	h.all[name] = fn
}

// Lookup returns the decoding routine registered under name.
func (h *Handlers) Lookup(name string) (registry.Handler, bool) {
	fn, ok := h.all[name]
	return fn, ok
}

// Names returns the registered handler names, sorted.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
