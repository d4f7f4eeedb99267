// Package registry provides the inheritance-merged field catalogue for a
// parser type.
//
// A Registry is the ordered mapping from field name to descriptor, built
// exactly once per parser type and shared read-only by every instance of
// that type. It also stores the mapping from field names to the Go handler
// functions that decode them, mirroring how manifest identifiers bind to
// compiled handlers.
//
// After construction the registry is validated so that declared fields and
// bound Go handlers are in sync, preventing a wide class of runtime errors.
package registry
