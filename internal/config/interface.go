package config

import "context"

// Loader is the interface for a format-specific parser-definition loader.
type Loader interface {
	// Load reads every definition file reachable from the given paths and
	// returns the merged model. Paths that do not exist are skipped.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
