// Package field defines the descriptor for a single declared parser field:
// its position, name, dependency list and read-only flag, together with the
// guarded accessor behavior a registry installs for it.
package field
