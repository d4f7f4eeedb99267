// Package tree defines the value model produced by field handlers: ordered
// map nodes, list nodes and leaves (scalars, byte slices, timestamps). It
// also hosts the sanitizer that prepares a decoded tree for external
// consumption by dropping internal-only keys.
package tree
