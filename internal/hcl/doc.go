// Package hcl implements the HCL loader for parser manifests: discovery of
// .hcl files, decoding into the schema structs, and translation into the
// format-agnostic config model, including field type constraints and default
// values.
package hcl
