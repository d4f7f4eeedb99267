// Package app contains the application wiring: it loads parser manifests,
// registers the built-in parser modules, builds and validates field
// registries, and runs a parse against an input file. It is decoupled from
// any specific entrypoint like a CLI.
package app
