// Package config defines the format-agnostic model for declared parser
// types. Loaders (currently HCL) translate their syntax into this model;
// the application builds field registries from it without knowing which
// format it came from.
package config
