// Package cli translates command-line arguments into an app.Config and owns
// the exit-code contract of the binary.
package cli
