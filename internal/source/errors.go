package source

import "fmt"

// OpenError reports that a file-backed source could not be opened for
// reading.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open source %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
