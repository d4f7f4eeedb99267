package source

import (
	"bytes"
	"io"
	"os"
)

// Source is the origin of raw bytes for a parser instance. Opening yields a
// fresh readable stream; the lifecycle of that stream is owned by the Handle
// that opened it.
type Source interface {
	// Open returns a new stream positioned at the start of the source's
	// bytes. Closing the returned closer is the caller's responsibility.
	Open() (io.ReadSeeker, io.Closer, error)
}

// Bytes is an in-memory source. Opening never fails and always yields a
// stream over the exact bytes supplied, including the empty buffer.
type Bytes []byte

// Open implements Source.
func (b Bytes) Open() (io.ReadSeeker, io.Closer, error) {
	return bytes.NewReader(b), nopCloser{}, nil
}

// File is a file-path source, opened read-only in binary mode.
type File string

// Open implements Source. A missing or unreadable path yields an OpenError.
func (f File) Open() (io.ReadSeeker, io.Closer, error) {
	fh, err := os.Open(string(f))
	if err != nil {
		return nil, nil, &OpenError{Path: string(f), Err: err}
	}
	return fh, fh, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
