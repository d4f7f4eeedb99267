package source

import "io"

// State tracks a handle's stream through its lifecycle. Closing always
// resets to StateUnset, permitting reacquisition.
type State int

const (
	StateUnset State = iota
	StateOpen
	StateClosed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unset"
	}
}

// Handle owns the stream a parser instance reads from. Acquisition is
// scoped: EnsureOpen before a resolution run, Release on every exit path.
// A Handle is exclusively owned by one parser instance and is not safe for
// concurrent use.
type Handle struct {
	src    Source
	stream io.ReadSeeker
	closer io.Closer
	state  State
}

// NewHandle returns an unset handle over the given source.
func NewHandle(src Source) *Handle {
	return &Handle{src: src, state: StateUnset}
}

// Source returns the underlying source.
func (h *Handle) Source() Source {
	return h.src
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	return h.state
}

// Stream returns the open stream, or nil when the handle is not open.
func (h *Handle) Stream() io.ReadSeeker {
	return h.stream
}

// EnsureOpen obtains a new stream from the source when the handle is unset.
// It is a no-op when a stream is already open. On failure the handle stays
// unset.
func (h *Handle) EnsureOpen() error {
	if h.state == StateOpen {
		return nil
	}
	stream, closer, err := h.src.Open()
	if err != nil {
		h.state = StateUnset
		return err
	}
	h.stream = stream
	h.closer = closer
	h.state = StateOpen
	return nil
}

// Release closes the underlying stream when one is open and resets the
// handle to unset, so a later run can reacquire. It is a no-op otherwise.
func (h *Handle) Release() error {
	if h.state != StateOpen {
		return nil
	}
	err := h.closer.Close()
	h.stream = nil
	h.closer = nil
	// closed immediately collapses to unset: the only legal move out of
	// closed is reacquisition.
	h.state = StateUnset
	return err
}
