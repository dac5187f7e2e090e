package background

import "errors"

var (
	// ErrMissingBackground is returned when a fade is requested but neither
	// record atom names a pixmap.
	ErrMissingBackground = errors.New("no current background to fade from")

	// ErrPersistence is returned when a pixmap could not be made to outlive
	// the connection that created it.
	ErrPersistence = errors.New("failed to persist pixmap")

	// ErrMalformedRecord is returned when a record atom holds something other
	// than a single 32-bit pixmap id.
	ErrMalformedRecord = errors.New("malformed background record")
)
