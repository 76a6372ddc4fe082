package ownership

import "errors"

// Sentinel errors for the ownership pipeline.
var (
	// ErrNotTracked marks a path that is outside version control. It is a
	// recoverable outcome: the path contributes zero lines and is never a
	// process failure on its own.
	ErrNotTracked = errors.New("path is not tracked")

	// ErrBlameUnavailable marks a blame failure other than "not tracked"
	// (tool missing, permission error, malformed output). It is fatal and
	// aborts the whole invocation.
	ErrBlameUnavailable = errors.New("blame unavailable")

	// ErrInvalidArgument marks caller misuse: conflicting query options or
	// out-of-range values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidPath marks a root that is neither an existing file nor an
	// existing directory.
	ErrInvalidPath = errors.New("invalid path")
)
