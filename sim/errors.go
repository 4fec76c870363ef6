package sim

import "errors"

// Error kinds shared by every engine. Callers match them with errors.Is.
var (
	// ErrEmptyWorkload is returned when a workload defines nothing to simulate.
	ErrEmptyWorkload = errors.New("empty workload")
	// ErrInvalidCapacity is returned for a frame capacity <= 0.
	ErrInvalidCapacity = errors.New("invalid frame capacity")
	// ErrDuplicateIdentifier is returned when two tasks or requests share an ID.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrInvalidTask is returned for tasks with negative arrival or non-positive burst.
	ErrInvalidTask = errors.New("invalid task")
	// ErrInvalidRequest is returned for I/O requests with negative arrival or duration.
	ErrInvalidRequest = errors.New("invalid io request")
	// ErrTickLimit is returned when an engine exceeds its iteration cap.
	ErrTickLimit = errors.New("tick limit exceeded")
	// ErrNoPageSuffix is returned when a request ID carries no numeric suffix.
	ErrNoPageSuffix = errors.New("request id has no numeric suffix")
)
