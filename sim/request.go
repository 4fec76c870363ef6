// Defines the IORequest struct that models a unit of device work.

package sim

import (
	"fmt"
)

// IORequest is an immutable unit of device work.
type IORequest struct {
	ID          string // Unique identifier for the request
	DeviceType  string // Device the request is addressed to
	ArrivalTime int64  // Time unit at which the request is issued
	Duration    int64  // Device time required to serve the request
}

// NewIORequest creates an IORequest.
func NewIORequest(id, deviceType string, arrival, duration int64) *IORequest {
	return &IORequest{ID: id, DeviceType: deviceType, ArrivalTime: arrival, Duration: duration}
}

// Less reports whether r is scheduled before o: earlier arrival first,
// then shorter duration, then ID for determinism.
func (r *IORequest) Less(o *IORequest) bool {
	if r.ArrivalTime != o.ArrivalTime {
		return r.ArrivalTime < o.ArrivalTime
	}
	if r.Duration != o.Duration {
		return r.Duration < o.Duration
	}
	return r.ID < o.ID
}

func (r IORequest) String() string {
	return fmt.Sprintf("IORequest: (ID: %s, Device: %s, Arrival: %d, Duration: %d)", r.ID, r.DeviceType, r.ArrivalTime, r.Duration)
}

// ValidateRequests rejects nil entries, empty device types, negative times and duplicate IDs.
func ValidateRequests(reqs []*IORequest) error {
	seen := make(map[string]bool, len(reqs))
	for i, r := range reqs {
		if r == nil {
			return fmt.Errorf("io_request[%d] is nil: %w", i, ErrInvalidRequest)
		}
		if r.DeviceType == "" {
			return fmt.Errorf("io request %q: device type must be set: %w", r.ID, ErrInvalidRequest)
		}
		if r.ArrivalTime < 0 || r.Duration < 0 {
			return fmt.Errorf("io request %q: arrival and duration must be non-negative: %w", r.ID, ErrInvalidRequest)
		}
		if seen[r.ID] {
			return fmt.Errorf("io request %q: %w", r.ID, ErrDuplicateIdentifier)
		}
		seen[r.ID] = true
	}
	return nil
}
