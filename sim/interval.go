package sim

import "fmt"

// Interval is one timeline entry: the unit identified by ID held the resource
// over [Start, End).
type Interval struct {
	ID    string `json:"id"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
}

// Duration returns End - Start.
func (iv Interval) Duration() int64 {
	return iv.End - iv.Start
}

func (iv Interval) String() string {
	return fmt.Sprintf("(%d, %d, %s)", iv.Start, iv.End, iv.ID)
}

// TimelineDuration sums the durations of all intervals.
func TimelineDuration(timeline []Interval) int64 {
	var total int64
	for _, iv := range timeline {
		total += iv.Duration()
	}
	return total
}
