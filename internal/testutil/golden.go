// Package testutil provides shared test infrastructure for the schedsim engines.
// It consolidates the reference workloads and assertion helpers used across
// the sim/ engine test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/schedsim/schedsim/sim"
)

// ScenarioTasks returns the three-task reference workload
// {P1: 0/10, P2: 2/5, P3: 4/7} with priorities 1..3.
func ScenarioTasks() []*sim.Task {
	return []*sim.Task{
		sim.NewTask("P1", 0, 10, 1),
		sim.NewTask("P2", 2, 5, 2),
		sim.NewTask("P3", 4, 7, 3),
	}
}

// ScenarioRequests returns the reference I/O workload spread over Disk and Printer.
func ScenarioRequests() []*sim.IORequest {
	return []*sim.IORequest{
		sim.NewIORequest("R1", "Disk", 0, 20),
		sim.NewIORequest("R2", "Printer", 10, 25),
		sim.NewIORequest("R3", "Printer", 5, 15),
		sim.NewIORequest("R4", "Disk", 30, 10),
	}
}

// ScenarioReferences returns the reference page string used with 3 frames.
func ScenarioReferences() []int {
	return []int{2, 3, 1, 5, 2, 4, 1, 3, 5, 2}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// IntervalIDs returns the IDs of a timeline in order.
func IntervalIDs(timeline []sim.Interval) []string {
	ids := make([]string, len(timeline))
	for i, iv := range timeline {
		ids[i] = iv.ID
	}
	return ids
}
