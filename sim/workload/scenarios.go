package workload

import (
	"fmt"
	"sort"
)

// Built-in scenario presets. Each returns a valid Spec ready for Build.

// ScenarioReference is the hand-checked workload: three CPU tasks, four
// I/O requests over Disk and Printer, and a ten-reference page string over
// three frames.
func ScenarioReference(seed int64) *Spec {
	return &Spec{
		Seed: seed,
		Tasks: []TaskSpec{
			{ID: "P1", Arrival: 0, Burst: 10, Priority: 1},
			{ID: "P2", Arrival: 2, Burst: 5, Priority: 2},
			{ID: "P3", Arrival: 4, Burst: 7, Priority: 3},
		},
		IORequests: []RequestSpec{
			{ID: "R1", Device: "Disk", Arrival: 0, Duration: 20},
			{ID: "R2", Device: "Printer", Arrival: 10, Duration: 25},
			{ID: "R3", Device: "Printer", Arrival: 5, Duration: 15},
			{ID: "R4", Device: "Disk", Arrival: 30, Duration: 10},
		},
		References: []int{2, 3, 1, 5, 2, 4, 1, 3, 5, 2},
		Frames:     3,
	}
}

// ScenarioSkewedDevices sends every request to the Disk while a Printer sits
// idle, so the Printer steals once it passes the threshold.
func ScenarioSkewedDevices(seed int64) *Spec {
	return &Spec{
		Seed:        seed,
		DeviceTypes: []string{"Disk", "Printer"},
		Frames:      4,
		Synthetic: &SyntheticSpec{
			IORequests: 40,
			References: 60,
			Arrival:    ArrivalSpec{Process: "poisson", Rate: 1},
			Duration:   RangeSpec{Min: 5, Max: 15},
			Pages:      6,
			Locality:   0.3,
			Devices:    []string{"Disk"},
		},
	}
}

// ScenarioLongJobs mixes a few long CPU bursts with many short ones so SJF
// aging has something to do.
func ScenarioLongJobs(seed int64) *Spec {
	return &Spec{
		Seed: seed,
		Tasks: []TaskSpec{
			{ID: "L1", Arrival: 0, Burst: 60, Priority: 3},
			{ID: "L2", Arrival: 1, Burst: 45, Priority: 3},
		},
		Synthetic: &SyntheticSpec{
			Tasks:   30,
			Arrival: ArrivalSpec{Process: "constant", Rate: 0.5},
			Burst:   RangeSpec{Min: 1, Max: 6},
		},
	}
}

// ScenarioRandom generates every section from seed.
func ScenarioRandom(seed int64) *Spec {
	return &Spec{
		Seed:   seed,
		Frames: 4,
		Synthetic: &SyntheticSpec{
			Tasks:      20,
			IORequests: 30,
			References: 100,
			Locality:   0.2,
		},
	}
}

var scenarios = map[string]func(int64) *Spec{
	"reference":      ScenarioReference,
	"skewed-devices": ScenarioSkewedDevices,
	"long-jobs":      ScenarioLongJobs,
	"random":         ScenarioRandom,
}

// Scenario returns the named preset.
func Scenario(name string, seed int64) (*Spec, error) {
	f, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q; valid: %v", name, ScenarioNames())
	}
	return f(seed), nil
}

// ScenarioNames lists the presets in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
