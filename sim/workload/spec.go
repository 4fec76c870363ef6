package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim"
)

// Spec is the top-level workload file.
// Loaded from YAML via LoadSpec(path).
type Spec struct {
	Seed           int64          `yaml:"seed"`
	Tasks          []TaskSpec     `yaml:"tasks,omitempty"`
	IORequests     []RequestSpec  `yaml:"io_requests,omitempty"`
	References     []int          `yaml:"references,omitempty"`
	Frames         int            `yaml:"frames,omitempty"`          // 0 = caller default
	Quantum        int64          `yaml:"quantum,omitempty"`         // 0 = cpu.DefaultQuantum
	StealThreshold int            `yaml:"steal_threshold,omitempty"` // 0 = device.DefaultStealThreshold
	DeviceTypes    []string       `yaml:"device_types,omitempty"`
	Synthetic      *SyntheticSpec `yaml:"synthetic,omitempty"`
}

// TaskSpec defines one CPU task.
type TaskSpec struct {
	ID       string `yaml:"id"`
	Arrival  int64  `yaml:"arrival"`
	Burst    int64  `yaml:"burst"`
	Priority int64  `yaml:"priority"`
}

// RequestSpec defines one I/O request.
type RequestSpec struct {
	ID       string `yaml:"id"`
	Device   string `yaml:"device"`
	Arrival  int64  `yaml:"arrival"`
	Duration int64  `yaml:"duration"`
}

// SyntheticSpec asks for generated entries appended after the explicit ones.
type SyntheticSpec struct {
	Tasks      int         `yaml:"tasks"`
	IORequests int         `yaml:"io_requests"`
	References int         `yaml:"references"`
	Arrival    ArrivalSpec `yaml:"arrival"`
	Burst      RangeSpec   `yaml:"burst"`
	Duration   RangeSpec   `yaml:"duration"`
	Priorities int64       `yaml:"priorities"` // priorities drawn from [0, Priorities)
	Pages      int         `yaml:"pages"`      // pages drawn from [1, Pages]
	Locality   float64     `yaml:"locality"`   // probability of re-referencing the previous page
	Devices    []string    `yaml:"devices"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string  `yaml:"process"`
	Rate    float64 `yaml:"rate"` // arrivals per time unit
}

// RangeSpec is an inclusive integer range.
type RangeSpec struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Defaults for omitted synthetic parameters.
const (
	defaultArrivalRate = 0.5
	defaultPriorities  = 4
	defaultPages       = 8
)

var (
	defaultBurst    = RangeSpec{Min: 1, Max: 20}
	defaultDuration = RangeSpec{Min: 1, Max: 25}
	defaultDevices  = []string{"Disk", "Printer"}
)

// LoadSpec reads, parses and validates a YAML workload file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec parses and validates YAML workload data.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks scalar fields and rejects a workload that defines
// nothing to simulate. Per-entry checks happen in Build.
func (s *Spec) Validate() error {
	if s.Frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", s.Frames)
	}
	if s.Quantum < 0 {
		return fmt.Errorf("quantum must be non-negative, got %d", s.Quantum)
	}
	if s.StealThreshold < 0 {
		return fmt.Errorf("steal_threshold must be non-negative, got %d", s.StealThreshold)
	}
	if s.Synthetic != nil {
		if err := s.Synthetic.validate(); err != nil {
			return fmt.Errorf("synthetic: %w", err)
		}
	}
	if len(s.Tasks) == 0 && len(s.IORequests) == 0 && len(s.References) == 0 && s.Synthetic.empty() {
		return fmt.Errorf("workload spec: %w", sim.ErrEmptyWorkload)
	}
	return nil
}

func (ss *SyntheticSpec) empty() bool {
	return ss == nil || ss.Tasks+ss.IORequests+ss.References == 0
}

func (ss *SyntheticSpec) validate() error {
	if ss.Tasks < 0 || ss.IORequests < 0 || ss.References < 0 {
		return fmt.Errorf("counts must be non-negative")
	}
	if ss.Arrival.Process != "" && !validArrivalProcesses[ss.Arrival.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, constant", ss.Arrival.Process)
	}
	if ss.Arrival.Rate < 0 {
		return fmt.Errorf("arrival rate must be non-negative, got %f", ss.Arrival.Rate)
	}
	for name, r := range map[string]RangeSpec{"burst": ss.Burst, "duration": ss.Duration} {
		if r != (RangeSpec{}) && (r.Min < 1 || r.Max < r.Min) {
			return fmt.Errorf("%s range [%d, %d] must satisfy 1 <= min <= max", name, r.Min, r.Max)
		}
	}
	if ss.Priorities < 0 || ss.Pages < 0 {
		return fmt.Errorf("priorities and pages must be non-negative")
	}
	if ss.Locality < 0 || ss.Locality > 1 {
		return fmt.Errorf("locality must be in [0, 1], got %f", ss.Locality)
	}
	return nil
}

// withDefaults returns a copy with omitted parameters filled in.
func (ss SyntheticSpec) withDefaults() SyntheticSpec {
	if ss.Arrival.Process == "" {
		ss.Arrival.Process = "poisson"
	}
	if ss.Arrival.Rate == 0 {
		ss.Arrival.Rate = defaultArrivalRate
	}
	if ss.Burst == (RangeSpec{}) {
		ss.Burst = defaultBurst
	}
	if ss.Duration == (RangeSpec{}) {
		ss.Duration = defaultDuration
	}
	if ss.Priorities == 0 {
		ss.Priorities = defaultPriorities
	}
	if ss.Pages == 0 {
		ss.Pages = defaultPages
	}
	if len(ss.Devices) == 0 {
		ss.Devices = defaultDevices
	}
	return ss
}

// Workload is a materialized spec ready for the engines.
type Workload struct {
	Tasks      []*sim.Task
	Requests   []*sim.IORequest
	References []int
}

func taskIDs(tasks []*sim.Task) map[string]bool {
	ids := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		ids[t.ID] = true
	}
	return ids
}

func requestIDs(reqs []*sim.IORequest) map[string]bool {
	ids := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		ids[r.ID] = true
	}
	return ids
}

// Build materializes explicit entries followed by synthetic ones and
// validates the result.
func (s *Spec) Build() (*Workload, error) {
	w := &Workload{References: append([]int(nil), s.References...)}
	for _, t := range s.Tasks {
		w.Tasks = append(w.Tasks, sim.NewTask(t.ID, t.Arrival, t.Burst, t.Priority))
	}
	for _, r := range s.IORequests {
		w.Requests = append(w.Requests, sim.NewIORequest(r.ID, r.Device, r.Arrival, r.Duration))
	}

	if s.Synthetic != nil {
		g := NewGenerator(*s.Synthetic, s.Seed)
		w.Tasks = append(w.Tasks, g.Tasks(len(w.Tasks), taskIDs(w.Tasks))...)
		w.Requests = append(w.Requests, g.Requests(len(w.Requests), requestIDs(w.Requests))...)
		w.References = append(w.References, g.References()...)
		logrus.Debugf("synthetic workload (seed %d): %d tasks, %d requests, %d references",
			s.Seed, s.Synthetic.Tasks, s.Synthetic.IORequests, s.Synthetic.References)
	}

	if err := sim.ValidateTasks(w.Tasks); err != nil {
		return nil, fmt.Errorf("workload spec: %w", err)
	}
	if err := sim.ValidateRequests(w.Requests); err != nil {
		return nil, fmt.Errorf("workload spec: %w", err)
	}
	for i, p := range w.References {
		if p < 0 {
			return nil, fmt.Errorf("workload spec: references[%d] = %d must be non-negative", i, p)
		}
	}
	return w, nil
}
