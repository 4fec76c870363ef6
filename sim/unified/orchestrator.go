// Package unified couples the I/O device manager and the memory manager:
// every completed I/O request touches one memory page.
package unified

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/device"
	"github.com/schedsim/schedsim/sim/memory"
	"github.com/schedsim/schedsim/sim/trace"
)

// Config groups the parameters of both subsystems.
type Config struct {
	Device device.Config
	Trace  *trace.SimulationTrace // shared by both subsystems (nil = off)
}

// Orchestrator runs the I/O workload, then replays each completion as a
// page reference in completion order. It owns one I/O manager and one memory
// manager; Run resets the memory manager first, so repeated runs start from
// an empty cache.
type Orchestrator struct {
	io     *device.Manager
	memory *memory.Manager
}

// Access is one page reference derived from a completed I/O interval.
type Access struct {
	Interval sim.Interval
	Device   string
	Page     int
	Hit      bool
}

// Result is returned by Orchestrator.Run.
type Result struct {
	IO       *device.Result
	Memory   memory.Metrics
	Accesses []Access // in completion order

	Throughput         int     // completed requests
	AvgResponseTime    float64 // mean(End - Start) over completed requests
	OverallUtilization float64 // total busy / max finish * 100
	MemoryTimeline     [][]int // resident snapshot after each access
}

// NewOrchestrator validates both subsystems' parameters. Request IDs must end
// in a decimal page number.
func NewOrchestrator(requests []*sim.IORequest, frames int, cfg Config) (*Orchestrator, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("orchestrator: %d frames: %w", frames, sim.ErrInvalidCapacity)
	}
	for _, r := range requests {
		if r == nil {
			continue // reported by the I/O manager
		}
		if _, err := PageFromRequestID(r.ID); err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}
	devCfg := cfg.Device
	if devCfg.Trace == nil {
		devCfg.Trace = cfg.Trace
	}
	io, err := device.NewManager(requests, devCfg)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	mem, err := memory.NewManager(frames, memory.Config{Trace: cfg.Trace})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return &Orchestrator{io: io, memory: mem}, nil
}

// PageFromRequestID returns the trailing decimal digits of id as a page number.
func PageFromRequestID(id string) (int, error) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, fmt.Errorf("request %q: %w", id, sim.ErrNoPageSuffix)
	}
	page, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0, fmt.Errorf("request %q: %w", id, err)
	}
	return page, nil
}

type completion struct {
	iv     sim.Interval
	device int
	index  int
}

// Run executes the I/O workload and feeds the memory manager.
func (o *Orchestrator) Run() (*Result, error) {
	ioRes, err := o.io.Run()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	var done []completion
	for d, dm := range ioRes.Devices {
		for i, iv := range dm.Timeline {
			done = append(done, completion{iv: iv, device: d, index: i})
		}
	}
	sort.Slice(done, func(i, j int) bool {
		a, b := done[i], done[j]
		if a.iv.End != b.iv.End {
			return a.iv.End < b.iv.End
		}
		if a.device != b.device {
			return a.device < b.device
		}
		return a.index < b.index
	})

	mem := o.memory
	mem.Reset()
	res := &Result{IO: ioRes, Accesses: make([]Access, 0, len(done))}
	var response int64
	for _, c := range done {
		page, err := PageFromRequestID(c.iv.ID)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		hit := mem.Access(page)
		res.Accesses = append(res.Accesses, Access{
			Interval: c.iv,
			Device:   ioRes.Devices[c.device].Type,
			Page:     page,
			Hit:      hit,
		})
		response += c.iv.Duration()
	}

	res.Throughput = len(done)
	res.AvgResponseTime = sim.SafeRatio(float64(response), float64(len(done)))
	res.OverallUtilization = sim.Percent(ioRes.TotalBusyTime, ioRes.MaxFinish)
	res.Memory = mem.Metrics()
	res.MemoryTimeline = mem.Timeline()

	logrus.Infof("Unified: %d requests completed, avg response %.2f, utilization %.2f%%, %d page faults",
		res.Throughput, res.AvgResponseTime, res.OverallUtilization, res.Memory.PageFaults)
	return res, nil
}
