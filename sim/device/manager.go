package device

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

const (
	// DefaultStealThreshold is the idle-tick count a device must exceed before it steals.
	DefaultStealThreshold = 10
	// DefaultMaxTicks caps a run so a pathological workload cannot loop forever.
	DefaultMaxTicks int64 = 1_000_000
)

// Config groups I/O manager parameters.
type Config struct {
	StealThreshold int      // idle ticks before stealing (0 = DefaultStealThreshold)
	DeviceTypes    []string // devices to create even if no request targets them
	MaxTicks       int64    // hard iteration cap (0 = DefaultMaxTicks)
	Trace          *trace.SimulationTrace
}

// Manager owns one Device per device type and moves pending work from busy
// devices to devices that have idled past the steal threshold.
type Manager struct {
	workload  []*sim.IORequest
	types     []string
	threshold int
	maxTicks  int64
	trace     *trace.SimulationTrace
}

// Result is returned by Manager.Run.
type Result struct {
	Devices       []Metrics // in device order
	Steals        []trace.StealRecord
	Ticks         int64
	TotalBusyTime int64
	MaxFinish     int64
	Utilization   float64 // total busy / max finish * 100
}

// Processed returns the total number of completed requests.
func (r *Result) Processed() int {
	n := 0
	for _, d := range r.Devices {
		n += d.Processed
	}
	return n
}

// NewManager validates the workload and fixes the device order: configured
// device types first, then types in order of first appearance.
func NewManager(requests []*sim.IORequest, cfg Config) (*Manager, error) {
	if err := sim.ValidateRequests(requests); err != nil {
		return nil, fmt.Errorf("io manager: %w", err)
	}
	if cfg.StealThreshold < 0 {
		return nil, fmt.Errorf("io manager: steal threshold must be non-negative, got %d", cfg.StealThreshold)
	}
	if cfg.MaxTicks < 0 {
		return nil, fmt.Errorf("io manager: max ticks must be non-negative, got %d", cfg.MaxTicks)
	}
	m := &Manager{
		threshold: cfg.StealThreshold,
		maxTicks:  cfg.MaxTicks,
		trace:     cfg.Trace,
	}
	if m.threshold == 0 {
		m.threshold = DefaultStealThreshold
	}
	if m.maxTicks == 0 {
		m.maxTicks = DefaultMaxTicks
	}
	seen := map[string]bool{}
	addType := func(t string) {
		if !seen[t] {
			seen[t] = true
			m.types = append(m.types, t)
		}
	}
	for _, t := range cfg.DeviceTypes {
		if t == "" {
			return nil, fmt.Errorf("io manager: empty device type: %w", sim.ErrInvalidRequest)
		}
		addType(t)
	}
	m.workload = make([]*sim.IORequest, len(requests))
	for i, r := range requests {
		cp := *r
		m.workload[i] = &cp
		addType(r.DeviceType)
	}
	return m, nil
}

// DeviceTypes returns the device order used by Run.
func (m *Manager) DeviceTypes() []string {
	return append([]string(nil), m.types...)
}

// Run simulates until every device queue is drained.
// Returns sim.ErrTickLimit if the run exceeds the configured tick cap.
func (m *Manager) Run() (*Result, error) {
	devices := make([]*Device, len(m.types))
	index := make(map[string]*Device, len(m.types))
	for i, t := range m.types {
		devices[i] = NewDevice(t)
		index[t] = devices[i]
	}
	for _, r := range m.workload {
		index[r.DeviceType].AddRequest(r)
	}

	res := &Result{}
	var tick int64
	for ; !drained(devices); tick++ {
		if tick >= m.maxTicks {
			return nil, fmt.Errorf("io manager: %d ticks without draining: %w", tick, sim.ErrTickLimit)
		}
		for _, d := range devices {
			d.step(tick)
		}
		res.Steals = append(res.Steals, m.steal(devices, tick)...)
	}
	res.Ticks = tick

	for _, d := range devices {
		dm := d.Metrics()
		res.Devices = append(res.Devices, dm)
		res.TotalBusyTime += dm.BusyTime
		res.MaxFinish = max(res.MaxFinish, dm.MaxFinish)
	}
	res.Utilization = sim.Percent(res.TotalBusyTime, res.MaxFinish)
	logrus.Infof("IO manager drained %d requests over %d devices in %d ticks (%d steals)",
		res.Processed(), len(devices), res.Ticks, len(res.Steals))
	return res, nil
}

// drained reports whether every device queue is empty.
func drained(devices []*Device) bool {
	for _, d := range devices {
		if d.Pending() > 0 {
			return false
		}
	}
	return true
}

// steal lets every device idle past the threshold take the pending request
// with the globally earliest arrival from another device. A device that
// finds nothing to steal keeps its idle count.
func (m *Manager) steal(devices []*Device, tick int64) []trace.StealRecord {
	var records []trace.StealRecord
	for ti, thief := range devices {
		if thief.IdleTicks <= m.threshold {
			continue
		}
		var donor *Device
		var candidate *sim.IORequest
		for di, d := range devices {
			if di == ti {
				continue
			}
			head := d.queue.peek()
			if head == nil {
				continue
			}
			if candidate == nil || head.ArrivalTime < candidate.ArrivalTime {
				candidate, donor = head, d
			}
		}
		if donor == nil {
			continue
		}
		req := donor.queue.popHead()
		thief.AddRequest(req)
		rec := trace.StealRecord{
			RequestID: req.ID,
			Tick:      tick,
			From:      donor.Type,
			To:        thief.Type,
			IdleTicks: thief.IdleTicks,
		}
		thief.IdleTicks = 0
		records = append(records, rec)
		m.trace.RecordSteal(rec)
		logrus.Debugf("[tick %d] %s stole %s from %s", tick, thief.Type, req.ID, donor.Type)
	}
	return records
}
