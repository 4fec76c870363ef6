package device

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
)

// Device is one I/O resource with its own pending queue and timeline.
type Device struct {
	Type        string
	CurrentTime int64 // finish of the last processed request, or the device's wall clock when idle
	BusyTime    int64
	IdleTicks   int // consecutive ticks with an empty queue

	queue    requestQueue
	timeline []sim.Interval
	arrivals []int64 // arrival time of each timeline entry, same index
}

// NewDevice creates an empty device of the given type.
func NewDevice(deviceType string) *Device {
	return &Device{Type: deviceType}
}

// AddRequest enqueues a request in (arrival, duration) order.
func (d *Device) AddRequest(r *sim.IORequest) {
	d.queue.push(r)
}

// Pending returns the number of queued requests.
func (d *Device) Pending() int {
	return d.queue.Len()
}

// Timeline returns the completed intervals. Callers MUST NOT modify it.
func (d *Device) Timeline() []sim.Interval {
	return d.timeline
}

// Busy reports whether the device is still serving a request at tick now.
func (d *Device) Busy(now int64) bool {
	return d.CurrentTime > now
}

// ProcessNext pops the head request and schedules it at
// max(CurrentTime, arrival). Returns false if the queue is empty.
func (d *Device) ProcessNext() (sim.Interval, bool) {
	r := d.queue.popHead()
	if r == nil {
		return sim.Interval{}, false
	}
	start := max(d.CurrentTime, r.ArrivalTime)
	iv := sim.Interval{ID: r.ID, Start: start, End: start + r.Duration}
	if n := len(d.timeline); n > 0 && d.timeline[n-1].End > iv.Start {
		panic(fmt.Sprintf("Device %s: interval %v overlaps %v", d.Type, iv, d.timeline[n-1]))
	}
	d.timeline = append(d.timeline, iv)
	d.arrivals = append(d.arrivals, r.ArrivalTime)
	d.BusyTime += r.Duration
	d.CurrentTime = iv.End
	d.IdleTicks = 0
	logrus.Debugf("[%s] %s scheduled [%d,%d)", d.Type, r.ID, iv.Start, iv.End)
	return iv, true
}

// step advances the device by one tick: a busy device does nothing, a free
// device with work processes its head, otherwise the idle counter grows.
func (d *Device) step(now int64) {
	if d.Busy(now) {
		return
	}
	d.CurrentTime = max(d.CurrentTime, now)
	if _, ok := d.ProcessNext(); !ok {
		d.IdleTicks++
	}
}

// Metrics summarizes the device timeline.
type Metrics struct {
	Type              string
	Timeline          []sim.Interval
	Processed         int
	BusyTime          int64
	MaxFinish         int64
	AvgWaitingTime    float64 // mean(start - arrival)
	AvgTurnaroundTime float64 // mean(finish - arrival)
	Utilization       float64 // busy / max finish * 100
}

// Metrics computes per-device statistics. All averages are 0 for an empty timeline.
func (d *Device) Metrics() Metrics {
	m := Metrics{
		Type:      d.Type,
		Timeline:  d.timeline,
		Processed: len(d.timeline),
		BusyTime:  d.BusyTime,
	}
	var wait, turnaround int64
	for i, iv := range d.timeline {
		wait += iv.Start - d.arrivals[i]
		turnaround += iv.End - d.arrivals[i]
		m.MaxFinish = max(m.MaxFinish, iv.End)
	}
	n := float64(len(d.timeline))
	m.AvgWaitingTime = sim.SafeRatio(float64(wait), n)
	m.AvgTurnaroundTime = sim.SafeRatio(float64(turnaround), n)
	m.Utilization = sim.Percent(d.BusyTime, m.MaxFinish)
	return m
}
