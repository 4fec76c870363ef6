// Package memory simulates a fixed-size page cache with hybrid LRU/MFU
// eviction and frequency-based prefetch.
package memory

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

// Config groups optional memory manager settings.
type Config struct {
	Trace *trace.SimulationTrace // optional decision trace (nil = off)
}

// Manager maintains the resident page set across a reference string.
//
// On a fault with no free frame, the victim is the least recently used
// resident page, unless the two most recent references were to the same
// page, in which case the most frequently used resident page is evicted.
// After every access beyond the first, the globally most frequent page is
// prefetched if it is absent and a frame is free. Prefetch never evicts, so
// it only ever fills frames freed by Invalidate or still unused.
type Manager struct {
	frames int

	resident   []int        // resident pages in admission order
	isResident map[int]bool // page -> resident
	history    []int        // every referenced page, in order
	lastAccess map[int]int  // page -> index of its latest history entry
	frequency  map[int]int  // page -> reference count
	firstSeen  []int        // pages in order of first reference
	timeline   [][]int      // resident snapshot after each access

	hits       int
	faults     int
	accesses   int
	evictions  int
	prefetches int

	trace *trace.SimulationTrace
}

// NewManager creates an empty cache with the given frame capacity.
func NewManager(frames int, cfg Config) (*Manager, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("memory manager: %d frames: %w", frames, sim.ErrInvalidCapacity)
	}
	return &Manager{
		frames:     frames,
		isResident: make(map[int]bool),
		lastAccess: make(map[int]int),
		frequency:  make(map[int]int),
		trace:      cfg.Trace,
	}, nil
}

// Reset empties the cache and clears its history and counters. Capacity and
// trace are kept. Slices returned before Reset are not modified.
func (m *Manager) Reset() {
	*m = Manager{
		frames:     m.frames,
		isResident: make(map[int]bool),
		lastAccess: make(map[int]int),
		frequency:  make(map[int]int),
		trace:      m.trace,
	}
}

// Frames returns the frame capacity.
func (m *Manager) Frames() int {
	return m.frames
}

// Access references page and reports whether it was a hit.
func (m *Manager) Access(page int) bool {
	m.accesses++
	step := len(m.history)

	hit := m.isResident[page]
	if hit {
		m.hits++
	} else {
		m.faults++
		if len(m.resident) >= m.frames {
			m.evict(step, page)
		}
		m.admit(page)
	}

	m.history = append(m.history, page)
	m.lastAccess[page] = step
	if m.frequency[page] == 0 {
		m.firstSeen = append(m.firstSeen, page)
	}
	m.frequency[page]++

	if len(m.history) > 1 {
		m.prefetch(step)
	}

	if len(m.resident) > m.frames {
		panic(fmt.Sprintf("memory manager: %d resident pages exceed %d frames", len(m.resident), m.frames))
	}
	m.timeline = append(m.timeline, append([]int(nil), m.resident...))
	logrus.Debugf("[step %d] page %d hit=%v resident=%v", step+1, page, hit, m.resident)
	return hit
}

// Invalidate drops page from the resident set, freeing its frame.
// Its history and frequency are kept. Reports whether the page was resident.
func (m *Manager) Invalidate(page int) bool {
	if !m.isResident[page] {
		return false
	}
	m.remove(page)
	logrus.Debugf("page %d invalidated", page)
	return true
}

// evict removes one resident page to make room for incoming.
func (m *Manager) evict(step, incoming int) {
	n := len(m.history)
	policy := trace.EvictLRU
	if n >= 2 && m.history[n-1] == m.history[n-2] {
		policy = trace.EvictMFU
	}

	var victim int
	if policy == trace.EvictMFU {
		victim = m.mostFrequentResident()
	} else {
		victim = m.leastRecentResident()
	}
	m.remove(victim)
	m.evictions++
	m.trace.RecordEviction(trace.EvictionRecord{Step: step + 1, Victim: victim, Incoming: incoming, Policy: policy})
	logrus.Debugf("[step %d] evict page %d (%s) for %d", step+1, victim, policy, incoming)
}

// leastRecentResident returns the resident page with the oldest latest reference.
func (m *Manager) leastRecentResident() int {
	victim := m.resident[0]
	for _, p := range m.resident[1:] {
		if m.lastAccess[p] < m.lastAccess[victim] {
			victim = p
		}
	}
	return victim
}

// mostFrequentResident returns the resident page with the highest reference
// count; ties go to the page admitted earliest.
func (m *Manager) mostFrequentResident() int {
	victim := m.resident[0]
	for _, p := range m.resident[1:] {
		if m.frequency[p] > m.frequency[victim] {
			victim = p
		}
	}
	return victim
}

// prefetch admits the globally most frequent page when it is absent and a frame is free.
func (m *Manager) prefetch(step int) {
	best := m.firstSeen[0]
	for _, p := range m.firstSeen[1:] {
		if m.frequency[p] > m.frequency[best] {
			best = p
		}
	}
	if m.isResident[best] || len(m.resident) >= m.frames {
		return
	}
	m.admit(best)
	m.prefetches++
	m.trace.RecordPrefetch(trace.PrefetchRecord{Step: step + 1, Page: best, Frequency: m.frequency[best]})
	logrus.Debugf("[step %d] prefetch page %d (freq %d)", step+1, best, m.frequency[best])
}

func (m *Manager) admit(page int) {
	m.resident = append(m.resident, page)
	m.isResident[page] = true
}

func (m *Manager) remove(page int) {
	for i, p := range m.resident {
		if p == page {
			m.resident = append(m.resident[:i], m.resident[i+1:]...)
			break
		}
	}
	delete(m.isResident, page)
}

// Resident returns a copy of the resident set in admission order.
func (m *Manager) Resident() []int {
	return append([]int(nil), m.resident...)
}

// Timeline returns the resident snapshot recorded after each access.
// Callers MUST NOT modify it.
func (m *Manager) Timeline() [][]int {
	return m.timeline
}

// History returns the reference history. Callers MUST NOT modify it.
func (m *Manager) History() []int {
	return m.history
}

// Frequency returns how many times page has been referenced.
func (m *Manager) Frequency(page int) int {
	return m.frequency[page]
}

// Metrics summarizes paging behavior.
type Metrics struct {
	PageFaults    int
	Hits          int
	Accesses      int
	Evictions     int
	Prefetches    int
	HitRatio      float64 // hits / (hits + faults); 0 with no accesses
	AvgAccessTime float64 // accesses / (hits + faults), one unit per reference; 0 with no accesses
}

// Metrics computes the current paging statistics.
func (m *Manager) Metrics() Metrics {
	total := float64(m.hits + m.faults)
	return Metrics{
		PageFaults:    m.faults,
		Hits:          m.hits,
		Accesses:      m.accesses,
		Evictions:     m.evictions,
		Prefetches:    m.prefetches,
		HitRatio:      sim.SafeRatio(float64(m.hits), total),
		AvgAccessTime: sim.SafeRatio(float64(m.accesses), total),
	}
}

// Result is returned by Simulate.
type Result struct {
	Metrics
	Timeline [][]int
	Resident []int
}

// Simulate runs a whole reference string through a fresh manager.
func Simulate(refs []int, frames int, cfg Config) (*Result, error) {
	m, err := NewManager(frames, cfg)
	if err != nil {
		return nil, err
	}
	for _, p := range refs {
		m.Access(p)
	}
	met := m.Metrics()
	logrus.Infof("Memory: %d references over %d frames, %d faults, hit ratio %.2f",
		met.Accesses, frames, met.PageFaults, met.HitRatio)
	return &Result{Metrics: met, Timeline: m.Timeline(), Resident: m.Resident()}, nil
}
