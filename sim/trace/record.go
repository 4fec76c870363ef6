// Package trace provides decision-trace recording for scheduling-policy analysis.
// This package has no dependencies on sim/ or its engines; it stores pure data types.
package trace

// QuantumRecord captures a Round Robin quantum recomputation.
type QuantumRecord struct {
	Clock      int64
	Previous   int64
	Quantum    int64
	ReadyDepth int // tasks in the ready queue the mean was taken over
}

// AgingRecord captures one SJF aging adjustment of a queued task.
type AgingRecord struct {
	TaskID      string
	Clock       int64
	WaitingTime int64
	OldPriority int64
	NewPriority int64
}

// StealRecord captures a request migrated from a busy device to an idle one.
type StealRecord struct {
	RequestID string
	Tick      int64
	From      string
	To        string
	IdleTicks int // thief's idle counter when the steal fired
}

// EvictionPolicy names the victim-selection rule used for an eviction.
type EvictionPolicy string

const (
	EvictLRU EvictionPolicy = "lru"
	EvictMFU EvictionPolicy = "mfu"
)

// EvictionRecord captures a page evicted to admit a faulting page.
type EvictionRecord struct {
	Step     int
	Victim   int
	Incoming int
	Policy   EvictionPolicy
}

// PrefetchRecord captures a page admitted by the frequency prefetcher.
type PrefetchRecord struct {
	Step      int
	Page      int
	Frequency int
}
