package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible synthetic workload.
// Two generations with the same key and identical parameters
// MUST produce identical tasks, requests and reference strings.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RNG subsystems, one per generated workload section.
const (
	// SubsystemTasks drives CPU task generation and uses the master seed directly.
	SubsystemTasks = "tasks"
	// SubsystemIO drives I/O request generation.
	SubsystemIO = "io"
	// SubsystemReferences drives page reference generation.
	SubsystemReferences = "references"
)

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem,
// so changing the size of one workload section leaves the others unchanged.
//
// Derivation formula:
//   - For SubsystemTasks: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key)
	if name != SubsystemTasks {
		derivedSeed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
