package workload

import (
	"fmt"

	"github.com/schedsim/schedsim/sim"
)

// Generator produces synthetic tasks, I/O requests and reference strings.
// Deterministic given the same spec and seed; each section draws from its
// own RNG partition.
type Generator struct {
	spec SyntheticSpec
	rng  *sim.PartitionedRNG
}

// NewGenerator fills in defaults for omitted parameters.
func NewGenerator(spec SyntheticSpec, seed int64) *Generator {
	return &Generator{
		spec: spec.withDefaults(),
		rng:  sim.NewPartitionedRNG(sim.NewSimulationKey(seed)),
	}
}

// Tasks generates spec.Tasks tasks in arrival order. IDs count up from
// T<offset+1>, skipping any ID in taken.
func (g *Generator) Tasks(offset int, taken map[string]bool) []*sim.Task {
	rng := g.rng.ForSubsystem(sim.SubsystemTasks)
	arrivals := NewArrivalSampler(g.spec.Arrival)
	tasks := make([]*sim.Task, 0, g.spec.Tasks)
	ids := newIDSequence("T", offset, taken)
	var now int64
	for i := 0; i < g.spec.Tasks; i++ {
		if i > 0 {
			now += arrivals.SampleIAT(rng)
		}
		tasks = append(tasks, sim.NewTask(
			ids.next(),
			now,
			sampleRange(rng, g.spec.Burst),
			rng.Int63n(g.spec.Priorities),
		))
	}
	return tasks
}

// Requests generates spec.IORequests requests spread uniformly over
// spec.Devices. IDs count up from R<offset+1>, skipping any ID in taken.
func (g *Generator) Requests(offset int, taken map[string]bool) []*sim.IORequest {
	rng := g.rng.ForSubsystem(sim.SubsystemIO)
	arrivals := NewArrivalSampler(g.spec.Arrival)
	reqs := make([]*sim.IORequest, 0, g.spec.IORequests)
	ids := newIDSequence("R", offset, taken)
	var now int64
	for i := 0; i < g.spec.IORequests; i++ {
		if i > 0 {
			now += arrivals.SampleIAT(rng)
		}
		reqs = append(reqs, sim.NewIORequest(
			ids.next(),
			g.spec.Devices[rng.Intn(len(g.spec.Devices))],
			now,
			sampleRange(rng, g.spec.Duration),
		))
	}
	return reqs
}

// References generates a reference string over pages [1, spec.Pages]. With
// probability spec.Locality a reference repeats the previous page.
func (g *Generator) References() []int {
	rng := g.rng.ForSubsystem(sim.SubsystemReferences)
	refs := make([]int, 0, g.spec.References)
	for i := 0; i < g.spec.References; i++ {
		if i > 0 && rng.Float64() < g.spec.Locality {
			refs = append(refs, refs[i-1])
			continue
		}
		refs = append(refs, 1+rng.Intn(g.spec.Pages))
	}
	return refs
}

// idSequence hands out <prefix><n> IDs in increasing n, never repeating an
// ID already taken.
type idSequence struct {
	prefix string
	n      int
	taken  map[string]bool
}

func newIDSequence(prefix string, offset int, taken map[string]bool) *idSequence {
	return &idSequence{prefix: prefix, n: offset, taken: taken}
}

func (s *idSequence) next() string {
	for {
		s.n++
		id := fmt.Sprintf("%s%d", s.prefix, s.n)
		if !s.taken[id] {
			return id
		}
	}
}
