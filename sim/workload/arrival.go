package workload

import (
	"math"
	"math/rand"
)

var validArrivalProcesses = map[string]bool{
	"poisson": true, "constant": true,
}

// ArrivalSampler generates inter-arrival times in simulation time units.
type ArrivalSampler interface {
	// SampleIAT returns the gap to the next arrival. Zero means simultaneous arrival.
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1).
type PoissonSampler struct {
	rate float64 // arrivals per time unit
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() / s.rate)
}

// ConstantSampler spaces arrivals evenly.
type ConstantSampler struct {
	iat int64
}

func (s *ConstantSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.iat
}

// NewArrivalSampler creates a sampler for an already defaulted spec.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	if spec.Process == "constant" {
		return &ConstantSampler{iat: int64(math.Round(1 / spec.Rate))}
	}
	return &PoissonSampler{rate: spec.Rate}
}

// sampleRange draws uniformly from the inclusive range r.
func sampleRange(rng *rand.Rand, r RangeSpec) int64 {
	return r.Min + rng.Int63n(r.Max-r.Min+1)
}
