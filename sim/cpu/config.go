package cpu

import (
	"fmt"

	"github.com/schedsim/schedsim/sim/trace"
)

// Config groups the parameters shared by the CPU schedulers.
type Config struct {
	Quantum int64                  // initial Round Robin quantum (0 = DefaultQuantum)
	Trace   *trace.SimulationTrace // optional decision trace (nil = off)
}

// DefaultConfig returns the Config used when the caller sets nothing.
func DefaultConfig() Config {
	return Config{Quantum: DefaultQuantum}
}

func (c Config) quantum() (int64, error) {
	switch {
	case c.Quantum == 0:
		return DefaultQuantum, nil
	case c.Quantum < 0:
		return 0, fmt.Errorf("quantum must be positive, got %d", c.Quantum)
	default:
		return c.Quantum, nil
	}
}
