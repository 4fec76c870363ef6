package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	QuantumChanges int
	MinQuantum     int64
	MaxQuantum     int64
	AgingEvents    int
	MaxAgingBoost  int64
	TotalSteals    int
	StealsByThief  map[string]int // device type → requests stolen
	LRUEvictions   int
	MFUEvictions   int
	Prefetches     int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StealsByThief: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	for i, q := range st.Quanta {
		if q.Quantum != q.Previous {
			summary.QuantumChanges++
		}
		if i == 0 || q.Quantum < summary.MinQuantum {
			summary.MinQuantum = q.Quantum
		}
		if q.Quantum > summary.MaxQuantum {
			summary.MaxQuantum = q.Quantum
		}
	}

	summary.AgingEvents = len(st.Agings)
	for _, a := range st.Agings {
		if boost := a.NewPriority - a.OldPriority; boost > summary.MaxAgingBoost {
			summary.MaxAgingBoost = boost
		}
	}

	summary.TotalSteals = len(st.Steals)
	for _, s := range st.Steals {
		summary.StealsByThief[s.To]++
	}

	for _, e := range st.Evictions {
		switch e.Policy {
		case EvictLRU:
			summary.LRUEvictions++
		case EvictMFU:
			summary.MFUEvictions++
		}
	}
	summary.Prefetches = len(st.Prefetch)

	return summary
}
