package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every policy decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects decision records during one engine run.
// A nil *SimulationTrace is valid and records nothing.
type SimulationTrace struct {
	Level     TraceLevel
	Quanta    []QuantumRecord
	Agings    []AgingRecord
	Steals    []StealRecord
	Evictions []EvictionRecord
	Prefetch  []PrefetchRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone so engines pay nothing when tracing is off.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	if level == "" || level == TraceLevelNone {
		return nil
	}
	return &SimulationTrace{Level: level}
}

// RecordQuantum appends a quantum recomputation record.
func (st *SimulationTrace) RecordQuantum(r QuantumRecord) {
	if st == nil {
		return
	}
	st.Quanta = append(st.Quanta, r)
}

// RecordAging appends an aging record.
func (st *SimulationTrace) RecordAging(r AgingRecord) {
	if st == nil {
		return
	}
	st.Agings = append(st.Agings, r)
}

// RecordSteal appends a work-stealing record.
func (st *SimulationTrace) RecordSteal(r StealRecord) {
	if st == nil {
		return
	}
	st.Steals = append(st.Steals, r)
}

// RecordEviction appends an eviction record.
func (st *SimulationTrace) RecordEviction(r EvictionRecord) {
	if st == nil {
		return
	}
	st.Evictions = append(st.Evictions, r)
}

// RecordPrefetch appends a prefetch record.
func (st *SimulationTrace) RecordPrefetch(r PrefetchRecord) {
	if st == nil {
		return
	}
	st.Prefetch = append(st.Prefetch, r)
}
