// Package sim provides the shared workload records and result types for the
// schedsim engines.
//
// # Reading Guide
//
// Start with these files to understand the data model:
//   - task.go: Task lifecycle (pending → ready → completed) for CPU schedulers
//   - request.go: IORequest ordering key used by every device queue
//   - interval.go: timeline entries produced by every engine
//   - errors.go: the error kinds shared by all engines
//   - metrics.go: Distribution summaries and division-guarded ratios
//   - rng.go: PartitionedRNG, one seeded stream per generated workload section
//
// # Architecture
//
// The sim package holds passive records only; each engine lives in a
// sub-package and owns its own simulated clock:
//   - sim/cpu/: Round Robin with adaptive quantum, Shortest-Job-First with aging
//   - sim/device/: per-type I/O devices and the work-stealing I/O manager
//   - sim/memory/: hybrid LRU/MFU page replacement with frequency prefetch
//   - sim/unified/: orchestrator that drives I/O and memory over one workload
//   - sim/workload/: YAML workload files and seeded synthetic generation
//   - sim/trace/: decision trace recording (quantum, aging, steals, evictions)
//
// Engines never mutate the caller's workload. They copy records into an owning
// slice, queues hold indices into it, and final record state is returned in
// the engine result.
package sim
