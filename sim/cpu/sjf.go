package cpu

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

// agingDivisor converts effective waiting time into a priority increment.
const agingDivisor = 10

// agingBoost is floor(wait / agingDivisor). A task that has not yet waited
// longer than its own burst gets a negative boost.
func agingBoost(wait int64) int64 {
	boost := wait / agingDivisor
	if wait%agingDivisor != 0 && wait < 0 {
		boost--
	}
	return boost
}

// ShortestJobFirst runs the shortest admitted job to completion
// (non-preemptive) and ages every queued task after each completion.
// Warning: burst length dominates the ordering, so aging only reorders jobs
// of equal burst.
type ShortestJobFirst struct {
	workload []*sim.Task
	trace    *trace.SimulationTrace
}

// NewShortestJobFirst validates the workload and returns a scheduler over a private copy of it.
func NewShortestJobFirst(tasks []*sim.Task, cfg Config) (*ShortestJobFirst, error) {
	if err := sim.ValidateTasks(tasks); err != nil {
		return nil, fmt.Errorf("sjf: %w", err)
	}
	return &ShortestJobFirst{workload: sim.CloneTasks(tasks), trace: cfg.Trace}, nil
}

// Run simulates the workload to completion.
func (s *ShortestJobFirst) Run() *SJFResult {
	tasks := sim.CloneTasks(s.workload)

	// arrival order; stable so equal arrivals keep input order
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tasks[order[a]].ArrivalTime < tasks[order[b]].ArrivalTime
	})

	ready := &burstQueue{tasks: tasks}
	var (
		clock, busy, idle int64
		maxStarvation     int64
		timeline          []sim.Interval
		next              int
	)
	for next < len(order) || ready.Len() > 0 {
		for next < len(order) && tasks[order[next]].ArrivalTime <= clock {
			tasks[order[next]].State = sim.TaskReady
			heap.Push(ready, order[next])
			next++
		}
		if ready.Len() == 0 {
			clock++
			idle++
			continue
		}

		t := tasks[heap.Pop(ready).(int)]
		start := clock
		timeline = append(timeline, sim.Interval{ID: t.ID, Start: start, End: start + t.BurstTime})
		clock += t.BurstTime
		busy += t.BurstTime
		t.Execute(t.RemainingTime)
		t.WaitingTime = start - t.ArrivalTime
		t.Complete(clock)
		maxStarvation = max(maxStarvation, t.WaitingTime)
		logrus.Debugf("[t=%d] %s ran [%d,%d), waited %d", clock, t.ID, start, clock, t.WaitingTime)

		s.age(ready, clock)
	}

	logrus.Infof("SJF finished %d tasks at t=%d, max starvation=%d", len(tasks), clock, maxStarvation)
	return &SJFResult{
		Summary:       summarize(tasks, timeline, clock, busy, idle),
		MaxStarvation: maxStarvation,
	}
}

// age adds agingBoost(now - arrival - burst) to the priority value of every
// queued task, then rebuilds the heap.
func (s *ShortestJobFirst) age(ready *burstQueue, now int64) {
	for _, i := range ready.idx {
		t := ready.tasks[i]
		wait := now - t.ArrivalTime - t.BurstTime
		boost := agingBoost(wait)
		if boost == 0 {
			continue
		}
		old := t.Priority
		t.Priority += boost
		s.trace.RecordAging(trace.AgingRecord{
			TaskID:      t.ID,
			Clock:       now,
			WaitingTime: wait,
			OldPriority: old,
			NewPriority: t.Priority,
		})
	}
	ready.Reheap()
}
