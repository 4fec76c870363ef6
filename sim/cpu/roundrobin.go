package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

// RoundRobin time-slices tasks with a quantum recomputed after every dispatch
// as the floor of the mean remaining time in the ready queue (minimum 1).
type RoundRobin struct {
	workload []*sim.Task
	quantum  int64
	trace    *trace.SimulationTrace
}

// NewRoundRobin validates the workload and returns a scheduler over a private copy of it.
func NewRoundRobin(tasks []*sim.Task, cfg Config) (*RoundRobin, error) {
	if err := sim.ValidateTasks(tasks); err != nil {
		return nil, fmt.Errorf("round robin: %w", err)
	}
	q, err := cfg.quantum()
	if err != nil {
		return nil, fmt.Errorf("round robin: %w", err)
	}
	return &RoundRobin{workload: sim.CloneTasks(tasks), quantum: q, trace: cfg.Trace}, nil
}

// rrRun is the mutable state of one Round Robin simulation.
type rrRun struct {
	tasks    []*sim.Task
	arrivals *arrivalQueue
	ready    *readyQueue
	clock    int64
	quantum  int64
	busy     int64
	idle     int64
	timeline []sim.Interval
	quanta   []int64
	trace    *trace.SimulationTrace
}

// Run simulates the workload to completion. Each call starts from the
// initial task state, so repeated runs return identical results.
func (rr *RoundRobin) Run() *RoundRobinResult {
	tasks := sim.CloneTasks(rr.workload)
	run := &rrRun{
		tasks:    tasks,
		arrivals: newArrivalQueue(tasks),
		ready:    &readyQueue{tasks: tasks},
		quantum:  rr.quantum,
		trace:    rr.trace,
	}
	for run.arrivals.Len() > 0 || run.ready.Len() > 0 {
		run.admit()
		if run.ready.Len() == 0 {
			run.idle++
			run.clock++
			continue
		}
		run.dispatch()
		run.adjustQuantum()
	}

	res := &RoundRobinResult{
		Summary:        summarize(tasks, run.timeline, run.clock, run.busy, run.idle),
		QuantumHistory: run.quanta,
	}
	logrus.Infof("Round Robin finished %d tasks at t=%d (busy=%d idle=%d)", len(tasks), run.clock, run.busy, run.idle)
	return res
}

// admit moves every arrived task into the ready queue. Time spent between
// arrival and admission counts as waiting time.
func (run *rrRun) admit() {
	for {
		i, ok := run.arrivals.popArrived(run.clock)
		if !ok {
			return
		}
		t := run.tasks[i]
		t.WaitingTime += run.clock - t.ArrivalTime
		t.State = sim.TaskReady
		run.ready.Enqueue(i)
		logrus.Debugf("[t=%d] admit %s (ready=%s)", run.clock, t.ID, run.ready)
	}
}

// dispatch runs the ready head for one slice and re-enqueues it if unfinished.
func (run *rrRun) dispatch() {
	i := run.ready.Dequeue()
	t := run.tasks[i]
	slice := min(t.RemainingTime, run.quantum)

	run.timeline = append(run.timeline, sim.Interval{ID: t.ID, Start: run.clock, End: run.clock + slice})
	run.clock += slice
	run.busy += slice
	t.Execute(slice)

	for _, j := range run.ready.Items() {
		run.tasks[j].WaitingTime += slice
	}

	if t.RemainingTime > 0 {
		run.ready.Enqueue(i)
	} else {
		t.Complete(run.clock)
		logrus.Debugf("[t=%d] %s completed, turnaround=%d", run.clock, t.ID, t.TurnaroundTime)
	}
}

// adjustQuantum recomputes the quantum from the ready queue composition.
// An empty ready queue leaves the quantum unchanged.
func (run *rrRun) adjustQuantum() {
	prev := run.quantum
	if run.ready.Len() > 0 {
		run.quantum = max(1, run.ready.MeanRemaining())
		run.trace.RecordQuantum(trace.QuantumRecord{
			Clock:      run.clock,
			Previous:   prev,
			Quantum:    run.quantum,
			ReadyDepth: run.ready.Len(),
		})
	}
	run.quanta = append(run.quanta, run.quantum)
}
