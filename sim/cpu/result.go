package cpu

import (
	"github.com/schedsim/schedsim/sim"
)

// DefaultQuantum is the initial Round Robin time slice.
const DefaultQuantum int64 = 5

// Summary is the result shape shared by both CPU schedulers.
type Summary struct {
	Timeline []sim.Interval // dispatches in execution order
	Tasks    []*sim.Task    // final task state, in input order

	TotalWaitingTime    int64
	TotalTurnaroundTime int64
	AvgWaitingTime      float64
	AvgTurnaroundTime   float64
	Waiting             sim.Distribution
	Turnaround          sim.Distribution

	BusyTime    int64
	IdleTime    int64
	Makespan    int64   // clock value when the last task completed
	Utilization float64 // busy / (busy + idle) * 100
}

// RoundRobinResult is returned by RoundRobin.Run.
type RoundRobinResult struct {
	Summary
	QuantumHistory []int64 // quantum in force after each dispatch
}

// SJFResult is returned by ShortestJobFirst.Run.
type SJFResult struct {
	Summary
	MaxStarvation int64 // largest waiting time of any task
}

func summarize(tasks []*sim.Task, timeline []sim.Interval, clock, busy, idle int64) Summary {
	s := Summary{
		Timeline: timeline,
		Tasks:    tasks,
		BusyTime: busy,
		IdleTime: idle,
		Makespan: clock,
	}
	waits := make([]int64, 0, len(tasks))
	turns := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		s.TotalWaitingTime += t.WaitingTime
		s.TotalTurnaroundTime += t.TurnaroundTime
		waits = append(waits, t.WaitingTime)
		turns = append(turns, t.TurnaroundTime)
	}
	n := float64(len(tasks))
	s.AvgWaitingTime = sim.SafeRatio(float64(s.TotalWaitingTime), n)
	s.AvgTurnaroundTime = sim.SafeRatio(float64(s.TotalTurnaroundTime), n)
	s.Waiting = sim.NewDistribution(sim.Int64s(waits))
	s.Turnaround = sim.NewDistribution(sim.Int64s(turns))
	s.Utilization = sim.Percent(busy, busy+idle)
	return s
}
