// Defines the Task struct that models a unit of CPU work in the simulation.
// Tracks arrival, burst, remaining work, priority and the waiting/turnaround outcome.

package sim

import (
	"fmt"
)

// TaskState represents the lifecycle state of a task.
type TaskState string

const (
	TaskPending   TaskState = "pending"
	TaskReady     TaskState = "ready"
	TaskCompleted TaskState = "completed"
)

// Task models a single schedulable unit of CPU work.
type Task struct {
	ID          string // Unique identifier for the task
	ArrivalTime int64  // Time unit at which the task becomes schedulable
	BurstTime   int64  // Total CPU time required

	RemainingTime  int64     // CPU time still owed; non-increasing, exactly 0 at completion
	Priority       int64     // Lower value wins ties; raised by SJF aging
	WaitingTime    int64     // Accumulated time spent arrived but not running
	TurnaroundTime int64     // completion - arrival, set exactly once
	State          TaskState // pending, ready, completed
}

// NewTask creates a Task in the pending state with its full burst remaining.
func NewTask(id string, arrival, burst, priority int64) *Task {
	return &Task{
		ID:            id,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		RemainingTime: burst,
		Priority:      priority,
		State:         TaskPending,
	}
}

// Execute consumes d units of remaining work. Panics if d would drive the
// remaining time negative.
func (t *Task) Execute(d int64) {
	if d <= 0 || d > t.RemainingTime {
		panic(fmt.Sprintf("Task %s: execute %d with %d remaining", t.ID, d, t.RemainingTime))
	}
	t.RemainingTime -= d
}

// Complete records the turnaround time. Panics if called twice or with work left.
func (t *Task) Complete(now int64) {
	if t.State == TaskCompleted {
		panic(fmt.Sprintf("Task %s: completed twice", t.ID))
	}
	if t.RemainingTime != 0 {
		panic(fmt.Sprintf("Task %s: completed with %d remaining", t.ID, t.RemainingTime))
	}
	t.TurnaroundTime = now - t.ArrivalTime
	t.State = TaskCompleted
}

// Clone returns an independent copy with its progress reset to the initial state.
func (t *Task) Clone() *Task {
	return NewTask(t.ID, t.ArrivalTime, t.BurstTime, t.Priority)
}

func (t Task) String() string {
	return fmt.Sprintf("Task: (ID: %s, Arrival: %d, Burst: %d, Remaining: %d, Priority: %d)",
		t.ID, t.ArrivalTime, t.BurstTime, t.RemainingTime, t.Priority)
}

// ValidateTasks rejects nil entries, negative arrivals, non-positive bursts and duplicate IDs.
func ValidateTasks(tasks []*Task) error {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t == nil {
			return fmt.Errorf("task[%d] is nil: %w", i, ErrInvalidTask)
		}
		if t.ArrivalTime < 0 {
			return fmt.Errorf("task %q: arrival time must be non-negative, got %d: %w", t.ID, t.ArrivalTime, ErrInvalidTask)
		}
		if t.BurstTime <= 0 {
			return fmt.Errorf("task %q: burst time must be positive, got %d: %w", t.ID, t.BurstTime, ErrInvalidTask)
		}
		if seen[t.ID] {
			return fmt.Errorf("task %q: %w", t.ID, ErrDuplicateIdentifier)
		}
		seen[t.ID] = true
	}
	return nil
}

// CloneTasks copies a workload so an engine can own and mutate it.
func CloneTasks(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
