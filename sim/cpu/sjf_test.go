package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/internal/testutil"
	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

func TestSJF_ReferenceWorkload_Timeline(t *testing.T) {
	// GIVEN P1(0,10), P2(2,5), P3(4,7)
	s, err := NewShortestJobFirst(testutil.ScenarioTasks(), DefaultConfig())
	require.NoError(t, err)

	// WHEN the simulation runs
	res := s.Run()

	// THEN P1 starts immediately (only task ready at t=0), then shortest first
	want := []sim.Interval{
		{ID: "P1", Start: 0, End: 10},
		{ID: "P2", Start: 10, End: 15},
		{ID: "P3", Start: 15, End: 22},
	}
	assert.Equal(t, want, res.Timeline)
	testutil.AssertFloat64Equal(t, "avg waiting", 19.0/3, res.AvgWaitingTime, 1e-9)
	testutil.AssertFloat64Equal(t, "avg turnaround", 41.0/3, res.AvgTurnaroundTime, 1e-9)
	assert.Equal(t, int64(11), res.MaxStarvation)
	assert.Equal(t, res.Waiting.Max, float64(res.MaxStarvation))
}

func TestSJF_NonPreemptive_OneIntervalPerTask(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		// GIVEN a random task set
		tasks := randomTasks(seed, 10)
		s, err := NewShortestJobFirst(tasks, DefaultConfig())
		require.NoError(t, err)

		// WHEN the simulation runs
		res := s.Run()

		// THEN each task appears exactly once with its whole burst
		seen := map[string]int{}
		for _, iv := range res.Timeline {
			seen[iv.ID]++
		}
		require.Len(t, seen, len(tasks))
		for _, task := range res.Tasks {
			assert.Equal(t, 1, seen[task.ID], "seed %d task %s", seed, task.ID)
			assert.Equal(t, task.TurnaroundTime-task.BurstTime, task.WaitingTime, "seed %d task %s", seed, task.ID)
		}
	}
}

func TestSJF_EqualBurst_LowerPriorityValueFirst(t *testing.T) {
	// GIVEN three tasks ready at t=0, two sharing a burst
	tasks := []*sim.Task{
		sim.NewTask("A", 0, 3, 5),
		sim.NewTask("B", 0, 3, 1),
		sim.NewTask("C", 0, 1, 9),
	}
	s, err := NewShortestJobFirst(tasks, DefaultConfig())
	require.NoError(t, err)

	// WHEN the simulation runs
	res := s.Run()

	// THEN the shortest burst runs first and the tie is broken by priority
	assert.Equal(t, []string{"C", "B", "A"}, testutil.IntervalIDs(res.Timeline))
}

func TestSJF_Aging_RaisesPriorityOfLongWaiters(t *testing.T) {
	// GIVEN a long head job, then two equal-burst jobs where X has waited far longer than Y
	st := trace.NewSimulationTrace(trace.TraceLevelDecisions)
	tasks := []*sim.Task{
		sim.NewTask("A", 0, 30, 0),
		sim.NewTask("S", 1, 2, 0),
		sim.NewTask("X", 1, 5, 1),
		sim.NewTask("Y", 19, 5, 2),
	}
	s, err := NewShortestJobFirst(tasks, Config{Trace: st})
	require.NoError(t, err)

	// WHEN the simulation runs
	res := s.Run()

	// THEN after S completes at t=32, X (wait 26) is aged from 1 to 3, which
	// drops it behind Y on the priority tie-break
	assert.Equal(t, []string{"A", "S", "Y", "X"}, testutil.IntervalIDs(res.Timeline))
	require.NotEmpty(t, st.Agings)
	assert.Equal(t, trace.AgingRecord{TaskID: "X", Clock: 32, WaitingTime: 26, OldPriority: 1, NewPriority: 3}, st.Agings[0])

	// AND the starvation bound is the largest waiting time
	assert.Equal(t, int64(36), res.MaxStarvation)
}

func TestSJF_Aging_NegativeWaitLowersPriority(t *testing.T) {
	// GIVEN two 50-unit jobs where C is admitted late, so its effective wait
	// (now - arrival - burst) is still far below zero when it is first aged
	st := trace.NewSimulationTrace(trace.TraceLevelDecisions)
	tasks := []*sim.Task{
		sim.NewTask("D", 0, 45, 0),
		sim.NewTask("B", 0, 50, 1),
		sim.NewTask("C", 44, 50, 2),
		sim.NewTask("E", 5, 1, 0),
	}
	s, err := NewShortestJobFirst(tasks, Config{Trace: st})
	require.NoError(t, err)

	// WHEN the simulation runs
	res := s.Run()

	// THEN at t=46 C is aged by floor(-48/10) = -5 to -3 while B only drops
	// to -1, so C overtakes B on the priority tie-break
	want := []sim.Interval{
		{ID: "D", Start: 0, End: 45},
		{ID: "E", Start: 45, End: 46},
		{ID: "C", Start: 46, End: 96},
		{ID: "B", Start: 96, End: 146},
	}
	assert.Equal(t, want, res.Timeline)

	var agedC []trace.AgingRecord
	for _, a := range st.Agings {
		if a.TaskID == "C" {
			agedC = append(agedC, a)
		}
	}
	require.NotEmpty(t, agedC)
	assert.Equal(t, trace.AgingRecord{TaskID: "C", Clock: 46, WaitingTime: -48, OldPriority: 2, NewPriority: -3}, agedC[0])

	// AND B's first adjustment at t=45 is the floored -5/10 = -1
	require.NotEmpty(t, st.Agings)
	assert.Equal(t, trace.AgingRecord{TaskID: "B", Clock: 45, WaitingTime: -5, OldPriority: 1, NewPriority: 0}, st.Agings[0])
}

func TestAgingBoost_FloorDivision(t *testing.T) {
	tests := []struct {
		wait, want int64
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{26, 2},
		{-1, -1},
		{-10, -1},
		{-45, -5},
		{-48, -5},
		{-50, -5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, agingBoost(tc.wait), "wait %d", tc.wait)
	}
}

func TestSJF_IdleUntilFirstArrival(t *testing.T) {
	// GIVEN a single task arriving at t=5
	s, err := NewShortestJobFirst([]*sim.Task{sim.NewTask("T", 5, 5, 0)}, DefaultConfig())
	require.NoError(t, err)

	// WHEN the simulation runs
	res := s.Run()

	// THEN the CPU idles 5 units first
	assert.Equal(t, int64(5), res.IdleTime)
	assert.Equal(t, []sim.Interval{{ID: "T", Start: 5, End: 10}}, res.Timeline)
	testutil.AssertFloat64Equal(t, "utilization", 50.0, res.Utilization, 1e-9)
}

func TestSJF_EmptyWorkload_ZeroMetrics(t *testing.T) {
	s, err := NewShortestJobFirst(nil, DefaultConfig())
	require.NoError(t, err)

	res := s.Run()

	assert.Empty(t, res.Timeline)
	assert.Equal(t, 0.0, res.AvgWaitingTime)
	assert.Equal(t, 0.0, res.AvgTurnaroundTime)
	assert.Equal(t, int64(0), res.MaxStarvation)
}

func TestNewSJF_InvalidBurst_Rejected(t *testing.T) {
	_, err := NewShortestJobFirst([]*sim.Task{sim.NewTask("T", 0, 0, 0)}, DefaultConfig())
	assert.True(t, errors.Is(err, sim.ErrInvalidTask), "got %v", err)
}

func TestSJF_Rerun_Identical(t *testing.T) {
	s, err := NewShortestJobFirst(randomTasks(3, 20), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, s.Run(), s.Run())
}
