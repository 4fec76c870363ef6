package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_SameSeed_Identical(t *testing.T) {
	spec := SyntheticSpec{Tasks: 15, IORequests: 15, References: 40, Locality: 0.25}

	a := NewGenerator(spec, 42)
	b := NewGenerator(spec, 42)

	assert.Equal(t, a.Tasks(0, nil), b.Tasks(0, nil))
	assert.Equal(t, a.Requests(0, nil), b.Requests(0, nil))
	assert.Equal(t, a.References(), b.References())
}

func TestGenerator_DifferentSeed_Differs(t *testing.T) {
	spec := SyntheticSpec{References: 50}

	assert.NotEqual(t, NewGenerator(spec, 1).References(), NewGenerator(spec, 2).References())
}

func TestGenerator_SectionsAreIsolated(t *testing.T) {
	// GIVEN two specs that differ only in the number of tasks
	small := SyntheticSpec{Tasks: 2, References: 30}
	large := SyntheticSpec{Tasks: 50, References: 30}

	// WHEN both generate tasks before references
	gs := NewGenerator(small, 9)
	gl := NewGenerator(large, 9)
	gs.Tasks(0, nil)
	gl.Tasks(0, nil)

	// THEN the reference strings are unaffected
	assert.Equal(t, gs.References(), gl.References())
}

func TestGenerator_Tasks_RespectRangesAndOrder(t *testing.T) {
	spec := SyntheticSpec{Tasks: 100, Burst: RangeSpec{Min: 3, Max: 7}, Priorities: 2}

	tasks := NewGenerator(spec, 5).Tasks(10, nil)

	require.Len(t, tasks, 100)
	assert.Equal(t, "T11", tasks[0].ID)
	assert.Equal(t, int64(0), tasks[0].ArrivalTime)
	for i, task := range tasks {
		assert.GreaterOrEqual(t, task.BurstTime, int64(3))
		assert.LessOrEqual(t, task.BurstTime, int64(7))
		assert.Equal(t, task.BurstTime, task.RemainingTime)
		assert.GreaterOrEqual(t, task.Priority, int64(0))
		assert.Less(t, task.Priority, int64(2))
		if i > 0 {
			assert.GreaterOrEqual(t, task.ArrivalTime, tasks[i-1].ArrivalTime)
		}
	}
}

func TestGenerator_SkipsTakenIDs(t *testing.T) {
	// GIVEN IDs already used by explicit entries
	spec := SyntheticSpec{Tasks: 3, IORequests: 2}
	g := NewGenerator(spec, 4)

	// WHEN tasks and requests are generated after one explicit entry each
	tasks := g.Tasks(1, map[string]bool{"T2": true, "T3": true})
	reqs := g.Requests(1, map[string]bool{"R2": true})

	// THEN numbering continues past every taken ID
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	assert.Equal(t, []string{"T4", "T5", "T6"}, ids)
	assert.Equal(t, "R3", reqs[0].ID)
	assert.Equal(t, "R4", reqs[1].ID)
}

func TestGenerator_Requests_UseConfiguredDevices(t *testing.T) {
	spec := SyntheticSpec{IORequests: 60, Devices: []string{"Disk", "Tape"}}

	reqs := NewGenerator(spec, 3).Requests(0, nil)

	seen := map[string]bool{}
	for _, r := range reqs {
		seen[r.DeviceType] = true
		assert.GreaterOrEqual(t, r.Duration, defaultDuration.Min)
		assert.LessOrEqual(t, r.Duration, defaultDuration.Max)
	}
	assert.Equal(t, map[string]bool{"Disk": true, "Tape": true}, seen)
	assert.Equal(t, "R60", reqs[59].ID)
}

func TestGenerator_ConstantArrivals_EvenlySpaced(t *testing.T) {
	spec := SyntheticSpec{Tasks: 5, Arrival: ArrivalSpec{Process: "constant", Rate: 0.25}}

	tasks := NewGenerator(spec, 1).Tasks(0, nil)

	for i, task := range tasks {
		assert.Equal(t, int64(4*i), task.ArrivalTime)
	}
}

func TestGenerator_References_LocalityOne_RepeatsFirstPage(t *testing.T) {
	refs := NewGenerator(SyntheticSpec{References: 20, Locality: 1, Pages: 5}, 8).References()

	require.Len(t, refs, 20)
	for _, p := range refs {
		assert.Equal(t, refs[0], p)
	}
	assert.GreaterOrEqual(t, refs[0], 1)
	assert.LessOrEqual(t, refs[0], 5)
}
