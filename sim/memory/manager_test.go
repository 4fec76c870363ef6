package memory

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/internal/testutil"
	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

func TestSimulate_ReferenceString_MatchesManualTrace(t *testing.T) {
	// GIVEN [2,3,1,5,2,4,1,3,5,2] over 3 frames
	st := trace.NewSimulationTrace(trace.TraceLevelDecisions)

	// WHEN simulated
	res, err := Simulate(testutil.ScenarioReferences(), 3, Config{Trace: st})
	require.NoError(t, err)

	// THEN every reference faults: no consecutive repeats means LRU always
	// applies, and each re-reference arrives just after its page was evicted
	want := [][]int{
		{2}, {2, 3}, {2, 3, 1},
		{3, 1, 5}, {1, 5, 2}, {5, 2, 4}, {2, 4, 1},
		{4, 1, 3}, {1, 3, 5}, {3, 5, 2},
	}
	assert.Equal(t, want, res.Timeline)
	assert.Equal(t, 10, res.PageFaults)
	assert.Equal(t, 0, res.Hits)
	assert.Equal(t, 0.0, res.HitRatio)
	assert.Equal(t, 1.0, res.AvgAccessTime)
	assert.Equal(t, 7, res.Evictions)
	assert.Equal(t, 0, res.Prefetches)

	summary := trace.Summarize(st)
	assert.Equal(t, 7, summary.LRUEvictions)
	assert.Equal(t, 0, summary.MFUEvictions)
}

func TestAccess_RepeatedReference_SwitchesToMFU(t *testing.T) {
	// GIVEN a full cache whose last two references were both page 3
	m, err := NewManager(3, Config{})
	require.NoError(t, err)
	for _, p := range []int{1, 2, 3, 3} {
		m.Access(p)
	}

	// WHEN a new page faults
	hit := m.Access(4)

	// THEN the most frequently used page (3) is evicted instead of the LRU page (1)
	assert.False(t, hit)
	assert.Equal(t, []int{1, 2, 4}, m.Resident())
	met := m.Metrics()
	assert.Equal(t, 1, met.Hits)
	assert.Equal(t, 4, met.PageFaults)
}

func TestAccess_MFUTie_EvictsEarliestAdmitted(t *testing.T) {
	// GIVEN pages 1 and 2 each referenced twice in a 2-frame cache
	m, err := NewManager(2, Config{})
	require.NoError(t, err)
	for _, p := range []int{1, 1, 2, 2} {
		m.Access(p)
	}

	// WHEN page 3 faults right after a repeat
	m.Access(3)

	// THEN the frequency tie goes to the page admitted first
	assert.Equal(t, []int{2, 3}, m.Resident())
}

func TestAccess_NoRepeats_HitRatioZero(t *testing.T) {
	refs := make([]int, 20)
	for i := range refs {
		refs[i] = i
	}

	res, err := Simulate(refs, 4, Config{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.HitRatio)
	assert.Equal(t, 20, res.PageFaults)
}

func TestAccess_Prefetch_FillsFreedFrameWithHottestPage(t *testing.T) {
	// GIVEN a full cache where page 1 is the most referenced, then page 1 is invalidated
	st := trace.NewSimulationTrace(trace.TraceLevelDecisions)
	m, err := NewManager(3, Config{Trace: st})
	require.NoError(t, err)
	for _, p := range []int{1, 1, 2, 3} {
		m.Access(p)
	}
	require.True(t, m.Invalidate(1))
	require.Equal(t, []int{2, 3}, m.Resident())

	// WHEN a resident page is referenced
	hit := m.Access(2)

	// THEN the prefetcher brings page 1 back into the free frame without evicting
	assert.True(t, hit)
	assert.Equal(t, []int{2, 3, 1}, m.Resident())
	assert.Equal(t, 1, m.Metrics().Prefetches)
	assert.Equal(t, 0, m.Metrics().Evictions)
	assert.Equal(t, []trace.PrefetchRecord{{Step: 5, Page: 1, Frequency: 2}}, st.Prefetch)

	// AND the resident set is at, not over, capacity: prefetch only uses free frames
	assert.LessOrEqual(t, len(m.Resident()), m.Frames())
}

func TestInvalidate_NonResidentPage_ReturnsFalse(t *testing.T) {
	m, err := NewManager(2, Config{})
	require.NoError(t, err)
	m.Access(1)

	assert.False(t, m.Invalidate(7))
	assert.Equal(t, []int{1}, m.Resident())
}

func TestAccess_RandomReferences_Invariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		// GIVEN a random reference string with occasional invalidations
		rng := rand.New(rand.NewSource(seed))
		frames := 1 + rng.Intn(5)
		m, err := NewManager(frames, Config{})
		require.NoError(t, err)

		for i := 0; i < 200; i++ {
			if rng.Intn(10) == 0 {
				m.Invalidate(rng.Intn(8))
				continue
			}
			m.Access(rng.Intn(8))

			// THEN the resident set never exceeds capacity
			resident := m.Resident()
			require.LessOrEqual(t, len(resident), frames, "seed %d", seed)
			// AND every resident page has been referenced
			for _, p := range resident {
				require.Positive(t, m.Frequency(p), "seed %d page %d", seed, p)
			}
		}

		met := m.Metrics()
		assert.GreaterOrEqual(t, met.HitRatio, 0.0)
		assert.LessOrEqual(t, met.HitRatio, 1.0)
		assert.Equal(t, met.Accesses, met.Hits+met.PageFaults)
		assert.Len(t, m.Timeline(), met.Accesses)
	}
}

func TestSimulate_Rerun_Identical(t *testing.T) {
	refs := []int{1, 2, 1, 1, 3, 4, 5, 1, 2, 2, 6}
	first, err := Simulate(refs, 3, Config{})
	require.NoError(t, err)
	second, err := Simulate(refs, 3, Config{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReset_ClearsStateAndKeepsCapacity(t *testing.T) {
	// GIVEN a manager that has served a reference string
	m, err := NewManager(2, Config{})
	require.NoError(t, err)
	for _, p := range []int{1, 2, 1, 3} {
		m.Access(p)
	}
	before := m.Timeline()
	snapshot := append([][]int(nil), before...)

	// WHEN it is reset and replays the first reference
	m.Reset()

	// THEN it starts from an empty cache with the same capacity
	assert.Equal(t, 2, m.Frames())
	assert.Empty(t, m.Resident())
	assert.Empty(t, m.History())
	assert.Equal(t, 0, m.Frequency(1))
	assert.Equal(t, Metrics{}, m.Metrics())
	assert.False(t, m.Access(1))

	// AND the timeline handed out earlier is untouched
	assert.Equal(t, snapshot, before)
}

func TestSimulate_EmptyReferences_ZeroMetrics(t *testing.T) {
	res, err := Simulate(nil, 3, Config{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.HitRatio)
	assert.Equal(t, 0.0, res.AvgAccessTime)
	assert.Empty(t, res.Timeline)
}

func TestNewManager_InvalidCapacity(t *testing.T) {
	for _, frames := range []int{0, -3} {
		_, err := NewManager(frames, Config{})
		assert.True(t, errors.Is(err, sim.ErrInvalidCapacity), "frames=%d: got %v", frames, err)
	}
}
