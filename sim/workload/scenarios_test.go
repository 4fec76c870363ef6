package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/internal/testutil"
)

func TestScenarios_ValidateAndBuild(t *testing.T) {
	for _, name := range ScenarioNames() {
		t.Run(name, func(t *testing.T) {
			spec, err := Scenario(name, 42)
			require.NoError(t, err)
			require.NoError(t, spec.Validate())
			_, err = spec.Build()
			assert.NoError(t, err)
		})
	}
}

func TestScenarioReference_MatchesFixtures(t *testing.T) {
	w, err := ScenarioReference(0).Build()
	require.NoError(t, err)

	assert.Equal(t, testutil.ScenarioTasks(), w.Tasks)
	assert.Equal(t, testutil.ScenarioRequests(), w.Requests)
	assert.Equal(t, testutil.ScenarioReferences(), w.References)
}

func TestScenarioSkewedDevices_AllRequestsOnDisk(t *testing.T) {
	w, err := ScenarioSkewedDevices(1).Build()
	require.NoError(t, err)

	require.Len(t, w.Requests, 40)
	for _, r := range w.Requests {
		assert.Equal(t, "Disk", r.DeviceType)
	}
}

func TestScenario_Unknown_ReturnsError(t *testing.T) {
	_, err := Scenario("nope", 1)
	assert.Error(t, err)
}
