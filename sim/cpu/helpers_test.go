package cpu

import (
	"fmt"
	"math/rand"

	"github.com/schedsim/schedsim/sim"
)

// randomTasks builds a reproducible task set for property tests.
func randomTasks(seed int64, n int) []*sim.Task {
	rng := rand.New(rand.NewSource(seed))
	tasks := make([]*sim.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, sim.NewTask(
			fmt.Sprintf("T%d", i),
			int64(rng.Intn(40)),
			int64(1+rng.Intn(15)),
			int64(rng.Intn(5)),
		))
	}
	return tasks
}
