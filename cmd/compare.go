package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/cpu"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run Round Robin and SJF on the same tasks and compare them",
	Run: func(cmd *cobra.Command, args []string) {
		spec, w := loadWorkload(cmd)
		q := pick(cmd.Flags().Changed("quantum"), quantum, spec.Quantum, cpu.DefaultQuantum)
		rr, sjf, err := compareSchedulers(cmd.Context(), w.Tasks, q)
		if err != nil {
			logrus.Fatalf("Compare: %v", err)
		}
		renderComparison(cmd.OutOrStdout(), rr, sjf)
	},
}

// compareSchedulers runs both CPU schedulers concurrently. Each engine
// clones the task set, so the shared slice is only read.
func compareSchedulers(ctx context.Context, tasks []*sim.Task, q int64) (*cpu.RoundRobinResult, *cpu.SJFResult, error) {
	g, _ := errgroup.WithContext(ctx)

	var rrRes *cpu.RoundRobinResult
	var sjfRes *cpu.SJFResult
	g.Go(func() error {
		rr, err := cpu.NewRoundRobin(tasks, cpu.Config{Quantum: q})
		if err != nil {
			return fmt.Errorf("round robin: %w", err)
		}
		rrRes = rr.Run()
		return nil
	})
	g.Go(func() error {
		s, err := cpu.NewShortestJobFirst(tasks, cpu.DefaultConfig())
		if err != nil {
			return fmt.Errorf("sjf: %w", err)
		}
		sjfRes = s.Run()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rrRes, sjfRes, nil
}

func init() {
	compareCmd.Flags().Int64Var(&quantum, "quantum", cpu.DefaultQuantum, "Initial Round Robin time quantum")
	rootCmd.AddCommand(compareCmd)
}
