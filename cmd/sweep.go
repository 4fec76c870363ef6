package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/cpu"
	"github.com/schedsim/schedsim/sim/memory"
)

var (
	sweepFrom    int64 // First sweep point
	sweepTo      int64 // Last sweep point (inclusive)
	sweepWorkers int   // Concurrent runs
)

// FramePoint is one memory sweep result.
type FramePoint struct {
	Frames  int
	Metrics memory.Metrics
}

// QuantumPoint is one Round Robin sweep result.
type QuantumPoint struct {
	Quantum int64
	Summary cpu.Summary
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one engine over a range of parameter values",
}

var sweepFramesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Memory manager hit ratio over a range of frame capacities",
	Run: func(cmd *cobra.Command, args []string) {
		_, w := loadWorkload(cmd)
		points := sweepRange(cmd)
		bar := newProgressBar(cmd.ErrOrStderr(), len(points), "Sweeping frames")
		caps := make([]int, len(points))
		for i, p := range points {
			caps[i] = int(p)
		}
		results, err := sweepFrames(cmd.Context(), w.References, caps, sweepWorkers, func() { _ = bar.Add(1) })
		if err != nil {
			logrus.Fatalf("Sweep: %v", err)
		}
		renderFrameSweep(cmd.OutOrStdout(), results)
	},
}

var sweepQuantumCmd = &cobra.Command{
	Use:   "quantum",
	Short: "Round Robin waiting and turnaround over a range of initial quanta",
	Run: func(cmd *cobra.Command, args []string) {
		_, w := loadWorkload(cmd)
		points := sweepRange(cmd)
		bar := newProgressBar(cmd.ErrOrStderr(), len(points), "Sweeping quanta")
		results, err := sweepQuanta(cmd.Context(), w.Tasks, points, sweepWorkers, func() { _ = bar.Add(1) })
		if err != nil {
			logrus.Fatalf("Sweep: %v", err)
		}
		renderQuantumSweep(cmd.OutOrStdout(), results)
	},
}

func sweepRange(cmd *cobra.Command) []int64 {
	if sweepFrom < 1 || sweepTo < sweepFrom {
		logrus.Fatalf("Invalid sweep range [%d, %d]: need 1 <= from <= to", sweepFrom, sweepTo)
	}
	points := make([]int64, 0, sweepTo-sweepFrom+1)
	for v := sweepFrom; v <= sweepTo; v++ {
		points = append(points, v)
	}
	logrus.Debugf("%s sweep over %v", cmd.Name(), points)
	return points
}

func newProgressBar(w io.Writer, n int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// sweepFrames simulates refs once per capacity, at most workers at a time.
// Results keep the order of capacities.
func sweepFrames(ctx context.Context, refs []int, capacities []int, workers int, onDone func()) ([]FramePoint, error) {
	out := make([]FramePoint, len(capacities))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, n := range capacities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := memory.Simulate(refs, n, memory.Config{})
			if err != nil {
				return fmt.Errorf("frames %d: %w", n, err)
			}
			out[i] = FramePoint{Frames: n, Metrics: res.Metrics}
			onDone()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// sweepQuanta runs Round Robin once per initial quantum, at most workers at a time.
func sweepQuanta(ctx context.Context, tasks []*sim.Task, quanta []int64, workers int, onDone func()) ([]QuantumPoint, error) {
	out := make([]QuantumPoint, len(quanta))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, q := range quanta {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rr, err := cpu.NewRoundRobin(tasks, cpu.Config{Quantum: q})
			if err != nil {
				return fmt.Errorf("quantum %d: %w", q, err)
			}
			out[i] = QuantumPoint{Quantum: q, Summary: rr.Run().Summary}
			onDone()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func init() {
	sweepCmd.PersistentFlags().Int64Var(&sweepFrom, "from", 1, "First value of the swept parameter")
	sweepCmd.PersistentFlags().Int64Var(&sweepTo, "to", 8, "Last value of the swept parameter (inclusive)")
	sweepCmd.PersistentFlags().IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "Maximum concurrent runs")

	sweepCmd.AddCommand(sweepFramesCmd)
	sweepCmd.AddCommand(sweepQuantumCmd)
	rootCmd.AddCommand(sweepCmd)
}
