package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim/memory"
)

const defaultFrames = 3

var frames int // Page frame capacity

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Run the hybrid LRU/MFU memory manager with prefetch",
	Run: func(cmd *cobra.Command, args []string) {
		spec, w := loadWorkload(cmd)
		st := newTrace()
		n := pick(cmd.Flags().Changed("frames"), frames, spec.Frames, defaultFrames)
		res, err := memory.Simulate(w.References, n, memory.Config{Trace: st})
		if err != nil {
			logrus.Fatalf("Memory manager: %v", err)
		}

		out := cmd.OutOrStdout()
		renderMemory(out, res.Metrics, res.Timeline)
		renderTrace(out, st)
	},
}

func init() {
	memoryCmd.Flags().IntVar(&frames, "frames", defaultFrames, "Number of page frames")
	rootCmd.AddCommand(memoryCmd)
}
