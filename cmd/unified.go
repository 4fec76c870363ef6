package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim/unified"
)

var unifiedCmd = &cobra.Command{
	Use:   "unified",
	Short: "Run the I/O manager and feed each completion to the memory manager",
	Run: func(cmd *cobra.Command, args []string) {
		spec, w := loadWorkload(cmd)
		st := newTrace()
		n := pick(cmd.Flags().Changed("frames"), frames, spec.Frames, defaultFrames)
		o, err := unified.NewOrchestrator(w.Requests, n, unified.Config{
			Device: deviceConfig(cmd, spec.StealThreshold, spec.DeviceTypes),
			Trace:  st,
		})
		if err != nil {
			logrus.Fatalf("Orchestrator: %v", err)
		}
		res, err := o.Run()
		if err != nil {
			logrus.Fatalf("Orchestrator: %v", err)
		}

		out := cmd.OutOrStdout()
		renderIO(out, res.IO)
		renderUnified(out, res)
		renderTrace(out, st)
	},
}

func init() {
	addDeviceFlags(unifiedCmd)
	unifiedCmd.Flags().IntVar(&frames, "frames", defaultFrames, "Number of page frames")
	rootCmd.AddCommand(unifiedCmd)
}
