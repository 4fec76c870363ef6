package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim/device"
)

var (
	stealThreshold int      // Idle ticks before a device steals
	extraDevices   []string // Device types to create even without requests
	maxTicks       int64    // Hard tick cap for the I/O manager
)

// deviceConfig merges the I/O flags with the workload file.
func deviceConfig(cmd *cobra.Command, fileThreshold int, fileDevices []string) device.Config {
	return device.Config{
		StealThreshold: pick(cmd.Flags().Changed("steal-threshold"), stealThreshold, fileThreshold, device.DefaultStealThreshold),
		DeviceTypes:    append(append([]string(nil), fileDevices...), extraDevices...),
		MaxTicks:       maxTicks,
	}
}

var ioCmd = &cobra.Command{
	Use:   "io",
	Short: "Run the I/O device manager with work stealing",
	Run: func(cmd *cobra.Command, args []string) {
		spec, w := loadWorkload(cmd)
		st := newTrace()
		cfg := deviceConfig(cmd, spec.StealThreshold, spec.DeviceTypes)
		cfg.Trace = st
		m, err := device.NewManager(w.Requests, cfg)
		if err != nil {
			logrus.Fatalf("IO manager: %v", err)
		}
		res, err := m.Run()
		if err != nil {
			logrus.Fatalf("IO manager: %v", err)
		}

		out := cmd.OutOrStdout()
		renderIO(out, res)
		renderTrace(out, st)
	},
}

func addDeviceFlags(c *cobra.Command) {
	c.Flags().IntVar(&stealThreshold, "steal-threshold", device.DefaultStealThreshold, "Idle ticks a device must exceed before stealing")
	c.Flags().StringArrayVar(&extraDevices, "device", nil, "Device type to create even if no request targets it (can be repeated)")
	c.Flags().Int64Var(&maxTicks, "max-ticks", device.DefaultMaxTicks, "Abort the run after this many ticks")
}

func init() {
	addDeviceFlags(ioCmd)
	rootCmd.AddCommand(ioCmd)
}
