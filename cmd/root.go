package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

var (
	// CLI flags shared by every command
	seed         int64  // Seed for synthetic workload generation
	logLevel     string // Log verbosity level
	workloadPath string // YAML workload file
	scenarioName string // Built-in scenario used when no workload file is given
	traceLevel   string // Decision trace level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Simulator for CPU scheduling, I/O device management and paging",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, decisions)", traceLevel)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadWorkload resolves the workload file, or the named scenario when no
// file is given, and materializes it. --seed overrides the file's seed only
// when set explicitly.
func loadWorkload(cmd *cobra.Command) (*workload.Spec, *workload.Workload) {
	spec, err := resolveSpec(workloadPath, scenarioName, seed)
	if err != nil {
		logrus.Fatalf("Failed to load workload: %v", err)
	}
	if cmd.Flags().Changed("seed") {
		spec.Seed = seed
	}
	w, err := spec.Build()
	if err != nil {
		logrus.Fatalf("Invalid workload: %v", err)
	}
	logrus.Infof("Workload: %d tasks, %d io requests, %d page references",
		len(w.Tasks), len(w.Requests), len(w.References))
	return spec, w
}

func resolveSpec(path, scenario string, seed int64) (*workload.Spec, error) {
	if path != "" {
		return workload.LoadSpec(path)
	}
	return workload.Scenario(scenario, seed)
}

// pick returns the flag value when the user set it, else the file value when
// present, else def.
func pick[T comparable](changed bool, flagVal, fileVal, def T) T {
	var zero T
	switch {
	case changed:
		return flagVal
	case fileVal != zero:
		return fileVal
	default:
		return def
	}
}

func newTrace() *trace.SimulationTrace {
	return trace.NewSimulationTrace(trace.TraceLevel(traceLevel))
}

// init sets up persistent flags; subcommands register themselves in their own files
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for synthetic workload generation")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&workloadPath, "workload", "", "Path to a YAML workload file")
	rootCmd.PersistentFlags().StringVar(&scenarioName, "scenario", "reference", "Built-in scenario when --workload is not set (reference, skewed-devices, long-jobs, random)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
}
