package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim/cpu"
)

var quantum int64 // Initial Round Robin quantum

var rrCmd = &cobra.Command{
	Use:   "rr",
	Short: "Run the adaptive-quantum Round Robin scheduler",
	Run: func(cmd *cobra.Command, args []string) {
		spec, w := loadWorkload(cmd)
		st := newTrace()
		rr, err := cpu.NewRoundRobin(w.Tasks, cpu.Config{
			Quantum: pick(cmd.Flags().Changed("quantum"), quantum, spec.Quantum, cpu.DefaultQuantum),
			Trace:   st,
		})
		if err != nil {
			logrus.Fatalf("Round Robin: %v", err)
		}
		res := rr.Run()

		out := cmd.OutOrStdout()
		renderCPU(out, "ROUND ROBIN (ADAPTIVE QUANTUM)", res.Summary)
		renderQuantumHistory(out, res.QuantumHistory)
		renderTrace(out, st)
	},
}

var sjfCmd = &cobra.Command{
	Use:   "sjf",
	Short: "Run the non-preemptive Shortest-Job-First scheduler with aging",
	Run: func(cmd *cobra.Command, args []string) {
		_, w := loadWorkload(cmd)
		st := newTrace()
		s, err := cpu.NewShortestJobFirst(w.Tasks, cpu.Config{Trace: st})
		if err != nil {
			logrus.Fatalf("SJF: %v", err)
		}
		res := s.Run()

		out := cmd.OutOrStdout()
		renderCPU(out, "SHORTEST JOB FIRST (AGING)", res.Summary,
			"Max starvation: "+formatInt(res.MaxStarvation))
		renderTrace(out, st)
	},
}

func init() {
	rrCmd.Flags().Int64Var(&quantum, "quantum", cpu.DefaultQuantum, "Initial time quantum")

	rootCmd.AddCommand(rrCmd)
	rootCmd.AddCommand(sjfCmd)
}
