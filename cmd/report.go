package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/cpu"
	"github.com/schedsim/schedsim/sim/device"
	"github.com/schedsim/schedsim/sim/memory"
	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/unified"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "═══════════════════════════════════════════════════════════")
	_, _ = bold.Fprintln(w, title)
	_, _ = bold.Fprintln(w, "═══════════════════════════════════════════════════════════")
	for _, desc := range descriptions {
		_, _ = fmt.Fprintln(w, desc)
	}
	_, _ = fmt.Fprintln(w)
}

func render(t *tablewriter.Table, name string) {
	if err := t.Render(); err != nil {
		logrus.Warnf("rendering %s table: %v", name, err)
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(v float64) string {
	return formatFloat(v) + "%"
}

func formatPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderTimeline(w io.Writer, timeline []sim.Interval) {
	t := tablewriter.NewWriter(w)
	t.Header("#", "ID", "Start", "End", "Duration")
	for i, iv := range timeline {
		_ = t.Append(strconv.Itoa(i+1), iv.ID, formatInt(iv.Start), formatInt(iv.End), formatInt(iv.Duration()))
	}
	render(t, "timeline")
}

// renderCPU prints the dispatch timeline, the per-task outcome and the summary
// statistics of a CPU scheduler run.
func renderCPU(w io.Writer, title string, s cpu.Summary, extra ...string) {
	printSectionHeader(w, title, "Execution timeline (start, end, task)")
	renderTimeline(w, s.Timeline)

	_, _ = fmt.Fprintln(w)
	tasks := tablewriter.NewWriter(w)
	tasks.Header("Task", "Arrival", "Burst", "Priority", "Waiting", "Turnaround")
	for _, task := range s.Tasks {
		_ = tasks.Append(task.ID, formatInt(task.ArrivalTime), formatInt(task.BurstTime),
			formatInt(task.Priority), formatInt(task.WaitingTime), formatInt(task.TurnaroundTime))
	}
	render(tasks, "task")

	_, _ = fmt.Fprintln(w)
	stats := tablewriter.NewWriter(w)
	stats.Header("Metric", "Total", "Mean", "P50", "P95", "Max")
	_ = stats.Append("Waiting", formatInt(s.TotalWaitingTime), formatFloat(s.AvgWaitingTime),
		formatFloat(s.Waiting.P50), formatFloat(s.Waiting.P95), formatFloat(s.Waiting.Max))
	_ = stats.Append("Turnaround", formatInt(s.TotalTurnaroundTime), formatFloat(s.AvgTurnaroundTime),
		formatFloat(s.Turnaround.P50), formatFloat(s.Turnaround.P95), formatFloat(s.Turnaround.Max))
	render(stats, "cpu stats")

	_, _ = fmt.Fprintf(w, "CPU utilization: %s (busy %d, idle %d, makespan %d)\n",
		formatPercent(s.Utilization), s.BusyTime, s.IdleTime, s.Makespan)
	for _, line := range extra {
		_, _ = fmt.Fprintln(w, line)
	}
}

func renderQuantumHistory(w io.Writer, history []int64) {
	parts := make([]string, len(history))
	for i, q := range history {
		parts[i] = formatInt(q)
	}
	_, _ = fmt.Fprintf(w, "Quantum after each dispatch: [%s]\n", strings.Join(parts, ", "))
}

func renderIO(w io.Writer, res *device.Result) {
	printSectionHeader(w, "I/O DEVICE MANAGER",
		fmt.Sprintf("%d requests drained in %d ticks, %d steals", res.Processed(), res.Ticks, len(res.Steals)))
	for _, d := range res.Devices {
		_, _ = bold.Fprintf(w, "%s\n", d.Type)
		renderTimeline(w, d.Timeline)
	}

	_, _ = fmt.Fprintln(w)
	t := tablewriter.NewWriter(w)
	t.Header("Device", "Processed", "Busy", "Avg Waiting", "Avg Turnaround", "Utilization")
	for _, d := range res.Devices {
		_ = t.Append(d.Type, strconv.Itoa(d.Processed), formatInt(d.BusyTime),
			formatFloat(d.AvgWaitingTime), formatFloat(d.AvgTurnaroundTime), formatPercent(d.Utilization))
	}
	render(t, "device")

	for _, s := range res.Steals {
		_, _ = yellow.Fprintf(w, "tick %d: %s stole %s from %s after %d idle ticks\n",
			s.Tick, s.To, s.RequestID, s.From, s.IdleTicks)
	}
}

func renderMemory(w io.Writer, m memory.Metrics, timeline [][]int) {
	printSectionHeader(w, "MEMORY MANAGER (HYBRID LRU/MFU + PREFETCH)", "Resident set after each reference")
	t := tablewriter.NewWriter(w)
	t.Header("Step", "Resident")
	for i, snap := range timeline {
		_ = t.Append(strconv.Itoa(i+1), formatPages(snap))
	}
	render(t, "memory timeline")
	renderMemoryMetrics(w, m)
}

func renderMemoryMetrics(w io.Writer, m memory.Metrics) {
	_, _ = fmt.Fprintln(w)
	t := tablewriter.NewWriter(w)
	t.Header("Accesses", "Hits", "Page Faults", "Evictions", "Prefetches", "Hit Ratio", "Avg Access Time")
	_ = t.Append(strconv.Itoa(m.Accesses), strconv.Itoa(m.Hits), strconv.Itoa(m.PageFaults),
		strconv.Itoa(m.Evictions), strconv.Itoa(m.Prefetches), formatFloat(m.HitRatio), formatFloat(m.AvgAccessTime))
	render(t, "memory metrics")
}

func renderUnified(w io.Writer, res *unified.Result) {
	printSectionHeader(w, "UNIFIED SUBSYSTEM", "Page references in I/O completion order")
	t := tablewriter.NewWriter(w)
	t.Header("Step", "Request", "Device", "Completed", "Page", "Hit", "Resident")
	for i, a := range res.Accesses {
		hit := "fault"
		if a.Hit {
			hit = "hit"
		}
		_ = t.Append(strconv.Itoa(i+1), a.Interval.ID, a.Device, formatInt(a.Interval.End),
			strconv.Itoa(a.Page), hit, formatPages(res.MemoryTimeline[i]))
	}
	render(t, "unified")

	_, _ = fmt.Fprintf(w, "Total throughput: %d requests\n", res.Throughput)
	_, _ = fmt.Fprintf(w, "Average response time: %s\n", formatFloat(res.AvgResponseTime))
	_, _ = fmt.Fprintf(w, "Overall resource utilization: %s\n", formatPercent(res.OverallUtilization))
	renderMemoryMetrics(w, res.Memory)
}

func renderComparison(w io.Writer, rr *cpu.RoundRobinResult, sjf *cpu.SJFResult) {
	printSectionHeader(w, "CPU SCHEDULER COMPARISON", "Same task set, lower waiting and turnaround is better")
	t := tablewriter.NewWriter(w)
	t.Header("Scheduler", "Dispatches", "Avg Waiting", "P95 Waiting", "Avg Turnaround", "Max Waiting", "Utilization")
	row := func(name string, s cpu.Summary) {
		_ = t.Append(name, strconv.Itoa(len(s.Timeline)), formatFloat(s.AvgWaitingTime), formatFloat(s.Waiting.P95),
			formatFloat(s.AvgTurnaroundTime), formatFloat(s.Waiting.Max), formatPercent(s.Utilization))
	}
	row("Round Robin", rr.Summary)
	row("SJF", sjf.Summary)
	render(t, "comparison")

	switch {
	case rr.AvgWaitingTime < sjf.AvgWaitingTime:
		_, _ = green.Fprintln(w, "Round Robin has the lower average waiting time")
	case sjf.AvgWaitingTime < rr.AvgWaitingTime:
		_, _ = green.Fprintln(w, "SJF has the lower average waiting time")
	default:
		_, _ = green.Fprintln(w, "Both schedulers have the same average waiting time")
	}
}

func renderFrameSweep(w io.Writer, points []FramePoint) {
	printSectionHeader(w, "FRAME CAPACITY SWEEP")
	t := tablewriter.NewWriter(w)
	t.Header("Frames", "Hits", "Page Faults", "Evictions", "Prefetches", "Hit Ratio")
	for _, p := range points {
		_ = t.Append(strconv.Itoa(p.Frames), strconv.Itoa(p.Metrics.Hits), strconv.Itoa(p.Metrics.PageFaults),
			strconv.Itoa(p.Metrics.Evictions), strconv.Itoa(p.Metrics.Prefetches), formatFloat(p.Metrics.HitRatio))
	}
	render(t, "frame sweep")
}

func renderQuantumSweep(w io.Writer, points []QuantumPoint) {
	printSectionHeader(w, "ROUND ROBIN QUANTUM SWEEP")
	t := tablewriter.NewWriter(w)
	t.Header("Initial Quantum", "Dispatches", "Avg Waiting", "Avg Turnaround", "Utilization")
	for _, p := range points {
		_ = t.Append(formatInt(p.Quantum), strconv.Itoa(len(p.Summary.Timeline)), formatFloat(p.Summary.AvgWaitingTime),
			formatFloat(p.Summary.AvgTurnaroundTime), formatPercent(p.Summary.Utilization))
	}
	render(t, "quantum sweep")
}

// renderTrace prints the decision trace summary. Nothing is printed when tracing is off.
func renderTrace(w io.Writer, st *trace.SimulationTrace) {
	if st == nil {
		return
	}
	s := trace.Summarize(st)
	printSectionHeader(w, "DECISION TRACE")
	t := tablewriter.NewWriter(w)
	t.Header("Decision", "Count", "Detail")
	_ = t.Append("Quantum changes", strconv.Itoa(s.QuantumChanges),
		fmt.Sprintf("range [%d, %d]", s.MinQuantum, s.MaxQuantum))
	_ = t.Append("Aging adjustments", strconv.Itoa(s.AgingEvents),
		fmt.Sprintf("max boost %d", s.MaxAgingBoost))

	thieves := make([]string, 0, len(s.StealsByThief))
	for dev := range s.StealsByThief {
		thieves = append(thieves, dev)
	}
	sort.Strings(thieves)
	detail := make([]string, len(thieves))
	for i, dev := range thieves {
		detail[i] = fmt.Sprintf("%s=%d", dev, s.StealsByThief[dev])
	}
	_ = t.Append("Steals", strconv.Itoa(s.TotalSteals), strings.Join(detail, " "))
	_ = t.Append("Evictions", strconv.Itoa(s.LRUEvictions+s.MFUEvictions),
		fmt.Sprintf("LRU=%d MFU=%d", s.LRUEvictions, s.MFUEvictions))
	_ = t.Append("Prefetches", strconv.Itoa(s.Prefetches), "")
	render(t, "trace")
}
