// Package report renders scheduling results as fixed-width terminal output:
// a title banner, a Gantt chart of the CPU timeline, and a per-process table.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/miretskiy/cpusched/simulator"
	"github.com/olekukonko/tablewriter"
)

// Title returns the heading for a result, including the quantum for Round Robin
func Title(r simulator.Result) string {
	if r.Algorithm == simulator.AlgorithmRoundRobin {
		return fmt.Sprintf("%s (Quantum = %d)", r.Algorithm.Title(), r.Quantum)
	}
	return r.Algorithm.Title()
}

// WriteResult writes the banner, Gantt chart, table and averages for one run
func WriteResult(w io.Writer, r simulator.Result) {
	WriteTitle(w, Title(r)+" SCHEDULING RESULTS")
	WriteGantt(w, r.Timeline)
	WriteTable(w, r)
	WriteAverages(w, r)
}

// WriteTitle writes a title between two rules
func WriteTitle(w io.Writer, title string) {
	rule := strings.Repeat("=", max(len(title), 40))
	_, _ = fmt.Fprintln(w, rule)
	_, _ = fmt.Fprintln(w, title)
	_, _ = fmt.Fprintln(w, rule)
}

// WriteGantt writes the timeline as a row of labelled cells followed by the
// start time of each cell and the final stop time
func WriteGantt(w io.Writer, timeline []simulator.TimeSlice) {
	_, _ = fmt.Fprintln(w, "Gantt chart")
	if len(timeline) == 0 {
		_, _ = fmt.Fprintf(w, "(empty)\n\n")
		return
	}

	var bar, ticks strings.Builder
	bar.WriteString("|")
	for _, slice := range timeline {
		label := sliceLabel(slice)
		width := max(len(label)+2, 6)
		left := (width - len(label)) / 2
		bar.WriteString(strings.Repeat(" ", left))
		bar.WriteString(label)
		bar.WriteString(strings.Repeat(" ", width-left-len(label)))
		bar.WriteString("|")

		start := strconv.Itoa(slice.Start)
		ticks.WriteString(start)
		ticks.WriteString(strings.Repeat(" ", max(width+1-len(start), 1)))
	}
	ticks.WriteString(strconv.Itoa(timeline[len(timeline)-1].Stop))

	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, ticks.String())
	_, _ = fmt.Fprintln(w)
}

func sliceLabel(slice simulator.TimeSlice) string {
	if slice.IsIdle() {
		return "idle"
	}
	return "P" + strconv.Itoa(slice.PID)
}

// WriteTable writes one row per process in completion order
func WriteTable(w io.Writer, r simulator.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Completion", "Turnaround", "Waiting"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, p := range r.Processes {
		table.Append([]string{
			strconv.Itoa(p.PID),
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.CompletionTime),
			strconv.Itoa(p.TurnaroundTime),
			strconv.Itoa(p.WaitingTime),
		})
	}
	table.Render()
}

// WriteAverages writes both averages with two decimal places
func WriteAverages(w io.Writer, r simulator.Result) {
	_, _ = fmt.Fprintf(w, "Average Waiting Time: %s\n", FormatAverage(r.AverageWaitingTime))
	_, _ = fmt.Fprintf(w, "Average Turnaround Time: %s\n", FormatAverage(r.AverageTurnaroundTime))
}

// WriteStats writes the supplementary CPU statistics
func WriteStats(w io.Writer, s simulator.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Makespan", "Busy", "Idle", "Utilization", "Throughput", "Avg Response", "Switches"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		strconv.Itoa(s.Makespan),
		strconv.Itoa(s.BusyTime),
		strconv.Itoa(s.IdleTime),
		fmt.Sprintf("%.0f%%", s.CPUUtilization*100),
		fmt.Sprintf("%.2f/t", s.Throughput),
		FormatAverage(s.AverageResponseTime),
		strconv.Itoa(s.ContextSwitches),
	})
	table.Render()
}

// FormatAverage formats an average with two decimals, or "n/a" when undefined
func FormatAverage(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
