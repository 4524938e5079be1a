package simulator

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Algorithm selects a scheduling discipline
type Algorithm int

const (
	AlgorithmFCFS       Algorithm = iota // First-come, first-served
	AlgorithmSJF                         // Shortest job first, non-preemptive
	AlgorithmSRT                         // Shortest remaining time, preemptive
	AlgorithmRoundRobin                  // Round robin with a fixed quantum
	AlgorithmPriority                    // Non-preemptive priority
)

// AllAlgorithms lists every algorithm in menu order
func AllAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmFCFS, AlgorithmSJF, AlgorithmSRT, AlgorithmRoundRobin, AlgorithmPriority}
}

// String returns the string representation of Algorithm
func (a Algorithm) String() string {
	switch a {
	case AlgorithmFCFS:
		return "fcfs"
	case AlgorithmSJF:
		return "sjf"
	case AlgorithmSRT:
		return "srt"
	case AlgorithmRoundRobin:
		return "rr"
	case AlgorithmPriority:
		return "priority"
	default:
		return "unknown"
	}
}

// Title returns the human readable name used in report headings
func (a Algorithm) Title() string {
	switch a {
	case AlgorithmFCFS:
		return "FCFS"
	case AlgorithmSJF:
		return "SJF (Non-Preemptive)"
	case AlgorithmSRT:
		return "SRT (Preemptive)"
	case AlgorithmRoundRobin:
		return "Round Robin"
	case AlgorithmPriority:
		return "Priority-Based"
	default:
		return "Unknown"
	}
}

// Preemptive returns true if a running process can be interrupted
func (a Algorithm) Preemptive() bool {
	return a == AlgorithmSRT || a == AlgorithmRoundRobin
}

// ParseAlgorithm parses a string into Algorithm
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo":
		return AlgorithmFCFS, nil
	case "sjf":
		return AlgorithmSJF, nil
	case "srt", "srtf":
		return AlgorithmSRT, nil
	case "rr", "round-robin", "roundrobin":
		return AlgorithmRoundRobin, nil
	case "priority":
		return AlgorithmPriority, nil
	default:
		return AlgorithmFCFS, fmt.Errorf("invalid algorithm: %s (must be one of fcfs, sjf, srt, rr, priority)", s)
	}
}

// MarshalJSON implements json.Marshaler for Algorithm
func (a Algorithm) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler for Algorithm
func (a *Algorithm) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAlgorithm(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Algorithm
func (a Algorithm) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Algorithm
func (a *Algorithm) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAlgorithm(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Options carries per-run parameters shared by every entry point
type Options struct {
	Quantum int // Round Robin time slice; must be > 0 for AlgorithmRoundRobin

	// Event logging callback (optional, for UI/debugging)
	LogEvent func(msg string)
}

// Run executes the selected algorithm over a private copy of processes
func Run(algorithm Algorithm, processes []Process, opts Options) (Result, error) {
	switch algorithm {
	case AlgorithmFCFS:
		return runFCFS(processes, opts), nil
	case AlgorithmSJF:
		return runSJF(processes, opts), nil
	case AlgorithmSRT:
		return runSRT(processes, opts), nil
	case AlgorithmRoundRobin:
		return runRoundRobin(processes, opts), nil
	case AlgorithmPriority:
		return runPriority(processes, opts), nil
	default:
		return Result{}, fmt.Errorf("unsupported algorithm: %d", int(algorithm))
	}
}

// runner holds the scratch state of a single simulation. It is created per call
// and never shared.
type runner struct {
	algorithm Algorithm
	quantum   int
	procs     []Process // Working copy, indexed in input order
	done      []bool
	completed int
	clock     int
	timeline  []TimeSlice
	finished  []Process // Completed records in completion order
	logEvent  func(msg string)
}

func newRunner(algorithm Algorithm, processes []Process, opts Options) *runner {
	procs := cloneProcesses(processes)
	return &runner{
		algorithm: algorithm,
		quantum:   opts.Quantum,
		procs:     procs,
		done:      make([]bool, len(procs)),
		timeline:  make([]TimeSlice, 0),
		finished:  make([]Process, 0, len(procs)),
		logEvent:  opts.LogEvent,
	}
}

func (r *runner) logf(format string, args ...interface{}) {
	if r.logEvent != nil {
		r.logEvent(fmt.Sprintf("[%s t=%d] ", r.algorithm, r.clock) + fmt.Sprintf(format, args...))
	}
}

// allDone returns true once every process has completed
func (r *runner) allDone() bool {
	return r.completed == len(r.procs)
}

// arrived returns true if process i is eligible to run at the current clock
func (r *runner) arrived(i int) bool {
	return !r.done[i] && r.procs[i].ArrivalTime <= r.clock
}

// idleUntil advances the clock to t, recording the gap as idle CPU time
func (r *runner) idleUntil(t int) {
	if t <= r.clock {
		return
	}
	r.record(IdlePID, r.clock, t)
	r.clock = t
}

// execute runs process i for the given number of units
func (r *runner) execute(i, units int) {
	p := &r.procs[i]
	r.logf("P%d runs for %d (remaining %d)", p.PID, units, p.RemainingTime-units)
	r.record(p.PID, r.clock, r.clock+units)
	r.clock += units
	p.RemainingTime -= units
}

// complete marks process i finished at the current clock
func (r *runner) complete(i int) {
	p := &r.procs[i]
	p.CompletionTime = r.clock
	finalize(p)
	r.done[i] = true
	r.completed++
	r.finished = append(r.finished, *p)
	r.logf("P%d completed (turnaround=%d, waiting=%d)", p.PID, p.TurnaroundTime, p.WaitingTime)
}

// record appends a slice to the timeline, merging it into the previous slice
// when the same PID continues without a gap
func (r *runner) record(pid, start, stop int) {
	if n := len(r.timeline); n > 0 {
		last := &r.timeline[n-1]
		if last.PID == pid && last.Stop == start {
			last.Stop = stop
			return
		}
	}
	r.timeline = append(r.timeline, TimeSlice{PID: pid, Start: start, Stop: stop})
}

// runInOrder executes procs back to back in slice order, jumping the clock over
// idle gaps. Used by the non-preemptive sorted schedulers.
func (r *runner) runInOrder() {
	for i := range r.procs {
		r.idleUntil(r.procs[i].ArrivalTime)
		r.execute(i, r.procs[i].RemainingTime)
		r.complete(i)
	}
}

// pickMin returns the index of the arrived, incomplete process with the smallest
// key, or -1 if none has arrived. The lowest index wins ties.
func (r *runner) pickMin(key func(p *Process) int) int {
	idx := -1
	for i := range r.procs {
		if !r.arrived(i) {
			continue
		}
		if idx == -1 || key(&r.procs[i]) < key(&r.procs[idx]) {
			idx = i
		}
	}
	return idx
}

func (r *runner) result() Result {
	res := Result{
		Algorithm: r.algorithm,
		Processes: r.finished,
		Timeline:  r.timeline,
	}
	if r.algorithm == AlgorithmRoundRobin {
		res.Quantum = r.quantum
	}
	res.AverageWaitingTime, res.AverageTurnaroundTime = averages(r.finished)
	return res
}
