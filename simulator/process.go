package simulator

import (
	"encoding/json"
	"fmt"
	"math"
)

// IdlePID marks a timeline slice during which the CPU ran nothing
const IdlePID = 0

// Process is one simulated task. Arrival, burst and priority are inputs; the
// remaining fields are filled in by the scheduler that runs it.
type Process struct {
	PID         int  `json:"pid"`
	ArrivalTime int  `json:"arrivalTime"`
	BurstTime   int  `json:"burstTime"`
	Priority    *int `json:"priority,omitempty"` // Lower value runs first; nil = lowest priority

	RemainingTime  int `json:"remainingTime"` // Unexecuted burst, scratch for preemptive schedulers
	CompletionTime int `json:"completionTime"`
	TurnaroundTime int `json:"turnaroundTime"`
	WaitingTime    int `json:"waitingTime"`
}

// NewProcess creates a process record with no priority set
func NewProcess(pid, arrivalTime, burstTime int) Process {
	return Process{
		PID:         pid,
		ArrivalTime: arrivalTime,
		BurstTime:   burstTime,
	}
}

// WithPriority returns a copy of p carrying the given priority
func (p Process) WithPriority(priority int) Process {
	p.Priority = &priority
	return p
}

func (p Process) String() string {
	if p.Priority != nil {
		return fmt.Sprintf("P%d(arrival=%d, burst=%d, priority=%d)", p.PID, p.ArrivalTime, p.BurstTime, *p.Priority)
	}
	return fmt.Sprintf("P%d(arrival=%d, burst=%d)", p.PID, p.ArrivalTime, p.BurstTime)
}

// TimeSlice is one contiguous stretch of CPU time on the Gantt chart
type TimeSlice struct {
	PID   int `json:"pid"` // IdlePID when the CPU was idle
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// Duration returns the number of time units covered by the slice
func (ts TimeSlice) Duration() int { return ts.Stop - ts.Start }

// IsIdle returns true if nothing ran during the slice
func (ts TimeSlice) IsIdle() bool { return ts.PID == IdlePID }

// Result is the outcome of one scheduling run.
// Processes are listed in the order they completed. For an empty input both
// averages are NaN.
type Result struct {
	Algorithm             Algorithm   `json:"algorithm"`
	Quantum               int         `json:"quantum,omitempty"` // Round Robin only
	Processes             []Process   `json:"processes"`
	AverageWaitingTime    float64     `json:"averageWaitingTime"`
	AverageTurnaroundTime float64     `json:"averageTurnaroundTime"`
	Timeline              []TimeSlice `json:"timeline"`
}

// Process returns the record for pid, or false if the result does not contain it
func (r Result) Process(pid int) (Process, bool) {
	for _, p := range r.Processes {
		if p.PID == pid {
			return p, true
		}
	}
	return Process{}, false
}

// IsEmpty returns true if the run had no processes (averages are undefined)
func (r Result) IsEmpty() bool {
	return len(r.Processes) == 0
}

// MarshalJSON implements json.Marshaler for Result.
// NaN averages (empty input) are encoded as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type resultAlias Result
	return json.Marshal(struct {
		resultAlias
		AverageWaitingTime    *float64 `json:"averageWaitingTime"`
		AverageTurnaroundTime *float64 `json:"averageTurnaroundTime"`
	}{
		resultAlias:           resultAlias(r),
		AverageWaitingTime:    finiteOrNil(r.AverageWaitingTime),
		AverageTurnaroundTime: finiteOrNil(r.AverageTurnaroundTime),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// cloneProcesses returns a private working copy of the input so schedulers never
// touch caller records. Computed fields are reset and RemainingTime starts at BurstTime.
func cloneProcesses(processes []Process) []Process {
	procs := make([]Process, len(processes))
	for i, p := range processes {
		if p.Priority != nil {
			priority := *p.Priority
			p.Priority = &priority
		}
		p.RemainingTime = p.BurstTime
		p.CompletionTime = 0
		p.TurnaroundTime = 0
		p.WaitingTime = 0
		procs[i] = p
	}
	return procs
}
