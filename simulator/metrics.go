package simulator

// Stats summarizes CPU usage over one scheduling run
type Stats struct {
	Makespan            int     `json:"makespan"`            // Time at which the last process completed
	BusyTime            int     `json:"busyTime"`            // Units spent executing processes
	IdleTime            int     `json:"idleTime"`            // Units the CPU sat idle before the makespan
	CPUUtilization      float64 `json:"cpuUtilization"`      // BusyTime / Makespan (0-1)
	Throughput          float64 `json:"throughput"`          // Completed processes per time unit
	AverageResponseTime float64 `json:"averageResponseTime"` // Mean of first dispatch - arrival
	ContextSwitches     int     `json:"contextSwitches"`     // Switches between two different processes
}

// ComputeStats derives utilization, throughput and response metrics from a result.
// An empty result yields zero-valued stats.
func ComputeStats(r Result) Stats {
	var stats Stats
	if r.IsEmpty() {
		return stats
	}

	firstRun := make(map[int]int, len(r.Processes))
	lastPID := IdlePID
	for _, slice := range r.Timeline {
		if slice.Stop > stats.Makespan {
			stats.Makespan = slice.Stop
		}
		if slice.IsIdle() {
			stats.IdleTime += slice.Duration()
			continue
		}
		stats.BusyTime += slice.Duration()
		if _, seen := firstRun[slice.PID]; !seen {
			firstRun[slice.PID] = slice.Start
		}
		if lastPID != IdlePID && lastPID != slice.PID {
			stats.ContextSwitches++
		}
		lastPID = slice.PID
	}

	var responseSum int
	for _, p := range r.Processes {
		responseSum += firstRun[p.PID] - p.ArrivalTime
	}
	stats.AverageResponseTime = roundTo2(float64(responseSum) / float64(len(r.Processes)))

	if stats.Makespan > 0 {
		stats.CPUUtilization = roundTo2(float64(stats.BusyTime) / float64(stats.Makespan))
		stats.Throughput = float64(len(r.Processes)) / float64(stats.Makespan)
	}
	return stats
}
