package simulator

import "math"

// finalize derives turnaround and waiting time from an assigned completion time
func finalize(p *Process) {
	p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstTime
}

// averages returns mean waiting and turnaround time rounded to 2 decimals.
// Both are NaN when there are no processes.
func averages(processes []Process) (avgWaiting, avgTurnaround float64) {
	if len(processes) == 0 {
		return math.NaN(), math.NaN()
	}

	var waitingSum, turnaroundSum int
	for _, p := range processes {
		waitingSum += p.WaitingTime
		turnaroundSum += p.TurnaroundTime
	}

	count := float64(len(processes))
	avgWaiting = roundTo2(float64(waitingSum) / count)
	avgTurnaround = roundTo2(float64(turnaroundSum) / count)
	return
}

// roundTo2 rounds half away from zero to two decimal places
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
