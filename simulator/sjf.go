package simulator

// SJF schedules the shortest burst among arrived processes, non-preemptively.
// Equal bursts go to the process listed first in the input.
func SJF(processes []Process) Result {
	return runSJF(processes, Options{})
}

func runSJF(processes []Process, opts Options) Result {
	r := newRunner(AlgorithmSJF, processes, opts)
	for !r.allDone() {
		idx := r.pickMin(func(p *Process) int { return p.BurstTime })
		if idx == -1 {
			r.idleUntil(r.clock + 1)
			continue
		}
		r.execute(idx, r.procs[idx].RemainingTime)
		r.complete(idx)
	}
	return r.result()
}
