package simulator

// SRT is preemptive SJF: every time unit the arrived process with the least
// remaining time runs. Equal remaining times go to the process listed first.
func SRT(processes []Process) Result {
	return runSRT(processes, Options{})
}

func runSRT(processes []Process, opts Options) Result {
	r := newRunner(AlgorithmSRT, processes, opts)
	for !r.allDone() {
		idx := r.pickMin(func(p *Process) int { return p.RemainingTime })
		if idx == -1 {
			r.idleUntil(r.clock + 1)
			continue
		}
		r.execute(idx, 1)
		if r.procs[idx].RemainingTime == 0 {
			r.complete(idx)
		}
	}
	return r.result()
}
