package simulator

// RoundRobin time-slices the CPU with the given quantum over a FIFO ready queue.
// Processes that arrive during a slice are queued, in input order, ahead of the
// process whose slice just expired. quantum must be positive.
func RoundRobin(processes []Process, quantum int) Result {
	return runRoundRobin(processes, Options{Quantum: quantum})
}

func runRoundRobin(processes []Process, opts Options) Result {
	r := newRunner(AlgorithmRoundRobin, processes, opts)

	quantum := r.quantum
	if quantum < 1 {
		// Non-positive quanta are rejected by callers; 1 keeps the loop finite.
		quantum = 1
	}

	pending := NewArrivalQueue(r.procs)
	queue := pending.PopArrived(r.clock)
	for !r.allDone() {
		if len(queue) == 0 {
			// Nothing ready: jump to the next arrival
			next, _ := pending.NextArrival()
			r.idleUntil(next)
			queue = append(queue, pending.PopArrived(r.clock)...)
			continue
		}

		idx := queue[0]
		queue = queue[1:]

		r.execute(idx, min(quantum, r.procs[idx].RemainingTime))
		queue = append(queue, pending.PopArrived(r.clock)...)

		if r.procs[idx].RemainingTime == 0 {
			r.complete(idx)
		} else {
			queue = append(queue, idx)
		}
	}
	return r.result()
}
