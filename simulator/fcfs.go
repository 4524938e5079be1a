package simulator

import "sort"

// FCFS schedules processes first-come, first-served.
// Ties in arrival time keep their input order.
func FCFS(processes []Process) Result {
	return runFCFS(processes, Options{})
}

func runFCFS(processes []Process, opts Options) Result {
	r := newRunner(AlgorithmFCFS, processes, opts)
	sort.SliceStable(r.procs, func(i, j int) bool {
		return r.procs[i].ArrivalTime < r.procs[j].ArrivalTime
	})
	r.runInOrder()
	return r.result()
}
