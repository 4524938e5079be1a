package simulator

import "sort"

// PriorityScheduling runs processes non-preemptively by ascending priority value,
// breaking ties by earlier arrival and then input order. Processes without a
// priority run after every process that has one.
func PriorityScheduling(processes []Process) Result {
	return runPriority(processes, Options{})
}

func runPriority(processes []Process, opts Options) Result {
	r := newRunner(AlgorithmPriority, processes, opts)
	sort.SliceStable(r.procs, func(i, j int) bool {
		return priorityLess(r.procs[i], r.procs[j])
	})
	r.runInOrder()
	return r.result()
}

func priorityLess(a, b Process) bool {
	switch {
	case a.Priority == nil && b.Priority != nil:
		return false
	case a.Priority != nil && b.Priority == nil:
		return true
	case a.Priority != nil && *a.Priority != *b.Priority:
		return *a.Priority < *b.Priority
	}
	return a.ArrivalTime < b.ArrivalTime
}
