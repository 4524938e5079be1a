package simulator

import (
	"container/heap"
	"sort"
)

// ArrivalQueue holds processes that have not been admitted to a ready queue yet,
// ordered by arrival time and then input index
type ArrivalQueue struct {
	arrivals arrivalHeap
}

// NewArrivalQueue creates a queue containing every index of procs
func NewArrivalQueue(procs []Process) *ArrivalQueue {
	aq := &ArrivalQueue{
		arrivals: make(arrivalHeap, 0, len(procs)),
	}
	for i, p := range procs {
		aq.arrivals = append(aq.arrivals, arrival{index: i, time: p.ArrivalTime})
	}
	heap.Init(&aq.arrivals)
	return aq
}

// PopArrived removes every process that has arrived by clock and returns their
// indices in input order
func (aq *ArrivalQueue) PopArrived(clock int) []int {
	var indices []int
	for !aq.IsEmpty() && aq.arrivals[0].time <= clock {
		indices = append(indices, heap.Pop(&aq.arrivals).(arrival).index)
	}
	sort.Ints(indices)
	return indices
}

// NextArrival returns the earliest pending arrival time, or false if the queue is empty
func (aq *ArrivalQueue) NextArrival() (int, bool) {
	if aq.IsEmpty() {
		return 0, false
	}
	return aq.arrivals[0].time, true
}

// IsEmpty returns true if the queue is empty
func (aq *ArrivalQueue) IsEmpty() bool {
	return aq.arrivals.Len() == 0
}

// Len returns the number of pending processes
func (aq *ArrivalQueue) Len() int {
	return aq.arrivals.Len()
}

type arrival struct {
	index int
	time  int
}

// arrivalHeap implements heap.Interface for arrival
type arrivalHeap []arrival

func (h arrivalHeap) Len() int { return len(h) }
func (h arrivalHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].index < h[j].index
}
func (h arrivalHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *arrivalHeap) Push(x interface{}) {
	*h = append(*h, x.(arrival))
}

func (h *arrivalHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
