package simulator

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// completionsByPID maps pid -> completion time for compact assertions
func completionsByPID(r Result) map[int]int {
	out := make(map[int]int, len(r.Processes))
	for _, p := range r.Processes {
		out[p.PID] = p.CompletionTime
	}
	return out
}

func pidOrder(r Result) []int {
	pids := make([]int, len(r.Processes))
	for i, p := range r.Processes {
		pids[i] = p.PID
	}
	return pids
}

func TestFCFS_Scenario(t *testing.T) {
	processes := []Process{
		NewProcess(1, 0, 5),
		NewProcess(2, 1, 3),
		NewProcess(3, 2, 8),
	}

	result := FCFS(processes)

	require.Equal(t, AlgorithmFCFS, result.Algorithm)
	require.Equal(t, []int{1, 2, 3}, pidOrder(result))

	expected := []struct {
		completion, turnaround, waiting int
	}{
		{5, 5, 0},
		{8, 7, 4},
		{16, 14, 6},
	}
	for i, want := range expected {
		p := result.Processes[i]
		require.Equal(t, want.completion, p.CompletionTime, "P%d completion", p.PID)
		require.Equal(t, want.turnaround, p.TurnaroundTime, "P%d turnaround", p.PID)
		require.Equal(t, want.waiting, p.WaitingTime, "P%d waiting", p.PID)
	}
	require.Equal(t, 3.33, result.AverageWaitingTime)
	require.Equal(t, 8.67, result.AverageTurnaroundTime)
}

// Means landing exactly on a half cent round away from zero
func TestFCFS_HalfwayAveragesRoundUp(t *testing.T) {
	var processes []Process
	for i, arrival := range []int{0, 1, 2, 3, 4, 5, 6, 6} {
		processes = append(processes, NewProcess(i+1, arrival, 1))
	}

	result := FCFS(processes)

	// Only P8 waits, one unit: 1/8 and 9/8
	p8, ok := result.Process(8)
	require.True(t, ok)
	require.Equal(t, 1, p8.WaitingTime)
	require.Equal(t, 0.13, result.AverageWaitingTime)
	require.Equal(t, 1.13, result.AverageTurnaroundTime)
}

func TestRoundTo2(t *testing.T) {
	for in, want := range map[float64]float64{
		0.125:  0.13,
		1.125:  1.13,
		0.625:  0.63,
		-0.125: -0.13,
		3.3333: 3.33,
		8.6667: 8.67,
		4:      4,
	} {
		require.Equal(t, want, roundTo2(in), "%v", in)
	}
}

func TestFCFS_IdleGap(t *testing.T) {
	result := FCFS([]Process{
		NewProcess(1, 0, 2),
		NewProcess(2, 5, 3),
	})

	require.Equal(t, map[int]int{1: 2, 2: 8}, completionsByPID(result))
	require.Equal(t, []TimeSlice{
		{PID: 1, Start: 0, Stop: 2},
		{PID: IdlePID, Start: 2, Stop: 5},
		{PID: 2, Start: 5, Stop: 8},
	}, result.Timeline)
}

func TestFCFS_EqualArrivalsKeepInputOrder(t *testing.T) {
	result := FCFS([]Process{
		NewProcess(1, 0, 4),
		NewProcess(2, 0, 1),
		NewProcess(3, 0, 2),
	})
	require.Equal(t, []int{1, 2, 3}, pidOrder(result))
	require.Equal(t, map[int]int{1: 4, 2: 5, 3: 7}, completionsByPID(result))
}

func TestFCFS_ShuffledInputMatchesSorted(t *testing.T) {
	sorted := []Process{
		NewProcess(1, 0, 3),
		NewProcess(2, 2, 6),
		NewProcess(3, 4, 4),
		NewProcess(4, 6, 5),
		NewProcess(5, 8, 2),
	}
	shuffled := []Process{sorted[3], sorted[0], sorted[4], sorted[2], sorted[1]}

	a := FCFS(sorted)
	b := FCFS(shuffled)

	require.Equal(t, a.Processes, b.Processes)
	require.Equal(t, a.AverageWaitingTime, b.AverageWaitingTime)
	require.Equal(t, a.AverageTurnaroundTime, b.AverageTurnaroundTime)
}

func TestSJF_PicksShortestArrivedJob(t *testing.T) {
	result := SJF([]Process{
		NewProcess(1, 0, 7),
		NewProcess(2, 2, 4),
		NewProcess(3, 4, 1),
		NewProcess(4, 5, 4),
	})

	// P1 is alone at t=0 and is not preempted; P2 and P4 tie on burst, P2 is listed first
	require.Equal(t, []int{1, 3, 2, 4}, pidOrder(result))
	require.Equal(t, map[int]int{1: 7, 2: 12, 3: 8, 4: 16}, completionsByPID(result))
	require.Equal(t, 4.0, result.AverageWaitingTime)
	require.Equal(t, 8.0, result.AverageTurnaroundTime)
}

func TestSJF_TieGoesToLowerIndex(t *testing.T) {
	result := SJF([]Process{
		NewProcess(7, 0, 3),
		NewProcess(2, 0, 3),
	})
	require.Equal(t, []int{7, 2}, pidOrder(result))
}

func TestSJF_IdlesUntilFirstArrival(t *testing.T) {
	result := SJF([]Process{NewProcess(1, 3, 2)})

	p := result.Processes[0]
	require.Equal(t, 5, p.CompletionTime)
	require.Equal(t, 0, p.WaitingTime)
	require.Equal(t, []TimeSlice{
		{PID: IdlePID, Start: 0, Stop: 3},
		{PID: 1, Start: 3, Stop: 5},
	}, result.Timeline)
}

func TestSRT_PreemptsForShorterRemaining(t *testing.T) {
	result := SRT([]Process{
		NewProcess(1, 0, 8),
		NewProcess(2, 1, 4),
		NewProcess(3, 2, 9),
		NewProcess(4, 3, 5),
	})

	require.Equal(t, []int{2, 4, 1, 3}, pidOrder(result))
	require.Equal(t, map[int]int{1: 17, 2: 5, 3: 26, 4: 10}, completionsByPID(result))
	require.Equal(t, 6.5, result.AverageWaitingTime)
	require.Equal(t, 13.0, result.AverageTurnaroundTime)
	require.Equal(t, []TimeSlice{
		{PID: 1, Start: 0, Stop: 1},
		{PID: 2, Start: 1, Stop: 5},
		{PID: 4, Start: 5, Stop: 10},
		{PID: 1, Start: 10, Stop: 17},
		{PID: 3, Start: 17, Stop: 26},
	}, result.Timeline)

	for _, p := range result.Processes {
		require.Equal(t, 0, p.RemainingTime, "P%d should have no remaining time", p.PID)
	}
}

func TestSRT_TieGoesToLowerIndex(t *testing.T) {
	// At t=1 both have 3 units left; P1 is listed first and keeps the CPU
	result := SRT([]Process{
		NewProcess(1, 0, 4),
		NewProcess(2, 1, 3),
	})
	require.Equal(t, map[int]int{1: 4, 2: 7}, completionsByPID(result))
}

func TestSRT_WorkConservation(t *testing.T) {
	processes := []Process{
		NewProcess(1, 0, 6),
		NewProcess(2, 2, 2),
		NewProcess(3, 3, 7),
		NewProcess(4, 9, 1),
		NewProcess(5, 30, 3),
	}
	result := SRT(processes)

	totalBurst := 0
	for _, p := range processes {
		totalBurst += p.BurstTime
	}
	busy := 0
	for _, slice := range result.Timeline {
		if !slice.IsIdle() {
			busy += slice.Duration()
		}
	}
	require.Equal(t, totalBurst, busy)
}

func TestRoundRobin_Scenario(t *testing.T) {
	result := RoundRobin([]Process{
		NewProcess(1, 0, 4),
		NewProcess(2, 1, 3),
	}, 2)

	// P1 0-2, P2 2-4, P1 4-6 (done), P2 6-7 (done)
	require.Equal(t, 2, result.Quantum)
	require.Equal(t, []int{1, 2}, pidOrder(result))
	require.Equal(t, map[int]int{1: 6, 2: 7}, completionsByPID(result))
	require.Equal(t, []TimeSlice{
		{PID: 1, Start: 0, Stop: 2},
		{PID: 2, Start: 2, Stop: 4},
		{PID: 1, Start: 4, Stop: 6},
		{PID: 2, Start: 6, Stop: 7},
	}, result.Timeline)

	p1, _ := result.Process(1)
	p2, _ := result.Process(2)
	require.Equal(t, 2, p1.WaitingTime)
	require.Equal(t, 3, p2.WaitingTime)
	require.Equal(t, 2.5, result.AverageWaitingTime)
	require.Equal(t, 6.0, result.AverageTurnaroundTime)
}

func TestRoundRobin_ArrivalsQueueAheadOfPreempted(t *testing.T) {
	result := RoundRobin([]Process{
		NewProcess(1, 0, 5),
		NewProcess(2, 1, 2),
		NewProcess(3, 3, 2),
	}, 2)

	require.Equal(t, []int{2, 3, 1}, pidOrder(result))
	require.Equal(t, map[int]int{1: 9, 2: 4, 3: 8}, completionsByPID(result))
}

func TestRoundRobin_LargeQuantumDegeneratesToFCFS(t *testing.T) {
	processes := []Process{
		NewProcess(1, 0, 3),
		NewProcess(2, 0, 5),
		NewProcess(3, 0, 2),
	}

	rr := RoundRobin(processes, 10)
	fcfs := FCFS(processes)

	require.Equal(t, pidOrder(fcfs), pidOrder(rr))
	require.Equal(t, completionsByPID(fcfs), completionsByPID(rr))
}

func TestRoundRobin_IdleGaps(t *testing.T) {
	t.Run("nothing arrives at zero", func(t *testing.T) {
		result := RoundRobin([]Process{NewProcess(1, 2, 3)}, 2)
		p := result.Processes[0]
		require.Equal(t, 5, p.CompletionTime)
		require.Equal(t, 0, p.WaitingTime)
		require.Equal(t, IdlePID, result.Timeline[0].PID)
	})

	t.Run("queue drains before next arrival", func(t *testing.T) {
		result := RoundRobin([]Process{
			NewProcess(1, 0, 1),
			NewProcess(2, 5, 2),
		}, 2)
		require.Equal(t, map[int]int{1: 1, 2: 7}, completionsByPID(result))
		require.Equal(t, []TimeSlice{
			{PID: 1, Start: 0, Stop: 1},
			{PID: IdlePID, Start: 1, Stop: 5},
			{PID: 2, Start: 5, Stop: 7},
		}, result.Timeline)
	})
}

func TestPriorityScheduling_Scenario(t *testing.T) {
	result := PriorityScheduling([]Process{
		NewProcess(1, 0, 5).WithPriority(2),
		NewProcess(2, 0, 3).WithPriority(1),
	})

	require.Equal(t, []int{2, 1}, pidOrder(result))
	require.Equal(t, map[int]int{1: 8, 2: 3}, completionsByPID(result))
}

func TestPriorityScheduling_TieBreaks(t *testing.T) {
	t.Run("equal priority runs earlier arrival first", func(t *testing.T) {
		result := PriorityScheduling([]Process{
			NewProcess(1, 2, 3).WithPriority(1),
			NewProcess(2, 0, 2).WithPriority(1),
		})
		require.Equal(t, []int{2, 1}, pidOrder(result))
		require.Equal(t, map[int]int{1: 5, 2: 2}, completionsByPID(result))
	})

	t.Run("unset priority runs last", func(t *testing.T) {
		result := PriorityScheduling([]Process{
			NewProcess(1, 0, 4),
			NewProcess(2, 0, 2).WithPriority(5),
			NewProcess(3, 0, 1).WithPriority(0),
		})
		require.Equal(t, []int{3, 2, 1}, pidOrder(result))
	})

	t.Run("sorted order is kept across idle gaps", func(t *testing.T) {
		result := PriorityScheduling([]Process{
			NewProcess(1, 5, 2).WithPriority(1),
			NewProcess(2, 0, 3).WithPriority(2),
		})
		require.Equal(t, map[int]int{1: 7, 2: 10}, completionsByPID(result))
		p2, ok := result.Process(2)
		require.True(t, ok)
		require.Equal(t, 7, p2.WaitingTime)
	})
}

func TestAllAlgorithms_SingleProcess(t *testing.T) {
	for _, alg := range AllAlgorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			result, err := Run(alg, []Process{NewProcess(1, 0, 6).WithPriority(3)}, Options{Quantum: 4})
			require.NoError(t, err)
			require.Len(t, result.Processes, 1)

			p := result.Processes[0]
			require.Equal(t, 0, p.WaitingTime)
			require.Equal(t, p.BurstTime, p.TurnaroundTime)
			require.Equal(t, 0.0, result.AverageWaitingTime)
			require.Equal(t, 6.0, result.AverageTurnaroundTime)
		})
	}
}

func TestAllAlgorithms_EmptyInput(t *testing.T) {
	for _, alg := range AllAlgorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			result, err := Run(alg, nil, Options{Quantum: 2})
			require.NoError(t, err)
			require.True(t, result.IsEmpty())
			require.NotNil(t, result.Processes)
			require.True(t, math.IsNaN(result.AverageWaitingTime))
			require.True(t, math.IsNaN(result.AverageTurnaroundTime))

			data, err := json.Marshal(result)
			require.NoError(t, err)
			require.Contains(t, string(data), `"averageWaitingTime":null`)
			require.Contains(t, string(data), `"averageTurnaroundTime":null`)
		})
	}
}

func TestRun_MatchesEntryPoints(t *testing.T) {
	processes := []Process{
		NewProcess(1, 0, 5).WithPriority(3),
		NewProcess(2, 1, 3).WithPriority(1),
		NewProcess(3, 2, 8).WithPriority(2),
		NewProcess(4, 3, 6).WithPriority(1),
	}

	direct := map[Algorithm]Result{
		AlgorithmFCFS:       FCFS(processes),
		AlgorithmSJF:        SJF(processes),
		AlgorithmSRT:        SRT(processes),
		AlgorithmRoundRobin: RoundRobin(processes, 3),
		AlgorithmPriority:   PriorityScheduling(processes),
	}
	for alg, want := range direct {
		got, err := Run(alg, processes, Options{Quantum: 3})
		require.NoError(t, err)
		require.Equal(t, want, got, "Run(%s) should match its entry point", alg)
	}

	_, err := Run(Algorithm(42), processes, Options{})
	require.Error(t, err)
}

func TestRun_LogEvent(t *testing.T) {
	var messages []string
	opts := Options{
		Quantum:  2,
		LogEvent: func(msg string) { messages = append(messages, msg) },
	}

	_, err := Run(AlgorithmRoundRobin, []Process{
		NewProcess(1, 0, 4),
		NewProcess(2, 1, 3),
	}, opts)
	require.NoError(t, err)

	completed := 0
	for _, msg := range messages {
		require.Contains(t, msg, "[rr t=")
		if strings.Contains(msg, "completed") {
			completed++
		}
	}
	require.Equal(t, 2, completed)
}
