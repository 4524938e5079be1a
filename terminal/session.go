// Package terminal implements the step-driven input collector that feeds the
// scheduling engine. A Session is a finite-state machine: every input line is
// handled according to the current State and produces the lines to display.
package terminal

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/miretskiy/cpusched/report"
	"github.com/miretskiy/cpusched/simulator"
)

// State is the step the session is waiting on
type State int

const (
	StateIdle           State = iota // Waiting for a command
	StateAwaitCount                  // Waiting for the number of processes
	StateAwaitArrival                // Waiting for the current process's arrival time
	StateAwaitBurst                  // Waiting for the current process's burst time
	StateAwaitAlgorithm              // Waiting for a menu choice
	StateAwaitQuantum                // Waiting for the Round Robin quantum
	StateAwaitPriority               // Waiting for the current process's priority
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitCount:
		return "await_count"
	case StateAwaitArrival:
		return "await_arrival"
	case StateAwaitBurst:
		return "await_burst"
	case StateAwaitAlgorithm:
		return "await_algorithm"
	case StateAwaitQuantum:
		return "await_quantum"
	case StateAwaitPriority:
		return "await_priority"
	default:
		return "unknown"
	}
}

// Response is what the front-end should display after one input line
type Response struct {
	Lines []string `json:"lines"`
	Clear bool     `json:"clear,omitempty"` // Clear the screen before printing Lines
}

// Session collects processes and parameters one line at a time.
// A Session is not safe for concurrent use.
type Session struct {
	state     State
	count     int
	current   int // Index of the process being collected
	arrival   int // Arrival time entered for the current process
	processes []simulator.Process

	// OnResult is called with every completed run (optional)
	OnResult func(simulator.Result)

	// Event logging callback passed to the engine (optional)
	LogEvent func(msg string)
}

// NewSession creates a session in StateIdle
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// State returns the step the session is waiting on
func (s *Session) State() State {
	return s.state
}

// Banner returns the greeting shown when a front-end attaches
func (s *Session) Banner() []string {
	return []string{
		"CPU SCHEDULING ALGORITHMS SIMULATOR",
		"",
		`Type "help" to see available commands.`,
		"",
	}
}

// Handle processes one input line and returns what to display
func (s *Session) Handle(line string) Response {
	input := strings.TrimSpace(line)

	// cancel abandons any collection in progress
	if s.state != StateIdle && strings.EqualFold(input, "cancel") {
		s.reset()
		return lines("Cancelled.", "")
	}

	switch s.state {
	case StateIdle:
		return s.handleCommand(input)
	case StateAwaitCount:
		return s.handleCount(input)
	case StateAwaitArrival:
		return s.handleArrival(input)
	case StateAwaitBurst:
		return s.handleBurst(input)
	case StateAwaitAlgorithm:
		return s.handleAlgorithm(input)
	case StateAwaitQuantum:
		return s.handleQuantum(input)
	case StateAwaitPriority:
		return s.handlePriority(input)
	default:
		s.reset()
		return lines("Internal error: unknown state; session reset.")
	}
}

func (s *Session) handleCommand(input string) Response {
	switch strings.ToLower(input) {
	case "":
		return Response{}
	case "help":
		return lines(
			"",
			"Available commands:",
			"  start     - Start the scheduling simulation",
			"  help      - Show this help message",
			"  clear     - Clear the terminal",
			"  about     - About this project",
			"  cancel    - Abandon the simulation being entered",
			"",
		)
	case "start":
		s.state = StateAwaitCount
		return lines("", "Enter the number of processes:")
	case "clear":
		return Response{Clear: true}
	case "about":
		out := []string{
			"",
			"CPU Scheduling Algorithms Simulator",
			"",
			"Algorithms implemented:",
		}
		for i, alg := range simulator.AllAlgorithms() {
			out = append(out, fmt.Sprintf("  %d. %s", i+1, alg.Title()))
		}
		return lines(append(out, "")...)
	default:
		return lines(fmt.Sprintf(`Command not found: %s. Type "help" for available commands.`, input))
	}
}

func (s *Session) handleCount(input string) Response {
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return lines("Invalid number. Please enter a positive integer.")
	}
	s.count = n
	s.current = 0
	s.processes = nil
	s.state = StateAwaitArrival
	return lines(
		"",
		fmt.Sprintf("Creating %d processes...", n),
		"",
		s.arrivalPrompt(),
	)
}

func (s *Session) handleArrival(input string) Response {
	arrival, err := strconv.Atoi(input)
	if err != nil || arrival < 0 {
		return lines("Invalid arrival time. Please enter a non-negative integer.")
	}
	s.arrival = arrival
	s.state = StateAwaitBurst
	return lines(fmt.Sprintf("Process %d - Enter burst time:", s.current+1))
}

func (s *Session) handleBurst(input string) Response {
	burst, err := strconv.Atoi(input)
	if err != nil || burst <= 0 {
		return lines("Invalid burst time. Please enter a positive integer.")
	}
	// pids are assigned 1..n in creation order
	s.processes = append(s.processes, simulator.NewProcess(s.current+1, s.arrival, burst))
	s.current++

	if s.current < s.count {
		s.state = StateAwaitArrival
		return lines("", s.arrivalPrompt())
	}

	s.state = StateAwaitAlgorithm
	out := []string{"", "Choose the scheduling algorithm:"}
	for i, alg := range simulator.AllAlgorithms() {
		out = append(out, fmt.Sprintf("  %d. %s", i+1, alg.Title()))
	}
	return lines(append(out, "", "Enter your choice (1-5):")...)
}

func (s *Session) handleAlgorithm(input string) Response {
	choice, err := strconv.Atoi(input)
	algorithms := simulator.AllAlgorithms()
	if err != nil || choice < 1 || choice > len(algorithms) {
		return lines("Invalid choice. Please enter a number between 1 and 5.")
	}

	switch alg := algorithms[choice-1]; alg {
	case simulator.AlgorithmRoundRobin:
		s.state = StateAwaitQuantum
		return lines("Enter time quantum:")
	case simulator.AlgorithmPriority:
		s.current = 0
		s.state = StateAwaitPriority
		return lines(fmt.Sprintf("Enter priority for Process %d (lower number = higher priority):", s.processes[0].PID))
	default:
		return s.run(alg, simulator.Options{})
	}
}

func (s *Session) handleQuantum(input string) Response {
	quantum, err := strconv.Atoi(input)
	if err != nil || quantum <= 0 {
		return lines("Invalid quantum. Please enter a positive integer.")
	}
	return s.run(simulator.AlgorithmRoundRobin, simulator.Options{Quantum: quantum})
}

func (s *Session) handlePriority(input string) Response {
	priority, err := strconv.Atoi(input)
	if err != nil {
		return lines("Invalid priority. Please enter a number.")
	}
	s.processes[s.current] = s.processes[s.current].WithPriority(priority)
	s.current++

	if s.current < len(s.processes) {
		return lines(fmt.Sprintf("Enter priority for Process %d:", s.processes[s.current].PID))
	}
	return s.run(simulator.AlgorithmPriority, simulator.Options{})
}

// run invokes exactly one engine entry point, renders the result and returns to idle
func (s *Session) run(alg simulator.Algorithm, opts simulator.Options) Response {
	opts.LogEvent = s.LogEvent
	result, err := simulator.Run(alg, s.processes, opts)
	s.reset()
	if err != nil {
		return lines(fmt.Sprintf("Error: %v", err))
	}

	if s.OnResult != nil {
		s.OnResult(result)
	}

	var buf bytes.Buffer
	buf.WriteString("\n")
	report.WriteResult(&buf, result)
	return lines(append(strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), "")...)
}

func (s *Session) arrivalPrompt() string {
	return fmt.Sprintf("Process %d - Enter arrival time:", s.current+1)
}

func (s *Session) reset() {
	s.state = StateIdle
	s.count = 0
	s.current = 0
	s.arrival = 0
	s.processes = nil
}

func lines(l ...string) Response {
	return Response{Lines: l}
}
