package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miretskiy/cpusched/report"
	"github.com/miretskiy/cpusched/simulator"
)

// runOutput is one algorithm's entry in the JSON output
type runOutput struct {
	Preemptive bool             `json:"preemptive"`
	Result     simulator.Result `json:"result"`
	Stats      simulator.Stats  `json:"stats"`
}

func main() {
	// Parse command line flags
	configFile := flag.String("config", "", "Path to configuration file (.json, .yaml, .yml or .csv)")
	algorithmName := flag.String("algorithm", "", "Algorithm to run: fcfs, sjf, srt, rr, priority or all (default: from config)")
	quantum := flag.Int("quantum", 0, "Round Robin time quantum (overrides config when > 0)")
	format := flag.String("format", "json", "Output format: json or table")
	outputFile := flag.String("output", "", "Path to output file (optional, prints to stdout if not specified)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging from simulator")
	generate := flag.Int("generate", 0, "Generate a random workload of this many processes instead of reading -config")
	seed := flag.Int64("seed", 0, "Random seed for -generate (0 = random)")
	burstDist := flag.String("burst-dist", "exponential", "Burst time distribution for -generate: uniform, exponential or geometric")
	flag.Parse()

	if *configFile == "" && *generate <= 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s (-config <workload.json|yaml|csv> | -generate <n> [-seed <n>] [-burst-dist <dist>]) [-algorithm <name|all>] [-quantum <n>] [-format json|table] [-output <file>] [-verbose]\n", os.Args[0])
		os.Exit(1)
	}

	var config simulator.SimConfig
	var err error
	if *configFile != "" {
		config, err = simulator.LoadConfig(*configFile)
	} else {
		config, err = generatedConfig(*generate, *seed, *burstDist)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading workload: %v\n", err)
		os.Exit(1)
	}

	// Override quantum if specified via flag
	if *quantum > 0 {
		config.Quantum = *quantum
	}

	algorithms, err := selectAlgorithms(&config, *algorithmName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	opts := config.Options()
	if *verbose {
		opts.LogEvent = func(msg string) {
			fmt.Fprintf(os.Stderr, "[SIM] %s\n", msg)
		}
		fmt.Fprintf(os.Stderr, "Verbose logging enabled\n")
	}

	// Run simulations
	processes := config.BuildProcesses()
	startTime := time.Now()
	runs := make([]runOutput, 0, len(algorithms))
	for _, alg := range algorithms {
		result, err := simulator.Run(alg, processes, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", alg, err)
			os.Exit(1)
		}
		runs = append(runs, newRunOutput(alg, result))
	}
	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "Simulated %d algorithm(s) over %d processes in %v\n", len(runs), len(processes), elapsed)

	var output bytes.Buffer
	switch *format {
	case "json":
		err = writeJSON(&output, config, runs)
	case "table":
		writeTables(&output, runs)
	default:
		err = fmt.Errorf("unknown format %q (must be json or table)", *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting results: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Results written to %s\n", *outputFile)
	} else {
		os.Stdout.Write(output.Bytes())
	}
}

// selectAlgorithms resolves the -algorithm flag against the config and
// validates the config for every algorithm that will run
func selectAlgorithms(config *simulator.SimConfig, name string) ([]simulator.Algorithm, error) {
	switch strings.ToLower(name) {
	case "":
		if err := config.Validate(); err != nil {
			return nil, err
		}
		return []simulator.Algorithm{config.Algorithm}, nil
	case "all":
		// Priority tolerates missing priorities here; they run last
		if err := config.ValidateProcesses(); err != nil {
			return nil, err
		}
		if config.Quantum <= 0 {
			return nil, simulator.ErrInvalidConfig("quantum must be > 0 for round robin")
		}
		return simulator.AllAlgorithms(), nil
	default:
		alg, err := simulator.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		config.Algorithm = alg
		if err := config.Validate(); err != nil {
			return nil, err
		}
		return []simulator.Algorithm{alg}, nil
	}
}

func newRunOutput(alg simulator.Algorithm, result simulator.Result) runOutput {
	return runOutput{
		Preemptive: alg.Preemptive(),
		Result:     result,
		Stats:      simulator.ComputeStats(result),
	}
}

// generatedConfig builds a default config around a random workload
func generatedConfig(count int, seed int64, burstDist string) (simulator.SimConfig, error) {
	workload := simulator.DefaultWorkloadConfig()
	workload.Count = count
	workload.RandomSeed = seed
	dist, err := simulator.ParseDistributionType(burstDist)
	if err != nil {
		return simulator.SimConfig{}, err
	}
	workload.BurstDist = dist

	processes, err := simulator.GenerateWorkload(workload)
	if err != nil {
		return simulator.SimConfig{}, err
	}
	config := simulator.DefaultConfig()
	config.Processes = make([]simulator.ProcessConfig, 0, len(processes))
	for _, p := range processes {
		config.Processes = append(config.Processes, simulator.ProcessConfig{
			PID:         p.PID,
			ArrivalTime: p.ArrivalTime,
			BurstTime:   p.BurstTime,
			Priority:    p.Priority,
		})
	}
	return config, nil
}

func writeJSON(w io.Writer, config simulator.SimConfig, runs []runOutput) error {
	results := map[string]interface{}{
		"runId":  uuid.New().String(),
		"config": config,
		"runs":   runs,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeTables(w io.Writer, runs []runOutput) {
	for i, run := range runs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		report.WriteResult(w, run.Result)
		fmt.Fprintln(w)
		report.WriteStats(w, run.Stats)
	}
}
