package simulator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProcessConfig is the input half of a process record as it appears in config files
type ProcessConfig struct {
	PID         int  `json:"pid" yaml:"pid"`
	ArrivalTime int  `json:"arrivalTime" yaml:"arrivalTime"`
	BurstTime   int  `json:"burstTime" yaml:"burstTime"`
	Priority    *int `json:"priority,omitempty" yaml:"priority,omitempty"` // Required only for AlgorithmPriority
}

// SimConfig holds a complete, validated request to the scheduling engine
type SimConfig struct {
	Algorithm Algorithm       `json:"algorithm" yaml:"algorithm"`
	Quantum   int             `json:"quantum" yaml:"quantum"` // Round Robin time slice
	Processes []ProcessConfig `json:"processes" yaml:"processes"`
}

// DefaultConfig returns a small FCFS workload
func DefaultConfig() SimConfig {
	return SimConfig{
		Algorithm: AlgorithmFCFS,
		Quantum:   2,
		Processes: []ProcessConfig{
			{PID: 1, ArrivalTime: 0, BurstTime: 5},
			{PID: 2, ArrivalTime: 1, BurstTime: 3},
			{PID: 3, ArrivalTime: 2, BurstTime: 8},
		},
	}
}

// Validate checks the process list and the parameters the selected algorithm needs
func (c *SimConfig) Validate() error {
	if err := c.ValidateProcesses(); err != nil {
		return err
	}
	switch c.Algorithm {
	case AlgorithmFCFS, AlgorithmSJF, AlgorithmSRT:
	case AlgorithmRoundRobin:
		if c.Quantum <= 0 {
			return ErrInvalidConfig("quantum must be > 0 for round robin")
		}
	case AlgorithmPriority:
		for _, p := range c.Processes {
			if p.Priority == nil {
				return ErrInvalidConfig(fmt.Sprintf("process %d: priority is required for priority scheduling", p.PID))
			}
		}
	default:
		return ErrInvalidConfig(fmt.Sprintf("unknown algorithm %d", int(c.Algorithm)))
	}
	return nil
}

// ValidateProcesses checks the fields every algorithm depends on
func (c *SimConfig) ValidateProcesses() error {
	if len(c.Processes) == 0 {
		return ErrInvalidConfig("at least one process is required")
	}
	seen := make(map[int]bool, len(c.Processes))
	for _, p := range c.Processes {
		if p.PID <= 0 {
			return ErrInvalidConfig(fmt.Sprintf("pid must be > 0, got %d", p.PID))
		}
		if seen[p.PID] {
			return ErrInvalidConfig(fmt.Sprintf("duplicate pid %d", p.PID))
		}
		seen[p.PID] = true
		if p.ArrivalTime < 0 {
			return ErrInvalidConfig(fmt.Sprintf("process %d: arrivalTime must be >= 0", p.PID))
		}
		if p.BurstTime <= 0 {
			return ErrInvalidConfig(fmt.Sprintf("process %d: burstTime must be > 0", p.PID))
		}
	}
	return nil
}

// BuildProcesses converts the configured processes into engine records
func (c *SimConfig) BuildProcesses() []Process {
	processes := make([]Process, len(c.Processes))
	for i, pc := range c.Processes {
		processes[i] = NewProcess(pc.PID, pc.ArrivalTime, pc.BurstTime)
		if pc.Priority != nil {
			processes[i] = processes[i].WithPriority(*pc.Priority)
		}
	}
	return processes
}

// Options returns the engine options for this config
func (c *SimConfig) Options() Options {
	return Options{Quantum: c.Quantum}
}

// LoadConfig reads a config file. The format is chosen by extension: .json,
// .yaml/.yml, or .csv (process rows only, other fields from DefaultConfig).
func LoadConfig(path string) (SimConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return SimConfig{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSONConfig(f)
	case ".yaml", ".yml":
		return decodeYAMLConfig(f)
	case ".csv":
		processes, err := LoadProcessesCSV(f)
		if err != nil {
			return SimConfig{}, err
		}
		config := DefaultConfig()
		config.Processes = processes
		return config, nil
	default:
		return SimConfig{}, ErrInvalidConfig(fmt.Sprintf("unsupported config format %q", filepath.Ext(path)))
	}
}

func decodeJSONConfig(r io.Reader) (SimConfig, error) {
	config := DefaultConfig()
	config.Processes = nil
	if err := json.NewDecoder(r).Decode(&config); err != nil {
		return SimConfig{}, fmt.Errorf("parsing config JSON: %w", err)
	}
	return config, nil
}

func decodeYAMLConfig(r io.Reader) (SimConfig, error) {
	config := DefaultConfig()
	config.Processes = nil
	if err := yaml.NewDecoder(r).Decode(&config); err != nil {
		return SimConfig{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	return config, nil
}

// LoadProcessesCSV reads rows of pid,arrival,burst[,priority].
// A leading header row starting with "pid" is skipped.
func LoadProcessesCSV(r io.Reader) ([]ProcessConfig, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "pid") {
		rows = rows[1:]
	}

	processes := make([]ProcessConfig, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 || len(row) > 4 {
			return nil, ErrInvalidInput(fmt.Sprintf("CSV row %d: expected 3 or 4 fields, got %d", i+1, len(row)))
		}
		values := make([]int, len(row))
		for j, field := range row {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, ErrInvalidInput(fmt.Sprintf("CSV row %d field %d: %v", i+1, j+1, err))
			}
			values[j] = v
		}
		pc := ProcessConfig{PID: values[0], ArrivalTime: values[1], BurstTime: values[2]}
		if len(values) == 4 {
			priority := values[3]
			pc.Priority = &priority
		}
		processes = append(processes, pc)
	}
	return processes, nil
}
