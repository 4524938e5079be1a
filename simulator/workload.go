package simulator

import (
	"math/rand"
)

// WorkloadConfig describes a randomly generated process set
type WorkloadConfig struct {
	Count       int              `json:"count"`
	MaxGap      int              `json:"maxGap"` // Largest gap between consecutive arrivals
	MinBurst    int              `json:"minBurst"`
	MaxBurst    int              `json:"maxBurst"`
	MaxPriority int              `json:"maxPriority"` // 0 leaves priorities unset
	GapDist     DistributionType `json:"gapDist"`
	BurstDist   DistributionType `json:"burstDist"`
	RandomSeed  int64            `json:"randomSeed"` // 0 picks a random seed
}

// DefaultWorkloadConfig returns a small mixed workload
func DefaultWorkloadConfig() WorkloadConfig {
	return WorkloadConfig{
		Count:       8,
		MaxGap:      4,
		MinBurst:    1,
		MaxBurst:    12,
		MaxPriority: 5,
		GapDist:     DistUniform,
		BurstDist:   DistExponential,
	}
}

// Validate checks if the workload configuration is valid
func (c *WorkloadConfig) Validate() error {
	if c.Count < 0 {
		return ErrInvalidConfig("count must be >= 0")
	}
	if c.MaxGap < 0 {
		return ErrInvalidConfig("maxGap must be >= 0")
	}
	if c.MinBurst < 1 {
		return ErrInvalidConfig("minBurst must be >= 1")
	}
	if c.MaxBurst < c.MinBurst {
		return ErrInvalidConfig("maxBurst must be >= minBurst")
	}
	if c.MaxPriority < 0 {
		return ErrInvalidConfig("maxPriority must be >= 0")
	}
	return nil
}

// GenerateWorkload builds Count processes with PIDs 1..Count in arrival order.
// The same non-zero seed always yields the same workload.
func GenerateWorkload(c WorkloadConfig) ([]Process, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	seed := c.RandomSeed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	gaps := NewDistribution(c.GapDist)
	bursts := NewDistribution(c.BurstDist)

	processes := make([]Process, 0, c.Count)
	arrival := 0
	for i := 0; i < c.Count; i++ {
		if i > 0 {
			arrival += gaps.Sample(rng, 0, c.MaxGap)
		}
		p := NewProcess(i+1, arrival, bursts.Sample(rng, c.MinBurst, c.MaxBurst))
		if c.MaxPriority > 0 {
			p = p.WithPriority(1 + rng.Intn(c.MaxPriority))
		}
		processes = append(processes, p)
	}
	return processes, nil
}
