package simulator

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// DistributionType selects how generated arrival gaps and burst times are drawn
type DistributionType int

const (
	DistUniform DistributionType = iota
	DistExponential
	DistGeometric
)

// String returns the string representation of DistributionType
func (dt DistributionType) String() string {
	switch dt {
	case DistUniform:
		return "uniform"
	case DistExponential:
		return "exponential"
	case DistGeometric:
		return "geometric"
	default:
		return fmt.Sprintf("unknown(%d)", int(dt))
	}
}

// ParseDistributionType parses a string into a DistributionType
func ParseDistributionType(s string) (DistributionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform":
		return DistUniform, nil
	case "exponential":
		return DistExponential, nil
	case "geometric":
		return DistGeometric, nil
	default:
		return DistUniform, fmt.Errorf("invalid DistributionType: %s (must be 'uniform', 'exponential' or 'geometric')", s)
	}
}

// MarshalJSON implements json.Marshaler for DistributionType
func (dt DistributionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

// UnmarshalJSON implements json.Unmarshaler for DistributionType
func (dt *DistributionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDistributionType(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// Distribution draws integers in a closed range
type Distribution interface {
	Sample(rng *rand.Rand, lo, hi int) int
}

// UniformDistribution samples uniformly between lo and hi
type UniformDistribution struct{}

func (d *UniformDistribution) Sample(rng *rand.Rand, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// ExponentialDistribution favours short values, the usual shape of CPU bursts
type ExponentialDistribution struct {
	Lambda float64 // Rate; higher skews harder toward lo
}

func (d *ExponentialDistribution) Sample(rng *rand.Rand, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	// Inverse transform, truncated at 6/lambda
	u := rng.Float64()
	if u == 0 {
		u = 1e-10
	}
	x := -math.Log(u) / d.Lambda
	frac := math.Min(x/(6.0/d.Lambda), 1.0)
	return lo + int(frac*float64(hi-lo))
}

// GeometricDistribution counts failures before the first success, capped at the range
type GeometricDistribution struct {
	P float64 // Success probability
}

func (d *GeometricDistribution) Sample(rng *rand.Rand, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	if d.P <= 0 || d.P >= 1 {
		return lo
	}
	u := rng.Float64()
	if u >= 1.0 {
		u = 0.999999
	}
	failures := int(math.Log(1-u) / math.Log(1-d.P))
	if failures < 0 {
		failures = 0
	}
	return lo + min(failures, hi-lo)
}

// NewDistribution creates a distribution based on type
func NewDistribution(distType DistributionType) Distribution {
	switch distType {
	case DistExponential:
		return &ExponentialDistribution{Lambda: 0.5}
	case DistGeometric:
		return &GeometricDistribution{P: 0.3}
	default:
		return &UniformDistribution{}
	}
}
