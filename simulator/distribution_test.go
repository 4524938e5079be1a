package simulator

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniformDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &UniformDistribution{}

	t.Run("single value range", func(t *testing.T) {
		require.Equal(t, 5, dist.Sample(rng, 5, 5))
	})

	t.Run("range 1-10", func(t *testing.T) {
		samples := make(map[int]int)
		for i := 0; i < 10000; i++ {
			v := dist.Sample(rng, 1, 10)
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, 10)
			samples[v]++
		}
		require.Len(t, samples, 10, "every value should be sampled")
	})
}

func TestExponentialDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	dist := &ExponentialDistribution{Lambda: 0.5}

	t.Run("single value range", func(t *testing.T) {
		require.Equal(t, 5, dist.Sample(rng, 5, 5))
	})

	t.Run("skewed toward min", func(t *testing.T) {
		low, high := 0, 0
		for i := 0; i < 10000; i++ {
			v := dist.Sample(rng, 1, 20)
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, 20)
			if v <= 10 {
				low++
			} else {
				high++
			}
		}
		require.Greater(t, low, high)
	})
}

func TestGeometricDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))

	t.Run("bounded", func(t *testing.T) {
		dist := &GeometricDistribution{P: 0.3}
		for i := 0; i < 1000; i++ {
			v := dist.Sample(rng, 2, 6)
			require.GreaterOrEqual(t, v, 2)
			require.LessOrEqual(t, v, 6)
		}
	})

	t.Run("degenerate probability returns min", func(t *testing.T) {
		require.Equal(t, 3, (&GeometricDistribution{P: 0}).Sample(rng, 3, 9))
		require.Equal(t, 3, (&GeometricDistribution{P: 1}).Sample(rng, 3, 9))
	})
}

func TestDistributionTypeParsing(t *testing.T) {
	for _, dt := range []DistributionType{DistUniform, DistExponential, DistGeometric} {
		parsed, err := ParseDistributionType(dt.String())
		require.NoError(t, err)
		require.Equal(t, dt, parsed)
	}

	parsed, err := ParseDistributionType(" Exponential ")
	require.NoError(t, err)
	require.Equal(t, DistExponential, parsed)

	_, err = ParseDistributionType("zipf")
	require.Error(t, err)

	data, err := json.Marshal(DistGeometric)
	require.NoError(t, err)
	require.Equal(t, `"geometric"`, string(data))

	var decoded DistributionType
	require.NoError(t, json.Unmarshal([]byte(`"uniform"`), &decoded))
	require.Equal(t, DistUniform, decoded)
	require.Error(t, json.Unmarshal([]byte(`"zipf"`), &decoded))
}
