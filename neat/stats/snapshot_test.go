package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawndip/neatcore/neat"
	"github.com/sawndip/neatcore/neat/genetics"
	"github.com/sawndip/neatcore/neat/network"
)

func newTestDriver(t *testing.T) *genetics.Driver {
	t.Helper()
	opts := neat.NewDefaultOptions()
	opts.NumInputs = 2
	opts.NumOutputs = 1
	opts.InitialPopulationSize = 20
	opts.TargetPopulationSize = 20
	ctx := neat.NewContext(context.Background(), opts)

	d, err := genetics.NewDriver(ctx, 99)
	require.NoError(t, err)
	return d
}

func flatFitness(net *network.Network) float64 {
	net.Flush()
	_ = net.LoadSensors([]float64{1.0, 0.0})
	if _, err := net.Activate(); err != nil {
		return 0
	}
	return net.ReadOutputs()[0]
}

func TestNewSnapshot_ReflectsDriverState(t *testing.T) {
	d := newTestDriver(t)
	require.NoError(t, d.Epoch(flatFitness))

	snap := NewSnapshot(d)

	assert.Equal(t, d.Generation, snap.Generation)
	assert.Equal(t, len(d.SpeciesStats()), snap.Diversity)
	assert.Len(t, snap.Fitness, snap.Diversity)
	assert.Len(t, snap.Age, snap.Diversity)
	assert.Len(t, snap.Complexity, snap.Diversity)
	assert.Equal(t, d.BestEver().Fitness, snap.BestEverFitness)
	assert.False(t, snap.Executed.IsZero())
}

func TestNewSnapshot_AverageMatchesUnderlyingFloats(t *testing.T) {
	d := newTestDriver(t)
	require.NoError(t, d.Epoch(flatFitness))
	require.NoError(t, d.Epoch(flatFitness))

	snap := NewSnapshot(d)
	fitness, age, complexity := snap.Average()

	assert.Equal(t, snap.Fitness.Mean(), fitness)
	assert.Equal(t, snap.Age.Mean(), age)
	assert.Equal(t, snap.Complexity.Mean(), complexity)
}

func TestNewSnapshot_AcrossMultipleEpochsStaysConsistent(t *testing.T) {
	d := newTestDriver(t)

	var history []Snapshot
	for i := 0; i < 5; i++ {
		require.NoError(t, d.Epoch(flatFitness))
		history = append(history, NewSnapshot(d))
	}

	require.Len(t, history, 5)
	for i, snap := range history {
		assert.Equal(t, i+1, snap.Generation)
		assert.GreaterOrEqual(t, snap.Diversity, 1)
	}
}
