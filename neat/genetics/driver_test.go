package genetics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawndip/neatcore/neat"
	"github.com/sawndip/neatcore/neat/network"
)

func xorOptions() *neat.Options {
	opts := neat.NewDefaultOptions()
	opts.NumInputs = 2
	opts.NumOutputs = 1
	opts.InitialPopulationSize = 150
	opts.TargetPopulationSize = 150
	return opts
}

var xorRows = [][3]float64{
	{0, 0, 0},
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 0},
}

func evaluateXOR(net *network.Network) float64 {
	sumSquaredError := 0.0
	for _, row := range xorRows {
		net.Flush()
		if err := net.LoadSensors([]float64{row[0], row[1]}); err != nil {
			return 0
		}
		if _, err := net.Activate(); err != nil {
			return 0
		}
		out := net.ReadOutputs()[0]
		diff := row[2] - out
		sumSquaredError += diff * diff
	}
	return 4.0 - sumSquaredError
}

func TestDriver_NewDriver_RequiresOptionsInContext(t *testing.T) {
	_, err := NewDriver(context.Background(), 1)
	assert.ErrorIs(t, err, neat.ErrNEATOptionsNotFound)
}

func TestDriver_NewDriver_BuildsSpeciatedInitialPopulation(t *testing.T) {
	opts := xorOptions()
	opts.InitialPopulationSize = 20
	opts.TargetPopulationSize = 20
	ctx := neat.NewContext(context.Background(), opts)

	d, err := NewDriver(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 20, d.population.Size())
	// Every fresh genome from one seed is compatible with itself: a single
	// species should hold the whole initial population.
	assert.Len(t, d.species, 1)
}

func TestDriver_Speciation_SplitsOnDistantGenome(t *testing.T) {
	opts := xorOptions()
	opts.InitialPopulationSize = 10
	opts.TargetPopulationSize = 10
	ctx := neat.NewContext(context.Background(), opts)

	d, err := NewDriver(ctx, 7)
	require.NoError(t, err)
	require.Len(t, d.species, 1)

	// Inject a genome with no genes in common with the seed topology. Its 20
	// genes are all excess and the representant's k genes all disjoint, so
	// its distance is 1 + k/20 with the default coefficients; a threshold of
	// 1.0 makes it incompatible with the existing representant.
	opts.CompatibilityThreshold = 1.0
	distant := NewGenome(0, opts.NumInputs, opts.NumOutputs)
	hidden := d.pool.NextHiddenNeuron()
	for i := 0; i < 20; i++ {
		innov := d.pool.NextInnovation()
		distant.addGene(NewGene(innov, NeuronId(hidden), NeuronId(hidden), 0.1, true))
	}
	d.population.Add(distant)
	d.speciate(d.population.Genomes())

	assert.GreaterOrEqual(t, len(d.species), 2)
}

func TestDriver_Epoch_Determinism(t *testing.T) {
	opts := xorOptions()
	opts.InitialPopulationSize = 30
	opts.TargetPopulationSize = 30
	ctx := neat.NewContext(context.Background(), opts)

	d1, err := NewDriver(ctx, 123)
	require.NoError(t, err)
	d2, err := NewDriver(ctx, 123)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, d1.Epoch(evaluateXOR))
		require.NoError(t, d2.Epoch(evaluateXOR))
		assert.Equal(t, d1.BestEver().Fitness, d2.BestEver().Fitness)
	}
}

func TestDriver_XOR_SolvedWithinEpochBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("evolutionary run, skipped in short mode")
	}
	opts := xorOptions()
	ctx := neat.NewContext(context.Background(), opts)

	d, err := NewDriver(ctx, 42)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, d.Epoch(evaluateXOR))
		if d.BestEver() != nil && d.BestEver().Fitness >= 3.9 {
			break
		}
	}

	require.NotNil(t, d.BestEver())
	assert.GreaterOrEqual(t, d.BestEver().Fitness, 3.9)
}
