package genetics

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawndip/neatcore/neat"
)

func TestDriver_SerializationRoundTrip(t *testing.T) {
	opts := xorOptions()
	opts.InitialPopulationSize = 20
	opts.TargetPopulationSize = 20
	ctx := neat.NewContext(context.Background(), opts)

	d, err := NewDriver(ctx, 99)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, d.Epoch(evaluateXOR))
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDriver(&buf, d))

	restored, err := ReadDriver(&buf, opts, 99)
	require.NoError(t, err)

	require.NotNil(t, restored.bestEver)
	assert.Equal(t, d.bestEver.Fitness, restored.bestEver.Fitness)
	assert.Equal(t, d.population.Size(), restored.population.Size())
	assert.Equal(t, len(d.species), len(restored.species))
	assert.Equal(t, len(d.bestGenomesLibrary), len(restored.bestGenomesLibrary))

	for _, g := range d.population.Genomes() {
		restoredGenome := restored.population.Get(g.Id)
		require.NotNil(t, restoredGenome)
		assert.Equal(t, len(g.Genes), len(restoredGenome.Genes))
		for i, gene := range g.Genes {
			assert.Equal(t, gene.Innovation, restoredGenome.Genes[i].Innovation)
			assert.Equal(t, gene.Weight, restoredGenome.Genes[i].Weight)
		}
	}

	bestBefore := restored.BestEver().Fitness
	require.NoError(t, restored.Epoch(evaluateXOR))
	assert.GreaterOrEqual(t, restored.BestEver().Fitness, bestBefore)
}
