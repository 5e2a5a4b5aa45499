package genetics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawndip/neatcore/neat"
)

func TestGenome_Crossover_InnovationClosure(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	opts := neat.NewDefaultOptions()
	a := genomeWithInnovations([]InnovationNumber{1, 2, 3, 5, 8})
	b := genomeWithInnovations([]InnovationNumber{1, 2, 4, 5, 9, 10})

	parentInnovations := make(map[InnovationNumber]bool)
	for _, gene := range a.Genes {
		parentInnovations[gene.Innovation] = true
	}
	for _, gene := range b.Genes {
		parentInnovations[gene.Innovation] = true
	}

	for i := 0; i < 20; i++ {
		child := a.Crossover(0, b, 5.0, 3.0, opts, rng)
		for _, gene := range child.Genes {
			assert.True(t, parentInnovations[gene.Innovation])
		}
	}
}

func TestGenome_Crossover_TiedFitnessInheritsFromBoth(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	opts := neat.NewDefaultOptions()
	a := genomeWithInnovations([]InnovationNumber{1, 2, 3, 5, 8})
	b := genomeWithInnovations([]InnovationNumber{1, 2, 4, 5, 9, 10})

	child := a.crossoverMultipoint(0, b, 2.0, 2.0, opts, rng, matchPickFitter)

	childInnovs := make(map[InnovationNumber]bool)
	for _, gene := range child.Genes {
		childInnovs[gene.Innovation] = true
	}
	// Tied fitness inherits disjoint/excess from both parents.
	for _, innov := range []InnovationNumber{3, 8, 4, 9, 10} {
		assert.True(t, childInnovs[innov])
	}
}

func TestGenome_Crossover_FitterOnlyContributesDisjointExcess(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	opts := neat.NewDefaultOptions()
	a := genomeWithInnovations([]InnovationNumber{1, 2, 3, 5, 8})
	b := genomeWithInnovations([]InnovationNumber{1, 2, 4, 5, 9, 10})

	child := a.crossoverMultipoint(0, b, 5.0, 1.0, opts, rng, matchPickFitter)

	childInnovs := make(map[InnovationNumber]bool)
	for _, gene := range child.Genes {
		childInnovs[gene.Innovation] = true
	}
	assert.True(t, childInnovs[3])
	assert.True(t, childInnovs[8])
	assert.False(t, childInnovs[4])
	assert.False(t, childInnovs[9])
	assert.False(t, childInnovs[10])
}

func TestGenome_InheritGene_ProbInheritDisabledAndReenable(t *testing.T) {
	opts := neat.NewDefaultOptions()
	opts.ProbInheritDisabled = 1.0 // always disable when disabled in either parent
	opts.ProbReenable = 0.0
	rng := rand.New(rand.NewSource(13))

	src := NewGene(1, 1, 2, 0.5, true)
	fromA := NewGene(1, 1, 2, 0.5, false)
	fromB := NewGene(1, 1, 2, 0.5, true)

	g := NewGenome(0, 2, 1)
	child := g.inheritGene(src, fromA, fromB, opts, rng)
	require.NotNil(t, child)
	assert.False(t, child.Enabled)
}

func TestGenome_InheritGene_BothEnabledStaysEnabled(t *testing.T) {
	opts := neat.NewDefaultOptions()
	rng := rand.New(rand.NewSource(14))

	src := NewGene(1, 1, 2, 0.5, true)
	fromA := NewGene(1, 1, 2, 0.5, true)
	fromB := NewGene(1, 1, 2, 0.5, true)

	g := NewGenome(0, 2, 1)
	child := g.inheritGene(src, fromA, fromB, opts, rng)
	assert.True(t, child.Enabled)
}
