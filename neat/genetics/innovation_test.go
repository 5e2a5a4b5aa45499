package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInnovationPool_GeneConsistency(t *testing.T) {
	pool := NewInnovationPool(2, 1)
	g := NewGene(pool.NextInnovation(), 1, 3, 0.5, true)
	pool.RegisterGene(g)

	found, ok := pool.FindGene(1, 3)
	assert.True(t, ok)
	assert.Equal(t, g.Innovation, found.Innovation)

	// First write wins: a second registration for the same pair is a no-op.
	other := NewGene(pool.NextInnovation(), 1, 3, 0.9, true)
	pool.RegisterGene(other)
	found2, _ := pool.FindGene(1, 3)
	assert.Equal(t, g.Innovation, found2.Innovation)
}

func TestInnovationPool_CountersStrictlyIncreasing(t *testing.T) {
	pool := NewInnovationPool(2, 1)
	prevInnov := pool.NextInnovation()
	for i := 0; i < 10; i++ {
		next := pool.NextInnovation()
		assert.Greater(t, next, prevInnov)
		prevInnov = next
	}

	prevNeuron := pool.NextHiddenNeuron()
	for i := 0; i < 10; i++ {
		next := pool.NextHiddenNeuron()
		assert.Greater(t, next, prevNeuron)
		prevNeuron = next
	}
}

func TestInnovationPool_HiddenNeuronSeededPastReservedRange(t *testing.T) {
	pool := NewInnovationPool(3, 2)
	assert.Equal(t, NeuronId(6), pool.nextHiddenNeuron)
}

func TestInnovationPool_AddLinkIdempotenceAcrossGenomes(t *testing.T) {
	pool := NewInnovationPool(3, 1)
	gA := NewGenome(0, 3, 1)
	gB := NewGenome(1, 3, 1)

	innovA := gA.innovationFor(pool, 1, 4)
	pool.RegisterGene(NewGene(innovA, 1, 4, 0, true))

	innovB := gB.innovationFor(pool, 1, 4)

	assert.Equal(t, innovA, innovB)
}
