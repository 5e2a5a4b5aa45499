package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func genomeWithInnovations(innovs []InnovationNumber) *Genome {
	g := NewGenome(0, 2, 1)
	for i, innov := range innovs {
		g.addGene(NewGene(innov, NeuronId(i+1), 4, 1.0, true))
	}
	return g
}

func TestGenome_Distance_DisjointAndExcessCounting(t *testing.T) {
	a := genomeWithInnovations([]InnovationNumber{1, 2, 3, 5, 8})
	b := genomeWithInnovations([]InnovationNumber{1, 2, 4, 5, 9, 10})

	dist := a.Distance(b, 1.0, 1.0, 1.0)
	assert.InDelta(t, 3.0/6.0+2.0/6.0, dist, 1e-9)
}

func TestGenome_Distance_SymmetricAndZeroForSelf(t *testing.T) {
	a := genomeWithInnovations([]InnovationNumber{1, 2, 3, 5, 8})
	b := genomeWithInnovations([]InnovationNumber{1, 2, 4, 5, 9, 10})

	assert.Equal(t, a.Distance(b, 1, 1, 1), b.Distance(a, 1, 1, 1))
	assert.Equal(t, 0.0, a.Distance(a, 1, 1, 1))
}

func TestGenome_Distance_SmallGenomesNotDiscriminated(t *testing.T) {
	a := genomeWithInnovations([]InnovationNumber{1, 2})
	b := genomeWithInnovations([]InnovationNumber{1, 2, 3, 100})

	assert.Equal(t, 0.0, a.Distance(b, 1, 1, 1))
}

func TestGenome_IsCompatible(t *testing.T) {
	a := genomeWithInnovations([]InnovationNumber{1, 2, 3, 5, 8})
	b := genomeWithInnovations([]InnovationNumber{1, 2, 4, 5, 9, 10})
	dist := a.Distance(b, 1, 1, 1)

	assert.True(t, a.IsCompatible(b, 1, 1, 1, dist+0.01))
	assert.False(t, a.IsCompatible(b, 1, 1, 1, dist-0.01))
}
