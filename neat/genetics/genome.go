package genetics

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sawndip/neatcore/neat/network"
)

// Genome is a structural encoding of a neural network: an ordered list of
// genes sorted by innovation number, plus the set of neuron ids it
// references. The genome owns no mutable state beyond its genes, fitness
// and known-neurons set; species and population reference it by GenomeId,
// never by pointer.
type Genome struct {
	Id           GenomeId
	NumInputs    int
	NumOutputs   int
	Genes        []*Gene
	KnownNeurons map[NeuronId]bool
	Fitness      float64
}

// NewGenome creates an empty genome over the given input/output counts,
// with known_neurons seeded to {bias} ∪ inputs ∪ outputs.
func NewGenome(id GenomeId, numInputs, numOutputs int) *Genome {
	g := &Genome{
		Id:           id,
		NumInputs:    numInputs,
		NumOutputs:   numOutputs,
		KnownNeurons: make(map[NeuronId]bool),
	}
	g.KnownNeurons[0] = true // bias
	for i := 1; i <= numInputs; i++ {
		g.KnownNeurons[NeuronId(i)] = true
	}
	for o := 1; o <= numOutputs; o++ {
		g.KnownNeurons[NeuronId(numInputs+o)] = true
	}
	return g
}

// NewSeedGenome builds the fully connected initial genome - bias->output
// and input->output links for every output - used to found the initial
// population.
func NewSeedGenome(id GenomeId, numInputs, numOutputs int, pool *InnovationPool, rng *rand.Rand) *Genome {
	g := NewGenome(id, numInputs, numOutputs)
	for o := 1; o <= numOutputs; o++ {
		out := NeuronId(numInputs + o)
		g.addInitialLink(pool, 0, out, rng)
		for i := 1; i <= numInputs; i++ {
			g.addInitialLink(pool, NeuronId(i), out, rng)
		}
	}
	return g
}

func (g *Genome) addInitialLink(pool *InnovationPool, from, to NeuronId, rng *rand.Rand) {
	innov := g.innovationFor(pool, from, to)
	gene := NewGene(innov, from, to, smallRandomWeight(rng), true)
	g.addGene(gene)
	pool.RegisterGene(gene)
}

func (g *Genome) innovationFor(pool *InnovationPool, from, to NeuronId) InnovationNumber {
	if rec, ok := pool.FindInnovation(NewLinkInnovation, from, to); ok {
		return rec.Innovation
	}
	innov := pool.NextInnovation()
	pool.RegisterInnovation(&InnovationRecord{Kind: NewLinkInnovation, From: from, To: to, Innovation: innov})
	return innov
}

// addGene inserts a gene keeping Genes sorted by innovation number and
// updates KnownNeurons to include its endpoints.
func (g *Genome) addGene(gene *Gene) {
	i := sort.Search(len(g.Genes), func(i int) bool {
		return g.Genes[i].Innovation >= gene.Innovation
	})
	g.Genes = append(g.Genes, nil)
	copy(g.Genes[i+1:], g.Genes[i:])
	g.Genes[i] = gene
	g.KnownNeurons[gene.From] = true
	g.KnownNeurons[gene.To] = true
}

// HasLink reports whether this genome already has a gene directly
// connecting from to to (in either enabled state).
func (g *Genome) HasLink(from, to NeuronId) bool {
	for _, gene := range g.Genes {
		if gene.From == from && gene.To == to {
			return true
		}
	}
	return false
}

// Duplicate returns a deep, independent copy of this genome under the new
// id, with fitness reset to zero.
func (g *Genome) Duplicate(newId GenomeId) *Genome {
	dup := &Genome{
		Id:           newId,
		NumInputs:    g.NumInputs,
		NumOutputs:   g.NumOutputs,
		KnownNeurons: make(map[NeuronId]bool, len(g.KnownNeurons)),
	}
	for n := range g.KnownNeurons {
		dup.KnownNeurons[n] = true
	}
	dup.Genes = make([]*Gene, len(g.Genes))
	for i, gene := range g.Genes {
		dup.Genes[i] = gene.Duplicate()
	}
	return dup
}

// Genesis decodes this genome into an executable network through the
// NetworkBuilder collaborator boundary: a network neuron is allocated for
// bias, every input, every output, and every hidden genome-neuron (in the
// order they appear in known_neurons past the reserved range); then every
// enabled gene becomes a weighted link.
func (g *Genome) Genesis(builder network.NetworkBuilder) {
	mapping := make(map[NeuronId]network.NetNeuronId, len(g.KnownNeurons))
	mapping[0] = builder.BiasNeuronId()

	for i := 1; i <= g.NumInputs; i++ {
		mapping[NeuronId(i)] = builder.AddNeuron(network.InputNeuron)
	}
	for o := 1; o <= g.NumOutputs; o++ {
		mapping[NeuronId(g.NumInputs+o)] = builder.AddNeuron(network.OutputNeuron)
	}

	reserved := NeuronId(1 + g.NumInputs + g.NumOutputs)
	hidden := make([]NeuronId, 0, len(g.KnownNeurons))
	for n := range g.KnownNeurons {
		if n >= reserved {
			hidden = append(hidden, n)
		}
	}
	sort.Slice(hidden, func(i, j int) bool { return hidden[i] < hidden[j] })
	for _, n := range hidden {
		mapping[n] = builder.AddNeuron(network.HiddenNeuron)
	}

	for _, gene := range g.Genes {
		if !gene.Enabled {
			continue
		}
		builder.AddLink(mapping[gene.From], mapping[gene.To], gene.Weight)
	}
}

// Complexity is the enabled-gene count, used as the complexity statistic.
func (g *Genome) Complexity() int {
	n := 0
	for _, gene := range g.Genes {
		if gene.Enabled {
			n++
		}
	}
	return n
}

// StructurallyEqual reports whether two genomes carry exactly the same set
// of (innovation, enabled) pairs, used by the bounded best-genomes library
// to avoid inserting duplicates of a champion it already holds.
func (g *Genome) StructurallyEqual(other *Genome) bool {
	if len(g.Genes) != len(other.Genes) {
		return false
	}
	for i, gene := range g.Genes {
		o := other.Genes[i]
		if gene.Innovation != o.Innovation || gene.Enabled != o.Enabled {
			return false
		}
	}
	return true
}

func (g *Genome) String() string {
	return fmt.Sprintf("Genome#%d{genes: %d, fitness: %.4f}", g.Id, len(g.Genes), g.Fitness)
}
