// Package genetics implements the genome, the innovation pool, speciation,
// and the NEAT evolutionary driver.
package genetics

import "fmt"

// NeuronId identifies a neuron within a genome's coordinate space. Id 0 is
// reserved for the bias neuron; 1..I are inputs; I+1..I+O are outputs;
// I+O+1.. are hidden neurons allocated by the InnovationPool.
type NeuronId uint32

// InnovationNumber is a globally consistent identifier stamped on every
// structural gene, allocated by the InnovationPool. Two genes share an
// innovation number iff they originate from the same structural event.
type InnovationNumber uint32

// GenomeId identifies a genome within a Population, stable for the
// generation during which the genome exists.
type GenomeId int

// Gene is a directed, weighted synapse between two neurons. from == to is
// permitted (a self-loop); to is never an input or bias, enforced by the
// mutation generator.
type Gene struct {
	Innovation InnovationNumber
	From       NeuronId
	To         NeuronId
	Weight     float64
	Enabled    bool
}

// NewGene creates a new connection gene.
func NewGene(innov InnovationNumber, from, to NeuronId, weight float64, enabled bool) *Gene {
	return &Gene{Innovation: innov, From: from, To: to, Weight: weight, Enabled: enabled}
}

// Duplicate returns an independent copy of this gene.
func (g *Gene) Duplicate() *Gene {
	dup := *g
	return &dup
}

func (g *Gene) String() string {
	enabled := ""
	if !g.Enabled {
		enabled = " -DISABLED-"
	}
	return fmt.Sprintf("[Gene innov:%d (%d -> %d) weight: %.3f%s]", g.Innovation, g.From, g.To, g.Weight, enabled)
}
