package genetics

// SpeciesId identifies a Species for the lifetime of a run.
type SpeciesId int

// Population is an indexable container of genomes plus a reverse mapping
// from genome to its current species. Species and the driver reference
// genomes by GenomeId, never by pointer, so reproduction can rebuild the
// population without dangling references.
type Population struct {
	genomes         map[GenomeId]*Genome
	nextGenomeId    GenomeId
	genomeSpecies   map[GenomeId]SpeciesId
	adjustedFitness map[GenomeId]float64
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	return &Population{
		genomes:         make(map[GenomeId]*Genome),
		genomeSpecies:   make(map[GenomeId]SpeciesId),
		adjustedFitness: make(map[GenomeId]float64),
	}
}

// Add assigns a fresh GenomeId to g, stores it, and returns the id.
func (p *Population) Add(g *Genome) GenomeId {
	id := p.nextGenomeId
	p.nextGenomeId++
	g.Id = id
	p.genomes[id] = g
	return id
}

// Get returns the genome for the given id.
func (p *Population) Get(id GenomeId) *Genome {
	return p.genomes[id]
}

// Size returns the number of genomes currently in the population.
func (p *Population) Size() int {
	return len(p.genomes)
}

// Genomes returns every genome currently in the population, in
// unspecified order.
func (p *Population) Genomes() []*Genome {
	out := make([]*Genome, 0, len(p.genomes))
	for _, g := range p.genomes {
		out = append(out, g)
	}
	return out
}

// AssignSpecies records which species a genome currently belongs to.
func (p *Population) AssignSpecies(genomeId GenomeId, speciesId SpeciesId) {
	p.genomeSpecies[genomeId] = speciesId
}

// SpeciesOf returns the species a genome currently belongs to.
func (p *Population) SpeciesOf(genomeId GenomeId) (SpeciesId, bool) {
	id, ok := p.genomeSpecies[genomeId]
	return id, ok
}

// SetAdjustedFitness records a genome's fitness-shared value.
func (p *Population) SetAdjustedFitness(genomeId GenomeId, fitness float64) {
	p.adjustedFitness[genomeId] = fitness
}

// AdjustedFitness returns a genome's fitness-shared value.
func (p *Population) AdjustedFitness(genomeId GenomeId) float64 {
	return p.adjustedFitness[genomeId]
}

// Champion returns the genome with the highest raw fitness. Panics if the
// population is empty: an empty population at champion lookup is a
// programmer error, not a recoverable condition.
func (p *Population) Champion() *Genome {
	if len(p.genomes) == 0 {
		panic("genetics: Champion called on an empty population")
	}
	var best *Genome
	for _, g := range p.genomes {
		if best == nil || g.Fitness > best.Fitness {
			best = g
		}
	}
	return best
}
