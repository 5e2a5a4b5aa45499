package genetics

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/sawndip/neatcore/neat"
)

// WriteDriver serializes the full logical state of a run to a textual,
// line-oriented stream: next-species-id, age-of-best-ever, compatibility
// threshold, an optional best-ever genome, the population, the species
// list, the best-genomes library, then the innovation pool. Read it back
// with ReadDriver.
func WriteDriver(w io.Writer, d *Driver) error {
	if _, err := fmt.Fprintf(w, "%d\n%d\n%g\n", d.nextSpeciesId, d.bestEverAge, d.opts.CompatibilityThreshold); err != nil {
		return err
	}

	if d.bestEver != nil {
		if _, err := fmt.Fprintln(w, 1); err != nil {
			return err
		}
		if err := writeGenome(w, d.bestEver); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, 0); err != nil {
		return err
	}

	genomes := d.population.Genomes()
	if _, err := fmt.Fprintln(w, len(genomes)); err != nil {
		return err
	}
	for _, g := range genomes {
		if err := writeGenome(w, g); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, len(d.species)); err != nil {
		return err
	}
	for _, id := range d.orderedSpeciesIds() {
		if err := writeSpecies(w, d.species[id]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, len(d.bestGenomesLibrary)); err != nil {
		return err
	}
	for _, g := range d.bestGenomesLibrary {
		if err := writeGenome(w, g); err != nil {
			return err
		}
	}

	return writeInnovationPool(w, d.pool)
}

// ReadDriver deserializes a run produced by WriteDriver. opts must carry
// the same number_of_inputs/number_of_outputs as the serialized run. seed
// re-initializes the driver's pseudo-random generator - the stream itself
// carries no RNG state, per the single-threaded, explicitly-seeded
// concurrency model.
func ReadDriver(r io.Reader, opts *neat.Options, seed int64) (*Driver, error) {
	d := &Driver{
		opts:    opts,
		rng:     rand.New(rand.NewSource(seed)),
		species: make(map[SpeciesId]*Species),
	}

	var hasBestEver int
	if _, err := fmt.Fscan(r, &d.nextSpeciesId, &d.bestEverAge, &d.opts.CompatibilityThreshold, &hasBestEver); err != nil {
		return nil, errors.Wrap(err, "failed to read driver header")
	}
	if hasBestEver == 1 {
		g, err := readGenome(r)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read best-ever genome")
		}
		d.bestEver = g
	}

	popSize, err := readCount(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read population size")
	}
	d.population = NewPopulation()
	for i := 0; i < popSize; i++ {
		g, err := readGenome(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read genome %d of %d", i, popSize)
		}
		d.population.genomes[g.Id] = g
		if g.Id >= d.population.nextGenomeId {
			d.population.nextGenomeId = g.Id + 1
		}
	}

	speciesCount, err := readCount(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read species count")
	}
	for i := 0; i < speciesCount; i++ {
		sp, err := readSpecies(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read species %d of %d", i, speciesCount)
		}
		d.species[sp.Id] = sp
		for _, mid := range sp.Members {
			d.population.AssignSpecies(mid, sp.Id)
		}
	}

	libCount, err := readCount(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read best-genomes library count")
	}
	for i := 0; i < libCount; i++ {
		g, err := readGenome(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read library genome %d of %d", i, libCount)
		}
		d.bestGenomesLibrary = append(d.bestGenomesLibrary, g)
	}

	pool, err := readInnovationPool(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read innovation pool")
	}
	d.pool = pool

	return d, nil
}

func readCount(r io.Reader) (int, error) {
	var n int
	_, err := fmt.Fscan(r, &n)
	return n, err
}

func writeGenome(w io.Writer, g *Genome) error {
	if _, err := fmt.Fprintf(w, "%d %d %d %g %d\n", g.Id, g.NumInputs, g.NumOutputs, g.Fitness, len(g.Genes)); err != nil {
		return err
	}
	for _, gene := range g.Genes {
		enabled := 0
		if gene.Enabled {
			enabled = 1
		}
		if _, err := fmt.Fprintf(w, "%d %d %d %g %d\n", gene.Innovation, gene.From, gene.To, gene.Weight, enabled); err != nil {
			return err
		}
	}
	return nil
}

func readGenome(r io.Reader) (*Genome, error) {
	var id GenomeId
	var numInputs, numOutputs, geneCount int
	var fitness float64
	if _, err := fmt.Fscan(r, &id, &numInputs, &numOutputs, &fitness, &geneCount); err != nil {
		return nil, err
	}
	g := NewGenome(id, numInputs, numOutputs)
	g.Fitness = fitness
	for i := 0; i < geneCount; i++ {
		var innov InnovationNumber
		var from, to NeuronId
		var weight float64
		var enabled int
		if _, err := fmt.Fscan(r, &innov, &from, &to, &weight, &enabled); err != nil {
			return nil, errors.Wrapf(err, "malformed gene %d of %d", i, geneCount)
		}
		g.addGene(NewGene(innov, from, to, weight, enabled == 1))
	}
	return g, nil
}

func writeSpecies(w io.Writer, s *Species) error {
	if _, err := fmt.Fprintf(w, "%d\n", s.Id); err != nil {
		return err
	}
	if err := writeGenome(w, s.Representant); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d\n", len(s.Members)); err != nil {
		return err
	}
	for _, m := range s.Members {
		if _, err := fmt.Fprintf(w, "%d ", m); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d %d %g\n", s.Age, s.StagnationCounter, s.BestFitnessEver)
	return err
}

func readSpecies(r io.Reader) (*Species, error) {
	var id SpeciesId
	if _, err := fmt.Fscan(r, &id); err != nil {
		return nil, err
	}
	rep, err := readGenome(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read representant genome")
	}
	memberCount, err := readCount(r)
	if err != nil {
		return nil, err
	}
	members := make([]GenomeId, memberCount)
	for i := range members {
		if _, err := fmt.Fscan(r, &members[i]); err != nil {
			return nil, errors.Wrapf(err, "malformed member %d of %d", i, memberCount)
		}
	}
	sp := NewSpecies(id, rep)
	sp.Members = members
	if _, err := fmt.Fscan(r, &sp.Age, &sp.StagnationCounter, &sp.BestFitnessEver); err != nil {
		return nil, errors.Wrap(err, "failed to read species trailer")
	}
	return sp, nil
}

func writeInnovationPool(w io.Writer, p *InnovationPool) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", p.nextInnovation, p.nextHiddenNeuron); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, len(p.genes)); err != nil {
		return err
	}
	for _, g := range p.genes {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", g.From, g.To, g.Innovation); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, len(p.innovations)); err != nil {
		return err
	}
	for _, rec := range p.innovations {
		if _, err := fmt.Fprintf(w, "%d %d %d %d %d %d\n",
			rec.Kind, rec.From, rec.To, rec.Innovation, rec.InnovationIn, rec.InnovationOut); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%d\n", rec.NewNeuronId); err != nil {
			return err
		}
	}
	return nil
}

func readInnovationPool(r io.Reader) (*InnovationPool, error) {
	p := &InnovationPool{
		genes:       make(map[geneKey]*Gene),
		innovations: make(map[innovationKey]*InnovationRecord),
	}
	if _, err := fmt.Fscan(r, &p.nextInnovation, &p.nextHiddenNeuron); err != nil {
		return nil, errors.Wrap(err, "failed to read innovation counters")
	}

	geneCount, err := readCount(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < geneCount; i++ {
		var from, to NeuronId
		var innov InnovationNumber
		if _, err := fmt.Fscan(r, &from, &to, &innov); err != nil {
			return nil, errors.Wrapf(err, "malformed canonical gene %d of %d", i, geneCount)
		}
		p.genes[geneKey{from, to}] = NewGene(innov, from, to, 0, true)
	}

	innovCount, err := readCount(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < innovCount; i++ {
		var rec InnovationRecord
		if _, err := fmt.Fscan(r, &rec.Kind, &rec.From, &rec.To, &rec.Innovation, &rec.InnovationIn, &rec.InnovationOut); err != nil {
			return nil, errors.Wrapf(err, "malformed innovation record %d of %d", i, innovCount)
		}
		if _, err := fmt.Fscan(r, &rec.NewNeuronId); err != nil {
			return nil, errors.Wrapf(err, "malformed innovation record %d of %d", i, innovCount)
		}
		key := innovationKey{rec.Kind, rec.From, rec.To}
		recCopy := rec
		p.innovations[key] = &recCopy
	}

	return p, nil
}
