package genetics

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"

	"github.com/sawndip/neatcore/neat"
	"github.com/sawndip/neatcore/neat/network"
)

// EvaluatorFunc maps a decoded network to a fitness value. The driver calls
// it once per genome at the start of every epoch; it never evaluates
// concurrently, leaving parallelism to the caller's implementation if any.
type EvaluatorFunc func(*network.Network) float64

// Driver owns the single run-wide innovation pool, population, species
// list and pseudo-random generator, and runs the NEAT epoch loop. No part
// of it is accessed as global state.
type Driver struct {
	opts *neat.Options
	pool *InnovationPool
	rng  *rand.Rand

	population    *Population
	species       map[SpeciesId]*Species
	nextSpeciesId SpeciesId

	bestEver    *Genome
	bestEverAge int

	bestGenomesLibrary []*Genome

	Generation int
}

// NewDriver builds the initial population: a fully connected seed genome,
// mutated once per copy to found initial_population_size genomes, then
// speciated. opts must be present in ctx (see neat.NewContext) and valid.
func NewDriver(ctx context.Context, seed int64) (*Driver, error) {
	opts, ok := neat.FromContext(ctx)
	if !ok {
		return nil, neat.ErrNEATOptionsNotFound
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "cannot start driver")
	}

	d := &Driver{
		opts:       opts,
		pool:       NewInnovationPool(opts.NumInputs, opts.NumOutputs),
		rng:        rand.New(rand.NewSource(seed)),
		population: NewPopulation(),
		species:    make(map[SpeciesId]*Species),
	}

	seedGenome := NewSeedGenome(0, opts.NumInputs, opts.NumOutputs, d.pool, d.rng)
	for i := 0; i < opts.InitialPopulationSize; i++ {
		g := seedGenome.Duplicate(0)
		g.Mutate(opts, d.pool, d.rng)
		d.population.Add(g)
	}

	d.speciate(d.population.Genomes())
	return d, nil
}

// Population exposes the current generation's genomes for evaluation,
// inspection or serialization.
func (d *Driver) Population() *Population {
	return d.population
}

// BestEver returns the best genome found across the whole run, or nil
// before the first epoch completes.
func (d *Driver) BestEver() *Genome {
	return d.bestEver
}

// BestGenomesLibrary returns the bounded library of best genomes seen
// across the run, fittest-independent order.
func (d *Driver) BestGenomesLibrary() []*Genome {
	return d.bestGenomesLibrary
}

// Decode builds an executable network from a genome through the
// NetworkBuilder boundary, using the default Network implementation.
func Decode(g *Genome) *network.Network {
	net := network.NewNetwork()
	g.Genesis(net)
	return net
}

// Epoch evaluates every genome in the current population, updates best-ever
// and the best-genomes library, culls stagnant species, reproduces the next
// population and re-speciates it.
func (d *Driver) Epoch(evaluate EvaluatorFunc) error {
	neat.DebugLog(fmt.Sprintf("DRIVER: >>>>> Epoch %d start, population size %d", d.Generation, d.population.Size()))

	for _, g := range d.population.Genomes() {
		net := Decode(g)
		g.Fitness = evaluate(net)
	}

	champion := d.population.Champion()
	if d.bestEver == nil || champion.Fitness > d.bestEver.Fitness {
		neat.InfoLog(fmt.Sprintf("DRIVER: new best-ever fitness %f (genome [%d]) at generation %d", champion.Fitness, champion.Id, d.Generation))
		d.bestEver = champion.Duplicate(champion.Id)
		d.bestEver.Fitness = champion.Fitness
		d.bestEverAge = 0
	} else {
		d.bestEverAge++
		neat.DebugLog(fmt.Sprintf("DRIVER: no improvement over best-ever, age %d generations", d.bestEverAge))
	}
	d.updateBestGenomesLibrary(champion)

	for _, sp := range d.species {
		sp.UpdateStagnation(d.population)
	}
	d.cullStagnantSpecies(champion)
	neat.DebugLog(fmt.Sprintf("DRIVER: %d species survive stagnation cull", len(d.species)))

	total := 0.0
	for _, sp := range d.species {
		sp.AdjustFitnesses(d.population)
		total += sp.AdjustedFitnessSum
	}

	quotas := d.offspringQuotas(total, champion)

	var offspring []*Genome
	for id, sp := range d.species {
		children := sp.Reproduce(d.population, d.pool, d.opts, d.rng, quotas[id])
		offspring = append(offspring, children...)
	}
	neat.DebugLog(fmt.Sprintf("DRIVER: reproduced %d offspring across %d species", len(offspring), len(d.species)))

	newPop := NewPopulation()
	for _, g := range offspring {
		newPop.Add(g)
	}
	d.population = newPop

	d.speciate(d.population.Genomes())
	d.rotateRepresentants()
	d.adjustCompatibilityThreshold()

	d.Generation++
	neat.DebugLog(fmt.Sprintf("DRIVER: >>>>> Epoch %d complete, %d species, compat threshold %f", d.Generation-1, len(d.species), d.opts.CompatibilityThreshold))
	return nil
}

func (d *Driver) updateBestGenomesLibrary(champion *Genome) {
	for _, g := range d.bestGenomesLibrary {
		if g.StructurallyEqual(champion) {
			return
		}
	}
	entry := champion.Duplicate(champion.Id)
	entry.Fitness = champion.Fitness
	if len(d.bestGenomesLibrary) < d.opts.BestGenomesLibraryMaxSize {
		d.bestGenomesLibrary = append(d.bestGenomesLibrary, entry)
		return
	}
	worstIdx := 0
	for i, g := range d.bestGenomesLibrary {
		if g.Fitness < d.bestGenomesLibrary[worstIdx].Fitness {
			worstIdx = i
		}
	}
	if champion.Fitness > d.bestGenomesLibrary[worstIdx].Fitness {
		d.bestGenomesLibrary[worstIdx] = entry
	}
}

func (d *Driver) cullStagnantSpecies(champion *Genome) {
	champSpecies, _ := d.population.SpeciesOf(champion.Id)
	for id, sp := range d.species {
		if sp.IsStagnant(d.opts.SpeciesStagnationCap) && id != champSpecies {
			neat.WarnLog(fmt.Sprintf("DRIVER: species [%d] stagnated for %d generations, culling", id, sp.StagnationCounter))
			delete(d.species, id)
		}
	}
}

// offspringQuotas computes each surviving species' share of
// target_population_size, proportional to adjusted fitness, rounding the
// remainder onto the fittest species so quotas sum to the target. When the
// rounded quotas overshoot the target by more than the fittest species'
// own quota, that quota is clamped to zero and the sum exceeds the target.
func (d *Driver) offspringQuotas(totalAdjusted float64, champion *Genome) map[SpeciesId]int {
	champSpecies, _ := d.population.SpeciesOf(champion.Id)
	quotas := make(map[SpeciesId]int, len(d.species))
	sum := 0
	var fittest SpeciesId
	fittestSum := math.Inf(-1)
	for id, sp := range d.species {
		q := sp.OffspringQuota(totalAdjusted, d.opts.TargetPopulationSize, d.opts.SpeciesStagnationCap, id == champSpecies)
		quotas[id] = q
		sum += q
		if sp.AdjustedFitnessSum > fittestSum {
			fittestSum = sp.AdjustedFitnessSum
			fittest = id
		}
	}
	if len(quotas) > 0 {
		quotas[fittest] += d.opts.TargetPopulationSize - sum
		if quotas[fittest] < 0 {
			quotas[fittest] = 0
		}
	}
	return quotas
}

// speciate places every genome into the first existing species whose
// representant is compatible, or founds a new species. Species left with
// no members are dropped.
func (d *Driver) speciate(genomes []*Genome) {
	for id := range d.species {
		d.species[id].Members = nil
	}

	for _, g := range genomes {
		placed := false
		for _, id := range d.orderedSpeciesIds() {
			sp := d.species[id]
			if g.IsCompatible(sp.Representant, d.opts.DistanceCoefC1, d.opts.DistanceCoefC2, d.opts.DistanceCoefC3, d.opts.CompatibilityThreshold) {
				sp.AddMember(g.Id)
				d.population.AssignSpecies(g.Id, id)
				placed = true
				break
			}
		}
		if !placed {
			id := d.nextSpeciesId
			d.nextSpeciesId++
			sp := NewSpecies(id, g.Duplicate(g.Id))
			sp.AddMember(g.Id)
			d.species[id] = sp
			d.population.AssignSpecies(g.Id, id)
		}
	}

	for id, sp := range d.species {
		if len(sp.Members) == 0 {
			delete(d.species, id)
		}
	}
}

func (d *Driver) orderedSpeciesIds() []SpeciesId {
	ids := make([]SpeciesId, 0, len(d.species))
	for id := range d.species {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (d *Driver) rotateRepresentants() {
	for _, sp := range d.species {
		sp.Representant = sp.PickRepresentant(d.population, d.opts.RepresentantPolicy, d.rng).Duplicate(-1)
	}
}

// SpeciesStat summarizes one species for external statistics collection.
type SpeciesStat struct {
	Id          SpeciesId
	Age         int
	Size        int
	BestFitness float64
	Complexity  int
}

// SpeciesStats returns a summary of every current species, in ascending id
// order, for a caller building per-generation statistics (see neat/stats).
func (d *Driver) SpeciesStats() []SpeciesStat {
	out := make([]SpeciesStat, 0, len(d.species))
	for _, id := range d.orderedSpeciesIds() {
		sp := d.species[id]
		best := math.Inf(-1)
		complexity := 0
		for _, mid := range sp.Members {
			g := d.population.Get(mid)
			if g.Fitness > best {
				best = g.Fitness
				complexity = g.Complexity()
			}
		}
		out = append(out, SpeciesStat{Id: sp.Id, Age: sp.Age, Size: len(sp.Members), BestFitness: best, Complexity: complexity})
	}
	return out
}

// adjustCompatibilityThreshold nudges CompatibilityThreshold towards a
// species count near target_population_size/40 (the classic NEAT soft
// target) when dynamic_compat_threshold is enabled; otherwise the
// threshold is an immutable parameter.
func (d *Driver) adjustCompatibilityThreshold() {
	if !d.opts.DynamicCompatibilityThreshold {
		return
	}
	softTarget := d.opts.TargetPopulationSize / 40
	if softTarget < 1 {
		softTarget = 1
	}
	switch {
	case len(d.species) > softTarget:
		d.opts.CompatibilityThreshold += 0.3
	case len(d.species) < softTarget && d.opts.CompatibilityThreshold > 0.3:
		d.opts.CompatibilityThreshold -= 0.3
	}
}
