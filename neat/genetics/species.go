package genetics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sawndip/neatcore/neat"
)

// Species is a cluster of genomes within compatibility distance of a shared
// representant. Species reference genomes by GenomeId, never by pointer;
// the representant is stored as a snapshot so the species outlives any one
// generation's population.
type Species struct {
	Id                  SpeciesId
	Representant        *Genome
	Members             []GenomeId
	Age                 int
	StagnationCounter   int
	BestFitnessEver     float64
	AdjustedFitnessSum  float64
}

// NewSpecies creates a species founded on the given representant snapshot.
func NewSpecies(id SpeciesId, representant *Genome) *Species {
	return &Species{
		Id:              id,
		Representant:    representant,
		BestFitnessEver: math.Inf(-1),
	}
}

// AddMember appends a genome to this species' member list.
func (s *Species) AddMember(id GenomeId) {
	s.Members = append(s.Members, id)
}

// AdjustFitnesses applies fitness sharing: every member's adjusted fitness
// is its raw fitness divided by the species size.
func (s *Species) AdjustFitnesses(pop *Population) {
	s.AdjustedFitnessSum = 0
	if len(s.Members) == 0 {
		return
	}
	share := float64(len(s.Members))
	for _, id := range s.Members {
		g := pop.Get(id)
		adjusted := g.Fitness / share
		pop.SetAdjustedFitness(id, adjusted)
		s.AdjustedFitnessSum += adjusted
	}
}

// UpdateStagnation refreshes best_fitness_ever_in_species and the
// stagnation counter from the current members' raw fitness.
func (s *Species) UpdateStagnation(pop *Population) {
	improved := false
	for _, id := range s.Members {
		if f := pop.Get(id).Fitness; f > s.BestFitnessEver {
			s.BestFitnessEver = f
			improved = true
		}
	}
	if improved {
		s.StagnationCounter = 0
	} else {
		s.StagnationCounter++
	}
	s.Age++
}

// IsStagnant reports whether this species has exceeded the configured
// stagnation cap.
func (s *Species) IsStagnant(cap int) bool {
	return s.StagnationCounter > cap
}

// OffspringQuota computes this species' share of target_population_size,
// proportional to its adjusted fitness sum among all species, rounded to
// the nearest integer. A stagnant species that doesn't hold the global
// champion gets zero.
func (s *Species) OffspringQuota(totalAdjustedAcrossAll float64, targetPopulationSize int, stagnationCap int, holdsChampion bool) int {
	if s.IsStagnant(stagnationCap) && !holdsChampion {
		return 0
	}
	if totalAdjustedAcrossAll <= 0 {
		return 0
	}
	share := s.AdjustedFitnessSum / totalAdjustedAcrossAll * float64(targetPopulationSize)
	return int(math.Round(share))
}

// Reproduce produces `quota` children for this species: the fittest member
// is copied unmodified as an elite when the quota allows it and the
// species is large enough; remaining offspring are drawn by fitness-biased
// parent selection, crossed over with probability p_crossover (else
// cloned), then mutated unless the child came from crossover and a fair
// coin says to skip mutation.
func (s *Species) Reproduce(pop *Population, pool *InnovationPool, opts *neat.Options, rng *rand.Rand, quota int) []*Genome {
	if quota <= 0 || len(s.Members) == 0 {
		neat.DebugLog(fmt.Sprintf("SPECIES: [%d] offspring quota %d, no reproduction this epoch", s.Id, quota))
		return nil
	}
	neat.DebugLog(fmt.Sprintf("SPECIES: [%d] reproducing %d offspring from %d members", s.Id, quota, len(s.Members)))

	members := make([]*Genome, len(s.Members))
	for i, id := range s.Members {
		members[i] = pop.Get(id)
	}
	sortByFitnessDesc(members)

	var children []*Genome
	if len(members) >= opts.EliteThreshold {
		neat.DebugLog(fmt.Sprintf("SPECIES: [%d] ---> elite champion copied unmodified", s.Id))
		elite := members[0].Duplicate(0)
		elite.Fitness = members[0].Fitness
		children = append(children, elite)
	}

	for len(children) < quota {
		var child *Genome
		fromCrossover := false
		if rng.Float64() < opts.ProbCrossover && len(members) > 1 {
			neat.DebugLog(fmt.Sprintf("SPECIES: [%d] ---> reproduce by crossover", s.Id))
			a := pickByFitness(members, rng)
			b := pickByFitness(members, rng)
			for b == a && len(members) > 1 {
				b = pickByFitness(members, rng)
			}
			child = a.Crossover(0, b, a.Fitness, b.Fitness, opts, rng)
			fromCrossover = true
		} else {
			neat.DebugLog(fmt.Sprintf("SPECIES: [%d] ---> reproduce by cloning", s.Id))
			parent := pickByFitness(members, rng)
			child = parent.Duplicate(0)
		}

		if !fromCrossover || rng.Intn(2) == 0 {
			child.Mutate(opts, pool, rng)
		}
		children = append(children, child)
	}

	return children[:quota]
}

// PickRepresentant returns the genome to serve as next generation's
// compatibility probe, per the configured policy.
func (s *Species) PickRepresentant(pop *Population, policy neat.RepresentantPolicy, rng *rand.Rand) *Genome {
	members := make([]*Genome, len(s.Members))
	for i, id := range s.Members {
		members[i] = pop.Get(id)
	}
	if policy == neat.RepresentantChampion {
		best := members[0]
		for _, g := range members[1:] {
			if g.Fitness > best.Fitness {
				best = g
			}
		}
		return best
	}
	return members[rng.Intn(len(members))]
}

func sortByFitnessDesc(genomes []*Genome) {
	for i := 1; i < len(genomes); i++ {
		for j := i; j > 0 && genomes[j-1].Fitness < genomes[j].Fitness; j-- {
			genomes[j-1], genomes[j] = genomes[j], genomes[j-1]
		}
	}
}

// pickByFitness draws a genome biased towards higher raw fitness via a
// roulette wheel over shifted-nonnegative fitness values.
func pickByFitness(genomes []*Genome, rng *rand.Rand) *Genome {
	min := genomes[0].Fitness
	for _, g := range genomes {
		if g.Fitness < min {
			min = g.Fitness
		}
	}
	shift := 0.0
	if min < 0 {
		shift = -min
	}
	total := 0.0
	for _, g := range genomes {
		total += g.Fitness + shift + 1e-9
	}
	throw := rng.Float64() * total
	acc := 0.0
	for _, g := range genomes {
		acc += g.Fitness + shift + 1e-9
		if throw <= acc {
			return g
		}
	}
	return genomes[len(genomes)-1]
}
