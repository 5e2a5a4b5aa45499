package genetics

import (
	"fmt"
	"math/rand"

	"github.com/sawndip/neatcore/neat"
	neatmath "github.com/sawndip/neatcore/neat/math"
)

// smallRandomWeight draws an initial connection weight uniformly from
// [-1, 1], used when founding the seed genome.
func smallRandomWeight(rng *rand.Rand) float64 {
	return rng.Float64()*2.0 - 1.0
}

// perturb draws a value uniformly from [-power, power].
func perturb(rng *rand.Rand, power float64) float64 {
	return (rng.Float64()*2.0 - 1.0) * power
}

// Mutate applies a single structural or non-structural mutation, chosen by
// weighted sampling over opts.MutationWeights. If the chosen operator finds
// no legal target, up to two further attempts are made with fresh draws.
func (g *Genome) Mutate(opts *neat.Options, pool *InnovationPool, rng *rand.Rand) {
	for attempt := 0; attempt < 3; attempt++ {
		kind := neat.MutationKind(neatmath.SingleRouletteThrow(rng, opts.MutationWeights[:]))
		if g.applyMutation(kind, opts, pool, rng) {
			return
		}
		neat.DebugLog(fmt.Sprintf("GENOME: mutation attempt %d found no legal target for genome [%d], kind %d", attempt, g.Id, kind))
	}
	neat.WarnLog(fmt.Sprintf("GENOME: mutation exhausted all attempts for genome [%d], leaving it unchanged", g.Id))
}

func (g *Genome) applyMutation(kind neat.MutationKind, opts *neat.Options, pool *InnovationPool, rng *rand.Rand) bool {
	switch kind {
	case neat.MutationAddLink:
		neat.DebugLog("GENOME: ---> mutateAddLink")
		return g.mutateAddLink(opts, pool, rng)
	case neat.MutationAddNeuron:
		neat.DebugLog("GENOME: ---> mutateAddNeuron")
		return g.mutateAddNeuron(pool, rng)
	case neat.MutationOneWeight:
		neat.DebugLog("GENOME: ---> mutateOneWeight")
		return g.mutateOneWeight(opts, rng)
	case neat.MutationAllWeights:
		neat.DebugLog("GENOME: ---> mutateAllWeights")
		return g.mutateAllWeights(opts, rng)
	case neat.MutationResetWeights:
		neat.DebugLog("GENOME: ---> mutateResetWeights")
		return g.mutateResetWeights(opts, rng)
	case neat.MutationRemoveGene:
		neat.DebugLog("GENOME: ---> mutateRemoveGene")
		return g.mutateRemoveGene(rng)
	case neat.MutationReenableGene:
		neat.DebugLog("GENOME: ---> mutateReenableGene")
		return g.mutateReenableGene(rng)
	case neat.MutationToggleEnable:
		neat.DebugLog("GENOME: ---> mutateToggleEnable")
		return g.mutateToggleEnable(rng)
	default:
		return false
	}
}

// mutateAddLink chooses a source neuron uniformly from known neurons
// (including inputs/bias) and a destination uniformly from non-input,
// non-bias known neurons. Fails if that link already exists in this
// genome.
func (g *Genome) mutateAddLink(opts *neat.Options, pool *InnovationPool, rng *rand.Rand) bool {
	sources := g.sortedKnownNeurons()
	destinations := make([]NeuronId, 0, len(sources))
	for _, n := range sources {
		if int(n) > g.NumInputs { // excludes bias (0) and inputs (1..NumInputs)
			destinations = append(destinations, n)
		}
	}
	if len(destinations) == 0 {
		return false
	}

	from := sources[rng.Intn(len(sources))]
	to := destinations[rng.Intn(len(destinations))]
	if g.HasLink(from, to) {
		return false
	}

	var gene *Gene
	if canonical, ok := pool.FindGene(from, to); ok {
		neat.InfoLog(
			fmt.Sprintf("GENOME: mutate add link innovation (%d -> %d) already registered, reusing innovation [%d] for genome [%d]",
				from, to, canonical.Innovation, g.Id))
		gene = NewGene(canonical.Innovation, from, to, perturb(rng, opts.InitialWeightPerturbation), true)
	} else {
		innov := pool.NextInnovation()
		gene = NewGene(innov, from, to, perturb(rng, opts.InitialWeightPerturbation), true)
		pool.RegisterGene(gene)
		pool.RegisterInnovation(&InnovationRecord{Kind: NewLinkInnovation, From: from, To: to, Innovation: innov})
	}
	g.addGene(gene)
	return true
}

// mutateAddNeuron picks an enabled gene uniformly, disables it, and splits
// it with a freshly allocated (or reused, if this exact split has already
// occurred in the run) hidden neuron.
func (g *Genome) mutateAddNeuron(pool *InnovationPool, rng *rand.Rand) bool {
	enabled := g.enabledGenes()
	if len(enabled) == 0 {
		return false
	}
	split := enabled[rng.Intn(len(enabled))]
	split.Enabled = false

	var innovIn, innovOut InnovationNumber
	var newNeuron NeuronId
	if rec, ok := pool.FindInnovation(NewNeuronInnovation, split.From, split.To); ok {
		neat.InfoLog(
			fmt.Sprintf("GENOME: mutate add neuron split of (%d -> %d) already registered, reusing neuron [%d] for genome [%d]",
				split.From, split.To, rec.NewNeuronId, g.Id))
		innovIn, innovOut, newNeuron = rec.InnovationIn, rec.InnovationOut, rec.NewNeuronId
	} else {
		newNeuron = pool.NextHiddenNeuron()
		innovIn = pool.NextInnovation()
		innovOut = pool.NextInnovation()
		pool.RegisterInnovation(&InnovationRecord{
			Kind: NewNeuronInnovation, From: split.From, To: split.To,
			InnovationIn: innovIn, InnovationOut: innovOut, NewNeuronId: newNeuron,
		})
	}

	geneIn := NewGene(innovIn, split.From, newNeuron, split.Weight, true)
	geneOut := NewGene(innovOut, newNeuron, split.To, split.Weight, true)
	pool.RegisterGene(geneIn)
	pool.RegisterGene(geneOut)
	g.addGene(geneIn)
	g.addGene(geneOut)
	return true
}

func (g *Genome) mutateOneWeight(opts *neat.Options, rng *rand.Rand) bool {
	if len(g.Genes) == 0 {
		return false
	}
	gene := g.Genes[rng.Intn(len(g.Genes))]
	gene.Weight += perturb(rng, opts.WeightMutationPower)
	return true
}

func (g *Genome) mutateAllWeights(opts *neat.Options, rng *rand.Rand) bool {
	for _, gene := range g.Genes {
		gene.Weight += perturb(rng, opts.WeightMutationPower)
	}
	return true
}

func (g *Genome) mutateResetWeights(opts *neat.Options, rng *rand.Rand) bool {
	for _, gene := range g.Genes {
		gene.Weight = perturb(rng, opts.InitialWeightPerturbation)
	}
	return true
}

func (g *Genome) mutateRemoveGene(rng *rand.Rand) bool {
	if len(g.Genes) == 0 {
		return false
	}
	i := rng.Intn(len(g.Genes))
	g.Genes = append(g.Genes[:i], g.Genes[i+1:]...)
	return true
}

func (g *Genome) mutateReenableGene(rng *rand.Rand) bool {
	disabled := g.disabledGenes()
	if len(disabled) == 0 {
		return false
	}
	disabled[rng.Intn(len(disabled))].Enabled = true
	return true
}

func (g *Genome) mutateToggleEnable(rng *rand.Rand) bool {
	if len(g.Genes) == 0 {
		return false
	}
	gene := g.Genes[rng.Intn(len(g.Genes))]
	gene.Enabled = !gene.Enabled
	return true
}

func (g *Genome) enabledGenes() []*Gene {
	var out []*Gene
	for _, gene := range g.Genes {
		if gene.Enabled {
			out = append(out, gene)
		}
	}
	return out
}

func (g *Genome) disabledGenes() []*Gene {
	var out []*Gene
	for _, gene := range g.Genes {
		if !gene.Enabled {
			out = append(out, gene)
		}
	}
	return out
}

func (g *Genome) sortedKnownNeurons() []NeuronId {
	out := make([]NeuronId, 0, len(g.KnownNeurons))
	for n := range g.KnownNeurons {
		out = append(out, n)
	}
	// Insertion sort: known-neuron sets stay small relative to population
	// size, and callers need a stable, deterministic ordering for sampling.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
