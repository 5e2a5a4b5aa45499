package genetics

import (
	"math/rand"

	"github.com/sawndip/neatcore/neat"
	neatmath "github.com/sawndip/neatcore/neat/math"
)

// Crossover produces a child genome from this genome and other, chosen by
// weighted sampling over opts.CrossoverWeights among the three variants.
// fitnessSelf/fitnessOther determine which parent is "fitter" for
// disjoint/excess inheritance.
func (g *Genome) Crossover(childId GenomeId, other *Genome, fitnessSelf, fitnessOther float64, opts *neat.Options, rng *rand.Rand) *Genome {
	switch neat.CrossoverKind(neatmath.SingleRouletteThrow(rng, opts.CrossoverWeights[:])) {
	case neat.CrossoverMultipointRnd:
		return g.crossoverMultipoint(childId, other, fitnessSelf, fitnessOther, opts, rng, matchPickRandom)
	case neat.CrossoverMultipointAvg:
		return g.crossoverMultipoint(childId, other, fitnessSelf, fitnessOther, opts, rng, matchPickAverage)
	default:
		return g.crossoverMultipoint(childId, other, fitnessSelf, fitnessOther, opts, rng, matchPickFitter)
	}
}

// matchPicker decides the gene a matching innovation contributes to the
// child, given the gene from each parent and which parent is fitter
// (fitterIsA == true means g is the fitter parent).
type matchPicker func(rng *rand.Rand, a, b *Gene, fitterIsA bool) *Gene

func matchPickFitter(_ *rand.Rand, a, b *Gene, fitterIsA bool) *Gene {
	if fitterIsA {
		return a
	}
	return b
}

func matchPickRandom(rng *rand.Rand, a, b *Gene, _ bool) *Gene {
	if rng.Intn(2) == 0 {
		return a
	}
	return b
}

func matchPickAverage(_ *rand.Rand, a, b *Gene, _ bool) *Gene {
	avg := a.Duplicate()
	avg.Weight = (a.Weight + b.Weight) / 2.0
	return avg
}

// crossoverMultipoint is the shared body of the three crossover variants:
// matching genes are resolved by pick; disjoint/excess are inherited from
// the fitter parent only, or from both when fitness is tied.
func (g *Genome) crossoverMultipoint(childId GenomeId, other *Genome, fitnessSelf, fitnessOther float64, opts *neat.Options, rng *rand.Rand, pick matchPicker) *Genome {
	matches, onlyA, onlyB := mergeWalk(g.Genes, other.Genes)
	fitterIsA := fitnessSelf >= fitnessOther
	tied := fitnessSelf == fitnessOther

	child := NewGenome(childId, g.NumInputs, g.NumOutputs)

	for _, m := range matches {
		src := pick(rng, m.a, m.b, fitterIsA)
		child.addGene(g.inheritGene(src, m.a, m.b, opts, rng))
	}

	switch {
	case tied:
		for _, gene := range onlyA {
			child.addGene(g.inheritGene(gene, gene, gene, opts, rng))
		}
		for _, gene := range onlyB {
			child.addGene(g.inheritGene(gene, gene, gene, opts, rng))
		}
	case fitterIsA:
		for _, gene := range onlyA {
			child.addGene(g.inheritGene(gene, gene, gene, opts, rng))
		}
	default:
		for _, gene := range onlyB {
			child.addGene(g.inheritGene(gene, gene, gene, opts, rng))
		}
	}

	return child
}

// inheritGene clones src for the child, applying the p_inherit_disabled /
// p_reenable rule: the child gene is disabled with probability
// p_inherit_disabled if it was disabled in either contributing parent copy,
// else enabled; a disabled inherited gene is then reenabled with
// probability p_reenable.
func (g *Genome) inheritGene(src, fromA, fromB *Gene, opts *neat.Options, rng *rand.Rand) *Gene {
	child := src.Duplicate()
	disabledInEither := !fromA.Enabled || !fromB.Enabled
	if disabledInEither {
		child.Enabled = rng.Float64() >= opts.ProbInheritDisabled
		if !child.Enabled && rng.Float64() < opts.ProbReenable {
			child.Enabled = true
		}
	} else {
		child.Enabled = true
	}
	return child
}
