package genetics

import "math"

// matchedPair is one pair of genes sharing an innovation number, one from
// each parent, produced by mergeWalk.
type matchedPair struct {
	a, b *Gene
}

// mergeWalk walks two innovation-sorted gene lists in merge order,
// returning every matching pair plus the genes unique to each side. It is
// the shared primitive behind both distance computation and crossover.
func mergeWalk(a, b []*Gene) (matches []matchedPair, onlyA, onlyB []*Gene) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Innovation == b[j].Innovation:
			matches = append(matches, matchedPair{a[i], b[j]})
			i++
			j++
		case a[i].Innovation < b[j].Innovation:
			onlyA = append(onlyA, a[i])
			i++
		default:
			onlyB = append(onlyB, b[j])
			j++
		}
	}
	onlyA = append(onlyA, a[i:]...)
	onlyB = append(onlyB, b[j:]...)
	return matches, onlyA, onlyB
}

// splitDisjointExcess classifies genes unique to one parent as disjoint
// (innovation within the other parent's range) or excess (beyond it).
func splitDisjointExcess(unique []*Gene, otherMax InnovationNumber) (disjoint, excess []*Gene) {
	for _, gene := range unique {
		if gene.Innovation > otherMax {
			excess = append(excess, gene)
		} else {
			disjoint = append(disjoint, gene)
		}
	}
	return disjoint, excess
}

func maxInnovation(genes []*Gene) InnovationNumber {
	if len(genes) == 0 {
		return 0
	}
	return genes[len(genes)-1].Innovation
}

// Distance computes the compatibility distance between this genome and
// other: c1*excess/N + c2*disjoint/N + c3*avg_weight_diff, where N is the
// larger gene count. Genomes with at most 4 genes are never discriminated
// and yield distance 0.
func (g *Genome) Distance(other *Genome, c1, c2, c3 float64) float64 {
	n := len(g.Genes)
	if len(other.Genes) > n {
		n = len(other.Genes)
	}
	if n <= 4 {
		return 0
	}

	matches, onlyA, onlyB := mergeWalk(g.Genes, other.Genes)
	maxA, maxB := maxInnovation(g.Genes), maxInnovation(other.Genes)
	disjointA, excessA := splitDisjointExcess(onlyA, maxB)
	disjointB, excessB := splitDisjointExcess(onlyB, maxA)

	disjoint := len(disjointA) + len(disjointB)
	excess := len(excessA) + len(excessB)

	weightDiffSum := 0.0
	for _, m := range matches {
		weightDiffSum += math.Abs(m.a.Weight - m.b.Weight)
	}
	avgWeightDiff := 0.0
	if len(matches) > 0 {
		avgWeightDiff = weightDiffSum / float64(len(matches))
	}

	return c1*float64(excess)/float64(n) + c2*float64(disjoint)/float64(n) + c3*avgWeightDiff
}

// IsCompatible reports whether this genome and other belong in the same
// species under the given compatibility threshold.
func (g *Genome) IsCompatible(other *Genome, c1, c2, c3, threshold float64) bool {
	return g.Distance(other, c1, c2, c3) < threshold
}
