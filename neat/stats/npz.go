package stats

import (
	"io"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// WriteNPZ dumps a run's generation history to an NPZ archive: per-epoch
// mean/variance of fitness, age and complexity, plus per-epoch diversity
// (species count) and the run's final best-ever fitness. This is a
// supplementary export path alongside the engine's required textual
// serialization - the engine never writes files on its own, a caller
// passes the snapshots and a writer explicitly.
func WriteNPZ(w io.Writer, history []Snapshot) error {
	epochFitness := mat.NewDense(len(history), 2, nil)    // mean, var
	epochAges := mat.NewDense(len(history), 2, nil)       // mean, var
	epochComplexity := mat.NewDense(len(history), 2, nil) // mean, var
	diversity := make([]float64, len(history))

	for i, snap := range history {
		fm, fv := snap.Fitness.MeanVariance()
		epochFitness.SetRow(i, []float64{fm, fv})
		am, av := snap.Age.MeanVariance()
		epochAges.SetRow(i, []float64{am, av})
		cm, cv := snap.Complexity.MeanVariance()
		epochComplexity.SetRow(i, []float64{cm, cv})
		diversity[i] = float64(snap.Diversity)
	}

	out := npz.NewWriter(w)
	if err := out.Write("epoch_fitness", epochFitness); err != nil {
		return err
	}
	if err := out.Write("epoch_ages", epochAges); err != nil {
		return err
	}
	if err := out.Write("epoch_complexity", epochComplexity); err != nil {
		return err
	}
	if err := out.Write("epoch_diversity", diversity); err != nil {
		return err
	}
	if len(history) > 0 {
		if err := out.Write("best_ever_fitness", history[len(history)-1].BestEverFitness); err != nil {
			return err
		}
	}
	return out.Close()
}
