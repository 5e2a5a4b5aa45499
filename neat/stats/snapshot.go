package stats

import (
	"time"

	"github.com/sawndip/neatcore/neat/genetics"
)

// Snapshot captures one generation's population statistics: fitness, age
// and complexity per species, plus the generation's best-ever fitness and
// species count. A caller builds a []Snapshot across a run by calling
// NewSnapshot after every epoch; the engine never collects these itself.
type Snapshot struct {
	Generation int
	Executed   time.Time

	// Fitness/Age/Complexity hold one entry per species: the species'
	// best member's fitness, the species' age, and its best member's
	// enabled-gene count.
	Fitness    Floats
	Age        Floats
	Complexity Floats

	Diversity     int
	BestEverFitness float64
}

// NewSnapshot builds a Snapshot from the driver's state immediately after
// an Epoch call.
func NewSnapshot(d *genetics.Driver) Snapshot {
	speciesStats := d.SpeciesStats()
	s := Snapshot{
		Generation: d.Generation,
		Executed:   time.Now(),
		Fitness:    make(Floats, len(speciesStats)),
		Age:        make(Floats, len(speciesStats)),
		Complexity: make(Floats, len(speciesStats)),
		Diversity:  len(speciesStats),
	}
	for i, st := range speciesStats {
		s.Fitness[i] = st.BestFitness
		s.Age[i] = float64(st.Age)
		s.Complexity[i] = float64(st.Complexity)
	}
	if best := d.BestEver(); best != nil {
		s.BestEverFitness = best.Fitness
	}
	return s
}

// Average returns the mean fitness, age and complexity across species in
// this generation.
func (s Snapshot) Average() (fitness, age, complexity float64) {
	return s.Fitness.Mean(), s.Age.Mean(), s.Complexity.Mean()
}
