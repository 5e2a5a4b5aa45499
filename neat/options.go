package neat

import (
	"fmt"

	"github.com/pkg/errors"
)

// MutationKind enumerates the structural and non-structural mutation
// operators a Genome can apply, in the order spec.md §4.2 lists them.
type MutationKind int

const (
	MutationAddLink MutationKind = iota
	MutationAddNeuron
	MutationOneWeight
	MutationAllWeights
	MutationResetWeights
	MutationRemoveGene
	MutationReenableGene
	MutationToggleEnable
	numMutationKinds
)

// CrossoverKind enumerates the three crossover variants of spec.md §4.2.
type CrossoverKind int

const (
	CrossoverMultipointBest CrossoverKind = iota
	CrossoverMultipointRnd
	CrossoverMultipointAvg
	numCrossoverKinds
)

// RepresentantPolicy controls how a species picks the representant genome
// used as the compatibility probe for the next generation.
type RepresentantPolicy byte

const (
	// RepresentantRandom picks a uniformly random current member.
	RepresentantRandom RepresentantPolicy = iota
	// RepresentantChampion keeps the species' fittest member as representant.
	RepresentantChampion
)

// Options carries every tunable parameter of the NEAT engine. It is the
// single configuration record threaded into the driver, the genome
// operators and species reproduction - there is no other source of tuning
// state.
type Options struct {
	// Population shape
	NumInputs             int `yaml:"num_inputs"`
	NumOutputs            int `yaml:"num_outputs"`
	InitialPopulationSize int `yaml:"initial_population_size"`
	TargetPopulationSize  int `yaml:"target_population_size"`

	// Compatibility / speciation
	CompatibilityThreshold        float64 `yaml:"compat_threshold"`
	DynamicCompatibilityThreshold bool    `yaml:"dynamic_compat_threshold"`
	DistanceCoefC1                float64 `yaml:"distance_coef_c1"`
	DistanceCoefC2                float64 `yaml:"distance_coef_c2"`
	DistanceCoefC3                float64 `yaml:"distance_coef_c3"`
	SpeciesStagnationCap          int                `yaml:"species_stagnation_cap"`
	EliteThreshold                int                `yaml:"elite_threshold"`
	RepresentantPolicy            RepresentantPolicy `yaml:"-"`

	// Mutation operator selection weights, indexed by MutationKind
	MutationWeights [numMutationKinds]float64 `yaml:"mutation_weights"`
	// Crossover variant selection weights, indexed by CrossoverKind
	CrossoverWeights [numCrossoverKinds]float64 `yaml:"crossover_weights"`

	InitialWeightPerturbation float64 `yaml:"initial_weight_perturbation"`
	WeightMutationPower       float64 `yaml:"weight_mutation_power"`

	ProbCrossover       float64 `yaml:"p_crossover"`
	ProbInheritDisabled float64 `yaml:"p_inherit_disabled"`
	ProbReenable        float64 `yaml:"p_reenable"`

	BestGenomesLibraryMaxSize int `yaml:"best_genomes_library_max_size"`

	// LogLevel is applied via InitLogger when options are loaded from a file.
	LogLevel string `yaml:"log_level"`
}

// NewDefaultOptions returns Options populated with the classic NEAT
// defaults used throughout the testable-properties scenarios in spec.md.
func NewDefaultOptions() *Options {
	o := &Options{
		InitialPopulationSize:         150,
		TargetPopulationSize:          150,
		CompatibilityThreshold:        3.0,
		DynamicCompatibilityThreshold: false,
		DistanceCoefC1:                1.0,
		DistanceCoefC2:                1.0,
		DistanceCoefC3:                0.4,
		SpeciesStagnationCap:          15,
		EliteThreshold:                5,
		RepresentantPolicy:            RepresentantRandom,
		InitialWeightPerturbation:     1.0,
		WeightMutationPower:           2.5,
		ProbCrossover:                 0.75,
		ProbInheritDisabled:           0.75,
		ProbReenable:                  0.25,
		BestGenomesLibraryMaxSize:     10,
		LogLevel:                      string(LogLevelInfo),
	}
	o.MutationWeights = [numMutationKinds]float64{
		MutationAddLink:      0.10,
		MutationAddNeuron:    0.06,
		MutationOneWeight:    0.30,
		MutationAllWeights:   0.20,
		MutationResetWeights: 0.02,
		MutationRemoveGene:   0.05,
		MutationReenableGene: 0.05,
		MutationToggleEnable: 0.05,
	}
	o.CrossoverWeights = [numCrossoverKinds]float64{
		CrossoverMultipointBest: 0.5,
		CrossoverMultipointRnd:  0.3,
		CrossoverMultipointAvg:  0.2,
	}
	return o
}

// Validate checks that the configuration is usable: it rejects zero or
// negative input/output counts, population sizes and compatibility
// threshold, the configuration errors the core surfaces at construction
// time.
func (o *Options) Validate() error {
	if o.NumInputs <= 0 {
		return errors.New("invalid NEAT options: number_of_inputs must be positive")
	}
	if o.NumOutputs <= 0 {
		return errors.New("invalid NEAT options: number_of_outputs must be positive")
	}
	if o.InitialPopulationSize <= 0 {
		return errors.New("invalid NEAT options: initial_population_size must be positive")
	}
	if o.TargetPopulationSize <= 0 {
		return errors.New("invalid NEAT options: target_population_size must be positive")
	}
	if o.CompatibilityThreshold <= 0 {
		return errors.New("invalid NEAT options: compat_threshold must be positive")
	}
	return nil
}

func (o *Options) String() string {
	return fmt.Sprintf("Options{inputs: %d, outputs: %d, pop: %d/%d, compat: %.3f}",
		o.NumInputs, o.NumOutputs, o.InitialPopulationSize, o.TargetPopulationSize, o.CompatibilityThreshold)
}
