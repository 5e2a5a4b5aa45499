package neat

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoadYAMLOptions loads NEAT options encoded as a YAML document.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	opts := *NewDefaultOptions()
	if err = yaml.Unmarshal(content, &opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}

	if opts.LogLevel == "" {
		opts.LogLevel = string(LogLevelInfo)
	}
	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return &opts, nil
}

// LoadNeatOptions loads NEAT options from the classic line-oriented
// ".neat" plain text format: `<name> <value>` pairs, one per line.
func LoadNeatOptions(r io.Reader) (*Options, error) {
	c := NewDefaultOptions()
	var name string
	var param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch name {
		case "num_inputs":
			c.NumInputs = cast.ToInt(param)
		case "num_outputs":
			c.NumOutputs = cast.ToInt(param)
		case "initial_population_size":
			c.InitialPopulationSize = cast.ToInt(param)
		case "target_population_size":
			c.TargetPopulationSize = cast.ToInt(param)
		case "compat_threshold":
			c.CompatibilityThreshold = cast.ToFloat64(param)
		case "dynamic_compat_threshold":
			c.DynamicCompatibilityThreshold = cast.ToBool(param)
		case "distance_coef_c1":
			c.DistanceCoefC1 = cast.ToFloat64(param)
		case "distance_coef_c2":
			c.DistanceCoefC2 = cast.ToFloat64(param)
		case "distance_coef_c3":
			c.DistanceCoefC3 = cast.ToFloat64(param)
		case "species_stagnation_cap":
			c.SpeciesStagnationCap = cast.ToInt(param)
		case "elite_threshold":
			c.EliteThreshold = cast.ToInt(param)
		case "initial_weight_perturbation":
			c.InitialWeightPerturbation = cast.ToFloat64(param)
		case "weight_mutation_power":
			c.WeightMutationPower = cast.ToFloat64(param)
		case "p_crossover":
			c.ProbCrossover = cast.ToFloat64(param)
		case "p_inherit_disabled":
			c.ProbInheritDisabled = cast.ToFloat64(param)
		case "p_reenable":
			c.ProbReenable = cast.ToFloat64(param)
		case "best_genomes_library_max_size":
			c.BestGenomesLibraryMaxSize = cast.ToInt(param)
		case "log_level":
			c.LogLevel = param
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}

	if err := InitLogger(c.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadOptionsFromFile reads NEAT options from the given path, resolving the
// encoding (YAML vs. the plain ".neat" format) from the file extension.
func ReadOptionsFromFile(configFilePath string) (*Options, error) {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer configFile.Close()

	fileName := configFile.Name()
	if strings.HasSuffix(fileName, "yml") || strings.HasSuffix(fileName, "yaml") {
		return LoadYAMLOptions(configFile)
	}
	return LoadNeatOptions(configFile)
}
