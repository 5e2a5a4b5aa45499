// Package network provides the minimal decoded-network representation that a
// Genome produces through the NetworkBuilder collaborator boundary, along
// with a default network capable of activating itself for fitness evaluation.
package network

import "errors"

var (
	// ErrNetExceededMaxActivationAttempts is raised when the maximal number
	// of network activation attempts is exceeded without every output
	// becoming active.
	ErrNetExceededMaxActivationAttempts = errors.New("maximal network activation attempts exceeded")
	// ErrUnsupportedSensorsArraySize is raised when the sensor slice handed
	// to LoadSensors doesn't match the network's input count.
	ErrUnsupportedSensorsArraySize = errors.New("the sensors array size is unsupported by the network")
	// ErrZeroActivationStepsRequested is raised when zero activation steps
	// are requested.
	ErrZeroActivationStepsRequested = errors.New("zero activation steps requested")
)

// NeuronKind is the kind of a decoded network neuron, as produced by
// add_neuron on the NetworkBuilder boundary.
type NeuronKind byte

const (
	// InputNeuron receives sensor values from the evaluator.
	InputNeuron NeuronKind = iota
	// OutputNeuron holds a value read back by the evaluator.
	OutputNeuron
	// HiddenNeuron is an internal neuron produced by a genome neuron gene.
	HiddenNeuron
	// BiasNeuron is the single pre-allocated constant-1.0 input.
	BiasNeuron
)

func (k NeuronKind) String() string {
	switch k {
	case InputNeuron:
		return "INPUT"
	case OutputNeuron:
		return "OUTPUT"
	case HiddenNeuron:
		return "HIDDEN"
	case BiasNeuron:
		return "BIAS"
	default:
		return "UNKNOWN"
	}
}

func (k NeuronKind) isSensor() bool {
	return k == InputNeuron || k == BiasNeuron
}

// NetNeuronId identifies a neuron within a decoded Network, as returned by
// NetworkBuilder.AddNeuron.
type NetNeuronId int

// NetworkBuilder is the collaborator boundary a Genome decodes itself
// through: it never touches network internals directly, only this
// interface. BiasNeuronId is pre-allocated by the builder's implementation
// before genome decoding begins.
type NetworkBuilder interface {
	// AddNeuron allocates a new network neuron of the given kind and
	// returns its id.
	AddNeuron(kind NeuronKind) NetNeuronId
	// AddLink adds a weighted connection between two previously allocated
	// neurons.
	AddLink(from, to NetNeuronId, weight float64)
	// BiasNeuronId returns the reserved id of the pre-allocated bias
	// neuron.
	BiasNeuronId() NetNeuronId
}
