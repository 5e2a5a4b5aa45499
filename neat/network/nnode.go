package network

import (
	"fmt"

	neatmath "github.com/sawndip/neatcore/neat/math"
)

// NNode is a single neuron or sensor of a decoded Network. Sensors are
// loaded externally by the evaluator; neurons accumulate incoming activation
// and squash it through the network's fixed steepened-sigmoid activation.
type NNode struct {
	Id   NetNeuronId
	Kind NeuronKind

	Activation       float64
	ActivationsCount int32
	ActivationSum    float64

	Incoming []*Link
	Outgoing []*Link

	visited bool

	lastActivation  float64
	lastActivation2 float64

	isActive bool
}

// NewNNode creates a new node of the given kind with the given id.
func NewNNode(id NetNeuronId, kind NeuronKind) *NNode {
	return &NNode{
		Id:       id,
		Kind:     kind,
		Incoming: make([]*Link, 0),
		Outgoing: make([]*Link, 0),
	}
}

func (n *NNode) setActivation(input float64) {
	n.saveActivations()
	n.Activation = input
	n.ActivationsCount++
}

func (n *NNode) saveActivations() {
	n.lastActivation2 = n.lastActivation
	n.lastActivation = n.Activation
}

// GetActiveOut returns the node's activation for the current step, or 0 if
// it has never activated.
func (n *NNode) GetActiveOut() float64 {
	if n.ActivationsCount > 0 {
		return n.Activation
	}
	return 0.0
}

// IsSensor returns true for input and bias neurons.
func (n *NNode) IsSensor() bool {
	return n.Kind.isSensor()
}

// IsNeuron returns true for hidden and output neurons.
func (n *NNode) IsNeuron() bool {
	return n.Kind == HiddenNeuron || n.Kind == OutputNeuron
}

// SensorLoad sets a sensor's value for the current time step. Returns false
// if the node is not a sensor.
func (n *NNode) SensorLoad(load float64) bool {
	if !n.IsSensor() {
		return false
	}
	n.saveActivations()
	n.ActivationsCount++
	n.Activation = load
	return true
}

// ConnectFrom creates a link from `in` to this node, registering it on both
// nodes' incoming/outgoing lists.
func (n *NNode) ConnectFrom(in *NNode, weight float64) *Link {
	recurrent := in.dependsOn(n, make(map[NetNeuronId]bool))
	link := NewLink(weight, in, n, recurrent)
	n.Incoming = append(n.Incoming, link)
	in.Outgoing = append(in.Outgoing, link)
	return link
}

// dependsOn reports whether this node's activation (transitively, through
// non-recurrent links only) depends on target - i.e. whether a new link
// target -> n would close a cycle and so must be marked recurrent.
func (n *NNode) dependsOn(target *NNode, seen map[NetNeuronId]bool) bool {
	if seen[n.Id] {
		return false
	}
	seen[n.Id] = true
	if n.Id == target.Id {
		return true
	}
	for _, l := range n.Incoming {
		if l.IsRecurrent {
			continue
		}
		if l.InNode.dependsOn(target, seen) {
			return true
		}
	}
	return false
}

// Flushback resets this node's activation state between evaluations.
func (n *NNode) Flushback() {
	n.ActivationsCount = 0
	n.Activation = 0
	n.lastActivation = 0
	n.lastActivation2 = 0
	n.isActive = false
	n.visited = false
}

// Depth finds the greatest activation depth reachable backwards from this
// node, used to size the number of activation steps a network needs.
func (n *NNode) Depth(d, maxDepth int) int {
	if maxDepth > 0 && d > maxDepth {
		return maxDepth
	}
	n.visited = true
	if n.IsSensor() {
		return d
	}
	max := d
	for _, l := range n.Incoming {
		if l.InNode.visited {
			continue
		}
		if cur := l.InNode.Depth(d+1, maxDepth); cur > max {
			max = cur
		}
	}
	return max
}

func (n *NNode) activate() {
	n.setActivation(neatmath.Activate(n.ActivationSum))
}

func (n *NNode) String() string {
	active := "active"
	if !n.isActive {
		active = "inactive"
	}
	return fmt.Sprintf("(%s id:%d, %s -> step: %d = %.3f)", n.Kind, n.Id, active, n.ActivationsCount, n.Activation)
}
