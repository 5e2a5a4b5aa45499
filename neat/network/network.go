package network

import "fmt"

// Network is the decoded, executable form of a Genome: a collection of
// neurons connected by weighted links, built exclusively through the
// NetworkBuilder boundary during genome decoding (see genetics.Genome
// .Genesis). A bias neuron is always pre-allocated at construction time.
type Network struct {
	nodes   []*NNode
	byId    map[NetNeuronId]*NNode
	inputs  []*NNode
	outputs []*NNode
	bias    *NNode
}

// NewNetwork creates an empty network with its bias neuron pre-allocated at
// the reserved id 0, ready to be populated through AddNeuron/AddLink.
func NewNetwork() *Network {
	n := &Network{
		byId: make(map[NetNeuronId]*NNode),
	}
	bias := NewNNode(0, BiasNeuron)
	bias.SensorLoad(1.0)
	n.nodes = append(n.nodes, bias)
	n.byId[bias.Id] = bias
	n.bias = bias
	return n
}

// AddNeuron implements NetworkBuilder.
func (n *Network) AddNeuron(kind NeuronKind) NetNeuronId {
	id := NetNeuronId(len(n.nodes))
	node := NewNNode(id, kind)
	n.nodes = append(n.nodes, node)
	n.byId[id] = node
	switch kind {
	case InputNeuron:
		n.inputs = append(n.inputs, node)
	case OutputNeuron:
		n.outputs = append(n.outputs, node)
	}
	return id
}

// AddLink implements NetworkBuilder.
func (n *Network) AddLink(from, to NetNeuronId, weight float64) {
	inNode, outNode := n.byId[from], n.byId[to]
	outNode.ConnectFrom(inNode, weight)
}

// BiasNeuronId implements NetworkBuilder.
func (n *Network) BiasNeuronId() NetNeuronId {
	return n.bias.Id
}

// AllNodes returns every neuron of this network, bias first.
func (n *Network) AllNodes() []*NNode {
	return n.nodes
}

// NodeCount returns the total number of neurons in this network.
func (n *Network) NodeCount() int {
	return len(n.nodes)
}

// LinkCount returns the total number of links in this network.
func (n *Network) LinkCount() int {
	count := 0
	for _, node := range n.nodes {
		count += len(node.Incoming)
	}
	return count
}

// Complexity is the sum of node and link counts, used as a genome
// complexity proxy for statistics.
func (n *Network) Complexity() int {
	return n.NodeCount() + n.LinkCount()
}

// Flush resets every node's activation state so the network can be reused
// for a fresh evaluation; the bias neuron is reloaded with 1.0.
func (n *Network) Flush() {
	for _, node := range n.nodes {
		node.Flushback()
	}
	n.bias.SensorLoad(1.0)
}

// LoadSensors loads the given values into the network's input neurons, in
// the order they were added via AddNeuron(InputNeuron). The bias neuron is
// always held at 1.0 independently of this call.
func (n *Network) LoadSensors(inputs []float64) error {
	if len(inputs) != len(n.inputs) {
		return ErrUnsupportedSensorsArraySize
	}
	for i, node := range n.inputs {
		node.SensorLoad(inputs[i])
	}
	return nil
}

// ReadOutputs returns the current activation of every output neuron, in the
// order they were added via AddNeuron(OutputNeuron).
func (n *Network) ReadOutputs() []float64 {
	out := make([]float64, len(n.outputs))
	for i, node := range n.outputs {
		out[i] = node.Activation
	}
	return out
}

// outputIsOff reports whether at least one output neuron has never
// activated.
func (n *Network) outputIsOff() bool {
	for _, node := range n.outputs {
		if node.ActivationsCount == 0 {
			return true
		}
	}
	return false
}

// ActivateSteps runs up to maxSteps activation passes - propagating signal
// one layer further each pass - until every output neuron has activated at
// least once.
func (n *Network) ActivateSteps(maxSteps int) (bool, error) {
	if maxSteps == 0 {
		return false, ErrZeroActivationStepsRequested
	}
	oneTime := false
	abortCount := 0

	for n.outputIsOff() || !oneTime {
		if abortCount >= maxSteps {
			return false, ErrNetExceededMaxActivationAttempts
		}

		for _, node := range n.nodes {
			if !node.IsNeuron() {
				continue
			}
			node.ActivationSum = 0.0
			for _, link := range node.Incoming {
				addAmount := link.Weight * link.InNode.GetActiveOut()
				if link.InNode.isActive || link.InNode.IsSensor() {
					node.isActive = true
				}
				node.ActivationSum += addAmount
			}
		}

		for _, node := range n.nodes {
			if node.IsNeuron() && node.isActive {
				node.activate()
			}
		}

		oneTime = true
		abortCount++
	}
	return true, nil
}

// Activate activates the network using a step budget sized to the network's
// own maximal activation depth, so recurrent topologies still converge.
func (n *Network) Activate() (bool, error) {
	depth := n.MaxActivationDepth()
	if depth < 1 {
		depth = 1
	}
	return n.ActivateSteps(depth + 1)
}

// MaxActivationDepth returns the greatest depth NNode.Depth finds walking
// backwards over incoming links (recurrent ones included, each node visited
// at most once per output) from any output neuron, used to size the
// activation step budget.
func (n *Network) MaxActivationDepth() int {
	for _, node := range n.nodes {
		node.visited = false
	}
	max := 0
	for _, out := range n.outputs {
		if d := out.Depth(0, len(n.nodes)+1); d > max {
			max = d
		}
		for _, node := range n.nodes {
			node.visited = false
		}
	}
	return max
}

func (n *Network) String() string {
	return fmt.Sprintf("Network{nodes: %d, links: %d}", n.NodeCount(), n.LinkCount())
}
