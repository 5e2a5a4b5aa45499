package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetwork_BiasPreallocated(t *testing.T) {
	n := NewNetwork()
	assert.Equal(t, NetNeuronId(0), n.BiasNeuronId())
	assert.Equal(t, 1, n.NodeCount())
	assert.Equal(t, 1.0, n.byId[n.BiasNeuronId()].GetActiveOut())
}

func TestNetwork_AddNeuronAddLink(t *testing.T) {
	n := NewNetwork()
	in1 := n.AddNeuron(InputNeuron)
	in2 := n.AddNeuron(InputNeuron)
	out := n.AddNeuron(OutputNeuron)

	n.AddLink(in1, out, 1.0)
	n.AddLink(in2, out, -1.0)
	n.AddLink(n.BiasNeuronId(), out, 0.5)

	assert.Equal(t, 4, n.NodeCount())
	assert.Equal(t, 3, n.LinkCount())
}

func TestNetwork_ActivateXORTopology(t *testing.T) {
	n := NewNetwork()
	in1 := n.AddNeuron(InputNeuron)
	in2 := n.AddNeuron(InputNeuron)
	hid := n.AddNeuron(HiddenNeuron)
	out := n.AddNeuron(OutputNeuron)

	n.AddLink(in1, hid, 1.0)
	n.AddLink(in2, hid, 1.0)
	n.AddLink(hid, out, 1.0)
	n.AddLink(n.BiasNeuronId(), out, -0.5)

	require.NoError(t, n.LoadSensors([]float64{1.0, 0.0}))
	ok, err := n.Activate()
	require.NoError(t, err)
	assert.True(t, ok)

	outputs := n.ReadOutputs()
	require.Len(t, outputs, 1)
	assert.Greater(t, outputs[0], 0.0)
	assert.Less(t, outputs[0], 1.0)
}

func TestNetwork_LoadSensorsWrongSize(t *testing.T) {
	n := NewNetwork()
	n.AddNeuron(InputNeuron)
	err := n.LoadSensors([]float64{1.0, 2.0})
	assert.ErrorIs(t, err, ErrUnsupportedSensorsArraySize)
}

func TestNetwork_FlushResetsActivation(t *testing.T) {
	n := NewNetwork()
	in := n.AddNeuron(InputNeuron)
	out := n.AddNeuron(OutputNeuron)
	n.AddLink(in, out, 1.0)

	require.NoError(t, n.LoadSensors([]float64{1.0}))
	_, err := n.Activate()
	require.NoError(t, err)
	assert.NotEqual(t, 0, n.byId[out].ActivationsCount)

	n.Flush()
	assert.EqualValues(t, 0, n.byId[out].ActivationsCount)
	assert.EqualValues(t, 0, n.byId[in].ActivationsCount)
}

func TestNetwork_MaxActivationDepth(t *testing.T) {
	n := NewNetwork()
	in := n.AddNeuron(InputNeuron)
	hid := n.AddNeuron(HiddenNeuron)
	out := n.AddNeuron(OutputNeuron)
	n.AddLink(in, hid, 1.0)
	n.AddLink(hid, out, 1.0)

	assert.Equal(t, 2, n.MaxActivationDepth())
}

func TestNetwork_RecurrentLinkDetected(t *testing.T) {
	n := NewNetwork()
	in := n.AddNeuron(InputNeuron)
	a := n.AddNeuron(HiddenNeuron)
	b := n.AddNeuron(HiddenNeuron)
	n.AddLink(in, a, 1.0)
	n.AddLink(a, b, 1.0)
	n.AddLink(b, a, 0.5) // closes a cycle back into a

	aNode := n.byId[a]
	require.Len(t, aNode.Incoming, 2)
	var sawRecurrent bool
	for _, l := range aNode.Incoming {
		if l.IsRecurrent {
			sawRecurrent = true
		}
	}
	assert.True(t, sawRecurrent)
}
