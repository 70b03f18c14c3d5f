package network

import "math"

// Gradient is the steepness of the activation sigmoid.
const Gradient = 6.0

// Optional is a float64 that may be unset.
type Optional struct {
	Value float64
	Set   bool
}

// Some returns a set Optional holding v.
func Some(v float64) Optional { return Optional{Value: v, Set: true} }

// Neuron is an immutable unit of the network. Every phase returns new
// neurons instead of changing existing ones.
type Neuron struct {
	bias          float64
	err           float64
	weightedInput float64
	rawOutput     Optional
	weights       []float64
}

// Bias returns the additive offset applied before activation.
func (n Neuron) Bias() float64 { return n.bias }

// Error returns the error signal from the last propagation.
func (n Neuron) Error() float64 { return n.err }

// WeightedInput returns the sum of weighted incoming outputs.
func (n Neuron) WeightedInput() float64 { return n.weightedInput }

// RawOutput returns the value that overrides activation, if any.
func (n Neuron) RawOutput() Optional { return n.rawOutput }

// Weights returns a copy of the incoming connection weights.
func (n Neuron) Weights() []float64 { return append([]float64(nil), n.weights...) }

// NumWeights reports the number of incoming connections.
func (n Neuron) NumWeights() int { return len(n.weights) }

// Output is the raw output when set, otherwise the activated weighted input.
func (n Neuron) Output() float64 {
	if n.rawOutput.Set {
		return n.rawOutput.Value
	}
	return sigmoid(Gradient * (n.weightedInput + n.bias))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Layer is an ordered set of neurons at one depth.
type Layer []Neuron

// Outputs returns the output of every neuron in order.
func (l Layer) Outputs() []float64 {
	out := make([]float64, len(l))
	for i, n := range l {
		out[i] = n.Output()
	}
	return out
}
