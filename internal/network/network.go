// Package network holds the immutable feed-forward network and the three
// phases of an online backpropagation step: Activate, Propagate and Adjust.
package network

import (
	"math/rand"

	"github.com/pkg/errors"

	"backprop-net/internal/pattern"
)

// ErrInvalidArgument is shared with pattern so callers test a single value.
var ErrInvalidArgument = pattern.ErrInvalidArgument

// Network is an ordered list of layers. Layer 0 takes inputs directly.
type Network []Layer

// New builds an untrained network with zero biases and weights drawn
// uniformly from [-1,1).
func New(layerSizes []int, rng *rand.Rand) (Network, error) {
	if len(layerSizes) < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument, "network: need at least 2 layers (got %d)", len(layerSizes))
	}
	for i, size := range layerSizes {
		if size <= 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "network: layer %d size must be > 0 (got %d)", i, size)
		}
	}
	if rng == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "network: random source is nil")
	}

	net := make(Network, len(layerSizes))
	net[0] = make(Layer, layerSizes[0])
	for i := 1; i < len(layerSizes); i++ {
		layer := make(Layer, layerSizes[i])
		for j := range layer {
			weights := make([]float64, layerSizes[i-1])
			for k := range weights {
				weights[k] = rng.Float64()*2 - 1
			}
			layer[j] = Neuron{weights: weights}
		}
		net[i] = layer
	}
	return net, nil
}

// Shape returns the neuron count of every layer.
func (n Network) Shape() []int {
	shape := make([]int, len(n))
	for i, l := range n {
		shape[i] = len(l)
	}
	return shape
}

// NumInputs is the size of the input layer.
func (n Network) NumInputs() int { return len(n[0]) }

// NumOutputs is the size of the output layer.
func (n Network) NumOutputs() int { return len(n[len(n)-1]) }

// Outputs returns the output layer's values.
func (n Network) Outputs() []float64 { return n[len(n)-1].Outputs() }

// SquaredError sums (actual - expected)^2 over the output layer.
func (n Network) SquaredError(expected []float64) (float64, error) {
	if len(expected) != n.NumOutputs() {
		return 0, errors.Wrapf(ErrInvalidArgument, "network: got %d expected outputs, output layer has %d neurons",
			len(expected), n.NumOutputs())
	}
	total := 0.0
	for i, v := range n.Outputs() {
		d := v - expected[i]
		total += d * d
	}
	return total, nil
}

// checkWeights panics when a neuron's weight count disagrees with the size of
// the layer it connects to. A network built by New never trips this.
func checkWeights(n Neuron, prev int, layer, pos int) {
	if len(n.weights) != prev {
		panic(errors.Errorf("network: neuron %d in layer %d has %d weights but previous layer has %d neurons",
			pos, layer, len(n.weights), prev))
	}
}
