package network

import (
	"github.com/pkg/errors"

	"backprop-net/internal/scan"
)

// LearnRate scales every gradient step.
const LearnRate = 0.05

// Activate computes every neuron's output for inputs and returns the
// activated network.
func (n Network) Activate(inputs []float64) (Network, error) {
	if len(inputs) != n.NumInputs() {
		return nil, errors.Wrapf(ErrInvalidArgument, "network: got %d inputs, input layer has %d neurons",
			len(inputs), n.NumInputs())
	}
	first := make(Layer, len(n[0]))
	for i, neuron := range n[0] {
		neuron.rawOutput = Some(inputs[i])
		neuron.err = 0
		first[i] = neuron
	}
	depth := 0
	layers := scan.Scan([]Layer(n[1:]), first, func(prev Layer, layer Layer) (Layer, bool) {
		depth++
		return activateLayer(prev, layer, depth), true
	})
	return Network(layers), nil
}

func activateLayer(prev, layer Layer, depth int) Layer {
	outputs := prev.Outputs()
	next := make(Layer, len(layer))
	for i, neuron := range layer {
		checkWeights(neuron, len(prev), depth, i)
		sum := 0.0
		for j, w := range neuron.weights {
			sum += w * outputs[j]
		}
		neuron.weightedInput = sum
		neuron.err = 0
		neuron.rawOutput = Optional{}
		next[i] = neuron
	}
	return next
}

// Propagate assigns error signals from the output layer back to the input
// layer. The output error is expected minus actual; earlier layers take the
// weighted sum of the errors in the layer after them.
func (n Network) Propagate(expected []float64) (Network, error) {
	if len(expected) != n.NumOutputs() {
		return nil, errors.Wrapf(ErrInvalidArgument, "network: got %d expected outputs, output layer has %d neurons",
			len(expected), n.NumOutputs())
	}
	depth := len(n)
	layers := scan.ScanBack([]Layer(n), Layer(nil), func(layer Layer, after Layer) Layer {
		depth--
		if after == nil {
			return outputErrors(layer, expected)
		}
		return hiddenErrors(layer, after, depth)
	})
	return Network(layers[:len(n)]), nil
}

func outputErrors(layer Layer, expected []float64) Layer {
	next := make(Layer, len(layer))
	for i, neuron := range layer {
		neuron.err = expected[i] - neuron.Output()
		next[i] = neuron
	}
	return next
}

func hiddenErrors(layer, after Layer, depth int) Layer {
	for k, neuron := range after {
		checkWeights(neuron, len(layer), depth+1, k)
	}
	next := make(Layer, len(layer))
	for i, neuron := range layer {
		sum := 0.0
		for _, a := range after {
			sum += a.err * a.weights[i]
		}
		neuron.err = sum
		next[i] = neuron
	}
	return next
}

// Adjust applies one gradient step with LearnRate.
func (n Network) Adjust() Network {
	return n.AdjustRate(LearnRate)
}

// AdjustRate updates biases and weights of every layer after the input
// layer. Each layer reads the outputs of the already adjusted layer before it.
func (n Network) AdjustRate(rate float64) Network {
	depth := 0
	layers := scan.Scan([]Layer(n[1:]), n[0], func(prev Layer, layer Layer) (Layer, bool) {
		depth++
		return adjustLayer(prev, layer, rate, depth), true
	})
	return Network(layers)
}

func adjustLayer(prev, layer Layer, rate float64, depth int) Layer {
	outputs := prev.Outputs()
	next := make(Layer, len(layer))
	for i, neuron := range layer {
		checkWeights(neuron, len(prev), depth, i)
		out := neuron.Output()
		delta := neuron.err * out * (1 - out) * rate
		weights := make([]float64, len(neuron.weights))
		for j, w := range neuron.weights {
			weights[j] = w + delta*outputs[j]
		}
		neuron.bias += delta
		neuron.weights = weights
		next[i] = neuron
	}
	return next
}
