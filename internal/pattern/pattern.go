package pattern

import "github.com/pkg/errors"

// ErrInvalidArgument marks patterns rejected at construction.
var ErrInvalidArgument = errors.New("invalid argument")

// Pattern is one labeled training example.
type Pattern struct {
	inputs  []float64
	outputs []float64
}

// New validates and copies inputs and outputs into a Pattern.
func New(inputs, outputs []float64) (Pattern, error) {
	if len(inputs) == 0 {
		return Pattern{}, errors.Wrap(ErrInvalidArgument, "pattern: inputs must not be empty")
	}
	if len(outputs) == 0 {
		return Pattern{}, errors.Wrap(ErrInvalidArgument, "pattern: outputs must not be empty")
	}
	for i, v := range outputs {
		if !(v >= 0 && v <= 1) {
			return Pattern{}, errors.Wrapf(ErrInvalidArgument, "pattern: output[%d]=%g outside [0,1]", i, v)
		}
	}
	return Pattern{
		inputs:  append([]float64(nil), inputs...),
		outputs: append([]float64(nil), outputs...),
	}, nil
}

// Inputs returns a copy of the input vector.
func (p Pattern) Inputs() []float64 { return append([]float64(nil), p.inputs...) }

// Outputs returns a copy of the expected output vector.
func (p Pattern) Outputs() []float64 { return append([]float64(nil), p.outputs...) }

// NumInputs reports the input vector length.
func (p Pattern) NumInputs() int { return len(p.inputs) }

// NumOutputs reports the output vector length.
func (p Pattern) NumOutputs() int { return len(p.outputs) }
