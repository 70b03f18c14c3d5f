package trainer

import (
	"github.com/pkg/errors"

	"backprop-net/internal/network"
)

// Predictor owns a trained network. It is safe for concurrent use.
type Predictor struct {
	net        network.Network
	runID      string
	iterations int
	totalError float64
}

// Predict runs one forward pass and returns the output layer's values.
func (p *Predictor) Predict(inputs []float64) ([]float64, error) {
	if len(inputs) != p.net.NumInputs() {
		return nil, errors.Wrapf(ErrInvalidArgument, "predictor: got %d inputs, want %d", len(inputs), p.net.NumInputs())
	}
	act, err := p.net.Activate(inputs)
	if err != nil {
		return nil, err
	}
	return act.Outputs(), nil
}

// RunID identifies the training run that produced p.
func (p *Predictor) RunID() string { return p.runID }

// Iterations is the number of iterations training took to converge.
func (p *Predictor) Iterations() int { return p.iterations }

// TotalError is the total squared error of the converging iteration.
func (p *Predictor) TotalError() float64 { return p.totalError }

// Shape returns the layer sizes of the trained network.
func (p *Predictor) Shape() []int { return p.net.Shape() }
