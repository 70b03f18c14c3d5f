package network

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const tol = 1e-12

func handNetwork() Network {
	return Network{
		make(Layer, 2),
		{
			{bias: 0.1, weights: []float64{0.5, -0.25}},
			{bias: -0.2, weights: []float64{-0.3, 0.8}},
		},
		{
			{bias: 0.05, weights: []float64{0.7, -0.6}},
		},
	}
}

func TestNewShapeAndWeightRange(t *testing.T) {
	net, err := New([]int{3, 4, 2}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	shape := net.Shape()
	if len(shape) != 3 || shape[0] != 3 || shape[1] != 4 || shape[2] != 2 {
		t.Fatalf("unexpected shape %v", shape)
	}
	for _, n := range net[0] {
		if n.NumWeights() != 0 || n.Bias() != 0 {
			t.Fatalf("input neuron should have no weights and zero bias")
		}
	}
	for i := 1; i < len(net); i++ {
		for _, n := range net[i] {
			if n.NumWeights() != shape[i-1] {
				t.Fatalf("layer %d: expected %d weights, got %d", i, shape[i-1], n.NumWeights())
			}
			if n.Bias() != 0 {
				t.Fatalf("layer %d: expected zero bias, got %f", i, n.Bias())
			}
			for _, w := range n.Weights() {
				if w < -1 || w >= 1 {
					t.Fatalf("weight out of range: %f", w)
				}
			}
		}
	}
}

func TestNewSameSeedSameNetwork(t *testing.T) {
	a, _ := New([]int{2, 3, 1}, rand.New(rand.NewSource(42)))
	b, _ := New([]int{2, 3, 1}, rand.New(rand.NewSource(42)))
	for i := 1; i < len(a); i++ {
		for j := range a[i] {
			if !floats.Equal(a[i][j].Weights(), b[i][j].Weights()) {
				t.Fatalf("layer %d neuron %d differs", i, j)
			}
		}
	}
}

func TestNewRejectsBadShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, sizes := range [][]int{nil, {2}, {2, 0}, {-1, 1}} {
		if _, err := New(sizes, rng); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("sizes %v: expected invalid argument, got %v", sizes, err)
		}
	}
	if _, err := New([]int{1, 1}, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil rng: expected invalid argument, got %v", err)
	}
}

func TestActivateHandComputed(t *testing.T) {
	act, err := handNetwork().Activate([]float64{1, 0.4})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := act[0].Outputs(); !floats.Equal(got, []float64{1, 0.4}) {
		t.Fatalf("input layer outputs %v", got)
	}
	h0 := 0.5*1 - 0.25*0.4
	h1 := -0.3*1 + 0.8*0.4
	if math.Abs(act[1][0].WeightedInput()-h0) > tol || math.Abs(act[1][1].WeightedInput()-h1) > tol {
		t.Fatalf("hidden weighted inputs %f %f", act[1][0].WeightedInput(), act[1][1].WeightedInput())
	}
	o0 := sigmoid(Gradient * (h0 + 0.1))
	o1 := sigmoid(Gradient * (h1 - 0.2))
	out := sigmoid(Gradient * (0.7*o0 - 0.6*o1 + 0.05))
	if got := act.Outputs(); math.Abs(got[0]-out) > tol {
		t.Fatalf("output %f want %f", got[0], out)
	}
	if act[1][0].RawOutput().Set || !act[0][0].RawOutput().Set {
		t.Fatalf("raw output should be set on the input layer only")
	}
}

func TestActivateDeterministic(t *testing.T) {
	net, _ := New([]int{3, 5, 2}, rand.New(rand.NewSource(7)))
	in := []float64{0.2, 0.9, 0.5}
	a, _ := net.Activate(in)
	b, _ := net.Activate(in)
	if !floats.Equal(a.Outputs(), b.Outputs()) {
		t.Fatalf("outputs differ: %v vs %v", a.Outputs(), b.Outputs())
	}
}

func TestActivateRejectsWrongLength(t *testing.T) {
	if _, err := handNetwork().Activate([]float64{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestActivatePanicsOnMalformedNetwork(t *testing.T) {
	net := handNetwork()
	net[2] = Layer{{weights: []float64{1, 2, 3}}}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for weight count mismatch")
		}
	}()
	net.Activate([]float64{0, 1})
}

func TestPropagateErrors(t *testing.T) {
	act, _ := handNetwork().Activate([]float64{1, 0.4})
	prop, err := act.Propagate([]float64{1})
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	outErr := 1 - act.Outputs()[0]
	if math.Abs(prop[2][0].Error()-outErr) > tol {
		t.Fatalf("output error %f want %f", prop[2][0].Error(), outErr)
	}
	e0, e1 := outErr*0.7, outErr*-0.6
	if math.Abs(prop[1][0].Error()-e0) > tol || math.Abs(prop[1][1].Error()-e1) > tol {
		t.Fatalf("hidden errors %f %f want %f %f", prop[1][0].Error(), prop[1][1].Error(), e0, e1)
	}
	in0 := e0*0.5 + e1*-0.3
	if math.Abs(prop[0][0].Error()-in0) > tol {
		t.Fatalf("input error %f want %f", prop[0][0].Error(), in0)
	}
	if !floats.Equal(prop.Outputs(), act.Outputs()) {
		t.Fatalf("propagation changed activation")
	}
}

func TestPropagateIsIdempotent(t *testing.T) {
	net, _ := New([]int{2, 3, 2}, rand.New(rand.NewSource(3)))
	act, _ := net.Activate([]float64{0.3, 0.6})
	expected := []float64{1, 0}
	first, _ := act.Propagate(expected)
	second, _ := act.Propagate(expected)
	again, _ := first.Propagate(expected)
	for i := range first {
		for j := range first[i] {
			if first[i][j].Error() != second[i][j].Error() || first[i][j].Error() != again[i][j].Error() {
				t.Fatalf("layer %d neuron %d error not reproducible", i, j)
			}
		}
	}
}

func TestPropagateRejectsWrongLength(t *testing.T) {
	act, _ := handNetwork().Activate([]float64{0, 0})
	if _, err := act.Propagate([]float64{1, 0}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestAdjustZeroRateKeepsParameters(t *testing.T) {
	net, _ := New([]int{2, 3, 1}, rand.New(rand.NewSource(11)))
	act, _ := net.Activate([]float64{1, 0})
	prop, _ := act.Propagate([]float64{1})
	adj := prop.AdjustRate(0)
	for i := range net {
		for j := range net[i] {
			if adj[i][j].Bias() != net[i][j].Bias() || !floats.Equal(adj[i][j].Weights(), net[i][j].Weights()) {
				t.Fatalf("layer %d neuron %d changed with zero learn rate", i, j)
			}
		}
	}
}

func TestAdjustSingleConnection(t *testing.T) {
	net := Network{make(Layer, 1), {{weights: []float64{0.5}}}}
	act, _ := net.Activate([]float64{1})
	prop, _ := act.Propagate([]float64{1})
	adj := prop.Adjust()

	out := sigmoid(Gradient * 0.5)
	delta := (1 - out) * out * (1 - out) * LearnRate
	if math.Abs(adj[1][0].Bias()-delta) > tol {
		t.Fatalf("bias %f want %f", adj[1][0].Bias(), delta)
	}
	if math.Abs(adj[1][0].Weights()[0]-(0.5+delta)) > tol {
		t.Fatalf("weight %f want %f", adj[1][0].Weights()[0], 0.5+delta)
	}
}

func TestStepReducesError(t *testing.T) {
	net, _ := New([]int{2, 2, 1}, rand.New(rand.NewSource(5)))
	in, want := []float64{0, 1}, []float64{1}
	before, _ := net.Activate(in)
	prop, _ := before.Propagate(want)
	after, _ := prop.Adjust().Activate(in)
	errBefore, _ := before.SquaredError(want)
	errAfter, _ := after.SquaredError(want)
	if errAfter >= errBefore {
		t.Fatalf("expected error to decrease; before=%f after=%f", errBefore, errAfter)
	}
}

func TestSquaredError(t *testing.T) {
	act, _ := handNetwork().Activate([]float64{1, 0.4})
	got, err := act.SquaredError([]float64{0.25})
	if err != nil {
		t.Fatalf("SquaredError: %v", err)
	}
	d := act.Outputs()[0] - 0.25
	if math.Abs(got-d*d) > tol {
		t.Fatalf("squared error %f want %f", got, d*d)
	}
	for _, expected := range [][]float64{nil, {0, 1}} {
		if _, err := act.SquaredError(expected); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected %v: want invalid argument, got %v", expected, err)
		}
	}
}

func TestPhasesLeaveInputUntouched(t *testing.T) {
	net := handNetwork()
	snapshot := handNetwork()
	act, _ := net.Activate([]float64{0.2, 0.8})
	prop, _ := act.Propagate([]float64{0.5})
	prop.Adjust()
	for i := range net {
		for j := range net[i] {
			n, s := net[i][j], snapshot[i][j]
			if n.Bias() != s.Bias() || n.Error() != s.Error() || n.WeightedInput() != s.WeightedInput() ||
				n.RawOutput() != s.RawOutput() || !floats.Equal(n.Weights(), s.Weights()) {
				t.Fatalf("layer %d neuron %d was mutated", i, j)
			}
		}
	}
}
