package pattern

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil, []float64{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty inputs, got %v", err)
	}
	if _, err := New([]float64{1}, []float64{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty outputs, got %v", err)
	}
}

func TestNewRejectsOutputsOutOfRange(t *testing.T) {
	for _, v := range []float64{-0.01, 1.01, math.NaN(), math.Inf(1)} {
		if _, err := New([]float64{0}, []float64{0.5, v}); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("output %g: expected invalid argument, got %v", v, err)
		}
	}
}

func TestNewAcceptsBoundsAndUncheckedInputs(t *testing.T) {
	p, err := New([]float64{-3, 7}, []float64{0, 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.NumInputs() != 2 || p.NumOutputs() != 2 {
		t.Fatalf("unexpected shape %d/%d", p.NumInputs(), p.NumOutputs())
	}
}

func TestPatternIsImmutable(t *testing.T) {
	in := []float64{0.1, 0.2}
	out := []float64{0.3}
	p, err := New(in, out)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	in[0] = 9
	out[0] = 9
	got := p.Inputs()
	got[1] = 9
	if p.Inputs()[0] != 0.1 || p.Inputs()[1] != 0.2 || p.Outputs()[0] != 0.3 {
		t.Fatalf("pattern mutated: %v %v", p.Inputs(), p.Outputs())
	}
}
