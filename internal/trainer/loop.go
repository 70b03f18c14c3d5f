package trainer

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"backprop-net/internal/metrics"
	"backprop-net/internal/network"
	"backprop-net/internal/pattern"
	"backprop-net/internal/scan"
)

// ErrInvalidArgument marks configuration and shape errors.
var ErrInvalidArgument = network.ErrInvalidArgument

// ErrReachedLocalErrorMinimum means the iteration cap ran out before the
// error became acceptable. Retrying with another seed usually helps.
var ErrReachedLocalErrorMinimum = errors.New("reached local error minimum")

// Config captures the knobs required by the training loop.
type Config struct {
	LayerSizes      []int
	AcceptableError float64
	IterationCap    int
	Rand            *rand.Rand
	// Progress is called once per completed iteration. It may be nil.
	Progress Progress
}

// Observation reports one completed iteration.
type Observation struct {
	RunID      string
	Iteration  int
	TotalError float64
	Elapsed    time.Duration
}

// Progress receives observations from the training loop.
type Progress func(Observation)

// Validate verifies the config and the patterns agree before training.
func (c Config) Validate(patterns []pattern.Pattern) error {
	if len(c.LayerSizes) < 2 {
		return errors.Wrapf(ErrInvalidArgument, "trainer: need at least 2 layer sizes (got %d)", len(c.LayerSizes))
	}
	for i, size := range c.LayerSizes {
		if size <= 0 {
			return errors.Wrapf(ErrInvalidArgument, "trainer: layer %d size must be > 0 (got %d)", i, size)
		}
	}
	if c.AcceptableError < 0 || math.IsNaN(c.AcceptableError) {
		return errors.Wrapf(ErrInvalidArgument, "trainer: acceptable error must be >= 0 (got %g)", c.AcceptableError)
	}
	if c.IterationCap <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "trainer: iteration cap must be > 0 (got %d)", c.IterationCap)
	}
	if c.Rand == nil {
		return errors.Wrap(ErrInvalidArgument, "trainer: random source is nil")
	}
	if len(patterns) == 0 {
		return errors.Wrap(ErrInvalidArgument, "trainer: no patterns")
	}
	in, out := c.LayerSizes[0], c.LayerSizes[len(c.LayerSizes)-1]
	for i, p := range patterns {
		if p.NumInputs() != in || p.NumOutputs() != out {
			return errors.Wrapf(ErrInvalidArgument, "trainer: pattern %d has shape %d->%d, network expects %d->%d",
				i, p.NumInputs(), p.NumOutputs(), in, out)
		}
	}
	return nil
}

type foldState struct {
	net   network.Network
	total float64
}

// Train runs online backpropagation until the total squared error of an
// iteration is at most cfg.AcceptableError.
func Train(cfg Config, patterns []pattern.Pattern) (*Predictor, error) {
	if err := cfg.Validate(patterns); err != nil {
		return nil, err
	}
	net, err := network.New(cfg.LayerSizes, cfg.Rand)
	if err != nil {
		return nil, errors.Wrap(err, "trainer: initialize network")
	}

	runID := uuid.New().String()
	bestError := math.Inf(1)

	for iteration := 1; iteration <= cfg.IterationCap; iteration++ {
		start := time.Now()
		states := scan.Scan(patterns, foldState{net: net}, func(s foldState, p pattern.Pattern) (foldState, bool) {
			return step(s, p), true
		})
		last := states[len(states)-1]
		elapsed := time.Since(start)

		notify(cfg.Progress, Observation{RunID: runID, Iteration: iteration, TotalError: last.total, Elapsed: elapsed})

		net = last.net
		if last.total < bestError {
			bestError = last.total
		}
		// Each pattern's error is measured before its adjustment, so the
		// total describes the network as it entered this iteration.
		if last.total <= cfg.AcceptableError {
			return &Predictor{net: net, runID: runID, iterations: iteration, totalError: last.total}, nil
		}
	}

	return nil, errors.Wrapf(ErrReachedLocalErrorMinimum, "trainer: run %s: best error %g after %d iterations (acceptable %g)",
		runID, bestError, cfg.IterationCap, cfg.AcceptableError)
}

func step(s foldState, p pattern.Pattern) foldState {
	act, err := s.net.Activate(p.Inputs())
	if err != nil {
		panic(err)
	}
	sqErr, err := act.SquaredError(p.Outputs())
	if err != nil {
		panic(err)
	}
	prop, err := act.Propagate(p.Outputs())
	if err != nil {
		panic(err)
	}
	return foldState{net: prop.Adjust(), total: s.total + sqErr}
}

func notify(progress Progress, obs Observation) {
	if progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("run=%s progress reporter panicked: %v", obs.RunID, r)
		}
	}()
	progress(obs)
}

// LogProgress returns a Progress that logs a metrics snapshot every
// logEvery iterations. The window starts over whenever the run id changes.
func LogProgress(logEvery int) Progress {
	if logEvery <= 0 {
		logEvery = 100
	}
	var window metrics.Window
	var runID string
	return func(obs Observation) {
		if obs.RunID != runID {
			window = metrics.Window{}
			runID = obs.RunID
		}
		window.Record(obs.Elapsed, obs.TotalError)
		if obs.Iteration%logEvery != 0 {
			return
		}
		snap := window.Snapshot()
		log.Printf("run=%s iteration=%d error=%.6f best=%.6f iters_per_sec=%.1f iter_ms=%.3f",
			obs.RunID,
			obs.Iteration,
			snap.LastError,
			snap.BestError,
			snap.IterationsPerSec,
			snap.AvgIterationMS,
		)
	}
}
