package metrics

import (
	"math"
	"time"
)

// Window accumulates per-iteration training stats between snapshots.
type Window struct {
	iterations int
	elapsed    time.Duration
	lastError  float64
	bestError  float64
	recorded   bool
}

// Record adds one completed iteration to the window.
func (w *Window) Record(elapsed time.Duration, totalError float64) {
	if !w.recorded {
		w.bestError = math.Inf(1)
		w.recorded = true
	}
	w.iterations++
	w.elapsed += elapsed
	w.lastError = totalError
	if totalError < w.bestError {
		w.bestError = totalError
	}
}

// Snapshot returns aggregated metrics and resets the window. The best error
// survives the reset.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{LastError: w.lastError, BestError: w.bestError}
	if w.elapsed > 0 {
		snap.IterationsPerSec = float64(w.iterations) / w.elapsed.Seconds()
	}
	if w.iterations > 0 {
		snap.AvgIterationMS = (w.elapsed.Seconds() * 1000) / float64(w.iterations)
	}

	w.iterations = 0
	w.elapsed = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	IterationsPerSec float64
	AvgIterationMS   float64
	LastError        float64
	BestError        float64
}
