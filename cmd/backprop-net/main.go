package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"backprop-net/internal/config"
	"backprop-net/internal/dataset"
	"backprop-net/internal/pattern"
	"backprop-net/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "configs/xor.yaml", "Path to YAML config")
	datasetPath := flag.String("dataset", "", "Override dataset path")
	delimiter := flag.String("delimiter", "", "Override dataset field delimiter")
	layers := flag.String("layers", "", "Override layer sizes, e.g. 2,2,1")
	acceptableError := flag.Float64("acceptable-error", 0, "Total squared error that ends training")
	iterationCap := flag.Int("iteration-cap", 0, "Maximum iterations per attempt")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log every N iterations")
	attempts := flag.Int("attempts", 0, "Seeds to try before giving up on a local minimum")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var layerSizes []int
	if *layers != "" {
		layerSizes, err = config.ParseLayers(*layers)
		if err != nil {
			log.Fatalf("invalid -layers: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		Dataset:         *datasetPath,
		Delimiter:       *delimiter,
		Layers:          layerSizes,
		AcceptableError: *acceptableError,
		IterationCap:    *iterationCap,
		Seed:            *seed,
		LogEvery:        *logEvery,
		Attempts:        *attempts,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	patterns, err := dataset.Load(cfg.Dataset, dataset.Options{
		Inputs:    cfg.Layers[0],
		Outputs:   cfg.Layers[len(cfg.Layers)-1],
		Delimiter: cfg.Delimiter,
	})
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	log.Printf("dataset=%s patterns=%d layers=%v", cfg.Dataset, len(patterns), cfg.Layers)

	pred, err := train(cfg, patterns, func() trainer.Progress { return trainer.LogProgress(cfg.LogEvery) })
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf("run=%s converged iterations=%d error=%.6f", pred.RunID(), pred.Iterations(), pred.TotalError())

	for _, p := range patterns {
		got, err := pred.Predict(p.Inputs())
		if err != nil {
			log.Fatalf("predict: %v", err)
		}
		log.Printf("inputs=%v expected=%v predicted=%.4f distance=%.4f",
			p.Inputs(), p.Outputs(), got, floats.Distance(got, p.Outputs(), 2))
	}
}

// train retries with the next seed whenever a run settles in a local error
// minimum. Any other failure ends the attempts. Every attempt gets its own
// reporter from newProgress.
func train(cfg *config.Config, patterns []pattern.Pattern, newProgress func() trainer.Progress) (*trainer.Predictor, error) {
	var lastErr error
	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		seed := cfg.Seed + int64(attempt)
		pred, err := trainer.Train(trainer.Config{
			LayerSizes:      cfg.Layers,
			AcceptableError: cfg.AcceptableError,
			IterationCap:    cfg.IterationCap,
			Rand:            rand.New(rand.NewSource(seed)),
			Progress:        newProgress(),
		}, patterns)
		if err == nil {
			return pred, nil
		}
		if !errors.Is(err, trainer.ErrReachedLocalErrorMinimum) {
			return nil, err
		}
		log.Printf("attempt=%d seed=%d result=local_minimum", attempt+1, seed)
		lastErr = err
	}
	return nil, errors.Wrapf(lastErr, "gave up after %d attempts", cfg.Attempts)
}
