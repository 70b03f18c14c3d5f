package config

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Dataset         string  `yaml:"dataset"`
	Delimiter       string  `yaml:"delimiter"`
	Layers          []int   `yaml:"layers"`
	AcceptableError float64 `yaml:"acceptable_error"`
	IterationCap    int     `yaml:"iteration_cap"`
	Seed            int64   `yaml:"seed"`
	LogEvery        int     `yaml:"log_every"`
	Attempts        int     `yaml:"attempts"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Dataset         string
	Delimiter       string
	Layers          []int
	AcceptableError float64
	IterationCap    int
	Seed            int64
	LogEvery        int
	Attempts        int
}

// Load reads a Config from YAML. Call Validate once overrides are applied.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Dataset != "" {
		c.Dataset = o.Dataset
	}
	if o.Delimiter != "" {
		c.Delimiter = o.Delimiter
	}
	if len(o.Layers) > 0 {
		c.Layers = append([]int(nil), o.Layers...)
	}
	if o.AcceptableError > 0 {
		c.AcceptableError = o.AcceptableError
	}
	if o.IterationCap > 0 {
		c.IterationCap = o.IterationCap
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Attempts > 0 {
		c.Attempts = o.Attempts
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Dataset == "" {
		return errors.New("dataset must be set")
	}
	if len(c.Layers) < 2 {
		return errors.Errorf("layers needs at least 2 sizes (got %d)", len(c.Layers))
	}
	for i, size := range c.Layers {
		if size <= 0 {
			return errors.Errorf("layers[%d] must be > 0 (got %d)", i, size)
		}
	}
	if c.AcceptableError < 0 {
		return errors.Errorf("acceptable_error must be >= 0 (got %g)", c.AcceptableError)
	}
	if c.IterationCap <= 0 {
		return errors.Errorf("iteration_cap must be > 0 (got %d)", c.IterationCap)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 100
	}
	if c.Attempts <= 0 {
		c.Attempts = 1
	}
	return nil
}

// ParseLayers parses a comma separated list of layer sizes such as "2,2,1".
func ParseLayers(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	sizes := make([]int, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, errors.Errorf("layer size %d is empty", i+1)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "layer size %q", part)
		}
		sizes = append(sizes, v)
	}
	return sizes, nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := &Config{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("line %d: missing ':'", lineNo)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, "\"'")
		switch key {
		case "dataset":
			cfg.Dataset = value
		case "delimiter":
			cfg.Delimiter = value
		case "layers":
			v, err := ParseLayers(strings.Trim(value, "[]"))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: layers", lineNo)
			}
			cfg.Layers = v
		case "acceptable_error":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: acceptable_error", lineNo)
			}
			cfg.AcceptableError = v
		case "iteration_cap":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: iteration_cap", lineNo)
			}
			cfg.IterationCap = v
		case "seed":
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: seed", lineNo)
			}
			cfg.Seed = v
		case "log_every":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: log_every", lineNo)
			}
			cfg.LogEvery = v
		case "attempts":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: attempts", lineNo)
			}
			cfg.Attempts = v
		default:
			return nil, errors.Errorf("line %d: unknown key %s", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}
