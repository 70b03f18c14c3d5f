package dataset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"backprop-net/internal/pattern"
)

const defaultDelimiter = ","

// Options describes the row layout of a delimited pattern file.
type Options struct {
	Inputs    int
	Outputs   int
	Delimiter string
}

// Load reads every pattern from the delimited file at path.
func Load(path string, opts Options) ([]pattern.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	patterns, err := Parse(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parse dataset %s", path)
	}
	return patterns, nil
}

// Parse reads one pattern per line: the input values followed by the
// expected outputs. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader, opts Options) ([]pattern.Pattern, error) {
	if opts.Inputs <= 0 || opts.Outputs <= 0 {
		return nil, errors.Errorf("inputs and outputs must be > 0 (got %d, %d)", opts.Inputs, opts.Outputs)
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = defaultDelimiter
	}
	want := opts.Inputs + opts.Outputs

	var patterns []pattern.Pattern
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, delim)
		if len(fields) != want {
			return nil, errors.Errorf("line %d: expected %d fields, got %d", lineNo, want, len(fields))
		}
		values := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: field %d", lineNo, i+1)
			}
			values[i] = v
		}
		p, err := pattern.New(values[:opts.Inputs], values[opts.Inputs:])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		patterns = append(patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, errors.New("no patterns found")
	}
	return patterns, nil
}
