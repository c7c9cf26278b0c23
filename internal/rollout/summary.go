package rollout

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch of results.
type Summary struct {
	Episodes   int
	MeanReturn float64
	StdReturn  float64
	MeanLines  float64
	StdLines   float64
	MaxLines   int
	MeanSteps  float64
	Truncated  int
}

// Summarize computes batch statistics. Standard deviations are zero for fewer
// than two results.
func Summarize(results []Result) Summary {
	s := Summary{Episodes: len(results)}
	if len(results) == 0 {
		return s
	}

	returns := make([]float64, len(results))
	lines := make([]float64, len(results))
	steps := make([]float64, len(results))
	for i, r := range results {
		returns[i] = r.Return
		lines[i] = float64(r.Lines)
		steps[i] = float64(r.Steps)
		if r.Lines > s.MaxLines {
			s.MaxLines = r.Lines
		}
		if r.Truncated {
			s.Truncated++
		}
	}

	s.MeanReturn = stat.Mean(returns, nil)
	s.MeanLines = stat.Mean(lines, nil)
	s.MeanSteps = stat.Mean(steps, nil)
	if len(results) > 1 {
		s.StdReturn = stat.StdDev(returns, nil)
		s.StdLines = stat.StdDev(lines, nil)
	}
	return s
}

// WriteCSV writes results with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	if err := gocsv.Marshal(results, w); err != nil {
		return fmt.Errorf("rollout: writing csv: %w", err)
	}
	return nil
}

// ReadCSV parses results previously written by WriteCSV.
func ReadCSV(r io.Reader) ([]Result, error) {
	var results []Result
	if err := gocsv.Unmarshal(r, &results); err != nil {
		return nil, fmt.Errorf("rollout: reading csv: %w", err)
	}
	return results, nil
}
