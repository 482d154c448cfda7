package telemetry

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// SeriesSummary describes one population series over a run.
type SeriesSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	CV   float64 `json:"cv"` // std / mean, 0 when the mean is 0
	P10  float64 `json:"p10"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
}

// Summarize describes every stats column over history, keyed by column name.
// Returns nil for an empty history.
func Summarize(history []SimulationStats) map[string]SeriesSummary {
	if len(history) == 0 {
		return nil
	}

	out := make(map[string]SeriesSummary, len(AllSeries))
	values := make([]float64, len(history))
	for _, series := range AllSeries {
		for i, s := range history {
			values[i] = float64(series.Get(s))
		}
		out[series.Name] = summarizeValues(values)
	}
	return out
}

// summarizeValues sorts values in place.
func summarizeValues(values []float64) SeriesSummary {
	var s SeriesSummary
	if len(values) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}
	if s.Mean != 0 {
		s.CV = s.Std / s.Mean
	}

	slices.Sort(values)
	s.P10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return s
}
