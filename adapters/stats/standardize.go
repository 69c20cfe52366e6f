package stats

import (
	"fmt"

	"gosegment/domain/survey"

	mfstats "github.com/montanaflynn/stats"
)

// ColumnScale records the location and spread a column was standardized with,
// so raw-unit values can be recovered for reporting.
type ColumnScale struct {
	Column string
	Mean   float64
	StdDev float64
}

// Standardize rescales the named numeric columns of a frame to zero mean and
// unit variance (sample standard deviation), computed over the cleaned
// population. Columns are replaced in place; downstream distance computations
// operate in standardized space.
func Standardize(frame *survey.Frame, columns []string) ([]ColumnScale, error) {
	scales := make([]ColumnScale, 0, len(columns))

	for _, name := range columns {
		col, ok := frame.Column(name)
		if !ok {
			return nil, fmt.Errorf("column %s not present in frame", name)
		}
		if col.Spec.Type == survey.ColCategorical {
			return nil, fmt.Errorf("column %s is categorical and cannot be standardized", name)
		}

		mean, err := mfstats.Mean(col.Values)
		if err != nil {
			return nil, fmt.Errorf("mean of %s: %w", name, err)
		}
		sd, err := mfstats.StandardDeviationSample(col.Values)
		if err != nil {
			return nil, fmt.Errorf("standard deviation of %s: %w", name, err)
		}
		if sd == 0 {
			return nil, fmt.Errorf("column %s has zero variance, cannot standardize", name)
		}

		for i, v := range col.Values {
			col.Values[i] = (v - mean) / sd
		}
		scales = append(scales, ColumnScale{Column: name, Mean: mean, StdDev: sd})
	}

	return scales, nil
}
