package survey

import (
	"fmt"
)

// ColType is the statistical type a survey column is coerced to
type ColType string

const (
	// ColCategorical holds unordered labels (e.g. gender, purchase flag)
	ColCategorical ColType = "categorical"
	// ColOrdinal holds ordered level codes (e.g. education, income band)
	ColOrdinal ColType = "ordinal"
	// ColNumeric holds continuous values; Likert ratings are numeric after cleaning
	ColNumeric ColType = "numeric"
)

// ColumnSpec declares the expected name and coercion target for one column
type ColumnSpec struct {
	Name string
	Type ColType
}

// LikertColumns are the seven attribute-rating columns the clustering runs on.
// Names are the snake_case form the cleaner normalizes raw headers into.
var LikertColumns = []string{
	"const_com",  // communication constancy
	"timely_inf", // timeliness of information
	"task_mgm",   // task management
	"device_st",  // device status
	"wellness",   // wellness tracking
	"athlete",    // athletic use
	"style",      // style
}

// DemographicColumns are the respondent descriptors carried through cleaning
var DemographicColumns = []ColumnSpec{
	{Name: "female", Type: ColCategorical},
	{Name: "degree", Type: ColOrdinal},
	{Name: "income", Type: ColOrdinal},
	{Name: "age", Type: ColNumeric},
	{Name: "amzn_p", Type: ColCategorical},
}

// Schema returns the full expected column list: Likert attributes then demographics
func Schema() []ColumnSpec {
	specs := make([]ColumnSpec, 0, len(LikertColumns)+len(DemographicColumns))
	for _, name := range LikertColumns {
		specs = append(specs, ColumnSpec{Name: name, Type: ColNumeric})
	}
	specs = append(specs, DemographicColumns...)
	return specs
}

// Column is one fully coerced column of the cleaned dataset.
// Numeric and ordinal columns populate Values; categorical columns populate Labels.
type Column struct {
	Spec   ColumnSpec
	Values []float64
	Labels []string
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	if c.Spec.Type == ColCategorical {
		return len(c.Labels)
	}
	return len(c.Values)
}

// Frame is a column-oriented cleaned dataset. Invariant: every column has the
// same row count and no missing values remain after cleaning.
type Frame struct {
	cols   []*Column
	byName map[string]*Column
	rows   int
}

// NewFrame assembles a frame from coerced columns
func NewFrame(cols []*Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("frame requires at least one column")
	}
	rows := cols[0].Len()
	byName := make(map[string]*Column, len(cols))
	for _, c := range cols {
		if c.Len() != rows {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", c.Spec.Name, c.Len(), rows)
		}
		if _, dup := byName[c.Spec.Name]; dup {
			return nil, fmt.Errorf("duplicate column %s", c.Spec.Name)
		}
		byName[c.Spec.Name] = c
	}
	return &Frame{cols: cols, byName: byName, rows: rows}, nil
}

// Len returns the row count
func (f *Frame) Len() int { return f.rows }

// Columns returns the columns in declaration order
func (f *Frame) Columns() []*Column { return f.cols }

// Column looks up a column by cleaned name
func (f *Frame) Column(name string) (*Column, bool) {
	c, ok := f.byName[name]
	return c, ok
}

// Matrix extracts named numeric columns as row-major points for distance-based
// computations. Fails on unknown or non-numeric columns.
func (f *Frame) Matrix(names []string) ([][]float64, error) {
	cols := make([]*Column, len(names))
	for i, name := range names {
		c, ok := f.byName[name]
		if !ok {
			return nil, fmt.Errorf("column %s not present in frame", name)
		}
		if c.Spec.Type == ColCategorical {
			return nil, fmt.Errorf("column %s is categorical, not numeric", name)
		}
		cols[i] = c
	}
	points := make([][]float64, f.rows)
	for i := range points {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c.Values[i]
		}
		points[i] = row
	}
	return points, nil
}
