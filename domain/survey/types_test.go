package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_CoversExpectedColumns(t *testing.T) {
	specs := Schema()
	require.Len(t, specs, 12)

	// The seven Likert attributes come first, all numeric
	for i, name := range LikertColumns {
		assert.Equal(t, name, specs[i].Name)
		assert.Equal(t, ColNumeric, specs[i].Type)
	}
}

func TestNewFrame_RowCountMismatch(t *testing.T) {
	cols := []*Column{
		{Spec: ColumnSpec{Name: "a", Type: ColNumeric}, Values: []float64{1, 2}},
		{Spec: ColumnSpec{Name: "b", Type: ColNumeric}, Values: []float64{1}},
	}
	_, err := NewFrame(cols)
	assert.Error(t, err)
}

func TestNewFrame_DuplicateColumn(t *testing.T) {
	cols := []*Column{
		{Spec: ColumnSpec{Name: "a", Type: ColNumeric}, Values: []float64{1}},
		{Spec: ColumnSpec{Name: "a", Type: ColNumeric}, Values: []float64{2}},
	}
	_, err := NewFrame(cols)
	assert.Error(t, err)
}

func TestFrame_Matrix(t *testing.T) {
	cols := []*Column{
		{Spec: ColumnSpec{Name: "x", Type: ColNumeric}, Values: []float64{1, 2}},
		{Spec: ColumnSpec{Name: "y", Type: ColNumeric}, Values: []float64{3, 4}},
		{Spec: ColumnSpec{Name: "cat", Type: ColCategorical}, Labels: []string{"a", "b"}},
	}
	frame, err := NewFrame(cols)
	require.NoError(t, err)

	points, err := frame.Matrix([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 3}, {2, 4}}, points)

	_, err = frame.Matrix([]string{"cat"})
	assert.Error(t, err, "categorical columns cannot enter the matrix")

	_, err = frame.Matrix([]string{"missing"})
	assert.Error(t, err)
}
