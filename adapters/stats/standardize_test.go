package stats

import (
	"testing"

	"gosegment/adapters/cleaner"
	"gosegment/domain/survey"
	"gosegment/internal/testkit"

	mfstats "github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanedFrame(t *testing.T, seed int64, n int) *survey.Frame {
	t.Helper()
	raw := testkit.NewSurveyGenerator(seed).Generate(n)
	frame, _, err := cleaner.New(survey.Schema()).Clean(raw)
	require.NoError(t, err)
	return frame
}

func TestStandardize_ZeroMeanUnitVariance(t *testing.T) {
	frame := cleanedFrame(t, 42, 200)

	scales, err := Standardize(frame, survey.LikertColumns)
	require.NoError(t, err)
	require.Len(t, scales, len(survey.LikertColumns))

	for _, name := range survey.LikertColumns {
		col, ok := frame.Column(name)
		require.True(t, ok)

		mean, err := mfstats.Mean(col.Values)
		require.NoError(t, err)
		variance, err := mfstats.SampleVariance(col.Values)
		require.NoError(t, err)

		assert.InDelta(t, 0, mean, 1e-9, "mean of %s", name)
		assert.InDelta(t, 1, variance, 1e-9, "variance of %s", name)
	}
}

func TestStandardize_RecordsScales(t *testing.T) {
	frame := cleanedFrame(t, 7, 100)

	scales, err := Standardize(frame, []string{"const_com"})
	require.NoError(t, err)
	require.Len(t, scales, 1)

	assert.Equal(t, "const_com", scales[0].Column)
	assert.Greater(t, scales[0].StdDev, 0.0)
	// Likert means sit inside the 1..7 scale
	assert.Greater(t, scales[0].Mean, 1.0)
	assert.Less(t, scales[0].Mean, 7.0)
}

func TestStandardize_UnknownColumn(t *testing.T) {
	frame := cleanedFrame(t, 7, 20)

	_, err := Standardize(frame, []string{"nonexistent"})
	assert.Error(t, err)
}

func TestStandardize_CategoricalRejected(t *testing.T) {
	frame := cleanedFrame(t, 7, 20)

	_, err := Standardize(frame, []string{"female"})
	assert.Error(t, err)
}

func TestStandardize_ZeroVariance(t *testing.T) {
	col := &survey.Column{
		Spec:   survey.ColumnSpec{Name: "flat", Type: survey.ColNumeric},
		Values: []float64{3, 3, 3, 3},
	}
	frame, err := survey.NewFrame([]*survey.Column{col})
	require.NoError(t, err)

	_, err = Standardize(frame, []string{"flat"})
	assert.ErrorContains(t, err, "zero variance")
}
