package cluster

import (
	"testing"

	"gosegment/adapters/cleaner"
	"gosegment/adapters/stats"
	"gosegment/domain/segment"
	"gosegment/domain/survey"
	"gosegment/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_CountsAndMeans(t *testing.T) {
	raw := testkit.NewSurveyGenerator(17).Generate(160)
	frame, _, err := cleaner.New(survey.Schema()).Clean(raw)
	require.NoError(t, err)

	_, err = stats.Standardize(frame, survey.LikertColumns)
	require.NoError(t, err)

	points, err := frame.Matrix(survey.LikertColumns)
	require.NoError(t, err)

	res, err := NewKMeans(4, 25, 2023).Fit(points)
	require.NoError(t, err)

	summaries, err := Profile(frame, survey.LikertColumns, res.Assignment)
	require.NoError(t, err)

	// One summary row per distinct label present
	assert.Len(t, summaries, len(res.Assignment.DistinctLabels()))

	// Member counts sum to the cleaned row count
	total := 0
	for _, s := range summaries {
		total += s.Count
		assert.Positive(t, s.Count)
		assert.Len(t, s.Means, len(survey.LikertColumns))
	}
	assert.Equal(t, frame.Len(), total)

	// Summaries arrive in ascending label order
	for i := 1; i < len(summaries); i++ {
		assert.Greater(t, summaries[i].Label, summaries[i-1].Label)
	}
}

func TestProfile_MeansMatchMembers(t *testing.T) {
	col := &survey.Column{
		Spec:   survey.ColumnSpec{Name: "attr", Type: survey.ColNumeric},
		Values: []float64{1, 2, 10, 20},
	}
	frame, err := survey.NewFrame([]*survey.Column{col})
	require.NoError(t, err)

	a := segment.Assignment{Labels: []int{1, 1, 2, 2}, K: 2}
	summaries, err := Profile(frame, []string{"attr"}, a)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.InDelta(t, 1.5, summaries[0].Means["attr"], 1e-9)
	assert.InDelta(t, 15.0, summaries[1].Means["attr"], 1e-9)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, 2, summaries[1].Count)
}

func TestProfile_RowCountMismatch(t *testing.T) {
	col := &survey.Column{
		Spec:   survey.ColumnSpec{Name: "attr", Type: survey.ColNumeric},
		Values: []float64{1, 2, 3},
	}
	frame, err := survey.NewFrame([]*survey.Column{col})
	require.NoError(t, err)

	_, err = Profile(frame, []string{"attr"}, segment.Assignment{Labels: []int{1, 2}, K: 2})
	assert.Error(t, err)
}
