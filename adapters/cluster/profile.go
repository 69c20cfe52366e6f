package cluster

import (
	"fmt"

	"gosegment/domain/segment"
	"gosegment/domain/survey"

	mfstats "github.com/montanaflynn/stats"
)

// Profile groups respondents by cluster label and computes the member count
// and the mean of each named attribute per cluster. One summary row per label
// actually present, in ascending label order.
func Profile(frame *survey.Frame, attrs []string, a segment.Assignment) ([]segment.ClusterSummary, error) {
	if frame.Len() != len(a.Labels) {
		return nil, fmt.Errorf("frame has %d rows but assignment has %d labels", frame.Len(), len(a.Labels))
	}

	// Row indexes per label
	members := make(map[int][]int, a.K)
	for i, l := range a.Labels {
		members[l] = append(members[l], i)
	}

	summaries := make([]segment.ClusterSummary, 0, len(members))
	for _, label := range a.DistinctLabels() {
		rows := members[label]
		means := make(map[string]float64, len(attrs))

		for _, attr := range attrs {
			col, ok := frame.Column(attr)
			if !ok {
				return nil, fmt.Errorf("column %s not present in frame", attr)
			}
			vals := make([]float64, len(rows))
			for i, r := range rows {
				vals[i] = col.Values[r]
			}
			mean, err := mfstats.Mean(vals)
			if err != nil {
				return nil, fmt.Errorf("mean of %s for cluster %d: %w", attr, label, err)
			}
			means[attr] = mean
		}

		summaries = append(summaries, segment.ClusterSummary{
			Label: label,
			Means: means,
			Count: len(rows),
		})
	}

	return summaries, nil
}
