package cluster

import (
	"testing"

	"gosegment/domain/segment"
	"gosegment/internal/testkit"
)

func TestSilhouette_ScoresInRange(t *testing.T) {
	gen := testkit.NewSurveyGenerator(13)
	points, _ := gen.Blobs(120, 4, 3, 1.5)

	res, err := NewKMeans(4, 25, 2023).Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	rep, err := Silhouette(points, res.Assignment)
	if err != nil {
		t.Fatalf("Silhouette failed: %v", err)
	}

	if len(rep.Scores) != len(points) {
		t.Fatalf("expected %d scores, got %d", len(points), len(rep.Scores))
	}
	for i, s := range rep.Scores {
		if s < -1 || s > 1 {
			t.Errorf("score %f at index %d outside [-1, 1]", s, i)
		}
	}
	if rep.Mean < -1 || rep.Mean > 1 {
		t.Errorf("mean silhouette %f outside [-1, 1]", rep.Mean)
	}
}

func TestSilhouette_SeparatedClustersScoreHigh(t *testing.T) {
	gen := testkit.NewSurveyGenerator(8)
	points, truth := gen.Blobs(100, 4, 2, 0.3)

	rep, err := Silhouette(points, segment.Assignment{Labels: truth, K: 4})
	if err != nil {
		t.Fatalf("Silhouette failed: %v", err)
	}

	if rep.Mean < 0.7 {
		t.Errorf("expected high mean silhouette for tight separated blobs, got %f", rep.Mean)
	}
}

func TestSilhouette_SingleClusterRejected(t *testing.T) {
	points := [][]float64{{1, 1}, {2, 2}, {3, 3}}
	labels := segment.Assignment{Labels: []int{1, 1, 1}, K: 1}

	if _, err := Silhouette(points, labels); err == nil {
		t.Error("expected error for single-cluster assignment")
	}
}

func TestSilhouette_SingletonClusterScoresZero(t *testing.T) {
	points := [][]float64{{0, 0}, {0, 1}, {10, 10}}
	labels := segment.Assignment{Labels: []int{1, 1, 2}, K: 2}

	rep, err := Silhouette(points, labels)
	if err != nil {
		t.Fatalf("Silhouette failed: %v", err)
	}
	if rep.Scores[2] != 0 {
		t.Errorf("singleton member should score 0, got %f", rep.Scores[2])
	}
}

func TestSilhouette_LabelMismatch(t *testing.T) {
	points := [][]float64{{1}, {2}}
	labels := segment.Assignment{Labels: []int{1}, K: 2}

	if _, err := Silhouette(points, labels); err == nil {
		t.Error("expected error for point/label count mismatch")
	}
}
