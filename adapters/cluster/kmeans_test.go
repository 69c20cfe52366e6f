package cluster

import (
	"testing"

	"gosegment/internal/testkit"
)

func TestKMeans_RecoversSeparatedBlobs(t *testing.T) {
	gen := testkit.NewSurveyGenerator(42)
	points, truth := gen.Blobs(200, 4, 2, 0.5)

	km := NewKMeans(4, 25, 2023)
	res, err := km.Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if len(res.Assignment.Labels) != len(points) {
		t.Fatalf("expected %d labels, got %d", len(points), len(res.Assignment.Labels))
	}

	// Labels are 1-based and within {1..k}
	for i, l := range res.Assignment.Labels {
		if l < 1 || l > 4 {
			t.Errorf("label %d at index %d outside {1..4}", l, i)
		}
	}

	// With well-separated blobs every true cluster maps to exactly one label
	mapping := make(map[int]int)
	for i, trueLabel := range truth {
		got := res.Assignment.Labels[i]
		if want, seen := mapping[trueLabel]; seen {
			if got != want {
				t.Fatalf("true cluster %d split across labels %d and %d", trueLabel, want, got)
			}
		} else {
			mapping[trueLabel] = got
		}
	}
	if len(mapping) != 4 {
		t.Errorf("expected 4 recovered clusters, got %d", len(mapping))
	}
}

func TestKMeans_Deterministic(t *testing.T) {
	gen := testkit.NewSurveyGenerator(9)
	points, _ := gen.Blobs(150, 4, 3, 1.0)

	first, err := NewKMeans(4, 25, 2023).Fit(points)
	if err != nil {
		t.Fatalf("first fit failed: %v", err)
	}
	second, err := NewKMeans(4, 25, 2023).Fit(points)
	if err != nil {
		t.Fatalf("second fit failed: %v", err)
	}

	for i := range first.Assignment.Labels {
		if first.Assignment.Labels[i] != second.Assignment.Labels[i] {
			t.Fatalf("assignments diverge at index %d with identical seed", i)
		}
	}
	if first.WSS != second.WSS {
		t.Errorf("WSS diverges with identical seed: %f vs %f", first.WSS, second.WSS)
	}
}

func TestKMeans_DegenerateInput(t *testing.T) {
	if _, err := NewKMeans(4, 25, 1).Fit(nil); err == nil {
		t.Error("expected error for empty input")
	}

	// Three distinct points cannot support four clusters
	points := [][]float64{{1, 1}, {2, 2}, {3, 3}, {1, 1}, {2, 2}}
	if _, err := NewKMeans(4, 25, 1).Fit(points); err == nil {
		t.Error("expected error when distinct points < k")
	}

	// Inconsistent dimensions
	bad := [][]float64{{1, 2}, {3}}
	if _, err := NewKMeans(1, 1, 1).Fit(bad); err == nil {
		t.Error("expected error for inconsistent dimensions")
	}
}

func TestKMeans_SingleCluster(t *testing.T) {
	gen := testkit.NewSurveyGenerator(4)
	points, _ := gen.Blobs(50, 2, 2, 1.0)

	res, err := NewKMeans(1, 5, 1).Fit(points)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	for _, l := range res.Assignment.Labels {
		if l != 1 {
			t.Fatalf("expected all labels 1 for k=1, got %d", l)
		}
	}
	if res.WSS <= 0 {
		t.Errorf("expected positive WSS for k=1 over spread data, got %f", res.WSS)
	}
}

func TestSweep_ElbowCurve(t *testing.T) {
	gen := testkit.NewSurveyGenerator(21)
	points, _ := gen.Blobs(200, 4, 2, 0.8)

	elbow, err := Sweep(points, 10, 25, 2023)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(elbow) != 10 {
		t.Fatalf("expected 10 elbow points, got %d", len(elbow))
	}
	for i, pt := range elbow {
		if pt.K != i+1 {
			t.Errorf("elbow point %d has k=%d, expected %d", i, pt.K, i+1)
		}
		if pt.WSS < 0 {
			t.Errorf("negative WSS %f at k=%d", pt.WSS, pt.K)
		}
	}

	// WSS should broadly shrink as k grows; with 25 restarts the curve is
	// effectively monotone on blob data
	if elbow[3].WSS >= elbow[0].WSS {
		t.Errorf("expected WSS at k=4 (%f) below k=1 (%f)", elbow[3].WSS, elbow[0].WSS)
	}
	if elbow[9].WSS > elbow[3].WSS {
		t.Errorf("expected WSS at k=10 (%f) at or below k=4 (%f)", elbow[9].WSS, elbow[3].WSS)
	}
}

func TestSweep_Deterministic(t *testing.T) {
	gen := testkit.NewSurveyGenerator(33)
	points, _ := gen.Blobs(120, 3, 2, 1.0)

	first, err := Sweep(points, 6, 10, 99)
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	second, err := Sweep(points, 6, 10, 99)
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}

	for i := range first {
		if first[i].WSS != second[i].WSS {
			t.Fatalf("sweep diverges at k=%d: %f vs %f", first[i].K, first[i].WSS, second[i].WSS)
		}
	}
}
