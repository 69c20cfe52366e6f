package run

import (
	"gosegment/domain/core"
)

// Manifest records the parameters and outcomes of one pipeline run.
// It is the replay record: identical SourceFile, Seed, Restarts and input
// order reproduce identical assignments.
type Manifest struct {
	RunID          core.RunID     `json:"run_id"`
	SourceFile     string         `json:"source_file"`
	K              int            `json:"k"`
	Seed           int64          `json:"seed"`
	Restarts       int            `json:"restarts"`
	RowsLoaded     int            `json:"rows_loaded"`
	RowsRetained   int            `json:"rows_retained"`
	RowsDropped    int            `json:"rows_dropped"`
	MeanSilhouette float64        `json:"mean_silhouette"`
	CodeVersion    string         `json:"code_version"`
	CreatedAt      core.Timestamp `json:"created_at"`
}

// NewManifest creates a manifest for a starting run
func NewManifest(sourceFile string, k int, seed int64, restarts int) *Manifest {
	return &Manifest{
		RunID:      core.NewRunID(),
		SourceFile: sourceFile,
		K:          k,
		Seed:       seed,
		Restarts:   restarts,
		CreatedAt:  core.Now(),
	}
}
