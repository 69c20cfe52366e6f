package ports

import (
	"context"

	"gosegment/domain/core"
	"gosegment/domain/run"
	"gosegment/domain/segment"
)

// RunStore persists run manifests and cluster summaries for later comparison
// across runs. Persistence is optional; the pipeline runs without a store.
type RunStore interface {
	SaveManifest(ctx context.Context, manifest *run.Manifest) error
	SaveSummaries(ctx context.Context, runID core.RunID, summaries []segment.ClusterSummary) error
	Close() error
}
