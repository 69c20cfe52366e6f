package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gosegment/adapters/cleaner"
	"gosegment/adapters/cluster"
	"gosegment/adapters/report"
	"gosegment/adapters/stats"
	"gosegment/domain/run"
	"gosegment/domain/segment"
	"gosegment/domain/survey"
	"gosegment/internal"
	"gosegment/internal/config"
	"gosegment/internal/errors"
	"gosegment/ports"
)

// Version is stamped into run manifests
const Version = "0.3.0"

// Pipeline runs the segmentation stages strictly in order: load, clean,
// standardize, elbow sweep, cluster, profile, validate, report. Each stage
// consumes only the previous stage's output.
type Pipeline struct {
	cfg    *config.Config
	reader ports.SurveyReader
	store  ports.RunStore // nil disables persistence
	logger *internal.Logger
}

// NewPipeline wires the pipeline dependencies
func NewPipeline(cfg *config.Config, reader ports.SurveyReader, store ports.RunStore, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{cfg: cfg, reader: reader, store: store, logger: logger}
}

// RunResult carries every artifact of a completed run
type RunResult struct {
	Manifest   *run.Manifest
	Elbow      []segment.ElbowPoint
	Assignment segment.Assignment
	Summaries  []segment.ClusterSummary
	Silhouette *segment.SilhouetteReport
}

// Run executes the full pipeline and writes all report artifacts
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	cc := p.cfg.Cluster

	manifest := run.NewManifest(p.cfg.Data.SurveyFile, cc.K, cc.Seed, cc.Restarts)
	manifest.CodeVersion = Version
	p.logger.Info("run %s starting (k=%d seed=%d restarts=%d)", manifest.RunID, cc.K, cc.Seed, cc.Restarts)

	frame, cleanStats, err := p.loadAndClean()
	if err != nil {
		return nil, err
	}
	manifest.RowsLoaded = cleanStats.RowsLoaded
	manifest.RowsRetained = cleanStats.RowsRetained
	manifest.RowsDropped = cleanStats.RowsDropped

	points, err := p.standardize(frame)
	if err != nil {
		return nil, err
	}

	p.logger.Info("sweeping elbow curve for k=1..%d", cc.ElbowMax)
	elbow, err := cluster.Sweep(points, cc.ElbowMax, cc.Restarts, cc.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "elbow sweep failed")
	}

	// The fit is the only guarded failure path: errors are logged and the
	// run halts rather than continuing with partial results.
	km := cluster.NewKMeans(cc.K, cc.Restarts, cc.Seed)
	fit, err := km.Fit(points)
	if err != nil {
		p.logger.Error("k-means fit failed: %v", err)
		return nil, errors.ClusteringFailed(err)
	}
	p.logger.Info("k-means converged, WSS=%.3f", fit.WSS)

	summaries, err := cluster.Profile(frame, survey.LikertColumns, fit.Assignment)
	if err != nil {
		return nil, errors.Wrap(err, "cluster profiling failed")
	}

	sil, err := cluster.Silhouette(points, fit.Assignment)
	if err != nil {
		return nil, errors.Wrap(err, "silhouette validation failed")
	}
	manifest.MeanSilhouette = sil.Mean
	p.logger.Info("mean silhouette %.3f over %d respondents", sil.Mean, len(sil.Scores))

	result := &RunResult{
		Manifest:   manifest,
		Elbow:      elbow,
		Assignment: fit.Assignment,
		Summaries:  summaries,
		Silhouette: sil,
	}

	if err := p.report(result); err != nil {
		return nil, err
	}

	if p.store != nil {
		if err := p.persist(ctx, result); err != nil {
			return nil, err
		}
	}

	p.logger.Info("run %s finished in %.2fs", manifest.RunID, time.Since(start).Seconds())
	return result, nil
}

// RunElbow executes only load, clean, standardize and the elbow sweep,
// rendering the curve for manual inspection.
func (p *Pipeline) RunElbow(ctx context.Context) ([]segment.ElbowPoint, error) {
	frame, _, err := p.loadAndClean()
	if err != nil {
		return nil, err
	}
	points, err := p.standardize(frame)
	if err != nil {
		return nil, err
	}

	cc := p.cfg.Cluster
	elbow, err := cluster.Sweep(points, cc.ElbowMax, cc.Restarts, cc.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "elbow sweep failed")
	}

	if err := os.MkdirAll(p.cfg.Output.ChartDir, 0o755); err != nil {
		return nil, errors.IOError("failed to create chart directory", err)
	}
	chartPath := filepath.Join(p.cfg.Output.ChartDir, "elbow.png")
	if err := report.RenderElbow(elbow, chartPath); err != nil {
		return nil, errors.IOError("failed to render elbow curve", err)
	}
	p.logger.Info("elbow curve written to %s", chartPath)
	return elbow, nil
}

// ColumnProfile describes one cleaned column for the inspect command
type ColumnProfile struct {
	Name     string
	Type     survey.ColType
	Distinct int
}

// Inspect loads and cleans only, returning a per-column profile
func (p *Pipeline) Inspect(ctx context.Context) ([]ColumnProfile, cleaner.Stats, error) {
	frame, cleanStats, err := p.loadAndClean()
	if err != nil {
		return nil, cleaner.Stats{}, err
	}

	profiles := make([]ColumnProfile, 0, len(frame.Columns()))
	for _, col := range frame.Columns() {
		distinct := make(map[string]struct{})
		if col.Spec.Type == survey.ColCategorical {
			for _, l := range col.Labels {
				distinct[l] = struct{}{}
			}
		} else {
			for _, v := range col.Values {
				distinct[fmt.Sprintf("%g", v)] = struct{}{}
			}
		}
		profiles = append(profiles, ColumnProfile{
			Name:     col.Spec.Name,
			Type:     col.Spec.Type,
			Distinct: len(distinct),
		})
	}
	return profiles, cleanStats, nil
}

func (p *Pipeline) loadAndClean() (*survey.Frame, cleaner.Stats, error) {
	raw, err := p.reader.Read()
	if err != nil {
		return nil, cleaner.Stats{}, errors.IOError("failed to load survey file", err)
	}

	frame, cleanStats, err := cleaner.New(survey.Schema()).Clean(raw)
	if err != nil {
		return nil, cleanStats, err
	}
	return frame, cleanStats, nil
}

func (p *Pipeline) standardize(frame *survey.Frame) ([][]float64, error) {
	scales, err := stats.Standardize(frame, survey.LikertColumns)
	if err != nil {
		return nil, errors.Wrap(err, "standardization failed")
	}
	for _, s := range scales {
		p.logger.Debug("standardized %s (mean=%.3f sd=%.3f)", s.Column, s.Mean, s.StdDev)
	}

	points, err := frame.Matrix(survey.LikertColumns)
	if err != nil {
		return nil, errors.Wrap(err, "attribute matrix extraction failed")
	}
	return points, nil
}

// report writes the summary CSV, the four charts, the run manifest and the
// markdown/HTML report.
func (p *Pipeline) report(res *RunResult) error {
	out := p.cfg.Output

	if err := report.WriteSummaryCSV(out.SummaryFile, survey.LikertColumns, res.Summaries); err != nil {
		return errors.IOError("failed to write cluster summary", err)
	}
	p.logger.Info("cluster summary written to %s", out.SummaryFile)

	if err := os.MkdirAll(out.ChartDir, 0o755); err != nil {
		return errors.IOError("failed to create chart directory", err)
	}
	charts := []struct {
		name   string
		render func(string) error
	}{
		{"elbow.png", func(path string) error { return report.RenderElbow(res.Elbow, path) }},
		{"cluster_counts.png", func(path string) error { return report.RenderClusterCounts(res.Summaries, path) }},
		{"attribute_means.png", func(path string) error {
			return report.RenderAttributeMeans(survey.LikertColumns, res.Summaries, path)
		}},
		{"silhouette.png", func(path string) error {
			return report.RenderSilhouette(res.Silhouette, res.Assignment, path)
		}},
	}
	for _, c := range charts {
		path := filepath.Join(out.ChartDir, c.name)
		if err := c.render(path); err != nil {
			return errors.IOError(fmt.Sprintf("failed to render %s", c.name), err)
		}
	}
	p.logger.Info("charts written to %s", out.ChartDir)

	manifestJSON, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal run manifest")
	}
	if err := os.WriteFile(out.ManifestFile, manifestJSON, 0o644); err != nil {
		return errors.IOError("failed to write run manifest", err)
	}

	if err := report.WriteRunReport(out.ReportFile, res.Manifest, survey.LikertColumns,
		res.Elbow, res.Summaries, res.Silhouette); err != nil {
		return errors.IOError("failed to write run report", err)
	}
	p.logger.Info("run report written to %s", out.ReportFile)
	return nil
}

func (p *Pipeline) persist(ctx context.Context, res *RunResult) error {
	if err := p.store.SaveManifest(ctx, res.Manifest); err != nil {
		return errors.Wrap(err, "failed to persist run manifest")
	}
	if err := p.store.SaveSummaries(ctx, res.Manifest.RunID, res.Summaries); err != nil {
		return errors.Wrap(err, "failed to persist cluster summaries")
	}
	p.logger.Info("run %s persisted", res.Manifest.RunID)
	return nil
}
