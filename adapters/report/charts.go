package report

import (
	"fmt"
	"sort"

	"gosegment/domain/segment"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RenderElbow draws the within-cluster sum-of-squares curve used for the
// manual elbow inspection.
func RenderElbow(points []segment.ElbowPoint, path string) error {
	p := plot.New()
	p.Title.Text = "Elbow curve"
	p.X.Label.Text = "clusters (k)"
	p.Y.Label.Text = "total within-cluster sum of squares"

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.K)
		xys[i].Y = pt.WSS
	}

	line, pts, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("elbow line: %w", err)
	}
	line.Color = plotutil.Color(0)
	pts.Color = plotutil.Color(0)
	p.Add(line, pts)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// RenderClusterCounts draws a bar chart of respondent counts per cluster
func RenderClusterCounts(summaries []segment.ClusterSummary, path string) error {
	p := plot.New()
	p.Title.Text = "Respondents per cluster"
	p.Y.Label.Text = "respondents"

	values := make(plotter.Values, len(summaries))
	names := make([]string, len(summaries))
	for i, s := range summaries {
		values[i] = float64(s.Count)
		names[i] = fmt.Sprintf("cluster %d", s.Label)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("count bars: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// RenderAttributeMeans draws the grouped bar chart of mean standardized
// attribute ratings by cluster (the wide-to-long view of the summary table).
func RenderAttributeMeans(attrs []string, summaries []segment.ClusterSummary, path string) error {
	p := plot.New()
	p.Title.Text = "Mean attribute rating by cluster"
	p.Y.Label.Text = "standardized mean"
	p.Legend.Top = true

	w := vg.Points(8)
	for i, s := range summaries {
		values := make(plotter.Values, len(attrs))
		for j, attr := range attrs {
			values[j] = s.Means[attr]
		}
		bars, err := plotter.NewBarChart(values, w)
		if err != nil {
			return fmt.Errorf("attribute bars for cluster %d: %w", s.Label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(i-len(summaries)/2)
		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("cluster %d", s.Label), bars)
	}
	p.NominalX(attrs...)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// RenderSilhouette draws per-respondent silhouette coefficients grouped by
// cluster, each cluster sorted descending, classic silhouette-plot layout.
func RenderSilhouette(rep *segment.SilhouetteReport, a segment.Assignment, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Silhouette plot (mean %.3f)", rep.Mean)
	p.X.Label.Text = "respondents (grouped by cluster)"
	p.Y.Label.Text = "silhouette coefficient"
	p.Y.Min = -1
	p.Y.Max = 1

	offset := 0
	for i, label := range a.DistinctLabels() {
		var scores []float64
		for j, l := range a.Labels {
			if l == label {
				scores = append(scores, rep.Scores[j])
			}
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

		xys := make(plotter.XYs, len(scores))
		for j, s := range scores {
			xys[j].X = float64(offset + j)
			xys[j].Y = s
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("silhouette line for cluster %d: %w", label, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("cluster %d", label), line)

		offset += len(scores)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
