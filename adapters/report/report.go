package report

import (
	"fmt"
	"os"
	"strings"

	"gosegment/domain/run"
	"gosegment/domain/segment"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// WriteRunReport renders the run summary as markdown and a standalone HTML
// page next to it (same path with .html extension).
func WriteRunReport(path string, manifest *run.Manifest, attrs []string,
	elbow []segment.ElbowPoint, summaries []segment.ClusterSummary, sil *segment.SilhouetteReport) error {

	md := buildMarkdown(manifest, attrs, elbow, summaries, sil)

	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	htmlPath := strings.TrimSuffix(path, ".md") + ".html"
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	rendered := markdown.ToHTML([]byte(md), p, renderer)

	if err := os.WriteFile(htmlPath, rendered, 0o644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	return nil
}

func buildMarkdown(manifest *run.Manifest, attrs []string,
	elbow []segment.ElbowPoint, summaries []segment.ClusterSummary, sil *segment.SilhouetteReport) string {

	var b strings.Builder

	b.WriteString("# Market segmentation run\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", manifest.RunID)
	fmt.Fprintf(&b, "- Source: `%s`\n", manifest.SourceFile)
	fmt.Fprintf(&b, "- k=%d, seed=%d, restarts=%d\n", manifest.K, manifest.Seed, manifest.Restarts)
	fmt.Fprintf(&b, "- Rows: %d loaded, %d retained, %d dropped\n\n",
		manifest.RowsLoaded, manifest.RowsRetained, manifest.RowsDropped)

	b.WriteString("## Elbow curve\n\n")
	b.WriteString("| k | WSS |\n|---|-----|\n")
	for _, pt := range elbow {
		fmt.Fprintf(&b, "| %d | %.3f |\n", pt.K, pt.WSS)
	}
	b.WriteString("\nCluster count selection is manual: inspect the curve for diminishing returns.\n\n")

	b.WriteString("## Cluster profile\n\n")
	b.WriteString("| cluster |")
	for _, attr := range attrs {
		fmt.Fprintf(&b, " %s |", attr)
	}
	b.WriteString(" count |\n|---|")
	for range attrs {
		b.WriteString("---|")
	}
	b.WriteString("---|\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %d |", s.Label)
		for _, attr := range attrs {
			fmt.Fprintf(&b, " %.3f |", s.Means[attr])
		}
		fmt.Fprintf(&b, " %d |\n", s.Count)
	}

	fmt.Fprintf(&b, "\n## Validation\n\nMean silhouette coefficient: **%.3f** over %d respondents.\n",
		sil.Mean, len(sil.Scores))

	return b.String()
}
