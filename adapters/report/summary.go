package report

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"gosegment/domain/segment"
)

// WriteSummaryCSV persists the cluster summary table: one row per cluster,
// the attribute means in the given order followed by the member count.
// An existing file of the same name is overwritten after a logged warning.
func WriteSummaryCSV(path string, attrs []string, summaries []segment.ClusterSummary) error {
	if _, err := os.Stat(path); err == nil {
		log.Printf("[Reporter] %s exists, overwriting", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append(append([]string{"cluster"}, attrs...), "count")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, s := range summaries {
		record := make([]string, 0, len(attrs)+2)
		record = append(record, strconv.Itoa(s.Label))
		for _, attr := range attrs {
			record = append(record, strconv.FormatFloat(s.Means[attr], 'f', 6, 64))
		}
		record = append(record, strconv.Itoa(s.Count))
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row for cluster %d: %w", s.Label, err)
		}
	}

	w.Flush()
	return w.Error()
}
