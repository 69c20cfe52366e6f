package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"gosegment/domain/survey"

	"github.com/xuri/excelize/v2"
)

// RawHeaders are the spreadsheet headers as they appear in the source file,
// before the cleaner normalizes them.
var RawHeaders = []string{
	"ConstCom", "TimelyInf", "TaskMgm", "DeviceSt", "Wellness", "Athlete", "Style",
	"Female", "Degree", "Income", "Age", "AmznP",
}

// archetype is a synthetic behavioral segment: mean Likert tendencies the
// generator samples around.
type archetype struct {
	likert [7]float64
}

var archetypes = []archetype{
	{likert: [7]float64{6, 6, 5, 5, 2, 2, 3}}, // communicator
	{likert: [7]float64{2, 3, 2, 3, 6, 6, 2}}, // athlete
	{likert: [7]float64{3, 3, 6, 6, 3, 2, 2}}, // organizer
	{likert: [7]float64{2, 2, 2, 3, 3, 3, 6}}, // fashion-first
}

// SurveyGenerator produces deterministic synthetic survey tables for tests
type SurveyGenerator struct {
	rng *rand.Rand
}

// NewSurveyGenerator creates a generator with a fixed seed for reproducibility
func NewSurveyGenerator(seed int64) *SurveyGenerator {
	return &SurveyGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces n complete respondent rows drawn round-robin from the
// four behavioral archetypes.
func (g *SurveyGenerator) Generate(n int) *survey.RawTable {
	rows := make([]survey.RawRow, n)
	for i := 0; i < n; i++ {
		rows[i] = g.respondent(archetypes[i%len(archetypes)])
	}
	return &survey.RawTable{Headers: append([]string(nil), RawHeaders...), Rows: rows}
}

// GenerateWithMissing produces n rows and blanks one Likert cell in every
// missingEvery-th row, so cleaner drop behavior can be asserted.
func (g *SurveyGenerator) GenerateWithMissing(n, missingEvery int) *survey.RawTable {
	table := g.Generate(n)
	for i := range table.Rows {
		if missingEvery > 0 && i%missingEvery == 0 {
			attr := RawHeaders[g.rng.Intn(7)]
			table.Rows[i][attr] = ""
		}
	}
	return table
}

func (g *SurveyGenerator) respondent(a archetype) survey.RawRow {
	row := make(survey.RawRow, len(RawHeaders))
	for i := 0; i < 7; i++ {
		row[RawHeaders[i]] = strconv.Itoa(g.likertValue(a.likert[i]))
	}

	female := "no"
	if g.rng.Intn(2) == 1 {
		female = "yes"
	}
	row["Female"] = female
	row["Degree"] = strconv.Itoa(1 + g.rng.Intn(3))
	row["Income"] = strconv.Itoa(1 + g.rng.Intn(5))
	row["Age"] = strconv.Itoa(18 + g.rng.Intn(50))

	amzn := "no"
	if g.rng.Intn(2) == 1 {
		amzn = "yes"
	}
	row["AmznP"] = amzn
	return row
}

// likertValue samples around a mean and clamps to the 1..7 scale
func (g *SurveyGenerator) likertValue(mean float64) int {
	v := int(math.Round(mean + g.rng.NormFloat64()))
	if v < 1 {
		v = 1
	}
	if v > 7 {
		v = 7
	}
	return v
}

// Blobs generates k well-separated Gaussian clusters of points for direct
// engine tests, n points total, in input order grouped by cluster.
func (g *SurveyGenerator) Blobs(n, k, dim int, spread float64) ([][]float64, []int) {
	points := make([][]float64, 0, n)
	truth := make([]int, 0, n)
	for i := 0; i < n; i++ {
		c := i % k
		p := make([]float64, dim)
		for d := 0; d < dim; d++ {
			center := 0.0
			if d == c%dim {
				center = 10.0 * float64(c/dim+1)
			}
			p[d] = center + g.rng.NormFloat64()*spread
		}
		points = append(points, p)
		truth = append(truth, c+1)
	}
	return points, truth
}

// WriteCSV writes a raw table as a CSV fixture
func WriteCSV(path string, table *survey.RawTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create fixture: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := make([]string, len(table.Headers))
		for i, h := range table.Headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes a raw table as an Excel fixture on Sheet1
func WriteXLSX(path string, table *survey.RawTable) error {
	f := excelize.NewFile()
	defer f.Close()

	for j, h := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue("Sheet1", cell, h); err != nil {
			return err
		}
	}
	for i, row := range table.Rows {
		for j, h := range table.Headers {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Sheet1", cell, row[h]); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
