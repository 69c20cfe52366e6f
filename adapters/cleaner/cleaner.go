package cleaner

import (
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"gosegment/domain/survey"
	"gosegment/internal/errors"
)

// Cleaner normalizes headers, enforces the expected column list, drops
// incomplete rows and coerces columns to their declared types.
type Cleaner struct {
	schema []survey.ColumnSpec
}

// Stats describes what cleaning did to the input
type Stats struct {
	RowsLoaded   int
	RowsRetained int
	RowsDropped  int
}

// New creates a cleaner for the expected survey schema
func New(schema []survey.ColumnSpec) *Cleaner {
	return &Cleaner{schema: schema}
}

// Clean runs the full cleaning pass over a raw table. It fails fatally when
// expected columns are absent, enumerating exactly which ones are missing.
// Rows containing any missing or uncoercible value are dropped; no imputation.
func (c *Cleaner) Clean(raw *survey.RawTable) (*survey.Frame, Stats, error) {
	stats := Stats{RowsLoaded: raw.Len()}

	// Map normalized header -> original header as read from the sheet
	headerByClean := make(map[string]string, len(raw.Headers))
	for _, h := range raw.Headers {
		headerByClean[NormalizeHeader(h)] = h
	}

	var missing []string
	for _, spec := range c.schema {
		if _, ok := headerByClean[spec.Name]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, stats, errors.MissingColumns(missing)
	}

	// Coerce row by row; a row survives only if every expected column yields
	// a valid value.
	type coerced struct {
		values []float64
		labels []string
	}
	kept := make([]coerced, 0, raw.Len())

	for _, row := range raw.Rows {
		values := make([]float64, len(c.schema))
		labels := make([]string, len(c.schema))
		complete := true

		for i, spec := range c.schema {
			cell, ok := row[headerByClean[spec.Name]]
			if !ok || strings.TrimSpace(cell) == "" {
				complete = false
				break
			}

			switch spec.Type {
			case survey.ColCategorical:
				labels[i] = normalizeLabel(cell)
				if labels[i] == "" {
					complete = false
				}
			default: // numeric and ordinal both coerce to float codes
				v, ok := parseNumeric(cell)
				if !ok {
					complete = false
					break
				}
				values[i] = v
			}
			if !complete {
				break
			}
		}

		if complete {
			kept = append(kept, coerced{values: values, labels: labels})
		}
	}

	stats.RowsRetained = len(kept)
	stats.RowsDropped = stats.RowsLoaded - stats.RowsRetained
	log.Printf("[Cleaner] %d rows loaded, %d retained, %d dropped (incomplete)",
		stats.RowsLoaded, stats.RowsRetained, stats.RowsDropped)

	if stats.RowsRetained == 0 {
		return nil, stats, errors.InvalidInput("no complete rows remain after cleaning")
	}

	// Assemble column-oriented frame
	cols := make([]*survey.Column, len(c.schema))
	for i, spec := range c.schema {
		col := &survey.Column{Spec: spec}
		if spec.Type == survey.ColCategorical {
			col.Labels = make([]string, len(kept))
			for r, row := range kept {
				col.Labels[r] = row.labels[i]
			}
		} else {
			col.Values = make([]float64, len(kept))
			for r, row := range kept {
				col.Values[r] = row.values[i]
			}
		}
		cols[i] = col
	}

	frame, err := survey.NewFrame(cols)
	if err != nil {
		return nil, stats, errors.Wrap(err, "failed to assemble cleaned frame")
	}
	return frame, stats, nil
}

// NormalizeHeader converts a raw spreadsheet header to its snake_case form:
// "ConstCom" -> "const_com", "Timely Inf" -> "timely_inf".
func NormalizeHeader(h string) string {
	var b strings.Builder
	prevLowerOrDigit := false
	prevUnderscore := false

	for _, r := range strings.TrimSpace(h) {
		switch {
		case unicode.IsUpper(r):
			if prevLowerOrDigit && !prevUnderscore {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLowerOrDigit = false
			prevUnderscore = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevLowerOrDigit = true
			prevUnderscore = false
		default:
			if b.Len() > 0 && !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
			prevLowerOrDigit = false
		}
	}

	return strings.Trim(b.String(), "_")
}

// parseNumeric attempts numeric coercion with the cleanup rules survey
// exports tend to need: surrounding whitespace, parentheses negatives,
// thousands separators.
func parseNumeric(s string) (float64, bool) {
	cleanVal := strings.TrimSpace(s)
	if cleanVal == "" {
		return 0, false
	}

	// Parentheses for negative numbers: (3) -> -3
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.ReplaceAll(cleanVal, " ", "")

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// normalizeLabel applies deterministic string normalization to categorical cells
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
