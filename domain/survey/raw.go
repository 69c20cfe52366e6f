package survey

// RawRow is one uncoerced spreadsheet row keyed by header name
type RawRow map[string]string

// RawTable is the loader output before cleaning: trimmed headers and
// string-valued rows, exactly as read from the sheet.
type RawTable struct {
	Headers []string
	Rows    []RawRow
}

// Len returns the number of data rows
func (t *RawTable) Len() int { return len(t.Rows) }
