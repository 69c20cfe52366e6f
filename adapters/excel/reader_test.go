package excel

import (
	"os"
	"path/filepath"
	"testing"

	"gosegment/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataReader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	table := testkit.NewSurveyGenerator(1).Generate(25)
	require.NoError(t, testkit.WriteCSV(path, table))

	got, err := NewDataReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, testkit.RawHeaders, got.Headers)
	assert.Equal(t, 25, got.Len())
	assert.Equal(t, table.Rows[0]["ConstCom"], got.Rows[0]["ConstCom"])
}

func TestDataReader_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	table := testkit.NewSurveyGenerator(2).Generate(15)
	require.NoError(t, testkit.WriteXLSX(path, table))

	got, err := NewDataReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, testkit.RawHeaders, got.Headers)
	assert.Equal(t, 15, got.Len())
}

func TestDataReader_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	content := " ConstCom , Age \n 5 , 30 \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := NewDataReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"ConstCom", "Age"}, got.Headers)
	assert.Equal(t, "5", got.Rows[0]["ConstCom"])
	assert.Equal(t, "30", got.Rows[0]["Age"])
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.xlsx")).Read()
	assert.ErrorContains(t, err, "not found")
}

func TestDataReader_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte("ConstCom,Age\n"), 0o644))

	_, err := NewDataReader(path).Read()
	assert.Error(t, err)
}
