package exporter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperpulse/pkg/contracts/domain"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCSVWriter_WriteYearCounts(t *testing.T) {
	w := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "years.csv")

	err := w.WriteYearCounts(path, domain.YearCount{2021: 3, 2019: 1, 2020: 2})
	require.NoError(t, err)

	assert.Equal(t, "Year,Count\n2019,1\n2020,2\n2021,3\n", readFile(t, path))
}

func TestCSVWriter_WriteCategories(t *testing.T) {
	w := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "journals.csv")

	err := w.WriteCategories(path, "Journal", domain.CategoryCount{
		{Label: "Nature", Count: 5},
		{Label: "The Lancet", Count: 3},
	})
	require.NoError(t, err)

	content := readFile(t, path)
	assert.Equal(t, "\xEF\xBB\xBF", content[:3], "Excel-compatible BOM prefix")
	assert.Equal(t, "Journal,Count\nNature,5\nThe Lancet,3\n", content[3:])
}

func TestCSVWriter_WriteWordEntries(t *testing.T) {
	w := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "words.csv")

	err := w.WriteWordEntries(path, []domain.WordEntry{
		{Word: "vaccine", Count: 12},
		{Word: "immunity", Count: 7},
	})
	require.NoError(t, err)

	assert.Equal(t, "Word,Count\nvaccine,12\nimmunity,7\n", readFile(t, path))
}

func TestCSVWriter_WriteSample(t *testing.T) {
	w := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "sample.csv")

	records := []domain.Record{
		{
			"title":        "Paper A",
			"journal":      "Nature",
			"publish_time": time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC),
			"mag_id":       int64(42),
		},
		{
			"title":   "Paper B",
			"journal": nil,
		},
	}
	err := w.WriteSample(path, []string{"title", "journal", "publish_time", "mag_id"}, records)
	require.NoError(t, err)

	content := readFile(t, path)
	assert.Equal(t,
		"title,journal,publish_time,mag_id\nPaper A,Nature,2020-03-15,42\nPaper B,,,\n",
		content[3:])
}

func TestCSVWriter_WriteDataset(t *testing.T) {
	w := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "metadata_sample.csv")

	ds := domain.Dataset{
		Columns: []string{"title", "journal", "source_x"},
		Records: []domain.Record{
			{"title": "Paper A", "journal": "Nature", "source_x": "PMC"},
			{"title": nil, "journal": "BMJ"},
			{"title": "Paper C", "journal": nil, "source_x": "Elsevier"},
		},
	}
	err := w.WriteDataset(path, ds)
	require.NoError(t, err)

	assert.Equal(t,
		"title,journal,source_x\nPaper A,Nature,PMC\n,BMJ,\nPaper C,,Elsevier\n",
		readFile(t, path),
		"every schema column and every record, nulls and absent cells empty")
}

func TestCSVWriter_CreatesParentDirectories(t *testing.T) {
	w := NewCSVWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "nested", "reports", "out.csv")

	err := w.WriteCSV(path, WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}}})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	err := WriteJSON(slog.Default(), path, "analysis_snapshot", map[string]int{"total": 3})
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &envelope))
	assert.Equal(t, "analysis_snapshot", envelope["format"])
	assert.NotEmpty(t, envelope["generated_at"])
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), data["total"])
}
