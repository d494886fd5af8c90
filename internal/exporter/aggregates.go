package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"paperpulse/pkg/contracts/domain"
)

// WriteYearCounts writes a YearCount as a two-column CSV sorted by year
// ascending.
func (w *CSVWriter) WriteYearCounts(path string, yc domain.YearCount) error {
	years := make([]int, 0, len(yc))
	for y := range yc {
		years = append(years, y)
	}
	sort.Ints(years)

	records := make([][]string, 0, len(years))
	for _, y := range years {
		records = append(records, []string{strconv.Itoa(y), strconv.Itoa(yc[y])})
	}
	return w.WriteCSV(path, WriteOptions{
		Headers: []string{"Year", "Count"},
		Records: records,
	})
}

// WriteCategories writes a ranked CategoryCount keeping its order.
func (w *CSVWriter) WriteCategories(path, labelHeader string, cc domain.CategoryCount) error {
	records := make([][]string, 0, len(cc))
	for _, entry := range cc {
		records = append(records, []string{entry.Label, strconv.Itoa(entry.Count)})
	}
	return w.WriteCSV(path, WriteOptions{
		Headers:   []string{labelHeader, "Count"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteWordEntries writes a ranked word-frequency list keeping its order.
func (w *CSVWriter) WriteWordEntries(path string, words []domain.WordEntry) error {
	records := make([][]string, 0, len(words))
	for _, entry := range words {
		records = append(records, []string{entry.Word, strconv.Itoa(entry.Count)})
	}
	return w.WriteCSV(path, WriteOptions{
		Headers: []string{"Word", "Count"},
		Records: records,
	})
}

// WriteSample writes the given records projected onto columns, in
// column order, used for the sample-rows report.
func (w *CSVWriter) WriteSample(path string, columns []string, records []domain.Record) error {
	return w.WriteCSV(path, WriteOptions{
		Headers:   columns,
		Records:   projectRows(columns, records),
		BOMPrefix: true,
	})
}

// WriteDataset writes a full copy of the dataset, every schema column
// and every record, as a plain CSV. Null and absent cells become empty
// fields. Used for the metadata_sample.csv reference copy kept beside
// the reports.
func (w *CSVWriter) WriteDataset(path string, ds domain.Dataset) error {
	return w.WriteCSV(path, WriteOptions{
		Headers: ds.Columns,
		Records: projectRows(ds.Columns, ds.Records),
	})
}

// projectRows renders records onto columns in column order, formatting
// times as dates and leaving null or absent cells empty.
func projectRows(columns []string, records []domain.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := rec.Lookup(col); ok && v != nil {
				if t, isTime := v.(time.Time); isTime {
					row[i] = t.Format("2006-01-02")
				} else {
					row[i] = cast.ToString(v)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteJSON writes any payload to a JSON file wrapped in a small
// envelope with generation metadata.
func WriteJSON(logger *slog.Logger, path string, format string, payload interface{}) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("writing JSON file",
		slog.String("path", path),
		slog.String("format", format))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	envelope := map[string]interface{}{
		"data":         payload,
		"generated_at": time.Now().Format(time.RFC3339),
		"format":       format,
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
