// Package loader reads tabular paper metadata from CSV or Excel files
// into a dataset, discovering the schema from the header row. It also
// provides an explicit, fingerprint-keyed cache so callers control when
// a file is re-read instead of relying on process-lifetime memoization.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"paperpulse/pkg/contracts/domain"
)

// Loader reads metadata files into datasets. A zero MaxRows loads the
// whole file; a positive value caps the number of data rows, which
// keeps exploratory runs on the full corpus cheap.
type Loader struct {
	logger  *slog.Logger
	maxRows int
}

// NewLoader creates a loader. maxRows <= 0 means unlimited.
func NewLoader(logger *slog.Logger, maxRows int) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, maxRows: maxRows}
}

// Load reads the file at path, dispatching on its extension. ".xlsx"
// is read as Excel, everything else as CSV.
func (l *Loader) Load(ctx context.Context, path string) (domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return l.LoadExcel(ctx, path)
	default:
		return l.LoadCSV(ctx, path)
	}
}

// LoadCSV reads a CSV file whose first row is the header. Ragged rows
// are tolerated: short rows leave trailing columns absent, and cells
// beyond the header are dropped. Empty cells become null values.
func (l *Loader) LoadCSV(ctx context.Context, path string) (domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open metadata file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return domain.Dataset{}, fmt.Errorf("metadata file %s is empty", path)
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read header row: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	ds := domain.Dataset{Columns: columns}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("read data row %d: %w", len(ds.Records)+2, err)
		}
		ds.Records = append(ds.Records, rowToRecord(columns, row))
		if l.maxRows > 0 && len(ds.Records) >= l.maxRows {
			l.logger.InfoContext(ctx, "row cap reached, truncating load",
				slog.String("path", path),
				slog.Int("max_rows", l.maxRows))
			break
		}
	}

	l.logger.InfoContext(ctx, "loaded metadata CSV",
		slog.String("path", path),
		slog.Int("records", len(ds.Records)),
		slog.Int("columns", len(ds.Columns)))

	return ds, nil
}

// LoadExcel reads the first sheet that holds more than a header row.
// Workbooks exported from the corpus sometimes carry empty cover sheets
// ahead of the data.
func (l *Loader) LoadExcel(ctx context.Context, path string) (domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		candidate, err := f.GetRows(name)
		if err == nil && len(candidate) > 1 {
			rows = candidate
			sheetName = name
			break
		}
	}
	if sheetName == "" {
		return domain.Dataset{}, fmt.Errorf("no data sheet found in %s", path)
	}

	columns := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		columns[i] = strings.TrimSpace(name)
	}

	ds := domain.Dataset{Columns: columns}
	for _, row := range rows[1:] {
		ds.Records = append(ds.Records, rowToRecord(columns, row))
		if l.maxRows > 0 && len(ds.Records) >= l.maxRows {
			break
		}
	}

	l.logger.InfoContext(ctx, "loaded metadata workbook",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("records", len(ds.Records)),
		slog.Int("columns", len(ds.Columns)))

	return ds, nil
}

// rowToRecord maps a raw row onto the header columns. Cells beyond the
// header are dropped; missing trailing cells leave the column absent.
func rowToRecord(columns []string, row []string) domain.Record {
	rec := make(domain.Record, len(columns))
	for i, col := range columns {
		if i >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			rec[col] = nil
			continue
		}
		rec[col] = cell
	}
	return rec
}
