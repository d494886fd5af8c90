// Command explorer runs the analysis pipeline once over a metadata file
// and writes the aggregate reports: publications per year, top journals,
// source distribution, title word frequencies, cloud weights, and a
// sample of the cleaned dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"paperpulse/internal/analysis"
	"paperpulse/internal/config"
	"paperpulse/internal/exporter"
	"paperpulse/internal/infrastructure"
	"paperpulse/internal/loader"
	"paperpulse/internal/services"
	"paperpulse/internal/validation"
	"paperpulse/pkg/contracts"
)

func main() {
	input := flag.String("input", "", "metadata file to analyze (.csv or .xlsx), defaults to the configured input")
	outDir := flag.String("out", "", "directory for report artifacts, defaults to the configured reports dir")
	fromYear := flag.Int("from", 0, "lower year bound (clamped to a sane range)")
	toYear := flag.Int("to", 0, "upper year bound (clamped to a sane range)")
	topN := flag.Int("top", 0, "number of journals to rank (one of 5, 10, 15, 20)")
	maxRows := flag.Int("max-rows", 0, "maximum data rows to load, 0 uses the configured cap")
	sampleRows := flag.Int("sample", 10, "rows in the exported dataset sample")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *input == "" {
		*input = cfg.Data.InputFile
	}
	if *maxRows > 0 {
		cfg.Data.MaxRows = *maxRows
	}
	if *topN == 0 {
		*topN = cfg.Analysis.DefaultTopN
	}
	if !config.ValidTopN(*topN) {
		slog.Error("invalid top-n, must be one of 5, 10, 15, 20", "top", *topN)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	paths, err := config.NewPaths("", cfg.Data)
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = paths.ReportsDir
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFile(*input); err != nil {
		logger.Error("input validation failed", "error", err)
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(*outDir); err != nil {
		logger.Error("output validation failed", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger.InfoContext(ctx, "starting analysis run",
		slog.String("input", *input),
		slog.String("out_dir", *outDir),
		slog.Int("top_n", *topN))

	cache := loader.NewCache(logger, loader.NewLoader(logger, cfg.Data.MaxRows), nil)
	explorer := services.NewExplorerService(logger, cfg.Analysis, cache, *input, nil)

	if err := explorer.Refresh(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Raw loaded copy, written before imputation so the reference file
	// mirrors the source. The cache makes this a cheap second read.
	raw, err := cache.Load(ctx, *input)
	if err != nil {
		logger.ErrorContext(ctx, "failed to re-read dataset for sample copy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	snap, err := explorer.ComputeSnapshot(ctx, analysis.ClampYearRange(*fromYear, *toYear), *topN)
	if err != nil {
		logger.ErrorContext(ctx, "analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sample, columns, err := explorer.Sample(ctx, *sampleRows)
	if err != nil {
		logger.ErrorContext(ctx, "sample extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	csvWriter := exporter.NewCSVWriter(logger)
	writes := []struct {
		name string
		fn   func() error
	}{
		{"publications_by_year.csv", func() error {
			return csvWriter.WriteYearCounts(filepath.Join(*outDir, "publications_by_year.csv"), snap.Years)
		}},
		{"top_journals.csv", func() error {
			return csvWriter.WriteCategories(filepath.Join(*outDir, "top_journals.csv"), "Journal", snap.TopJournals)
		}},
		{"sources.csv", func() error {
			return csvWriter.WriteCategories(filepath.Join(*outDir, "sources.csv"), "Source", snap.Sources)
		}},
		{"title_words.csv", func() error {
			return csvWriter.WriteWordEntries(filepath.Join(*outDir, "title_words.csv"), snap.TopWords)
		}},
		{cfg.Data.SampleFile, func() error {
			return csvWriter.WriteDataset(cfg.Data.SampleFile, raw)
		}},
		{"sample_rows.csv", func() error {
			return csvWriter.WriteSample(filepath.Join(*outDir, "sample_rows.csv"), columns, sample)
		}},
		{"analysis_snapshot.json", func() error {
			return exporter.WriteJSON(logger, filepath.Join(*outDir, "analysis_snapshot.json"), "analysis_snapshot_v1", snap)
		}},
	}
	for _, write := range writes {
		if err := write.fn(); err != nil {
			logger.ErrorContext(ctx, "failed to write report",
				slog.String("artifact", write.name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.InfoContext(ctx, "analysis run complete",
		slog.Int("years", len(snap.Years)),
		slog.Int("journals", len(snap.TopJournals)),
		slog.Int("sources", len(snap.Sources)),
		slog.Int("words", len(snap.TopWords)),
		slog.String("out_dir", *outDir))
}
