// Package services wires the pipeline together: loading, imputation,
// and the aggregate queries the transport layer exposes.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"paperpulse/internal/analysis"
	"paperpulse/internal/cleaning"
	"paperpulse/internal/config"
	"paperpulse/internal/infrastructure"
	"paperpulse/internal/loader"
	"paperpulse/pkg/contracts/domain"
)

// ErrDatasetNotLoaded is returned by queries before the first Refresh.
var ErrDatasetNotLoaded = errors.New("dataset not loaded")

// sampleColumns are the informative columns projected into sample rows,
// in display order, skipping any absent from the schema.
var sampleColumns = []string{"title", "journal", "authors", "publish_time", "doi", "abstract"}

// Sample row bounds.
const (
	minSampleRows     = 5
	maxSampleRows     = 50
	defaultSampleRows = 10
)

// ExplorerService owns the imputed dataset snapshot and answers the
// aggregate queries over it. The snapshot is immutable once built, so
// queries run lock-free apart from the snapshot swap on Refresh.
type ExplorerService struct {
	logger       *slog.Logger
	cfg          config.AnalysisConfig
	cache        *loader.Cache
	inputPath    string
	imputer      *cleaning.Imputer
	placeholders analysis.Placeholders
	stopWords    analysis.StopWords
	metrics      *infrastructure.BusinessMetrics

	mu      sync.RWMutex
	dataset domain.Dataset
	loaded  bool
}

// NewExplorerService creates the service. metrics may be nil when
// observability is disabled.
func NewExplorerService(logger *slog.Logger, cfg config.AnalysisConfig, cache *loader.Cache, inputPath string, metrics *infrastructure.BusinessMetrics) *ExplorerService {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := cleaning.MetadataDefaults()
	stop := analysis.DefaultStopWords()
	stop.Add(cfg.ExtraStopWords...)

	return &ExplorerService{
		logger:       logger.With(slog.String("component", "explorer_service")),
		cfg:          cfg,
		cache:        cache,
		inputPath:    inputPath,
		imputer:      cleaning.NewImputer(logger, defaults),
		placeholders: analysis.NewPlaceholders(defaults.TextSentinels()...),
		stopWords:    stop,
		metrics:      metrics,
	}
}

// Refresh loads the input file (through the cache) and imputes it into
// a fresh snapshot. Safe to call concurrently with queries; readers see
// either the old or the new snapshot, never a partial one.
func (s *ExplorerService) Refresh(ctx context.Context) error {
	raw, err := s.cache.Load(ctx, s.inputPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	imputed := s.imputer.Impute(ctx, raw)
	if s.metrics != nil {
		s.metrics.RowsImputed.Add(ctx, int64(imputed.Len()))
	}

	s.mu.Lock()
	s.dataset = imputed
	s.loaded = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset snapshot refreshed",
		slog.String("path", s.inputPath),
		slog.Int("records", imputed.Len()),
		slog.Int("columns", len(imputed.Columns)))
	return nil
}

// Invalidate drops the cached file so the next Refresh re-reads it.
func (s *ExplorerService) Invalidate() {
	s.cache.Invalidate(s.inputPath)
}

// snapshot returns the current imputed dataset.
func (s *ExplorerService) snapshot() (domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return domain.Dataset{}, ErrDatasetNotLoaded
	}
	return s.dataset, nil
}

// Overview summarizes the dataset shape: record and column counts,
// distinct journal count, and per-column null counts on the raw view.
type Overview struct {
	TotalPapers     int            `json:"total_papers"`
	TotalColumns    int            `json:"total_columns"`
	UniqueJournals  int            `json:"unique_journals"`
	MissingByColumn map[string]int `json:"missing_by_column"`
	YearMin         int            `json:"year_min,omitempty"`
	YearMax         int            `json:"year_max,omitempty"`
}

// Overview returns the dataset overview.
func (s *ExplorerService) Overview(ctx context.Context) (*Overview, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	journals := make(map[string]struct{})
	for _, rec := range ds.Records {
		if v, ok := rec.Lookup(s.cfg.CategoryField); ok && v != nil {
			journals[fmt.Sprint(v)] = struct{}{}
		}
	}

	ov := &Overview{
		TotalPapers:     ds.Len(),
		TotalColumns:    len(ds.Columns),
		UniqueJournals:  len(journals),
		MissingByColumn: ds.NullCounts(),
	}
	if span, ok := analysis.DataYearRange(ds, s.cfg.DateField); ok {
		ov.YearMin = span.Min
		ov.YearMax = span.Max
	}
	return ov, nil
}

// PublicationsByYear counts records per publication year inside the
// clamped [from, to] range.
func (s *ExplorerService) PublicationsByYear(ctx context.Context, from, to int) (domain.YearCount, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	counts := analysis.CountByYear(ds, s.cfg.DateField, analysis.ClampYearRange(from, to))
	s.metrics.RecordAnalysisRun(ctx, "years", time.Since(start))
	return counts, nil
}

// TopJournals ranks the n most frequent journals, excluding the imputed
// placeholder.
func (s *ExplorerService) TopJournals(ctx context.Context, n int) (domain.CategoryCount, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	ranked, err := analysis.TopCategories(ds, s.cfg.CategoryField, s.placeholders, n)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAnalysisRun(ctx, "journals", time.Since(start))
	return ranked, nil
}

// SourceDistribution ranks records by the detected source column. With
// no source column in the schema the result is empty.
func (s *ExplorerService) SourceDistribution(ctx context.Context) (domain.CategoryCount, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	col, ok := analysis.DetectSourceColumn(ds)
	if !ok {
		return domain.CategoryCount{}, nil
	}
	start := time.Now()
	ranked, err := analysis.TopCategories(ds, col, s.placeholders, ds.Len()+1)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAnalysisRun(ctx, "sources", time.Since(start))
	return ranked, nil
}

// TitleWordFrequencies returns the full token frequency mapping over
// titles. minLength <= 0 falls back to the configured default.
func (s *ExplorerService) TitleWordFrequencies(ctx context.Context, minLength int) (domain.WordFrequency, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if minLength <= 0 {
		minLength = s.cfg.MinWordLength
	}
	start := time.Now()
	freq, err := analysis.WordFrequencies(ds, s.cfg.TitleField, s.stopWords, minLength)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAnalysisRun(ctx, "words", time.Since(start))
	return freq, nil
}

// TopTitleWords returns the k most frequent title tokens.
func (s *ExplorerService) TopTitleWords(ctx context.Context, minLength, k int) ([]domain.WordEntry, error) {
	freq, err := s.TitleWordFrequencies(ctx, minLength)
	if err != nil {
		return nil, err
	}
	return analysis.TopWords(freq, k), nil
}

// WordCloud returns frequency-proportional weights for the cloud view.
// maxWords <= 0 falls back to the configured default.
func (s *ExplorerService) WordCloud(ctx context.Context, maxWords int) ([]domain.CloudWord, error) {
	if maxWords <= 0 {
		maxWords = s.cfg.CloudMaxWords
	}
	freq, err := s.TitleWordFrequencies(ctx, 0)
	if err != nil {
		return nil, err
	}
	return analysis.CloudWeights(freq, maxWords), nil
}

// Sample returns the first rows records projected onto the informative
// columns present in the schema. rows is clamped to [5, 50].
func (s *ExplorerService) Sample(ctx context.Context, rows int) ([]domain.Record, []string, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, nil, err
	}
	if rows <= 0 {
		rows = defaultSampleRows
	}
	if rows < minSampleRows {
		rows = minSampleRows
	}
	if rows > maxSampleRows {
		rows = maxSampleRows
	}
	if rows > ds.Len() {
		rows = ds.Len()
	}

	columns := make([]string, 0, len(sampleColumns))
	for _, col := range sampleColumns {
		if ds.HasColumn(col) {
			columns = append(columns, col)
		}
	}

	sample := make([]domain.Record, 0, rows)
	for _, rec := range ds.Records[:rows] {
		projected := make(domain.Record, len(columns))
		for _, col := range columns {
			if v, ok := rec.Lookup(col); ok {
				projected[col] = v
			}
		}
		sample = append(sample, projected)
	}
	return sample, columns, nil
}

// AnalysisSnapshot bundles every aggregate for a one-shot export.
type AnalysisSnapshot struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Years       domain.YearCount     `json:"years"`
	TopJournals domain.CategoryCount `json:"top_journals"`
	Sources     domain.CategoryCount `json:"sources"`
	TopWords    []domain.WordEntry   `json:"top_words"`
	Cloud       []domain.CloudWord   `json:"cloud"`
}

// ComputeSnapshot runs the three aggregators concurrently over the
// shared read-only snapshot and bundles the results. The aggregators
// are pure, so no synchronization beyond the errgroup is needed.
func (s *ExplorerService) ComputeSnapshot(ctx context.Context, yr analysis.YearRange, topN int) (*AnalysisSnapshot, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	snap := &AnalysisSnapshot{GeneratedAt: time.Now()}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The caller's range is taken literally here; clamping happens
		// at the HTTP and CLI boundaries, so a full-domain range keeps
		// the imputed baseline bucket.
		start := time.Now()
		snap.Years = analysis.CountByYear(ds, s.cfg.DateField, yr)
		s.metrics.RecordAnalysisRun(gctx, "years", time.Since(start))
		return nil
	})
	g.Go(func() error {
		journals, err := s.TopJournals(gctx, topN)
		snap.TopJournals = journals
		return err
	})
	g.Go(func() error {
		sources, err := s.SourceDistribution(gctx)
		snap.Sources = sources
		return err
	})
	g.Go(func() error {
		freq, err := s.TitleWordFrequencies(gctx, 0)
		if err != nil {
			return err
		}
		snap.TopWords = analysis.TopWords(freq, 20)
		snap.Cloud = analysis.CloudWeights(freq, s.cfg.CloudMaxWords)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
