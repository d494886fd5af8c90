package http

import (
	"context"

	"paperpulse/internal/services"
	"paperpulse/pkg/contracts/domain"
)

// ExplorerServiceInterface defines the operations the handlers need
// from the service layer.
type ExplorerServiceInterface interface {
	Overview(ctx context.Context) (*services.Overview, error)
	PublicationsByYear(ctx context.Context, from, to int) (domain.YearCount, error)
	TopJournals(ctx context.Context, n int) (domain.CategoryCount, error)
	SourceDistribution(ctx context.Context) (domain.CategoryCount, error)
	TopTitleWords(ctx context.Context, minLength, k int) ([]domain.WordEntry, error)
	WordCloud(ctx context.Context, maxWords int) ([]domain.CloudWord, error)
	Sample(ctx context.Context, rows int) ([]domain.Record, []string, error)
	Refresh(ctx context.Context) error
	Invalidate()
}
