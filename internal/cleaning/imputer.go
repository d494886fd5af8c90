package cleaning

import (
	"context"
	"log/slog"

	"paperpulse/pkg/contracts/domain"
)

// Imputer fills missing values in raw records using the column defaults
// it was built with. Imputation is pure: the input dataset is never
// mutated and applying the imputer twice yields the same result.
type Imputer struct {
	logger   *slog.Logger
	defaults DefaultTable
}

// NewImputer creates an imputer over the given default table.
func NewImputer(logger *slog.Logger, defaults DefaultTable) *Imputer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Imputer{logger: logger, defaults: defaults}
}

// Defaults returns the table the imputer applies.
func (im *Imputer) Defaults() DefaultTable {
	return im.defaults
}

// Impute returns a fresh dataset in which every present-but-null cell
// covered by the default table is replaced with its typed default.
// Date columns are additionally coerced: a raw value that fails to
// parse is replaced with the baseline date, the same as a missing one.
// Columns absent from a record stay absent, and columns without a
// default entry pass through unchanged.
func (im *Imputer) Impute(ctx context.Context, ds domain.Dataset) domain.Dataset {
	out := domain.Dataset{
		Columns: append([]string(nil), ds.Columns...),
		Records: make([]domain.Record, 0, len(ds.Records)),
	}

	var replaced int
	for _, rec := range ds.Records {
		clean := make(domain.Record, len(rec))
		for field, val := range rec {
			def, covered := im.defaults[field]
			if !covered {
				clean[field] = val
				continue
			}
			switch def.Kind {
			case KindDate:
				if t, ok := ParseDate(val); ok {
					clean[field] = t
				} else {
					clean[field] = def.Time
					replaced++
				}
			default:
				if val == nil {
					clean[field] = def.Value()
					replaced++
				} else {
					clean[field] = val
				}
			}
		}
		out.Records = append(out.Records, clean)
	}

	im.logger.InfoContext(ctx, "imputed dataset",
		slog.Int("records", len(out.Records)),
		slog.Int("cells_replaced", replaced))

	return out
}
