package cleaning

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperpulse/pkg/contracts/domain"
)

func testDataset() domain.Dataset {
	return domain.Dataset{
		Columns: []string{"title", "journal", "publish_time", "mag_id", "license"},
		Records: []domain.Record{
			{"title": "A study", "journal": nil, "publish_time": "2020-03-15", "mag_id": nil, "license": nil},
			{"title": nil, "journal": "Nature", "publish_time": "not-a-date", "license": "cc-by"},
			{"journal": "The Lancet", "publish_time": nil},
		},
	}
}

func TestImputer_Impute(t *testing.T) {
	ctx := context.Background()
	imputer := NewImputer(slog.Default(), MetadataDefaults())

	got := imputer.Impute(ctx, testDataset())
	require.Len(t, got.Records, 3)

	t.Run("null text gets sentinel", func(t *testing.T) {
		assert.Equal(t, "Unknown Journal", got.Records[0]["journal"])
		assert.Equal(t, "No Title", got.Records[1]["title"])
	})

	t.Run("non-null values survive", func(t *testing.T) {
		assert.Equal(t, "A study", got.Records[0]["title"])
		assert.Equal(t, "Nature", got.Records[1]["journal"])
	})

	t.Run("null numeric gets zero", func(t *testing.T) {
		assert.Equal(t, int64(0), got.Records[0]["mag_id"])
	})

	t.Run("parseable date is coerced", func(t *testing.T) {
		want := time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want, got.Records[0]["publish_time"])
	})

	t.Run("unparseable and missing dates both get baseline", func(t *testing.T) {
		assert.Equal(t, BaselineDate, got.Records[1]["publish_time"])
		assert.Equal(t, BaselineDate, got.Records[2]["publish_time"])
	})

	t.Run("absent columns stay absent", func(t *testing.T) {
		_, ok := got.Records[2].Lookup("title")
		assert.False(t, ok)
		_, ok = got.Records[1].Lookup("mag_id")
		assert.False(t, ok)
	})

	t.Run("uncovered columns pass through", func(t *testing.T) {
		assert.Nil(t, got.Records[0]["license"])
		assert.Equal(t, "cc-by", got.Records[1]["license"])
	})
}

func TestImputer_Idempotent(t *testing.T) {
	ctx := context.Background()
	imputer := NewImputer(slog.Default(), MetadataDefaults())

	once := imputer.Impute(ctx, testDataset())
	twice := imputer.Impute(ctx, once)

	assert.Equal(t, once, twice)
}

func TestImputer_DefaultCoverage(t *testing.T) {
	ctx := context.Background()
	defaults := MetadataDefaults()
	imputer := NewImputer(slog.Default(), defaults)

	got := imputer.Impute(ctx, testDataset())
	for i, rec := range got.Records {
		for field := range defaults {
			if v, ok := rec.Lookup(field); ok {
				assert.NotNil(t, v, "record %d field %s should be imputed", i, field)
			}
		}
	}
}

func TestImputer_DoesNotMutateInput(t *testing.T) {
	ctx := context.Background()
	imputer := NewImputer(slog.Default(), MetadataDefaults())

	input := testDataset()
	imputer.Impute(ctx, input)

	assert.Nil(t, input.Records[0]["journal"])
	assert.Equal(t, "not-a-date", input.Records[1]["publish_time"])
}

func TestImputer_EmptyDataset(t *testing.T) {
	ctx := context.Background()
	imputer := NewImputer(slog.Default(), MetadataDefaults())

	got := imputer.Impute(ctx, domain.Dataset{})
	assert.Empty(t, got.Records)
}

func TestDefaultTable_TextSentinels(t *testing.T) {
	sentinels := MetadataDefaults().TextSentinels()
	assert.Contains(t, sentinels, "Unknown Journal")
	assert.Contains(t, sentinels, "No Title")
	assert.NotContains(t, sentinels, "")
}
