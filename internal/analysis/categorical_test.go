package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperpulse/pkg/contracts/domain"
)

func journalDataset(journals ...string) domain.Dataset {
	ds := domain.Dataset{Columns: []string{"journal"}}
	for _, j := range journals {
		ds.Records = append(ds.Records, domain.Record{"journal": j})
	}
	return ds
}

func TestTopCategories(t *testing.T) {
	placeholders := NewPlaceholders("Unknown Journal")

	t.Run("placeholders never rank", func(t *testing.T) {
		ds := journalDataset("Unknown Journal", "Journal A", "Journal A", "Journal B")
		got, err := TopCategories(ds, "journal", placeholders, 2)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryCount{
			{Label: "Journal A", Count: 2},
			{Label: "Journal B", Count: 1},
		}, got)
	})

	t.Run("placeholder excluded even when dominant", func(t *testing.T) {
		ds := journalDataset("Unknown Journal", "Unknown Journal", "Unknown Journal", "BMJ")
		got, err := TopCategories(ds, "journal", placeholders, 5)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryCount{{Label: "BMJ", Count: 1}}, got)
	})

	t.Run("ties break by first encounter", func(t *testing.T) {
		ds := journalDataset("Beta", "Alpha", "Beta", "Alpha", "Gamma")
		got, err := TopCategories(ds, "journal", placeholders, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryCount{
			{Label: "Beta", Count: 2},
			{Label: "Alpha", Count: 2},
			{Label: "Gamma", Count: 1},
		}, got)
	})

	t.Run("fewer categories than n", func(t *testing.T) {
		ds := journalDataset("Solo")
		got, err := TopCategories(ds, "journal", placeholders, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("missing column yields empty", func(t *testing.T) {
		ds := domain.Dataset{Columns: []string{"title"}, Records: []domain.Record{{"title": "x"}}}
		got, err := TopCategories(ds, "journal", placeholders, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("all placeholders yields empty", func(t *testing.T) {
		ds := journalDataset("Unknown Journal", "Unknown Journal")
		got, err := TopCategories(ds, "journal", placeholders, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("null cells are skipped", func(t *testing.T) {
		ds := domain.Dataset{
			Columns: []string{"journal"},
			Records: []domain.Record{{"journal": nil}, {"journal": "PLOS ONE"}},
		}
		got, err := TopCategories(ds, "journal", placeholders, 5)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryCount{{Label: "PLOS ONE", Count: 1}}, got)
	})

	t.Run("non-positive n fails fast", func(t *testing.T) {
		ds := journalDataset("Journal A")
		for _, n := range []int{0, -1} {
			_, err := TopCategories(ds, "journal", placeholders, n)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		}
	})
}

func TestDetectSourceColumn(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    string
		wantOK  bool
	}{
		{name: "exact match", columns: []string{"title", "source"}, want: "source", wantOK: true},
		{name: "substring match", columns: []string{"source_x", "title"}, want: "source_x", wantOK: true},
		{name: "case insensitive", columns: []string{"Source"}, want: "Source", wantOK: true},
		{name: "no source column", columns: []string{"title", "journal"}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectSourceColumn(domain.Dataset{Columns: tt.columns})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
