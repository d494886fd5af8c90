package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperpulse/pkg/contracts/domain"
)

func titleDataset(titles ...interface{}) domain.Dataset {
	ds := domain.Dataset{Columns: []string{"title"}}
	for _, title := range titles {
		ds.Records = append(ds.Records, domain.Record{"title": title})
	}
	return ds
}

func TestWordFrequencies(t *testing.T) {
	t.Run("letters only, stop words and short tokens dropped", func(t *testing.T) {
		stop := NewStopWords("covid", "sars", "cov", "of")
		ds := titleDataset("COVID-19 vaccine study of SARS-CoV-2 immunity")

		got, err := WordFrequencies(ds, "title", stop, 3)
		require.NoError(t, err)

		assert.Equal(t, domain.WordFrequency{
			"vaccine":  1,
			"study":    1,
			"immunity": 1,
		}, got)
		for _, excluded := range []string{"19", "2", "of", "covid", "sars", "cov"} {
			assert.NotContains(t, got, excluded)
		}
	})

	t.Run("counts accumulate across records", func(t *testing.T) {
		ds := titleDataset("vaccine trial", "vaccine efficacy", "trial design")
		got, err := WordFrequencies(ds, "title", NewStopWords(), 3)
		require.NoError(t, err)
		assert.Equal(t, 2, got["vaccine"])
		assert.Equal(t, 2, got["trial"])
		assert.Equal(t, 1, got["efficacy"])
	})

	t.Run("case is normalized", func(t *testing.T) {
		ds := titleDataset("Vaccine VACCINE vaccine")
		got, err := WordFrequencies(ds, "title", NewStopWords(), 3)
		require.NoError(t, err)
		assert.Equal(t, domain.WordFrequency{"vaccine": 3}, got)
	})

	t.Run("null and non-text cells contribute nothing", func(t *testing.T) {
		ds := titleDataset(nil, 42, "real title")
		got, err := WordFrequencies(ds, "title", NewStopWords(), 3)
		require.NoError(t, err)
		assert.Equal(t, domain.WordFrequency{"real": 1, "title": 1}, got)
	})

	t.Run("all stop words yields empty mapping", func(t *testing.T) {
		stop := DefaultStopWords()
		ds := titleDataset("the and of covid")
		got, err := WordFrequencies(ds, "title", stop, 3)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("missing column yields empty mapping", func(t *testing.T) {
		ds := domain.Dataset{Columns: []string{"abstract"}, Records: []domain.Record{{"abstract": "text"}}}
		got, err := WordFrequencies(ds, "title", NewStopWords(), 3)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-positive min length fails fast", func(t *testing.T) {
		ds := titleDataset("anything")
		_, err := WordFrequencies(ds, "title", NewStopWords(), 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestTopWords(t *testing.T) {
	wf := domain.WordFrequency{"beta": 3, "alpha": 3, "gamma": 5, "delta": 1}

	t.Run("ranked by count then alphabetically", func(t *testing.T) {
		got := TopWords(wf, 3)
		assert.Equal(t, []domain.WordEntry{
			{Word: "gamma", Count: 5},
			{Word: "alpha", Count: 3},
			{Word: "beta", Count: 3},
		}, got)
	})

	t.Run("non-positive k returns all", func(t *testing.T) {
		assert.Len(t, TopWords(wf, 0), 4)
	})

	t.Run("empty mapping", func(t *testing.T) {
		assert.Empty(t, TopWords(domain.WordFrequency{}, 10))
	})
}

func TestCloudWeights(t *testing.T) {
	t.Run("weights are proportional with top word at one", func(t *testing.T) {
		wf := domain.WordFrequency{"top": 4, "half": 2, "quarter": 1}
		got := CloudWeights(wf, 10)
		require.Len(t, got, 3)
		assert.Equal(t, domain.CloudWord{Word: "top", Count: 4, Weight: 1.0}, got[0])
		assert.Equal(t, domain.CloudWord{Word: "half", Count: 2, Weight: 0.5}, got[1])
		assert.Equal(t, domain.CloudWord{Word: "quarter", Count: 1, Weight: 0.25}, got[2])
	})

	t.Run("truncates to max words", func(t *testing.T) {
		wf := domain.WordFrequency{"a": 1, "b": 2, "c": 3}
		assert.Len(t, CloudWeights(wf, 2), 2)
	})

	t.Run("empty mapping yields empty slice", func(t *testing.T) {
		got := CloudWeights(domain.WordFrequency{}, 100)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestDefaultStopWords(t *testing.T) {
	stop := DefaultStopWords()
	for _, w := range []string{"the", "and", "covid", "coronavirus"} {
		assert.True(t, stop.Contains(w), "expected %q in default stop words", w)
	}
	assert.False(t, stop.Contains("vaccine"))

	stop.Add("pandemic")
	assert.True(t, stop.Contains("pandemic"))
}
