package analysis

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"

	"paperpulse/pkg/contracts/domain"
)

// WordFrequencies tokenizes the text field across all records and
// counts the surviving tokens. Text is lowercased and split into
// maximal runs of letters; digits, punctuation, and mixed tokens never
// survive, so "covid-19" contributes only "covid". Tokens shorter than
// minLength or contained in the stop-word set are discarded. Cells that
// are absent or not text contribute nothing. The full mapping is
// returned; callers derive top-K lists or cloud weights from it.
func WordFrequencies(ds domain.Dataset, textField string, stop StopWords, minLength int) (domain.WordFrequency, error) {
	if minLength <= 0 {
		return nil, fmt.Errorf("%w: minimum token length must be positive, got %d", ErrInvalidArgument, minLength)
	}

	freq := make(domain.WordFrequency)
	for _, rec := range ds.Records {
		v, ok := rec.Lookup(textField)
		if !ok || v == nil {
			continue
		}
		text := strings.ToLower(cast.ToString(v))
		for _, token := range strings.FieldsFunc(text, notLetter) {
			if utf8.RuneCountInString(token) < minLength {
				continue
			}
			if stop.Contains(token) {
				continue
			}
			freq[token]++
		}
	}
	return freq, nil
}

func notLetter(r rune) bool {
	return !unicode.IsLetter(r)
}

// TopWords ranks a frequency mapping by count descending, breaking ties
// alphabetically for deterministic output, and truncates to k entries.
// A non-positive k returns the full ranking.
func TopWords(wf domain.WordFrequency, k int) []domain.WordEntry {
	ranked := make([]domain.WordEntry, 0, len(wf))
	for word, count := range wf {
		ranked = append(ranked, domain.WordEntry{Word: word, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// CloudWeights derives frequency-proportional weights in (0, 1] for the
// maxWords most frequent tokens, with the top token weighted 1. An
// empty mapping yields an empty slice.
func CloudWeights(wf domain.WordFrequency, maxWords int) []domain.CloudWord {
	ranked := TopWords(wf, maxWords)
	if len(ranked) == 0 {
		return []domain.CloudWord{}
	}
	max := float64(ranked[0].Count)
	cloud := make([]domain.CloudWord, 0, len(ranked))
	for _, entry := range ranked {
		cloud = append(cloud, domain.CloudWord{
			Word:   entry.Word,
			Count:  entry.Count,
			Weight: float64(entry.Count) / max,
		})
	}
	return cloud
}
