// Package analysis reduces an imputed dataset to the summary structures
// the rendering layer consumes: per-year publication counts, ranked
// category counts, and word-frequency tables. Every function is a pure
// read over the dataset and returns a freshly allocated result, so the
// aggregators are safe to run concurrently over the same snapshot.
//
// Data-quality problems never surface as errors here: missing columns,
// unparseable dates, and empty inputs all degrade to empty aggregates.
// The only errors returned are caller contract violations such as a
// non-positive top-N or minimum token length.
package analysis

import "errors"

// ErrInvalidArgument marks a caller-side contract violation. It is the
// sole failure mode of the package; wrap it with context via fmt.Errorf
// and detect it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Placeholders is a set of category labels to exclude from rankings,
// typically the text sentinels the imputer writes for missing values.
type Placeholders map[string]struct{}

// NewPlaceholders builds a placeholder set from the given labels.
func NewPlaceholders(labels ...string) Placeholders {
	p := make(Placeholders, len(labels))
	for _, l := range labels {
		p[l] = struct{}{}
	}
	return p
}

// Contains reports whether label is a placeholder.
func (p Placeholders) Contains(label string) bool {
	_, ok := p[label]
	return ok
}

// StopWords is a set of tokens excluded from frequency analysis.
type StopWords map[string]struct{}

// NewStopWords builds a stop-word set from the given tokens.
func NewStopWords(words ...string) StopWords {
	sw := make(StopWords, len(words))
	sw.Add(words...)
	return sw
}

// Add inserts tokens into the set. Callers extend the default set with
// domain-specific noise terms this way.
func (sw StopWords) Add(words ...string) {
	for _, w := range words {
		sw[w] = struct{}{}
	}
}

// Contains reports whether token is a stop word.
func (sw StopWords) Contains(token string) bool {
	_, ok := sw[token]
	return ok
}

// DefaultStopWords returns the baseline stop-word set: common function
// words plus the corpus noise terms that would otherwise dominate every
// title trivially.
func DefaultStopWords() StopWords {
	return NewStopWords(
		"the", "and", "of", "in", "to", "a", "for", "on", "with", "by",
		"an", "at", "from", "as", "is", "are", "this", "that", "these",
		"those", "be", "was", "were", "has", "have", "had", "but", "or",
		"not", "no", "yes",
		"covid", "sars", "cov", "coronavirus",
	)
}
