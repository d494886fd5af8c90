package domain

// YearCount maps a publication year to the number of records published
// in that year. Only records with a parseable date contribute.
type YearCount map[int]int

// Total returns the sum of all per-year counts.
func (yc YearCount) Total() int {
	total := 0
	for _, n := range yc {
		total += n
	}
	return total
}

// CategoryEntry is one ranked category label with its record count.
type CategoryEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryCount is a ranking of category labels, sorted by count
// descending with ties broken by first-encounter order in the dataset.
// Placeholder labels produced by imputation are never included.
type CategoryCount []CategoryEntry

// WordFrequency maps a normalized token to its occurrence count across
// all text cells considered.
type WordFrequency map[string]int

// WordEntry is one ranked token with its occurrence count.
type WordEntry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// CloudWord carries a token, its count, and a weight in (0, 1] relative
// to the most frequent token, for frequency-weighted cloud rendering.
type CloudWord struct {
	Word   string  `json:"word"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}
