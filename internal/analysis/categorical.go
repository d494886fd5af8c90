package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"paperpulse/pkg/contracts/domain"
)

// TopCategories counts occurrences of each distinct value of field and
// returns the n most frequent, sorted by count descending with ties in
// first-encounter order. Placeholder labels are excluded before ranking
// so an imputed sentinel can never appear in the output, however common.
// A missing column or an all-placeholder dataset yields an empty result.
func TopCategories(ds domain.Dataset, field string, placeholders Placeholders, n int) (domain.CategoryCount, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: top-n must be positive, got %d", ErrInvalidArgument, n)
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, rec := range ds.Records {
		v, ok := rec.Lookup(field)
		if !ok || v == nil {
			continue
		}
		label := strings.TrimSpace(cast.ToString(v))
		if label == "" || placeholders.Contains(label) {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	ranked := make(domain.CategoryCount, 0, len(order))
	for _, label := range order {
		ranked = append(ranked, domain.CategoryEntry{Label: label, Count: counts[label]})
	}
	// Stable sort preserves first-encounter order among equal counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// DetectSourceColumn returns the first schema column whose name
// contains "source", matching how the corpus names its provenance
// column inconsistently across releases.
func DetectSourceColumn(ds domain.Dataset) (string, bool) {
	for _, col := range ds.Columns {
		if strings.Contains(strings.ToLower(col), "source") {
			return col, true
		}
	}
	return "", false
}
