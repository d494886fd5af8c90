package cleaning

import "time"

// ColumnKind tags the semantic type of a column so the imputer can
// dispatch the right default and coercion without per-field conditionals.
type ColumnKind string

const (
	KindText    ColumnKind = "text"
	KindNumeric ColumnKind = "numeric"
	KindDate    ColumnKind = "date"
)

// ColumnDefault is one entry of the default table: the column's kind
// plus the type-appropriate fallback value.
type ColumnDefault struct {
	Kind   ColumnKind
	Text   string
	Number int64
	Time   time.Time
}

// Value returns the fallback as a dataset cell value for the entry's kind.
func (cd ColumnDefault) Value() interface{} {
	switch cd.Kind {
	case KindNumeric:
		return cd.Number
	case KindDate:
		return cd.Time
	default:
		return cd.Text
	}
}

// DefaultTable maps column names to their imputation defaults. Columns
// without an entry are passed through untouched and may stay null.
type DefaultTable map[string]ColumnDefault

// TextSentinels returns the text placeholder values the table produces,
// in no particular order. Rankers use these to keep imputed stand-ins
// out of category results.
func (dt DefaultTable) TextSentinels() []string {
	sentinels := make([]string, 0, len(dt))
	for _, def := range dt {
		if def.Kind == KindText {
			sentinels = append(sentinels, def.Text)
		}
	}
	return sentinels
}

// BaselineDate is the fallback publication date, used both for missing
// and for unparseable raw values.
var BaselineDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// MetadataDefaults returns the default table for the paper-metadata
// schema. Text columns get a descriptive sentinel, numeric identifier
// columns get zero, and the publication date gets the baseline date.
func MetadataDefaults() DefaultTable {
	text := func(s string) ColumnDefault { return ColumnDefault{Kind: KindText, Text: s} }
	return DefaultTable{
		"title":            text("No Title"),
		"doi":              text("No DOI"),
		"pmcid":            text("No PMCID"),
		"pubmed_id":        text("No PubMed ID"),
		"abstract":         text("No Abstract"),
		"authors":          text("Unknown Authors"),
		"journal":          text("Unknown Journal"),
		"who_covidence_id": text("No Covidence ID"),
		"arxiv_id":         text("No ArXiv ID"),
		"pdf_json_files":   text("No PDF JSON"),
		"pmc_json_files":   text("No PMC JSON"),
		"url":              text("No URL"),
		"sha":              text("No SHA"),
		"mag_id":           {Kind: KindNumeric},
		"s2_id":            {Kind: KindNumeric},
		"publish_time":     {Kind: KindDate, Time: BaselineDate},
	}
}
