// Package api contains the HTTP API contract definitions for paperpulse.
// Version v1 represents the current stable API version.
package api

// YearsRequest carries the publication-year range filter. Out-of-domain
// bounds are clamped server-side, so only non-negativity is enforced here.
type YearsRequest struct {
	From int `json:"from" query:"from" validate:"min=0"`
	To   int `json:"to" query:"to" validate:"min=0"`
}

// JournalsRequest restricts the ranked-bar size to the supported options.
type JournalsRequest struct {
	Limit int `json:"limit" query:"limit" validate:"oneof=5 10 15 20"`
}

// WordsRequest bounds the title-token filters.
type WordsRequest struct {
	MinLength int `json:"min_length" query:"min_length" validate:"min=1,max=20"`
	Limit     int `json:"limit" query:"limit" validate:"min=0,max=1000"`
}

// CloudRequest bounds the word-cloud size.
type CloudRequest struct {
	MaxWords int `json:"max_words" query:"max_words" validate:"min=1,max=500"`
}

// SampleRequest names the preview size. Values outside [5, 50] are
// clamped server-side.
type SampleRequest struct {
	Rows int `json:"rows" query:"rows"`
}
