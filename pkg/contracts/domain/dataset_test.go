package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Lookup(t *testing.T) {
	rec := Record{"title": "Paper A", "journal": nil}

	v, ok := rec.Lookup("title")
	assert.True(t, ok)
	assert.Equal(t, "Paper A", v)

	v, ok = rec.Lookup("journal")
	assert.True(t, ok, "null cell is still a present column")
	assert.Nil(t, v)

	_, ok = rec.Lookup("doi")
	assert.False(t, ok, "absent column")
}

func TestRecord_IsNull(t *testing.T) {
	rec := Record{"title": "Paper A", "journal": nil}

	assert.False(t, rec.IsNull("title"))
	assert.True(t, rec.IsNull("journal"))
	assert.False(t, rec.IsNull("doi"), "absent is not null")
}

func TestDataset_NullCounts(t *testing.T) {
	ds := Dataset{
		Columns: []string{"title", "journal"},
		Records: []Record{
			{"title": "Paper A", "journal": nil},
			{"title": nil, "journal": nil},
			{"title": "Paper C", "journal": "Nature"},
		},
	}

	assert.Equal(t, map[string]int{"title": 1, "journal": 2}, ds.NullCounts())
}

func TestDataset_HasColumn(t *testing.T) {
	ds := Dataset{Columns: []string{"title", "journal"}}

	assert.True(t, ds.HasColumn("journal"))
	assert.False(t, ds.HasColumn("source_x"))
}

func TestYearCount_Total(t *testing.T) {
	assert.Equal(t, 6, YearCount{2019: 1, 2020: 2, 2021: 3}.Total())
	assert.Equal(t, 0, YearCount{}.Total())
}
