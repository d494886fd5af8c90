package domain

// Record is one row of a loaded dataset: a mapping from column name to
// cell value. The schema is discovered at load time, so any column may
// be missing from any record. A nil value means the cell was present
// but empty (null); a missing key means the record never had the column.
type Record map[string]interface{}

// Lookup returns the value stored under field and whether the column
// exists on this record. It is the single schema probe used by every
// component in the pipeline; a nil value with ok=true is a null cell.
func (r Record) Lookup(field string) (interface{}, bool) {
	v, ok := r[field]
	return v, ok
}

// IsNull reports whether field is present on the record but holds no value.
func (r Record) IsNull(field string) bool {
	v, ok := r[field]
	return ok && v == nil
}

// Dataset is an ordered sequence of records sharing a common, possibly
// partial, schema. Order is insertion order from the source. Once a
// dataset has been imputed it is treated as read-only; aggregators take
// it by value and never mutate records.
type Dataset struct {
	Records []Record `json:"records"`
	Columns []string `json:"columns"`
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether name is part of the discovered schema.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// NullCounts returns the number of null cells per column, covering only
// columns that appear in the schema.
func (d Dataset) NullCounts() map[string]int {
	counts := make(map[string]int, len(d.Columns))
	for _, rec := range d.Records {
		for _, col := range d.Columns {
			if rec.IsNull(col) {
				counts[col]++
			}
		}
	}
	return counts
}
