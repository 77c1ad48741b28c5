// Package record defines the normalized output document and its JSON shape.
package record

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TableRow maps column name to the (possibly normalized) cell value.
// Unset columns hold the empty string so every row has the full column set.
type TableRow map[string]string

// Clone returns an independent copy of the row.
func (r TableRow) Clone() TableRow {
	out := make(TableRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Record is the normalized document handed to the persistence layer.
// Fields holds scalar field values (strings, plus float64 for the derived
// amounts and the confidence average); Tables holds the ordered table-row
// sequences keyed by their output name. A Record is built fresh per input
// document and treated as immutable once the derived fields are in.
type Record struct {
	Fields map[string]any
	Tables map[string][]TableRow

	// tableOrder preserves insertion order of table keys for stable output.
	tableOrder []string
}

// New returns an empty record.
func New() *Record {
	return &Record{
		Fields: make(map[string]any),
		Tables: make(map[string][]TableRow),
	}
}

// SetTable stores an ordered row sequence under key.
func (r *Record) SetTable(key string, rows []TableRow) {
	if _, exists := r.Tables[key]; !exists {
		r.tableOrder = append(r.tableOrder, key)
	}
	r.Tables[key] = rows
}

// Table returns the rows stored under key (nil when absent).
func (r *Record) Table(key string) []TableRow {
	return r.Tables[key]
}

// String returns the field value as a string, or "" when absent or not a
// string. Derived numeric fields are not reachable through this accessor.
func (r *Record) String(field string) string {
	if v, ok := r.Fields[field].(string); ok {
		return v
	}
	return ""
}

// MarshalJSON flattens fields and tables into one object, the shape the
// document store and the frontend consume.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+len(r.Tables))
	for k, v := range r.Fields {
		out[k] = v
	}
	for k, rows := range r.Tables {
		if rows == nil {
			rows = []TableRow{}
		}
		out[k] = rows
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a record from the flattened store shape. Table
// values are recognized structurally (arrays of string-valued objects).
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	r.Fields = make(map[string]any, len(raw))
	r.Tables = make(map[string][]TableRow)
	r.tableOrder = nil

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := raw[k]
		var rows []TableRow
		if err := json.Unmarshal(v, &rows); err == nil && len(v) > 0 && v[0] == '[' {
			r.SetTable(k, rows)
			continue
		}
		var scalar any
		if err := json.Unmarshal(v, &scalar); err != nil {
			return fmt.Errorf("decode record field %q: %w", k, err)
		}
		r.Fields[k] = scalar
	}
	return nil
}
