package extract

import (
	"math"
	"strings"

	"github.com/Cpaul777/docai-parse-codes/internal/normalize"
	"github.com/Cpaul777/docai-parse-codes/internal/record"
)

// TableConfig declares one tabular entity type a document may contain, the
// fixed column set of its rows, and any per-column normalizer to run on cell
// values as they are captured (the invoice tables normalize amounts here).
type TableConfig struct {
	EntityType  string
	OutputKey   string
	Columns     []string
	ColumnKinds map[string]normalize.Kind
}

// Config drives Flatten for one document type.
type Config struct {
	Tables []TableConfig
	// MentionTextSubstrings lists entity-type-name fragments whose values
	// must be taken from the raw mention text, never from the service's
	// suggested normalized text. The suggestions are untrustworthy for TINs,
	// dates and invoice numbers and the downstream normalizers want the raw
	// scan anyway.
	MentionTextSubstrings []string
}

// Result is the adapter output: the flat scalar extraction map and the
// ordered row sequences per configured table.
type Result struct {
	Fields map[string]Field
	Tables map[string][]record.TableRow
}

// Flatten walks the entity stream once. Every entity records a flat field
// keyed by its trimmed type (duplicates overwrite, last write wins); entities
// matching a configured table type additionally contribute one row, in
// stream order, to that table's sequence. Unconfigured nested properties are
// ignored; unset columns stay "".
func Flatten(entities []RawEntity, cfg Config) Result {
	res := Result{
		Fields: make(map[string]Field, len(entities)),
		Tables: make(map[string][]record.TableRow, len(cfg.Tables)),
	}
	for _, tc := range cfg.Tables {
		res.Tables[tc.OutputKey] = []record.TableRow{}
	}

	for _, ent := range entities {
		for _, tc := range cfg.Tables {
			if ent.Type != tc.EntityType {
				continue
			}
			row := make(record.TableRow, len(tc.Columns))
			for _, col := range tc.Columns {
				row[col] = ""
			}
			for _, prop := range ent.Properties {
				if _, known := row[prop.Type]; !known {
					continue
				}
				value := prop.MentionText
				if kind, ok := tc.ColumnKinds[prop.Type]; ok {
					value = normalize.Apply(kind, value)
				}
				row[prop.Type] = value
			}
			res.Tables[tc.OutputKey] = append(res.Tables[tc.OutputKey], row)
		}

		key := strings.TrimSpace(ent.Type)
		res.Fields[key] = Field{
			Value:      fieldValue(ent, cfg.MentionTextSubstrings),
			Confidence: round2(ent.Confidence),
		}
	}
	return res
}

// fieldValue picks the scalar value for an entity: the suggested normalized
// text when present and trusted, the raw mention text otherwise.
func fieldValue(ent RawEntity, mentionOnly []string) string {
	if ent.NormalizedValue != "" {
		for _, frag := range mentionOnly {
			if strings.Contains(ent.Type, frag) {
				return strings.TrimSpace(ent.MentionText)
			}
		}
		return strings.TrimSpace(ent.NormalizedValue)
	}
	return strings.TrimSpace(ent.MentionText)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
