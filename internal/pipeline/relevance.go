package pipeline

import (
	"github.com/Cpaul777/docai-parse-codes/internal/record"
)

// isRelevant reports whether a normalized record should be persisted.
// Continuation pages carry no payor identification, so the profile lists
// the fields that must all be non-empty. An empty required list means every
// page of that type is kept. Irrelevant pages are filtered output, not
// errors.
func isRelevant(rec *record.Record, requiredFields []string) bool {
	for _, f := range requiredFields {
		if rec.String(f) == "" {
			return false
		}
	}
	return true
}
