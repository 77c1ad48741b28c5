package pipeline

import (
	"math"

	"github.com/Cpaul777/docai-parse-codes/internal/extract"
)

// confidenceAverage averages the per-field confidences of the flat
// extraction map, rounded to 2 decimals; 0 when nothing was extracted.
// Table rows carry no independent confidence: only the one flat entry per
// table entity type (last write wins) contributes.
func confidenceAverage(fields map[string]extract.Field) float64 {
	if len(fields) == 0 {
		return 0
	}
	var sum float64
	for _, f := range fields {
		sum += f.Confidence
	}
	return math.Round(sum/float64(len(fields))*100) / 100
}
