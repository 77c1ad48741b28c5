// Package pipeline runs one document's entity stream through profile-driven
// normalization, the relevance filter, the derived-field calculator and the
// confidence aggregator, producing the record handed to the store.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/Cpaul777/docai-parse-codes/internal/derive"
	"github.com/Cpaul777/docai-parse-codes/internal/extract"
	"github.com/Cpaul777/docai-parse-codes/internal/normalize"
	"github.com/Cpaul777/docai-parse-codes/internal/profile"
	"github.com/Cpaul777/docai-parse-codes/internal/record"
	"github.com/Cpaul777/docai-parse-codes/internal/textutil"
)

// Pipeline is stateless across documents; each Run resolves a fresh profile
// and builds a fresh record.
type Pipeline struct {
	logger  *slog.Logger
	metrics *Metrics
}

func New(logger *slog.Logger, metrics *Metrics) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Pipeline{logger: logger, metrics: metrics}
}

// Result is the outcome for one document.
type Result struct {
	Record   *record.Record
	Relevant bool
	DocType  string
}

// Run normalizes one document. docType selects the profile (empty falls
// back to the withholding certificate). The returned record is complete —
// schema defaults applied, derived fields computed, confidence averaged —
// and validated against the profile's output schema. Irrelevant pages come
// back with Relevant=false and are not an error.
func (p *Pipeline) Run(entities []extract.RawEntity, docType string) (Result, error) {
	prof := profile.ForDocType(docType)
	log := p.logger.With("doc_type", string(prof.DocType))

	flat := extract.Flatten(entities, prof.Adapter)
	log.Debug("pipeline.extracted", "fields", len(flat.Fields))

	rec := record.New()
	invalidCount := 0
	for name, spec := range prof.Fields {
		field, ok := flat.Fields[name]
		if !ok || field.Value == "" {
			rec.Fields[name] = spec.Default
			continue
		}
		raw := field.Value
		if spec.Kind == normalize.KindPassthrough {
			raw = textutil.Clean(raw)
		}
		value := normalize.Apply(spec.Kind, raw)
		if normalize.Invalid(value) {
			invalidCount++
			log.Warn("pipeline.invalid_field", "field", name)
		}
		rec.Fields[name] = value
	}
	if invalidCount > 0 {
		p.metrics.Invalid.WithLabelValues(string(prof.DocType)).Add(float64(invalidCount))
	}

	for _, tc := range prof.Adapter.Tables {
		rec.SetTable(tc.OutputKey, flat.Tables[tc.OutputKey])
	}

	rec.Fields["confidence_average"] = confidenceAverage(flat.Fields)

	if !isRelevant(rec, prof.RelevanceFields) {
		log.Info("pipeline.filtered", "reason", "missing relevance fields")
		p.metrics.Filtered.WithLabelValues(string(prof.DocType)).Inc()
		return Result{Record: rec, Relevant: false, DocType: string(prof.DocType)}, nil
	}

	p.deriveFields(rec, prof, log)

	data, err := rec.MarshalJSON()
	if err != nil {
		return Result{}, fmt.Errorf("marshal record: %w", err)
	}
	if err := record.Validate(record.BuildSchema(prof.SchemaSpec()), data); err != nil {
		return Result{}, fmt.Errorf("output schema: %w", err)
	}

	p.metrics.Processed.WithLabelValues(string(prof.DocType)).Inc()
	log.Info("pipeline.ok",
		"confidence_average", rec.Fields["confidence_average"],
		"invalid_fields", invalidCount,
	)
	return Result{Record: rec, Relevant: true, DocType: string(prof.DocType)}, nil
}

func (p *Pipeline) deriveFields(rec *record.Record, prof profile.Profile, log *slog.Logger) {
	if prof.QuarterDateField != "" {
		if q, ok := derive.Quarter(rec.String(prof.QuarterDateField)); ok {
			rec.Fields["quarter"] = q
		} else {
			log.Debug("pipeline.no_quarter", "field", prof.QuarterDateField)
		}
	}

	switch prof.Reconcile {
	case profile.ReconcileWithholding:
		if derived := derive.ReconcileWithholding(rec.Table("table_rows")); derived != nil {
			for k, v := range derived {
				rec.Fields[k] = v
			}
		} else {
			log.Debug("pipeline.no_summary_row")
		}
	case profile.ReconcileInvoice:
		derived, zeroGross := derive.ReconcileInvoice(
			rec.Table("Item_Table"), rec.Table("Item_Table_2"))
		if derived == nil {
			log.Debug("pipeline.no_invoice_tables")
			return
		}
		if zeroGross {
			log.Warn("pipeline.zero_gross_amount", "tax_rate", 0)
		}
		for k, v := range derived {
			rec.Fields[k] = v
		}
	}
}
