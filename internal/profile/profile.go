// Package profile declares, as data, what each document type looks like:
// the expected field set with defaults, which normalizer each field gets,
// which tabular entity types exist, and how relevance, quarter assignment
// and reconciliation apply. One generic pipeline consumes these; there is
// no per-type control flow anywhere else.
package profile

import (
	"github.com/Cpaul777/docai-parse-codes/constants"
	"github.com/Cpaul777/docai-parse-codes/internal/extract"
	"github.com/Cpaul777/docai-parse-codes/internal/normalize"
	"github.com/Cpaul777/docai-parse-codes/internal/record"
)

// FieldSpec declares one schema field: its default when the extraction has
// nothing for it, and the normalizer to run when it does.
type FieldSpec struct {
	Default string
	Kind    normalize.Kind
}

// Reconciler selects which derived-field algorithm the calculator runs.
type Reconciler string

const (
	ReconcileNone        Reconciler = ""
	ReconcileWithholding Reconciler = "withholding"
	ReconcileInvoice     Reconciler = "invoice"
)

// Profile is the full declarative schema for one document type.
type Profile struct {
	DocType constants.DocType
	Fields  map[string]FieldSpec
	Adapter extract.Config

	// RelevanceFields must all be non-empty after normalization for the
	// record to be persisted; empty slice means every page is relevant.
	RelevanceFields []string

	// QuarterDateField names the date field feeding quarter assignment;
	// empty disables it for this type.
	QuarterDateField string

	Reconcile Reconciler
}

// ForDocType resolves the profile for an upstream document-type tag. Absent
// or unknown tags fall back to the withholding certificate. Every call
// constructs a fresh profile value; nothing here is shared or mutated
// across documents.
func ForDocType(tag string) Profile {
	switch constants.DocType(tag) {
	case constants.DocTypeServiceInvoice:
		return serviceInvoice()
	case constants.DocTypeExpense:
		// TODO: dedicated expense receipt schema once the expense processor
		// labeling is finalized; until then expenses run the invoice rules.
		p := serviceInvoice()
		p.DocType = constants.DocTypeExpense
		return p
	default:
		return withholdingCertificate()
	}
}

// withholdingCertificate is the BIR Form 2307 profile.
func withholdingCertificate() Profile {
	return Profile{
		DocType: constants.DocTypeForm2307,
		Fields: map[string]FieldSpec{
			"form_no":                  {Default: "2307", Kind: normalize.KindPassthrough},
			"form_title":               {Default: "Certificate of Creditable Income Taxes Withheld at Source", Kind: normalize.KindPassthrough},
			"from_date":                {Kind: normalize.KindDate},
			"to_date":                  {Kind: normalize.KindDate},
			"payee_tin_no":             {Kind: normalize.KindTaxID},
			"payee_name":               {Kind: normalize.KindPassthrough},
			"payee_registered_address": {Kind: normalize.KindPassthrough},
			"zip_code_4A":              {Kind: normalize.KindPostalCode},
			"payee_foreign_address":    {Kind: normalize.KindPassthrough},
			"payor_tin_no":             {Kind: normalize.KindTaxID},
			"payor_name":               {Kind: normalize.KindPassthrough},
			"payor_registered_address": {Kind: normalize.KindPassthrough},
			"zip_code_8A":              {Kind: normalize.KindPostalCode},
		},
		Adapter: extract.Config{
			Tables: []extract.TableConfig{{
				EntityType: constants.EntityMonthlyIncomeTable,
				OutputKey:  constants.TableKeyWithholding,
				Columns:    append([]string(nil), constants.WithholdingTableColumns...),
			}},
			MentionTextSubstrings: []string{"_tin_no", "_date"},
		},
		RelevanceFields:  []string{"payor_tin_no", "to_date"},
		QuarterDateField: "to_date",
		Reconcile:        ReconcileWithholding,
	}
}

// serviceInvoice is the service invoice profile: scalar header fields plus
// a line-item table and a totals/withholding table.
func serviceInvoice() Profile {
	return Profile{
		DocType: constants.DocTypeServiceInvoice,
		Fields: map[string]FieldSpec{
			"Invoice_No":       {Kind: normalize.KindInvoiceNo},
			"Date":             {Kind: normalize.KindDate},
			"Business_Address": {Kind: normalize.KindPassthrough},
			"Registered_Name":  {Kind: normalize.KindPassthrough},
			"Sold_To_Tin":      {Kind: normalize.KindTaxID},
		},
		Adapter: extract.Config{
			Tables: []extract.TableConfig{
				{
					EntityType: constants.EntityInvoiceItemTable,
					OutputKey:  constants.TableKeyInvoiceItems,
					Columns:    append([]string(nil), constants.InvoiceItemColumns...),
					ColumnKinds: map[string]normalize.Kind{
						"Amount": normalize.KindCurrency,
					},
				},
				{
					EntityType: constants.EntityInvoiceTotalsTable,
					OutputKey:  constants.TableKeyInvoiceTotals,
					Columns:    append([]string(nil), constants.InvoiceTotalsColumns...),
					ColumnKinds: map[string]normalize.Kind{
						"Less_Witholding_Tax": normalize.KindCurrency,
						"Total_Amount_Due":    normalize.KindCurrency,
					},
				},
			},
			MentionTextSubstrings: []string{"Invoice_No", "Date", "Sold_To_Tin"},
		},
		// The invoice flow persists every parsed page.
		RelevanceFields: nil,
		Reconcile:       ReconcileInvoice,
	}
}

// SchemaSpec builds the output-shape spec used to validate records of this
// profile before persistence.
func (p Profile) SchemaSpec() record.SchemaSpec {
	scalars := make(map[string]bool, len(p.Fields)+1)
	for name := range p.Fields {
		scalars[name] = false
	}
	scalars["confidence_average"] = true

	tables := make(map[string][]string, len(p.Adapter.Tables))
	for _, tc := range p.Adapter.Tables {
		tables[tc.OutputKey] = tc.Columns
	}

	return record.SchemaSpec{
		ScalarFields: scalars,
		DerivedFields: []string{
			"quarter", "net_amount", "gross_amount", "withheld_amount",
			"tax_rate", "net_receipt",
		},
		Tables: tables,
	}
}
