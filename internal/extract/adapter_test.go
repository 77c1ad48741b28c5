package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cpaul777/docai-parse-codes/internal/normalize"
)

func withholdingConfig() Config {
	return Config{
		Tables: []TableConfig{{
			EntityType: "details_monthly_income_payment_taxes",
			OutputKey:  "table_rows",
			Columns: []string{
				"income_payment_subject", "atc", "first_month", "second_month",
				"third_month", "total_quarter", "tax_withheld_quarter",
			},
		}},
		MentionTextSubstrings: []string{"_tin_no", "_date"},
	}
}

func TestFlattenScalarFields(t *testing.T) {
	entities := []RawEntity{
		{Type: " payee_name ", MentionText: "JAO S. MAROU", NormalizedValue: "Jao S. Marou", Confidence: 0.913},
		{Type: "payor_tin_no", MentionText: "123-333-221-OO1", NormalizedValue: "123333221001", Confidence: 0.8},
		{Type: "to_date", MentionText: "01-30-2025", NormalizedValue: "2025-01-30", Confidence: 0.777},
		{Type: "zip_code_8A", MentionText: "4323", Confidence: 0.5},
	}

	res := Flatten(entities, withholdingConfig())

	// Keys are trimmed; suggestions win for ordinary fields.
	assert.Equal(t, "Jao S. Marou", res.Fields["payee_name"].Value)
	assert.Equal(t, 0.91, res.Fields["payee_name"].Confidence)

	// TIN and date fields must keep the raw mention text.
	assert.Equal(t, "123-333-221-OO1", res.Fields["payor_tin_no"].Value)
	assert.Equal(t, "01-30-2025", res.Fields["to_date"].Value)
	assert.Equal(t, 0.78, res.Fields["to_date"].Confidence)

	// No suggestion -> mention text.
	assert.Equal(t, "4323", res.Fields["zip_code_8A"].Value)
}

func TestFlattenDuplicateKeysLastWriteWins(t *testing.T) {
	entities := []RawEntity{
		{Type: "payee_name", MentionText: "FIRST", Confidence: 0.2},
		{Type: "payee_name", MentionText: "SECOND", Confidence: 0.9},
	}
	res := Flatten(entities, withholdingConfig())
	assert.Equal(t, "SECOND", res.Fields["payee_name"].Value)
	assert.Equal(t, 0.9, res.Fields["payee_name"].Confidence)
}

func TestFlattenTableRows(t *testing.T) {
	entities := []RawEntity{
		{
			Type:        "details_monthly_income_payment_taxes",
			MentionText: "Rentals WC100 125,000.00",
			Confidence:  0.88,
			Properties: []RawEntity{
				{Type: "income_payment_subject", MentionText: "Rentals"},
				{Type: "atc", MentionText: "WC100"},
				{Type: "total_quarter", MentionText: "125,000.00"},
				{Type: "not_a_column", MentionText: "ignored"},
			},
		},
		{
			Type:       "details_monthly_income_payment_taxes",
			Confidence: 0.7,
			Properties: []RawEntity{
				{Type: "income_payment_subject", MentionText: "Total"},
				{Type: "total_quarter", MentionText: "125,000.00"},
				{Type: "tax_withheld_quarter", MentionText: "1,250.00"},
			},
		},
	}

	res := Flatten(entities, withholdingConfig())
	rows := res.Tables["table_rows"]
	require.Len(t, rows, 2)

	// Row order follows the entity stream (first-Total reconciliation
	// depends on it).
	assert.Equal(t, "Rentals", rows[0]["income_payment_subject"])
	assert.Equal(t, "Total", rows[1]["income_payment_subject"])

	// Unset columns default to empty, unknown properties are dropped.
	assert.Equal(t, "", rows[0]["first_month"])
	assert.NotContains(t, rows[0], "not_a_column")

	// Table entities also land in the flat map (one confidence survives).
	assert.Equal(t, 0.7, res.Fields["details_monthly_income_payment_taxes"].Confidence)
}

func TestFlattenColumnNormalizers(t *testing.T) {
	cfg := Config{
		Tables: []TableConfig{{
			EntityType:  "Item_Table",
			OutputKey:   "Item_Table",
			Columns:     []string{"Amount", "Item_Description_Nature_Of_Service"},
			ColumnKinds: map[string]normalize.Kind{"Amount": normalize.KindCurrency},
		}},
	}
	entities := []RawEntity{{
		Type: "Item_Table",
		Properties: []RawEntity{
			{Type: "Amount", MentionText: "P 9,OOO.50"},
			{Type: "Item_Description_Nature_Of_Service", MentionText: "Consulting"},
		},
	}}

	res := Flatten(entities, cfg)
	require.Len(t, res.Tables["Item_Table"], 1)
	assert.Equal(t, "9,000.50", res.Tables["Item_Table"][0]["Amount"])
	assert.Equal(t, "Consulting", res.Tables["Item_Table"][0]["Item_Description_Nature_Of_Service"])
}

func TestFlattenTwoTables(t *testing.T) {
	cfg := Config{
		Tables: []TableConfig{
			{EntityType: "Item_Table", OutputKey: "Item_Table", Columns: []string{"Amount"}},
			{EntityType: "Item_Table_2", OutputKey: "Item_Table_2", Columns: []string{"Total_Amount_Due"}},
		},
	}
	entities := []RawEntity{
		{Type: "Item_Table", Properties: []RawEntity{{Type: "Amount", MentionText: "100.00"}}},
		{Type: "Item_Table_2", Properties: []RawEntity{{Type: "Total_Amount_Due", MentionText: "90.00"}}},
		{Type: "Item_Table", Properties: []RawEntity{{Type: "Amount", MentionText: "50.00"}}},
	}

	res := Flatten(entities, cfg)
	require.Len(t, res.Tables["Item_Table"], 2)
	require.Len(t, res.Tables["Item_Table_2"], 1)
	assert.Equal(t, "100.00", res.Tables["Item_Table"][0]["Amount"])
	assert.Equal(t, "50.00", res.Tables["Item_Table"][1]["Amount"])
}

func TestFlattenEmptyStream(t *testing.T) {
	res := Flatten(nil, withholdingConfig())
	assert.Empty(t, res.Fields)
	assert.Empty(t, res.Tables["table_rows"])
}
