package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJSONRoundTrip(t *testing.T) {
	r := New()
	r.Fields["form_no"] = "2307"
	r.Fields["payee_name"] = "JAO S. MAROU"
	r.Fields["confidence_average"] = 0.95
	r.SetTable("table_rows", []TableRow{
		{"income_payment_subject": "Rentals", "total_quarter": "125,000.00"},
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, "2307", back.String("form_no"))
	assert.Equal(t, 0.95, back.Fields["confidence_average"])
	require.Len(t, back.Table("table_rows"), 1)
	assert.Equal(t, "Rentals", back.Table("table_rows")[0]["income_payment_subject"])
}

func TestRecordEmptyTableMarshalsAsArray(t *testing.T) {
	r := New()
	r.Fields["form_no"] = "2307"
	r.SetTable("table_rows", nil)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"form_no":"2307","table_rows":[]}`, string(data))
}

func TestBuildSchemaValidates(t *testing.T) {
	spec := SchemaSpec{
		ScalarFields: map[string]bool{
			"form_no":            false,
			"to_date":            false,
			"confidence_average": true,
		},
		DerivedFields: []string{"net_amount", "quarter"},
		Tables: map[string][]string{
			"table_rows": {"income_payment_subject", "total_quarter"},
		},
	}
	schema := BuildSchema(spec)

	good := []byte(`{
		"form_no": "2307",
		"to_date": "01-30-2025",
		"confidence_average": 0.87,
		"net_amount": 123750.0,
		"quarter": "1st Quarter",
		"table_rows": [{"income_payment_subject": "Total", "total_quarter": "125,000.00"}]
	}`)
	assert.NoError(t, Validate(schema, good))

	missingRequired := []byte(`{"form_no": "2307"}`)
	assert.Error(t, Validate(schema, missingRequired))

	wrongTableShape := []byte(`{
		"form_no": "2307", "to_date": "", "confidence_average": 0,
		"table_rows": [{"income_payment_subject": 12}]
	}`)
	assert.Error(t, Validate(schema, wrongTableShape))
}
