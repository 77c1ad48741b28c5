package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Cpaul777/docai-parse-codes/internal/repository"
)

func TestExportCollectionXLSX(t *testing.T) {
	ctx := context.Background()
	store, err := repository.OpenSQLite(ctx, ":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	payload := []byte(`{
		"form_no": "2307",
		"from_date": "01-01-2025",
		"to_date": "03-31-2025",
		"quarter": "1st Quarter",
		"payee_tin_no": "123-456-789",
		"payee_name": "ACME SERVICES",
		"payor_tin_no": "987-654-321",
		"payor_name": "BIG CORP",
		"gross_amount": 125000.0,
		"withheld_amount": 1250.0,
		"net_amount": 123750.0,
		"confidence_average": 0.91
	}`)
	name, err := store.Put(ctx, "user", "cert-q1", payload, "cert-q1.pdf")
	require.NoError(t, err)
	require.Equal(t, "cert-q1", name)

	data, err := NewService(store, nil).ExportCollectionXLSX(ctx, "user")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Document", rows[0][0])
	assert.Equal(t, "Quarter", rows[0][4])
	assert.Equal(t, "cert-q1", rows[1][0])
	assert.Equal(t, "2307", rows[1][1])
	assert.Equal(t, "1st Quarter", rows[1][4])
	assert.Equal(t, "123-456-789", rows[1][5])
}

func TestExportEmptyCollection(t *testing.T) {
	ctx := context.Background()
	store, err := repository.OpenSQLite(ctx, ":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	data, err := NewService(store, nil).ExportCollectionXLSX(ctx, "user")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
