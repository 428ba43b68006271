package http

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/inkstudio/studio-backend-go/internal/domain/commission"
)

func sampleTransactions() []commission.TransactionResponse {
	paidAt := "2024-06-03T12:00:00Z"
	method := "cash"
	return []commission.TransactionResponse{
		{
			ID:               "txn-1",
			StaffID:          "artist-1",
			Amount:           200,
			CommissionRate:   0.4,
			CommissionAmount: 80,
			Status:           "paid",
			PaidAt:           &paidAt,
			PaidMethod:       &method,
			CreatedAt:        "2024-06-01T09:00:00Z",
		},
		{
			ID:               "txn-2",
			StaffID:          "artist-2",
			Amount:           100,
			CommissionRate:   0.5,
			CommissionAmount: 50,
			Status:           "pending",
			CreatedAt:        "2024-06-02T09:00:00Z",
		},
	}
}

func TestExportLedgerCSV(t *testing.T) {
	data, err := exportLedgerCSV(sampleTransactions())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// header plus one row per transaction
	require.Len(t, records, 3)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "txn-1", records[1][0])
	assert.Equal(t, "80.00", records[1][4])
	assert.Equal(t, "txn-2", records[2][0])
	assert.Equal(t, "", records[2][6]) // unpaid rows have no paid_at
}

func TestExportLedgerXLSX(t *testing.T) {
	data, err := exportLedgerXLSX(sampleTransactions())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Commissions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "txn-1", rows[1][0])
	assert.Equal(t, "txn-2", rows[2][0])
}
