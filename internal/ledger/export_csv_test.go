package ledger

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeaderAndRows(t *testing.T) {
	e := NewEngine()
	SeedDemo(e)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, e.Movements()))

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 14) // header + 13 accepted movements
	require.Equal(t, []string{
		"id", "product_id", "warehouse_id", "bin_id", "transaction_type",
		"qty_in", "qty_out", "balance_after", "unit_cost",
		"reference_type", "reference_id", "batch_no", "expiry_date", "created_at",
	}, records[0])

	first := records[1]
	require.Equal(t, "1", first[1])
	require.Equal(t, "receipt_in", first[4])
	require.Equal(t, "25", first[5])
	require.Equal(t, "25", first[7])
	require.Equal(t, "1200.00", first[8])
}

func TestWriteCSVUsesCRLF(t *testing.T) {
	e := NewEngine()
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 1})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, e.Movements()))
	require.True(t, strings.Contains(buf.String(), "\r\n"))
}

func TestWriteCSVEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriteCSVFormatsBatchColumns(t *testing.T) {
	e := NewEngine()
	SeedDemo(e)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, e.Movements()))

	require.Contains(t, buf.String(), "BATCH2025A")
	require.Contains(t, buf.String(), "2025-12-31")
}
