package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValuationConsumesOldestLayersFirst(t *testing.T) {
	e := NewEngine()
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 10, UnitCost: 100})
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 5, UnitCost: 120})
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeIssueOut, Qty: 8})

	report := e.Valuation()
	require.Len(t, report.Lines, 1)

	// 8 issued from the 100-cost layer leaves 2@100 + 5@120 = 800.
	line := report.Lines[0]
	require.Equal(t, int64(7), line.OnHand)
	require.True(t, line.Value.Equal(decimal.NewFromInt(800)), "got %s", line.Value)
	require.True(t, report.Total.Equal(decimal.NewFromInt(800)))
}

func TestValuationSpansLayerBoundary(t *testing.T) {
	e := NewEngine()
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 10, UnitCost: 100})
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 5, UnitCost: 120})
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeIssueOut, Qty: 12})

	// Issue of 12 drains the first layer and 2 from the second: 3@120 = 360.
	report := e.Valuation()
	require.Len(t, report.Lines, 1)
	require.Equal(t, int64(3), report.Lines[0].OnHand)
	require.True(t, report.Lines[0].Value.Equal(decimal.NewFromInt(360)))
}

func TestValuationOmitsDrainedLocations(t *testing.T) {
	e := NewEngine()
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 10, UnitCost: 100})
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeIssueOut, Qty: 10})
	mustAppend(t, e, MovementRequest{ProductID: 2, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 4, UnitCost: 50})

	report := e.Valuation()
	require.Len(t, report.Lines, 1)
	require.Equal(t, int64(2), report.Lines[0].ProductID)
	require.True(t, report.Total.Equal(decimal.NewFromInt(200)))
}

func TestValuationLinesAreSortedByKey(t *testing.T) {
	e := NewEngine()
	mustAppend(t, e, MovementRequest{ProductID: 2, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 1, UnitCost: 10})
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 2, BinID: 1, Type: TypeReceiptIn, Qty: 1, UnitCost: 10})
	mustAppend(t, e, MovementRequest{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 1, UnitCost: 10})

	report := e.Valuation()
	require.Len(t, report.Lines, 3)
	require.Equal(t, int64(1), report.Lines[0].ProductID)
	require.Equal(t, int64(1), report.Lines[0].WarehouseID)
	require.Equal(t, int64(2), report.Lines[1].WarehouseID)
	require.Equal(t, int64(2), report.Lines[2].ProductID)
}

func TestValuationOfDemoLedger(t *testing.T) {
	e := NewEngine()
	SeedDemo(e)

	report := e.Valuation()
	require.Len(t, report.Lines, 7)

	// Single-layer fixtures value at their receipt cost.
	total := decimal.Zero
	for _, line := range report.Lines {
		require.Positive(t, line.OnHand)
		total = total.Add(line.Value)
	}
	require.True(t, report.Total.Equal(total))

	// 17 * 1200 for the laptop bin.
	require.Equal(t, int64(17), report.Lines[0].OnHand)
	require.True(t, report.Lines[0].Value.Equal(decimal.NewFromInt(20400)))
}
