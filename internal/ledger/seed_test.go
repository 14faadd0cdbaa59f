package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedDemoSkipsBlockedEntry(t *testing.T) {
	e := NewEngine()
	accepted := SeedDemo(e)

	// The fixture ends with an issue of 25 against a balance of 20, which is
	// silently dropped.
	require.Len(t, DemoMovements(), 14)
	require.Len(t, accepted, 13)
	require.Equal(t, 13, e.Len())

	require.Equal(t, int64(20), e.CurrentBalance(4, 1, 2))
	for _, m := range e.Movements() {
		require.False(t, m.Key() == (LocationKey{ProductID: 4, WarehouseID: 1, BinID: 2}) && m.QtyOut == 25)
	}
}

func TestSeedDemoBalances(t *testing.T) {
	e := NewEngine()
	SeedDemo(e)

	require.Equal(t, int64(17), e.CurrentBalance(1, 1, 1))
	require.Equal(t, int64(7), e.CurrentBalance(1, 1, 2))
	require.Equal(t, int64(18), e.CurrentBalance(2, 1, 3))
	require.Equal(t, int64(35), e.CurrentBalance(3, 2, 4))
	require.Equal(t, int64(2), e.CurrentBalance(5, 1, 1))
	require.Equal(t, int64(25), e.CurrentBalance(6, 2, 5))
}

func TestSeedIsOrderSensitive(t *testing.T) {
	e := NewEngine()
	// An issue ahead of its receipt is dropped; the receipt still lands.
	accepted := e.Seed([]MovementRequest{
		{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeIssueOut, Qty: 5},
		{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 5},
	})
	require.Len(t, accepted, 1)
	require.Equal(t, int64(5), e.CurrentBalance(1, 1, 1))
}

func TestSeedBatchMetadataSurvives(t *testing.T) {
	e := NewEngine()
	SeedDemo(e)

	var found bool
	for _, m := range e.Movements() {
		if m.BatchNumber == "BATCH2025A" && m.QtyIn > 0 {
			found = true
			require.NotNil(t, m.ExpiryDate)
			require.Equal(t, "2025-12-31", m.ExpiryDate.Format("2006-01-02"))
		}
	}
	require.True(t, found)
}
