package ledger

import "time"

// DemoMovements returns the deterministic demo ledger: realistic FIFO receipt
// layers with partial issues, two batch-tracked products, and a trailing issue
// that overdraws its bin on purpose to exercise the negative-stock guard
// during seeding.
func DemoMovements() []MovementRequest {
	expiryA := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	expiryB := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)

	return []MovementRequest{
		{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 25, UnitCost: 1200, ReferenceType: "GRN", ReferenceID: "101"},
		{ProductID: 1, WarehouseID: 1, BinID: 1, Type: TypeIssueOut, Qty: 8, UnitCost: 1200, ReferenceType: "SO", ReferenceID: "201"},
		{ProductID: 1, WarehouseID: 1, BinID: 2, Type: TypeReceiptIn, Qty: 10, UnitCost: 1180, ReferenceType: "GRN", ReferenceID: "102"},
		{ProductID: 1, WarehouseID: 1, BinID: 2, Type: TypeIssueOut, Qty: 3, UnitCost: 1180, ReferenceType: "SO", ReferenceID: "202"},

		{ProductID: 2, WarehouseID: 1, BinID: 3, Type: TypeReceiptIn, Qty: 60, UnitCost: 180, ReferenceType: "GRN", ReferenceID: "103"},
		{ProductID: 2, WarehouseID: 1, BinID: 3, Type: TypeIssueOut, Qty: 42, UnitCost: 180, ReferenceType: "SO", ReferenceID: "203"},

		{ProductID: 3, WarehouseID: 2, BinID: 4, Type: TypeReceiptIn, Qty: 120, UnitCost: 85, ReferenceType: "GRN", ReferenceID: "104"},
		{ProductID: 3, WarehouseID: 2, BinID: 4, Type: TypeIssueOut, Qty: 85, UnitCost: 85, ReferenceType: "SO", ReferenceID: "204"},

		{ProductID: 5, WarehouseID: 1, BinID: 1, Type: TypeReceiptIn, Qty: 40, UnitCost: 75, ReferenceType: "GRN", ReferenceID: "105", BatchNumber: "BATCH2025A", ExpiryDate: &expiryA},
		{ProductID: 5, WarehouseID: 1, BinID: 1, Type: TypeIssueOut, Qty: 38, UnitCost: 75, ReferenceType: "SO", ReferenceID: "205", BatchNumber: "BATCH2025A"},

		{ProductID: 6, WarehouseID: 2, BinID: 5, Type: TypeReceiptIn, Qty: 30, UnitCost: 110, ReferenceType: "GRN", ReferenceID: "106", BatchNumber: "BATCH2025B", ExpiryDate: &expiryB},
		{ProductID: 6, WarehouseID: 2, BinID: 5, Type: TypeIssueOut, Qty: 5, UnitCost: 110, ReferenceType: "SO", ReferenceID: "206", BatchNumber: "BATCH2025B"},

		// Low-stock location; the final issue overdraws and gets skipped.
		{ProductID: 4, WarehouseID: 1, BinID: 2, Type: TypeReceiptIn, Qty: 20, UnitCost: 45, ReferenceType: "GRN", ReferenceID: "107"},
		{ProductID: 4, WarehouseID: 1, BinID: 2, Type: TypeIssueOut, Qty: 25, UnitCost: 45, ReferenceType: "SO", ReferenceID: "207"},
	}
}

// SeedDemo loads the demo ledger into the engine.
func SeedDemo(e *Engine) []StockMovement {
	return e.Seed(DemoMovements())
}
