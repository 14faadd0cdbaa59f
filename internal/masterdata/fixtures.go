package masterdata

// SeedFixtures loads the demo catalog: six products, two warehouses and five
// bins. IDs are fixed so the demo ledger references line up.
func SeedFixtures(repo Repository) {
	products := []Product{
		{ID: 1, SKU: "LAP-001", Name: `Laptop Pro 16"`, UOM: "PCS", CostPrice: 1200, SellingPrice: 1599, MinStock: 5, ReorderPoint: 10, HasSerial: true},
		{ID: 2, SKU: "MON-24", Name: `24" Monitor`, UOM: "PCS", CostPrice: 180, SellingPrice: 249, MinStock: 8, ReorderPoint: 15},
		{ID: 3, SKU: "KBD-MECH", Name: "Mechanical Keyboard", UOM: "PCS", CostPrice: 85, SellingPrice: 129, MinStock: 20, ReorderPoint: 30},
		{ID: 4, SKU: "MOUSE-G", Name: "Gaming Mouse", UOM: "PCS", CostPrice: 45, SellingPrice: 79, MinStock: 25, ReorderPoint: 40},
		{ID: 5, SKU: "RAM-16GB", Name: "16GB RAM Stick", UOM: "PCS", CostPrice: 75, SellingPrice: 119, MinStock: 10, ReorderPoint: 20, HasBatch: true},
		{ID: 6, SKU: "SSD-1TB", Name: "1TB NVMe SSD", UOM: "PCS", CostPrice: 110, SellingPrice: 169, MinStock: 12, ReorderPoint: 25, HasBatch: true},
	}
	for _, p := range products {
		repo.CreateProduct(p)
	}

	warehouses := []Warehouse{
		{ID: 1, Code: "WH1", Name: "Main Warehouse", Address: "123 Industrial Rd, New York, NY"},
		{ID: 2, Code: "WH2", Name: "West Coast Hub", Address: "456 Pacific Ave, Los Angeles, CA"},
	}
	for _, w := range warehouses {
		repo.CreateWarehouse(w)
	}

	bins := []Bin{
		{ID: 1, WarehouseID: 1, Code: "A1", Zone: "A"},
		{ID: 2, WarehouseID: 1, Code: "A2", Zone: "A"},
		{ID: 3, WarehouseID: 1, Code: "B1", Zone: "B"},
		{ID: 4, WarehouseID: 2, Code: "C1", Zone: "C"},
		{ID: 5, WarehouseID: 2, Code: "C2", Zone: "C"},
	}
	for _, b := range bins {
		repo.CreateBin(b)
	}
}
