package masterdata

import "time"

// Product represents a product master record.
type Product struct {
	ID           int64     `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	UOM          string    `json:"uom"`
	CostPrice    float64   `json:"cost_price"`
	SellingPrice float64   `json:"selling_price"`
	MinStock     int64     `json:"min_stock"`
	ReorderPoint int64     `json:"reorder_point"`
	HasBatch     bool      `json:"has_batch"`
	HasSerial    bool      `json:"has_serial"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Warehouse represents a physical warehouse.
type Warehouse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bin is a storage location inside a warehouse. A bin belongs to exactly one
// warehouse.
type Bin struct {
	ID          int64     `json:"id"`
	WarehouseID int64     `json:"warehouse_id"`
	Code        string    `json:"code"`
	Zone        string    `json:"zone"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest carries a new product.
type CreateProductRequest struct {
	SKU          string  `json:"sku" validate:"required,max=50"`
	Name         string  `json:"name" validate:"required,max=200"`
	UOM          string  `json:"uom" validate:"required,max=20"`
	CostPrice    float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	MinStock     int64   `json:"min_stock" validate:"gte=0"`
	ReorderPoint int64   `json:"reorder_point" validate:"gte=0"`
	HasBatch     bool    `json:"has_batch"`
	HasSerial    bool    `json:"has_serial"`
}

// UpdateProductRequest carries partial product changes.
type UpdateProductRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	UOM          *string  `json:"uom,omitempty" validate:"omitempty,max=20"`
	CostPrice    *float64 `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	SellingPrice *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	MinStock     *int64   `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	ReorderPoint *int64   `json:"reorder_point,omitempty" validate:"omitempty,gte=0"`
	HasBatch     *bool    `json:"has_batch,omitempty"`
	HasSerial    *bool    `json:"has_serial,omitempty"`
}

// CreateWarehouseRequest carries a new warehouse.
type CreateWarehouseRequest struct {
	Code    string `json:"code" validate:"required,max=20"`
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=300"`
}

// CreateBinRequest carries a new bin for an existing warehouse.
type CreateBinRequest struct {
	WarehouseID int64  `json:"warehouse_id" validate:"required,gt=0"`
	Code        string `json:"code" validate:"required,max=20"`
	Zone        string `json:"zone" validate:"max=20"`
}

// Repository holds master data records.
type Repository interface {
	ListProducts() []Product
	GetProduct(id int64) (Product, error)
	CreateProduct(p Product) Product
	UpdateProduct(id int64, p Product) error
	DeleteProduct(id int64) error

	ListWarehouses() []Warehouse
	GetWarehouse(id int64) (Warehouse, error)
	CreateWarehouse(w Warehouse) Warehouse
	DeleteWarehouse(id int64) error

	ListBins() []Bin
	ListBinsByWarehouse(warehouseID int64) []Bin
	GetBin(id int64) (Bin, error)
	CreateBin(b Bin) Bin
	DeleteBin(id int64) error
}
