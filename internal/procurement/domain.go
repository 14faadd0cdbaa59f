package procurement

import "time"

// POStatus tracks the purchase order lifecycle.
type POStatus string

const (
	POStatusOpen      POStatus = "Open"
	POStatusPartial   POStatus = "Partially Received"
	POStatusReceived  POStatus = "Received"
	POStatusCancelled POStatus = "Cancelled"
)

// POItem is a single product line on a purchase order.
type POItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         int64   `json:"qty"`
	UnitCost    float64 `json:"unit_cost"`
	Total       float64 `json:"total"`
	ReceivedQty int64   `json:"received_qty"`
}

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	ID           int64     `json:"id"`
	PONo         string    `json:"po_no"`
	SupplierID   int64     `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	OrderDate    time.Time `json:"order_date"`
	Status       POStatus  `json:"status"`
	Items        []POItem  `json:"items"`
	Subtotal     float64   `json:"subtotal"`
	Tax          float64   `json:"tax"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}

// GRNItem is a received quantity of one product.
type GRNItem struct {
	ProductID   int64      `json:"product_id"`
	ProductName string     `json:"product_name"`
	Qty         int64      `json:"qty"`
	UnitCost    float64    `json:"unit_cost"`
	BatchNumber string     `json:"batch_no,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

// GRN is a goods receipt note booked against a purchase order. Every line is
// posted to the stock ledger at the receipt's warehouse and bin.
type GRN struct {
	ID          int64     `json:"id"`
	GRNNo       string    `json:"grn_no"`
	POID        int64     `json:"po_id"`
	PONo        string    `json:"po_no"`
	WarehouseID int64     `json:"warehouse_id"`
	BinID       int64     `json:"bin_id"`
	Items       []GRNItem `json:"items"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePOItemRequest is one requested purchase line.
type CreatePOItemRequest struct {
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	ProductName string  `json:"product_name" validate:"required,max=200"`
	Qty         int64   `json:"qty" validate:"required,gt=0"`
	UnitCost    float64 `json:"unit_cost" validate:"gte=0"`
}

// CreatePORequest carries a new purchase order. Totals are computed
// server-side.
type CreatePORequest struct {
	SupplierID   int64                 `json:"supplier_id" validate:"required,gt=0"`
	SupplierName string                `json:"supplier_name" validate:"required,max=200"`
	Items        []CreatePOItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReceiveGRNItemRequest receives a quantity of one ordered product. Qty may be
// lower than ordered for a partial receipt.
type ReceiveGRNItemRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,gt=0"`
	Qty         int64  `json:"qty" validate:"required,gt=0"`
	BatchNumber string `json:"batch_no" validate:"omitempty,max=40"`
	ExpiryDate  string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// ReceiveGRNRequest books a goods receipt against a purchase order. When Items
// is empty the outstanding quantity of every line is received.
type ReceiveGRNRequest struct {
	POID        int64                   `json:"po_id" validate:"required,gt=0"`
	WarehouseID int64                   `json:"warehouse_id" validate:"required,gt=0"`
	BinID       int64                   `json:"bin_id" validate:"required,gt=0"`
	Items       []ReceiveGRNItemRequest `json:"items" validate:"omitempty,dive"`
}
