package sales

import "time"

// OrderStatus tracks the sales order lifecycle.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "Draft"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ShippingStatus tracks shipment progress, mirrored onto the parent order.
type ShippingStatus string

const (
	ShippingStatusPending   ShippingStatus = "Pending"
	ShippingStatusShipped   ShippingStatus = "Shipped"
	ShippingStatusInTransit ShippingStatus = "In Transit"
	ShippingStatusDelivered ShippingStatus = "Delivered"
	ShippingStatusCancelled ShippingStatus = "Cancelled"
)

// ReturnStatus tracks a customer return.
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "Pending"
	ReturnStatusReceived ReturnStatus = "Received"
	ReturnStatusRefunded ReturnStatus = "Refunded"
)

// OrderItem is a single product line on an order or return.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Qty         int64   `json:"qty"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// SalesOrder is a customer order with its computed totals.
type SalesOrder struct {
	ID              int64          `json:"id"`
	OrderNo         string         `json:"order_no"`
	CustomerID      int64          `json:"customer_id"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email,omitempty"`
	CustomerAddress string         `json:"customer_address,omitempty"`
	OrderDate       time.Time      `json:"order_date"`
	Status          OrderStatus    `json:"status"`
	Items           []OrderItem    `json:"items"`
	Subtotal        float64        `json:"subtotal"`
	Tax             float64        `json:"tax"`
	Total           float64        `json:"total"`
	ShippingStatus  ShippingStatus `json:"shipping_status"`
	ShipmentNo      string         `json:"shipment_no,omitempty"`
	ReturnStatus    string         `json:"return_status,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Shipment is an outbound delivery created from a confirmed order.
type Shipment struct {
	ID              int64          `json:"id"`
	ShipmentNo      string         `json:"shipment_no"`
	OrderID         int64          `json:"order_id"`
	OrderNo         string         `json:"order_no"`
	CustomerID      int64          `json:"customer_id"`
	CustomerName    string         `json:"customer_name"`
	CustomerAddress string         `json:"customer_address,omitempty"`
	Carrier         string         `json:"carrier"`
	TrackingNo      string         `json:"tracking_no"`
	Status          ShippingStatus `json:"status"`
	Weight          float64        `json:"weight"`
	Cost            float64        `json:"cost"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Return is a customer return linked to an order. Warehouse and bin say where
// the goods go back to once the return is received.
type Return struct {
	ID          int64        `json:"id"`
	ReturnNo    string       `json:"return_no"`
	OrderID     int64        `json:"order_id"`
	OrderNo     string       `json:"order_no"`
	WarehouseID int64        `json:"warehouse_id"`
	BinID       int64        `json:"bin_id"`
	Reason      string       `json:"reason,omitempty"`
	Items       []OrderItem  `json:"items"`
	Status      ReturnStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CreateOrderItemRequest is one requested order line.
type CreateOrderItemRequest struct {
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	ProductName string  `json:"product_name" validate:"required,max=200"`
	Qty         int64   `json:"qty" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest carries a new sales order. Totals are computed
// server-side.
type CreateOrderRequest struct {
	CustomerID      int64                    `json:"customer_id" validate:"required,gt=0"`
	CustomerName    string                   `json:"customer_name" validate:"required,max=200"`
	CustomerEmail   string                   `json:"customer_email" validate:"omitempty,email"`
	CustomerAddress string                   `json:"customer_address" validate:"max=300"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateShipmentRequest asks for a shipment of an existing order. Warehouse
// and bin say where the stock is issued from.
type CreateShipmentRequest struct {
	OrderID     int64   `json:"order_id" validate:"required,gt=0"`
	WarehouseID int64   `json:"warehouse_id" validate:"required,gt=0"`
	BinID       int64   `json:"bin_id" validate:"required,gt=0"`
	Carrier     string  `json:"carrier" validate:"omitempty,max=50"`
	Weight      float64 `json:"weight" validate:"gte=0"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Notes       string  `json:"notes" validate:"max=300"`
}

// UpdateShipmentStatusRequest moves a shipment through its lifecycle.
type UpdateShipmentStatusRequest struct {
	Status ShippingStatus `json:"status" validate:"required,oneof=Pending Shipped 'In Transit' Delivered Cancelled"`
}

// CreateReturnRequest opens a customer return against an order. Warehouse and
// bin say where returned stock is put back when the return is received.
type CreateReturnRequest struct {
	OrderID     int64                    `json:"order_id" validate:"required,gt=0"`
	WarehouseID int64                    `json:"warehouse_id" validate:"required,gt=0"`
	BinID       int64                    `json:"bin_id" validate:"required,gt=0"`
	Reason      string                   `json:"reason" validate:"max=300"`
	Items       []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateReturnStatusRequest moves a return through its lifecycle.
type UpdateReturnStatusRequest struct {
	Status ReturnStatus `json:"status" validate:"required,oneof=Pending Received Refunded"`
}
