package sales

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meridian-ims/meridian-ims/internal/ledger"
	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// taxRate is applied to the order subtotal.
const taxRate = 0.10

// StockPoster records stock movements. Satisfied by *ledger.Engine.
type StockPoster interface {
	Append(req ledger.MovementRequest) (ledger.StockMovement, error)
}

// Service owns the sales order, shipment and return lifecycles. Shipping and
// receiving returns post movements to the stock ledger.
type Service struct {
	store  *Store
	ledger StockPoster
	now    func() time.Time
}

// NewService builds Service.
func NewService(store *Store, poster StockPoster) *Service {
	return &Service{store: store, ledger: poster, now: time.Now}
}

// ListOrders returns all orders, oldest first.
func (s *Service) ListOrders() []SalesOrder { return s.store.listOrders() }

// GetOrder fetches one order.
func (s *Service) GetOrder(id int64) (SalesOrder, error) { return s.store.getOrder(id) }

// CreateOrder computes line totals, subtotal, tax and total, then stores the
// order as Confirmed with shipping Pending.
func (s *Service) CreateOrder(req CreateOrderRequest) SalesOrder {
	items := make([]OrderItem, len(req.Items))
	var subtotal float64
	for i, line := range req.Items {
		total := round2(float64(line.Qty) * line.Price)
		items[i] = OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Qty:         line.Qty,
			Price:       line.Price,
			Total:       total,
		}
		subtotal += total
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRate)

	now := s.now().UTC()
	return s.store.insertOrder(SalesOrder{
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		OrderDate:       now,
		Status:          OrderStatusConfirmed,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           round2(subtotal + tax),
		ShippingStatus:  ShippingStatusPending,
		CreatedAt:       now,
	})
}

// CancelOrder marks an unshipped order as cancelled.
func (s *Service) CancelOrder(id int64) (SalesOrder, error) {
	o, err := s.store.getOrder(id)
	if err != nil {
		return SalesOrder{}, err
	}
	if o.ShipmentNo != "" {
		return SalesOrder{}, fmt.Errorf("order %s already shipped: %w", o.OrderNo, httpx.ErrConflict)
	}
	o.Status = OrderStatusCancelled
	o.ShippingStatus = ShippingStatusCancelled
	if err := s.store.updateOrder(o); err != nil {
		return SalesOrder{}, err
	}
	return o, nil
}

// ListShipments returns all shipments, oldest first.
func (s *Service) ListShipments() []Shipment { return s.store.listShipments() }

// GetShipment fetches one shipment.
func (s *Service) GetShipment(id int64) (Shipment, error) { return s.store.getShipment(id) }

// CreateShipment issues stock for every order line and records the shipment.
// Each line posts an issue movement at the requested warehouse and bin. If a
// line is refused for insufficient stock, the lines already issued are offset
// with adjustments and the refusal is returned unchanged.
func (s *Service) CreateShipment(req CreateShipmentRequest) (Shipment, error) {
	o, err := s.store.getOrder(req.OrderID)
	if err != nil {
		return Shipment{}, err
	}
	if o.Status == OrderStatusCancelled {
		return Shipment{}, fmt.Errorf("order %s is cancelled: %w", o.OrderNo, httpx.ErrConflict)
	}
	if o.ShipmentNo != "" {
		return Shipment{}, fmt.Errorf("order %s already has shipment %s: %w", o.OrderNo, o.ShipmentNo, httpx.ErrConflict)
	}

	issued := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		_, err := s.ledger.Append(ledger.MovementRequest{
			ProductID:     item.ProductID,
			WarehouseID:   req.WarehouseID,
			BinID:         req.BinID,
			Type:          ledger.TypeIssueOut,
			Qty:           item.Qty,
			UnitCost:      item.Price,
			ReferenceType: "SO",
			ReferenceID:   o.OrderNo,
		})
		if err != nil {
			s.offsetIssued(issued, req.WarehouseID, req.BinID, o.OrderNo)
			var rejected *ledger.RejectedNegativeBalance
			if errors.As(err, &rejected) {
				return Shipment{}, err
			}
			return Shipment{}, fmt.Errorf("issue stock for %s: %w", o.OrderNo, err)
		}
		issued = append(issued, item)
	}

	sh := s.store.insertShipment(Shipment{
		OrderID:         o.ID,
		OrderNo:         o.OrderNo,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		Carrier:         req.Carrier,
		TrackingNo:      trackingNumber(req.Carrier, s.now()),
		Status:          ShippingStatusPending,
		Weight:          req.Weight,
		Cost:            req.Cost,
		Notes:           req.Notes,
		CreatedAt:       s.now().UTC(),
	})

	o.ShipmentNo = sh.ShipmentNo
	o.ShippingStatus = ShippingStatusPending
	if err := s.store.updateOrder(o); err != nil {
		return Shipment{}, err
	}
	return sh, nil
}

// offsetIssued reverses already issued lines after a partial failure so the
// ledger nets to the state before the shipment attempt.
func (s *Service) offsetIssued(issued []OrderItem, warehouseID, binID int64, orderNo string) {
	for _, item := range issued {
		// Inbound adjustments cannot be refused, so the offsets always land.
		s.ledger.Append(ledger.MovementRequest{ //nolint:errcheck
			ProductID:     item.ProductID,
			WarehouseID:   warehouseID,
			BinID:         binID,
			Type:          ledger.TypeAdjustmentIn,
			Qty:           item.Qty,
			UnitCost:      item.Price,
			ReferenceType: "SO",
			ReferenceID:   orderNo,
		})
	}
}

// UpdateShipmentStatus advances a shipment and mirrors the status onto the
// parent order.
func (s *Service) UpdateShipmentStatus(id int64, status ShippingStatus) (Shipment, error) {
	sh, err := s.store.getShipment(id)
	if err != nil {
		return Shipment{}, err
	}
	sh.Status = status
	if err := s.store.updateShipment(sh); err != nil {
		return Shipment{}, err
	}

	o, err := s.store.getOrder(sh.OrderID)
	if err != nil {
		return Shipment{}, err
	}
	o.ShippingStatus = status
	switch status {
	case ShippingStatusShipped, ShippingStatusInTransit:
		o.Status = OrderStatusShipped
	case ShippingStatusDelivered:
		o.Status = OrderStatusDelivered
	}
	if err := s.store.updateOrder(o); err != nil {
		return Shipment{}, err
	}
	return sh, nil
}

// ListReturns returns all returns, oldest first.
func (s *Service) ListReturns() []Return { return s.store.listReturns() }

// GetReturn fetches one return.
func (s *Service) GetReturn(id int64) (Return, error) { return s.store.getReturn(id) }

// CreateReturn opens a return against a delivered or shipped order. Stock is
// not touched until the return is marked Received.
func (s *Service) CreateReturn(req CreateReturnRequest) (Return, error) {
	o, err := s.store.getOrder(req.OrderID)
	if err != nil {
		return Return{}, err
	}
	if o.Status != OrderStatusShipped && o.Status != OrderStatusDelivered {
		return Return{}, fmt.Errorf("order %s has not shipped: %w", o.OrderNo, httpx.ErrConflict)
	}

	items := make([]OrderItem, len(req.Items))
	for i, line := range req.Items {
		items[i] = OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Qty:         line.Qty,
			Price:       line.Price,
			Total:       round2(float64(line.Qty) * line.Price),
		}
	}

	rt := s.store.insertReturn(Return{
		OrderID:     o.ID,
		OrderNo:     o.OrderNo,
		WarehouseID: req.WarehouseID,
		BinID:       req.BinID,
		Reason:      req.Reason,
		Items:       items,
		Status:      ReturnStatusPending,
		CreatedAt:   s.now().UTC(),
	})

	o.ReturnStatus = "Returned"
	if err := s.store.updateOrder(o); err != nil {
		return Return{}, err
	}
	return rt, nil
}

// UpdateReturnStatus advances a return. Marking it Received restocks every
// line at the return's warehouse and bin; marking it Refunded closes the loop
// on the order.
func (s *Service) UpdateReturnStatus(id int64, status ReturnStatus) (Return, error) {
	rt, err := s.store.getReturn(id)
	if err != nil {
		return Return{}, err
	}
	if rt.Status == status {
		return rt, nil
	}
	if rt.Status == ReturnStatusRefunded {
		return Return{}, fmt.Errorf("return %s already refunded: %w", rt.ReturnNo, httpx.ErrConflict)
	}

	if status == ReturnStatusReceived {
		for _, item := range rt.Items {
			if _, err := s.ledger.Append(ledger.MovementRequest{
				ProductID:     item.ProductID,
				WarehouseID:   rt.WarehouseID,
				BinID:         rt.BinID,
				Type:          ledger.TypeReturnIn,
				Qty:           item.Qty,
				UnitCost:      item.Price,
				ReferenceType: "RT",
				ReferenceID:   rt.ReturnNo,
			}); err != nil {
				return Return{}, fmt.Errorf("restock return %s: %w", rt.ReturnNo, err)
			}
		}
	}

	rt.Status = status
	if err := s.store.updateReturn(rt); err != nil {
		return Return{}, err
	}

	if status == ReturnStatusRefunded {
		o, err := s.store.getOrder(rt.OrderID)
		if err != nil {
			return Return{}, err
		}
		o.ReturnStatus = "Refunded"
		if err := s.store.updateOrder(o); err != nil {
			return Return{}, err
		}
	}
	return rt, nil
}

func trackingNumber(carrier string, at time.Time) string {
	prefix := "TRK"
	if len(carrier) >= 3 {
		prefix = fmt.Sprintf("%c%c%c", carrier[0], carrier[1], carrier[2])
	}
	return fmt.Sprintf("%s%d", prefix, at.UnixNano()%1_000_000_000)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
