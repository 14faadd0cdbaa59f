package procurement

import (
	"fmt"
	"math"
	"time"

	"github.com/meridian-ims/meridian-ims/internal/ledger"
	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// taxRate is applied to the purchase order subtotal.
const taxRate = 0.10

// StockPoster records stock movements. Satisfied by *ledger.Engine.
type StockPoster interface {
	Append(req ledger.MovementRequest) (ledger.StockMovement, error)
}

// Service owns purchase orders and goods receipts. Booking a receipt posts
// inbound movements to the stock ledger.
type Service struct {
	store  *Store
	ledger StockPoster
	now    func() time.Time
}

// NewService builds Service.
func NewService(store *Store, poster StockPoster) *Service {
	return &Service{store: store, ledger: poster, now: time.Now}
}

// ListOrders returns all purchase orders, oldest first.
func (s *Service) ListOrders() []PurchaseOrder { return s.store.listOrders() }

// GetOrder fetches one purchase order.
func (s *Service) GetOrder(id int64) (PurchaseOrder, error) { return s.store.getOrder(id) }

// CreateOrder computes line totals, subtotal, tax and total, then stores the
// order as Open.
func (s *Service) CreateOrder(req CreatePORequest) PurchaseOrder {
	items := make([]POItem, len(req.Items))
	var subtotal float64
	for i, line := range req.Items {
		total := round2(float64(line.Qty) * line.UnitCost)
		items[i] = POItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Qty:         line.Qty,
			UnitCost:    line.UnitCost,
			Total:       total,
		}
		subtotal += total
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRate)

	now := s.now().UTC()
	return s.store.insertOrder(PurchaseOrder{
		SupplierID:   req.SupplierID,
		SupplierName: req.SupplierName,
		OrderDate:    now,
		Status:       POStatusOpen,
		Items:        items,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        round2(subtotal + tax),
		CreatedAt:    now,
	})
}

// CancelOrder cancels a purchase order that has not received any goods.
func (s *Service) CancelOrder(id int64) (PurchaseOrder, error) {
	po, err := s.store.getOrder(id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	if po.Status != POStatusOpen {
		return PurchaseOrder{}, fmt.Errorf("purchase order %s is %s: %w", po.PONo, po.Status, httpx.ErrConflict)
	}
	po.Status = POStatusCancelled
	if err := s.store.updateOrder(po); err != nil {
		return PurchaseOrder{}, err
	}
	return po, nil
}

// ListReceipts returns all goods receipts, oldest first.
func (s *Service) ListReceipts() []GRN { return s.store.listReceipts() }

// GetReceipt fetches one goods receipt.
func (s *Service) GetReceipt(id int64) (GRN, error) { return s.store.getReceipt(id) }

// ReceiveGRN books a goods receipt against an open or partially received
// order. Every received line is posted to the ledger as a receipt at the
// given warehouse and bin, then the order's received quantities and status
// are updated. An empty item list receives the full outstanding quantity of
// every line.
func (s *Service) ReceiveGRN(req ReceiveGRNRequest) (GRN, error) {
	po, err := s.store.getOrder(req.POID)
	if err != nil {
		return GRN{}, err
	}
	if po.Status == POStatusCancelled || po.Status == POStatusReceived {
		return GRN{}, fmt.Errorf("purchase order %s is %s: %w", po.PONo, po.Status, httpx.ErrConflict)
	}

	lines, err := resolveReceiptLines(po, req.Items)
	if err != nil {
		return GRN{}, err
	}
	if len(lines) == 0 {
		return GRN{}, fmt.Errorf("purchase order %s has nothing outstanding: %w", po.PONo, httpx.ErrConflict)
	}

	g := s.store.insertReceipt(GRN{
		POID:        po.ID,
		PONo:        po.PONo,
		WarehouseID: req.WarehouseID,
		BinID:       req.BinID,
		Items:       lines,
		CreatedAt:   s.now().UTC(),
	})

	for _, line := range lines {
		// Receipts are inbound and can never drive a balance negative.
		if _, err := s.ledger.Append(ledger.MovementRequest{
			ProductID:     line.ProductID,
			WarehouseID:   req.WarehouseID,
			BinID:         req.BinID,
			Type:          ledger.TypeReceiptIn,
			Qty:           line.Qty,
			UnitCost:      line.UnitCost,
			ReferenceType: "GRN",
			ReferenceID:   g.GRNNo,
			BatchNumber:   line.BatchNumber,
			ExpiryDate:    line.ExpiryDate,
		}); err != nil {
			return GRN{}, fmt.Errorf("post receipt %s: %w", g.GRNNo, err)
		}
	}

	fullyReceived := true
	for i := range po.Items {
		for _, line := range lines {
			if po.Items[i].ProductID == line.ProductID {
				po.Items[i].ReceivedQty += line.Qty
			}
		}
		if po.Items[i].ReceivedQty < po.Items[i].Qty {
			fullyReceived = false
		}
	}
	if fullyReceived {
		po.Status = POStatusReceived
	} else {
		po.Status = POStatusPartial
	}
	if err := s.store.updateOrder(po); err != nil {
		return GRN{}, err
	}
	return g, nil
}

// resolveReceiptLines maps the requested items onto the order, filling unit
// costs and names from the order lines and capping quantities at what is
// still outstanding.
func resolveReceiptLines(po PurchaseOrder, items []ReceiveGRNItemRequest) ([]GRNItem, error) {
	byProduct := make(map[int64]POItem, len(po.Items))
	for _, item := range po.Items {
		byProduct[item.ProductID] = item
	}

	if len(items) == 0 {
		lines := make([]GRNItem, 0, len(po.Items))
		for _, item := range po.Items {
			outstanding := item.Qty - item.ReceivedQty
			if outstanding <= 0 {
				continue
			}
			lines = append(lines, GRNItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Qty:         outstanding,
				UnitCost:    item.UnitCost,
			})
		}
		return lines, nil
	}

	lines := make([]GRNItem, 0, len(items))
	for _, req := range items {
		ordered, ok := byProduct[req.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d is not on purchase order %s: %w", req.ProductID, po.PONo, httpx.ErrUnprocessable)
		}
		outstanding := ordered.Qty - ordered.ReceivedQty
		if req.Qty > outstanding {
			return nil, fmt.Errorf("product %d: received %d exceeds outstanding %d on %s: %w",
				req.ProductID, req.Qty, outstanding, po.PONo, httpx.ErrUnprocessable)
		}
		line := GRNItem{
			ProductID:   ordered.ProductID,
			ProductName: ordered.ProductName,
			Qty:         req.Qty,
			UnitCost:    ordered.UnitCost,
			BatchNumber: req.BatchNumber,
		}
		if req.ExpiryDate != "" {
			expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
			if err != nil {
				return nil, fmt.Errorf("product %d: invalid expiry date: %w", req.ProductID, httpx.ErrValidation)
			}
			line.ExpiryDate = &expiry
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
