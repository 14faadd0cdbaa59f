package procurement

import (
	"fmt"
	"sort"
	"sync"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// Store keeps purchase orders and goods receipts in process memory.
type Store struct {
	mu sync.RWMutex

	orders   map[int64]PurchaseOrder
	receipts map[int64]GRN

	nextOrderID   int64
	nextReceiptID int64
}

// NewStore returns an empty procurement store.
func NewStore() *Store {
	return &Store{
		orders:   make(map[int64]PurchaseOrder),
		receipts: make(map[int64]GRN),
	}
}

func (s *Store) insertOrder(po PurchaseOrder) PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	po.ID = s.nextOrderID
	po.PONo = fmt.Sprintf("PO-%04d", 1000+s.nextOrderID)
	s.orders[po.ID] = po
	return po
}

func (s *Store) getOrder(id int64) (PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	po, ok := s.orders[id]
	if !ok {
		return PurchaseOrder{}, fmt.Errorf("purchase order %d: %w", id, httpx.ErrNotFound)
	}
	return po, nil
}

func (s *Store) updateOrder(po PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[po.ID]; !ok {
		return fmt.Errorf("purchase order %d: %w", po.ID, httpx.ErrNotFound)
	}
	s.orders[po.ID] = po
	return nil
}

func (s *Store) listOrders() []PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PurchaseOrder, 0, len(s.orders))
	for _, po := range s.orders {
		out = append(out, po)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) insertReceipt(g GRN) GRN {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextReceiptID++
	g.ID = s.nextReceiptID
	g.GRNNo = fmt.Sprintf("GRN-%04d", 1000+s.nextReceiptID)
	s.receipts[g.ID] = g
	return g
}

func (s *Store) getReceipt(id int64) (GRN, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.receipts[id]
	if !ok {
		return GRN{}, fmt.Errorf("goods receipt %d: %w", id, httpx.ErrNotFound)
	}
	return g, nil
}

func (s *Store) listReceipts() []GRN {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]GRN, 0, len(s.receipts))
	for _, g := range s.receipts {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
