package sales

import (
	"fmt"
	"sort"
	"sync"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// Store keeps orders, shipments and returns in process memory. Mutation goes
// only through the Service; the store itself just guards the collections.
type Store struct {
	mu sync.RWMutex

	orders    map[int64]SalesOrder
	shipments map[int64]Shipment
	returns   map[int64]Return

	nextOrderID    int64
	nextShipmentID int64
	nextReturnID   int64
}

// NewStore returns an empty sales store.
func NewStore() *Store {
	return &Store{
		orders:    make(map[int64]SalesOrder),
		shipments: make(map[int64]Shipment),
		returns:   make(map[int64]Return),
	}
}

func (s *Store) insertOrder(o SalesOrder) SalesOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	o.ID = s.nextOrderID
	o.OrderNo = fmt.Sprintf("SO-%04d", 1000+s.nextOrderID)
	s.orders[o.ID] = o
	return o
}

func (s *Store) getOrder(id int64) (SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return SalesOrder{}, fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	return o, nil
}

func (s *Store) updateOrder(o SalesOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return fmt.Errorf("order %d: %w", o.ID, httpx.ErrNotFound)
	}
	s.orders[o.ID] = o
	return nil
}

func (s *Store) listOrders() []SalesOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SalesOrder, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) insertShipment(sh Shipment) Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextShipmentID++
	sh.ID = s.nextShipmentID
	sh.ShipmentNo = fmt.Sprintf("SH-%04d", 1000+s.nextShipmentID)
	s.shipments[sh.ID] = sh
	return sh
}

func (s *Store) getShipment(id int64) (Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shipments[id]
	if !ok {
		return Shipment{}, fmt.Errorf("shipment %d: %w", id, httpx.ErrNotFound)
	}
	return sh, nil
}

func (s *Store) updateShipment(sh Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shipments[sh.ID]; !ok {
		return fmt.Errorf("shipment %d: %w", sh.ID, httpx.ErrNotFound)
	}
	s.shipments[sh.ID] = sh
	return nil
}

func (s *Store) listShipments() []Shipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shipment, 0, len(s.shipments))
	for _, sh := range s.shipments {
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) insertReturn(rt Return) Return {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextReturnID++
	rt.ID = s.nextReturnID
	rt.ReturnNo = fmt.Sprintf("RT-%04d", 1000+s.nextReturnID)
	s.returns[rt.ID] = rt
	return rt
}

func (s *Store) getReturn(id int64) (Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.returns[id]
	if !ok {
		return Return{}, fmt.Errorf("return %d: %w", id, httpx.ErrNotFound)
	}
	return rt, nil
}

func (s *Store) updateReturn(rt Return) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.returns[rt.ID]; !ok {
		return fmt.Errorf("return %d: %w", rt.ID, httpx.ErrNotFound)
	}
	s.returns[rt.ID] = rt
	return nil
}

func (s *Store) listReturns() []Return {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Return, 0, len(s.returns))
	for _, rt := range s.returns {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
