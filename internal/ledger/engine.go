package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine owns the append-only stock ledger and is the single source of truth
// for on-hand balances. Every prefix sum of qty_in - qty_out per location key
// stays >= 0; Append refuses movements that would break that.
//
// Balances are recomputed from the full history on every call rather than
// cached per key. The history is the durable record, and recomputation keeps
// the invariant trivially re-verifiable over in-memory demo volumes.
type Engine struct {
	mu        sync.Mutex
	movements []StockMovement

	now func() time.Time
}

// NewEngine returns an empty ledger engine.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// CurrentBalance sums qty_in - qty_out over every movement matching the exact
// (product, warehouse, bin) triple. Unknown keys yield 0, not an error.
// Partial-key aggregation is the caller's job.
func (e *Engine) CurrentBalance(productID, warehouseID, binID int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balanceLocked(LocationKey{ProductID: productID, WarehouseID: warehouseID, BinID: binID})
}

func (e *Engine) balanceLocked(key LocationKey) int64 {
	var sum int64
	for _, m := range e.movements {
		if m.Key() == key {
			sum += m.QtyIn - m.QtyOut
		}
	}
	return sum
}

// Append validates and records a proposed movement. The prior balance is read,
// the movement classified and the new entry appended under one lock so two
// concurrent deductions can never both pass the gate on the same stale read.
//
// On rejection the ledger is untouched and the returned error is a
// *RejectedNegativeBalance wrapping ErrNegativeStock.
func (e *Engine) Append(req MovementRequest) (StockMovement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.appendLocked(req)
}

func (e *Engine) appendLocked(req MovementRequest) (StockMovement, error) {
	key := LocationKey{ProductID: req.ProductID, WarehouseID: req.WarehouseID, BinID: req.BinID}
	prior := e.balanceLocked(key)

	proposed := prior + req.Qty
	if req.Type.Direction() == Outbound {
		proposed = prior - req.Qty
	}
	if proposed < 0 {
		return StockMovement{}, &RejectedNegativeBalance{Key: key, RequestedQty: req.Qty, WouldBeBalance: proposed}
	}

	m := StockMovement{
		ID:            uuid.New(),
		ProductID:     req.ProductID,
		WarehouseID:   req.WarehouseID,
		BinID:         req.BinID,
		Type:          req.Type,
		UnitCost:      req.UnitCost,
		BalanceAfter:  proposed,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    req.ExpiryDate,
		CreatedAt:     e.now().UTC(),
	}
	if req.Type.Direction() == Inbound {
		m.QtyIn = req.Qty
	} else {
		m.QtyOut = req.Qty
	}
	e.movements = append(e.movements, m)
	return m, nil
}

// Seed applies requests in order and drops violating ones silently, so fixture
// data may include an intentionally blocked trailing entry. Interactive
// callers must use Append, which always reports rejections.
func (e *Engine) Seed(reqs []MovementRequest) []StockMovement {
	e.mu.Lock()
	defer e.mu.Unlock()
	accepted := make([]StockMovement, 0, len(reqs))
	for _, req := range reqs {
		m, err := e.appendLocked(req)
		if err != nil {
			continue
		}
		accepted = append(accepted, m)
	}
	return accepted
}

// Movements returns a copy of the ledger in insertion order.
func (e *Engine) Movements() []StockMovement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]StockMovement, len(e.movements))
	copy(out, e.movements)
	return out
}

// Len reports the number of recorded movements.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.movements)
}

// LocationSummary is the on-hand quantity for one location key.
type LocationSummary struct {
	ProductID   int64 `json:"product_id"`
	WarehouseID int64 `json:"warehouse_id"`
	BinID       int64 `json:"bin_id"`
	OnHand      int64 `json:"on_hand"`
}

// Summary aggregates on-hand balances per location key, keeping only positive
// balances, largest first. Ties order by product, warehouse then bin so the
// output is deterministic.
func (e *Engine) Summary() []LocationSummary {
	e.mu.Lock()
	totals := make(map[LocationKey]int64)
	for _, m := range e.movements {
		totals[m.Key()] += m.QtyIn - m.QtyOut
	}
	e.mu.Unlock()

	out := make([]LocationSummary, 0, len(totals))
	for key, qty := range totals {
		if qty <= 0 {
			continue
		}
		out = append(out, LocationSummary{
			ProductID:   key.ProductID,
			WarehouseID: key.WarehouseID,
			BinID:       key.BinID,
			OnHand:      qty,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OnHand != out[j].OnHand {
			return out[i].OnHand > out[j].OnHand
		}
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		if out[i].WarehouseID != out[j].WarehouseID {
			return out[i].WarehouseID < out[j].WarehouseID
		}
		return out[i].BinID < out[j].BinID
	})
	return out
}
