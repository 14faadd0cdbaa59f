package masterdata

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// memoryRepository keeps master data in process memory. All access goes
// through the RWMutex; callers receive copies, never internal references.
type memoryRepository struct {
	mu sync.RWMutex

	products   map[int64]Product
	warehouses map[int64]Warehouse
	bins       map[int64]Bin

	nextProductID   int64
	nextWarehouseID int64
	nextBinID       int64
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		products:   make(map[int64]Product),
		warehouses: make(map[int64]Warehouse),
		bins:       make(map[int64]Bin),
	}
}

func (r *memoryRepository) ListProducts() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memoryRepository) GetProduct(id int64) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	return p, nil
}

func (r *memoryRepository) CreateProduct(p Product) Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		r.nextProductID++
		p.ID = r.nextProductID
	} else if p.ID > r.nextProductID {
		r.nextProductID = p.ID
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.products[p.ID] = p
	return p
}

func (r *memoryRepository) UpdateProduct(id int64, p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	p.ID = id
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return nil
}

func (r *memoryRepository) DeleteProduct(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

func (r *memoryRepository) ListWarehouses() []Warehouse {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memoryRepository) GetWarehouse(id int64) (Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.warehouses[id]
	if !ok {
		return Warehouse{}, fmt.Errorf("warehouse %d: %w", id, httpx.ErrNotFound)
	}
	return w, nil
}

func (r *memoryRepository) CreateWarehouse(w Warehouse) Warehouse {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == 0 {
		r.nextWarehouseID++
		w.ID = r.nextWarehouseID
	} else if w.ID > r.nextWarehouseID {
		r.nextWarehouseID = w.ID
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	r.warehouses[w.ID] = w
	return w
}

func (r *memoryRepository) DeleteWarehouse(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[id]; !ok {
		return fmt.Errorf("warehouse %d: %w", id, httpx.ErrNotFound)
	}
	delete(r.warehouses, id)
	return nil
}

func (r *memoryRepository) ListBins() []Bin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Bin, 0, len(r.bins))
	for _, b := range r.bins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memoryRepository) ListBinsByWarehouse(warehouseID int64) []Bin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Bin, 0)
	for _, b := range r.bins {
		if b.WarehouseID == warehouseID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memoryRepository) GetBin(id int64) (Bin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bins[id]
	if !ok {
		return Bin{}, fmt.Errorf("bin %d: %w", id, httpx.ErrNotFound)
	}
	return b, nil
}

func (r *memoryRepository) CreateBin(b Bin) Bin {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == 0 {
		r.nextBinID++
		b.ID = r.nextBinID
	} else if b.ID > r.nextBinID {
		r.nextBinID = b.ID
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.bins[b.ID] = b
	return b
}

func (r *memoryRepository) DeleteBin(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bins[id]; !ok {
		return fmt.Errorf("bin %d: %w", id, httpx.ErrNotFound)
	}
	delete(r.bins, id)
	return nil
}
