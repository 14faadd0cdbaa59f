package masterdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// Service enforces master data business rules over a Repository.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListProducts returns all products.
func (s *Service) ListProducts() []Product { return s.repo.ListProducts() }

// GetProduct fetches one product.
func (s *Service) GetProduct(id int64) (Product, error) { return s.repo.GetProduct(id) }

// CreateProduct rejects duplicate SKUs and stores the product.
func (s *Service) CreateProduct(req CreateProductRequest) (Product, error) {
	sku := strings.TrimSpace(req.SKU)
	for _, existing := range s.repo.ListProducts() {
		if strings.EqualFold(existing.SKU, sku) {
			return Product{}, fmt.Errorf("sku %s: %w", sku, httpx.ErrDuplicate)
		}
	}
	return s.repo.CreateProduct(Product{
		SKU:          sku,
		Name:         req.Name,
		UOM:          req.UOM,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		MinStock:     req.MinStock,
		ReorderPoint: req.ReorderPoint,
		HasBatch:     req.HasBatch,
		HasSerial:    req.HasSerial,
	}), nil
}

// UpdateProduct applies partial changes.
func (s *Service) UpdateProduct(id int64, req UpdateProductRequest) (Product, error) {
	p, err := s.repo.GetProduct(id)
	if err != nil {
		return Product{}, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.UOM != nil {
		p.UOM = *req.UOM
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.ReorderPoint != nil {
		p.ReorderPoint = *req.ReorderPoint
	}
	if req.HasBatch != nil {
		p.HasBatch = *req.HasBatch
	}
	if req.HasSerial != nil {
		p.HasSerial = *req.HasSerial
	}
	if err := s.repo.UpdateProduct(id, p); err != nil {
		return Product{}, err
	}
	return s.repo.GetProduct(id)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(id int64) error { return s.repo.DeleteProduct(id) }

// ListWarehouses returns all warehouses.
func (s *Service) ListWarehouses() []Warehouse { return s.repo.ListWarehouses() }

// GetWarehouse fetches one warehouse.
func (s *Service) GetWarehouse(id int64) (Warehouse, error) { return s.repo.GetWarehouse(id) }

// CreateWarehouse rejects duplicate codes and stores the warehouse.
func (s *Service) CreateWarehouse(req CreateWarehouseRequest) (Warehouse, error) {
	code := strings.TrimSpace(req.Code)
	for _, existing := range s.repo.ListWarehouses() {
		if strings.EqualFold(existing.Code, code) {
			return Warehouse{}, fmt.Errorf("warehouse code %s: %w", code, httpx.ErrDuplicate)
		}
	}
	return s.repo.CreateWarehouse(Warehouse{Code: code, Name: req.Name, Address: req.Address}), nil
}

// DeleteWarehouse refuses to remove a warehouse that still has bins.
func (s *Service) DeleteWarehouse(id int64) error {
	if len(s.repo.ListBinsByWarehouse(id)) > 0 {
		return fmt.Errorf("warehouse %d still has bins: %w", id, httpx.ErrConflict)
	}
	return s.repo.DeleteWarehouse(id)
}

// ListBins returns bins, optionally scoped to one warehouse.
func (s *Service) ListBins(warehouseID int64) []Bin {
	if warehouseID > 0 {
		return s.repo.ListBinsByWarehouse(warehouseID)
	}
	return s.repo.ListBins()
}

// CreateBin requires the parent warehouse to exist.
func (s *Service) CreateBin(req CreateBinRequest) (Bin, error) {
	if _, err := s.repo.GetWarehouse(req.WarehouseID); err != nil {
		return Bin{}, err
	}
	for _, existing := range s.repo.ListBinsByWarehouse(req.WarehouseID) {
		if strings.EqualFold(existing.Code, req.Code) {
			return Bin{}, fmt.Errorf("bin code %s in warehouse %d: %w", req.Code, req.WarehouseID, httpx.ErrDuplicate)
		}
	}
	return s.repo.CreateBin(Bin{WarehouseID: req.WarehouseID, Code: req.Code, Zone: req.Zone}), nil
}

// DeleteBin removes a bin.
func (s *Service) DeleteBin(id int64) error { return s.repo.DeleteBin(id) }

// ProductExists reports whether the product id is known.
func (s *Service) ProductExists(id int64) bool {
	_, err := s.repo.GetProduct(id)
	return err == nil
}

// WarehouseExists reports whether the warehouse id is known.
func (s *Service) WarehouseExists(id int64) bool {
	_, err := s.repo.GetWarehouse(id)
	return err == nil
}

// BinInWarehouse reports whether the bin exists and belongs to the warehouse.
func (s *Service) BinInWarehouse(binID, warehouseID int64) bool {
	b, err := s.repo.GetBin(binID)
	if err != nil {
		return false
	}
	return b.WarehouseID == warehouseID
}

// IsNotFound reports whether err is the shared not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, httpx.ErrNotFound)
}
