package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// ReferenceData answers existence questions about master data. The engine
// itself stays permissive; the HTTP boundary is where referential integrity
// is enforced.
type ReferenceData interface {
	ProductExists(id int64) bool
	WarehouseExists(id int64) bool
	BinInWarehouse(binID, warehouseID int64) bool
}

// MetricsRecorder receives ledger observability signals.
type MetricsRecorder interface {
	CountMovement(outcome string)
	SetLowStockLocations(n int)
}

// Handler wires HTTP endpoints for the stock ledger.
type Handler struct {
	logger            *slog.Logger
	engine            *Engine
	refs              ReferenceData
	metrics           MetricsRecorder
	validate          *validator.Validate
	lowStockThreshold int64
	valuationGroup    singleflight.Group
}

// NewHandler constructs the ledger handler. refs and metrics may be nil.
func NewHandler(logger *slog.Logger, engine *Engine, refs ReferenceData, metrics MetricsRecorder, lowStockThreshold int64) *Handler {
	return &Handler{
		logger:            logger,
		engine:            engine,
		refs:              refs,
		metrics:           metrics,
		validate:          validator.New(),
		lowStockThreshold: lowStockThreshold,
	}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/movements", h.listMovements)
	r.Post("/movements", h.createMovement)
	r.Get("/balance", h.getBalance)
	r.Get("/summary", h.getSummary)
	r.Get("/valuation", h.getValuation)
	r.Get("/export.csv", h.exportCSV)
}

type createMovementRequest struct {
	ProductID       int64   `json:"product_id" validate:"required,gt=0"`
	WarehouseID     int64   `json:"warehouse_id" validate:"required,gt=0"`
	BinID           int64   `json:"bin_id" validate:"required,gt=0"`
	TransactionType string  `json:"transaction_type" validate:"required,max=40"`
	Qty             int64   `json:"qty" validate:"required,gt=0"`
	UnitCost        float64 `json:"unit_cost" validate:"gte=0"`
	ReferenceType   string  `json:"reference_type" validate:"omitempty,max=20"`
	ReferenceID     string  `json:"reference_id" validate:"omitempty,max=40"`
	BatchNumber     string  `json:"batch_no" validate:"omitempty,max=40"`
	ExpiryDate      string  `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

type rejectionResponse struct {
	httpx.ProblemDetail
	ProductID      int64 `json:"product_id"`
	WarehouseID    int64 `json:"warehouse_id"`
	BinID          int64 `json:"bin_id"`
	RequestedQty   int64 `json:"requested_qty"`
	WouldBeBalance int64 `json:"would_be_balance"`
}

func (h *Handler) createMovement(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if h.refs != nil {
		if !h.refs.ProductExists(req.ProductID) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unknown Product", "product does not exist")
			return
		}
		if !h.refs.WarehouseExists(req.WarehouseID) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unknown Warehouse", "warehouse does not exist")
			return
		}
		if !h.refs.BinInWarehouse(req.BinID, req.WarehouseID) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Bin Mismatch", "bin does not belong to the warehouse")
			return
		}
	}

	movement := MovementRequest{
		ProductID:     req.ProductID,
		WarehouseID:   req.WarehouseID,
		BinID:         req.BinID,
		Type:          TransactionType(req.TransactionType),
		Qty:           req.Qty,
		UnitCost:      req.UnitCost,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		BatchNumber:   req.BatchNumber,
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid expiry_date")
			return
		}
		movement.ExpiryDate = &expiry
	}

	recorded, err := h.engine.Append(movement)
	if err != nil {
		var rejected *RejectedNegativeBalance
		if errors.As(err, &rejected) {
			if h.metrics != nil {
				h.metrics.CountMovement("rejected")
			}
			h.logger.Warn("movement rejected",
				slog.Int64("product_id", rejected.Key.ProductID),
				slog.Int64("warehouse_id", rejected.Key.WarehouseID),
				slog.Int64("bin_id", rejected.Key.BinID),
				slog.Int64("requested_qty", rejected.RequestedQty),
				slog.Int64("would_be_balance", rejected.WouldBeBalance))
			httpx.JSON(w, http.StatusConflict, rejectionResponse{
				ProblemDetail: httpx.ProblemDetail{
					Title:  "Insufficient Stock",
					Status: http.StatusConflict,
					Detail: rejected.Error(),
				},
				ProductID:      rejected.Key.ProductID,
				WarehouseID:    rejected.Key.WarehouseID,
				BinID:          rejected.Key.BinID,
				RequestedQty:   rejected.RequestedQty,
				WouldBeBalance: rejected.WouldBeBalance,
			})
			return
		}
		h.logger.Error("append movement", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if h.metrics != nil {
		h.metrics.CountMovement("accepted")
	}
	h.logger.Info("movement recorded",
		slog.String("id", recorded.ID.String()),
		slog.String("type", string(recorded.Type)),
		slog.Int64("balance_after", recorded.BalanceAfter))
	httpx.JSON(w, http.StatusCreated, recorded)
}

func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid limit")
			return
		}
		limit = n
	}
	movements := h.engine.Movements()
	// Most recent first, as the transactions page shows them.
	if len(movements) > limit {
		movements = movements[len(movements)-limit:]
	}
	for i, j := 0, len(movements)-1; i < j; i, j = i+1, j-1 {
		movements[i], movements[j] = movements[j], movements[i]
	}
	httpx.JSON(w, http.StatusOK, movements)
}

type balanceResponse struct {
	ProductID   int64 `json:"product_id"`
	WarehouseID int64 `json:"warehouse_id"`
	BinID       int64 `json:"bin_id"`
	Balance     int64 `json:"balance"`
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids := make(map[string]int64, 3)
	for _, name := range []string{"product_id", "warehouse_id", "bin_id"} {
		id, err := strconv.ParseInt(q.Get(name), 10, 64)
		if err != nil || id <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid or missing "+name)
			return
		}
		ids[name] = id
	}
	balance := h.engine.CurrentBalance(ids["product_id"], ids["warehouse_id"], ids["bin_id"])
	httpx.JSON(w, http.StatusOK, balanceResponse{
		ProductID:   ids["product_id"],
		WarehouseID: ids["warehouse_id"],
		BinID:       ids["bin_id"],
		Balance:     balance,
	})
}

type summaryResponse struct {
	Summary  []LocationSummary `json:"summary"`
	LowStock []LocationSummary `json:"low_stock"`
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.engine.Summary()
	low := make([]LocationSummary, 0)
	for _, s := range summary {
		if s.OnHand <= h.lowStockThreshold {
			low = append(low, s)
			h.logger.Warn("low stock",
				slog.Int64("product_id", s.ProductID),
				slog.Int64("warehouse_id", s.WarehouseID),
				slog.Int64("bin_id", s.BinID),
				slog.Int64("on_hand", s.OnHand))
		}
	}
	if h.metrics != nil {
		h.metrics.SetLowStockLocations(len(low))
	}
	httpx.JSON(w, http.StatusOK, summaryResponse{Summary: summary, LowStock: low})
}

func (h *Handler) getValuation(w http.ResponseWriter, r *http.Request) {
	// Collapse concurrent recomputations; the replay is a full ledger scan.
	report, err, _ := h.valuationGroup.Do("valuation", func() (any, error) {
		return h.engine.Valuation(), nil
	})
	if err != nil {
		h.logger.Error("valuation", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="stock_ledger.csv"`)
	if err := WriteCSV(w, h.engine.Movements()); err != nil {
		h.logger.Error("export ledger csv", slog.Any("error", err))
	}
}
