package procurement

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
	"github.com/meridian-ims/meridian-ims/internal/shared"
)

// Handler wires HTTP endpoints for purchasing.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the procurement handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers procurement routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.listOrders)
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Post("/orders/{id}/cancel", h.cancelOrder)

	r.Get("/receipts", h.listReceipts)
	r.Post("/receipts", h.receiveGRN)
	r.Get("/receipts/{id}", h.getReceipt)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

type orderListResponse struct {
	Orders     []PurchaseOrder   `json:"orders"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.service.ListOrders()
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	p := shared.NewPagination(page, perPage, len(orders))
	start, end := p.Slice(len(orders))
	httpx.JSON(w, http.StatusOK, orderListResponse{Orders: orders[start:end], Pagination: p})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreatePORequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	po := h.service.CreateOrder(req)
	h.logger.Info("purchase order created",
		slog.String("po_no", po.PONo),
		slog.Int64("supplier_id", po.SupplierID),
		slog.Float64("total", po.Total))
	httpx.JSON(w, http.StatusCreated, po)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	po, err := h.service.GetOrder(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, po)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	po, err := h.service.CancelOrder(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("purchase order cancelled", slog.String("po_no", po.PONo))
	httpx.JSON(w, http.StatusOK, po)
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ListReceipts())
}

func (h *Handler) receiveGRN(w http.ResponseWriter, r *http.Request) {
	var req ReceiveGRNRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	g, err := h.service.ReceiveGRN(req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("goods receipt booked",
		slog.String("grn_no", g.GRNNo),
		slog.String("po_no", g.PONo),
		slog.Int("lines", len(g.Items)))
	httpx.JSON(w, http.StatusCreated, g)
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	g, err := h.service.GetReceipt(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, g)
}
