package sales

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/ledger"
	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
	"github.com/meridian-ims/meridian-ims/internal/shared"
)

// Handler wires HTTP endpoints for sales orders, shipments and returns.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the sales handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.listOrders)
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Post("/orders/{id}/cancel", h.cancelOrder)

	r.Get("/shipments", h.listShipments)
	r.Post("/shipments", h.createShipment)
	r.Get("/shipments/{id}", h.getShipment)
	r.Patch("/shipments/{id}/status", h.updateShipmentStatus)

	r.Get("/returns", h.listReturns)
	r.Post("/returns", h.createReturn)
	r.Get("/returns/{id}", h.getReturn)
	r.Patch("/returns/{id}/status", h.updateReturnStatus)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func queryPagination(r *http.Request, total int) shared.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return shared.NewPagination(page, perPage, total)
}

type orderListResponse struct {
	Orders     []SalesOrder      `json:"orders"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.service.ListOrders()
	p := queryPagination(r, len(orders))
	start, end := p.Slice(len(orders))
	httpx.JSON(w, http.StatusOK, orderListResponse{Orders: orders[start:end], Pagination: p})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	o := h.service.CreateOrder(req)
	h.logger.Info("order created",
		slog.String("order_no", o.OrderNo),
		slog.Int64("customer_id", o.CustomerID),
		slog.Float64("total", o.Total))
	httpx.JSON(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	o, err := h.service.GetOrder(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	o, err := h.service.CancelOrder(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("order cancelled", slog.String("order_no", o.OrderNo))
	httpx.JSON(w, http.StatusOK, o)
}

type shipmentListResponse struct {
	Shipments  []Shipment        `json:"shipments"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	shipments := h.service.ListShipments()
	p := queryPagination(r, len(shipments))
	start, end := p.Slice(len(shipments))
	httpx.JSON(w, http.StatusOK, shipmentListResponse{Shipments: shipments[start:end], Pagination: p})
}

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var req CreateShipmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	sh, err := h.service.CreateShipment(req)
	if err != nil {
		var rejected *ledger.RejectedNegativeBalance
		if errors.As(err, &rejected) {
			httpx.Problem(w, http.StatusConflict, "Insufficient Stock", rejected.Error())
			return
		}
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("shipment created",
		slog.String("shipment_no", sh.ShipmentNo),
		slog.String("order_no", sh.OrderNo))
	httpx.JSON(w, http.StatusCreated, sh)
}

func (h *Handler) getShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	sh, err := h.service.GetShipment(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sh)
}

func (h *Handler) updateShipmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var req UpdateShipmentStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	sh, err := h.service.UpdateShipmentStatus(id, req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("shipment status updated",
		slog.String("shipment_no", sh.ShipmentNo),
		slog.String("status", string(sh.Status)))
	httpx.JSON(w, http.StatusOK, sh)
}

type returnListResponse struct {
	Returns    []Return          `json:"returns"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) listReturns(w http.ResponseWriter, r *http.Request) {
	returns := h.service.ListReturns()
	p := queryPagination(r, len(returns))
	start, end := p.Slice(len(returns))
	httpx.JSON(w, http.StatusOK, returnListResponse{Returns: returns[start:end], Pagination: p})
}

func (h *Handler) createReturn(w http.ResponseWriter, r *http.Request) {
	var req CreateReturnRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	rt, err := h.service.CreateReturn(req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("return created",
		slog.String("return_no", rt.ReturnNo),
		slog.String("order_no", rt.OrderNo))
	httpx.JSON(w, http.StatusCreated, rt)
}

func (h *Handler) getReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	rt, err := h.service.GetReturn(id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rt)
}

func (h *Handler) updateReturnStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var req UpdateReturnStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	rt, err := h.service.UpdateReturnStatus(id, req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("return status updated",
		slog.String("return_no", rt.ReturnNo),
		slog.String("status", string(rt.Status)))
	httpx.JSON(w, http.StatusOK, rt)
}
