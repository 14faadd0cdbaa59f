package ledger

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type allowAllRefs struct{}

func (allowAllRefs) ProductExists(int64) bool        { return true }
func (allowAllRefs) WarehouseExists(int64) bool      { return true }
func (allowAllRefs) BinInWarehouse(int64, int64) bool { return true }

type denyAllRefs struct{}

func (denyAllRefs) ProductExists(int64) bool        { return false }
func (denyAllRefs) WarehouseExists(int64) bool      { return false }
func (denyAllRefs) BinInWarehouse(int64, int64) bool { return false }

func newTestServer(t *testing.T, engine *Engine, refs ReferenceData) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, engine, refs, nil, 5)
	r := chi.NewRouter()
	h.MountRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestCreateMovementRecordsEntry(t *testing.T) {
	engine := NewEngine()
	srv := newTestServer(t, engine, allowAllRefs{})

	resp := postJSON(t, srv.URL+"/movements",
		`{"product_id":1,"warehouse_id":1,"bin_id":1,"transaction_type":"receipt_in","qty":25,"unit_cost":1200}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var m StockMovement
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	require.Equal(t, int64(25), m.QtyIn)
	require.Equal(t, int64(25), m.BalanceAfter)
	require.Equal(t, TypeReceiptIn, m.Type)
	require.Equal(t, int64(25), engine.CurrentBalance(1, 1, 1))
}

func TestCreateMovementRejectionBody(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Append(MovementRequest{ProductID: 4, WarehouseID: 1, BinID: 2, Type: TypeReceiptIn, Qty: 20})
	require.NoError(t, err)
	srv := newTestServer(t, engine, allowAllRefs{})

	resp := postJSON(t, srv.URL+"/movements",
		`{"product_id":4,"warehouse_id":1,"bin_id":2,"transaction_type":"issue_out","qty":25}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Title          string `json:"title"`
		Status         int    `json:"status"`
		ProductID      int64  `json:"product_id"`
		WarehouseID    int64  `json:"warehouse_id"`
		BinID          int64  `json:"bin_id"`
		RequestedQty   int64  `json:"requested_qty"`
		WouldBeBalance int64  `json:"would_be_balance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Insufficient Stock", body.Title)
	require.Equal(t, int64(4), body.ProductID)
	require.Equal(t, int64(1), body.WarehouseID)
	require.Equal(t, int64(2), body.BinID)
	require.Equal(t, int64(25), body.RequestedQty)
	require.Equal(t, int64(-5), body.WouldBeBalance)

	// The ledger is untouched.
	require.Equal(t, 1, engine.Len())
}

func TestCreateMovementUnknownReferences(t *testing.T) {
	srv := newTestServer(t, NewEngine(), denyAllRefs{})

	resp := postJSON(t, srv.URL+"/movements",
		`{"product_id":99,"warehouse_id":1,"bin_id":1,"transaction_type":"receipt_in","qty":5}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateMovementValidation(t *testing.T) {
	srv := newTestServer(t, NewEngine(), allowAllRefs{})

	cases := []string{
		`{`,
		`{"product_id":1,"warehouse_id":1,"bin_id":1,"transaction_type":"receipt_in","qty":-5}`,
		`{"product_id":0,"warehouse_id":1,"bin_id":1,"transaction_type":"receipt_in","qty":5}`,
		`{"product_id":1,"warehouse_id":1,"bin_id":1,"qty":5}`,
		`{"product_id":1,"warehouse_id":1,"bin_id":1,"transaction_type":"receipt_in","qty":5,"expiry_date":"31-12-2025"}`,
	}
	for _, body := range cases {
		resp := postJSON(t, srv.URL+"/movements", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
		resp.Body.Close()
	}
}

func TestGetBalance(t *testing.T) {
	engine := NewEngine()
	SeedDemo(engine)
	srv := newTestServer(t, engine, allowAllRefs{})

	resp, err := http.Get(srv.URL + "/balance?product_id=1&warehouse_id=1&bin_id=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Balance int64 `json:"balance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(17), body.Balance)
}

func TestGetBalanceUnknownKeyIsZero(t *testing.T) {
	srv := newTestServer(t, NewEngine(), allowAllRefs{})

	resp, err := http.Get(srv.URL + "/balance?product_id=9&warehouse_id=9&bin_id=9")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Balance int64 `json:"balance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(0), body.Balance)
}

func TestGetBalanceRequiresFullKey(t *testing.T) {
	srv := newTestServer(t, NewEngine(), allowAllRefs{})

	resp, err := http.Get(srv.URL + "/balance?product_id=1&warehouse_id=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSummaryReportsLowStock(t *testing.T) {
	engine := NewEngine()
	SeedDemo(engine)
	srv := newTestServer(t, engine, allowAllRefs{})

	resp, err := http.Get(srv.URL + "/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Summary  []LocationSummary `json:"summary"`
		LowStock []LocationSummary `json:"low_stock"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Summary, 7)

	// Product 5 sits at 2 on hand, at or below the threshold of 5.
	require.Len(t, body.LowStock, 1)
	require.Equal(t, int64(5), body.LowStock[0].ProductID)
}

func TestListMovementsNewestFirst(t *testing.T) {
	engine := NewEngine()
	SeedDemo(engine)
	srv := newTestServer(t, engine, allowAllRefs{})

	resp, err := http.Get(srv.URL + "/movements?limit=3")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var movements []StockMovement
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&movements))
	require.Len(t, movements, 3)
	require.Equal(t, int64(4), movements[0].ProductID)
}

func TestGetValuation(t *testing.T) {
	engine := NewEngine()
	SeedDemo(engine)
	srv := newTestServer(t, engine, allowAllRefs{})

	resp, err := http.Get(srv.URL + "/valuation")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report ValuationReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Len(t, report.Lines, 7)
	require.False(t, report.Total.IsZero())
}

func TestExportCSVEndpoint(t *testing.T) {
	engine := NewEngine()
	SeedDemo(engine)
	srv := newTestServer(t, engine, allowAllRefs{})

	resp, err := http.Get(srv.URL + "/export.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "id,product_id"))
}
