package procurement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-ims/meridian-ims/internal/ledger"
)

func newTestService() (*Service, *ledger.Engine) {
	engine := ledger.NewEngine()
	return NewService(NewStore(), engine), engine
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc, _ := newTestService()

	po := svc.CreateOrder(CreatePORequest{
		SupplierID:   3,
		SupplierName: "Global Supplies",
		Items: []CreatePOItemRequest{
			{ProductID: 1, ProductName: "Widget", Qty: 10, UnitCost: 100},
			{ProductID: 2, ProductName: "Gadget", Qty: 5, UnitCost: 40},
		},
	})

	require.Equal(t, "PO-1001", po.PONo)
	require.Equal(t, POStatusOpen, po.Status)
	require.InDelta(t, 1200.0, po.Subtotal, 0.001)
	require.InDelta(t, 120.0, po.Tax, 0.001)
	require.InDelta(t, 1320.0, po.Total, 0.001)
}

func TestReceiveGRNFullOrder(t *testing.T) {
	svc, engine := newTestService()

	po := svc.CreateOrder(CreatePORequest{
		SupplierID:   3,
		SupplierName: "Global Supplies",
		Items: []CreatePOItemRequest{
			{ProductID: 1, ProductName: "Widget", Qty: 10, UnitCost: 100},
			{ProductID: 2, ProductName: "Gadget", Qty: 5, UnitCost: 40},
		},
	})

	g, err := svc.ReceiveGRN(ReceiveGRNRequest{POID: po.ID, WarehouseID: 1, BinID: 1})
	require.NoError(t, err)
	require.Equal(t, "GRN-1001", g.GRNNo)
	require.Len(t, g.Items, 2)

	require.Equal(t, int64(10), engine.CurrentBalance(1, 1, 1))
	require.Equal(t, int64(5), engine.CurrentBalance(2, 1, 1))

	updated, err := svc.GetOrder(po.ID)
	require.NoError(t, err)
	require.Equal(t, POStatusReceived, updated.Status)

	movements := engine.Movements()
	require.Len(t, movements, 2)
	require.Equal(t, "GRN", movements[0].ReferenceType)
	require.Equal(t, g.GRNNo, movements[0].ReferenceID)
	require.Equal(t, ledger.TypeReceiptIn, movements[0].Type)
}

func TestReceiveGRNPartialThenRemainder(t *testing.T) {
	svc, engine := newTestService()

	po := svc.CreateOrder(CreatePORequest{
		SupplierID:   3,
		SupplierName: "Global Supplies",
		Items:        []CreatePOItemRequest{{ProductID: 1, ProductName: "Widget", Qty: 10, UnitCost: 100}},
	})

	_, err := svc.ReceiveGRN(ReceiveGRNRequest{
		POID:        po.ID,
		WarehouseID: 1,
		BinID:       1,
		Items:       []ReceiveGRNItemRequest{{ProductID: 1, Qty: 4, BatchNumber: "B-77"}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), engine.CurrentBalance(1, 1, 1))

	updated, err := svc.GetOrder(po.ID)
	require.NoError(t, err)
	require.Equal(t, POStatusPartial, updated.Status)
	require.Equal(t, int64(4), updated.Items[0].ReceivedQty)

	// Receiving the remainder closes the order.
	_, err = svc.ReceiveGRN(ReceiveGRNRequest{POID: po.ID, WarehouseID: 1, BinID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(10), engine.CurrentBalance(1, 1, 1))

	updated, err = svc.GetOrder(po.ID)
	require.NoError(t, err)
	require.Equal(t, POStatusReceived, updated.Status)
}

func TestReceiveGRNRejectsOverReceipt(t *testing.T) {
	svc, engine := newTestService()

	po := svc.CreateOrder(CreatePORequest{
		SupplierID:   3,
		SupplierName: "Global Supplies",
		Items:        []CreatePOItemRequest{{ProductID: 1, ProductName: "Widget", Qty: 10, UnitCost: 100}},
	})

	_, err := svc.ReceiveGRN(ReceiveGRNRequest{
		POID:        po.ID,
		WarehouseID: 1,
		BinID:       1,
		Items:       []ReceiveGRNItemRequest{{ProductID: 1, Qty: 12}},
	})
	require.Error(t, err)
	require.Equal(t, int64(0), engine.CurrentBalance(1, 1, 1))
}

func TestReceiveGRNRejectsUnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	po := svc.CreateOrder(CreatePORequest{
		SupplierID:   3,
		SupplierName: "Global Supplies",
		Items:        []CreatePOItemRequest{{ProductID: 1, ProductName: "Widget", Qty: 10, UnitCost: 100}},
	})

	_, err := svc.ReceiveGRN(ReceiveGRNRequest{
		POID:        po.ID,
		WarehouseID: 1,
		BinID:       1,
		Items:       []ReceiveGRNItemRequest{{ProductID: 99, Qty: 1}},
	})
	require.Error(t, err)
}

func TestReceiveGRNRefusesCancelledOrder(t *testing.T) {
	svc, _ := newTestService()

	po := svc.CreateOrder(CreatePORequest{
		SupplierID:   3,
		SupplierName: "Global Supplies",
		Items:        []CreatePOItemRequest{{ProductID: 1, ProductName: "Widget", Qty: 10, UnitCost: 100}},
	})
	_, err := svc.CancelOrder(po.ID)
	require.NoError(t, err)

	_, err = svc.ReceiveGRN(ReceiveGRNRequest{POID: po.ID, WarehouseID: 1, BinID: 1})
	require.Error(t, err)
}

func TestCancelOrderRefusesReceived(t *testing.T) {
	svc, _ := newTestService()

	po := svc.CreateOrder(CreatePORequest{
		SupplierID:   3,
		SupplierName: "Global Supplies",
		Items:        []CreatePOItemRequest{{ProductID: 1, ProductName: "Widget", Qty: 10, UnitCost: 100}},
	})
	_, err := svc.ReceiveGRN(ReceiveGRNRequest{POID: po.ID, WarehouseID: 1, BinID: 1})
	require.NoError(t, err)

	_, err = svc.CancelOrder(po.ID)
	require.Error(t, err)
}
