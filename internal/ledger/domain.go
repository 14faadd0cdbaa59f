package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Direction classifies a movement as adding to or removing from stock.
type Direction int

const (
	// Inbound increases the on-hand balance at a location.
	Inbound Direction = iota
	// Outbound decreases the on-hand balance at a location.
	Outbound
)

// TransactionType labels the business reason behind a movement. The known
// types carry an explicit direction; the tag itself is display text.
type TransactionType string

const (
	TypeReceiptIn     TransactionType = "receipt_in"
	TypeIssueOut      TransactionType = "issue_out"
	TypeTransferIn    TransactionType = "transfer_in"
	TypeTransferOut   TransactionType = "transfer_out"
	TypeAdjustmentIn  TransactionType = "adjustment_in"
	TypeAdjustmentOut TransactionType = "adjustment_out"
	TypeReturnIn      TransactionType = "return_in"
)

var directions = map[TransactionType]Direction{
	TypeReceiptIn:     Inbound,
	TypeTransferIn:    Inbound,
	TypeAdjustmentIn:  Inbound,
	TypeReturnIn:      Inbound,
	TypeIssueOut:      Outbound,
	TypeTransferOut:   Outbound,
	TypeAdjustmentOut: Outbound,
}

// Direction resolves the movement direction for the type. Known types use the
// closed table above. Legacy free-form tags fall back to substring matching,
// with "in" taking precedence so the result agrees with the historic balance
// formula.
func (t TransactionType) Direction() Direction {
	if d, ok := directions[t]; ok {
		return d
	}
	if strings.Contains(string(t), "in") {
		return Inbound
	}
	return Outbound
}

// LocationKey identifies the exact bin a balance is tracked for. A bin belongs
// to exactly one warehouse; the ledger treats the triple as opaque.
type LocationKey struct {
	ProductID   int64 `json:"product_id"`
	WarehouseID int64 `json:"warehouse_id"`
	BinID       int64 `json:"bin_id"`
}

// StockMovement is a single immutable ledger entry. Corrections are posted as
// offsetting movements, never as edits.
type StockMovement struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     int64           `json:"product_id"`
	WarehouseID   int64           `json:"warehouse_id"`
	BinID         int64           `json:"bin_id"`
	Type          TransactionType `json:"transaction_type"`
	QtyIn         int64           `json:"qty_in"`
	QtyOut        int64           `json:"qty_out"`
	BalanceAfter  int64           `json:"balance_after"`
	UnitCost      float64         `json:"unit_cost"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	BatchNumber   string          `json:"batch_no,omitempty"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Key returns the location key the movement applies to.
func (m StockMovement) Key() LocationKey {
	return LocationKey{ProductID: m.ProductID, WarehouseID: m.WarehouseID, BinID: m.BinID}
}

// MovementRequest is a proposed movement. ID, BalanceAfter and CreatedAt are
// assigned by the engine on acceptance.
type MovementRequest struct {
	ProductID     int64
	WarehouseID   int64
	BinID         int64
	Type          TransactionType
	Qty           int64
	UnitCost      float64
	ReferenceType string
	ReferenceID   string
	BatchNumber   string
	ExpiryDate    *time.Time
}

// ErrNegativeStock triggered when a movement would drive a balance below zero.
var ErrNegativeStock = errors.New("ledger: negative stock not allowed")

// RejectedNegativeBalance reports a refused movement. The ledger is left
// unchanged; the caller decides how to surface the failure.
type RejectedNegativeBalance struct {
	Key            LocationKey
	RequestedQty   int64
	WouldBeBalance int64
}

func (e *RejectedNegativeBalance) Error() string {
	return fmt.Sprintf("ledger: movement of %d for product %d at warehouse %d bin %d would leave balance %d",
		e.RequestedQty, e.Key.ProductID, e.Key.WarehouseID, e.Key.BinID, e.WouldBeBalance)
}

func (e *RejectedNegativeBalance) Unwrap() error { return ErrNegativeStock }
