package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ValuationLine values the stock remaining at one location under FIFO
// costing: the oldest receipt layers are consumed first, so what remains is
// valued at the newest layer costs.
type ValuationLine struct {
	ProductID   int64           `json:"product_id"`
	WarehouseID int64           `json:"warehouse_id"`
	BinID       int64           `json:"bin_id"`
	OnHand      int64           `json:"on_hand"`
	Value       decimal.Decimal `json:"value"`
}

// ValuationReport is the FIFO valuation across all locations with stock.
type ValuationReport struct {
	Lines []ValuationLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type costLayer struct {
	qty  int64
	cost decimal.Decimal
}

// Valuation replays the ledger per location, maintaining FIFO cost layers,
// and values the remaining quantity. Locations at zero or below are omitted.
func (e *Engine) Valuation() ValuationReport {
	movements := e.Movements()

	layers := make(map[LocationKey][]costLayer)
	for _, m := range movements {
		key := m.Key()
		if m.QtyIn > 0 {
			layers[key] = append(layers[key], costLayer{qty: m.QtyIn, cost: decimal.NewFromFloat(m.UnitCost)})
			continue
		}
		remaining := m.QtyOut
		stack := layers[key]
		for remaining > 0 && len(stack) > 0 {
			if stack[0].qty > remaining {
				stack[0].qty -= remaining
				remaining = 0
				break
			}
			remaining -= stack[0].qty
			stack = stack[1:]
		}
		layers[key] = stack
	}

	report := ValuationReport{Total: decimal.Zero}
	for key, stack := range layers {
		var onHand int64
		value := decimal.Zero
		for _, layer := range stack {
			onHand += layer.qty
			value = value.Add(layer.cost.Mul(decimal.NewFromInt(layer.qty)))
		}
		if onHand <= 0 {
			continue
		}
		report.Lines = append(report.Lines, ValuationLine{
			ProductID:   key.ProductID,
			WarehouseID: key.WarehouseID,
			BinID:       key.BinID,
			OnHand:      onHand,
			Value:       value,
		})
		report.Total = report.Total.Add(value)
	}
	sort.Slice(report.Lines, func(i, j int) bool {
		a, b := report.Lines[i], report.Lines[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		if a.WarehouseID != b.WarehouseID {
			return a.WarehouseID < b.WarehouseID
		}
		return a.BinID < b.BinID
	})
	return report
}
