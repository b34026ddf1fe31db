package economy

import (
	"errors"
	"fmt"

	"github.com/talgya/tradewinds/internal/game"
	"github.com/talgya/tradewinds/internal/trade"
)

// LinearModel is the trade-reactive pricing mode: a fixed step applied
// immediately after a trade, independent of the curve engine. Only the
// sign of the quantity delta matters, never its magnitude.
type LinearModel struct {
	BaseStep int `json:"base_step"`
	MinPrice int `json:"min_price"`
	MaxPrice int `json:"max_price"`
}

// DefaultLinearModel steps by 1 inside [0, 100].
func DefaultLinearModel() LinearModel {
	return LinearModel{BaseStep: 1, MinPrice: 0, MaxPrice: 100}
}

func (m LinearModel) withDefaults() LinearModel {
	if m.BaseStep == 0 {
		m.BaseStep = 1
	}
	if m.MaxPrice == 0 {
		m.MaxPrice = 100
	}
	return m
}

// Apply adjusts a price for a quantity delta: goods leaving a town
// (negative delta) raise its price by the step, goods arriving lower it.
// A zero delta is a no-op. The result is clamped to the model bounds.
func (m LinearModel) Apply(price, quantityDelta int) int {
	m = m.withDefaults()
	switch {
	case quantityDelta == 0:
		return price
	case quantityDelta < 0:
		price += m.BaseStep
	default:
		price -= m.BaseStep
	}
	return clampPrice(price, m.MinPrice, m.MaxPrice)
}

// ErrTownNotFound means a trade's town id no longer resolves against the
// state being repriced, i.e. the caller handed a stale reference.
var ErrTownNotFound = errors.New("post-trade pricing: town not found")

// ApplyPostTradePricing derives each side's quantity delta from the
// trade's side (sell: the from-town loses the quantity, the to-town gains
// it; buy inverted) and applies the linear model to both towns
// independently.
func ApplyPostTradePricing(state *game.State, vt trade.ValidatedTrade, m LinearModel) (*game.State, error) {
	req := vt.Request
	from := state.TownByID(req.FromTown)
	if from == nil {
		return nil, fmt.Errorf("%w: %s", ErrTownNotFound, req.FromTown)
	}
	to := state.TownByID(req.ToTown)
	if to == nil {
		return nil, fmt.Errorf("%w: %s", ErrTownNotFound, req.ToTown)
	}

	fromDelta, toDelta := -req.Quantity, req.Quantity
	if req.Side == trade.Buy {
		fromDelta, toDelta = req.Quantity, -req.Quantity
	}

	next := state
	if p := m.Apply(from.Prices[req.GoodID], fromDelta); p != from.Prices[req.GoodID] {
		next = next.WithTown(from.WithPrice(req.GoodID, p))
	}
	if p := m.Apply(to.Prices[req.GoodID], toDelta); p != to.Prices[req.GoodID] {
		next = next.WithTown(to.WithPrice(req.GoodID, p))
	}
	return next, nil
}
