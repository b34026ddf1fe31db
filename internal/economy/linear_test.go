package economy

import (
	"errors"
	"testing"

	"github.com/talgya/tradewinds/internal/game"
	"github.com/talgya/tradewinds/internal/trade"
)

func TestLinearModelApply(t *testing.T) {
	m := DefaultLinearModel()
	cases := []struct {
		price, delta, want int
	}{
		{50, 0, 50},   // no quantity change, no price change
		{50, -3, 51},  // goods left, price rises by the step
		{50, 7, 49},   // goods arrived, price falls by the step
		{100, -1, 100}, // clamped at max
		{0, 5, 0},      // clamped at min
	}
	for _, tc := range cases {
		if got := m.Apply(tc.price, tc.delta); got != tc.want {
			t.Errorf("Apply(%d, %d) = %d, want %d", tc.price, tc.delta, got, tc.want)
		}
	}
}

func TestLinearModelZeroValueDefaults(t *testing.T) {
	var m LinearModel
	if got := m.Apply(50, -1); got != 51 {
		t.Errorf("zero-value model step: got %d, want 51", got)
	}
	if got := m.Apply(100, -1); got != 100 {
		t.Errorf("zero-value model max: got %d, want clamp at 100", got)
	}
}

func pricingState() *game.State {
	return &game.State{
		Turn:    1,
		Version: 1,
		Seed:    "pricing-test",
		Goods:   map[string]game.GoodConfig{"iron": {ID: "iron"}},
		Towns: []*game.Town{
			{ID: "aldham", Resources: map[string]int{"iron": 10}, Prices: map[string]int{"iron": 40}},
			{ID: "bexley", Resources: map[string]int{"iron": 10}, Prices: map[string]int{"iron": 60}},
		},
	}
}

func TestApplyPostTradePricingSell(t *testing.T) {
	state := pricingState()
	vt := trade.ValidatedTrade{Request: trade.Request{
		FromTown: "aldham", ToTown: "bexley", GoodID: "iron", Quantity: 3, Side: trade.Sell,
	}}

	next, err := ApplyPostTradePricing(state, vt, DefaultLinearModel())
	if err != nil {
		t.Fatal(err)
	}
	if got := next.TownByID("aldham").Prices["iron"]; got != 41 {
		t.Errorf("seller price = %d, want 41 (stock left, price up)", got)
	}
	if got := next.TownByID("bexley").Prices["iron"]; got != 59 {
		t.Errorf("buyer price = %d, want 59 (stock arrived, price down)", got)
	}
	if state.TownByID("aldham").Prices["iron"] != 40 {
		t.Error("input state mutated")
	}
}

func TestApplyPostTradePricingBuyInverts(t *testing.T) {
	state := pricingState()
	vt := trade.ValidatedTrade{Request: trade.Request{
		FromTown: "aldham", ToTown: "bexley", GoodID: "iron", Quantity: 3, Side: trade.Buy,
	}}

	next, err := ApplyPostTradePricing(state, vt, DefaultLinearModel())
	if err != nil {
		t.Fatal(err)
	}
	if got := next.TownByID("aldham").Prices["iron"]; got != 39 {
		t.Errorf("buying town price = %d, want 39", got)
	}
	if got := next.TownByID("bexley").Prices["iron"]; got != 61 {
		t.Errorf("selling town price = %d, want 61", got)
	}
}

func TestApplyPostTradePricingUnknownTown(t *testing.T) {
	vt := trade.ValidatedTrade{Request: trade.Request{
		FromTown: "ghostville", ToTown: "bexley", GoodID: "iron", Quantity: 1, Side: trade.Sell,
	}}
	if _, err := ApplyPostTradePricing(pricingState(), vt, DefaultLinearModel()); !errors.Is(err, ErrTownNotFound) {
		t.Fatalf("expected ErrTownNotFound, got %v", err)
	}
}
