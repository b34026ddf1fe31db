package economy

import (
	"errors"
	"testing"

	"github.com/talgya/tradewinds/internal/game"
)

func TestNewPriceDriftRejectsBadCurves(t *testing.T) {
	curves := map[string]PriceCurveConfig{
		"iron": {BasePrice: 10, TargetStock: 0},
	}
	if _, err := NewPriceDrift(curves, 0.5); !errors.Is(err, ErrBadPriceBounds) {
		t.Fatalf("expected ErrBadPriceBounds at setup, got %v", err)
	}
}

func TestPriceDriftMovesTowardEquilibrium(t *testing.T) {
	curves := map[string]PriceCurveConfig{
		"iron": {BasePrice: 100, TargetStock: 40, Elasticity: 0.5},
	}
	drift, err := NewPriceDrift(curves, 1)
	if err != nil {
		t.Fatal(err)
	}

	state := &game.State{
		Turn: 1, Version: 1, Seed: "drift-test",
		Goods: map[string]game.GoodConfig{"iron": {ID: "iron"}},
		Towns: []*game.Town{
			{ID: "scarce", Resources: map[string]int{"iron": 10}, Prices: map[string]int{"iron": 100}},
			{ID: "settled", Resources: map[string]int{"iron": 40}, Prices: map[string]int{"iron": 100}},
		},
	}

	next, err := drift(state)
	if err != nil {
		t.Fatal(err)
	}
	if got := next.TownByID("scarce").Prices["iron"]; got != 200 {
		t.Errorf("scarce town price = %d, want 200", got)
	}
	// At target stock the equilibrium is the old price; the town keeps its
	// reference.
	if next.TownByID("settled") != state.TownByID("settled") {
		t.Error("town already at equilibrium was copied")
	}
}

func TestPriceDriftSkipsUnconfiguredGoods(t *testing.T) {
	drift, err := NewPriceDrift(map[string]PriceCurveConfig{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	state := &game.State{
		Turn: 1, Version: 1, Seed: "drift-test",
		Goods: map[string]game.GoodConfig{"iron": {ID: "iron"}},
		Towns: []*game.Town{
			{ID: "aldham", Resources: map[string]int{"iron": 3}, Prices: map[string]int{"iron": 55}},
		},
	}
	next, err := drift(state)
	if err != nil {
		t.Fatal(err)
	}
	if next != state {
		t.Fatal("drift with no curves should return the input state reference")
	}
}

func TestProductionConsumesAndBoosts(t *testing.T) {
	produce := NewProduction(100)
	state := &game.State{
		Turn: 1, Version: 1, Seed: "production-test",
		Goods: map[string]game.GoodConfig{
			"grain": {ID: "grain", ProsperityEffect: 2},
			"iron":  {ID: "iron", MilitaryEffect: 1},
		},
		Towns: []*game.Town{
			{
				ID:            "aldham",
				Resources:     map[string]int{"grain": 5, "iron": 0},
				Prices:        map[string]int{"grain": 8, "iron": 20},
				ProsperityRaw: 50,
				MilitaryRaw:   50,
			},
		},
	}

	next, err := produce(state)
	if err != nil {
		t.Fatal(err)
	}
	got := next.TownByID("aldham")
	if got.Resources["grain"] != 4 {
		t.Errorf("grain stock = %d, want 4 (one unit consumed)", got.Resources["grain"])
	}
	if got.Resources["iron"] != 0 {
		t.Errorf("iron stock = %d, want 0 (empty stock is not consumed)", got.Resources["iron"])
	}
	if got.ProsperityRaw != 52 {
		t.Errorf("prosperity = %d, want 52", got.ProsperityRaw)
	}
	if got.MilitaryRaw != 50 {
		t.Errorf("military = %d, want 50 (no iron consumed, no boost)", got.MilitaryRaw)
	}
}

func TestProductionClampsAtMax(t *testing.T) {
	produce := NewProduction(100)
	state := &game.State{
		Turn: 1, Version: 1, Seed: "production-test",
		Goods: map[string]game.GoodConfig{"grain": {ID: "grain", ProsperityEffect: 5}},
		Towns: []*game.Town{
			{ID: "aldham", Resources: map[string]int{"grain": 1}, Prices: map[string]int{"grain": 8}, ProsperityRaw: 98},
		},
	}
	next, err := produce(state)
	if err != nil {
		t.Fatal(err)
	}
	if got := next.TownByID("aldham").ProsperityRaw; got != 100 {
		t.Errorf("prosperity = %d, want clamp at 100", got)
	}
}
