package economy

import (
	"fmt"

	"github.com/talgya/tradewinds/internal/game"
)

// NewPriceDrift builds a pipeline system that recomputes every town's
// prices from its current stocks via the curve engine, smoothed toward the
// old price by alpha. Goods without a curve config keep their prices.
// Curve configs are validated here, at setup time.
func NewPriceDrift(curves map[string]PriceCurveConfig, alpha float64) (func(*game.State) (*game.State, error), error) {
	for goodID, cfg := range curves {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("price curve for %s: %w", goodID, err)
		}
	}

	return func(state *game.State) (*game.State, error) {
		towns := make([]*game.Town, len(state.Towns))
		changed := false
		goodIDs := state.GoodIDs()
		for i, t := range state.Towns {
			var updated *game.Town
			for _, goodID := range goodIDs {
				cfg, ok := curves[goodID]
				if !ok {
					continue
				}
				target := NextPrice(t.Resources[goodID], cfg)
				price := SmoothPrice(t.Prices[goodID], target, alpha)
				if price == t.Prices[goodID] {
					continue
				}
				if updated == nil {
					updated = t.Clone()
				}
				updated.Prices[goodID] = price
			}
			if updated == nil {
				towns[i] = t
				continue
			}
			towns[i] = updated
			changed = true
		}
		if !changed {
			return state, nil
		}
		return state.WithTowns(towns), nil
	}, nil
}
