package economy

import "github.com/talgya/tradewinds/internal/game"

// NewProduction builds the consumption/production pipeline system: each
// turn a town consumes one unit of every good it stocks and gains that
// good's prosperity/military effect deltas on its raw stats, clamped to
// [0, maxRaw]. This is what gives goods their strategic weight beyond
// resale value.
func NewProduction(maxRaw int) func(*game.State) (*game.State, error) {
	return func(state *game.State) (*game.State, error) {
		towns := make([]*game.Town, len(state.Towns))
		changed := false
		goodIDs := state.GoodIDs()
		for i, t := range state.Towns {
			var updated *game.Town
			for _, goodID := range goodIDs {
				if t.Resources[goodID] <= 0 {
					continue
				}
				if updated == nil {
					updated = t.Clone()
				}
				updated.Resources[goodID]--
				cfg := state.Goods[goodID]
				updated.ProsperityRaw = clampStat(updated.ProsperityRaw+cfg.ProsperityEffect, maxRaw)
				updated.MilitaryRaw = clampStat(updated.MilitaryRaw+cfg.MilitaryEffect, maxRaw)
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
	}
}

func clampStat(v, maxRaw int) int {
	if v < 0 {
		return 0
	}
	if v > maxRaw {
		return maxRaw
	}
	return v
}
