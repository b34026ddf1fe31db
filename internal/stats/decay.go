package stats

import "github.com/talgya/tradewinds/internal/game"

// RawStatRules configures the per-turn raw stat drift. A negative decay
// value means growth.
type RawStatRules struct {
	ProsperityDecayPerTurn int `json:"prosperity_decay_per_turn"`
	MilitaryDecayPerTurn   int `json:"military_decay_per_turn"`
	MaxRaw                 int `json:"max_raw"`
}

// DefaultRawStatRules returns the standard rules: prosperity fades by 1
// each turn, military holds, both stats live in [0, 100].
func DefaultRawStatRules() RawStatRules {
	return RawStatRules{ProsperityDecayPerTurn: 1, MilitaryDecayPerTurn: 0, MaxRaw: 100}
}

// ApplyRawStatTurn applies one turn of decay to every town and clamps both
// raw stats to [0, rules.MaxRaw]. Towns whose stats do not change keep
// their original reference; if nothing changes the input state is returned
// untouched.
func ApplyRawStatTurn(state *game.State, rules RawStatRules) *game.State {
	towns := make([]*game.Town, len(state.Towns))
	changed := false
	for i, t := range state.Towns {
		p := clampRaw(t.ProsperityRaw-rules.ProsperityDecayPerTurn, rules.MaxRaw)
		m := clampRaw(t.MilitaryRaw-rules.MilitaryDecayPerTurn, rules.MaxRaw)
		if p == t.ProsperityRaw && m == t.MilitaryRaw {
			towns[i] = t
			continue
		}
		towns[i] = t.WithRawStats(p, m)
		changed = true
	}
	if !changed {
		return state
	}
	return state.WithTowns(towns)
}

// DecaySystem adapts ApplyRawStatTurn for pipeline registration.
func DecaySystem(rules RawStatRules) func(*game.State) (*game.State, error) {
	return func(state *game.State) (*game.State, error) {
		return ApplyRawStatTurn(state, rules), nil
	}
}

func clampRaw(v, maxRaw int) int {
	if v < 0 {
		return 0
	}
	if v > maxRaw {
		return maxRaw
	}
	return v
}
