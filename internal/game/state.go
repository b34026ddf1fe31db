// Package game defines the immutable world state of the trading economy:
// towns, goods, and the copy-on-write helpers every turn system uses.
//
// A State is never mutated in place. Each update copies the substructure it
// changes and reuses every unchanged reference, so two states produced in
// the same turn share most of their object graph. Callers may rely on
// reference equality to detect "nothing changed here".
package game

import "sort"

// State is the complete game state for one turn boundary.
type State struct {
	Turn    int                   `json:"turn"`    // >= 0
	Version int                   `json:"version"` // >= 1
	Seed    string                `json:"seed"`    // RNG seed for every stochastic system
	Towns   []*Town               `json:"towns"`   // Ordered; AI towns run in this order
	Goods   map[string]GoodConfig `json:"goods"`   // Good id -> configuration
}

// Town is one settlement in the economy.
type Town struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Per-good maps. Invariant: an entry for every configured good id.
	Resources map[string]int `json:"resources"`
	Prices    map[string]int `json:"prices"`

	// Raw stats. May go negative mid-computation; clamped by the decay pass.
	MilitaryRaw   int `json:"military_raw"`
	ProsperityRaw int `json:"prosperity_raw"`

	Treasury int `json:"treasury"` // Crowns, never negative

	// ProfileID references an AI profile. Empty for the player town.
	ProfileID string `json:"profile_id,omitempty"`

	// Revealed is the tier information currently shown for this town.
	Revealed RevealState `json:"revealed"`
}

// RevealState holds the displayed (possibly jittered) tiers for a town and
// the turn they were last recomputed. LastUpdatedTurn == -1 means the town
// has never been revealed.
type RevealState struct {
	MilitaryTier    string `json:"military_tier"`
	ProsperityTier  string `json:"prosperity_tier"`
	LastUpdatedTurn int    `json:"last_updated_turn"`
}

// GoodConfig describes one tradable good.
type GoodConfig struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Effect deltas applied to a town's raw stats by the production system.
	ProsperityEffect int `json:"prosperity_effect"`
	MilitaryEffect   int `json:"military_effect"`
}

// TownByID returns the town with the given id, or nil.
func (s *State) TownByID(id string) *Town {
	for _, t := range s.Towns {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// WithTurn returns a copy of the state with the turn counter replaced.
// The towns slice and goods map are shared with the receiver.
func (s *State) WithTurn(turn int) *State {
	next := *s
	next.Turn = turn
	return &next
}

// WithTown returns a copy of the state in which the town with updated.ID is
// replaced by updated. The towns slice is copied; every other town pointer
// is shared. Returns the receiver unchanged if the id is unknown.
func (s *State) WithTown(updated *Town) *State {
	for i, t := range s.Towns {
		if t.ID == updated.ID {
			towns := make([]*Town, len(s.Towns))
			copy(towns, s.Towns)
			towns[i] = updated
			next := *s
			next.Towns = towns
			return &next
		}
	}
	return s
}

// WithTowns returns a copy of the state with the towns slice replaced.
func (s *State) WithTowns(towns []*Town) *State {
	next := *s
	next.Towns = towns
	return &next
}

// Clone returns a deep copy of the town. Used as the first step of every
// copy-on-write town update.
func (t *Town) Clone() *Town {
	next := *t
	next.Resources = cloneIntMap(t.Resources)
	next.Prices = cloneIntMap(t.Prices)
	return &next
}

// WithResource returns a copy of the town with one resource quantity set.
// Only the resources map is copied; the prices map is shared.
func (t *Town) WithResource(goodID string, qty int) *Town {
	next := *t
	next.Resources = cloneIntMap(t.Resources)
	next.Resources[goodID] = qty
	return &next
}

// WithPrice returns a copy of the town with one price set.
// Only the prices map is copied; the resources map is shared.
func (t *Town) WithPrice(goodID string, price int) *Town {
	next := *t
	next.Prices = cloneIntMap(t.Prices)
	next.Prices[goodID] = price
	return &next
}

// WithTreasury returns a copy of the town with the treasury replaced.
// Both per-good maps are shared.
func (t *Town) WithTreasury(treasury int) *Town {
	next := *t
	next.Treasury = treasury
	return &next
}

// WithRawStats returns a copy of the town with both raw stats replaced.
func (t *Town) WithRawStats(prosperity, military int) *Town {
	next := *t
	next.ProsperityRaw = prosperity
	next.MilitaryRaw = military
	return &next
}

// WithRevealed returns a copy of the town with the reveal record replaced.
func (t *Town) WithRevealed(r RevealState) *Town {
	next := *t
	next.Revealed = r
	return &next
}

func cloneIntMap(m map[string]int) map[string]int {
	next := make(map[string]int, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}

// GoodIDs returns the configured good ids in sorted order. Every system
// that iterates goods uses this so map iteration order never leaks into
// results.
func (s *State) GoodIDs() []string {
	ids := make([]string, 0, len(s.Goods))
	for id := range s.Goods {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
