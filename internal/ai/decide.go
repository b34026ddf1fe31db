package ai

import (
	"fmt"

	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/game"
	"github.com/talgya/tradewinds/internal/trade"
)

// Skip reasons recorded on decisions. Skips are soft outcomes, never errors.
const (
	ReasonNoCandidate = "no-candidate"
	ReasonNoProfile   = "no-profile"
)

// Decision is the record of one AI deliberation: either a chosen trade
// request (with its score in greedy mode) or a skip with a reason.
type Decision struct {
	TownID  string         `json:"town_id"`
	Skipped bool           `json:"skipped"`
	Reason  string         `json:"reason,omitempty"`
	Request *trade.Request `json:"request,omitempty"`
	Score   float64        `json:"score,omitempty"`
	Scored  bool           `json:"scored,omitempty"`
}

// Engine evaluates trade candidates for AI towns. MaxRaw is the raw-stat
// normalization bound used when scoring destination prosperity/military.
type Engine struct {
	Cooldowns *trade.CooldownTable
	MaxRaw    int
}

// NewEngine returns an engine sharing the controller's cooldown table.
func NewEngine(cooldowns *trade.CooldownTable) *Engine {
	return &Engine{Cooldowns: cooldowns, MaxRaw: 100}
}

// Skip builds a skip decision.
func Skip(townID, reason string) Decision {
	return Decision{TownID: townID, Skipped: true, Reason: reason}
}

type candidate struct {
	req  trade.Request
	dest *game.Town
}

// Decide evaluates all legal trade candidates for the town and picks one
// per the profile's mode. With no legal candidate it returns a
// "no-candidate" skip. Identical (state, town, profile) inputs always
// produce the identical decision: candidate enumeration order is fixed
// (towns in state order, goods sorted by id, sell before buy), greedy ties
// go to the earliest candidate, and random mode draws from the seeded PRNG
// keyed by (seed, townID, turn).
func (e *Engine) Decide(state *game.State, town *game.Town, profile Profile) Decision {
	cands := e.candidates(state, town, profile)
	if len(cands) == 0 {
		return Skip(town.ID, ReasonNoCandidate)
	}

	if profile.Mode == Random {
		r := entropy.Rand(state.Seed)(fmt.Sprintf("%s:%d:candidate", town.ID, state.Turn))
		idx := int(r * float64(len(cands)))
		if idx >= len(cands) {
			idx = len(cands) - 1
		}
		req := cands[idx].req
		return Decision{TownID: town.ID, Request: &req}
	}

	bestIdx := 0
	bestScore := e.score(town, cands[0], profile.Weights)
	for i := 1; i < len(cands); i++ {
		if s := e.score(town, cands[i], profile.Weights); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	req := cands[bestIdx].req
	return Decision{TownID: town.ID, Request: &req, Score: bestScore, Scored: true}
}

// candidates enumerates the legal (other town, good, side) tuples in
// deterministic order. A candidate is legal when it survives the stock
// cap, the affordability cap, and the cooldown filter on both towns' keys
// with a positive quantity.
func (e *Engine) candidates(state *game.State, town *game.Town, profile Profile) []candidate {
	var out []candidate
	goodIDs := state.GoodIDs()
	for _, other := range state.Towns {
		if other.ID == town.ID {
			continue
		}
		for _, goodID := range goodIDs {
			if e.Cooldowns != nil &&
				(e.Cooldowns.ShouldSkip(trade.Key(town.ID, goodID), state.Turn) ||
					e.Cooldowns.ShouldSkip(trade.Key(other.ID, goodID), state.Turn)) {
				continue
			}
			price := other.Prices[goodID]
			for _, side := range []trade.Side{trade.Sell, trade.Buy} {
				qty := profile.MaxQuantityPerTrade
				if side == trade.Sell {
					qty = capTradableStock(qty, town.Resources[goodID])
					qty = capAffordable(qty, other.Treasury, price)
				} else {
					qty = capTradableStock(qty, other.Resources[goodID])
					qty = capAffordable(qty, town.Treasury, price)
				}
				if qty <= 0 {
					continue
				}
				out = append(out, candidate{
					req: trade.Request{
						FromTown:  town.ID,
						ToTown:    other.ID,
						GoodID:    goodID,
						Quantity:  qty,
						Side:      side,
						UnitPrice: price,
					},
					dest: other,
				})
			}
		}
	}
	return out
}

// score is the greedy objective: weighted sum of the normalized price
// spread and the destination's prosperity and military raw stats.
func (e *Engine) score(town *game.Town, c candidate, w Weights) float64 {
	own := town.Prices[c.req.GoodID]
	spread := c.req.UnitPrice - own
	if c.req.Side == trade.Buy {
		spread = own - c.req.UnitPrice
	}
	normBase := own
	if normBase < 1 {
		normBase = 1
	}
	maxRaw := float64(e.MaxRaw)
	return w.PriceSpread*float64(spread)/float64(normBase) +
		w.Prosperity*float64(c.dest.ProsperityRaw)/maxRaw +
		w.Military*float64(c.dest.MilitaryRaw)/maxRaw
}

// capTradableStock caps a requested quantity by available stock, floored
// at zero.
func capTradableStock(requested, stock int) int {
	if stock <= 0 {
		return 0
	}
	if requested > stock {
		return stock
	}
	return requested
}

// capAffordable caps a quantity by what the paying treasury can cover at
// the unit price. A zero price leaves the quantity unchanged.
func capAffordable(requested, treasury, unitPrice int) int {
	if unitPrice <= 0 {
		return requested
	}
	affordable := treasury / unitPrice
	if requested > affordable {
		return affordable
	}
	return requested
}
