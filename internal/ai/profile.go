// Package ai implements the trade-decision engine for AI-controlled towns:
// candidate enumeration, greedy scoring or seeded random selection, and the
// decision records the controller logs per turn.
package ai

import (
	"fmt"
	"strings"
)

// Mode selects how a profile picks among trade candidates.
type Mode uint8

const (
	// Greedy scores every candidate and takes the maximum.
	Greedy Mode = iota
	// Random picks uniformly via the seeded PRNG.
	Random
)

func (m Mode) String() string {
	switch m {
	case Greedy:
		return "greedy"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "greedy", "":
		return Greedy, nil
	case "random":
		return Random, nil
	default:
		return Greedy, fmt.Errorf("unknown ai mode %q", s)
	}
}

// Weights are the greedy scoring coefficients. They need not sum to 1.
type Weights struct {
	PriceSpread float64 `json:"price_spread"`
	Prosperity  float64 `json:"prosperity"`
	Military    float64 `json:"military"`
}

// Profile configures one AI personality.
type Profile struct {
	ID                  string  `json:"id"`
	Mode                Mode    `json:"mode"`
	Weights             Weights `json:"weights"`
	MaxTradesPerTurn    int     `json:"max_trades_per_turn"`
	MaxQuantityPerTrade int     `json:"max_quantity_per_trade"`
}

// DefaultProfileID is the fallback profile for towns with no profile of
// their own.
const DefaultProfileID = "default"

// DefaultProfile is a cautious greedy merchant: one trade per turn, small
// lots, price spread first.
func DefaultProfile() Profile {
	return Profile{
		ID:                  DefaultProfileID,
		Mode:                Greedy,
		Weights:             Weights{PriceSpread: 1.0, Prosperity: 0.3, Military: 0.2},
		MaxTradesPerTurn:    1,
		MaxQuantityPerTrade: 5,
	}
}
