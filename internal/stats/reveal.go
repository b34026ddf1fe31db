package stats

import (
	"errors"
	"fmt"

	"github.com/talgya/tradewinds/internal/game"
)

// RevealPolicy controls how often a town's fuzzy tiers are recomputed.
// Interval 0 means a town is revealed once and then never again.
type RevealPolicy struct {
	Interval int `json:"interval"`
}

// DefaultRevealPolicy re-reveals every 5 turns.
func DefaultRevealPolicy() RevealPolicy {
	return RevealPolicy{Interval: 5}
}

// ErrTierNotConfigured indicates a computed tier that is not a member of
// the configured tier set. This can only happen on a configuration bug
// and fails the whole pass.
var ErrTierNotConfigured = errors.New("computed tier not in configured set")

// RevealConfig bundles everything the reveal pass needs.
type RevealConfig struct {
	MilitaryTiers   []TierThreshold
	ProsperityTiers []TierThreshold
	Policy          RevealPolicy
	Jitter          JitterOpts
}

// DefaultRevealConfig returns the standard ladders, cadence, and jitter.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		MilitaryTiers:   DefaultMilitaryTiers(),
		ProsperityTiers: DefaultProsperityTiers(),
		Policy:          DefaultRevealPolicy(),
		Jitter:          DefaultJitterOpts(),
	}
}

// IsRevealDue reports whether a town's tiers should be recomputed this
// turn: always when the town has never been revealed (lastUpdatedTurn of
// -1), otherwise when a positive whole number of intervals has elapsed.
func IsRevealDue(currentTurn, lastUpdatedTurn int, policy RevealPolicy) bool {
	if lastUpdatedTurn == -1 {
		return true
	}
	if policy.Interval <= 0 {
		return false
	}
	elapsed := currentTurn - lastUpdatedTurn
	return elapsed > 0 && elapsed%policy.Interval == 0
}

// ApplyRevealPass recomputes the fuzzy tiers of every town whose reveal is
// due and stamps the reveal turn. Towns not due keep their original
// reference. Seeding follows (state.Seed, townID, state.Turn), so the pass
// is fully deterministic.
func ApplyRevealPass(state *game.State, cfg RevealConfig) (*game.State, error) {
	towns := make([]*game.Town, len(state.Towns))
	changed := false
	for i, t := range state.Towns {
		if !IsRevealDue(state.Turn, t.Revealed.LastUpdatedTurn, cfg.Policy) {
			towns[i] = t
			continue
		}

		mil, err := FuzzyTierFor(t.MilitaryRaw, cfg.MilitaryTiers, state.Seed, t.ID, state.Turn, cfg.Jitter)
		if err != nil {
			return nil, fmt.Errorf("reveal military tier for %s: %w", t.ID, err)
		}
		pros, err := FuzzyTierFor(t.ProsperityRaw, cfg.ProsperityTiers, state.Seed, t.ID, state.Turn, cfg.Jitter)
		if err != nil {
			return nil, fmt.Errorf("reveal prosperity tier for %s: %w", t.ID, err)
		}
		if !tierConfigured(mil, cfg.MilitaryTiers) {
			return nil, fmt.Errorf("%w: %q (military, town %s)", ErrTierNotConfigured, mil, t.ID)
		}
		if !tierConfigured(pros, cfg.ProsperityTiers) {
			return nil, fmt.Errorf("%w: %q (prosperity, town %s)", ErrTierNotConfigured, pros, t.ID)
		}

		towns[i] = t.WithRevealed(game.RevealState{
			MilitaryTier:    mil,
			ProsperityTier:  pros,
			LastUpdatedTurn: state.Turn,
		})
		changed = true
	}
	if !changed {
		return state, nil
	}
	return state.WithTowns(towns), nil
}

// RevealSystem adapts ApplyRevealPass for pipeline registration.
func RevealSystem(cfg RevealConfig) func(*game.State) (*game.State, error) {
	return func(state *game.State) (*game.State, error) {
		return ApplyRevealPass(state, cfg)
	}
}

func tierConfigured(tier string, thresholds []TierThreshold) bool {
	for _, th := range thresholds {
		if th.Tier == tier {
			return true
		}
	}
	return false
}
