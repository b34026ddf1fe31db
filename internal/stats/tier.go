// Package stats implements the raw-stat systems: tier mapping, the fuzzy
// tier shown to players, per-turn decay, and the reveal cadence.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/talgya/tradewinds/internal/entropy"
)

// TierThreshold pairs a tier label with the minimum raw value that earns
// it. A sorted list of thresholds defines the step function raw -> tier.
type TierThreshold struct {
	Tier string `json:"tier"`
	Min  int    `json:"min"`
}

// ErrEmptyThresholds is returned when a tier mapping is attempted against
// an empty threshold list. This is a configuration error.
var ErrEmptyThresholds = errors.New("empty tier threshold list")

// DefaultMilitaryTiers returns the standard military tier ladder.
func DefaultMilitaryTiers() []TierThreshold {
	return []TierThreshold{
		{Tier: "militia", Min: 0},
		{Tier: "warband", Min: 25},
		{Tier: "legion", Min: 50},
		{Tier: "host", Min: 75},
	}
}

// DefaultProsperityTiers returns the standard prosperity tier ladder.
func DefaultProsperityTiers() []TierThreshold {
	return []TierThreshold{
		{Tier: "struggling", Min: 0},
		{Tier: "modest", Min: 25},
		{Tier: "prosperous", Min: 50},
		{Tier: "opulent", Min: 75},
	}
}

// MapToTier maps a raw value to the tier of the highest threshold whose
// minimum is <= raw. A raw value below every minimum maps to the lowest
// tier, so the function is total over all raw values. The input order of
// thresholds does not matter; they are sorted internally.
func MapToTier(raw int, thresholds []TierThreshold) (string, error) {
	sorted, err := sortedThresholds(thresholds)
	if err != nil {
		return "", err
	}
	tier := sorted[0].Tier
	for _, th := range sorted {
		if th.Min <= raw {
			tier = th.Tier
		}
	}
	return tier, nil
}

// JitterOpts controls the fuzzy tier jitter. Prob is the probability that
// the revealed tier deviates by one step from the true tier: 0 always
// reveals the true tier, 1 always jitters (clamped at the ladder ends).
type JitterOpts struct {
	Prob float64
}

// DefaultJitterOpts returns the standard 20% jitter.
func DefaultJitterOpts() JitterOpts {
	return JitterOpts{Prob: 0.2}
}

// FuzzyTierFor computes the tier actually revealed for a town: the true
// tier index, shifted by -1 or +1 with probability opts.Prob and clamped
// to the ladder. The draw is seeded by (seed, townID, turn), so identical
// inputs always reveal the identical tier.
func FuzzyTierFor(raw int, thresholds []TierThreshold, seed, townID string, turn int, opts JitterOpts) (string, error) {
	sorted, err := sortedThresholds(thresholds)
	if err != nil {
		return "", err
	}

	idx := 0
	for i, th := range sorted {
		if th.Min <= raw {
			idx = i
		}
	}

	r := entropy.Rand(seed)(fmt.Sprintf("%s:%d:%s", townID, turn, sorted[0].Tier))
	if r < opts.Prob {
		if r < opts.Prob/2 {
			idx--
		} else {
			idx++
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx].Tier, nil
}

// sortedThresholds returns a copy sorted ascending by minimum, with the
// tier label as tie-break so arbitrary input order cannot change results.
func sortedThresholds(thresholds []TierThreshold) ([]TierThreshold, error) {
	if len(thresholds) == 0 {
		return nil, ErrEmptyThresholds
	}
	sorted := make([]TierThreshold, len(thresholds))
	copy(sorted, thresholds)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Min != sorted[j].Min {
			return sorted[i].Min < sorted[j].Min
		}
		return sorted[i].Tier < sorted[j].Tier
	})
	return sorted, nil
}
