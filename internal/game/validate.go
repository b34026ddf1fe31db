package game

import (
	"errors"
	"fmt"
)

// Validation errors. These are configuration-class failures: a state that
// trips one must never be handed to the turn controller.
var (
	ErrNoTowns        = errors.New("state has no towns")
	ErrNoGoods        = errors.New("state has no goods")
	ErrBadVersion     = errors.New("state version must be >= 1")
	ErrBadTurn        = errors.New("state turn must be >= 0")
	ErrEmptySeed      = errors.New("state seed must not be empty")
	ErrDuplicateTown  = errors.New("duplicate town id")
	ErrMissingGood    = errors.New("town is missing an entry for a configured good")
	ErrNegativeAmount = errors.New("negative quantity, price, or treasury")
)

// Validate checks the data-model invariants: version and turn ranges, a
// nonempty seed, unique town ids, an entry in every town's resource and
// price map for every configured good, and no negative quantities.
//
// The turn core assumes a validated state; it does not re-check these.
func Validate(s *State) error {
	if s.Version < 1 {
		return ErrBadVersion
	}
	if s.Turn < 0 {
		return ErrBadTurn
	}
	if s.Seed == "" {
		return ErrEmptySeed
	}
	if len(s.Towns) == 0 {
		return ErrNoTowns
	}
	if len(s.Goods) == 0 {
		return ErrNoGoods
	}

	seen := make(map[string]bool, len(s.Towns))
	for _, t := range s.Towns {
		if seen[t.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateTown, t.ID)
		}
		seen[t.ID] = true

		if t.Treasury < 0 {
			return fmt.Errorf("%w: town %s treasury %d", ErrNegativeAmount, t.ID, t.Treasury)
		}
		for goodID := range s.Goods {
			qty, ok := t.Resources[goodID]
			if !ok {
				return fmt.Errorf("%w: town %s resources[%s]", ErrMissingGood, t.ID, goodID)
			}
			if qty < 0 {
				return fmt.Errorf("%w: town %s resources[%s] = %d", ErrNegativeAmount, t.ID, goodID, qty)
			}
			price, ok := t.Prices[goodID]
			if !ok {
				return fmt.Errorf("%w: town %s prices[%s]", ErrMissingGood, t.ID, goodID)
			}
			if price < 0 {
				return fmt.Errorf("%w: town %s prices[%s] = %d", ErrNegativeAmount, t.ID, goodID, price)
			}
		}
	}
	return nil
}
