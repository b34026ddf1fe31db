package trade

import "errors"

// ErrCooldownActive rejects a player trade that would repeat a cooled-down
// (town, good) pair.
var ErrCooldownActive = errors.New("trade cooldown active")

// DefaultCooldownInterval is how many turns a traded (town, good) pair
// stays blocked.
const DefaultCooldownInterval = 1

// CooldownTable tracks, per "{townID}:{goodID}" key, the turn at which the
// block expires. The check is self-expiring; ClearExpired is only memory
// hygiene. The table is a mutable collaborator owned by a single turn
// controller, never shared.
type CooldownTable struct {
	expiry map[string]int
}

// NewCooldownTable returns an empty table.
func NewCooldownTable() *CooldownTable {
	return &CooldownTable{expiry: make(map[string]int)}
}

// Key builds the canonical cooldown key for a (town, good) pair.
func Key(townID, goodID string) string {
	return townID + ":" + goodID
}

// Mark blocks a key until currentTurn + interval. Interval values below 1
// fall back to DefaultCooldownInterval.
func (c *CooldownTable) Mark(key string, currentTurn, interval int) {
	if interval < 1 {
		interval = DefaultCooldownInterval
	}
	c.expiry[key] = currentTurn + interval
}

// MarkTrade blocks both towns' keys for the traded good, so neither side
// can run the mirror trade while the cooldown holds.
func (c *CooldownTable) MarkTrade(fromTown, toTown, goodID string, currentTurn, interval int) {
	c.Mark(Key(fromTown, goodID), currentTurn, interval)
	c.Mark(Key(toTown, goodID), currentTurn, interval)
}

// ShouldSkip reports whether the key is still cooled down this turn. The
// expiry turn itself is still blocked.
func (c *CooldownTable) ShouldSkip(key string, currentTurn int) bool {
	expiry, ok := c.expiry[key]
	return ok && currentTurn <= expiry
}

// ClearExpired removes keys whose expiry has passed.
func (c *CooldownTable) ClearExpired(currentTurn int) {
	for key, expiry := range c.expiry {
		if currentTurn > expiry {
			delete(c.expiry, key)
		}
	}
}

// Len returns the number of tracked keys, expired or not.
func (c *CooldownTable) Len() int {
	return len(c.expiry)
}
