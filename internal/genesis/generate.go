package genesis

import (
	"fmt"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/entropy"
)

// GenConfig holds procedural scenario parameters.
type GenConfig struct {
	Seed      string // Drives every random choice; same seed, same scenario
	TownCount int    // Including the player town
	MaxStock  int    // Upper bound for generated per-good stock
	Treasury  int    // Base treasury; noise varies it per town
}

// DefaultGenConfig returns a small six-town world.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:      "tradewinds",
		TownCount: 6,
		MaxStock:  60,
		Treasury:  400,
	}
}

// Town name pool. Towns beyond the pool get seed-derived ids.
var townNames = []string{
	"Riverton", "Ashford", "Briarwick", "Coldharbor", "Dunmere",
	"Elsgate", "Fennmoor", "Greywatch", "Hollowden", "Ironvale",
}

// defaultGoods is the standard goods catalog with its price curves.
func defaultGoods() []GoodSpec {
	return []GoodSpec{
		{ID: "grain", Name: "Grain", ProsperityEffect: 1, MilitaryEffect: 0,
			Curve: curve(8, 40, 0.6)},
		{ID: "timber", Name: "Timber", ProsperityEffect: 1, MilitaryEffect: 0,
			Curve: curve(12, 30, 0.5)},
		{ID: "iron", Name: "Iron", ProsperityEffect: 0, MilitaryEffect: 1,
			Curve: curve(20, 20, 0.8)},
		{ID: "furs", Name: "Furs", ProsperityEffect: 2, MilitaryEffect: 0,
			Curve: curve(25, 15, 0.7)},
		{ID: "salt", Name: "Salt", ProsperityEffect: 1, MilitaryEffect: 1,
			Curve: curve(15, 25, 0.6)},
	}
}

func curve(base, target int, elasticity float64) economy.PriceCurveConfig {
	return economy.PriceCurveConfig{BasePrice: base, TargetStock: target, Elasticity: elasticity}
}

// Generate builds a deterministic procedural scenario: noise-shaped
// stocks and raw stats per town, base-price markets, and a mix of greedy
// and random AI profiles. The first town is the player's.
func Generate(cfg GenConfig) *Scenario {
	if cfg.TownCount < 2 {
		cfg.TownCount = 2
	}
	goods := defaultGoods()

	// The noise seed is derived from the scenario seed through the same
	// deterministic PRNG the simulation uses.
	draw := entropy.Rand(cfg.Seed)
	noiseSeed := int64(draw("genesis:noise") * (1 << 31))
	noise := opensimplex.NewNormalized(noiseSeed)

	sc := &Scenario{
		Seed:    cfg.Seed,
		Version: 1,
		Goods:   goods,
		Profiles: []ProfileSpec{
			{ID: "merchant", Mode: "greedy", PriceSpreadWeight: 1.0,
				ProsperityWeight: 0.4, MilitaryWeight: 0.1,
				MaxTradesPerTurn: 1, MaxQuantityPerTrade: 5},
			{ID: "warlord", Mode: "greedy", PriceSpreadWeight: 0.5,
				ProsperityWeight: 0.1, MilitaryWeight: 1.0,
				MaxTradesPerTurn: 1, MaxQuantityPerTrade: 8},
			{ID: "drifter", Mode: "random",
				MaxTradesPerTurn: 1, MaxQuantityPerTrade: 3},
		},
	}

	profileCycle := []string{"merchant", "warlord", "drifter"}
	for i := 0; i < cfg.TownCount; i++ {
		id, name := townIdentity(cfg.Seed, i)

		ts := TownSpec{
			ID:        id,
			Name:      name,
			Resources: make(map[string]int, len(goods)),
			Prices:    make(map[string]int, len(goods)),
		}

		// Raw stats and treasury from smooth noise so neighboring towns
		// feel related rather than uniformly random.
		x := float64(i) * 0.7
		ts.Prosperity = int(noise.Eval2(x, 0.0) * 100)
		ts.Military = int(noise.Eval2(x, 10.0) * 100)
		ts.Treasury = cfg.Treasury + int(noise.Eval2(x, 20.0)*float64(cfg.Treasury))

		for gi, g := range goods {
			y := 30.0 + float64(gi)*0.9
			ts.Resources[g.ID] = int(noise.Eval2(x, y) * float64(cfg.MaxStock))
			ts.Prices[g.ID] = g.Curve.BasePrice
		}

		if i == 0 {
			sc.PlayerTown = id
		} else {
			ts.Profile = profileCycle[(i-1)%len(profileCycle)]
		}
		sc.Towns = append(sc.Towns, ts)
	}
	return sc
}

// townIdentity returns a stable (id, name) pair for the i-th town. Names
// come from the pool; overflow towns get a seed-derived v5 UUID fragment
// so ids stay deterministic for a given seed.
func townIdentity(seed string, i int) (string, string) {
	if i < len(townNames) {
		name := townNames[i]
		return fmt.Sprintf("town-%02d", i+1), name
	}
	u := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:town:%d", seed, i)))
	short := u.String()[:8]
	return "town-" + short, "Outpost " + short
}
