// Package genesis constructs initial game states: it loads YAML scenario
// files and generates procedural scenarios from a seed. States leaving
// this package always satisfy the data-model invariants the turn core
// assumes.
package genesis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/tradewinds/internal/ai"
	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/game"
)

// Scenario is the on-disk description of a world.
type Scenario struct {
	Seed       string            `yaml:"seed"`
	Version    int               `yaml:"version"`
	PlayerTown string            `yaml:"player_town"`
	Goods      []GoodSpec        `yaml:"goods"`
	Profiles   []ProfileSpec     `yaml:"profiles"`
	Towns      []TownSpec        `yaml:"towns"`
}

// GoodSpec declares one good and its price curve.
type GoodSpec struct {
	ID               string                   `yaml:"id"`
	Name             string                   `yaml:"name"`
	ProsperityEffect int                      `yaml:"prosperity_effect"`
	MilitaryEffect   int                      `yaml:"military_effect"`
	Curve            economy.PriceCurveConfig `yaml:"curve"`
}

// ProfileSpec declares one AI profile.
type ProfileSpec struct {
	ID                  string  `yaml:"id"`
	Mode                string  `yaml:"mode"`
	PriceSpreadWeight   float64 `yaml:"price_spread_weight"`
	ProsperityWeight    float64 `yaml:"prosperity_weight"`
	MilitaryWeight      float64 `yaml:"military_weight"`
	MaxTradesPerTurn    int     `yaml:"max_trades_per_turn"`
	MaxQuantityPerTrade int     `yaml:"max_quantity_per_trade"`
}

// TownSpec declares one town. Missing per-good entries default to zero
// stock and the good's base price.
type TownSpec struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Treasury   int            `yaml:"treasury"`
	Prosperity int            `yaml:"prosperity"`
	Military   int            `yaml:"military"`
	Profile    string         `yaml:"profile"`
	Resources  map[string]int `yaml:"resources"`
	Prices     map[string]int `yaml:"prices"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &sc, nil
}

// BuildState assembles and validates the initial game state. Every town
// gets an entry for every good; reveal records start at turn -1 so the
// first reveal pass fires unconditionally.
func (sc *Scenario) BuildState() (*game.State, error) {
	version := sc.Version
	if version < 1 {
		version = 1
	}

	goods := make(map[string]game.GoodConfig, len(sc.Goods))
	for _, g := range sc.Goods {
		goods[g.ID] = game.GoodConfig{
			ID:               g.ID,
			Name:             g.Name,
			ProsperityEffect: g.ProsperityEffect,
			MilitaryEffect:   g.MilitaryEffect,
		}
	}

	towns := make([]*game.Town, 0, len(sc.Towns))
	for _, ts := range sc.Towns {
		town := &game.Town{
			ID:            ts.ID,
			Name:          ts.Name,
			Resources:     make(map[string]int, len(sc.Goods)),
			Prices:        make(map[string]int, len(sc.Goods)),
			ProsperityRaw: ts.Prosperity,
			MilitaryRaw:   ts.Military,
			Treasury:      ts.Treasury,
			ProfileID:     ts.Profile,
			Revealed:      game.RevealState{LastUpdatedTurn: -1},
		}
		for _, g := range sc.Goods {
			town.Resources[g.ID] = ts.Resources[g.ID]
			price, ok := ts.Prices[g.ID]
			if !ok {
				price = g.Curve.BasePrice
			}
			town.Prices[g.ID] = price
		}
		towns = append(towns, town)
	}

	state := &game.State{
		Turn:    0,
		Version: version,
		Seed:    sc.Seed,
		Towns:   towns,
		Goods:   goods,
	}
	if err := game.Validate(state); err != nil {
		return nil, fmt.Errorf("scenario state invalid: %w", err)
	}
	return state, nil
}

// BuildProfiles converts the profile specs to an AI profile table. The
// default profile is always present so profile-less towns can act.
func (sc *Scenario) BuildProfiles() (map[string]ai.Profile, error) {
	profiles := map[string]ai.Profile{ai.DefaultProfileID: ai.DefaultProfile()}
	for _, ps := range sc.Profiles {
		mode, err := ai.ParseMode(ps.Mode)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", ps.ID, err)
		}
		profiles[ps.ID] = ai.Profile{
			ID:   ps.ID,
			Mode: mode,
			Weights: ai.Weights{
				PriceSpread: ps.PriceSpreadWeight,
				Prosperity:  ps.ProsperityWeight,
				Military:    ps.MilitaryWeight,
			},
			MaxTradesPerTurn:    ps.MaxTradesPerTurn,
			MaxQuantityPerTrade: ps.MaxQuantityPerTrade,
		}
	}
	return profiles, nil
}

// Curves returns the per-good price curve configs, validated.
func (sc *Scenario) Curves() (map[string]economy.PriceCurveConfig, error) {
	curves := make(map[string]economy.PriceCurveConfig, len(sc.Goods))
	for _, g := range sc.Goods {
		if err := g.Curve.Validate(); err != nil {
			return nil, fmt.Errorf("good %s: %w", g.ID, err)
		}
		curves[g.ID] = g.Curve
	}
	return curves, nil
}
