// Package economy implements the pricing engine: the stock-vs-target price
// curve, turn-to-turn smoothing, the cheap linear post-trade model, and the
// pipeline systems that apply them across the world each turn.
package economy

import (
	"errors"
	"fmt"
	"math"
)

// Default price bounds for the curve engine.
const (
	DefaultMinPrice = 1
	DefaultMaxPrice = 9999
)

// PriceCurveConfig drives the equilibrium price of one good:
//
//	price = basePrice * (targetStock / stock) ^ elasticity
//
// clamped to [MinPrice, MaxPrice]. Zero bounds take the defaults.
type PriceCurveConfig struct {
	BasePrice   int     `json:"base_price" yaml:"base_price"`
	TargetStock int     `json:"target_stock" yaml:"target_stock"`
	Elasticity  float64 `json:"elasticity" yaml:"elasticity"`
	MinPrice    int     `json:"min_price" yaml:"min_price"`
	MaxPrice    int     `json:"max_price" yaml:"max_price"`
}

// ErrBadPriceBounds flags a curve config whose bounds cannot hold its base
// price. Configuration error: raised at setup, never during a turn.
var ErrBadPriceBounds = errors.New("invalid price curve bounds")

// Validate checks minPrice < maxPrice and minPrice <= basePrice <= maxPrice
// after defaulting.
func (c PriceCurveConfig) Validate() error {
	d := c.withDefaults()
	if d.MinPrice >= d.MaxPrice {
		return fmt.Errorf("%w: min %d >= max %d", ErrBadPriceBounds, d.MinPrice, d.MaxPrice)
	}
	if d.BasePrice < d.MinPrice || d.BasePrice > d.MaxPrice {
		return fmt.Errorf("%w: base %d outside [%d, %d]", ErrBadPriceBounds, d.BasePrice, d.MinPrice, d.MaxPrice)
	}
	if d.TargetStock < 1 {
		return fmt.Errorf("%w: target stock %d < 1", ErrBadPriceBounds, d.TargetStock)
	}
	return nil
}

func (c PriceCurveConfig) withDefaults() PriceCurveConfig {
	if c.MinPrice == 0 {
		c.MinPrice = DefaultMinPrice
	}
	if c.MaxPrice == 0 {
		c.MaxPrice = DefaultMaxPrice
	}
	return c
}

// NextPrice computes the equilibrium price for the given stock level.
// Stock is floored at 1 so an empty warehouse cannot divide the curve to
// infinity. At stock == targetStock the result is exactly the base price,
// whatever the elasticity.
func NextPrice(stock int, cfg PriceCurveConfig) int {
	cfg = cfg.withDefaults()
	if stock < 1 {
		stock = 1
	}
	if stock == cfg.TargetStock {
		return clampPrice(cfg.BasePrice, cfg.MinPrice, cfg.MaxPrice)
	}
	eq := float64(cfg.BasePrice) * math.Pow(float64(cfg.TargetStock)/float64(stock), cfg.Elasticity)
	return clampPrice(int(math.Round(eq)), cfg.MinPrice, cfg.MaxPrice)
}

// SmoothPrice blends the old price toward a newly computed one. Alpha is
// clamped to [0, 1]: 0 keeps the old price, 1 adopts the new one in full.
func SmoothPrice(oldPrice, newPrice int, alpha float64) int {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return int(math.Round(float64(oldPrice)*(1-alpha) + float64(newPrice)*alpha))
}

func clampPrice(p, minPrice, maxPrice int) int {
	if p < minPrice {
		return minPrice
	}
	if p > maxPrice {
		return maxPrice
	}
	return p
}
