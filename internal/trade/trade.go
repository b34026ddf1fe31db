// Package trade validates and executes trade requests between towns, and
// tracks the per-(town, good) cooldowns that stop a trade from being
// reversed the moment it lands.
package trade

import (
	"errors"
	"fmt"

	"github.com/talgya/tradewinds/internal/game"
)

// Side says which way goods flow relative to the requesting (from) town.
type Side uint8

const (
	// Sell: the from-town sells to the to-town.
	Sell Side = iota
	// Buy: the from-town buys from the to-town.
	Buy
)

func (s Side) String() string {
	switch s {
	case Sell:
		return "sell"
	case Buy:
		return "buy"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Request is a proposed trade. UnitPrice 0 means "at the counterparty's
// listed price".
type Request struct {
	FromTown  string `json:"from_town"`
	ToTown    string `json:"to_town"`
	GoodID    string `json:"good_id"`
	Quantity  int    `json:"quantity"`
	Side      Side   `json:"side"`
	UnitPrice int    `json:"unit_price"`
}

// ValidatedTrade is a request that has executed, with the resolved town
// references from the post-trade state. It is the unit the pricing and
// cooldown systems consume.
type ValidatedTrade struct {
	Request   Request
	From, To  *game.Town
	UnitPrice int
}

// Delta records what one town gained or lost in a trade.
type Delta struct {
	GoodQty  int `json:"good_qty"`
	Treasury int `json:"treasury"`
}

// Result is the outcome of a successful Perform.
type Result struct {
	State     *game.State
	Trade     ValidatedTrade
	UnitPrice int
	FromDelta Delta
	ToDelta   Delta
}

// Validation errors, each distinct so callers can react per failure class.
var (
	ErrInvalidQuantity      = errors.New("trade quantity must be positive")
	ErrUnknownGood          = errors.New("unknown good")
	ErrUnknownTown          = errors.New("unknown town")
	ErrSameTown             = errors.New("trade needs two distinct towns")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInsufficientTreasury = errors.New("insufficient treasury")
)

// Perform validates a request against the current state and executes it
// copy-on-write: the seller loses goods and gains treasury, the buyer the
// inverse. The input state is never modified.
func Perform(state *game.State, req Request) (*Result, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, req.Quantity)
	}
	if _, ok := state.Goods[req.GoodID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGood, req.GoodID)
	}
	if req.FromTown == req.ToTown {
		return nil, fmt.Errorf("%w: %s", ErrSameTown, req.FromTown)
	}
	from := state.TownByID(req.FromTown)
	if from == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTown, req.FromTown)
	}
	to := state.TownByID(req.ToTown)
	if to == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTown, req.ToTown)
	}

	seller, buyer := from, to
	if req.Side == Buy {
		seller, buyer = to, from
	}

	price := req.UnitPrice
	if price <= 0 {
		price = to.Prices[req.GoodID]
	}

	if seller.Resources[req.GoodID] < req.Quantity {
		return nil, fmt.Errorf("%w: %s has %d of %s, need %d",
			ErrInsufficientStock, seller.ID, seller.Resources[req.GoodID], req.GoodID, req.Quantity)
	}
	cost := req.Quantity * price
	if buyer.Treasury < cost {
		return nil, fmt.Errorf("%w: %s has %d, need %d",
			ErrInsufficientTreasury, buyer.ID, buyer.Treasury, cost)
	}

	newSeller := seller.
		WithResource(req.GoodID, seller.Resources[req.GoodID]-req.Quantity).
		WithTreasury(seller.Treasury + cost)
	newBuyer := buyer.
		WithResource(req.GoodID, buyer.Resources[req.GoodID]+req.Quantity).
		WithTreasury(buyer.Treasury - cost)

	next := state.WithTown(newSeller).WithTown(newBuyer)

	sellerDelta := Delta{GoodQty: -req.Quantity, Treasury: cost}
	buyerDelta := Delta{GoodQty: req.Quantity, Treasury: -cost}
	fromDelta, toDelta := sellerDelta, buyerDelta
	if req.Side == Buy {
		fromDelta, toDelta = buyerDelta, sellerDelta
	}

	return &Result{
		State: next,
		Trade: ValidatedTrade{
			Request:   req,
			From:      next.TownByID(req.FromTown),
			To:        next.TownByID(req.ToTown),
			UnitPrice: price,
		},
		UnitPrice: price,
		FromDelta: fromDelta,
		ToDelta:   toDelta,
	}, nil
}
