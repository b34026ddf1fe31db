package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/tradewinds/internal/ai"
	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/game"
	"github.com/talgya/tradewinds/internal/trade"
)

// Observer receives (phase, detail) after each completed phase, for
// telemetry and replay. It must not mutate the state it is handed; a
// panic or side effect inside it is indistinguishable from a phase
// failure. A nil observer changes nothing.
type Observer func(phase Phase, detail any)

// Config holds the controller's static wiring.
type Config struct {
	// PlayerTownID designates the one town the AI pass skips.
	PlayerTownID string
	// Profiles maps profile id -> AI profile.
	Profiles map[string]ai.Profile
	// DefaultProfileID is used for towns without a profile of their own.
	// Empty falls back to ai.DefaultProfileID.
	DefaultProfileID string
	// PriceModel is the trade-reactive pricing applied after every
	// executed trade.
	PriceModel economy.LinearModel
	// CooldownInterval is how many turns a traded (town, good) pair stays
	// blocked. Values below 1 take trade.DefaultCooldownInterval.
	CooldownInterval int
}

// Controller runs the turn state machine over its injected collaborators:
// the single-writer action queue, the append-only update pipeline, and
// the cooldown table. RunTurn itself is referentially transparent given
// those collaborators — it never touches ambient state.
type Controller struct {
	queue     *ActionQueue
	pipeline  *Pipeline
	cooldowns *trade.CooldownTable
	decider   *ai.Engine
	cfg       Config
	observer  Observer
}

// NewController wires a controller. Nil collaborators get fresh empty
// ones; a nil profile table gets the default profile.
func NewController(queue *ActionQueue, pipeline *Pipeline, cooldowns *trade.CooldownTable, cfg Config) *Controller {
	if queue == nil {
		queue = NewActionQueue()
	}
	if pipeline == nil {
		pipeline = NewPipeline()
	}
	if cooldowns == nil {
		cooldowns = trade.NewCooldownTable()
	}
	if cfg.DefaultProfileID == "" {
		cfg.DefaultProfileID = ai.DefaultProfileID
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]ai.Profile{ai.DefaultProfileID: ai.DefaultProfile()}
	}
	return &Controller{
		queue:     queue,
		pipeline:  pipeline,
		cooldowns: cooldowns,
		decider:   ai.NewEngine(cooldowns),
		cfg:       cfg,
	}
}

// SetObserver installs the phase observer.
func (c *Controller) SetObserver(fn Observer) {
	c.observer = fn
}

// TurnResult is the output of a successful turn: the new state and the
// ordered log of phases that executed.
type TurnResult struct {
	State  *game.State
	Phases []Phase
}

// TurnOutcome is the async delivery envelope for RunTurnAsync.
type TurnOutcome struct {
	Result *TurnResult
	Err    error
}

// RunTurn advances the state by exactly one turn. On any phase failure it
// returns a single *PhaseError naming the phase and wrapping the cause;
// the input state is never mutated, so the caller can retry or discard.
func (c *Controller) RunTurn(state *game.State) (*TurnResult, error) {
	steps := []struct {
		phase Phase
		fn    func(*game.State) (*game.State, any, error)
	}{
		{PhaseStart, c.phaseStart},
		{PhasePlayerAction, c.phasePlayerAction},
		{PhaseAiActions, c.phaseAiActions},
		{PhaseUpdateStats, c.phaseUpdateStats},
		{PhaseEnd, c.phaseEnd},
	}

	completed := make([]Phase, 0, len(steps))
	cur := state
	for _, step := range steps {
		next, detail, err := step.fn(cur)
		if err != nil {
			return nil, &PhaseError{Phase: step.phase, Completed: completed, Err: err}
		}
		cur = next
		completed = append(completed, step.phase)
		if c.observer != nil {
			c.observer(step.phase, detail)
		}
	}
	return &TurnResult{State: cur, Phases: completed}, nil
}

// RunTurnAsync runs the turn on a fresh goroutine and delivers the outcome
// on a buffered channel, so a host UI can schedule turns without blocking
// its own loop. The turn itself stays single-threaded.
func (c *Controller) RunTurnAsync(state *game.State) <-chan TurnOutcome {
	ch := make(chan TurnOutcome, 1)
	go func() {
		result, err := c.RunTurn(state)
		ch <- TurnOutcome{Result: result, Err: err}
		close(ch)
	}()
	return ch
}

// phaseStart increments the turn counter. Nothing else.
func (c *Controller) phaseStart(state *game.State) (*game.State, any, error) {
	next := state.WithTurn(state.Turn + 1)
	return next, next.Turn, nil
}

// phasePlayerAction dequeues exactly one action (a synthesized none when
// the queue is empty) and, for a trade, validates it against cooldowns and
// executes it with post-trade pricing.
func (c *Controller) phasePlayerAction(state *game.State) (*game.State, any, error) {
	action := c.queue.Dequeue()
	if action.Kind != ActionTrade || action.Trade == nil {
		return state, action, nil
	}

	req := *action.Trade
	if c.cooldowns.ShouldSkip(trade.Key(req.FromTown, req.GoodID), state.Turn) ||
		c.cooldowns.ShouldSkip(trade.Key(req.ToTown, req.GoodID), state.Turn) {
		return nil, nil, fmt.Errorf("%w: %s/%s %s", trade.ErrCooldownActive, req.FromTown, req.ToTown, req.GoodID)
	}

	next, err := c.executeTrade(state, req)
	if err != nil {
		return nil, nil, err
	}
	return next, action, nil
}

// phaseAiActions runs every AI town strictly sequentially, in state-array
// order, so later towns observe the price and resource changes made by
// earlier ones. A town with an unknown profile is skipped with a warning;
// that is a soft condition, never a phase failure.
func (c *Controller) phaseAiActions(state *game.State) (*game.State, any, error) {
	townIDs := make([]string, 0, len(state.Towns))
	for _, t := range state.Towns {
		if t.ID != c.cfg.PlayerTownID {
			townIDs = append(townIDs, t.ID)
		}
	}

	var decisions []ai.Decision
	cur := state
	for _, id := range townIDs {
		town := cur.TownByID(id)

		profileID := town.ProfileID
		if profileID == "" {
			profileID = c.cfg.DefaultProfileID
		}
		profile, ok := c.cfg.Profiles[profileID]
		if !ok {
			slog.Warn("ai profile not found, skipping town", "town", id, "profile", profileID)
			decisions = append(decisions, ai.Skip(id, ai.ReasonNoProfile))
			continue
		}

		maxTrades := profile.MaxTradesPerTurn
		if maxTrades < 1 {
			maxTrades = 1
		}
		for executed := 0; executed < maxTrades; executed++ {
			decision := c.decider.Decide(cur, town, profile)
			decisions = append(decisions, decision)
			if decision.Skipped || decision.Request == nil {
				break
			}
			next, err := c.executeTrade(cur, *decision.Request)
			if err != nil {
				return nil, nil, fmt.Errorf("ai trade for %s: %w", id, err)
			}
			cur = next
			town = cur.TownByID(id)
		}
	}
	return cur, decisions, nil
}

// phaseUpdateStats runs the update pipeline.
func (c *Controller) phaseUpdateStats(state *game.State) (*game.State, any, error) {
	next, err := c.pipeline.Run(state)
	if err != nil {
		return nil, nil, err
	}
	return next, nil, nil
}

// phaseEnd is observer-only: it reports the final turn number and sweeps
// expired cooldown entries. State passes through unchanged.
func (c *Controller) phaseEnd(state *game.State) (*game.State, any, error) {
	c.cooldowns.ClearExpired(state.Turn)
	return state, state.Turn, nil
}

// executeTrade performs a validated trade, applies the linear post-trade
// pricing to both towns, and marks both cooldown keys.
func (c *Controller) executeTrade(state *game.State, req trade.Request) (*game.State, error) {
	result, err := trade.Perform(state, req)
	if err != nil {
		return nil, err
	}
	next, err := economy.ApplyPostTradePricing(result.State, result.Trade, c.cfg.PriceModel)
	if err != nil {
		return nil, err
	}
	c.cooldowns.MarkTrade(req.FromTown, req.ToTown, req.GoodID, state.Turn, c.cfg.CooldownInterval)
	return next, nil
}
