package engine

import "github.com/talgya/tradewinds/internal/trade"

// ActionKind tags a queued player action.
type ActionKind uint8

const (
	// ActionNone is the synthesized action for an empty queue: the player
	// passes the turn.
	ActionNone ActionKind = iota
	// ActionTrade carries a trade request.
	ActionTrade
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionTrade:
		return "trade"
	default:
		return "unknown"
	}
}

// Action is one queued player intent.
type Action struct {
	Kind  ActionKind
	Trade *trade.Request
}

// ActionQueue is the externally-owned player intent queue. It is drained
// by exactly one controller; there is no locking because the turn model
// is single-threaded.
type ActionQueue struct {
	items []Action
}

// NewActionQueue returns an empty queue.
func NewActionQueue() *ActionQueue {
	return &ActionQueue{}
}

// Enqueue appends an action.
func (q *ActionQueue) Enqueue(a Action) {
	q.items = append(q.items, a)
}

// EnqueueTrade appends a trade action.
func (q *ActionQueue) EnqueueTrade(req trade.Request) {
	q.Enqueue(Action{Kind: ActionTrade, Trade: &req})
}

// Dequeue pops the oldest action, synthesizing a none action when the
// queue is empty.
func (q *ActionQueue) Dequeue() Action {
	if len(q.items) == 0 {
		return Action{Kind: ActionNone}
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a
}

// Len returns the number of queued actions.
func (q *ActionQueue) Len() int {
	return len(q.items)
}
