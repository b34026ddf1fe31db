package engine

import "github.com/talgya/tradewinds/internal/game"

// System is one state-to-state update applied during the UpdateStats
// phase. Systems must be copy-on-write like everything else in the core.
type System func(*game.State) (*game.State, error)

// Pipeline is an ordered list of systems. Registration order is
// application order; the pipeline enforces no semantics beyond FIFO, so
// callers register stats decay before pricing drift if that ordering
// matters to balance.
type Pipeline struct {
	systems []System
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Register appends a system.
func (p *Pipeline) Register(s System) {
	p.systems = append(p.systems, s)
}

// Len returns the number of registered systems.
func (p *Pipeline) Len() int {
	return len(p.systems)
}

// Run folds every registered system over the input in registration order.
// With zero systems the input reference is returned untouched.
func (p *Pipeline) Run(state *game.State) (*game.State, error) {
	cur := state
	for _, sys := range p.systems {
		next, err := sys(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
