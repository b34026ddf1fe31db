package engine

import (
	"errors"
	"testing"

	"github.com/talgya/tradewinds/internal/game"
	"github.com/talgya/tradewinds/internal/trade"
)

func TestPipelineZeroSystemsPassthrough(t *testing.T) {
	state := &game.State{Turn: 1, Version: 1, Seed: "pipeline-test"}
	next, err := NewPipeline().Run(state)
	if err != nil {
		t.Fatal(err)
	}
	if next != state {
		t.Fatal("empty pipeline should return the input reference")
	}
}

func TestPipelineRunsInRegistrationOrder(t *testing.T) {
	var order []string
	p := NewPipeline()
	p.Register(func(s *game.State) (*game.State, error) {
		order = append(order, "first")
		return s.WithTurn(s.Turn + 10), nil
	})
	p.Register(func(s *game.State) (*game.State, error) {
		order = append(order, "second")
		return s.WithTurn(s.Turn * 2), nil
	})

	next, err := p.Run(&game.State{Turn: 1, Version: 1, Seed: "pipeline-test"})
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("execution order = %v", order)
	}
	// (1 + 10) * 2, not 1*2 + 10: the fold is left to right.
	if next.Turn != 22 {
		t.Errorf("turn = %d, want 22", next.Turn)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPipelineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	ran := false
	p := NewPipeline()
	p.Register(func(s *game.State) (*game.State, error) { return nil, boom })
	p.Register(func(s *game.State) (*game.State, error) { ran = true; return s, nil })

	if _, err := p.Run(&game.State{Turn: 1, Version: 1, Seed: "pipeline-test"}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if ran {
		t.Fatal("system after the failure still ran")
	}
}

func TestActionQueueFIFO(t *testing.T) {
	q := NewActionQueue()
	if got := q.Dequeue(); got.Kind != ActionNone {
		t.Fatalf("empty dequeue = %v, want a synthesized none action", got.Kind)
	}

	q.EnqueueTrade(trade.Request{GoodID: "iron"})
	q.EnqueueTrade(trade.Request{GoodID: "salt"})
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}

	first := q.Dequeue()
	second := q.Dequeue()
	if first.Kind != ActionTrade || first.Trade.GoodID != "iron" {
		t.Errorf("first = %+v, want the iron trade", first)
	}
	if second.Trade.GoodID != "salt" {
		t.Errorf("second = %+v, want the salt trade", second)
	}
	if q.Dequeue().Kind != ActionNone {
		t.Error("drained queue should synthesize none actions")
	}
}

func TestPhaseStrings(t *testing.T) {
	want := []string{"Start", "PlayerAction", "AiActions", "UpdateStats", "End"}
	for i, p := range AllPhases() {
		if p.String() != want[i] {
			t.Errorf("phase %d = %q, want %q", i, p, want[i])
		}
	}
}
