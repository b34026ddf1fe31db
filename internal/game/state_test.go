package game

import (
	"reflect"
	"testing"
)

func baseState() *State {
	return &State{
		Turn: 2, Version: 1, Seed: "state-test",
		Goods: map[string]GoodConfig{
			"salt": {ID: "salt"},
			"iron": {ID: "iron"},
		},
		Towns: []*Town{
			{ID: "aldham", Resources: map[string]int{"iron": 5, "salt": 1}, Prices: map[string]int{"iron": 10, "salt": 12}, Treasury: 50},
			{ID: "bexley", Resources: map[string]int{"iron": 3, "salt": 0}, Prices: map[string]int{"iron": 11, "salt": 9}, Treasury: 40},
		},
	}
}

func TestTownByID(t *testing.T) {
	s := baseState()
	if got := s.TownByID("bexley"); got == nil || got.ID != "bexley" {
		t.Errorf("TownByID(bexley) = %v", got)
	}
	if got := s.TownByID("nowhere"); got != nil {
		t.Errorf("TownByID(nowhere) = %v, want nil", got)
	}
}

func TestWithTurnSharesStructure(t *testing.T) {
	s := baseState()
	next := s.WithTurn(3)
	if next.Turn != 3 || s.Turn != 2 {
		t.Errorf("turns: next %d, original %d", next.Turn, s.Turn)
	}
	if next.TownByID("aldham") != s.TownByID("aldham") {
		t.Error("WithTurn copied town pointers")
	}
}

func TestWithTownCopyOnWrite(t *testing.T) {
	s := baseState()
	updated := s.TownByID("aldham").WithTreasury(99)
	next := s.WithTown(updated)

	if next == s {
		t.Fatal("WithTown returned the receiver for a known id")
	}
	if next.TownByID("aldham").Treasury != 99 {
		t.Error("replacement not applied")
	}
	if s.TownByID("aldham").Treasury != 50 {
		t.Error("original state mutated")
	}
	if next.TownByID("bexley") != s.TownByID("bexley") {
		t.Error("untouched town was copied")
	}
}

func TestWithTownUnknownID(t *testing.T) {
	s := baseState()
	if next := s.WithTown(&Town{ID: "nowhere"}); next != s {
		t.Fatal("unknown id should return the receiver unchanged")
	}
}

func TestTownUpdateHelpersShareMaps(t *testing.T) {
	town := baseState().TownByID("aldham")

	withRes := town.WithResource("iron", 7)
	if withRes.Resources["iron"] != 7 || town.Resources["iron"] != 5 {
		t.Error("WithResource leaked into the original")
	}
	if !sameMap(withRes.Prices, town.Prices) {
		t.Error("WithResource should share the prices map")
	}

	withPrice := town.WithPrice("iron", 20)
	if withPrice.Prices["iron"] != 20 || town.Prices["iron"] != 10 {
		t.Error("WithPrice leaked into the original")
	}
	if !sameMap(withPrice.Resources, town.Resources) {
		t.Error("WithPrice should share the resources map")
	}

	withTreasury := town.WithTreasury(1)
	if !sameMap(withTreasury.Resources, town.Resources) || !sameMap(withTreasury.Prices, town.Prices) {
		t.Error("WithTreasury should share both maps")
	}
}

func TestCloneIsDeep(t *testing.T) {
	town := baseState().TownByID("aldham")
	clone := town.Clone()
	clone.Resources["iron"] = 999
	clone.Prices["iron"] = 999
	if town.Resources["iron"] != 5 || town.Prices["iron"] != 10 {
		t.Fatal("Clone shares maps with the original")
	}
}

func TestGoodIDsSorted(t *testing.T) {
	got := baseState().GoodIDs()
	want := []string{"iron", "salt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GoodIDs() = %v, want %v", got, want)
	}
}

// sameMap reports whether two maps are the same map object, via a write
// probe on a throwaway key.
func sameMap(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	const probe = "__probe__"
	a[probe] = 1
	_, shared := b[probe]
	delete(a, probe)
	return shared
}
