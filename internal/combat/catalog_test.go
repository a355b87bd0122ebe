package combat

import (
	"errors"
	"testing"

	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

func TestIsUnlockedMatchesLeague(t *testing.T) {
	for _, a := range DefaultCatalog().Actions() {
		for league := 0; league <= 4; league++ {
			if got, want := IsUnlocked(a, league), league >= a.League; got != want {
				t.Fatalf("IsUnlocked(%s, %d) got=%v want=%v", a.Name, league, got, want)
			}
		}
	}
}

func TestCatalogOrderIsStable(t *testing.T) {
	want := []string{"BREAK", "WALK", "RETREAT", "LUNGE", "PARRY", "DOUBLE_WALK", "DOUBLE_RETREAT",
		"FLECHE", "RIPOSTE", "STIMULANT", "ADRENALINE", "DETOX"}
	for round := 0; round < 3; round++ {
		got := DefaultCatalog().Actions()
		if len(got) != len(want) {
			t.Fatalf("catalog size got=%d want=%d", len(got), len(want))
		}
		for i := range want {
			if got[i].Name != want[i] {
				t.Fatalf("position %d got=%s want=%s", i, got[i].Name, want[i])
			}
		}
	}
}

func TestCatalogIsReadOnly(t *testing.T) {
	list := DefaultCatalog().Actions()
	list[0].Energy = 99
	a, err := DefaultCatalog().Lookup("BREAK")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if a.Energy == 99 {
		t.Fatalf("mutating Actions() leaked into the catalog")
	}
}

func TestLookupAndParse(t *testing.T) {
	c := DefaultCatalog()
	a, err := c.Lookup("lunge")
	if err != nil || a.Name != "LUNGE" || a.EnergyTransfer != 5 {
		t.Fatalf("Lookup(lunge) got=%+v err=%v", a, err)
	}
	a, err = c.Parse(" 4 ")
	if err != nil || a.Name != "PARRY" {
		t.Fatalf("Parse(4) got=%+v err=%v", a, err)
	}
	for _, bad := range []string{"", "SLAP", "42", "-1"} {
		if _, err := c.Parse(bad); !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("Parse(%q) expected ErrUnknownAction, got %v", bad, err)
		}
	}
}

func TestUnlockedGrowsWithLeague(t *testing.T) {
	c := DefaultCatalog()
	prev := 0
	for league := 0; league <= 2; league++ {
		n := len(c.Unlocked(league))
		if n <= prev {
			t.Fatalf("league %d unlocks %d actions, previous league %d", league, n, prev)
		}
		prev = n
	}
	if prev != c.Len() {
		t.Fatalf("top league should unlock everything, got %d of %d", prev, c.Len())
	}
}

func TestEngages(t *testing.T) {
	exact := ActionType{Distance: 3}
	reach := ActionType{Distance: -3}
	none := ActionType{}
	for gap := 0; gap <= 5; gap++ {
		if got := exact.Engages(gap); got != (gap == 3) {
			t.Fatalf("exact gap %d got=%v", gap, got)
		}
		if got := reach.Engages(gap); got != (gap <= 3) {
			t.Fatalf("reach gap %d got=%v", gap, got)
		}
		if none.Engages(gap) {
			t.Fatalf("distance 0 engaged at gap %d", gap)
		}
	}
}

func TestNewCatalogFromConfig(t *testing.T) {
	c, err := NewCatalog(&config.ActionsConfig{Actions: []config.ActionDef{
		{Name: "step", Code: 1, Kind: "move", Energy: -1, Move: 1},
		{Name: "stab", Code: 2, Kind: "attack", League: 1, Energy: -2, EnergyTransfer: 4, Distance: 2},
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	a, err := c.Lookup("STAB")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if a.Kind != KindAttack || a.League != 1 || !a.Offensive() {
		t.Fatalf("stab decoded wrong: %+v", a)
	}

	if c, err := NewCatalog(nil); err != nil || c != DefaultCatalog() {
		t.Fatalf("nil config should give the default catalog")
	}
}

func TestNewCatalogRejectsBadTables(t *testing.T) {
	cases := map[string][]ActionType{
		"duplicate name": {{Name: "A", Code: 1}, {Name: "a", Code: 2}},
		"duplicate code": {{Name: "A", Code: 1}, {Name: "B", Code: 1}},
		"empty name":     {{Name: "", Code: 1}},
		"league":         {{Name: "A", League: -1}},
		"transfer":       {{Name: "A", EnergyTransfer: -1}},
	}
	for name, actions := range cases {
		if _, err := NewCatalogOf(actions...); !errors.Is(err, ErrCatalog) {
			t.Fatalf("%s: expected ErrCatalog, got %v", name, err)
		}
	}
	_, err := NewCatalog(&config.ActionsConfig{Actions: []config.ActionDef{{Name: "X", Kind: "juggle"}}})
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("unknown kind: expected ErrCatalog, got %v", err)
	}
}
