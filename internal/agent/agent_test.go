package agent

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

func TestTurnWireFormat(t *testing.T) {
	turn := Turn{Me: Fencer{Position: 7, Energy: 18, Doping: 1, Score: 2}, You: Fencer{Position: 10, Energy: 20, Score: 3}}
	var buf bytes.Buffer
	if err := WriteTurn(&buf, turn); err != nil {
		t.Fatalf("WriteTurn: %v", err)
	}
	if got, want := buf.String(), "7 18 1 2\n10 20 0 3\n"; got != want {
		t.Fatalf("wire got=%q want=%q", got, want)
	}
	back, err := ReadTurn(bufio.NewScanner(&buf))
	if err != nil {
		t.Fatalf("ReadTurn: %v", err)
	}
	if back != turn {
		t.Fatalf("ReadTurn got=%+v want=%+v", back, turn)
	}
}

func TestReadTurnErrors(t *testing.T) {
	cases := map[string]string{
		"short line":  "1 2 3\n4 5 6 7\n",
		"not numbers": "a b c d\n4 5 6 7\n",
	}
	for name, in := range cases {
		if _, err := ReadTurn(bufio.NewScanner(strings.NewReader(in))); !errors.Is(err, ErrProtocol) {
			t.Fatalf("%s: expected ErrProtocol, got %v", name, err)
		}
	}
	if _, err := ReadTurn(bufio.NewScanner(strings.NewReader("1 2 3 4\n"))); err != io.EOF {
		t.Fatalf("truncated turn: expected EOF, got %v", err)
	}
}

func TestCleanReply(t *testing.T) {
	for in, want := range map[string]string{
		"LUNGE":          "LUNGE",
		"  lunge  ":      "lunge",
		"3 going for it": "3",
		"":               "",
		"\t\n":           "",
	} {
		if got := CleanReply(in); got != want {
			t.Fatalf("CleanReply(%q) got=%q want=%q", in, got, want)
		}
	}
}

func TestNewTurnPerspective(t *testing.T) {
	r, err := combat.NewRules(nil)
	if err != nil {
		t.Fatalf("NewRules: %v", err)
	}
	m := combat.NewMatchEngine(r, nil)
	s := m.State()

	a := NewTurn(s, combat.SideA, r)
	b := NewTurn(s, combat.SideB, r)
	if a.Me != b.You || a.You != b.Me {
		t.Fatalf("views are not mirrored: %+v / %+v", a, b)
	}
	if a.Gap() != b.Gap() || a.Gap() != s.Gap() {
		t.Fatalf("gap got=%d/%d want=%d", a.Gap(), b.Gap(), s.Gap())
	}
	if a.Backward() != -1 || b.Backward() != 1 {
		t.Fatalf("backward got=%d/%d want=-1/1", a.Backward(), b.Backward())
	}
	if a.Length != r.Piste.Length || a.League != r.League {
		t.Fatalf("rules not carried: %+v", a)
	}
}

func TestScriptRepeatsLast(t *testing.T) {
	s := NewScript("s", "WALK", "LUNGE")
	var got []string
	for i := 0; i < 4; i++ {
		m, err := s.Act(context.Background(), Turn{})
		if err != nil {
			t.Fatalf("Act: %v", err)
		}
		got = append(got, m)
	}
	if strings.Join(got, ",") != "WALK,LUNGE,LUNGE,LUNGE" {
		t.Fatalf("script got=%v", got)
	}
	if _, err := NewScript("empty").Act(context.Background(), Turn{}); !errors.Is(err, ErrNoAction) {
		t.Fatalf("empty script: %v", err)
	}
}

func TestRandomIsSeededAndLegal(t *testing.T) {
	cat := combat.DefaultCatalog()
	a, b := NewRandom("a", 42, cat), NewRandom("b", 42, cat)
	for i := 0; i < 50; i++ {
		x, _ := a.Act(context.Background(), Turn{League: 0})
		y, _ := b.Act(context.Background(), Turn{League: 0})
		if x != y {
			t.Fatalf("draw %d diverged: %s vs %s", i, x, y)
		}
		act, err := cat.Lookup(x)
		if err != nil || !combat.IsUnlocked(act, 0) {
			t.Fatalf("random picked %s outside league 0", x)
		}
	}
}
