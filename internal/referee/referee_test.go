package referee

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/marcgardent/fencing-codingame-private/internal/agent"
	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

func testRules() combat.Rules {
	return combat.Rules{
		Seed:        1,
		MaxTick:     50,
		WinScore:    2,
		HitChance:   100,
		StartEnergy: 20,
		MaxEnergy:   20,
		Piste:       combat.Piste{Length: 20, StartA: 7, StartB: 10},
	}
}

func testReferee() config.RefereeConfig {
	rc := config.Defaults().Referee
	rc.FirstTurnTimeoutMS = 200
	rc.TurnTimeoutMS = 200
	return rc
}

// stall ignores its context and answers only once released.
type stall struct{ release chan struct{} }

func (s *stall) Name() string { return "stall" }
func (s *stall) Act(context.Context, agent.Turn) (string, error) {
	<-s.release
	return "BREAK", nil
}

type broken struct{}

func (broken) Name() string                                    { return "broken" }
func (broken) Act(context.Context, agent.Turn) (string, error) { return "", errors.New("segfault") }

func run(t *testing.T, rules combat.Rules, rc config.RefereeConfig, a, b Agent) *Result {
	t.Helper()
	res, err := New(rules, rc, nil, a, b, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func TestScriptedBout(t *testing.T) {
	res := run(t, testRules(), testReferee(), agent.NewScript("a", "LUNGE"), agent.NewScript("b", "BREAK"))

	if res.Outcome != "win_a" || res.Winner != "A" {
		t.Fatalf("outcome got=%s winner=%s", res.Outcome, res.Winner)
	}
	if res.Touches != [2]int{2, 0} {
		t.Fatalf("touches got=%v", res.Touches)
	}
	if res.Points != [2]int{12, -2} {
		t.Fatalf("points got=%v want=[12 -2]", res.Points)
	}
	if res.Turns != 3 || res.Ticks != 1 {
		t.Fatalf("turns=%d ticks=%d want=3/1 (tick, restart, winning tick)", res.Turns, res.Ticks)
	}
	joined := strings.Join(res.Summary, "\n")
	for _, want := range []string{"a played LUNGE", "b played BREAK", "a: touché!", "a wins", "Final result: a(12), b(-2)"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("summary lacks %q:\n%s", want, joined)
		}
	}
	if res.Events[len(res.Events)-1].Type != combat.EvWin {
		t.Fatalf("last event got=%s want=Win", res.Events[len(res.Events)-1].Type)
	}
}

func TestBothAgentsFault(t *testing.T) {
	res := run(t, testRules(), testReferee(), agent.NewScript("a", "SLAP"), agent.NewScript("b", "FLECHE"))

	if res.Outcome != "forfeit" || res.Winner != "" {
		t.Fatalf("outcome got=%s winner=%q", res.Outcome, res.Winner)
	}
	if res.Points != [2]int{-20, -20} {
		t.Fatalf("points got=%v", res.Points)
	}
	if res.Faults != [2]string{"malformed", "illegal"} {
		t.Fatalf("faults got=%v", res.Faults)
	}
	if res.Ticks != 0 {
		t.Fatalf("a forfeit must not resolve a tick")
	}
	n := 0
	for _, ev := range res.Events {
		if ev.Type == combat.EvPlayerKO {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("ko events got=%d want=2", n)
	}
}

func TestTimeoutFault(t *testing.T) {
	rc := testReferee()
	rc.FirstTurnTimeoutMS = 20
	s := &stall{release: make(chan struct{})}
	t.Cleanup(func() { close(s.release) })

	res := run(t, testRules(), rc, s, agent.NewScript("b", "BREAK"))

	if res.Outcome != "win_b" || res.Faults[0] != "timeout" || res.Faults[1] != "" {
		t.Fatalf("outcome=%s faults=%v", res.Outcome, res.Faults)
	}
	if res.Points != [2]int{-20, 20} {
		t.Fatalf("points got=%v want=[-20 20]", res.Points)
	}
}

func TestAgentErrorIsMalformed(t *testing.T) {
	res := run(t, testRules(), testReferee(), agent.NewScript("a", "BREAK"), broken{})
	if res.Outcome != "win_a" || res.Faults[1] != "malformed" {
		t.Fatalf("outcome=%s faults=%v", res.Outcome, res.Faults)
	}
}

func TestRepliesByCodeWithTrailingText(t *testing.T) {
	rules := testRules()
	rules.WinScore = 1
	res := run(t, rules, testReferee(), agent.NewScript("a", "3 allez!"), agent.NewScript("b", "break"))
	if res.Outcome != "win_a" {
		t.Fatalf("outcome got=%s faults=%v", res.Outcome, res.Faults)
	}
}

func TestObserversSeeTheBout(t *testing.T) {
	r := New(testRules(), testReferee(), nil, agent.NewScript("a", "LUNGE"), agent.NewScript("b", "BREAK"), nil)
	var live []combat.Event
	r.OnEvent(func(ev combat.Event) { live = append(live, ev) })
	hits := &hitCounter{}
	r.Observe(hits)

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(live) != len(res.Events) {
		t.Fatalf("live feed got=%d events, result has %d", len(live), len(res.Events))
	}
	if hits.n != 2 {
		t.Fatalf("extra observer saw %d hits want=2", hits.n)
	}
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatalf("second Run should fail")
	}
}

type hitCounter struct {
	combat.NopObserver
	n int
}

func (h *hitCounter) Hit(_ *combat.PlayerState, ok bool) {
	if ok {
		h.n++
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testRules(), testReferee(), nil, agent.NewScript("a", "BREAK"), agent.NewScript("b", "BREAK"), nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResultEncoding(t *testing.T) {
	res := run(t, testRules(), testReferee(), agent.NewScript("a", "LUNGE"), agent.NewScript("b", "BREAK"))
	for _, format := range []string{FormatJSON, FormatMsgpack} {
		var buf bytes.Buffer
		if err := res.Encode(&buf, format); err != nil {
			t.Fatalf("Encode(%s): %v", format, err)
		}
		back, err := Decode(&buf, format)
		if err != nil {
			t.Fatalf("Decode(%s): %v", format, err)
		}
		if back.Outcome != res.Outcome || back.Points != res.Points || len(back.Events) != len(res.Events) {
			t.Fatalf("%s lost data: %+v", format, back)
		}
	}
	if err := res.Encode(&bytes.Buffer{}, "xml"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestFaultError(t *testing.T) {
	f := &Fault{Kind: FaultTimeout, Side: combat.SideB, Agent: "bot", Err: context.DeadlineExceeded}
	if !errors.Is(f, ErrFault) || !errors.Is(f, context.DeadlineExceeded) {
		t.Fatalf("fault must match ErrFault and its cause")
	}
	if f.Reason() != "bot timeout!" {
		t.Fatalf("reason got=%q", f.Reason())
	}
}
