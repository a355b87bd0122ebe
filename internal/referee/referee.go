// Package referee runs a bout between two agents: it asks for actions under
// a deadline, feeds them to the engine, handles restarts and forfeits, and
// scores the result.
package referee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/agent"
	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

var sides = [2]combat.Side{combat.SideA, combat.SideB}

// Agent is anything that answers a turn with an action name or code.
type Agent = agent.Agent

// Referee drives one match. It is also an observer of its own engine and
// keeps the human summary of the bout.
type Referee struct {
	combat.NopObserver

	rules  combat.Rules
	cfg    config.RefereeConfig
	cat    *combat.Catalog
	agents [2]Agent
	log    *zap.Logger

	observers []combat.MatchObserver
	onEvent   func(combat.Event)

	engine  *combat.MatchEngine
	rec     *combat.Recorder
	summary []string
	faults  [2]*Fault
	turns   int
}

func New(rules combat.Rules, cfg config.RefereeConfig, cat *combat.Catalog, a, b Agent, log *zap.Logger) *Referee {
	if cat == nil {
		cat = combat.DefaultCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Referee{
		rules:  rules,
		cfg:    cfg,
		cat:    cat,
		agents: [2]Agent{a, b},
		log:    log.With(zap.Int64("seed", rules.Seed)),
	}
}

// Observe adds observers notified after the recorder and the referee.
// Call before Run.
func (r *Referee) Observe(obs ...combat.MatchObserver) { r.observers = append(r.observers, obs...) }

// OnEvent sees every recorded event as it happens. Call before Run.
func (r *Referee) OnEvent(fn func(combat.Event)) { r.onEvent = fn }

func (r *Referee) state() *combat.MatchState { return r.engine.State() }

// Run plays the bout to its end. The returned error is only about the
// harness (ctx cancelled, engine misuse); agent faults end the bout and are
// reported in the Result.
func (r *Referee) Run(ctx context.Context) (*Result, error) {
	if r.engine != nil {
		return nil, errors.New("referee: Run called twice")
	}
	r.rec = combat.NewRecorder(r.state)
	r.rec.Emit = r.onEvent
	obs := combat.Observers{r.rec, r}
	r.engine = combat.NewMatchEngine(r.rules, append(obs, r.observers...))
	r.log.Info("match start",
		zap.String("a", r.agents[combat.SideA].Name()),
		zap.String("b", r.agents[combat.SideB].Name()),
		zap.Int("league", r.rules.League))

	for !r.state().Over() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.turns++
		if r.state().Restart {
			if _, err := r.engine.Restart(); err != nil {
				return nil, err
			}
			r.log.Debug("restart", zap.Int("tick", r.state().Tick))
			continue
		}

		var acts [2]combat.ActionType
		var reasons [2]string
		for _, side := range sides {
			a, err := r.ask(ctx, side)
			var f *Fault
			switch {
			case errors.As(err, &f):
				r.faults[side] = f
				reasons[side] = f.Reason()
				r.log.Warn("agent fault", zap.String("side", side.String()), zap.Error(f))
			case err != nil:
				return nil, err
			default:
				acts[side] = a
				r.summaryf("%s played %s", r.agents[side].Name(), a.Name)
			}
		}
		if reasons != [2]string{} {
			if err := r.engine.Forfeit(reasons); err != nil {
				return nil, err
			}
			break
		}
		if _, err := r.engine.Tick(acts[combat.SideA], acts[combat.SideB]); err != nil {
			return nil, err
		}
	}

	res := r.result()
	r.log.Info("match over",
		zap.String("outcome", res.Outcome),
		zap.String("reason", res.Reason),
		zap.Ints("points", res.Points[:]),
		zap.Int("ticks", res.Ticks))
	return res, nil
}

func (r *Referee) timeout() time.Duration {
	ms := r.cfg.TurnTimeoutMS
	if r.state().Tick == 0 && r.cfg.FirstTurnTimeoutMS > 0 {
		ms = r.cfg.FirstTurnTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

type reply struct {
	text string
	err  error
}

// ask gets one action from one agent. The deadline is enforced here, so an
// agent that ignores its context still times out.
func (r *Referee) ask(ctx context.Context, side combat.Side) (combat.ActionType, error) {
	ag := r.agents[side]
	turn := agent.NewTurn(r.state(), side, r.rules)
	fault := func(kind FaultKind, err error) (combat.ActionType, error) {
		return combat.ActionType{}, &Fault{Kind: kind, Side: side, Agent: ag.Name(), Err: err}
	}

	tctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()
	ch := make(chan reply, 1)
	go func() {
		text, err := ag.Act(tctx, turn)
		ch <- reply{text, err}
	}()

	var rep reply
	select {
	case rep = <-ch:
	case <-tctx.Done():
		rep.err = tctx.Err()
	}
	switch {
	case rep.err == nil:
	case ctx.Err() != nil:
		return combat.ActionType{}, ctx.Err()
	case errors.Is(rep.err, context.DeadlineExceeded), errors.Is(rep.err, agent.ErrExited):
		return fault(FaultTimeout, rep.err)
	default:
		return fault(FaultMalformed, rep.err)
	}

	a, err := r.cat.Parse(agent.CleanReply(rep.text))
	if err != nil {
		return fault(FaultMalformed, err)
	}
	if !combat.IsUnlocked(a, r.rules.League) {
		return fault(FaultIllegal, fmt.Errorf("%s unlocks in league %d", a.Name, a.League+1))
	}
	return a, nil
}

func (r *Referee) summaryf(format string, args ...any) {
	r.summary = append(r.summary, fmt.Sprintf(format, args...))
}

func (r *Referee) nameOf(p *combat.PlayerState) string {
	if side, ok := r.state().SideOf(p); ok {
		return r.agents[side].Name()
	}
	return "?"
}

func (r *Referee) Hit(p *combat.PlayerState, succeeded bool) {
	if succeeded {
		r.summaryf("%s: touché!", r.nameOf(p))
	}
}

func (r *Referee) Defended(p *combat.PlayerState, succeeded bool) {
	if succeeded {
		r.summaryf("%s: Parry!", r.nameOf(p))
	}
}

func (r *Referee) Outside(p *combat.PlayerState) {
	r.summaryf("%s: off-site!", r.nameOf(p))
}

func (r *Referee) PlayerKO(p *combat.PlayerState) {
	r.summaryf("%s is out", r.nameOf(p))
}

func (r *Referee) Scored(team *combat.TeamState) {
	s := r.state()
	r.summaryf("%s scores, %d-%d", r.nameOf(team.Player), s.TeamA.Score, s.TeamB.Score)
}

func (r *Referee) ScoredBoth() {
	s := r.state()
	r.summaryf("double touch, %d-%d", s.TeamA.Score, s.TeamB.Score)
}

func (r *Referee) WinTheGame(winner, _ *combat.TeamState) {
	r.summaryf("%s wins (%s)", r.nameOf(winner.Player), r.state().Reason)
}

func (r *Referee) Draw() { r.summaryf("Draw!") }
