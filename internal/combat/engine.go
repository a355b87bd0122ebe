package combat

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/marcgardent/fencing-codingame-private/internal/util"
)

var (
	ErrInvalidState   = errors.New("invalid match state")
	ErrMatchOver      = fmt.Errorf("%w: match is over", ErrInvalidState)
	ErrRestartPending = fmt.Errorf("%w: restart pending", ErrInvalidState)
	ErrLockedAction   = fmt.Errorf("%w: action locked in this league", ErrInvalidState)
)

// MatchEngine resolves one bout. It is not safe for concurrent use: a host
// running several matches gives each its own engine.
type MatchEngine struct {
	rules Rules
	obs   MatchObserver
	rng   *rand.Rand
	state *MatchState
}

func NewMatchEngine(rules Rules, obs MatchObserver) *MatchEngine {
	if obs == nil {
		obs = NopObserver{}
	}
	return &MatchEngine{
		rules: rules,
		obs:   obs,
		rng:   util.New(rules.Seed),
		state: newMatchState(rules, nil),
	}
}

func (m *MatchEngine) Rules() Rules       { return m.rules }
func (m *MatchEngine) State() *MatchState { return m.state }

// Restart swaps in a fresh MatchState, carrying touches, tick and doping.
func (m *MatchEngine) Restart() (*MatchState, error) {
	if m.state.Over() {
		return m.state, ErrMatchOver
	}
	m.state = newMatchState(m.rules, m.state)
	return m.state, nil
}

// Tick resolves both actions simultaneously against the state at the start
// of the tick. Phases run in a fixed order: movement, engagement and
// combat, energy and doping, then terminal checks.
func (m *MatchEngine) Tick(a, b ActionType) (*MatchState, error) {
	s := m.state
	switch {
	case s.Over():
		return s, ErrMatchOver
	case s.Restart:
		return s, ErrRestartPending
	}
	acts := [2]ActionType{a, b}
	for _, side := range sides {
		if !IsUnlocked(acts[side], m.rules.League) {
			return s, fmt.Errorf("%w: %s needs league %d, side %s plays in %d",
				ErrLockedAction, acts[side].Name, acts[side].League, side, m.rules.League)
		}
	}

	s.TeamA.Messages = nil
	s.TeamB.Messages = nil

	p := m.plan(s.snapshot(), acts)
	m.applyMovement(&p)
	m.applyCombat(&p)
	m.applyUpkeep(&p)
	for _, side := range sides {
		m.obs.ActionResolved(s.Player(side), acts[side])
	}

	if m.terminal(&p) {
		return s, nil
	}
	if p.touched() {
		s.Restart = true
	}
	s.Tick++
	return s, nil
}

// Forfeit ends the bout without resolving a tick. reasons[side] is empty
// for an agent that behaved; every faulty side is deactivated.
func (m *MatchEngine) Forfeit(reasons [2]string) error {
	s := m.state
	if s.Over() {
		return ErrMatchOver
	}
	faulty := 0
	for _, side := range sides {
		if reasons[side] == "" {
			continue
		}
		faulty++
		t := s.Team(side)
		t.Player.Active = false
		t.logf("%s", reasons[side])
		m.obs.PlayerKO(t.Player)
	}
	switch {
	case faulty == 0:
		return fmt.Errorf("%w: forfeit without a faulty side", ErrInvalidState)
	case faulty == 2:
		s.Outcome = Forfeit
		s.Reason = "both agents forfeited"
	default:
		winner := SideA
		if reasons[SideA] != "" {
			winner = SideB
		}
		s.Outcome = winFor(winner)
		s.Reason = "forfeit: " + reasons[winner.Other()]
		m.obs.WinTheGame(s.Team(winner), s.Team(winner.Other()))
	}
	return nil
}
