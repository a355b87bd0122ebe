package combat

import (
	"fmt"
	"strconv"
)

type Side uint8

const (
	SideA Side = iota
	SideB
)

var sides = [2]Side{SideA, SideB}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

func (s Side) Other() Side { return 1 - s }

// Facing is the sign that turns a relative move into a position delta:
// A fences towards +, B towards -.
func (s Side) Facing() int {
	if s == SideA {
		return 1
	}
	return -1
}

type PlayerState struct {
	Position    int
	Energy      int
	DopingLevel int
	Active      bool
}

type TeamState struct {
	Player   *PlayerState
	Score    int
	Messages []string
}

func (t *TeamState) logf(format string, args ...any) {
	t.Messages = append(t.Messages, fmt.Sprintf(format, args...))
}

type Outcome uint8

const (
	InProgress Outcome = iota
	WinA
	WinB
	Draw
	NonCombativity
	Forfeit
)

var outcomeNames = [...]string{"in_progress", "win_a", "win_b", "draw", "non_combativity", "forfeit"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "outcome(" + strconv.Itoa(int(o)) + ")"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o Outcome) Winner() (Side, bool) {
	switch o {
	case WinA:
		return SideA, true
	case WinB:
		return SideB, true
	}
	return 0, false
}

func winFor(side Side) Outcome {
	if side == SideA {
		return WinA
	}
	return WinB
}

// MatchState is owned by the MatchEngine. Teams never point back to it;
// use SideOf to find where a player stands.
type MatchState struct {
	TeamA   *TeamState
	TeamB   *TeamState
	Tick    int
	Restart bool
	Outcome Outcome
	Reason  string
}

// newMatchState lays out a fresh bout. When prev is set, touches, tick and
// doping carry over: a restart replaces the state, it does not reset the bout.
func newMatchState(r Rules, prev *MatchState) *MatchState {
	s := &MatchState{}
	for _, side := range sides {
		t := &TeamState{Player: &PlayerState{
			Position: r.Piste.Start(side),
			Energy:   r.StartEnergy,
			Active:   true,
		}}
		if prev != nil {
			old := prev.Team(side)
			t.Score = old.Score
			t.Player.DopingLevel = old.Player.DopingLevel
		}
		if side == SideA {
			s.TeamA = t
		} else {
			s.TeamB = t
		}
	}
	if prev != nil {
		s.Tick = prev.Tick
	}
	return s
}

func (s *MatchState) Team(side Side) *TeamState {
	if side == SideA {
		return s.TeamA
	}
	return s.TeamB
}

func (s *MatchState) Player(side Side) *PlayerState { return s.Team(side).Player }

// SideOf finds which slot holds p by identity.
func (s *MatchState) SideOf(p *PlayerState) (Side, bool) {
	switch p {
	case s.TeamA.Player:
		return SideA, true
	case s.TeamB.Player:
		return SideB, true
	}
	return 0, false
}

func (s *MatchState) TeamOf(p *PlayerState) *TeamState {
	side, ok := s.SideOf(p)
	if !ok {
		return nil
	}
	return s.Team(side)
}

func (s *MatchState) Gap() int { return s.TeamB.Player.Position - s.TeamA.Player.Position }

func (s *MatchState) Over() bool { return s.Outcome != InProgress }

type snapshot struct {
	pos    [2]int
	energy [2]int
	doping [2]int
}

func (s *MatchState) snapshot() snapshot {
	var snap snapshot
	for _, side := range sides {
		p := s.Player(side)
		snap.pos[side] = p.Position
		snap.energy[side] = p.Energy
		snap.doping[side] = p.DopingLevel
	}
	return snap
}
