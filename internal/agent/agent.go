// Package agent holds the fencers' brains: the line protocol spoken with
// external programs and the in-process agents used for sparring and tests.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

var (
	ErrProtocol = errors.New("agent protocol error")
	ErrExited   = errors.New("agent exited")
	ErrNoAction = errors.New("agent has no action to play")
)

// Agent picks one action per turn, by name or numeric code.
type Agent interface {
	Name() string
	Act(ctx context.Context, t Turn) (string, error)
}

// Fencer is one side of the piste as an agent sees it.
type Fencer struct {
	Position int
	Energy   int
	Doping   int
	Score    int
}

// Turn is what an agent is told before it answers. Me is always the side
// being asked. Length is the piste length, zero when unknown.
type Turn struct {
	League int
	Tick   int
	Length int
	Me     Fencer
	You    Fencer
}

// Backward is the position change of one step away from the opponent.
func (t Turn) Backward() int {
	if t.Me.Position <= t.You.Position {
		return -1
	}
	return 1
}

func (t Turn) Gap() int {
	g := t.You.Position - t.Me.Position
	if g < 0 {
		return -g
	}
	return g
}

func fencerOf(s *combat.MatchState, side combat.Side) Fencer {
	team := s.Team(side)
	return Fencer{
		Position: team.Player.Position,
		Energy:   team.Player.Energy,
		Doping:   team.Player.DopingLevel,
		Score:    team.Score,
	}
}

func NewTurn(s *combat.MatchState, side combat.Side, r combat.Rules) Turn {
	return Turn{
		League: r.League,
		Tick:   s.Tick,
		Length: r.Piste.Length,
		Me:     fencerOf(s, side),
		You:    fencerOf(s, side.Other()),
	}
}

// WriteTurn sends a turn as two lines, "position energy doping score" for
// the agent itself then for its opponent.
func WriteTurn(w io.Writer, t Turn) error {
	_, err := fmt.Fprintf(w, "%d %d %d %d\n%d %d %d %d\n",
		t.Me.Position, t.Me.Energy, t.Me.Doping, t.Me.Score,
		t.You.Position, t.You.Energy, t.You.Doping, t.You.Score)
	return err
}

// ReadTurn is the agent-side half of WriteTurn. League, Tick and Length
// are not on the wire and stay zero.
func ReadTurn(sc *bufio.Scanner) (Turn, error) {
	var t Turn
	for _, f := range []*Fencer{&t.Me, &t.You} {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return t, err
			}
			return t, io.EOF
		}
		v, err := parseFencer(sc.Text())
		if err != nil {
			return t, err
		}
		*f = v
	}
	return t, nil
}

func parseFencer(line string) (Fencer, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Fencer{}, fmt.Errorf("%w: want 4 fields, got %q", ErrProtocol, line)
	}
	var n [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Fencer{}, fmt.Errorf("%w: %q is not a number", ErrProtocol, f)
		}
		n[i] = v
	}
	return Fencer{Position: n[0], Energy: n[1], Doping: n[2], Score: n[3]}, nil
}

// CleanReply keeps the first word of an answer line; bots often append
// debug text after the action.
func CleanReply(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
