package referee

import (
	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

// Points converts a finished bout into ranking points. A faulty agent gets
// MinScore and a well-behaved opponent ForfeitScore. Otherwise a bout
// ending 0-0 through exhaustion punishes both fencers, a knocked-out
// fencer gets MinScore, and the rest score their touch difference plus
// WinBonus for the winner.
func Points(s *combat.MatchState, faulty [2]bool, rc config.RefereeConfig) [2]int {
	var pts [2]int
	if faulty[combat.SideA] || faulty[combat.SideB] {
		for _, side := range sides {
			if faulty[side] {
				pts[side] = rc.MinScore
			} else {
				pts[side] = rc.ForfeitScore
			}
		}
		return pts
	}
	if s.Outcome == combat.NonCombativity {
		return [2]int{rc.MinScore, rc.MinScore}
	}
	winner, won := s.Outcome.Winner()
	for _, side := range sides {
		me, you := s.Team(side), s.Team(side.Other())
		if !me.Player.Active {
			pts[side] = rc.MinScore
			continue
		}
		pts[side] = me.Score - you.Score
		if won && winner == side {
			pts[side] += rc.WinBonus
		}
	}
	return pts
}
