package combat

import "fmt"

// terminal runs the end-of-tick checks, first match wins:
// exhaustion at 0-0, exhaustion, leaving the piste, touch threshold, time.
func (m *MatchEngine) terminal(p *tickPlan) bool {
	s := m.state
	var exhausted []Side
	for _, side := range sides {
		if s.Player(side).Energy < 0 {
			exhausted = append(exhausted, side)
		}
	}

	if len(exhausted) > 0 && s.TeamA.Score == 0 && s.TeamB.Score == 0 {
		for _, side := range exhausted {
			m.knockOut(side)
		}
		m.finish(NonCombativity, "exhausted without a touch")
		return true
	}
	switch len(exhausted) {
	case 1:
		m.knockOut(exhausted[0])
		m.win(exhausted[0].Other(), fmt.Sprintf("%s exhausted", exhausted[0]))
		return true
	case 2:
		m.knockOut(SideA)
		m.knockOut(SideB)
		m.decideOnScore("both exhausted")
		return true
	}

	if m.checkOutside(p) {
		return true
	}

	if s.TeamA.Score >= m.rules.WinScore || s.TeamB.Score >= m.rules.WinScore {
		m.decideOnScore(fmt.Sprintf("reached %d touches", m.rules.WinScore))
		return true
	}

	if s.Tick+1 >= m.rules.MaxTick {
		m.decideOnScore("time")
		return true
	}
	return false
}

func (m *MatchEngine) checkOutside(p *tickPlan) bool {
	s := m.state
	var out []Side
	for _, side := range sides {
		pl := s.Player(side)
		if m.rules.Piste.Contains(pl.Position) {
			continue
		}
		out = append(out, side)
		s.Team(side).logf("off the piste at %d", pl.Position)
		m.obs.Outside(pl)
	}
	if len(out) == 0 {
		return false
	}

	switch m.rules.Outside {
	case OutsideLose:
		if len(out) == 1 {
			m.win(out[0].Other(), fmt.Sprintf("%s left the piste", out[0]))
		} else {
			m.decideOnScore("both left the piste")
		}
		return true
	case OutsideTouch:
		for _, side := range out {
			m.putBack(side)
			opp := side.Other()
			p.touches[opp] = true
			m.score(opp)
		}
	default:
		for _, side := range out {
			m.putBack(side)
		}
	}
	return false
}

// putBack returns a fencer to the piste and reports it as a move, so
// observers end on the position the state holds.
func (m *MatchEngine) putBack(side Side) {
	pl := m.state.Player(side)
	from := pl.Position
	pl.Position = m.rules.Piste.Clamp(from)
	if pl.Position != from {
		m.state.Team(side).logf("back on the piste at %d", pl.Position)
		m.obs.Moved(pl, from, pl.Position)
	}
}

func (m *MatchEngine) knockOut(side Side) {
	t := m.state.Team(side)
	t.Player.Active = false
	t.logf("knocked out, energy %d", t.Player.Energy)
	m.obs.PlayerKO(t.Player)
}

func (m *MatchEngine) win(side Side, reason string) {
	s := m.state
	winner, loser := s.Team(side), s.Team(side.Other())
	m.finish(winFor(side), reason)
	winner.logf("wins: %s", reason)
	loser.logf("loses: %s", reason)
	m.obs.WinTheGame(winner, loser)
}

func (m *MatchEngine) decideOnScore(reason string) {
	s := m.state
	switch {
	case s.TeamA.Score > s.TeamB.Score:
		m.win(SideA, reason)
	case s.TeamB.Score > s.TeamA.Score:
		m.win(SideB, reason)
	default:
		m.finish(Draw, reason)
		s.TeamA.logf("draw: %s", reason)
		s.TeamB.logf("draw: %s", reason)
		m.obs.Draw()
	}
}

func (m *MatchEngine) finish(o Outcome, reason string) {
	m.state.Outcome = o
	m.state.Reason = reason
	m.state.Restart = false
}
