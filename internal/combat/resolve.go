package combat

import (
	"strconv"

	"github.com/marcgardent/fencing-codingame-private/internal/util"
)

type strike struct {
	attempted bool
	engaged   bool
	parried   bool
	landed    bool
}

// tickPlan is everything decided from the start-of-tick snapshot. Nothing in
// it depends on which side is applied first.
type tickPlan struct {
	acts     [2]ActionType
	from     [2]int
	to       [2]int
	collided bool
	gap      int
	strikes  [2]strike
	parried  [2]bool
	touches  [2]bool
}

func (p *tickPlan) touched() bool { return p.touches[SideA] || p.touches[SideB] }

func (m *MatchEngine) hitChance(doping int) int {
	return util.ClampPercent(m.rules.HitChance + doping*m.rules.DopingHitBonus)
}

// plan computes movement, engagement and the hit rolls. Rolls are drawn A
// then B, one per engaged attack that was not parried.
func (m *MatchEngine) plan(snap snapshot, acts [2]ActionType) tickPlan {
	p := tickPlan{acts: acts, from: snap.pos}
	for _, side := range sides {
		p.to[side] = snap.pos[side] + side.Facing()*acts[side].Move
	}
	if p.to[SideA] >= p.to[SideB] {
		p.collided = true
		p.to = p.from
	}
	p.gap = p.to[SideB] - p.to[SideA]

	for _, side := range sides {
		act, opp := acts[side], acts[side.Other()]
		if !act.Offensive() {
			continue
		}
		st := strike{attempted: true, engaged: act.Engages(p.gap)}
		if st.engaged && opp.Defensive() && opp.Engages(p.gap) {
			st.parried = true
			p.parried[side.Other()] = true
		} else if st.engaged {
			st.landed = util.Roll(m.rng, m.hitChance(snap.doping[side]))
		}
		p.strikes[side] = st
		p.touches[side] = st.landed
	}
	return p
}

func (m *MatchEngine) applyMovement(p *tickPlan) {
	s := m.state
	if p.collided {
		s.TeamA.logf("collision, stays at %d", p.from[SideA])
		s.TeamB.logf("collision, stays at %d", p.from[SideB])
		m.obs.Collided()
		return
	}
	for _, side := range sides {
		if p.to[side] == p.from[side] {
			continue
		}
		pl := s.Player(side)
		pl.Position = p.to[side]
		s.Team(side).logf("%s %d -> %d", p.acts[side].Name, p.from[side], p.to[side])
		m.obs.Moved(pl, p.from[side], p.to[side])
	}
}

func (m *MatchEngine) applyCombat(p *tickPlan) {
	s := m.state
	for _, side := range sides {
		st := p.strikes[side]
		if !st.attempted {
			continue
		}
		act := p.acts[side]
		me, opp := s.Team(side), s.Team(side.Other())
		switch {
		case !st.engaged:
			me.logf("%s missed: gap %d, needs %s", act.Name, p.gap, measure(act.Distance))
			m.obs.Hit(me.Player, false)
		case st.parried:
			me.logf("%s parried", act.Name)
			opp.logf("%s parried %s", p.acts[side.Other()].Name, act.Name)
			m.obs.Defended(opp.Player, true)
		case st.landed:
			me.logf("%s touched", act.Name)
			opp.logf("touched by %s", act.Name)
			m.obs.Hit(me.Player, true)
		default:
			me.logf("%s dodged", act.Name)
			m.obs.Hit(me.Player, false)
		}
	}
	for _, side := range sides {
		if p.acts[side].Defensive() && !p.parried[side] {
			m.obs.Defended(s.Player(side), false)
		}
	}

	switch {
	case p.touches[SideA] && p.touches[SideB]:
		s.TeamA.Score++
		s.TeamB.Score++
		s.TeamA.logf("double touch %d-%d", s.TeamA.Score, s.TeamB.Score)
		s.TeamB.logf("double touch %d-%d", s.TeamB.Score, s.TeamA.Score)
		m.obs.ScoredBoth()
	case p.touches[SideA]:
		m.score(SideA)
	case p.touches[SideB]:
		m.score(SideB)
	}

	// Transfers follow the score, A first.
	for _, side := range sides {
		act := p.acts[side]
		if !p.strikes[side].landed || act.EnergyTransfer == 0 {
			continue
		}
		m.addEnergy(s.Player(side.Other()), -act.EnergyTransfer)
		if act.Kind == KindDrain {
			m.addEnergy(s.Player(side), act.EnergyTransfer)
		}
	}
}

func (m *MatchEngine) score(side Side) {
	t := m.state.Team(side)
	t.Score++
	t.logf("touch, score %d", t.Score)
	m.obs.Scored(t)
}

// applyUpkeep applies each action's own energy and doping deltas. They are
// paid whether or not the action connected.
func (m *MatchEngine) applyUpkeep(p *tickPlan) {
	s := m.state
	for _, side := range sides {
		act := p.acts[side]
		pl := s.Player(side)
		if act.Energy != 0 {
			m.addEnergy(pl, act.Energy)
		}
		if act.Drug != 0 {
			pl.DopingLevel += act.Drug
			if pl.DopingLevel < 0 {
				pl.DopingLevel = 0
			}
			s.Team(side).logf("%s, doping %d", act.Name, pl.DopingLevel)
			m.obs.Doped(pl, act)
		}
	}
}

// addEnergy caps at MaxEnergy only; energy below zero is how a fencer loses.
func (m *MatchEngine) addEnergy(pl *PlayerState, delta int) {
	before := pl.Energy
	pl.Energy += delta
	if pl.Energy > m.rules.MaxEnergy {
		pl.Energy = m.rules.MaxEnergy
	}
	if d := pl.Energy - before; d != 0 {
		m.obs.EnergyChanged(pl, d)
	}
}

func measure(distance int) string {
	if distance < 0 {
		return "<= " + strconv.Itoa(abs(distance))
	}
	return strconv.Itoa(distance)
}
