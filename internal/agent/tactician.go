package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

type BTStatus int

const (
	BTSuccess BTStatus = iota
	BTFailure
	BTRunning
)

type BTNode interface{ Tick(*Blackboard) BTStatus }

// Blackboard is what the tree reads and writes during one decision.
type Blackboard struct {
	Turn    Turn
	Cat     *combat.Catalog
	Measure int
	Choice  string
	Log     func(string, ...any)
}

type Selector struct{ Children []BTNode }

func (s *Selector) Tick(bb *Blackboard) BTStatus {
	for _, ch := range s.Children {
		if ch.Tick(bb) == BTSuccess {
			return BTSuccess
		}
	}
	return BTFailure
}

type Sequence struct{ Children []BTNode }

func (s *Sequence) Tick(bb *Blackboard) BTStatus {
	for _, ch := range s.Children {
		if ch.Tick(bb) != BTSuccess {
			return BTFailure
		}
	}
	return BTSuccess
}

type Condition func(*Blackboard) bool
type CondNode struct{ Fn Condition }

func (c *CondNode) Tick(bb *Blackboard) BTStatus {
	if c.Fn(bb) {
		return BTSuccess
	}
	return BTFailure
}

type Action func(*Blackboard) bool
type ActionNode struct{ Fn Action }

func (a *ActionNode) Tick(bb *Blackboard) BTStatus {
	if a.Fn(bb) {
		return BTSuccess
	}
	return BTFailure
}

// Personality biases the utility scores. Both weights are usually in [0,1].
type Personality struct {
	Aggression float64
	Caution    float64
	LowEnergy  int
}

var DefaultPersonality = Personality{Aggression: 0.6, Caution: 0.3, LowEnergy: 5}

// Tactician runs a small behavior tree: a low-energy guard (parry, give
// ground or rest) in front of a utility pick over every unlocked action.
type Tactician struct {
	name string
	cat  *combat.Catalog
	p    Personality
	root BTNode
	log  *zap.Logger
}

func NewTactician(name string, cat *combat.Catalog, p Personality, log *zap.Logger) *Tactician {
	if cat == nil {
		cat = combat.DefaultCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	tc := &Tactician{name: name, cat: cat, p: p, log: log.With(zap.String("tactician", name))}
	tc.root = &Selector{Children: []BTNode{
		&Sequence{Children: []BTNode{
			&CondNode{Fn: tc.lowEnergy},
			&Selector{Children: []BTNode{
				&Sequence{Children: []BTNode{&CondNode{Fn: threatened}, &ActionNode{Fn: choose("PARRY")}}},
				&Sequence{Children: []BTNode{&CondNode{Fn: threatened}, &CondNode{Fn: canRetreat}, &ActionNode{Fn: choose("RETREAT")}}},
				&ActionNode{Fn: choose("BREAK")},
			}},
		}},
		&ActionNode{Fn: tc.utilityDecision},
	}}
	return tc
}

func (tc *Tactician) Name() string { return tc.name }

func (tc *Tactician) Act(_ context.Context, t Turn) (string, error) {
	bb := &Blackboard{
		Turn:    t,
		Cat:     tc.cat,
		Measure: reach(tc.cat, t.League),
		Log:     func(f string, a ...any) { tc.log.Sugar().Debugf(f, a...) },
	}
	if tc.root.Tick(bb) != BTSuccess || bb.Choice == "" {
		return "", ErrNoAction
	}
	return bb.Choice, nil
}

// reach is the farthest gap an unlocked attack connects from, footwork
// included. It is both the gap to hold and the gap to fear.
func reach(cat *combat.Catalog, league int) int {
	best := 0
	for _, a := range cat.Unlocked(league) {
		if !a.Offensive() || a.Distance == 0 {
			continue
		}
		d := absInt(a.Distance)
		if d+a.Move > best {
			best = d + a.Move
		}
	}
	if best == 0 {
		return 3
	}
	return best
}

func (tc *Tactician) lowEnergy(bb *Blackboard) bool { return bb.Turn.Me.Energy <= tc.p.LowEnergy }

func threatened(bb *Blackboard) bool {
	return bb.Turn.Gap() <= bb.Measure && bb.Turn.You.Energy >= 3
}

func canRetreat(bb *Blackboard) bool {
	to := bb.Turn.Me.Position + bb.Turn.Backward()
	if to < 0 {
		return false
	}
	return bb.Turn.Length == 0 || to <= bb.Turn.Length
}

// choose succeeds when the named action exists, is unlocked and affordable.
func choose(name string) Action {
	return func(bb *Blackboard) bool {
		a, err := bb.Cat.Lookup(name)
		if err != nil || !combat.IsUnlocked(a, bb.Turn.League) || !affordable(bb.Turn, a) {
			return false
		}
		bb.Choice = a.Name
		bb.Log("guard: %s (energy %d, gap %d)", a.Name, bb.Turn.Me.Energy, bb.Turn.Gap())
		return true
	}
}

func affordable(t Turn, a combat.ActionType) bool { return t.Me.Energy+a.Energy >= 0 }

func (tc *Tactician) utilityDecision(bb *Blackboard) bool {
	best, bestScore := "", 0.0
	for _, a := range bb.Cat.Unlocked(bb.Turn.League) {
		if !affordable(bb.Turn, a) {
			continue
		}
		sc := tc.score(bb, a)
		if best == "" || sc > bestScore {
			best, bestScore = a.Name, sc
		}
	}
	if best == "" {
		return false
	}
	bb.Choice = best
	bb.Log("utility: %s scored %.2f", best, bestScore)
	return true
}

func (tc *Tactician) score(bb *Blackboard, a combat.ActionType) float64 {
	t := bb.Turn
	gap := t.Gap()
	cost := 0.0
	if a.Energy < 0 {
		cost = float64(-a.Energy)
	}
	agg, cau := tc.p.Aggression, tc.p.Caution

	switch a.Kind {
	case combat.KindAttack, combat.KindDrain:
		if !a.Engages(gap - a.Move) {
			return -1
		}
		return (10+2*float64(a.EnergyTransfer))*(1+0.15*agg) - 0.5*cost
	case combat.KindDefend:
		if !threatened(bb) {
			return -1
		}
		return 8*(1+0.3*cau) - 0.5*cost
	case combat.KindMove:
		after := gap - a.Move
		if after < 1 || (a.Move < 0 && !canRetreat(bb)) {
			return -1
		}
		gain := absInt(gap-bb.Measure) - absInt(after-bb.Measure)
		prox := 1.0 / (1.0 + float64(absInt(after-bb.Measure)))
		return 2*float64(gain) + 4*prox*(1+0.05*agg) - 0.3*cost
	case combat.KindDrug:
		switch {
		case a.Drug > 0 && t.Me.Doping < 2 && gap > bb.Measure+2:
			return 2*(1+0.1*agg) - 0.2*cost
		case a.Drug < 0 && t.Me.Doping > 2:
			return 1.5 * (1 + cau)
		}
		return -1
	default:
		need := float64(tc.p.LowEnergy*2 - t.Me.Energy)
		if need < 0 {
			need = 0
		}
		return 0.3 * need * (1 + cau)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
