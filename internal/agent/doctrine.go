package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

var ErrDoctrine = errors.New("invalid doctrine")

// Situation is the environment doctrine conditions are evaluated against.
// Rules read fields directly (Gap, Me.Energy, You.Doping) and may call the
// helper methods.
type Situation struct {
	League int
	Tick   int
	Gap    int
	Me     Fencer
	You    Fencer

	cat *combat.Catalog
}

func (s Situation) action(name string) (combat.ActionType, bool) {
	if s.cat == nil {
		return combat.ActionType{}, false
	}
	a, err := s.cat.Lookup(name)
	return a, err == nil
}

// Reaches reports whether the action would engage if the opponent stood
// still, counting the action's own footwork.
func (s Situation) Reaches(name string) bool {
	a, ok := s.action(name)
	return ok && a.Engages(s.Gap-a.Move)
}

func (s Situation) Unlocked(name string) bool {
	a, ok := s.action(name)
	return ok && combat.IsUnlocked(a, s.League)
}

// Cost is the energy the action spends, as a positive number.
func (s Situation) Cost(name string) int {
	a, ok := s.action(name)
	if !ok || a.Energy >= 0 {
		return 0
	}
	return -a.Energy
}

type doctrineRule struct {
	name     string
	priority int
	src      string
	action   combat.ActionType
	program  *vm.Program
}

// Doctrine plays the action of the highest-priority rule whose condition
// holds, skipping rules whose action is still locked.
type Doctrine struct {
	name  string
	def   combat.ActionType
	rules []doctrineRule
	cat   *combat.Catalog
	log   *zap.Logger
}

func NewDoctrine(cfg config.DoctrineConfig, cat *combat.Catalog, log *zap.Logger) (*Doctrine, error) {
	if cat == nil {
		cat = combat.DefaultCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Doctrine{name: cfg.Name, cat: cat, log: log.With(zap.String("doctrine", cfg.Name))}

	if cfg.Default == "" {
		d.def = cat.Actions()[0]
	} else {
		a, err := cat.Parse(cfg.Default)
		if err != nil {
			return nil, fmt.Errorf("%w: %s default: %w", ErrDoctrine, cfg.Name, err)
		}
		d.def = a
	}

	for i, r := range cfg.Rules {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i)
		}
		a, err := cat.Parse(r.Action)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %w", ErrDoctrine, cfg.Name, name, err)
		}
		prog, err := expr.Compile(r.When, expr.Env(Situation{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrDoctrine, cfg.Name, name, err)
		}
		d.rules = append(d.rules, doctrineRule{
			name:     name,
			priority: r.Priority,
			src:      r.When,
			action:   a,
			program:  prog,
		})
	}
	sort.SliceStable(d.rules, func(i, j int) bool { return d.rules[i].priority > d.rules[j].priority })
	return d, nil
}

func (d *Doctrine) Name() string { return d.name }

func (d *Doctrine) Act(_ context.Context, t Turn) (string, error) {
	env := Situation{League: t.League, Tick: t.Tick, Gap: t.Gap(), Me: t.Me, You: t.You, cat: d.cat}
	for _, r := range d.rules {
		if !combat.IsUnlocked(r.action, t.League) {
			continue
		}
		out, err := vm.Run(r.program, env)
		if err != nil {
			return "", fmt.Errorf("%w: rule %s: %v", ErrDoctrine, r.name, err)
		}
		if fired, _ := out.(bool); fired {
			d.log.Debug("rule fired", zap.String("rule", r.name), zap.String("action", r.action.Name), zap.Int("gap", env.Gap))
			return r.action.Name, nil
		}
	}
	return d.def.Name, nil
}

var builtinDoctrines = []config.DoctrineConfig{
	{
		Name:    "aggressive",
		Default: "BREAK",
		Note:    "closes to lunge measure and attacks while it has the legs for it",
		Rules: []config.RuleDef{
			{Name: "fleche", Priority: 110, When: `Unlocked("FLECHE") && Reaches("FLECHE") && Me.Energy >= Cost("FLECHE")`, Action: "FLECHE"},
			{Name: "lunge", Priority: 100, When: `Reaches("LUNGE") && Me.Energy >= Cost("LUNGE")`, Action: "LUNGE"},
			{Name: "recover", Priority: 80, When: `Me.Energy < 4`, Action: "BREAK"},
			{Name: "stimulate", Priority: 60, When: `Unlocked("STIMULANT") && Me.Doping < 2 && Gap > 5`, Action: "STIMULANT"},
			{Name: "close", Priority: 20, When: `Gap > 3`, Action: "WALK"},
			{Name: "measure", Priority: 10, When: `Gap < 3`, Action: "RETREAT"},
		},
	},
	{
		Name:    "cautious",
		Default: "BREAK",
		Note:    "waits for the attack, parries and counters",
		Rules: []config.RuleDef{
			{Name: "riposte", Priority: 110, When: `Unlocked("RIPOSTE") && Reaches("RIPOSTE") && Me.Energy >= Cost("RIPOSTE")`, Action: "RIPOSTE"},
			{Name: "lunge", Priority: 105, When: `Reaches("LUNGE") && Me.Energy > You.Energy + Cost("LUNGE")`, Action: "LUNGE"},
			{Name: "parry", Priority: 100, When: `Gap <= 3 && You.Energy >= 3 && Me.Energy >= Cost("PARRY")`, Action: "PARRY"},
			{Name: "recover", Priority: 90, When: `Me.Energy < 6`, Action: "BREAK"},
			{Name: "detox", Priority: 50, When: `Unlocked("DETOX") && Me.Doping > 2`, Action: "DETOX"},
			{Name: "give-ground", Priority: 10, When: `Gap < 2`, Action: "RETREAT"},
		},
	},
}

// Builtins lists the doctrines shipped with the binary.
func Builtins() []config.DoctrineConfig {
	return append([]config.DoctrineConfig(nil), builtinDoctrines...)
}

// FindDoctrine looks name up in loaded first, then in the built-ins.
func FindDoctrine(name string, loaded []config.DoctrineConfig) (config.DoctrineConfig, bool) {
	for _, set := range [][]config.DoctrineConfig{loaded, builtinDoctrines} {
		for _, d := range set {
			if strings.EqualFold(d.Name, name) {
				return d, true
			}
		}
	}
	return config.DoctrineConfig{}, false
}
