package combat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrCatalog       = errors.New("invalid catalog")
)

type Kind uint8

const (
	KindRest Kind = iota
	KindMove
	KindAttack
	KindDrain
	KindDefend
	KindDrug
)

var kindNames = [...]string{"rest", "move", "attack", "drain", "defend", "drug"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrCatalog, s)
}

// ActionType is one catalog entry. Values are copied out of the catalog, so
// holding one never lets a caller alter the table.
type ActionType struct {
	Name           string
	Code           byte
	Kind           Kind
	League         int
	Energy         int
	EnergyTransfer int
	Move           int
	Distance       int
	Drug           int
	Note           string
}

func (a ActionType) Offensive() bool { return a.Kind == KindAttack || a.Kind == KindDrain }
func (a ActionType) Defensive() bool { return a.Kind == KindDefend }

// Engages reports whether the action reaches an opponent gap away.
// A positive distance is an exact measure, a negative one a reach.
func (a ActionType) Engages(gap int) bool {
	switch {
	case a.Distance > 0:
		return gap == a.Distance
	case a.Distance < 0:
		return gap <= -a.Distance
	}
	return false
}

func IsUnlocked(a ActionType, league int) bool { return league >= a.League }

// Catalog is the read-only table of selectable actions, kept in declaration
// order.
type Catalog struct {
	actions []ActionType
	byName  map[string]int
	byCode  map[byte]int
}

var defaultActions = []ActionType{
	{Name: "BREAK", Code: 0, Kind: KindRest, League: 0, Energy: 2, Note: "catch your breath"},
	{Name: "WALK", Code: 1, Kind: KindMove, League: 0, Energy: -1, Move: 1},
	{Name: "RETREAT", Code: 2, Kind: KindMove, League: 0, Energy: -1, Move: -1},
	{Name: "LUNGE", Code: 3, Kind: KindAttack, League: 0, Energy: -3, EnergyTransfer: 5, Distance: 3},
	{Name: "PARRY", Code: 4, Kind: KindDefend, League: 0, Energy: -1, Distance: -3},
	{Name: "DOUBLE_WALK", Code: 5, Kind: KindMove, League: 1, Energy: -3, Move: 2},
	{Name: "DOUBLE_RETREAT", Code: 6, Kind: KindMove, League: 1, Energy: -3, Move: -2},
	{Name: "FLECHE", Code: 7, Kind: KindAttack, League: 1, Energy: -5, EnergyTransfer: 7, Move: 2, Distance: 1, Note: "running attack, lands after the run"},
	{Name: "RIPOSTE", Code: 8, Kind: KindDrain, League: 1, Energy: -2, EnergyTransfer: 3, Distance: -2, Note: "close answer that steals energy"},
	{Name: "STIMULANT", Code: 9, Kind: KindDrug, League: 2, Energy: -2, Drug: 1},
	{Name: "ADRENALINE", Code: 10, Kind: KindDrug, League: 2, Energy: -4, Drug: 2},
	{Name: "DETOX", Code: 11, Kind: KindDrug, League: 2, Energy: -1, Drug: -1},
}

var defaultCatalog = mustCatalog(defaultActions)

func mustCatalog(actions []ActionType) *Catalog {
	c, err := NewCatalogOf(actions...)
	if err != nil {
		panic(err)
	}
	return c
}

func DefaultCatalog() *Catalog { return defaultCatalog }

// NewCatalog builds a catalog from config; nil gives the default table.
func NewCatalog(cfg *config.ActionsConfig) (*Catalog, error) {
	if cfg == nil || len(cfg.Actions) == 0 {
		return defaultCatalog, nil
	}
	actions := make([]ActionType, 0, len(cfg.Actions))
	for _, d := range cfg.Actions {
		kind, err := ParseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", d.Name, err)
		}
		if d.Code < 0 || d.Code > 255 {
			return nil, fmt.Errorf("%w: action %s code %d out of range", ErrCatalog, d.Name, d.Code)
		}
		actions = append(actions, ActionType{
			Name:           strings.ToUpper(d.Name),
			Code:           byte(d.Code),
			Kind:           kind,
			League:         d.League,
			Energy:         d.Energy,
			EnergyTransfer: d.EnergyTransfer,
			Move:           d.Move,
			Distance:       d.Distance,
			Drug:           d.Drug,
			Note:           d.Note,
		})
	}
	return NewCatalogOf(actions...)
}

func NewCatalogOf(actions ...ActionType) (*Catalog, error) {
	c := &Catalog{
		actions: make([]ActionType, 0, len(actions)),
		byName:  make(map[string]int, len(actions)),
		byCode:  make(map[byte]int, len(actions)),
	}
	for _, a := range actions {
		key := strings.ToUpper(a.Name)
		switch {
		case key == "":
			return nil, fmt.Errorf("%w: empty action name", ErrCatalog)
		case a.League < 0:
			return nil, fmt.Errorf("%w: %s has negative league", ErrCatalog, a.Name)
		case a.EnergyTransfer < 0:
			return nil, fmt.Errorf("%w: %s has negative energy transfer", ErrCatalog, a.Name)
		}
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate action %s", ErrCatalog, key)
		}
		if prev, dup := c.byCode[a.Code]; dup {
			return nil, fmt.Errorf("%w: %s reuses code %d of %s", ErrCatalog, key, a.Code, c.actions[prev].Name)
		}
		a.Name = key
		c.byName[key] = len(c.actions)
		c.byCode[a.Code] = len(c.actions)
		c.actions = append(c.actions, a)
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.actions) }

// Actions returns a copy of the table in declaration order.
func (c *Catalog) Actions() []ActionType {
	return append([]ActionType(nil), c.actions...)
}

func (c *Catalog) Unlocked(league int) []ActionType {
	var out []ActionType
	for _, a := range c.actions {
		if IsUnlocked(a, league) {
			out = append(out, a)
		}
	}
	return out
}

func (c *Catalog) Lookup(name string) (ActionType, error) {
	i, ok := c.byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return ActionType{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return c.actions[i], nil
}

func (c *Catalog) ByCode(code int) (ActionType, error) {
	if code < 0 || code > 255 {
		return ActionType{}, fmt.Errorf("%w: code %d", ErrUnknownAction, code)
	}
	i, ok := c.byCode[byte(code)]
	if !ok {
		return ActionType{}, fmt.Errorf("%w: code %d", ErrUnknownAction, code)
	}
	return c.actions[i], nil
}

// Parse accepts either an action name or its numeric code.
func (c *Catalog) Parse(s string) (ActionType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return c.ByCode(n)
	}
	return c.Lookup(s)
}
