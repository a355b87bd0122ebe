package combat

import (
	"fmt"

	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

type OutsidePolicy uint8

const (
	// OutsideReport only notifies and puts the fencer back on the piste.
	OutsideReport OutsidePolicy = iota
	// OutsideTouch also awards a touch to the opponent.
	OutsideTouch
	// OutsideLose ends the bout against the fencer who left.
	OutsideLose
)

func ParseOutsidePolicy(s string) (OutsidePolicy, error) {
	switch s {
	case "", config.OutsideReport:
		return OutsideReport, nil
	case config.OutsideTouch:
		return OutsideTouch, nil
	case config.OutsideLose:
		return OutsideLose, nil
	}
	return 0, fmt.Errorf("unknown outside policy %q", s)
}

// Rules are immutable for the lifetime of one match.
type Rules struct {
	Seed           int64
	MaxTick        int
	League         int
	WinScore       int
	HitChance      int
	DopingHitBonus int
	StartEnergy    int
	MaxEnergy      int
	Outside        OutsidePolicy
	Piste          Piste
}

// NewRules validates cfg (nil means defaults) and converts it.
func NewRules(cfg *config.MatchConfig) (Rules, error) {
	c := config.Defaults()
	if cfg != nil {
		c = cfg.WithDefaults()
	}
	if err := c.Validate(); err != nil {
		return Rules{}, err
	}
	outside, err := ParseOutsidePolicy(c.Outside)
	if err != nil {
		return Rules{}, err
	}
	return Rules{
		Seed:           c.Seed,
		MaxTick:        c.MaxTick,
		League:         c.League,
		WinScore:       c.WinScore,
		HitChance:      c.HitChance,
		DopingHitBonus: c.DopingHitBonus,
		StartEnergy:    c.StartEnergy,
		MaxEnergy:      c.MaxEnergy,
		Outside:        outside,
		Piste:          Piste{Length: c.Piste.Length, StartA: c.Piste.StartA, StartB: c.Piste.StartB},
	}, nil
}
