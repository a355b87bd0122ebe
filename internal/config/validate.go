package config

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func (c MatchConfig) Validate() error {
	if c.MaxTick <= 0 {
		return invalid("max_tick must be positive, got %d", c.MaxTick)
	}
	if c.League < 0 {
		return invalid("league must be >= 0, got %d", c.League)
	}
	if c.WinScore <= 0 {
		return invalid("win_score must be positive, got %d", c.WinScore)
	}
	if c.HitChance < 0 || c.HitChance > 100 {
		return invalid("hit_chance must be in [0,100], got %d", c.HitChance)
	}
	if c.StartEnergy < 0 || c.StartEnergy > c.MaxEnergy {
		return invalid("start_energy %d outside [0,%d]", c.StartEnergy, c.MaxEnergy)
	}
	switch c.Outside {
	case OutsideReport, OutsideTouch, OutsideLose:
	default:
		return invalid("unknown outside policy %q", c.Outside)
	}
	p := c.Piste
	if p.Length <= 0 {
		return invalid("piste length must be positive, got %d", p.Length)
	}
	if p.StartA < 0 || p.StartB > p.Length || p.StartA >= p.StartB {
		return invalid("start positions %d/%d do not fit a piste of %d", p.StartA, p.StartB, p.Length)
	}
	if c.Referee.MinScore > c.Referee.ForfeitScore {
		return invalid("min_score %d above forfeit_score %d", c.Referee.MinScore, c.Referee.ForfeitScore)
	}
	return nil
}
