package config

// MatchConfig is the configuration surface fixed at match start.
type MatchConfig struct {
	Seed           int64         `yaml:"seed" json:"seed,omitempty" jsonschema:"description=Seed of the match random source (0 behaves like 1)"`
	MaxTick        int           `yaml:"max_tick" json:"max_tick,omitempty" jsonschema:"minimum=0,description=Ticks before the bout is decided on touches"`
	League         int           `yaml:"league" json:"league,omitempty" jsonschema:"minimum=0,description=Zero-based league; gates the selectable actions"`
	WinScore       int           `yaml:"win_score" json:"win_score,omitempty" jsonschema:"minimum=0,description=Touches needed to win the bout"`
	HitChance      int           `yaml:"hit_chance" json:"hit_chance,omitempty" jsonschema:"minimum=0,maximum=100,description=Base percent chance of an engaged attack landing"`
	DopingHitBonus int           `yaml:"doping_hit_bonus" json:"doping_hit_bonus,omitempty" jsonschema:"description=Percent added to the hit chance per doping level"`
	StartEnergy    int           `yaml:"start_energy" json:"start_energy,omitempty"`
	MaxEnergy      int           `yaml:"max_energy" json:"max_energy,omitempty"`
	Outside        string        `yaml:"outside" json:"outside,omitempty" jsonschema:"enum=report,enum=touch,enum=lose"`
	Piste          PisteConfig   `yaml:"piste" json:"piste"`
	Referee        RefereeConfig `yaml:"referee" json:"referee"`
	Note           string        `yaml:"note" json:"note,omitempty"`
}

type PisteConfig struct {
	Length int `yaml:"length" json:"length,omitempty" jsonschema:"minimum=0"`
	StartA int `yaml:"start_a" json:"start_a,omitempty"`
	StartB int `yaml:"start_b" json:"start_b,omitempty"`
}

// RefereeConfig covers the harness around the engine: agent timeouts and
// the points handed out when a bout ends.
type RefereeConfig struct {
	TurnTimeoutMS      int `yaml:"turn_timeout_ms" json:"turn_timeout_ms,omitempty"`
	FirstTurnTimeoutMS int `yaml:"first_turn_timeout_ms" json:"first_turn_timeout_ms,omitempty"`
	WinBonus           int `yaml:"win_bonus" json:"win_bonus,omitempty"`
	ForfeitScore       int `yaml:"forfeit_score" json:"forfeit_score,omitempty"`
	MinScore           int `yaml:"min_score" json:"min_score,omitempty"`
}

const (
	OutsideReport = "report"
	OutsideTouch  = "touch"
	OutsideLose   = "lose"
)

// Defaults mirrors assets/match.yaml.
func Defaults() MatchConfig {
	return MatchConfig{
		Seed:           1,
		MaxTick:        200,
		League:         0,
		WinScore:       5,
		HitChance:      80,
		DopingHitBonus: 5,
		StartEnergy:    20,
		MaxEnergy:      20,
		Outside:        OutsideReport,
		Piste:          PisteConfig{Length: 20, StartA: 7, StartB: 13},
		Referee: RefereeConfig{
			TurnTimeoutMS:      50,
			FirstTurnTimeoutMS: 1000,
			WinBonus:           10,
			ForfeitScore:       20,
			MinScore:           -20,
		},
	}
}

// WithDefaults fills zero fields from Defaults. Seed, League, HitChance,
// StartEnergy and the two bonuses are left alone: zero is meaningful for them.
func (c MatchConfig) WithDefaults() MatchConfig {
	d := Defaults()
	if c.MaxTick <= 0 {
		c.MaxTick = d.MaxTick
	}
	if c.WinScore <= 0 {
		c.WinScore = d.WinScore
	}
	if c.MaxEnergy == 0 {
		c.MaxEnergy = d.MaxEnergy
	}
	if c.Outside == "" {
		c.Outside = d.Outside
	}
	if c.Piste.Length == 0 && c.Piste.StartA == 0 && c.Piste.StartB == 0 {
		c.Piste = d.Piste
	}
	r := &c.Referee
	if r.TurnTimeoutMS <= 0 {
		r.TurnTimeoutMS = d.Referee.TurnTimeoutMS
	}
	if r.FirstTurnTimeoutMS <= 0 {
		r.FirstTurnTimeoutMS = d.Referee.FirstTurnTimeoutMS
	}
	if r.ForfeitScore == 0 {
		r.ForfeitScore = d.Referee.ForfeitScore
	}
	if r.MinScore == 0 {
		r.MinScore = d.Referee.MinScore
	}
	return c
}
