package combat

// MatchObserver receives the events of a bout synchronously, in resolution
// order, while Tick runs. Implementations must not mutate the state they are
// handed; players are passed by pointer so MatchState.SideOf can place them.
type MatchObserver interface {
	PlayerKO(p *PlayerState)
	Scored(team *TeamState)
	ScoredBoth()
	Outside(p *PlayerState)
	Collided()
	WinTheGame(winner, loser *TeamState)
	Draw()
	Moved(p *PlayerState, from, to int)
	EnergyChanged(p *PlayerState, delta int)
	ActionResolved(p *PlayerState, a ActionType)
	Hit(p *PlayerState, succeeded bool)
	Defended(p *PlayerState, succeeded bool)
	Doped(p *PlayerState, a ActionType)
}

// NopObserver ignores everything. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) PlayerKO(*PlayerState)                   {}
func (NopObserver) Scored(*TeamState)                       {}
func (NopObserver) ScoredBoth()                             {}
func (NopObserver) Outside(*PlayerState)                    {}
func (NopObserver) Collided()                               {}
func (NopObserver) WinTheGame(_, _ *TeamState)              {}
func (NopObserver) Draw()                                   {}
func (NopObserver) Moved(*PlayerState, int, int)            {}
func (NopObserver) EnergyChanged(*PlayerState, int)         {}
func (NopObserver) ActionResolved(*PlayerState, ActionType) {}
func (NopObserver) Hit(*PlayerState, bool)                  {}
func (NopObserver) Defended(*PlayerState, bool)             {}
func (NopObserver) Doped(*PlayerState, ActionType)          {}

// Observers fans every call out, in slice order.
type Observers []MatchObserver

func (o Observers) PlayerKO(p *PlayerState) {
	for _, ob := range o {
		ob.PlayerKO(p)
	}
}

func (o Observers) Scored(team *TeamState) {
	for _, ob := range o {
		ob.Scored(team)
	}
}

func (o Observers) ScoredBoth() {
	for _, ob := range o {
		ob.ScoredBoth()
	}
}

func (o Observers) Outside(p *PlayerState) {
	for _, ob := range o {
		ob.Outside(p)
	}
}

func (o Observers) Collided() {
	for _, ob := range o {
		ob.Collided()
	}
}

func (o Observers) WinTheGame(winner, loser *TeamState) {
	for _, ob := range o {
		ob.WinTheGame(winner, loser)
	}
}

func (o Observers) Draw() {
	for _, ob := range o {
		ob.Draw()
	}
}

func (o Observers) Moved(p *PlayerState, from, to int) {
	for _, ob := range o {
		ob.Moved(p, from, to)
	}
}

func (o Observers) EnergyChanged(p *PlayerState, delta int) {
	for _, ob := range o {
		ob.EnergyChanged(p, delta)
	}
}

func (o Observers) ActionResolved(p *PlayerState, a ActionType) {
	for _, ob := range o {
		ob.ActionResolved(p, a)
	}
}

func (o Observers) Hit(p *PlayerState, succeeded bool) {
	for _, ob := range o {
		ob.Hit(p, succeeded)
	}
}

func (o Observers) Defended(p *PlayerState, succeeded bool) {
	for _, ob := range o {
		ob.Defended(p, succeeded)
	}
}

func (o Observers) Doped(p *PlayerState, a ActionType) {
	for _, ob := range o {
		ob.Doped(p, a)
	}
}
