package combat

import "encoding/json"

const (
	EvPlayerKO       = "PlayerKO"
	EvScore          = "Score"
	EvScoreAB        = "ScoreAB"
	EvOutside        = "Outside"
	EvCollide        = "Collide"
	EvWin            = "Win"
	EvDraw           = "Draw"
	EvMove           = "Move"
	EvEnergyChanged  = "EnergyChanged"
	EvActionResolved = "ActionResolved"
	EvHit            = "Hit"
	EvDefended       = "Defended"
	EvDoped          = "Doped"
)

type Event struct {
	Tick    int            `json:"tick" msgpack:"tick"`
	Type    string         `json:"type" msgpack:"type"`
	Payload map[string]any `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// Recorder turns observer calls into Events. State must return the live
// match state (it changes on restart); Emit, when set, sees every event as
// it is recorded.
type Recorder struct {
	State  func() *MatchState
	Emit   func(Event)
	Events []Event
}

func NewRecorder(state func() *MatchState) *Recorder {
	return &Recorder{State: state}
}

func (r *Recorder) push(typ string, payload map[string]any) {
	ev := Event{Type: typ, Payload: payload}
	if s := r.State(); s != nil {
		ev.Tick = s.Tick
	}
	r.Events = append(r.Events, ev)
	if r.Emit != nil {
		r.Emit(ev)
	}
}

func (r *Recorder) side(p *PlayerState) string {
	if side, ok := r.State().SideOf(p); ok {
		return side.String()
	}
	return "?"
}

func (r *Recorder) teamSide(t *TeamState) string {
	if t == nil {
		return "?"
	}
	return r.side(t.Player)
}

func (r *Recorder) PlayerKO(p *PlayerState) {
	r.push(EvPlayerKO, map[string]any{"side": r.side(p), "energy": p.Energy})
}

func (r *Recorder) Scored(team *TeamState) {
	r.push(EvScore, map[string]any{"side": r.teamSide(team), "score": team.Score})
}

func (r *Recorder) ScoredBoth() {
	s := r.State()
	r.push(EvScoreAB, map[string]any{"a": s.TeamA.Score, "b": s.TeamB.Score})
}

func (r *Recorder) Outside(p *PlayerState) {
	r.push(EvOutside, map[string]any{"side": r.side(p), "position": p.Position})
}

func (r *Recorder) Collided() { r.push(EvCollide, nil) }

func (r *Recorder) WinTheGame(winner, loser *TeamState) {
	r.push(EvWin, map[string]any{"winner": r.teamSide(winner), "loser": r.teamSide(loser)})
}

func (r *Recorder) Draw() { r.push(EvDraw, nil) }

func (r *Recorder) Moved(p *PlayerState, from, to int) {
	r.push(EvMove, map[string]any{"side": r.side(p), "from": from, "to": to})
}

func (r *Recorder) EnergyChanged(p *PlayerState, delta int) {
	r.push(EvEnergyChanged, map[string]any{"side": r.side(p), "delta": delta, "energy": p.Energy})
}

func (r *Recorder) ActionResolved(p *PlayerState, a ActionType) {
	r.push(EvActionResolved, map[string]any{"side": r.side(p), "action": a.Name, "code": int(a.Code)})
}

func (r *Recorder) Hit(p *PlayerState, succeeded bool) {
	r.push(EvHit, map[string]any{"side": r.side(p), "ok": succeeded})
}

func (r *Recorder) Defended(p *PlayerState, succeeded bool) {
	r.push(EvDefended, map[string]any{"side": r.side(p), "ok": succeeded})
}

func (r *Recorder) Doped(p *PlayerState, a ActionType) {
	r.push(EvDoped, map[string]any{"side": r.side(p), "action": a.Name, "level": p.DopingLevel})
}

// Types lists the event types in recording order.
func (r *Recorder) Types() []string {
	out := make([]string, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Type
	}
	return out
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
