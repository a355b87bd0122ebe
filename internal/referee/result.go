package referee

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

var ErrFormat = errors.New("unknown result format")

// Result is what a finished match leaves behind. Arrays are indexed by
// side, A then B.
type Result struct {
	Outcome string         `json:"outcome" msgpack:"outcome"`
	Reason  string         `json:"reason" msgpack:"reason"`
	Winner  string         `json:"winner,omitempty" msgpack:"winner,omitempty"`
	Agents  [2]string      `json:"agents" msgpack:"agents"`
	Points  [2]int         `json:"points" msgpack:"points"`
	Touches [2]int         `json:"touches" msgpack:"touches"`
	Ticks   int            `json:"ticks" msgpack:"ticks"`
	Turns   int            `json:"turns" msgpack:"turns"`
	Faults  [2]string      `json:"faults" msgpack:"faults"`
	Summary []string       `json:"summary" msgpack:"summary"`
	Events  []combat.Event `json:"events,omitempty" msgpack:"events,omitempty"`
}

func (r *Referee) result() *Result {
	s := r.state()
	var faulty [2]bool
	res := &Result{
		Outcome: s.Outcome.String(),
		Reason:  s.Reason,
		Ticks:   s.Tick,
		Turns:   r.turns,
		Events:  r.rec.Events,
	}
	for _, side := range sides {
		res.Agents[side] = r.agents[side].Name()
		res.Touches[side] = s.Team(side).Score
		if f := r.faults[side]; f != nil {
			faulty[side] = true
			res.Faults[side] = string(f.Kind)
		}
	}
	if w, ok := s.Outcome.Winner(); ok {
		res.Winner = w.String()
	}
	res.Points = Points(s, faulty, r.cfg)
	r.summaryf("Final result: %s(%d), %s(%d)", res.Agents[0], res.Points[0], res.Agents[1], res.Points[1])
	res.Summary = r.summary
	return res
}

// Encode writes res as indented JSON or msgpack.
func (res *Result) Encode(w io.Writer, format string) error {
	switch format {
	case "", FormatJSON:
		b := combat.MarshalPretty(res)
		_, err := w.Write(append(b, '\n'))
		return err
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(res)
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// Decode reads back what Encode wrote. Event payload numbers come back as
// whatever the format decodes them to.
func Decode(rd io.Reader, format string) (*Result, error) {
	var res Result
	switch format {
	case "", FormatJSON:
		if err := json.NewDecoder(rd).Decode(&res); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(rd).Decode(&res); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return &res, nil
}
