package agent

import "context"

// Script replays a fixed list of answers, then keeps repeating the last
// one. Entries go out verbatim so malformed replies can be scripted too.
type Script struct {
	name  string
	moves []string
	next  int
}

func NewScript(name string, moves ...string) *Script {
	return &Script{name: name, moves: moves}
}

func (s *Script) Name() string { return s.name }

func (s *Script) Act(_ context.Context, _ Turn) (string, error) {
	if len(s.moves) == 0 {
		return "", ErrNoAction
	}
	m := s.moves[s.next]
	if s.next < len(s.moves)-1 {
		s.next++
	}
	return m, nil
}
