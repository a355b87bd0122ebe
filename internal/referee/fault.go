package referee

import (
	"errors"
	"fmt"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

var ErrFault = errors.New("agent fault")

type FaultKind string

const (
	FaultMalformed FaultKind = "malformed"
	FaultTimeout   FaultKind = "timeout"
	FaultIllegal   FaultKind = "illegal"
)

// Fault is an agent losing the bout by misbehaving rather than by fencing.
type Fault struct {
	Kind  FaultKind
	Side  combat.Side
	Agent string
	Err   error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s (%s): %s", f.Agent, f.Side, f.Kind)
	}
	return fmt.Sprintf("%s (%s): %s: %v", f.Agent, f.Side, f.Kind, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

func (f *Fault) Is(target error) bool { return target == ErrFault }

// Reason is the line written to the faulty team's log.
func (f *Fault) Reason() string {
	switch f.Kind {
	case FaultTimeout:
		return f.Agent + " timeout!"
	case FaultIllegal:
		return fmt.Sprintf("%s played an illegal action: %v", f.Agent, f.Err)
	default:
		return fmt.Sprintf("Wrong output, expected an action: %v", f.Err)
	}
}
