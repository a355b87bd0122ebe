package agent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

var ErrSpec = errors.New("bad agent spec")

// Deps is what Build may need to assemble an agent.
type Deps struct {
	Catalog   *combat.Catalog
	Doctrines []config.DoctrineConfig
	Seed      int64
	Log       *zap.Logger
}

// Build turns a command-line spec into an agent:
//
//	random[:seed]            uniform over unlocked actions
//	script:WALK,LUNGE,...    fixed answers, last one repeated
//	doctrine:name            built-in or loaded rule set
//	tactician[:agg,caution]  behavior tree
//	exec:cmd arg...          external program on the line protocol
//
// Process agents must be closed by the caller; check for io.Closer.
func Build(ctx context.Context, name, spec string, deps Deps) (Agent, error) {
	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "random":
		seed := deps.Seed
		if arg != "" {
			n, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrSpec, spec, err)
			}
			seed = n
		}
		return NewRandom(name, seed, deps.Catalog), nil
	case "script":
		if arg == "" {
			return nil, fmt.Errorf("%w: %s: empty script", ErrSpec, spec)
		}
		return NewScript(name, strings.Split(arg, ",")...), nil
	case "doctrine":
		cfg, ok := FindDoctrine(arg, deps.Doctrines)
		if !ok {
			return nil, fmt.Errorf("%w: unknown doctrine %q", ErrSpec, arg)
		}
		d, err := NewDoctrine(cfg, deps.Catalog, deps.Log)
		if err != nil {
			return nil, err
		}
		d.name = name
		return d, nil
	case "tactician":
		p := DefaultPersonality
		if arg != "" {
			agg, cau, ok := strings.Cut(arg, ",")
			var err1, err2 error
			p.Aggression, err1 = strconv.ParseFloat(agg, 64)
			p.Caution, err2 = strconv.ParseFloat(cau, 64)
			if !ok || err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: %s: want tactician:aggression,caution", ErrSpec, spec)
			}
		}
		return NewTactician(name, deps.Catalog, p, deps.Log), nil
	case "exec":
		argv := strings.Fields(arg)
		if len(argv) == 0 {
			return nil, fmt.Errorf("%w: %s: missing command", ErrSpec, spec)
		}
		p, err := StartProcess(ctx, name, argv, deps.Log)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrSpec, kind)
}
