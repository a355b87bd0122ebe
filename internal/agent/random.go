package agent

import (
	"context"
	"math/rand"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/util"
)

// Random plays a uniformly drawn unlocked action. Same seed, same bout.
type Random struct {
	name string
	cat  *combat.Catalog
	rng  *rand.Rand
}

func NewRandom(name string, seed int64, cat *combat.Catalog) *Random {
	if cat == nil {
		cat = combat.DefaultCatalog()
	}
	return &Random{name: name, cat: cat, rng: util.New(seed)}
}

func (r *Random) Name() string { return r.name }

func (r *Random) Act(_ context.Context, t Turn) (string, error) {
	opts := r.cat.Unlocked(t.League)
	if len(opts) == 0 {
		return "", ErrNoAction
	}
	return opts[r.rng.Intn(len(opts))].Name, nil
}
