package main

import (
	"context"
	"io"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/referee"
)

type batchSummary struct {
	Runs       int            `json:"runs" msgpack:"runs"`
	Agents     [2]string      `json:"agents" msgpack:"agents"`
	Outcomes   map[string]int `json:"outcomes" msgpack:"outcomes"`
	Wins       [2]int         `json:"wins" msgpack:"wins"`
	WinRate    [2]float64     `json:"win_rate" msgpack:"win_rate"`
	Faults     [2]int         `json:"faults" msgpack:"faults"`
	AvgPoints  [2]float64     `json:"avg_points" msgpack:"avg_points"`
	AvgTouches [2]float64     `json:"avg_touches" msgpack:"avg_touches"`
	AvgTicks   float64        `json:"avg_ticks" msgpack:"avg_ticks"`
	FirstSeed  int64          `json:"first_seed" msgpack:"first_seed"`
	SeedStep   int64          `json:"seed_step" msgpack:"seed_step"`

	sumPoints  [2]int
	sumTouches [2]int
	sumTicks   int
}

const seedStep = 7919

func (b *batchSummary) add(res *referee.Result) {
	b.Outcomes[res.Outcome]++
	for side := 0; side < 2; side++ {
		if res.Winner == combat.Side(side).String() {
			b.Wins[side]++
		}
		if res.Faults[side] != "" {
			b.Faults[side]++
		}
		b.sumPoints[side] += res.Points[side]
		b.sumTouches[side] += res.Touches[side]
	}
	b.sumTicks += res.Ticks
}

func (b *batchSummary) finish() {
	if b.Runs == 0 {
		return
	}
	n := float64(b.Runs)
	for side := 0; side < 2; side++ {
		b.WinRate[side] = float64(b.Wins[side]) / n
		b.AvgPoints[side] = float64(b.sumPoints[side]) / n
		b.AvgTouches[side] = float64(b.sumTouches[side]) / n
	}
	b.AvgTicks = float64(b.sumTicks) / n
}

func (b *batchSummary) encode(format string) func(io.Writer) error {
	return func(w io.Writer) error {
		if format == referee.FormatMsgpack {
			return msgpack.NewEncoder(w).Encode(b)
		}
		_, err := w.Write(append(combat.MarshalPretty(b), '\n'))
		return err
	}
}

// runBatch plays o.n matches on a worker pool. Match i uses seed
// base+i*seedStep whatever worker picks it up, so a batch is reproducible.
func runBatch(ctx context.Context, st *setup, o options, log *zap.Logger) (*batchSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sum := &batchSummary{
		Runs:      o.n,
		Agents:    st.specs,
		Outcomes:  map[string]int{},
		FirstSeed: st.rules.Seed,
		SeedStep:  seedStep,
	}
	var mu sync.Mutex
	var firstErr error
	wg := sync.WaitGroup{}
	workers := o.workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, o.n)
	quiet := log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rules := st.rules
				rules.Seed = st.rules.Seed + int64(i)*seedStep
				res, err := runMatch(ctx, st, rules, quiet, nil)

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
						cancel()
					}
				} else {
					sum.add(res)
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < o.n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	sum.finish()
	log.Info("batch summary",
		zap.Int("runs", sum.Runs),
		zap.Float64s("win_rate", sum.WinRate[:]),
		zap.Float64("avg_ticks", sum.AvgTicks))
	return sum, nil
}
