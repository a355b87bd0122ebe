package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/agent"
	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/config"
	"github.com/marcgardent/fencing-codingame-private/internal/referee"
	"github.com/marcgardent/fencing-codingame-private/internal/spectator"
)

type options struct {
	cfgDir   string
	envFile  string
	out      string
	format   string
	specA    string
	specB    string
	seed     int64
	league   int
	n        int
	workers  int
	logLevel string
	spectate string
	pace     time.Duration
}

func main() {
	var o options
	flag.StringVar(&o.cfgDir, "config", "assets", "config dir (match.yaml, actions.yaml, doctrines/)")
	flag.StringVar(&o.envFile, "env", ".env", "dotenv file with FENCING_* overrides")
	flag.StringVar(&o.out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&o.format, "format", referee.FormatJSON, "result format: json or msgpack")
	flag.StringVar(&o.specA, "a", "doctrine:aggressive", "agent A spec (random, script:..., doctrine:NAME, tactician, exec:CMD)")
	flag.StringVar(&o.specB, "b", "tactician", "agent B spec")
	flag.Int64Var(&o.seed, "seed", 0, "seed (0 = from config)")
	flag.IntVar(&o.league, "league", -1, "zero-based league (-1 = from config)")
	flag.IntVar(&o.n, "n", 1, "number of matches")
	flag.IntVar(&o.workers, "workers", 8, "batch workers")
	flag.StringVar(&o.logLevel, "log", "info", "log level: debug, info, warn, error")
	flag.StringVar(&o.spectate, "spectate", "", "serve the event feed on this address (single match only)")
	flag.DurationVar(&o.pace, "pace", 200*time.Millisecond, "delay per event while spectating")
	flag.Parse()

	log, err := newLogger(o.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, log); err != nil {
		log.Error("simsvc failed", zap.Error(err))
		stop()
		_ = log.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}

// setup is everything a match needs besides its seed.
type setup struct {
	match     config.MatchConfig
	rules     combat.Rules
	catalog   *combat.Catalog
	doctrines []config.DoctrineConfig
	specs     [2]string
}

func load(o options) (*setup, error) {
	mc, ac, docs, err := config.LoadAll(o.cfgDir)
	if err != nil {
		return nil, err
	}
	lookup, err := config.EnvLookup(o.envFile)
	if err != nil {
		return nil, err
	}
	if err := mc.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if o.seed != 0 {
		mc.Seed = o.seed
	}
	if o.league >= 0 {
		mc.League = o.league
	}
	rules, err := combat.NewRules(mc)
	if err != nil {
		return nil, err
	}
	cat, err := combat.NewCatalog(ac)
	if err != nil {
		return nil, err
	}
	return &setup{
		match:     *mc,
		rules:     rules,
		catalog:   cat,
		doctrines: docs,
		specs:     [2]string{o.specA, o.specB},
	}, nil
}

func run(ctx context.Context, o options, log *zap.Logger) error {
	st, err := load(o)
	if err != nil {
		return err
	}
	log.Info("config loaded",
		zap.String("dir", o.cfgDir),
		zap.Int("actions", st.catalog.Len()),
		zap.Int("doctrines", len(st.doctrines)),
		zap.Int64("seed", st.rules.Seed),
		zap.Int("league", st.rules.League))

	if o.n > 1 {
		summary, err := runBatch(ctx, st, o, log)
		if err != nil {
			return err
		}
		if err := writeFile(o.out, summary.encode(o.format)); err != nil {
			return err
		}
		log.Info("batch done", zap.Int("runs", o.n), zap.String("out", filepath.Base(o.out)))
		return nil
	}

	var hub *spectator.Hub
	if o.spectate != "" {
		hub = spectator.NewHub(log)
		srv := &http.Server{Addr: o.spectate, Handler: hub}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("spectator server", zap.Error(err))
			}
		}()
		defer func() {
			hub.Close()
			_ = srv.Close()
		}()
		log.Info("spectator feed", zap.String("addr", o.spectate))
	}

	var onEvent func(combat.Event)
	if hub != nil {
		onEvent = func(ev combat.Event) {
			hub.Publish(ev)
			time.Sleep(o.pace)
		}
	}
	res, err := runMatch(ctx, st, st.rules, log, onEvent)
	if err != nil {
		return err
	}
	if err := writeFile(o.out, func(w io.Writer) error { return res.Encode(w, o.format) }); err != nil {
		return err
	}
	log.Info("match written",
		zap.String("outcome", res.Outcome),
		zap.Ints("points", res.Points[:]),
		zap.String("out", o.out))
	return nil
}

// runMatch builds fresh agents for one bout and referees it. Seeds of the
// built-in random agents follow the match seed.
func runMatch(ctx context.Context, st *setup, rules combat.Rules, log *zap.Logger, onEvent func(combat.Event)) (*referee.Result, error) {
	var agents [2]agent.Agent
	for i, spec := range st.specs {
		deps := agent.Deps{
			Catalog:   st.catalog,
			Doctrines: st.doctrines,
			Seed:      rules.Seed*31 + int64(i),
			Log:       log,
		}
		a, err := agent.Build(ctx, fmt.Sprintf("%s:%s", combat.Side(i), spec), spec, deps)
		if err != nil {
			return nil, err
		}
		if c, ok := a.(io.Closer); ok {
			defer c.Close()
		}
		agents[i] = a
	}

	ref := referee.New(rules, st.match.Referee, st.catalog, agents[0], agents[1], log)
	if onEvent != nil {
		ref.OnEvent(onEvent)
	}
	return ref.Run(ctx)
}

// writeFile writes through a temp file in the target directory and renames
// it into place.
func writeFile(path string, fill func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
