package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/agent"
	"github.com/marcgardent/fencing-codingame-private/internal/referee"
)

func testOptions() options {
	return options{
		cfgDir:  "../../assets",
		envFile: "",
		format:  referee.FormatJSON,
		specA:   "doctrine:counter",
		specB:   "tactician",
		league:  2,
		n:       1,
		workers: 3,
	}
}

func TestShippedAssetsLoad(t *testing.T) {
	st, err := load(testOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.catalog.Len() != 12 {
		t.Fatalf("catalog got=%d actions want=12", st.catalog.Len())
	}
	if st.rules.League != 2 {
		t.Fatalf("league flag not applied")
	}
	for _, d := range st.doctrines {
		if _, err := agent.NewDoctrine(d, st.catalog, nil); err != nil {
			t.Fatalf("doctrine %s: %v", d.Name, err)
		}
	}
}

func TestSingleMatchWritesResult(t *testing.T) {
	o := testOptions()
	o.out = filepath.Join(t.TempDir(), "out.msgpack")
	o.format = referee.FormatMsgpack
	if err := run(context.Background(), o, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(o.out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	res, err := referee.Decode(bytes.NewReader(data), referee.FormatMsgpack)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Outcome == "in_progress" || res.Outcome == "" {
		t.Fatalf("match did not finish: %s", res.Outcome)
	}
	if res.Faults != [2]string{} {
		t.Fatalf("built-in agents faulted: %v", res.Faults)
	}
}

func TestBatchIsReproducible(t *testing.T) {
	o := testOptions()
	o.n = 6
	o.specA = "random"
	st, err := load(o)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	st.match.Referee.TurnTimeoutMS = 1000
	first, err := runBatch(context.Background(), st, o, zap.NewNop())
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	o.workers = 1
	second, err := runBatch(context.Background(), st, o, zap.NewNop())
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("batch depends on scheduling:\n%+v\n%+v", first, second)
	}
	total := 0
	for _, n := range first.Outcomes {
		total += n
	}
	if total != 6 {
		t.Fatalf("outcomes cover %d runs want=6", total)
	}
}

func TestBadAgentSpecFails(t *testing.T) {
	o := testOptions()
	o.specB = "doctrine:nobody"
	o.out = filepath.Join(t.TempDir(), "out.json")
	if err := run(context.Background(), o, zap.NewNop()); err == nil {
		t.Fatalf("expected an error")
	}
}
