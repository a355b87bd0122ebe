package agent

import (
	"context"
	"testing"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

func TestTreeNodes(t *testing.T) {
	bb := &Blackboard{}
	yes := &CondNode{Fn: func(*Blackboard) bool { return true }}
	no := &CondNode{Fn: func(*Blackboard) bool { return false }}
	calls := 0
	count := &ActionNode{Fn: func(*Blackboard) bool { calls++; return true }}

	if (&Sequence{Children: []BTNode{yes, no, count}}).Tick(bb) != BTFailure || calls != 0 {
		t.Fatalf("sequence must stop at the first failure")
	}
	if (&Selector{Children: []BTNode{no, count, count}}).Tick(bb) != BTSuccess || calls != 1 {
		t.Fatalf("selector must stop at the first success, calls=%d", calls)
	}
	if (&Selector{Children: []BTNode{no, no}}).Tick(bb) != BTFailure {
		t.Fatalf("selector of failures must fail")
	}
}

func TestTacticianGuardWhenTired(t *testing.T) {
	tc := NewTactician("t", nil, DefaultPersonality, nil)
	ctx := context.Background()

	threatened := Turn{League: 2, Length: 20, Me: Fencer{Position: 7, Energy: 3}, You: Fencer{Position: 10, Energy: 15}}
	if got, _ := tc.Act(ctx, threatened); got != "PARRY" {
		t.Fatalf("tired and threatened got=%q want=PARRY", got)
	}
	safe := threatened
	safe.You.Position = 15
	if got, _ := tc.Act(ctx, safe); got != "BREAK" {
		t.Fatalf("tired and safe got=%q want=BREAK", got)
	}
	spent := threatened
	spent.Me.Energy = 0
	if got, _ := tc.Act(ctx, spent); got != "BREAK" {
		t.Fatalf("no energy for a parry or a step got=%q want=BREAK", got)
	}
}

func TestTacticianAttacksInMeasure(t *testing.T) {
	tc := NewTactician("t", nil, DefaultPersonality, nil)
	turn := Turn{League: 0, Length: 20, Me: Fencer{Position: 7, Energy: 20}, You: Fencer{Position: 10, Energy: 20}}
	if got, _ := tc.Act(context.Background(), turn); got != "LUNGE" {
		t.Fatalf("in measure got=%q want=LUNGE", got)
	}
}

func TestTacticianClosesDistance(t *testing.T) {
	tc := NewTactician("t", nil, DefaultPersonality, nil)
	turn := Turn{League: 0, Length: 20, Me: Fencer{Position: 2, Energy: 20}, You: Fencer{Position: 12, Energy: 20}}
	if got, _ := tc.Act(context.Background(), turn); got != "WALK" {
		t.Fatalf("far away got=%q want=WALK", got)
	}
}

func TestTacticianAnswersAreLegal(t *testing.T) {
	cat := combat.DefaultCatalog()
	for league := 0; league <= 2; league++ {
		tc := NewTactician("t", cat, Personality{Aggression: 1, Caution: 1, LowEnergy: 4}, nil)
		for me := 0; me <= 20; me++ {
			for e := 0; e <= 20; e += 5 {
				turn := Turn{League: league, Length: 20, Me: Fencer{Position: me, Energy: e}, You: Fencer{Position: 20, Energy: 20}}
				got, err := tc.Act(context.Background(), turn)
				if err != nil {
					t.Fatalf("league=%d pos=%d energy=%d: %v", league, me, e, err)
				}
				a, err := cat.Lookup(got)
				if err != nil || !combat.IsUnlocked(a, league) {
					t.Fatalf("illegal answer %q at league %d", got, league)
				}
				if e+a.Energy < 0 {
					t.Fatalf("%s would exhaust at energy %d", got, e)
				}
			}
		}
	}
}
