package battle

import (
	"strings"
	"testing"

	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

func TestBaseSequenceWraps(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 6), Enemies: []string{"cultist"}})

	want := []string{"incantation", "dark_strike", "dark_strike", "incantation", "dark_strike"}
	for i, w := range want {
		if i > 0 {
			e.rollIntents(b, 0)
		}
		if got := b.Enemies[0].Moves; len(got) != 1 || got[0] != w {
			t.Fatalf("roll %d: expected %s, got %v", i, w, got)
		}
	}
}

func TestPhaseSwitchResetsCursor(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 6), Enemies: []string{"archivist"}})
	a := &b.Enemies[0]

	if a.Moves[0] != "lecture" || a.SeqKey != "calm" {
		t.Fatalf("expected calm/lecture at full HP, got %s/%v", a.SeqKey, a.Moves)
	}
	e.rollIntents(b, 0)
	if a.Moves[0] != "strike" {
		t.Fatalf("expected strike, got %v", a.Moves)
	}

	a.HP = 50 // 41%: the 50% phase applies
	e.rollIntents(b, 0)
	if a.SeqKey != "frenzy" || a.Moves[0] != "barrage" {
		t.Fatalf("expected frenzy/barrage, got %s/%v", a.SeqKey, a.Moves)
	}
	e.rollIntents(b, 0)
	if a.Moves[0] != "shred" {
		t.Fatalf("same key carries the cursor: expected shred, got %v", a.Moves)
	}

	a.HP = a.MaxHP
	e.rollIntents(b, 0)
	if a.SeqKey != "calm" || a.Moves[0] != "lecture" {
		t.Errorf("switching back resets the cursor: got %s/%v", a.SeqKey, a.Moves)
	}
}

func TestPhaseThresholdIsExact(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 6), Enemies: []string{"archivist"}})
	a := &b.Enemies[0]

	a.HP = 61 // 50.8%: still above the 50% phase
	e.rollIntents(b, 0)
	if a.SeqKey != "calm" {
		t.Fatalf("61/120: expected calm, got %s/%v", a.SeqKey, a.Moves)
	}

	a.HP = 60 // exactly 50%
	e.rollIntents(b, 0)
	if a.SeqKey != "frenzy" || a.Moves[0] != "barrage" {
		t.Errorf("60/120: expected frenzy/barrage, got %s/%v", a.SeqKey, a.Moves)
	}
}

func TestNoRepeatAcrossBatch(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 6), Enemies: []string{"twin_fang"}})
	def, _ := e.Tables.Enemy("twin_fang")
	category := func(id string) string {
		m, ok := def.Behavior.Move(id)
		if !ok {
			t.Fatalf("unknown move %s", id)
		}
		return m.CategoryOf()
	}

	last := ""
	for roll := 0; roll < 40; roll++ {
		if roll > 0 {
			e.rollIntents(b, 0)
		}
		moves := b.Enemies[0].Moves
		if len(moves) != 2 {
			t.Fatalf("roll %d: expected 2 moves, got %v", roll, moves)
		}
		for _, m := range moves {
			c := category(m)
			if c == last {
				t.Fatalf("roll %d: category %s repeated (%v)", roll, c, moves)
			}
			last = c
		}
	}
}

func TestWeightedPickIsDeterministic(t *testing.T) {
	e, _ := newTestEngine(t)
	roll := func() []string {
		b := mustBattle(t, e, Setup{Seed: 99, Deck: repeat("defend", 6), Enemies: []string{"acid_slime"}})
		var seen []string
		for i := 0; i < 20; i++ {
			e.rollIntents(b, 0)
			seen = append(seen, b.Enemies[0].Moves...)
		}
		return seen
	}
	a, c := roll(), roll()
	if strings.Join(a, ",") != strings.Join(c, ",") {
		t.Errorf("same seed produced different moves:\n%v\n%v", a, c)
	}
}

func TestUnknownSequenceStepIsSkipped(t *testing.T) {
	e, logger := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 6), Enemies: []string{"glitchy"}})

	if got := b.Enemies[0].Moves; len(got) != 1 || got[0] != "idle" {
		t.Fatalf("expected idle, got %v", got)
	}
	found := false
	for _, ev := range logger.EventsOfType(log.EventDiagnostic) {
		if strings.Contains(ev.Details, "ghost") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic naming the unknown step")
	}
}

func TestEnemyWithoutBehaviorTelegraphsNothing(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 6), Enemies: []string{"statue"}})
	if len(b.Enemies[0].Intents) != 0 {
		t.Fatalf("expected no intents, got %v", b.Enemies[0].Intents)
	}
	b = endTurn(t, e, b)
	b = runEnemyPhase(t, e, b)
	if b.Player.HP != 50 || b.Turn != 2 {
		t.Errorf("idle enemy round: HP %d turn %d", b.Player.HP, b.Turn)
	}
}

func TestIntentsRerollAfterActing(t *testing.T) {
	e, logger := newTestEngine(t)
	dumpOnFailure(t, logger)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 6), Enemies: []string{"cultist"}})

	b = endTurn(t, e, b)
	b = runEnemyPhase(t, e, b)

	c := b.Enemies[0]
	if Stacks(c.Statuses, content.StatusStrength) != 3 {
		t.Errorf("incantation should grant 3 strength, got %v", c.Statuses)
	}
	if len(c.Moves) != 1 || c.Moves[0] != "dark_strike" {
		t.Errorf("expected dark_strike telegraphed, got %v", c.Moves)
	}
}

func TestDescribeIntent(t *testing.T) {
	cases := map[string]content.Intent{
		"attack 6x3":          {Kind: content.IntentAttack, Amount: 6, Hits: 3},
		"attack 10":           {Kind: content.IntentAttack, Amount: 10, Hits: 1},
		"add 2 dazed to draw": {Kind: content.IntentAddCard, Card: "dazed", Count: 2, Pile: "draw"},
		"unknown":             {},
	}
	for want, in := range cases {
		if got := DescribeIntent(in); got != want {
			t.Errorf("DescribeIntent(%+v) = %q, want %q", in, got, want)
		}
	}
}
