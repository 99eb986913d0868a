package battle

import (
	"slices"
	"testing"

	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// Scenario A: a 6-damage, 1-cost attack answered correctly.
func TestCorrectAnswerAppliesAttack(t *testing.T) {
	e, logger := newTestEngine(t)
	dumpOnFailure(t, logger)
	b := mustBattle(t, e, Setup{Deck: repeat("strike", 8), Enemies: []string{"dummy"}})
	card := b.Hand[0]

	b = play(t, e, b, card, "dummy#1")
	if b.Answering == nil || b.Answering.CardID != card {
		t.Fatalf("expected %s staged behind a question", card)
	}
	if enemy(t, b, "dummy#1").HP != 20 {
		t.Fatalf("effect applied before the answer")
	}
	b = answer(t, e, b, right)

	if hp := enemy(t, b, "dummy#1").HP; hp != 14 {
		t.Errorf("expected enemy HP 14, got %d", hp)
	}
	if b.Player.Energy != 2 {
		t.Errorf("expected energy 2, got %d", b.Player.Energy)
	}
	if !slices.Contains(b.Discard, card) {
		t.Errorf("expected %s in discard, discard=%v", card, b.Discard)
	}
	if b.Streak != 1 {
		t.Errorf("expected streak 1, got %d", b.Streak)
	}
}

// Scenario C: a wrong answer with a scheduled punishment.
func TestWrongAnswerDealsForcedPenalty(t *testing.T) {
	e, logger := newTestEngine(t)
	dumpOnFailure(t, logger)
	b := mustBattle(t, e, Setup{Deck: repeat("heavy", 8), Enemies: []string{"dummy"}})
	b.ForcedPenalty = 15
	b.Streak = 3
	card := b.Hand[0]

	b = play(t, e, b, card, "")
	b = answer(t, e, b, wrong)

	if b.Player.HP != 35 {
		t.Errorf("expected player HP 35, got %d", b.Player.HP)
	}
	if !slices.Contains(b.Discard, card) {
		t.Errorf("expected %s in discard, discard=%v", card, b.Discard)
	}
	if b.Streak != 0 {
		t.Errorf("expected streak reset, got %d", b.Streak)
	}
	if hp := enemy(t, b, "dummy#1").HP; hp != 20 {
		t.Errorf("card effect must not apply, enemy HP %d", hp)
	}
	if b.ForcedPenalty != 0 {
		t.Errorf("penalty should be consumed, got %d", b.ForcedPenalty)
	}
	if b.Player.Energy != 1 {
		t.Errorf("cost is paid regardless, energy %d", b.Player.Energy)
	}
}

func TestWrongAnswerWithoutPenalty(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("strike", 8), Enemies: []string{"dummy"}})
	b = play(t, e, b, b.Hand[0], "")
	b = answer(t, e, b, wrong)
	if b.Player.HP != 50 {
		t.Errorf("no penalty scheduled, HP %d", b.Player.HP)
	}
}

func TestInstantCardSkipsQuestion(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"dummy"}})
	jab := giveCard(t, e, b, "quick_jab")

	b = play(t, e, b, jab, "")

	if b.Answering != nil {
		t.Fatalf("instant card staged a question")
	}
	if hp := enemy(t, b, "dummy#1").HP; hp != 17 {
		t.Errorf("expected HP 17, got %d", hp)
	}
	if !slices.Contains(b.Discard, jab) {
		t.Errorf("expected %s in discard", jab)
	}
}

func TestExhaustCardGoesToExhaust(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{HP: 30, MaxHP: 50, Deck: repeat("defend", 8), Enemies: []string{"dummy"}})
	card := giveCard(t, e, b, "bandage")

	b = play(t, e, b, card, "")
	b = answer(t, e, b, right)

	if b.Player.HP != 36 {
		t.Errorf("expected HP 36, got %d", b.Player.HP)
	}
	if !slices.Contains(b.Exhaust, card) || slices.Contains(b.Discard, card) {
		t.Errorf("expected %s exhausted, exhaust=%v discard=%v", card, b.Exhaust, b.Discard)
	}
}

func TestStreakBonusEnergy(t *testing.T) {
	e, logger := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("strike", 8), Enemies: []string{"brute"}})
	b.Streak = 4

	b = play(t, e, b, b.Hand[0], "")
	b = answer(t, e, b, right)

	if b.Streak != 5 {
		t.Fatalf("expected streak 5, got %d", b.Streak)
	}
	// 3 - 1 (cost) + 1 (bonus)
	if b.Player.Energy != 3 {
		t.Errorf("expected energy 3, got %d", b.Player.Energy)
	}
	if len(logger.EventsOfType(log.EventStreakBonus)) != 1 {
		t.Errorf("expected one streak bonus event")
	}
}

func TestEmpowerDoublesNextAttackOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"brute"}})
	b.Player.Energy = 5
	emp := giveCard(t, e, b, "empower")
	s1 := giveCard(t, e, b, "strike")
	s2 := giveCard(t, e, b, "strike")

	b = answer(t, e, play(t, e, b, emp, ""), right)
	if Stacks(b.Player.Statuses, content.StatusEmpower) != 1 {
		t.Fatalf("expected empower, got %v", b.Player.Statuses)
	}
	b = answer(t, e, play(t, e, b, s1, ""), right)
	if hp := enemy(t, b, "brute#1").HP; hp != 48 {
		t.Errorf("empowered strike: expected HP 48, got %d", hp)
	}
	if Stacks(b.Player.Statuses, content.StatusEmpower) != 0 {
		t.Errorf("empower should clear after one attack")
	}
	b = answer(t, e, play(t, e, b, s2, ""), right)
	if hp := enemy(t, b, "brute#1").HP; hp != 42 {
		t.Errorf("plain strike: expected HP 42, got %d", hp)
	}
}

func TestMultiHitTriggersThresholdBetweenHits(t *testing.T) {
	e, logger := newTestEngine(t)
	dumpOnFailure(t, logger)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"sentinel"}})
	enemy(t, b, "sentinel#1").HP = 22
	card := giveCard(t, e, b, "twin_strike")

	b = answer(t, e, play(t, e, b, card, ""), right)

	// First hit: 22 -> 19 fires the block threshold; second hit is absorbed.
	s := enemy(t, b, "sentinel#1")
	if s.HP != 19 || s.Block != 12 {
		t.Errorf("expected HP 19 block 12, got HP %d block %d", s.HP, s.Block)
	}
}

func TestDamageAllHitsEveryEnemy(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"dummy", "dummy"}})
	card := giveCard(t, e, b, "cleave")

	b = answer(t, e, play(t, e, b, card, ""), right)

	for _, id := range []string{"dummy#1", "dummy#2"} {
		if hp := enemy(t, b, id).HP; hp != 12 {
			t.Errorf("%s: expected HP 12, got %d", id, hp)
		}
	}
}

func TestPierceIgnoresBlock(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"dummy"}})
	enemy(t, b, "dummy#1").Block = 10
	card := giveCard(t, e, b, "piercing_shot")

	b = answer(t, e, play(t, e, b, card, ""), right)

	d := enemy(t, b, "dummy#1")
	if d.HP != 13 || d.Block != 10 {
		t.Errorf("expected HP 13 block 10, got HP %d block %d", d.HP, d.Block)
	}
}

func TestSpendAllEnergy(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"brute"}})
	bul := giveCard(t, e, b, "bulwark")

	b = answer(t, e, play(t, e, b, bul, ""), right)

	if b.Player.Energy != 0 || b.Player.Block != 15 {
		t.Errorf("expected energy 0 block 15, got energy %d block %d", b.Player.Energy, b.Player.Block)
	}
}

func TestBodySlamUsesBlock(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"brute"}})
	b.Player.Block = 9
	card := giveCard(t, e, b, "body_slam")

	b = answer(t, e, play(t, e, b, card, ""), right)

	if hp := enemy(t, b, "brute#1").HP; hp != 51 {
		t.Errorf("expected HP 51, got %d", hp)
	}
}

func TestPoisonCards(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{HP: 20, MaxHP: 50, Deck: repeat("defend", 8), Enemies: []string{"brute"}})
	b.Player.Energy = 3
	dart := giveCard(t, e, b, "toxic_dart")
	cat := giveCard(t, e, b, "catalyst")
	leech := giveCard(t, e, b, "leech_toxin")

	b = answer(t, e, play(t, e, b, dart, ""), right)
	b = answer(t, e, play(t, e, b, cat, ""), right)
	if got := Stacks(enemy(t, b, "brute#1").Statuses, content.StatusPoison); got != 10 {
		t.Fatalf("expected poison 10, got %d", got)
	}
	b = answer(t, e, play(t, e, b, leech, ""), right)
	if b.Player.HP != 30 {
		t.Errorf("expected HP 30, got %d", b.Player.HP)
	}
}

func TestMulligan(t *testing.T) {
	e, logger := newTestEngine(t)
	dumpOnFailure(t, logger)
	b := mustBattle(t, e, Setup{Deck: repeat("strike", 10), Enemies: []string{"brute"}})
	card := giveCard(t, e, b, "rethink")

	b = answer(t, e, play(t, e, b, card, ""), right)
	if b.Discarding == nil || b.Discarding.Count != 2 {
		t.Fatalf("expected a pending discard of 2, got %+v", b.Discarding)
	}

	_, err := e.PlayCard(b, b.Hand[0], "")
	expectErr(t, err, ErrPendingDiscard)
	_, err = e.ChooseDiscard(b, b.Hand[:1])
	expectErr(t, err, ErrInvalidDiscard)
	_, err = e.ChooseDiscard(b, []string{b.Hand[0], b.Hand[0]})
	expectErr(t, err, ErrInvalidDiscard)

	chosen := []string{b.Hand[0], b.Hand[1]}
	nb, err := e.ChooseDiscard(b, chosen)
	if err != nil {
		t.Fatalf("ChooseDiscard: %v", err)
	}
	checkPiles(t, nb)
	if nb.Discarding != nil {
		t.Errorf("discard should be satisfied")
	}
	if len(nb.Hand) != 5 {
		t.Errorf("expected hand of 5 after discard 2 draw 2, got %d", len(nb.Hand))
	}
	for _, id := range chosen {
		if !slices.Contains(nb.Discard, id) {
			t.Errorf("expected %s in discard", id)
		}
	}
}

func TestUnknownEffectIsNoOp(t *testing.T) {
	e, logger := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"dummy"}})
	card := giveCard(t, e, b, "glitch")

	b = answer(t, e, play(t, e, b, card, ""), right)

	if hp := enemy(t, b, "dummy#1").HP; hp != 20 {
		t.Errorf("unknown effect changed enemy HP to %d", hp)
	}
	if len(logger.EventsOfType(log.EventDiagnostic)) == 0 {
		t.Errorf("expected a diagnostic event")
	}
	if !slices.Contains(b.Discard, card) {
		t.Errorf("card should still settle in discard")
	}
}

func TestExplicitTargetFallsBackToFirstLiving(t *testing.T) {
	e, _ := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("strike", 8), Enemies: []string{"dummy", "dummy"}})
	enemy(t, b, "dummy#1").HP = 0
	enemy(t, b, "dummy#1").Dead = true

	b = answer(t, e, play(t, e, b, b.Hand[0], "dummy#1"), right)

	if hp := enemy(t, b, "dummy#2").HP; hp != 14 {
		t.Errorf("expected fallback target at HP 14, got %d", hp)
	}
}

func TestEmpowerWaitsForAHit(t *testing.T) {
	e, logger := newTestEngine(t)
	b := mustBattle(t, e, Setup{Deck: repeat("defend", 8), Enemies: []string{"dummy"}})
	b.Player.Statuses = AddStacks(b.Player.Statuses, content.StatusEmpower, 1)
	b.Player.Energy = 0

	// Whirlwind with no energy deals no hit, so empower is kept.
	ww := giveCard(t, e, b, "whirlwind")
	b = answer(t, e, play(t, e, b, ww, ""), right)
	if hp := enemy(t, b, "dummy#1").HP; hp != 20 {
		t.Errorf("expected dummy HP 20, got %d", hp)
	}
	if Stacks(b.Player.Statuses, content.StatusEmpower) != 1 {
		t.Fatalf("empower spent without a hit: %v", b.Player.Statuses)
	}

	b.Player.Energy = 1
	ww = giveCard(t, e, b, "whirlwind")
	b = answer(t, e, play(t, e, b, ww, ""), right)
	if hp := enemy(t, b, "dummy#1").HP; hp != 10 {
		t.Errorf("empowered whirlwind: expected dummy HP 10, got %d", hp)
	}
	if Stacks(b.Player.Statuses, content.StatusEmpower) != 0 {
		t.Errorf("empower should clear after the hit")
	}
	ev := logger.EventsOfType(log.EventStatusChange)
	if last := ev[len(ev)-1]; last.Amount != -1 {
		t.Errorf("expected empower -1 event, got %+v", last)
	}
}
