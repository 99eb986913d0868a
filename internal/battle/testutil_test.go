package battle

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/quizcrawl/internal/config"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/quiz"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
)

// fixedQuestions always asks the same question so tests can answer it.
type fixedQuestions struct{}

func (fixedQuestions) Next(int, *rng.Stream) quiz.Question {
	return quiz.Question{Prompt: "2 + 2 = ?", Answer: "4", Hint: "number"}
}

const (
	right = "4"
	wrong = "5"
)

func idle() content.Move {
	return content.Move{ID: "idle", Weight: 1, Intents: []content.Intent{{Kind: content.IntentBlock}}}
}

// testContent layers a few predictable cards and enemies over the builtins.
func testContent() *content.Tables {
	return content.NewTables(content.BuiltinFile(), content.File{
		Cards: []content.CardDef{
			{ID: "heavy", Name: "Heavy Blow", Cost: 2, Type: content.CardAttack,
				Effect: content.Effect{Kind: content.EffectDamage, Amount: 10}},
			{ID: "glitch", Name: "Glitch", Cost: 1, Type: content.CardSkill,
				Effect: content.Effect{Kind: content.EffectUnknown}},
		},
		Enemies: []content.EnemyDef{
			{ID: "dummy", Name: "Training Dummy", MaxHP: 20,
				Behavior: content.Behavior{Moves: []content.Move{idle()}}},
			{ID: "brute", Name: "Brute", MaxHP: 60,
				Behavior: content.Behavior{
					Moves: []content.Move{{ID: "smash", Weight: 1, Intents: []content.Intent{
						{Kind: content.IntentAttack, Amount: 8, Hits: 1}}}},
					Sequence: []string{"smash"},
				}},
			{ID: "weakener", Name: "Weakener", MaxHP: 30,
				Behavior: content.Behavior{
					Moves: []content.Move{{ID: "sap", Weight: 1, Intents: []content.Intent{
						{Kind: content.IntentDebuff, Status: content.StatusWeak, Amount: 1}}}},
					Sequence: []string{"sap"},
				}},
			{ID: "glitchy", Name: "Glitchy", MaxHP: 30,
				Behavior: content.Behavior{
					Moves:    []content.Move{idle()},
					Sequence: []string{"ghost", "idle"},
				}},
			{ID: "statue", Name: "Statue", MaxHP: 10},
			{ID: "hydra", Name: "Hydra", MaxHP: 40,
				Threshold: &content.Threshold{HP: 1000, Action: content.ThresholdClone},
				Behavior:  content.Behavior{Moves: []content.Move{idle()}}},
		},
	})
}

func newTestEngine(t *testing.T) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(EngineConfig{
		Tables:    testContent(),
		Questions: fixedQuestions{},
		Logger:    logger,
	})
	return e, logger
}

func newTestEngineRules(t *testing.T, rules config.Rules) (*Engine, *log.MemoryLogger) {
	t.Helper()
	e, logger := newTestEngine(t)
	e.Rules = rules.Sanitize()
	return e, logger
}

func repeat(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = id
	}
	return out
}

func mustBattle(t *testing.T, e *Engine, s Setup) *Battle {
	t.Helper()
	if s.HP == 0 {
		s.HP, s.MaxHP = 50, 50
	}
	if s.Seed == 0 {
		s.Seed = 7
	}
	b, err := e.NewBattle(s)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	checkPiles(t, b)
	return b
}

// giveCard adds a fresh card instance to the hand and returns its id.
func giveCard(t *testing.T, e *Engine, b *Battle, defID string) string {
	t.Helper()
	e.addCards(b, defID, 1, "hand")
	id := b.Hand[len(b.Hand)-1]
	if content.DefID(id) != defID {
		t.Fatalf("expected %s in hand, got %s", defID, id)
	}
	return id
}

func findInHand(b *Battle, defID string) string {
	for _, id := range b.Hand {
		if content.DefID(id) == defID {
			return id
		}
	}
	return ""
}

func checkPiles(t *testing.T, b *Battle) {
	t.Helper()
	if err := b.CheckPiles(); err != nil {
		t.Fatalf("pile conservation: %v", err)
	}
}

func play(t *testing.T, e *Engine, b *Battle, cardID, target string) *Battle {
	t.Helper()
	nb, err := e.PlayCard(b, cardID, target)
	if err != nil {
		t.Fatalf("PlayCard(%s): %v", cardID, err)
	}
	checkPiles(t, nb)
	return nb
}

func answer(t *testing.T, e *Engine, b *Battle, ans string) *Battle {
	t.Helper()
	nb, err := e.AnswerQuestion(b, ans)
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	checkPiles(t, nb)
	return nb
}

func endTurn(t *testing.T, e *Engine, b *Battle) *Battle {
	t.Helper()
	nb, err := e.EndPlayerTurn(b)
	if err != nil {
		t.Fatalf("EndPlayerTurn: %v", err)
	}
	checkPiles(t, nb)
	return nb
}

// runEnemyPhase advances the queue until control returns to the player.
func runEnemyPhase(t *testing.T, e *Engine, b *Battle) *Battle {
	t.Helper()
	for i := 0; b.Phase == PhaseEnemy && !b.Over(); i++ {
		if i > 50 {
			t.Fatalf("enemy phase did not finish")
		}
		nb, err := e.AdvanceEnemy(b)
		if err != nil {
			t.Fatalf("AdvanceEnemy: %v", err)
		}
		checkPiles(t, nb)
		b = nb
	}
	return b
}

func expectErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func enemy(t *testing.T, b *Battle, id string) *Enemy {
	t.Helper()
	en, ok := b.Enemy(id)
	if !ok {
		t.Fatalf("enemy %s not found", id)
	}
	return en
}

func dumpOnFailure(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("\n%s", log.FormatAll(logger.Events()))
		}
	})
}
