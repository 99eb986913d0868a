// Package battle is the combat resolution engine. Every public transition on
// Engine takes a *Battle and returns a new one; the input is never modified,
// and a rejected transition returns it unchanged together with an error.
// All randomness comes from the stream stored in the battle, so replaying
// the same inputs from the same seed yields identical states.
package battle

import (
	"fmt"

	"github.com/peterkuimelis/quizcrawl/internal/config"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/quiz"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
)

const (
	DefaultHP     = 50
	DefaultEnergy = 3
)

// EngineConfig holds the collaborators of an engine. Zero fields get defaults.
type EngineConfig struct {
	Tables      *content.Tables
	Rules       *config.Rules
	Questions   quiz.Source
	Judge       quiz.Judge
	Logger      log.EventLogger
	Supplies    map[string]Supply
	Consumables map[string]Consumable
}

// Engine resolves battles against read-only content. It holds no battle
// state and can drive any number of battles.
type Engine struct {
	Tables      *content.Tables
	Rules       config.Rules
	Questions   quiz.Source
	Judge       quiz.Judge
	Logger      log.EventLogger
	Supplies    map[string]Supply
	Consumables map[string]Consumable
}

// NewEngine creates an engine, filling unset collaborators with defaults.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		Tables:      cfg.Tables,
		Rules:       config.Default(),
		Questions:   cfg.Questions,
		Judge:       cfg.Judge,
		Logger:      cfg.Logger,
		Supplies:    cfg.Supplies,
		Consumables: cfg.Consumables,
	}
	if cfg.Rules != nil {
		e.Rules = cfg.Rules.Sanitize()
	}
	if e.Tables == nil {
		e.Tables = content.Builtin()
	}
	if e.Questions == nil {
		e.Questions = quiz.Arithmetic{}
	}
	if e.Judge == nil {
		e.Judge = quiz.Matches
	}
	if e.Logger == nil {
		e.Logger = log.Discard{}
	}
	if e.Supplies == nil {
		e.Supplies = DefaultSupplies()
	}
	if e.Consumables == nil {
		e.Consumables = DefaultConsumables()
	}
	return e
}

// Setup is the roster snapshot a battle is built from.
type Setup struct {
	Seed        uint32
	HP          int
	MaxHP       int
	Energy      int
	Difficulty  int
	Deck        []string // card definition ids
	Enemies     []string // enemy definition ids
	Supplies    []string
	Consumables []string
}

// SetupFromEncounter converts an encounter into a battle setup.
func SetupFromEncounter(enc content.Encounter, seed uint32) Setup {
	return Setup{
		Seed:        seed,
		HP:          enc.HP,
		MaxHP:       enc.MaxHP,
		Energy:      enc.Energy,
		Difficulty:  enc.Difficulty,
		Deck:        enc.DeckList(),
		Enemies:     enc.Enemies,
		Supplies:    enc.Supplies,
		Consumables: enc.Consumables,
	}
}

// NewBattle builds the opening state: piles from the deck, a seeded shuffle,
// telegraphed intents, battle-start supply hooks, then the first player turn.
// Unknown card and enemy ids are skipped with a diagnostic.
func (e *Engine) NewBattle(s Setup) (*Battle, error) {
	b := &Battle{
		Rng:         rng.New(s.Seed),
		Turn:        1,
		Phase:       PhasePlayer,
		Difficulty:  s.Difficulty,
		Supplies:    append([]string(nil), s.Supplies...),
		Consumables: append([]string(nil), s.Consumables...),
	}

	maxHP, hp := s.MaxHP, s.HP
	if maxHP <= 0 {
		maxHP = hp
	}
	if maxHP <= 0 {
		maxHP = DefaultHP
	}
	if hp <= 0 || hp > maxHP {
		hp = maxHP
	}
	energy := s.Energy
	if energy <= 0 {
		energy = DefaultEnergy
	}
	b.Player = Player{HP: hp, MaxHP: maxHP, MaxEnergy: energy}

	for _, id := range s.Deck {
		if _, ok := e.Tables.Card(id); !ok {
			e.diagnose(b, "unknown card %q in deck", id)
			continue
		}
		b.Draw = append(b.Draw, e.newCardID(b, id))
	}
	b.Owned = len(b.Draw)
	rng.Shuffle(&b.Rng, b.Draw)

	for _, id := range s.Enemies {
		if _, ok := e.spawnEnemy(b, id, ""); !ok {
			e.diagnose(b, "unknown enemy %q in roster", id)
		}
	}
	if len(b.Enemies) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoEnemies, s.Enemies)
	}
	e.revalidateGuards(b)
	for i := range b.Enemies {
		e.rollIntents(b, i)
	}

	for _, id := range b.Supplies {
		if sup, ok := e.Supplies[id]; ok && sup.OnBattleStart != nil {
			sup.OnBattleStart(e, b)
		}
	}

	e.startPlayerTurn(b)
	return b, nil
}

func (e *Engine) newCardID(b *Battle, defID string) string {
	b.CardSerial++
	return fmt.Sprintf("%s#%d", defID, b.CardSerial)
}

// spawnEnemy appends a fresh enemy instance. It does not roll intents.
func (e *Engine) spawnEnemy(b *Battle, defID, summoner string) (int, bool) {
	def, ok := e.Tables.Enemy(defID)
	if !ok {
		return -1, false
	}
	b.EnemySerial++
	maxHP := max(def.MaxHP, 1)
	b.Enemies = append(b.Enemies, Enemy{
		ID:         fmt.Sprintf("%s#%d", def.ID, b.EnemySerial),
		DefID:      def.ID,
		Name:       def.Name,
		HP:         maxHP,
		MaxHP:      maxHP,
		Block:      max(def.Block, 0),
		SummonerID: summoner,
	})
	return len(b.Enemies) - 1, true
}

// --- event plumbing ---

func (e *Engine) emit(b *Battle, ev log.GameEvent) {
	b.Signals.Seq++
	ev.Seq = b.Signals.Seq
	b.Signals.Events = append(b.Signals.Events, ev)
	e.Logger.Log(ev)
}

func (e *Engine) diagnose(b *Battle, format string, args ...any) {
	e.emit(b, log.NewDiagnosticEvent(b.Turn, b.Phase.String(), fmt.Sprintf(format, args...)))
}

// reject logs a rejection and returns the untouched battle with a wrapped
// sentinel error.
func (e *Engine) reject(b *Battle, err error, format string, args ...any) (*Battle, error) {
	if format != "" {
		err = fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
	}
	e.Logger.Log(log.NewRejectedEvent(b.Turn, b.Phase.String(), err.Error()))
	return b, err
}

// checkResult settles victory or defeat. A result never changes once set.
func (e *Engine) checkResult(b *Battle) {
	if b.Result != Ongoing {
		return
	}
	switch {
	case b.Player.HP <= 0:
		b.Player.HP = 0
		b.Result = Defeat
		e.emit(b, log.NewDefeatEvent(b.Turn, b.Phase.String()))
	case b.LivingCount() == 0:
		b.Result = Victory
		e.emit(b, log.NewVictoryEvent(b.Turn, b.Phase.String()))
	}
}
