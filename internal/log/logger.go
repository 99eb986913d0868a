package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	return Filter(l.events, t)
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Reset drops all stored events.
func (l *MemoryLogger) Reset() {
	l.events = nil
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// Discard is a logger that drops everything.
type Discard struct{}

func (Discard) Log(GameEvent)        {}
func (Discard) Events() []GameEvent { return nil }

// Filter returns the events of the given type.
func Filter(events []GameEvent, t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 8 chars for alignment
	for len(phase) < 8 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

const Player = "player"

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Player",
		Actor:   Player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d ===", turn),
	}
}

func NewDrawEvent(turn int, phase string, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventDraw,
		Card:    cardID,
		Details: fmt.Sprintf("player draws %s", cardID),
	}
}

func NewShuffleEvent(turn int, phase string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventShuffle,
		Amount:  count,
		Details: fmt.Sprintf("discard pile (%d cards) shuffled into draw pile", count),
	}
}

func NewPlayCardEvent(turn int, phase string, cardID string, cost int, target string) GameEvent {
	details := fmt.Sprintf("player plays %s (cost %d)", cardID, cost)
	if target != "" {
		details += " → " + target
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventPlayCard,
		Card:    cardID,
		Amount:  cost,
		Details: details,
	}
}

func NewQuestionEvent(turn int, phase string, cardID string, prompt string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventQuestion,
		Card:    cardID,
		Details: fmt.Sprintf("question for %s: %s", cardID, prompt),
	}
}

func NewAnswerEvent(turn int, phase string, cardID string, correct bool, streak int) GameEvent {
	verdict := "wrong"
	if correct {
		verdict = "correct"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventAnswer,
		Card:    cardID,
		Amount:  streak,
		Details: fmt.Sprintf("answer for %s is %s (streak %d)", cardID, verdict, streak),
	}
}

func NewCardResolveEvent(turn int, phase string, cardID string, kind string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventCardResolve,
		Card:    cardID,
		Details: fmt.Sprintf("%s resolves (%s)", cardID, kind),
	}
}

// NewPileMoveEvent covers discard, exhaust, return-to-hand and add-card moves.
func NewPileMoveEvent(turn int, phase string, t EventType, cardID string, reason string) GameEvent {
	var verb string
	switch t {
	case EventDiscard:
		verb = "is discarded"
	case EventExhaust:
		verb = "is exhausted"
	case EventReturnToHand:
		verb = "returns to hand"
	case EventAddCard:
		verb = "is added"
	default:
		verb = "moves"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    t,
		Card:    cardID,
		Details: fmt.Sprintf("%s %s (%s)", cardID, verb, reason),
	}
}

func NewEnergyEvent(turn int, phase string, oldEnergy, newEnergy int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventEnergyChange,
		Amount:  newEnergy - oldEnergy,
		Details: fmt.Sprintf("energy: %d → %d (%s)", oldEnergy, newEnergy, reason),
	}
}

func NewDamageEvent(turn int, phase string, target string, blocked, hpLoss, hp int, source string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   target,
		Type:    EventDamage,
		Amount:  hpLoss,
		Details: fmt.Sprintf("%s takes %d damage (%d blocked) from %s, HP %d", target, hpLoss, blocked, source, hp),
	}
}

func NewBlockEvent(turn int, phase string, actor string, gained, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventBlock,
		Amount:  gained,
		Details: fmt.Sprintf("%s gains %d block (now %d)", actor, gained, total),
	}
}

func NewHealEvent(turn int, phase string, actor string, healed, hp int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventHeal,
		Amount:  healed,
		Details: fmt.Sprintf("%s heals %d (%s), HP %d", actor, healed, reason, hp),
	}
}

func NewStatusEvent(turn int, phase string, actor string, status string, delta, stacks int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventStatusChange,
		Amount:  delta,
		Details: fmt.Sprintf("%s %s %+d (now %d)", actor, status, delta, stacks),
	}
}

func NewStatusTickEvent(turn int, phase string, actor string, status string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventStatusTick,
		Amount:  amount,
		Details: fmt.Sprintf("%s ticks %s for %d", actor, status, amount),
	}
}

func NewIntentEvent(turn int, phase string, actor string, summary string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventIntent,
		Details: fmt.Sprintf("%s intends: %s", actor, summary),
	}
}

func NewEnemyActionEvent(turn int, phase string, actor string, summary string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventEnemyAction,
		Details: fmt.Sprintf("%s acts: %s", actor, summary),
	}
}

func NewRedirectEvent(turn int, phase string, guard, guarded string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   guard,
		Type:    EventRedirect,
		Details: fmt.Sprintf("%s shields %s and takes the hit", guard, guarded),
	}
}

func NewReflectEvent(turn int, phase string, target string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   target,
		Type:    EventReflect,
		Amount:  amount,
		Details: fmt.Sprintf("%d damage reflected to %s", amount, target),
	}
}

func NewThresholdEvent(turn int, phase string, actor string, action string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventThreshold,
		Details: fmt.Sprintf("%s crosses its threshold: %s", actor, action),
	}
}

func NewSummonEvent(turn int, phase string, summoner, summoned string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   summoner,
		Type:    EventSummon,
		Details: fmt.Sprintf("%s summons %s", summoner, summoned),
	}
}

func NewDeathEvent(turn int, phase string, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventDeath,
		Details: fmt.Sprintf("%s is defeated", actor),
	}
}

func NewCollapseEvent(turn int, phase string, actor, summoner string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventCollapse,
		Details: fmt.Sprintf("%s collapses after %s falls", actor, summoner),
	}
}

func NewConsumableEvent(turn int, phase string, id string, target string) GameEvent {
	details := fmt.Sprintf("player uses %s", id)
	if target != "" {
		details += " on " + target
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventConsumable,
		Card:    id,
		Details: details,
	}
}

func NewSupplyEvent(turn int, phase string, id string, what string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventSupply,
		Card:    id,
		Details: fmt.Sprintf("%s: %s", id, what),
	}
}

func NewVictoryEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventVictory,
		Details: "All enemies defeated. Victory!",
	}
}

func NewDefeatEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventDefeat,
		Details: "The player has fallen. Defeat.",
	}
}

func NewRejectedEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   Player,
		Type:    EventRejected,
		Details: fmt.Sprintf("rejected: %s", reason),
	}
}

func NewDiagnosticEvent(turn int, phase string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDiagnostic,
		Details: "diagnostic: " + details,
	}
}
