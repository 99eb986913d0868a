package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventShuffle
	EventPlayCard
	EventQuestion
	EventAnswer
	EventStreakBonus
	EventCardResolve
	EventDiscard
	EventExhaust
	EventReturnToHand
	EventAddCard
	EventEnergyChange
	EventDamage
	EventBlock
	EventHeal
	EventStatusChange
	EventStatusTick
	EventIntent
	EventEnemyAction
	EventRedirect
	EventReflect
	EventThreshold
	EventSummon
	EventDeath
	EventCollapse
	EventConsumable
	EventSupply
	EventVictory
	EventDefeat
	EventRejected
	EventDiagnostic
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlayCard:
		return "PlayCard"
	case EventQuestion:
		return "Question"
	case EventAnswer:
		return "Answer"
	case EventStreakBonus:
		return "StreakBonus"
	case EventCardResolve:
		return "CardResolve"
	case EventDiscard:
		return "Discard"
	case EventExhaust:
		return "Exhaust"
	case EventReturnToHand:
		return "ReturnToHand"
	case EventAddCard:
		return "AddCard"
	case EventEnergyChange:
		return "EnergyChange"
	case EventDamage:
		return "Damage"
	case EventBlock:
		return "Block"
	case EventHeal:
		return "Heal"
	case EventStatusChange:
		return "StatusChange"
	case EventStatusTick:
		return "StatusTick"
	case EventIntent:
		return "Intent"
	case EventEnemyAction:
		return "EnemyAction"
	case EventRedirect:
		return "Redirect"
	case EventReflect:
		return "Reflect"
	case EventThreshold:
		return "Threshold"
	case EventSummon:
		return "Summon"
	case EventDeath:
		return "Death"
	case EventCollapse:
		return "Collapse"
	case EventConsumable:
		return "Consumable"
	case EventSupply:
		return "Supply"
	case EventVictory:
		return "Victory"
	case EventDefeat:
		return "Defeat"
	case EventRejected:
		return "Rejected"
	case EventDiagnostic:
		return "Diagnostic"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       `json:"seq,omitempty"` // assigned by the logger
	Turn    int       `json:"turn"`          // which turn (1-based)
	Phase   string    `json:"phase"`         // "Player" or "Enemy"
	Actor   string    `json:"actor"`         // "player" or an enemy id
	Type    EventType `json:"type"`
	Card    string    `json:"card,omitempty"` // card id, when one is involved
	Amount  int       `json:"amount,omitempty"`
	Details string    `json:"details"` // human-readable detail string
}
