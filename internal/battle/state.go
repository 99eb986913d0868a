package battle

import (
	"fmt"
	"maps"
	"slices"

	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/quiz"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
)

// Phase is the half of the round currently being played.
type Phase int

const (
	PhasePlayer Phase = iota
	PhaseEnemy
)

func (p Phase) String() string {
	switch p {
	case PhasePlayer:
		return "Player"
	case PhaseEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Result is the outcome of a battle.
type Result int

const (
	Ongoing Result = iota
	Victory
	Defeat
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "Ongoing"
	case Victory:
		return "Victory"
	case Defeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}

// Status is one active status effect. Stacks is always positive; a status
// that would drop to zero is removed.
type Status struct {
	ID     string `json:"id"`
	Stacks int    `json:"stacks"`
}

// Player is the player combatant.
type Player struct {
	HP        int      `json:"hp"`
	MaxHP     int      `json:"max_hp"`
	Block     int      `json:"block"`
	Energy    int      `json:"energy"`
	MaxEnergy int      `json:"max_energy"`
	Statuses  []Status `json:"statuses"`
}

// Enemy is one combatant on the enemy side.
type Enemy struct {
	ID       string   `json:"id"` // instance id, e.g. "cultist#1"
	DefID    string   `json:"def_id"`
	Name     string   `json:"name"`
	HP       int      `json:"hp"`
	MaxHP    int      `json:"max_hp"`
	Block    int      `json:"block"`
	Statuses []Status `json:"statuses"`
	Dead     bool     `json:"dead"`

	// Telegraphed next action.
	Intents []content.Intent `json:"intents"`
	Moves   []string         `json:"moves"`

	// Behavior cursor.
	LastCategory string `json:"last_category,omitempty"`
	SeqKey       string `json:"seq_key,omitempty"`
	SeqCursor    int    `json:"seq_cursor"`

	// SummonerID is a non-owning back-reference used for death collapse.
	SummonerID  string `json:"summoner_id,omitempty"`
	SummonBonus int    `json:"summon_bonus,omitempty"`

	// Guarding is the ally this enemy shields, if it has the guard role.
	Guarding    string `json:"guarding,omitempty"`
	GuardCursor int    `json:"guard_cursor,omitempty"`

	ThresholdSpent bool `json:"threshold_spent,omitempty"`
}

// Alive reports whether the enemy can still act and be targeted.
func (en *Enemy) Alive() bool {
	return !en.Dead && en.HP > 0
}

// AwaitingAnswer is a card staged behind a question.
type AwaitingAnswer struct {
	CardID   string        `json:"card_id"`
	Target   string        `json:"target,omitempty"`
	Question quiz.Question `json:"question"`
}

// AwaitingDiscard is a pending discard selection and the draw that follows it.
type AwaitingDiscard struct {
	Count  int    `json:"count"`
	Draw   int    `json:"draw"`
	Source string `json:"source"`
}

// DecayMark records a holder that carried a decaying status when the enemy
// phase started.
type DecayMark struct {
	Holder string `json:"holder"`
	Status string `json:"status"`
}

// Battle is the complete state of one encounter. Engine transitions never
// modify a Battle they are given; they return a new one.
type Battle struct {
	Player  Player  `json:"player"`
	Enemies []Enemy `json:"enemies"`

	// Piles hold card instance ids. The top of the draw pile is the last element.
	Draw    []string `json:"draw"`
	Hand    []string `json:"hand"`
	Discard []string `json:"discard"`
	Exhaust []string `json:"exhaust"`
	Owned   int      `json:"owned"`

	Phase  Phase    `json:"phase"`
	Queue  []string `json:"queue,omitempty"`
	Cursor int      `json:"cursor"`
	Turn   int      `json:"turn"`

	Answering  *AwaitingAnswer  `json:"answering,omitempty"`
	Discarding *AwaitingDiscard `json:"discarding,omitempty"`

	Streak        int `json:"streak"`
	ForcedPenalty int `json:"forced_penalty,omitempty"`
	Difficulty    int `json:"difficulty"`

	Supplies    []string    `json:"supplies,omitempty"`
	Consumables []string    `json:"consumables,omitempty"`
	DecayWatch  []DecayMark `json:"decay_watch,omitempty"`

	Rng         rng.Stream `json:"rng"`
	CardSerial  int        `json:"card_serial"`
	EnemySerial int        `json:"enemy_serial"`

	Result  Result  `json:"result"`
	Signals Signals `json:"signals"`
}

// Clone returns a deep copy.
func (b *Battle) Clone() *Battle {
	nb := *b
	nb.Player.Statuses = slices.Clone(b.Player.Statuses)
	nb.Enemies = make([]Enemy, len(b.Enemies))
	for i, en := range b.Enemies {
		en.Statuses = slices.Clone(en.Statuses)
		en.Intents = slices.Clone(en.Intents)
		en.Moves = slices.Clone(en.Moves)
		nb.Enemies[i] = en
	}
	nb.Draw = slices.Clone(b.Draw)
	nb.Hand = slices.Clone(b.Hand)
	nb.Discard = slices.Clone(b.Discard)
	nb.Exhaust = slices.Clone(b.Exhaust)
	nb.Queue = slices.Clone(b.Queue)
	if b.Answering != nil {
		a := *b.Answering
		nb.Answering = &a
	}
	if b.Discarding != nil {
		d := *b.Discarding
		nb.Discarding = &d
	}
	nb.Supplies = slices.Clone(b.Supplies)
	nb.Consumables = slices.Clone(b.Consumables)
	nb.DecayWatch = slices.Clone(b.DecayWatch)
	nb.Signals.Events = slices.Clone(b.Signals.Events)
	nb.Signals.EnemyHits = maps.Clone(b.Signals.EnemyHits)
	nb.Signals.Collapsed = slices.Clone(b.Signals.Collapsed)
	return &nb
}

// Over reports whether the battle has ended.
func (b *Battle) Over() bool {
	return b.Result != Ongoing
}

// EnemyIndex returns the roster index of an enemy instance id, or -1.
func (b *Battle) EnemyIndex(id string) int {
	for i := range b.Enemies {
		if b.Enemies[i].ID == id {
			return i
		}
	}
	return -1
}

// Enemy returns the enemy with the given instance id.
func (b *Battle) Enemy(id string) (*Enemy, bool) {
	i := b.EnemyIndex(id)
	if i < 0 {
		return nil, false
	}
	return &b.Enemies[i], true
}

// LivingIDs returns the ids of living enemies in roster order.
func (b *Battle) LivingIDs() []string {
	var ids []string
	for i := range b.Enemies {
		if b.Enemies[i].Alive() {
			ids = append(ids, b.Enemies[i].ID)
		}
	}
	return ids
}

// LivingCount returns the number of living enemies.
func (b *Battle) LivingCount() int {
	n := 0
	for i := range b.Enemies {
		if b.Enemies[i].Alive() {
			n++
		}
	}
	return n
}

// InHand reports whether a card instance is in hand.
func (b *Battle) InHand(cardID string) bool {
	return slices.Contains(b.Hand, cardID)
}

// CheckPiles verifies pile conservation: every owned card is in exactly one
// pile or staged behind a question.
func (b *Battle) CheckPiles() error {
	seen := make(map[string]string, b.Owned)
	piles := []struct {
		name string
		ids  []string
	}{
		{"draw", b.Draw}, {"hand", b.Hand}, {"discard", b.Discard}, {"exhaust", b.Exhaust},
	}
	if b.Answering != nil {
		piles = append(piles, struct {
			name string
			ids  []string
		}{"staged", []string{b.Answering.CardID}})
	}
	total := 0
	for _, p := range piles {
		for _, id := range p.ids {
			if other, dup := seen[id]; dup {
				return fmt.Errorf("card %s is in both %s and %s", id, other, p.name)
			}
			seen[id] = p.name
			total++
		}
	}
	if total != b.Owned {
		return fmt.Errorf("pile total %d does not match owned %d", total, b.Owned)
	}
	return nil
}

// Signals is the host-facing side channel. The engine appends to it and never
// reads it back; hosts drain it.
type Signals struct {
	Events     []log.GameEvent `json:"events,omitempty"`
	Seq        int             `json:"seq"`
	PlayerHits int             `json:"player_hits"`
	EnemyHits  map[string]int  `json:"enemy_hits,omitempty"`
	// Collapsed lists summons removed because their summoner died, in
	// removal order, so a host can pace their disappearance.
	Collapsed []string `json:"collapsed,omitempty"`
}

// DrainSignals returns the pending events and collapse list and clears them.
// Hit counters are monotonic and stay in place.
func (b *Battle) DrainSignals() Signals {
	out := b.Signals
	out.Events = slices.Clone(b.Signals.Events)
	out.Collapsed = slices.Clone(b.Signals.Collapsed)
	out.EnemyHits = maps.Clone(b.Signals.EnemyHits)
	b.Signals.Events = nil
	b.Signals.Collapsed = nil
	return out
}
