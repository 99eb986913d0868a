// Package view holds the JSON shapes hosts send to clients: a read-only
// projection of a battle, event summaries, and the command protocol spoken
// over the web socket.
package view

import (
	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "state", "events", "error", "game_over"

	State  *BattleView `json:"state,omitempty"`
	Events []EventView `json:"events,omitempty"`
	// Collapsed summons, in removal order, for paced removal animations.
	Collapsed []string `json:"collapsed,omitempty"`

	Error  string `json:"error,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified battle event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Actor   string `json:"actor,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Details string `json:"details"`
}

// CardView describes a card instance.
type CardView struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Playable    bool   `json:"playable"`
	Instant     bool   `json:"instant,omitempty"`
}

// StatusView is one status with its presentation.
type StatusView struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon,omitempty"`
	Stacks int    `json:"stacks"`
}

// EnemyView is one enemy as the player sees it.
type EnemyView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	HP       int          `json:"hp"`
	MaxHP    int          `json:"max_hp"`
	Block    int          `json:"block"`
	Alive    bool         `json:"alive"`
	Intents  []string     `json:"intents"`
	Statuses []StatusView `json:"statuses,omitempty"`
	Guarding string       `json:"guarding,omitempty"`
	Summoner string       `json:"summoner,omitempty"`
}

// PlayerView is the player's side of the board.
type PlayerView struct {
	HP        int          `json:"hp"`
	MaxHP     int          `json:"max_hp"`
	Block     int          `json:"block"`
	Energy    int          `json:"energy"`
	MaxEnergy int          `json:"max_energy"`
	Statuses  []StatusView `json:"statuses,omitempty"`
}

// QuestionView is the staged question. The expected answer is never sent.
type QuestionView struct {
	Card   string `json:"card"`
	Target string `json:"target,omitempty"`
	Prompt string `json:"prompt"`
	Hint   string `json:"hint,omitempty"`
}

// DiscardView is a pending discard selection.
type DiscardView struct {
	Count  int    `json:"count"`
	Source string `json:"source"`
}

// ItemView is a supply or consumable the player holds.
type ItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Targeted    bool   `json:"targeted,omitempty"`
}

// BattleView is the full battle from the player's perspective.
type BattleView struct {
	Turn   int    `json:"turn"`
	Phase  string `json:"phase"`
	Result string `json:"result"`

	Player  PlayerView  `json:"player"`
	Enemies []EnemyView `json:"enemies"`
	Hand    []CardView  `json:"hand"`

	DrawCount    int `json:"draw_count"`
	DiscardCount int `json:"discard_count"`
	ExhaustCount int `json:"exhaust_count"`

	Streak        int `json:"streak"`
	ForcedPenalty int `json:"forced_penalty,omitempty"`

	Question *QuestionView `json:"question,omitempty"`
	Discard  *DiscardView  `json:"discard,omitempty"`

	Supplies    []ItemView `json:"supplies,omitempty"`
	Consumables []ItemView `json:"consumables,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "start", "play", "answer", "discard", "use", "end_turn", "state"

	// For "start"
	Encounter int    `json:"encounter,omitempty"` // 1-indexed
	Seed      uint32 `json:"seed,omitempty"`

	// For "play" and "use"
	Card   string `json:"card,omitempty"`
	Target string `json:"target,omitempty"`

	// For "answer"
	Answer string `json:"answer,omitempty"`

	// For "discard"
	Cards []string `json:"cards,omitempty"`
}

// --- Builders ---

// BuildBattleView projects a battle for display.
func BuildBattleView(b *battle.Battle, t *content.Tables) *BattleView {
	bv := &BattleView{
		Turn:          b.Turn,
		Phase:         b.Phase.String(),
		Result:        b.Result.String(),
		DrawCount:     len(b.Draw),
		DiscardCount:  len(b.Discard),
		ExhaustCount:  len(b.Exhaust),
		Streak:        b.Streak,
		ForcedPenalty: b.ForcedPenalty,
		Player: PlayerView{
			HP:        b.Player.HP,
			MaxHP:     b.Player.MaxHP,
			Block:     b.Player.Block,
			Energy:    b.Player.Energy,
			MaxEnergy: b.Player.MaxEnergy,
			Statuses:  statusViews(b.Player.Statuses, t),
		},
	}

	mustAnswer := false
	for _, id := range b.Hand {
		if def, ok := t.Card(id); ok && def.MustAnswer {
			mustAnswer = true
		}
	}
	idle := b.Phase == battle.PhasePlayer && !b.Over() && b.Answering == nil && b.Discarding == nil
	for i, id := range b.Hand {
		cv := CardView{Index: i, ID: id, Name: id}
		if def, ok := t.Card(id); ok {
			cv.Name = def.Name
			cv.Cost = def.Cost
			cv.Type = def.Type.String()
			cv.Description = def.Description
			cv.Instant = def.Instant
			cv.Playable = idle && !def.Unplayable && def.Cost <= b.Player.Energy && (!mustAnswer || def.MustAnswer)
		}
		bv.Hand = append(bv.Hand, cv)
	}

	for _, en := range b.Enemies {
		ev := EnemyView{
			ID:       en.ID,
			Name:     en.Name,
			HP:       en.HP,
			MaxHP:    en.MaxHP,
			Block:    en.Block,
			Alive:    en.Alive(),
			Intents:  []string{},
			Statuses: statusViews(en.Statuses, t),
			Guarding: en.Guarding,
			Summoner: en.SummonerID,
		}
		if ev.Alive {
			for _, in := range en.Intents {
				ev.Intents = append(ev.Intents, battle.DescribeIntent(in))
			}
		}
		bv.Enemies = append(bv.Enemies, ev)
	}

	if a := b.Answering; a != nil {
		name := a.CardID
		if def, ok := t.Card(a.CardID); ok {
			name = def.Name
		}
		bv.Question = &QuestionView{Card: name, Target: a.Target, Prompt: a.Question.Prompt, Hint: a.Question.Hint}
	}
	if d := b.Discarding; d != nil {
		bv.Discard = &DiscardView{Count: d.Count, Source: d.Source}
	}

	for _, id := range b.Supplies {
		iv := ItemView{ID: id, Name: id}
		if def, ok := t.Supply(id); ok {
			iv.Name, iv.Description = def.Name, def.Description
		}
		bv.Supplies = append(bv.Supplies, iv)
	}
	for _, id := range b.Consumables {
		iv := ItemView{ID: id, Name: id}
		if def, ok := t.Consumable(id); ok {
			iv.Name, iv.Description, iv.Targeted = def.Name, def.Description, def.Targeted
		}
		bv.Consumables = append(bv.Consumables, iv)
	}
	return bv
}

func statusViews(statuses []battle.Status, t *content.Tables) []StatusView {
	var out []StatusView
	for _, s := range statuses {
		sv := StatusView{ID: s.ID, Label: s.ID, Stacks: s.Stacks}
		if def, ok := t.Status(s.ID); ok {
			sv.Label, sv.Icon = def.Label, def.Icon
		}
		out = append(out, sv)
	}
	return out
}

// BuildEventViews converts engine events for the client.
func BuildEventViews(events []log.GameEvent) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Phase:   e.Phase,
			Actor:   e.Actor,
			Type:    e.Type.String(),
			Card:    e.Card,
			Amount:  e.Amount,
			Details: e.Details,
		})
	}
	return out
}
