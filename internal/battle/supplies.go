package battle

import (
	"slices"

	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// Supply is the logic behind a passive supply. Every hook is optional.
type Supply struct {
	OnBattleStart func(e *Engine, b *Battle)
	OnTurnStart   func(e *Engine, b *Battle)
	// Post-battle modifiers, applied by hosts after a victory.
	CarryOverHP func(hp, maxHP int) int
	GoldReward  func(gold int) int
	OfferCount  func(n int) int

	PreserveBlock bool
	ReflectRatio  float64
	ExtraDraw     int
}

// Consumable is the logic behind a one-shot consumable.
type Consumable struct {
	Use func(e *Engine, b *Battle, target string)
}

// DefaultSupplies returns the built-in supply hooks keyed by supply id.
func DefaultSupplies() map[string]Supply {
	return map[string]Supply{
		"war_drum": {OnBattleStart: func(e *Engine, b *Battle) {
			e.emit(b, log.NewSupplyEvent(b.Turn, b.Phase.String(), "war_drum", "+1 strength"))
			e.applyStatus(b, log.Player, content.StatusStrength, 1)
		}},
		"anchor_stone": {OnBattleStart: func(e *Engine, b *Battle) {
			e.emit(b, log.NewSupplyEvent(b.Turn, b.Phase.String(), "anchor_stone", "+10 block"))
			e.gainBlockPlayer(b, 10)
		}},
		"oil_lamp": {OnTurnStart: func(e *Engine, b *Battle) {
			if b.Turn == 1 {
				e.emit(b, log.NewSupplyEvent(b.Turn, b.Phase.String(), "oil_lamp", "+1 energy"))
				e.changeEnergy(b, 1, "oil_lamp")
			}
		}},
		"bramble_mail": {ReflectRatio: 0.5},
		"stone_wall":   {PreserveBlock: true},
		"quill":        {ExtraDraw: 1},
		"herbal_pouch": {CarryOverHP: func(hp, maxHP int) int { return min(hp+6, maxHP) }},
		"lucky_coin":   {GoldReward: func(gold int) int { return gold * 5 / 4 }},
		"merchant_map": {OfferCount: func(n int) int { return n + 1 }},
	}
}

// DefaultConsumables returns the built-in consumable hooks keyed by id.
func DefaultConsumables() map[string]Consumable {
	return map[string]Consumable{
		"healing_draught": {Use: func(e *Engine, b *Battle, _ string) {
			e.healPlayer(b, 15, "healing_draught")
		}},
		"fire_bomb": {Use: func(e *Engine, b *Battle, target string) {
			e.hitEnemy(b, b.resolveTarget(target), 20, hitOpts{raw: true, source: "fire_bomb"})
		}},
		"iron_tonic": {Use: func(e *Engine, b *Battle, _ string) {
			e.applyStatus(b, log.Player, content.StatusStrength, 2)
		}},
		"swift_elixir": {Use: func(e *Engine, b *Battle, _ string) {
			e.drawCards(b, 2, true)
		}},
		"poison_vial": {Use: func(e *Engine, b *Battle, target string) {
			if i := b.resolveTarget(target); i >= 0 {
				e.applyStatus(b, b.Enemies[i].ID, content.StatusPoison, 6)
			}
		}},
		"energy_tea": {Use: func(e *Engine, b *Battle, _ string) {
			e.changeEnergy(b, 2, "energy_tea")
		}},
	}
}

func (e *Engine) supplies(b *Battle) []Supply {
	var out []Supply
	for _, id := range b.Supplies {
		if s, ok := e.Supplies[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (e *Engine) preserveBlock(b *Battle) bool {
	return slices.ContainsFunc(e.supplies(b), func(s Supply) bool { return s.PreserveBlock })
}

func (e *Engine) reflectRatio(b *Battle) float64 {
	r := 0.0
	for _, s := range e.supplies(b) {
		r += s.ReflectRatio
	}
	return r
}

func (e *Engine) extraDraw(b *Battle) int {
	n := 0
	for _, s := range e.supplies(b) {
		n += s.ExtraDraw
	}
	return n
}

// PostBattleHP returns the player's HP after post-battle supply hooks.
func (e *Engine) PostBattleHP(b *Battle) int {
	if b.Result == Defeat {
		return 0
	}
	hp := b.Player.HP
	for _, s := range e.supplies(b) {
		if s.CarryOverHP != nil {
			hp = s.CarryOverHP(hp, b.Player.MaxHP)
		}
	}
	return max(min(hp, b.Player.MaxHP), 0)
}

// GoldReward applies gold modifiers to a base reward.
func (e *Engine) GoldReward(b *Battle, base int) int {
	gold := base
	for _, s := range e.supplies(b) {
		if s.GoldReward != nil {
			gold = s.GoldReward(gold)
		}
	}
	return max(gold, 0)
}

// OfferCount applies offer-count modifiers to a base number of choices.
func (e *Engine) OfferCount(b *Battle, base int) int {
	n := base
	for _, s := range e.supplies(b) {
		if s.OfferCount != nil {
			n = s.OfferCount(n)
		}
	}
	return max(n, 0)
}
