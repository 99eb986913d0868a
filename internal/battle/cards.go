package battle

import (
	"slices"

	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
)

// resolveTarget returns the explicitly chosen living enemy, else the first
// living one, else -1.
func (b *Battle) resolveTarget(targetID string) int {
	if i := b.EnemyIndex(targetID); i >= 0 && b.Enemies[i].Alive() {
		return i
	}
	for i := range b.Enemies {
		if b.Enemies[i].Alive() {
			return i
		}
	}
	return -1
}

// resolveCard applies a card's effect. Unknown cards and effect kinds resolve
// to nothing.
func (e *Engine) resolveCard(b *Battle, cardID, targetID string) {
	def, ok := e.Tables.Card(cardID)
	if !ok {
		e.diagnose(b, "unknown card %q", cardID)
		return
	}
	eff := def.Effect
	e.emit(b, log.NewCardResolveEvent(b.Turn, b.Phase.String(), cardID, eff.Kind.String()))

	o := hitOpts{source: cardID}
	var landed bool
	if eff.Kind.IsAttack() && Stacks(b.Player.Statuses, content.StatusEmpower) > 0 {
		o.double = true
		o.landed = &landed
		// Empower is spent only by an attack that actually hits.
		defer func() {
			if n := Stacks(b.Player.Statuses, content.StatusEmpower); landed && n > 0 {
				b.Player.Statuses = AddStacks(b.Player.Statuses, content.StatusEmpower, -n)
				e.emit(b, log.NewStatusEvent(b.Turn, b.Phase.String(), log.Player, content.StatusEmpower, -n, 0))
			}
		}()
	}
	target := b.resolveTarget(targetID)
	targetEnemy := func() string {
		if target < 0 {
			return ""
		}
		return b.Enemies[target].ID
	}

	switch eff.Kind {
	case content.EffectDamage:
		e.hitEnemy(b, target, eff.Amount, o)

	case content.EffectMultiHit:
		for i := 0; i < max(eff.Hits, 1); i++ {
			if target < 0 || !b.Enemies[target].Alive() || b.Over() {
				break
			}
			e.hitEnemy(b, target, eff.Amount, o)
		}

	case content.EffectPierce:
		o.pierce = true
		e.hitEnemy(b, target, eff.Amount, o)

	case content.EffectDamageAll:
		o.area = true
		for _, id := range b.LivingIDs() {
			e.hitEnemy(b, b.EnemyIndex(id), eff.Amount, o)
		}

	case content.EffectDamageFromResource:
		e.hitEnemy(b, target, e.resource(b, eff.Resource), o)

	case content.EffectBlock:
		e.gainBlockPlayer(b, eff.Amount)

	case content.EffectBlockDraw:
		e.gainBlockPlayer(b, eff.Amount)
		e.drawCards(b, eff.Draw, true)

	case content.EffectBlockDamage:
		e.gainBlockPlayer(b, eff.Block)
		e.hitEnemy(b, target, eff.Amount, o)

	case content.EffectSpendEnergyBlock:
		x := b.Player.Energy
		e.changeEnergy(b, -x, cardID)
		e.gainBlockPlayer(b, eff.Amount*x)

	case content.EffectSpendEnergyDamage:
		x := b.Player.Energy
		e.changeEnergy(b, -x, cardID)
		if x > 0 {
			e.hitEnemy(b, target, eff.Amount*x, o)
		}

	case content.EffectHeal:
		e.healPlayer(b, eff.Amount, cardID)

	case content.EffectHealFromPoison:
		if target >= 0 {
			e.healPlayer(b, Stacks(b.Enemies[target].Statuses, content.StatusPoison)*max(eff.Amount, 1), cardID)
		}

	case content.EffectDraw:
		n := eff.Draw
		if n == 0 {
			n = eff.Amount
		}
		e.drawCards(b, n, true)

	case content.EffectGainMaxEnergy:
		b.Player.MaxEnergy += eff.Amount
		e.emit(b, log.NewEnergyEvent(b.Turn, b.Phase.String(), b.Player.MaxEnergy-eff.Amount, b.Player.MaxEnergy, "max energy"))

	case content.EffectGainStrength:
		e.applyStatus(b, log.Player, content.StatusStrength, eff.Amount)

	case content.EffectDoubleStrength:
		e.applyStatus(b, log.Player, content.StatusStrength, Stacks(b.Player.Statuses, content.StatusStrength))

	case content.EffectDoubleBlock:
		e.gainBlockPlayer(b, b.Player.Block)

	case content.EffectDoubleNextAttack:
		if Stacks(b.Player.Statuses, content.StatusEmpower) == 0 {
			e.applyStatus(b, log.Player, content.StatusEmpower, 1)
		}

	case content.EffectCleanse:
		var debuffs []Status
		for _, s := range b.Player.Statuses {
			if e.Tables.IsDebuff(s.ID) {
				debuffs = append(debuffs, s)
			}
		}
		if s, i := rng.Pick(&b.Rng, debuffs); i >= 0 {
			e.applyStatus(b, log.Player, s.ID, -s.Stacks)
		}

	case content.EffectApplyPoison:
		e.applyStatus(b, targetEnemy(), content.StatusPoison, eff.Amount)

	case content.EffectApplyVulnerable:
		e.applyStatus(b, targetEnemy(), content.StatusVulnerable, eff.Amount)

	case content.EffectApplyWeak:
		e.applyStatus(b, targetEnemy(), content.StatusWeak, eff.Amount)

	case content.EffectDoublePoison:
		if target >= 0 {
			e.applyStatus(b, targetEnemy(), content.StatusPoison, Stacks(b.Enemies[target].Statuses, content.StatusPoison))
		}

	case content.EffectMulligan:
		count := min(eff.Amount, len(b.Hand))
		if count <= 0 {
			e.drawCards(b, eff.Draw, true)
			break
		}
		b.Discarding = &AwaitingDiscard{Count: count, Draw: eff.Draw, Source: cardID}

	case content.EffectGainRegen:
		e.applyStatus(b, log.Player, content.StatusRegen, eff.Amount)

	case content.EffectNone:

	default:
		e.diagnose(b, "card %s has unknown effect kind", cardID)
	}
}

// resource reads the player resource a damage-from-resource card scales with.
func (e *Engine) resource(b *Battle, name string) int {
	switch name {
	case "block":
		return b.Player.Block
	case "energy":
		return b.Player.Energy
	case "hand":
		return len(b.Hand)
	case "strength":
		return Stacks(b.Player.Statuses, content.StatusStrength)
	default:
		e.diagnose(b, "unknown resource %q", name)
		return 0
	}
}

// settleCard moves a played card to exhaust or discard.
func (e *Engine) settleCard(b *Battle, cardID string) {
	def, _ := e.Tables.Card(cardID)
	if def.Exhaust {
		b.Exhaust = append(b.Exhaust, cardID)
		e.emit(b, log.NewPileMoveEvent(b.Turn, b.Phase.String(), log.EventExhaust, cardID, "played"))
		return
	}
	b.Discard = append(b.Discard, cardID)
	e.emit(b, log.NewPileMoveEvent(b.Turn, b.Phase.String(), log.EventDiscard, cardID, "played"))
}

// removeFromHand takes a card out of the hand. Reports whether it was there.
func (b *Battle) removeFromHand(cardID string) bool {
	i := slices.Index(b.Hand, cardID)
	if i < 0 {
		return false
	}
	b.Hand = slices.Delete(b.Hand, i, i+1)
	return true
}

// drawOne moves the top of the draw pile into hand, reshuffling the discard
// pile when the draw pile is empty.
func (e *Engine) drawOne(b *Battle) bool {
	if len(b.Draw) == 0 && !e.reshuffle(b) {
		return false
	}
	card := b.Draw[len(b.Draw)-1]
	b.Draw = b.Draw[:len(b.Draw)-1]
	b.Hand = append(b.Hand, card)
	e.emit(b, log.NewDrawEvent(b.Turn, b.Phase.String(), card))
	return true
}

// reshuffle shuffles the discard pile into the empty draw pile. It reports
// false when there is nothing to shuffle.
func (e *Engine) reshuffle(b *Battle) bool {
	if len(b.Discard) == 0 {
		return false
	}
	b.Draw, b.Discard = append(b.Draw, b.Discard...), nil
	rng.Shuffle(&b.Rng, b.Draw)
	e.emit(b, log.NewShuffleEvent(b.Turn, b.Phase.String(), len(b.Draw)))
	return true
}

// drawCards draws up to n cards. Draws stop at the hand cap or when both
// draw and discard piles are empty.
func (e *Engine) drawCards(b *Battle, n int, capped bool) {
	for i := 0; i < n; i++ {
		if capped && len(b.Hand) >= e.Rules.MaxHandSize {
			return
		}
		if !e.drawOne(b) {
			return
		}
	}
}

// addCards puts new negative cards into a pile. Hand overflow goes to discard.
func (e *Engine) addCards(b *Battle, defID string, count int, pile string) {
	if _, ok := e.Tables.Card(defID); !ok {
		e.diagnose(b, "cannot add unknown card %q", defID)
		return
	}
	for i := 0; i < max(count, 1); i++ {
		id := e.newCardID(b, defID)
		b.Owned++
		where := pileName(pile)
		switch where {
		case "draw":
			pos := b.Rng.Intn(len(b.Draw) + 1)
			b.Draw = slices.Insert(b.Draw, pos, id)
		case "hand":
			if len(b.Hand) < e.Rules.MaxHandSize {
				b.Hand = append(b.Hand, id)
			} else {
				where = "discard"
				b.Discard = append(b.Discard, id)
			}
		default:
			where = "discard"
			b.Discard = append(b.Discard, id)
		}
		e.emit(b, log.NewPileMoveEvent(b.Turn, b.Phase.String(), log.EventAddCard, id, where))
	}
}

// mustAnswerInHand returns the first must-answer card in hand, if any.
func (e *Engine) mustAnswerInHand(b *Battle) (string, bool) {
	for _, id := range b.Hand {
		if def, ok := e.Tables.Card(id); ok && def.MustAnswer {
			return id, true
		}
	}
	return "", false
}
