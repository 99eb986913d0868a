package battle

import (
	"fmt"

	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
)

// enemyStep processes one queue entry: block reset, status tick, guard
// rotation, intents in order, escalation, cascade, then a fresh roll.
func (e *Engine) enemyStep(b *Battle, idx int) {
	en := &b.Enemies[idx]
	if !en.Alive() {
		return
	}
	en.Block = 0

	e.tickEnemy(b, idx)
	if !b.Enemies[idx].Alive() || b.Over() {
		return
	}

	e.rotateGuard(b, idx)

	intents := append([]content.Intent(nil), b.Enemies[idx].Intents...)
	for _, in := range intents {
		if !b.Enemies[idx].Alive() || b.Over() {
			break
		}
		e.executeIntent(b, idx, in)
	}

	if b.Enemies[idx].Alive() {
		e.escalate(b, idx)
	}
	e.cascade(b)
	if !b.Over() {
		e.rollIntents(b, idx)
	}
}

// executeIntent resolves one declared enemy action.
func (e *Engine) executeIntent(b *Battle, idx int, in content.Intent) {
	id := b.Enemies[idx].ID
	phase := b.Phase.String()
	e.emit(b, log.NewEnemyActionEvent(b.Turn, phase, id, DescribeIntent(in)))

	switch in.Kind {
	case content.IntentAttack:
		for h := 0; h < max(in.Hits, 1); h++ {
			en := &b.Enemies[idx]
			if !en.Alive() || b.Over() {
				return
			}
			amount := ModifyDamage(in.Amount,
				Stacks(en.Statuses, content.StatusStrength),
				Stacks(en.Statuses, content.StatusWeak) > 0,
				Stacks(b.Player.Statuses, content.StatusVulnerable) > 0)
			e.hitPlayer(b, idx, amount)
		}

	case content.IntentBlock:
		e.gainBlockEnemy(b, idx, in.Amount)

	case content.IntentDebuff:
		e.applyStatus(b, log.Player, in.Status, in.Amount)

	case content.IntentBuff:
		e.applyStatus(b, id, in.Status, in.Amount)

	case content.IntentHeal:
		e.healEnemy(b, idx, in.Amount, "intent")

	case content.IntentSummon:
		e.summon(b, idx, in)

	case content.IntentAddCard:
		e.addCards(b, in.Card, in.Count, in.Pile)

	case content.IntentEraseBuffs:
		e.stripClass(b, log.Player, content.ClassBuff)

	case content.IntentConsumeMinions:
		total := 0
		for i := range b.Enemies {
			m := &b.Enemies[i]
			if !m.Alive() || m.SummonerID != id {
				continue
			}
			total += m.HP
			m.HP = 0
			e.emit(b, log.NewEnemyActionEvent(b.Turn, phase, id, "consumes "+m.ID))
		}
		e.cascade(b)
		e.healEnemy(b, idx, total, "consumed minions")

	case content.IntentExhaustCard:
		for n := 0; n < max(in.Count, 1); n++ {
			var candidates []string
			for _, c := range b.Hand {
				if def, ok := e.Tables.Card(c); ok && def.MustAnswer {
					continue
				}
				candidates = append(candidates, c)
			}
			card, i := rng.Pick(&b.Rng, candidates)
			if i < 0 {
				break
			}
			b.removeFromHand(card)
			b.Exhaust = append(b.Exhaust, card)
			e.emit(b, log.NewPileMoveEvent(b.Turn, phase, log.EventExhaust, card, "shredded by "+id))
		}

	case content.IntentForceQuestion:
		b.ForcedPenalty = max(in.Amount, 0)
		e.addCards(b, e.Rules.PopQuizCard, 1, "hand")

	case content.IntentCleanse:
		e.stripClass(b, id, content.ClassDebuff)

	default:
		e.diagnose(b, "enemy %s has unknown intent kind", id)
	}
}

// summon spawns minions bound to the summoner, up to the roster cap.
func (e *Engine) summon(b *Battle, idx int, in content.Intent) {
	summonerID := b.Enemies[idx].ID
	count := max(in.Count, 1) + b.Enemies[idx].SummonBonus
	for i := 0; i < count; i++ {
		if b.LivingCount() >= e.Rules.MaxEnemies {
			e.diagnose(b, "summon by %s fizzles: roster full", summonerID)
			break
		}
		si, ok := e.spawnEnemy(b, in.Enemy, summonerID)
		if !ok {
			e.diagnose(b, "enemy %s summons unknown enemy %q", summonerID, in.Enemy)
			return
		}
		e.emit(b, log.NewSummonEvent(b.Turn, b.Phase.String(), summonerID, b.Enemies[si].ID))
		e.rollIntents(b, si)
	}
	e.revalidateGuards(b)
}

// escalate raises the summoner's future summon count when a minion with an
// escalation passive acts.
func (e *Engine) escalate(b *Battle, idx int) {
	en := &b.Enemies[idx]
	def, ok := e.Tables.Enemy(en.DefID)
	if !ok || def.Escalation == 0 || en.SummonerID == "" {
		return
	}
	summoner, ok := b.Enemy(en.SummonerID)
	if !ok || !summoner.Alive() {
		return
	}
	summoner.SummonBonus += def.Escalation
	e.emit(b, log.NewEnemyActionEvent(b.Turn, b.Phase.String(), summoner.ID,
		fmt.Sprintf("summons grow to %d", 1+summoner.SummonBonus)))
}
