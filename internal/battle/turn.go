package battle

import (
	"slices"

	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// startPlayerTurn refills energy, reshuffles an empty draw pile, runs
// turn-start hooks and draws up to the hand size.
func (e *Engine) startPlayerTurn(b *Battle) {
	b.Phase = PhasePlayer
	b.Queue = nil
	b.Cursor = 0
	e.emit(b, log.NewTurnEvent(b.Turn))

	b.Player.Energy = 0
	e.changeEnergy(b, b.Player.MaxEnergy, "turn start")
	if len(b.Draw) == 0 {
		e.reshuffle(b)
	}
	for _, id := range b.Supplies {
		if sup, ok := e.Supplies[id]; ok && sup.OnTurnStart != nil {
			sup.OnTurnStart(e, b)
		}
	}

	want := e.Rules.HandSize + e.extraDraw(b)
	for len(b.Hand) < want && len(b.Hand) < e.Rules.MaxHandSize {
		if !e.drawOne(b) {
			break
		}
	}
}

// playerGate returns the rejection for a player action, if any.
func (e *Engine) playerGate(b *Battle) error {
	switch {
	case b.Over():
		return ErrBattleOver
	case b.Phase != PhasePlayer:
		return ErrNotPlayerPhase
	case b.Answering != nil:
		return ErrPendingAnswer
	case b.Discarding != nil:
		return ErrPendingDiscard
	}
	return nil
}

// PlayCard plays a card from hand. Its cost is paid at once; instant cards
// resolve immediately, the rest are staged behind a question.
func (e *Engine) PlayCard(b *Battle, cardID, targetID string) (*Battle, error) {
	if err := e.playerGate(b); err != nil {
		return e.reject(b, err, "play %s", cardID)
	}
	if !b.InHand(cardID) {
		return e.reject(b, ErrCardNotInHand, "%s", cardID)
	}
	def, ok := e.Tables.Card(cardID)
	if !ok {
		return e.reject(b, ErrUnplayable, "%s has no definition", cardID)
	}
	if def.Unplayable {
		return e.reject(b, ErrUnplayable, "%s", def.Name)
	}
	if must, ok := e.mustAnswerInHand(b); ok && !def.MustAnswer {
		return e.reject(b, ErrMustAnswerFirst, "answer %s first", must)
	}
	if def.Cost > b.Player.Energy {
		return e.reject(b, ErrNotEnoughEnergy, "%s costs %d, have %d", def.Name, def.Cost, b.Player.Energy)
	}

	nb := b.Clone()
	nb.removeFromHand(cardID)
	e.emit(nb, log.NewPlayCardEvent(nb.Turn, nb.Phase.String(), cardID, def.Cost, targetID))
	e.changeEnergy(nb, -def.Cost, cardID)

	if def.Instant {
		e.resolveCard(nb, cardID, targetID)
		e.settleCard(nb, cardID)
		e.cascade(nb)
		return nb, nil
	}

	q := e.Questions.Next(nb.Difficulty, &nb.Rng)
	nb.Answering = &AwaitingAnswer{CardID: cardID, Target: targetID, Question: q}
	e.emit(nb, log.NewQuestionEvent(nb.Turn, nb.Phase.String(), cardID, q.Prompt))
	return nb, nil
}

// AnswerQuestion judges the answer to the staged question. A correct answer
// applies the card; a wrong one resets the streak, deals any scheduled
// forced-question punishment and returns must-answer cards to hand.
func (e *Engine) AnswerQuestion(b *Battle, answer string) (*Battle, error) {
	if b.Over() {
		return e.reject(b, ErrBattleOver, "")
	}
	if b.Answering == nil {
		return e.reject(b, ErrNoPendingAnswer, "")
	}

	nb := b.Clone()
	staged := *nb.Answering
	nb.Answering = nil
	def, _ := e.Tables.Card(staged.CardID)
	phase := nb.Phase.String()

	if e.Judge(staged.Question, answer) {
		nb.Streak++
		e.emit(nb, log.NewAnswerEvent(nb.Turn, phase, staged.CardID, true, nb.Streak))
		if nb.Streak%e.Rules.StreakBonusEvery == 0 && e.Rules.StreakBonusEnergy > 0 {
			before := nb.Player.Energy
			e.changeEnergy(nb, e.Rules.StreakBonusEnergy, "streak bonus")
			e.emit(nb, log.GameEvent{
				Turn: nb.Turn, Phase: phase, Actor: log.Player, Type: log.EventStreakBonus,
				Amount: nb.Player.Energy - before, Details: "answer streak bonus",
			})
		}
		if def.MustAnswer {
			nb.ForcedPenalty = 0
		}
		e.resolveCard(nb, staged.CardID, staged.Target)
		e.settleCard(nb, staged.CardID)
		e.cascade(nb)
		return nb, nil
	}

	nb.Streak = 0
	e.emit(nb, log.NewAnswerEvent(nb.Turn, phase, staged.CardID, false, 0))
	if def.MustAnswer {
		nb.Hand = append(nb.Hand, staged.CardID)
		e.emit(nb, log.NewPileMoveEvent(nb.Turn, phase, log.EventReturnToHand, staged.CardID, "wrong answer"))
	} else {
		e.settleCard(nb, staged.CardID)
	}
	if penalty := nb.ForcedPenalty; penalty > 0 {
		nb.ForcedPenalty = 0
		e.loseHPPlayer(nb, penalty, "forced question")
	}
	return nb, nil
}

// ChooseDiscard satisfies a pending discard selection and runs its follow-up
// draw.
func (e *Engine) ChooseDiscard(b *Battle, cardIDs []string) (*Battle, error) {
	if b.Over() {
		return e.reject(b, ErrBattleOver, "")
	}
	if b.Discarding == nil {
		return e.reject(b, ErrNoPendingDiscard, "")
	}
	if len(cardIDs) != b.Discarding.Count {
		return e.reject(b, ErrInvalidDiscard, "choose exactly %d card(s)", b.Discarding.Count)
	}
	for i, id := range cardIDs {
		if !b.InHand(id) {
			return e.reject(b, ErrCardNotInHand, "%s", id)
		}
		if slices.Contains(cardIDs[:i], id) {
			return e.reject(b, ErrInvalidDiscard, "%s chosen twice", id)
		}
	}

	nb := b.Clone()
	follow := nb.Discarding.Draw
	nb.Discarding = nil
	for _, id := range cardIDs {
		nb.removeFromHand(id)
		nb.Discard = append(nb.Discard, id)
		e.emit(nb, log.NewPileMoveEvent(nb.Turn, nb.Phase.String(), log.EventDiscard, id, "mulligan"))
	}
	e.drawCards(nb, follow, true)
	return nb, nil
}

// EndPlayerTurn hands control to the enemies: ethereal cards exhaust, the
// player's statuses tick, weak/vulnerable holders are snapshotted and the
// acting queue is built.
func (e *Engine) EndPlayerTurn(b *Battle) (*Battle, error) {
	if err := e.playerGate(b); err != nil {
		return e.reject(b, err, "end turn")
	}

	nb := b.Clone()
	var kept []string
	for _, id := range nb.Hand {
		if def, ok := e.Tables.Card(id); ok && def.Ethereal {
			nb.Exhaust = append(nb.Exhaust, id)
			e.emit(nb, log.NewPileMoveEvent(nb.Turn, nb.Phase.String(), log.EventExhaust, id, "ethereal"))
			continue
		}
		kept = append(kept, id)
	}
	nb.Hand = kept

	e.tickPlayer(nb)
	if nb.Over() {
		return nb, nil
	}

	nb.snapshotDecay()
	nb.Phase = PhaseEnemy
	nb.Queue = nb.LivingIDs()
	nb.Cursor = 0
	e.emit(nb, log.NewPhaseChangeEvent(nb.Turn, nb.Phase.String()))
	return nb, nil
}

// AdvanceEnemy processes one entry of the enemy queue. After the last entry
// the round closes: weak/vulnerable decay, the turn counter advances, player
// block resets unless preserved, and the next player turn starts.
func (e *Engine) AdvanceEnemy(b *Battle) (*Battle, error) {
	if b.Over() {
		return e.reject(b, ErrBattleOver, "")
	}
	if b.Phase != PhaseEnemy {
		return e.reject(b, ErrNotEnemyPhase, "")
	}

	nb := b.Clone()
	if nb.Cursor < len(nb.Queue) {
		if idx := nb.EnemyIndex(nb.Queue[nb.Cursor]); idx >= 0 {
			e.enemyStep(nb, idx)
		}
		nb.Cursor++
	}
	if nb.Over() || nb.Cursor < len(nb.Queue) {
		return nb, nil
	}

	e.applyDecay(nb)
	nb.Turn++
	if !e.preserveBlock(nb) && nb.Player.Block > 0 {
		nb.Player.Block = 0
	}
	e.startPlayerTurn(nb)
	return nb, nil
}

// UseConsumable spends a held consumable. Unknown consumable logic is a
// no-op, but the item is still spent.
func (e *Engine) UseConsumable(b *Battle, id, targetID string) (*Battle, error) {
	if err := e.playerGate(b); err != nil {
		return e.reject(b, err, "use %s", id)
	}
	i := slices.Index(b.Consumables, id)
	if i < 0 {
		return e.reject(b, ErrNoSuchConsumable, "%s", id)
	}

	nb := b.Clone()
	nb.Consumables = slices.Delete(nb.Consumables, i, i+1)
	e.emit(nb, log.NewConsumableEvent(nb.Turn, nb.Phase.String(), id, targetID))
	if c, ok := e.Consumables[id]; ok && c.Use != nil {
		c.Use(e, nb, targetID)
	} else {
		e.diagnose(nb, "consumable %q has no logic", id)
	}
	e.cascade(nb)
	return nb, nil
}
