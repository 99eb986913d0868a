package battle

import (
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// cascade settles deaths, threshold triggers, summon collapse and guard
// assignments until nothing changes. Each pass can only produce work for the
// next one, so the loop is capped by Rules.MaxCascadePasses.
func (e *Engine) cascade(b *Battle) {
	for pass := 0; pass < e.Rules.MaxCascadePasses; pass++ {
		changed := false
		if e.markDeaths(b) {
			changed = true
		}
		if e.fireThresholds(b) {
			changed = true
		}
		if e.collapseOrphans(b) {
			changed = true
		}
		if e.revalidateGuards(b) {
			changed = true
		}
		if !changed {
			break
		}
	}
	e.checkResult(b)
}

// markDeaths flags enemies whose HP reached zero.
func (e *Engine) markDeaths(b *Battle) bool {
	changed := false
	for i := range b.Enemies {
		en := &b.Enemies[i]
		if en.Dead || en.HP > 0 {
			continue
		}
		en.Dead = true
		en.Block = 0
		en.Intents = nil
		en.Moves = nil
		changed = true
		e.emit(b, log.NewDeathEvent(b.Turn, b.Phase.String(), en.ID))
	}
	return changed
}

// fireThresholds runs one-shot reactions for enemies at or below their
// threshold HP.
func (e *Engine) fireThresholds(b *Battle) bool {
	changed := false
	// Clones append to the roster; only the enemies present now are checked.
	n := len(b.Enemies)
	for i := 0; i < n; i++ {
		en := &b.Enemies[i]
		if !en.Alive() || en.ThresholdSpent {
			continue
		}
		def, ok := e.Tables.Enemy(en.DefID)
		if !ok || def.Threshold == nil || en.HP > def.Threshold.HP {
			continue
		}
		en.ThresholdSpent = true
		changed = true
		th := def.Threshold
		e.emit(b, log.NewThresholdEvent(b.Turn, b.Phase.String(), en.ID, th.Action))
		switch th.Action {
		case content.ThresholdBlock:
			e.gainBlockEnemy(b, i, th.Amount)
		case content.ThresholdStripBuffs:
			e.stripClass(b, log.Player, content.ClassBuff)
		case content.ThresholdClone:
			e.cloneEnemy(b, i)
		default:
			e.diagnose(b, "enemy %s has unknown threshold action %q", en.ID, th.Action)
		}
	}
	return changed
}

// cloneEnemy spawns a copy of the enemy at its current HP. The copy's own
// threshold is already spent.
func (e *Engine) cloneEnemy(b *Battle, idx int) {
	if b.LivingCount() >= e.Rules.MaxEnemies {
		e.diagnose(b, "clone of %s fizzles: roster full", b.Enemies[idx].ID)
		return
	}
	src := b.Enemies[idx]
	ci, ok := e.spawnEnemy(b, src.DefID, src.SummonerID)
	if !ok {
		return
	}
	c := &b.Enemies[ci]
	c.HP = src.HP
	c.ThresholdSpent = true
	e.emit(b, log.NewSummonEvent(b.Turn, b.Phase.String(), src.ID, c.ID))
	e.rollIntents(b, ci)
}

// collapseOrphans removes living summons whose summoner has died.
func (e *Engine) collapseOrphans(b *Battle) bool {
	changed := false
	for i := range b.Enemies {
		en := &b.Enemies[i]
		if !en.Alive() || en.SummonerID == "" {
			continue
		}
		summoner, ok := b.Enemy(en.SummonerID)
		if ok && summoner.Alive() {
			continue
		}
		en.HP = 0
		en.Dead = true
		en.Block = 0
		en.Intents = nil
		en.Moves = nil
		changed = true
		b.Signals.Collapsed = append(b.Signals.Collapsed, en.ID)
		e.emit(b, log.NewCollapseEvent(b.Turn, b.Phase.String(), en.ID, en.SummonerID))
	}
	return changed
}

// --- guards ---

func (e *Engine) isGuard(en *Enemy) bool {
	def, ok := e.Tables.Enemy(en.DefID)
	return ok && def.Guard
}

// guardCandidates lists the living allies a guard may shield.
func (e *Engine) guardCandidates(b *Battle, guard int) []string {
	var ids []string
	for i := range b.Enemies {
		en := &b.Enemies[i]
		if i == guard || !en.Alive() || e.isGuard(en) {
			continue
		}
		ids = append(ids, en.ID)
	}
	return ids
}

// guardOf returns the index of the living guard shielding target, or -1.
func (b *Battle) guardOf(target string) int {
	for i := range b.Enemies {
		en := &b.Enemies[i]
		if en.Alive() && en.Guarding == target && en.ID != target {
			return i
		}
	}
	return -1
}

// revalidateGuards points every living guard at a living candidate, or
// clears the assignment when none remain.
func (e *Engine) revalidateGuards(b *Battle) bool {
	changed := false
	for i := range b.Enemies {
		en := &b.Enemies[i]
		if !e.isGuard(en) {
			continue
		}
		if !en.Alive() {
			if en.Guarding != "" {
				en.Guarding = ""
				changed = true
			}
			continue
		}
		if t, ok := b.Enemy(en.Guarding); ok && t.Alive() && !e.isGuard(t) {
			continue
		}
		cands := e.guardCandidates(b, i)
		next := ""
		if len(cands) > 0 {
			next = cands[en.GuardCursor%len(cands)]
		}
		if next != en.Guarding {
			en.Guarding = next
			changed = true
		}
	}
	return changed
}

// rotateGuard moves a guard's shield to the next candidate.
func (e *Engine) rotateGuard(b *Battle, idx int) {
	en := &b.Enemies[idx]
	if !e.isGuard(en) {
		return
	}
	cands := e.guardCandidates(b, idx)
	if len(cands) == 0 {
		en.Guarding = ""
		return
	}
	en.GuardCursor = (en.GuardCursor + 1) % len(cands)
	en.Guarding = cands[en.GuardCursor]
	e.emit(b, log.NewEnemyActionEvent(b.Turn, b.Phase.String(), en.ID, "now shields "+en.Guarding))
}
