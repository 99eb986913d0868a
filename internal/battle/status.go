package battle

import (
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// Stacks returns the stack count of a status, 0 when absent.
func Stacks(statuses []Status, id string) int {
	for _, s := range statuses {
		if s.ID == id {
			return s.Stacks
		}
	}
	return 0
}

// AddStacks adds delta to a status and returns the updated list. Entries that
// end at zero or below are removed, and a non-positive delta never creates one.
func AddStacks(statuses []Status, id string, delta int) []Status {
	for i, s := range statuses {
		if s.ID != id {
			continue
		}
		s.Stacks += delta
		if s.Stacks <= 0 {
			return append(statuses[:i:i], statuses[i+1:]...)
		}
		statuses[i] = s
		return statuses
	}
	if delta <= 0 {
		return statuses
	}
	return append(statuses, Status{ID: id, Stacks: delta})
}

// removeClass drops every status of the given class and returns the removed ids.
func removeClass(t *content.Tables, statuses []Status, class content.StatusClass) ([]Status, []Status) {
	var kept, removed []Status
	for _, s := range statuses {
		def, ok := t.Status(s.ID)
		if ok && def.Class == class {
			removed = append(removed, s)
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}

// holderStatuses returns a pointer to the status list of the player or an enemy.
func (b *Battle) holderStatuses(holder string) *[]Status {
	if holder == log.Player {
		return &b.Player.Statuses
	}
	if en, ok := b.Enemy(holder); ok {
		return &en.Statuses
	}
	return nil
}

// applyStatus changes a holder's stacks. Unknown status ids are ignored with
// a diagnostic.
func (e *Engine) applyStatus(b *Battle, holder, id string, delta int) {
	if _, ok := e.Tables.Status(id); !ok {
		e.diagnose(b, "unknown status %q", id)
		return
	}
	list := b.holderStatuses(holder)
	if list == nil || delta == 0 {
		return
	}
	*list = AddStacks(*list, id, delta)
	e.emit(b, log.NewStatusEvent(b.Turn, b.Phase.String(), holder, id, delta, Stacks(*list, id)))
}

// stripClass removes all statuses of a class from a holder.
func (e *Engine) stripClass(b *Battle, holder string, class content.StatusClass) {
	list := b.holderStatuses(holder)
	if list == nil {
		return
	}
	kept, removed := removeClass(e.Tables, *list, class)
	*list = kept
	for _, s := range removed {
		e.emit(b, log.NewStatusEvent(b.Turn, b.Phase.String(), holder, s.ID, -s.Stacks, 0))
	}
}

// tickPlayer runs the player's end-of-turn poison and regen.
func (e *Engine) tickPlayer(b *Battle) {
	phase := b.Phase.String()
	if p := Stacks(b.Player.Statuses, content.StatusPoison); p > 0 {
		e.emit(b, log.NewStatusTickEvent(b.Turn, phase, log.Player, content.StatusPoison, p))
		e.loseHPPlayer(b, p, content.StatusPoison)
		b.Player.Statuses = AddStacks(b.Player.Statuses, content.StatusPoison, -1)
	}
	if r := Stacks(b.Player.Statuses, content.StatusRegen); r > 0 {
		e.emit(b, log.NewStatusTickEvent(b.Turn, phase, log.Player, content.StatusRegen, r))
		e.healPlayer(b, r, content.StatusRegen)
		b.Player.Statuses = AddStacks(b.Player.Statuses, content.StatusRegen, -1)
	}
}

// tickEnemy runs an enemy's poison and regen. Poison-immune enemies lose
// their poison instead of taking damage.
func (e *Engine) tickEnemy(b *Battle, idx int) {
	en := &b.Enemies[idx]
	phase := b.Phase.String()
	def, _ := e.Tables.Enemy(en.DefID)
	if p := Stacks(en.Statuses, content.StatusPoison); p > 0 {
		if def.PoisonImmune {
			en.Statuses = AddStacks(en.Statuses, content.StatusPoison, -p)
			e.emit(b, log.NewStatusEvent(b.Turn, phase, en.ID, content.StatusPoison, -p, 0))
		} else {
			e.emit(b, log.NewStatusTickEvent(b.Turn, phase, en.ID, content.StatusPoison, p))
			e.loseHPEnemy(b, idx, p, content.StatusPoison)
			en = &b.Enemies[idx]
			en.Statuses = AddStacks(en.Statuses, content.StatusPoison, -1)
		}
	}
	if r := Stacks(en.Statuses, content.StatusRegen); r > 0 && en.Alive() {
		e.emit(b, log.NewStatusTickEvent(b.Turn, phase, en.ID, content.StatusRegen, r))
		e.healEnemy(b, idx, r, content.StatusRegen)
		en = &b.Enemies[idx]
		en.Statuses = AddStacks(en.Statuses, content.StatusRegen, -1)
	}
}

// snapshotDecay records who holds weak or vulnerable as the enemy phase starts.
func (b *Battle) snapshotDecay() {
	b.DecayWatch = nil
	watch := func(holder string, statuses []Status) {
		for _, id := range []string{content.StatusWeak, content.StatusVulnerable} {
			if Stacks(statuses, id) > 0 {
				b.DecayWatch = append(b.DecayWatch, DecayMark{Holder: holder, Status: id})
			}
		}
	}
	watch(log.Player, b.Player.Statuses)
	for i := range b.Enemies {
		if b.Enemies[i].Alive() {
			watch(b.Enemies[i].ID, b.Enemies[i].Statuses)
		}
	}
}

// applyDecay decrements weak and vulnerable once, only for snapshotted holders.
func (e *Engine) applyDecay(b *Battle) {
	for _, m := range b.DecayWatch {
		list := b.holderStatuses(m.Holder)
		if list == nil || Stacks(*list, m.Status) == 0 {
			continue
		}
		*list = AddStacks(*list, m.Status, -1)
		e.emit(b, log.NewStatusEvent(b.Turn, b.Phase.String(), m.Holder, m.Status, -1, Stacks(*list, m.Status)))
	}
	b.DecayWatch = nil
}
