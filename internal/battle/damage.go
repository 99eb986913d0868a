package battle

import (
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// ModifyDamage applies attacker strength, attacker weak and defender
// vulnerable to one hit, in that order, rounding down after each
// multiplication. The result is never negative.
func ModifyDamage(base, strength int, weak, vulnerable bool) int {
	d := base + strength
	if weak {
		d = d * 3 / 4
	}
	if vulnerable {
		d = d * 5 / 4
	}
	return max(d, 0)
}

// Absorb splits incoming damage between block and HP.
func Absorb(damage, block int) (hpLoss, blockLeft int) {
	damage = max(damage, 0)
	block = max(block, 0)
	return max(0, damage-block), max(0, block-damage)
}

// hitOpts describes how a hit on an enemy is routed and modified.
type hitOpts struct {
	pierce bool // skips block
	area   bool // bypasses redirection
	raw    bool // no attacker modifiers
	double bool // empower
	source string
	landed *bool // set once a hit resolves
}

// hitEnemy deals one hit from the player to the enemy at idx, honoring guard
// redirection, and runs the cascade so reactive triggers see each hit.
func (e *Engine) hitEnemy(b *Battle, idx int, base int, o hitOpts) {
	if idx < 0 || idx >= len(b.Enemies) || !b.Enemies[idx].Alive() {
		return
	}
	if o.landed != nil {
		*o.landed = true
	}
	recipient := idx
	if !o.area {
		if g := b.guardOf(b.Enemies[idx].ID); g >= 0 {
			recipient = g
			e.emit(b, log.NewRedirectEvent(b.Turn, b.Phase.String(), b.Enemies[g].ID, b.Enemies[idx].ID))
		}
	}
	en := &b.Enemies[recipient]

	amount := base
	if !o.raw {
		amount = ModifyDamage(base,
			Stacks(b.Player.Statuses, content.StatusStrength),
			Stacks(b.Player.Statuses, content.StatusWeak) > 0,
			Stacks(en.Statuses, content.StatusVulnerable) > 0)
	}
	if o.double {
		amount *= 2
	}

	blocked := 0
	loss := amount
	if !o.pierce {
		var left int
		loss, left = Absorb(amount, en.Block)
		blocked = en.Block - left
		en.Block = left
	}
	en.HP = max(en.HP-loss, 0)
	if b.Signals.EnemyHits == nil {
		b.Signals.EnemyHits = make(map[string]int)
	}
	b.Signals.EnemyHits[en.ID]++
	e.emit(b, log.NewDamageEvent(b.Turn, b.Phase.String(), en.ID, blocked, loss, en.HP, o.source))
	e.cascade(b)
}

// hitPlayer deals one enemy attack hit to the player. Blocked damage may be
// reflected to the attacker by supplies.
func (e *Engine) hitPlayer(b *Battle, attacker int, amount int) {
	src := b.Enemies[attacker].ID
	loss, left := Absorb(amount, b.Player.Block)
	blocked := b.Player.Block - left
	b.Player.Block = left
	b.Player.HP = max(b.Player.HP-loss, 0)
	b.Signals.PlayerHits++
	e.emit(b, log.NewDamageEvent(b.Turn, b.Phase.String(), log.Player, blocked, loss, b.Player.HP, src))

	if ratio := e.reflectRatio(b); ratio > 0 && blocked > 0 {
		if back := int(float64(blocked) * ratio); back > 0 {
			e.emit(b, log.NewReflectEvent(b.Turn, b.Phase.String(), src, back))
			e.loseHPEnemy(b, attacker, back, "reflection")
		}
	}
	e.checkResult(b)
}

// loseHPPlayer removes HP directly, skipping block.
func (e *Engine) loseHPPlayer(b *Battle, amount int, source string) {
	if amount <= 0 {
		return
	}
	b.Player.HP = max(b.Player.HP-amount, 0)
	b.Signals.PlayerHits++
	e.emit(b, log.NewDamageEvent(b.Turn, b.Phase.String(), log.Player, 0, amount, b.Player.HP, source))
	e.checkResult(b)
}

// loseHPEnemy removes HP from an enemy directly, skipping block.
func (e *Engine) loseHPEnemy(b *Battle, idx int, amount int, source string) {
	en := &b.Enemies[idx]
	if amount <= 0 || !en.Alive() {
		return
	}
	en.HP = max(en.HP-amount, 0)
	e.emit(b, log.NewDamageEvent(b.Turn, b.Phase.String(), en.ID, 0, amount, en.HP, source))
	e.cascade(b)
}

func (e *Engine) healPlayer(b *Battle, amount int, reason string) {
	if amount <= 0 {
		return
	}
	before := b.Player.HP
	b.Player.HP = min(b.Player.HP+amount, b.Player.MaxHP)
	e.emit(b, log.NewHealEvent(b.Turn, b.Phase.String(), log.Player, b.Player.HP-before, b.Player.HP, reason))
}

func (e *Engine) healEnemy(b *Battle, idx int, amount int, reason string) {
	en := &b.Enemies[idx]
	if amount <= 0 || !en.Alive() {
		return
	}
	before := en.HP
	en.HP = min(en.HP+amount, en.MaxHP)
	e.emit(b, log.NewHealEvent(b.Turn, b.Phase.String(), en.ID, en.HP-before, en.HP, reason))
}

func (e *Engine) gainBlockPlayer(b *Battle, amount int) {
	if amount <= 0 {
		return
	}
	b.Player.Block += amount
	e.emit(b, log.NewBlockEvent(b.Turn, b.Phase.String(), log.Player, amount, b.Player.Block))
}

func (e *Engine) gainBlockEnemy(b *Battle, idx int, amount int) {
	en := &b.Enemies[idx]
	if amount <= 0 {
		return
	}
	en.Block += amount
	e.emit(b, log.NewBlockEvent(b.Turn, b.Phase.String(), en.ID, amount, en.Block))
}

func (e *Engine) changeEnergy(b *Battle, delta int, reason string) {
	before := b.Player.Energy
	b.Player.Energy = max(b.Player.Energy+delta, 0)
	if b.Player.Energy != before {
		e.emit(b, log.NewEnergyEvent(b.Turn, b.Phase.String(), before, b.Player.Energy, reason))
	}
}
