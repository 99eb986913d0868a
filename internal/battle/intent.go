package battle

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
)

// rollIntents picks and telegraphs the next move(s) of the enemy at idx.
//
// Priority: an HP phase with its keyed sequence, then the base sequence, then
// weighted random selection with the optional no-repeat rule.
func (e *Engine) rollIntents(b *Battle, idx int) {
	en := &b.Enemies[idx]
	en.Intents = nil
	en.Moves = nil
	if !en.Alive() {
		return
	}
	def, ok := e.Tables.Enemy(en.DefID)
	if !ok {
		e.diagnose(b, "enemy %s has no definition", en.ID)
		return
	}
	beh := def.Behavior

	var picked []content.Move
	if seq, key, ok := activeSequence(beh, en); ok {
		if key != en.SeqKey {
			en.SeqKey = key
			en.SeqCursor = 0
		}
		if m, ok := e.nextInSequence(b, idx, beh, seq); ok {
			picked = append(picked, m)
		}
	} else {
		n := max(beh.IntentsPerTurn, 1)
		for i := 0; i < n; i++ {
			m, ok := pickWeighted(&b.Rng, beh, en.LastCategory)
			if !ok {
				break
			}
			en.LastCategory = m.CategoryOf()
			picked = append(picked, m)
		}
	}

	var summary []string
	for _, m := range picked {
		en.Moves = append(en.Moves, m.ID)
		en.Intents = append(en.Intents, m.Intents...)
		for _, in := range m.Intents {
			summary = append(summary, DescribeIntent(in))
		}
	}
	if len(summary) == 0 {
		summary = append(summary, "nothing")
	}
	e.emit(b, log.NewIntentEvent(b.Turn, b.Phase.String(), en.ID, strings.Join(summary, ", ")))
}

// activeSequence returns the scripted sequence in force and its key. Phases
// win over the base sequence; the base sequence uses the empty key.
func activeSequence(beh content.Behavior, en *Enemy) ([]string, string, bool) {
	if len(beh.Phases) > 0 && en.MaxHP > 0 {
		best := -1
		for i, p := range beh.Phases {
			// threshold >= HP%, compared without rounding
			if p.Threshold*en.MaxHP < en.HP*100 {
				continue
			}
			if best < 0 || p.Threshold < beh.Phases[best].Threshold {
				best = i
			}
		}
		if best >= 0 {
			key := beh.Phases[best].Sequence
			if seq := beh.Sequences[key]; len(seq) > 0 {
				return seq, key, true
			}
		}
	}
	if len(beh.Sequence) > 0 {
		return beh.Sequence, "", true
	}
	return nil, "", false
}

// nextInSequence advances the cursor to the next step naming a known move.
// Unknown steps are skipped with a diagnostic.
func (e *Engine) nextInSequence(b *Battle, idx int, beh content.Behavior, seq []string) (content.Move, bool) {
	for tries := 0; tries < len(seq); tries++ {
		en := &b.Enemies[idx]
		step := seq[en.SeqCursor%len(seq)]
		en.SeqCursor = (en.SeqCursor + 1) % len(seq)
		if m, ok := beh.Move(step); ok {
			en.LastCategory = m.CategoryOf()
			return m, true
		}
		e.diagnose(b, "enemy %s: unknown move %q in sequence", en.ID, step)
	}
	return content.Move{}, false
}

// pickWeighted draws one move. With no-repeat, moves sharing the previous
// category are excluded unless that would leave nothing.
func pickWeighted(s *rng.Stream, beh content.Behavior, last string) (content.Move, bool) {
	pool := beh.Moves
	if beh.NoRepeat && last != "" {
		var filtered []content.Move
		for _, m := range beh.Moves {
			if m.CategoryOf() != last {
				filtered = append(filtered, m)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}
	m, i := rng.WeightedPick(s, pool, func(m content.Move) float64 { return m.Weight })
	return m, i >= 0
}

// DescribeIntent renders an intent as a short phrase.
func DescribeIntent(in content.Intent) string {
	switch in.Kind {
	case content.IntentAttack:
		if in.Hits > 1 {
			return fmt.Sprintf("attack %dx%d", in.Amount, in.Hits)
		}
		return fmt.Sprintf("attack %d", in.Amount)
	case content.IntentBlock:
		return fmt.Sprintf("block %d", in.Amount)
	case content.IntentDebuff:
		return fmt.Sprintf("inflict %d %s", in.Amount, in.Status)
	case content.IntentBuff:
		return fmt.Sprintf("gain %d %s", in.Amount, in.Status)
	case content.IntentHeal:
		return fmt.Sprintf("heal %d", in.Amount)
	case content.IntentSummon:
		return fmt.Sprintf("summon %s", in.Enemy)
	case content.IntentAddCard:
		return fmt.Sprintf("add %d %s to %s", max(in.Count, 1), in.Card, pileName(in.Pile))
	case content.IntentEraseBuffs:
		return "erase your buffs"
	case content.IntentConsumeMinions:
		return "consume minions"
	case content.IntentExhaustCard:
		return fmt.Sprintf("exhaust %d card(s) from hand", max(in.Count, 1))
	case content.IntentForceQuestion:
		return fmt.Sprintf("pop quiz (%d on a wrong answer)", in.Amount)
	case content.IntentCleanse:
		return "cleanse"
	default:
		return "unknown"
	}
}

func pileName(p string) string {
	if p == "" {
		return "discard"
	}
	return p
}
