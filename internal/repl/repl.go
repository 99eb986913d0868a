// Package repl is a terminal host for a single battle.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/log"
	"github.com/peterkuimelis/quizcrawl/internal/session"
	"github.com/peterkuimelis/quizcrawl/internal/view"
)

var errQuit = errors.New("quit")

// REPL reads commands from in and renders the battle to out.
type REPL struct {
	sess   *session.Session
	tables *content.Tables
	in     *bufio.Reader
	out    io.Writer

	// Delay paces enemy steps so each action can be read.
	Delay time.Duration
}

// New creates a REPL over a session.
func New(sess *session.Session, tables *content.Tables, in io.Reader, out io.Writer) *REPL {
	return &REPL{sess: sess, tables: tables, in: bufio.NewReader(in), out: out}
}

// Run loops until the battle ends, the input is exhausted or the player
// quits.
func (r *REPL) Run(ctx context.Context) error {
	r.flushEvents()
	r.renderState()
	for {
		if b := r.sess.Battle(); b.Over() {
			r.renderGameOver(b)
			return nil
		}
		r.prompt()
		line, err := r.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if err != nil {
				return nil
			}
			continue
		}
		if cerr := r.dispatch(ctx, line); cerr != nil {
			if errors.Is(cerr, errQuit) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(r.out, "! %v\n", cerr)
			continue
		}
		r.flushEvents()
		r.renderState()
	}
}

func (r *REPL) prompt() {
	if q := r.sess.Battle().Answering; q != nil {
		fmt.Fprintf(r.out, "\nQ: %s\n? ", q.Question.Prompt)
		return
	}
	if d := r.sess.Battle().Discarding; d != nil {
		fmt.Fprintf(r.out, "\nChoose %d card(s) to discard.\n", d.Count)
	}
	fmt.Fprint(r.out, "> ")
}

func (r *REPL) dispatch(ctx context.Context, line string) error {
	// While a question is pending the whole line is the answer.
	if r.sess.State() == session.StateAnswering && !strings.HasPrefix(line, "/") {
		return r.sess.Answer(ctx, line)
	}
	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "play", "p":
		if len(args) < 1 {
			return errors.New("usage: play <card#> [enemy#]")
		}
		card, err := r.handCard(args[0])
		if err != nil {
			return err
		}
		return r.sess.Play(ctx, card, r.target(args[1:]))

	case "answer", "a":
		return r.sess.Answer(ctx, strings.Join(args, " "))

	case "discard", "d":
		var cards []string
		for _, a := range args {
			card, err := r.handCard(a)
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}
		return r.sess.Discard(ctx, cards)

	case "use", "u":
		if len(args) < 1 {
			return errors.New("usage: use <consumable> [enemy#]")
		}
		return r.sess.Use(ctx, args[0], r.target(args[1:]))

	case "end", "e":
		if err := r.sess.EndTurn(ctx); err != nil {
			return err
		}
		r.flushEvents()
		return r.sess.RunEnemyPhase(ctx, r.Delay, func(*battle.Battle) { r.flushEvents() })

	case "state", "s":
		return nil

	case "log":
		r.renderLog()
		return nil

	case "help", "h":
		r.renderHelp()
		return nil

	case "quit", "q":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

// handCard resolves a 1-based hand position or a card instance id.
func (r *REPL) handCard(arg string) (string, error) {
	hand := r.sess.Battle().Hand
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(hand) {
			return "", fmt.Errorf("card number must be between 1 and %d", len(hand))
		}
		return hand[n-1], nil
	}
	return arg, nil
}

// target resolves a 1-based enemy position or an enemy id. Empty means the
// engine's default target.
func (r *REPL) target(args []string) string {
	if len(args) == 0 {
		return ""
	}
	enemies := r.sess.Battle().Enemies
	if n, err := strconv.Atoi(args[0]); err == nil && n >= 1 && n <= len(enemies) {
		return enemies[n-1].ID
	}
	return args[0]
}

func (r *REPL) flushEvents() {
	batch := r.sess.Drain()
	for _, ev := range batch.Events {
		if ev.Type == log.EventDraw || ev.Type == log.EventEnergyChange {
			continue
		}
		fmt.Fprintln(r.out, log.FormatEvent(ev))
	}
	for _, id := range batch.Collapsed {
		fmt.Fprintf(r.out, "    %s crumbles away\n", id)
	}
}

func (r *REPL) renderState() {
	bv := view.BuildBattleView(r.sess.Battle(), r.tables)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "╔══════════════════════════════════════════════════════╗")
	for i, en := range bv.Enemies {
		if !en.Alive {
			continue
		}
		fmt.Fprintf(r.out, "║  %d) %-16s HP %3d/%-3d  Block %-3d %s\n",
			i+1, en.Name, en.HP, en.MaxHP, en.Block, formatStatuses(en.Statuses))
		if len(en.Intents) > 0 {
			fmt.Fprintf(r.out, "║       intends: %s\n", strings.Join(en.Intents, ", "))
		}
		if en.Guarding != "" {
			fmt.Fprintf(r.out, "║       guarding %s\n", en.Guarding)
		}
	}
	fmt.Fprintln(r.out, "║──────────────────────────────────────────────────────")
	p := bv.Player
	fmt.Fprintf(r.out, "║  YOU  HP %d/%d  Block %d  Energy %d/%d  Streak %d %s\n",
		p.HP, p.MaxHP, p.Block, p.Energy, p.MaxEnergy, bv.Streak, formatStatuses(p.Statuses))
	fmt.Fprintf(r.out, "║  Draw: %d  Discard: %d  Exhaust: %d\n", bv.DrawCount, bv.DiscardCount, bv.ExhaustCount)
	if bv.ForcedPenalty > 0 {
		fmt.Fprintf(r.out, "║  Pop quiz pending: %d damage on a wrong answer\n", bv.ForcedPenalty)
	}
	fmt.Fprintln(r.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(r.out, "Turn %d | %s\n", bv.Turn, bv.Phase)

	if len(bv.Hand) > 0 {
		fmt.Fprintf(r.out, "\nHand: ")
		for _, c := range bv.Hand {
			mark := ""
			if !c.Playable {
				mark = "*"
			}
			fmt.Fprintf(r.out, "[%d] %s (%d)%s  ", c.Index+1, c.Name, c.Cost, mark)
		}
		fmt.Fprintln(r.out)
	}
	if len(bv.Consumables) > 0 {
		var ids []string
		for _, c := range bv.Consumables {
			ids = append(ids, c.ID)
		}
		fmt.Fprintf(r.out, "Consumables: %s\n", strings.Join(ids, ", "))
	}
}

func formatStatuses(statuses []view.StatusView) string {
	var parts []string
	for _, s := range statuses {
		parts = append(parts, fmt.Sprintf("%s%d", s.Label, s.Stacks))
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (r *REPL) renderLog() {
	fmt.Fprint(r.out, log.FormatAll(r.sess.Engine().Logger.Events()))
}

func (r *REPL) renderHelp() {
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  play <card#> [enemy#]   play a card from hand")
	fmt.Fprintln(r.out, "  answer <text>           answer the pending question")
	fmt.Fprintln(r.out, "  discard <card#>...      choose cards to discard")
	fmt.Fprintln(r.out, "  use <item> [enemy#]     use a consumable")
	fmt.Fprintln(r.out, "  end                     end your turn")
	fmt.Fprintln(r.out, "  state | log | help | quit")
}

func (r *REPL) renderGameOver(b *battle.Battle) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "═══════════════════════════════════")
	fmt.Fprintln(r.out, "          BATTLE OVER")
	fmt.Fprintln(r.out, "═══════════════════════════════════")
	switch b.Result {
	case battle.Victory:
		fmt.Fprintf(r.out, "Victory on turn %d with %d HP left.\n", b.Turn, r.sess.Engine().PostBattleHP(b))
	default:
		fmt.Fprintf(r.out, "Defeat on turn %d.\n", b.Turn)
	}
	fmt.Fprintln(r.out, "═══════════════════════════════════")
}
