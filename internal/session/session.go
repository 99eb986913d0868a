// Package session drives one battle on behalf of a host. It owns the
// current battle value, mirrors its lifecycle in a state machine, paces the
// enemy phase and collects the engine's side-channel signals until the host
// drains them.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/log"
)

// Lifecycle states.
const (
	StatePlayer     = "player"
	StateAnswering  = "answering"
	StateDiscarding = "discarding"
	StateEnemy      = "enemy"
	StateOver       = "over"
)

var lifecycle = fsm.Events{
	{Name: "stage", Src: []string{StatePlayer}, Dst: StateAnswering},
	{Name: "answered", Src: []string{StateAnswering}, Dst: StatePlayer},
	{Name: "select", Src: []string{StatePlayer, StateAnswering}, Dst: StateDiscarding},
	{Name: "selected", Src: []string{StateDiscarding}, Dst: StatePlayer},
	{Name: "end_turn", Src: []string{StatePlayer}, Dst: StateEnemy},
	{Name: "resume", Src: []string{StateEnemy}, Dst: StatePlayer},
	{Name: "finish", Src: []string{StatePlayer, StateAnswering, StateDiscarding, StateEnemy}, Dst: StateOver},
}

// StateOf maps a battle onto a lifecycle state.
func StateOf(b *battle.Battle) string {
	switch {
	case b.Over():
		return StateOver
	case b.Answering != nil:
		return StateAnswering
	case b.Discarding != nil:
		return StateDiscarding
	case b.Phase == battle.PhaseEnemy:
		return StateEnemy
	default:
		return StatePlayer
	}
}

// Batch is a drained set of side-channel signals.
type Batch struct {
	Events    []log.GameEvent `json:"events"`
	Collapsed []string        `json:"collapsed,omitempty"`
}

// Session holds a single battle. All methods are safe for concurrent use.
type Session struct {
	ID        string
	Encounter string
	Started   time.Time

	engine  *battle.Engine
	machine *fsm.FSM

	mu      sync.Mutex
	battle  *battle.Battle
	pending Batch
	history []string
}

// New starts a battle from the setup and wraps it in a session.
func New(engine *battle.Engine, encounter string, setup battle.Setup) (*Session, error) {
	b, err := engine.NewBattle(setup)
	if err != nil {
		return nil, fmt.Errorf("start battle: %w", err)
	}
	s := &Session{
		ID:        uuid.NewString(),
		Encounter: encounter,
		Started:   time.Now(),
		engine:    engine,
		battle:    b,
	}
	s.machine = fsm.NewFSM(StatePlayer, lifecycle, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			s.history = append(s.history, e.Dst)
		},
	})
	s.collect(b)
	if err := s.sync(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Engine returns the engine the session drives.
func (s *Session) Engine() *battle.Engine {
	return s.engine
}

// Battle returns the current battle. Callers must not modify it.
func (s *Session) Battle() *battle.Battle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle
}

// State returns the current lifecycle state.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Current()
}

// History returns the lifecycle states entered so far, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Play plays a card from hand.
func (s *Session) Play(ctx context.Context, cardID, target string) error {
	return s.apply(ctx, func(b *battle.Battle) (*battle.Battle, error) {
		return s.engine.PlayCard(b, cardID, target)
	})
}

// Answer answers the staged question.
func (s *Session) Answer(ctx context.Context, answer string) error {
	return s.apply(ctx, func(b *battle.Battle) (*battle.Battle, error) {
		return s.engine.AnswerQuestion(b, answer)
	})
}

// Discard satisfies a pending discard selection.
func (s *Session) Discard(ctx context.Context, cardIDs []string) error {
	return s.apply(ctx, func(b *battle.Battle) (*battle.Battle, error) {
		return s.engine.ChooseDiscard(b, cardIDs)
	})
}

// Use spends a consumable.
func (s *Session) Use(ctx context.Context, id, target string) error {
	return s.apply(ctx, func(b *battle.Battle) (*battle.Battle, error) {
		return s.engine.UseConsumable(b, id, target)
	})
}

// EndTurn hands control to the enemies. The enemy phase does not run until
// Step or RunEnemyPhase is called.
func (s *Session) EndTurn(ctx context.Context) error {
	return s.apply(ctx, s.engine.EndPlayerTurn)
}

// Step advances the enemy queue by one entry.
func (s *Session) Step(ctx context.Context) error {
	return s.apply(ctx, s.engine.AdvanceEnemy)
}

// RunEnemyPhase steps the enemy queue until control returns to the player or
// the battle ends, waiting delay before each step. onStep, if set, sees the
// battle after every step. Cancelling ctx stops between steps.
func (s *Session) RunEnemyPhase(ctx context.Context, delay time.Duration, onStep func(*battle.Battle)) error {
	for s.State() == StateEnemy {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(ctx); err != nil {
			return err
		}
		if onStep != nil {
			onStep(s.Battle())
		}
	}
	return nil
}

// Drain returns the signals collected since the last drain and clears them.
func (s *Session) Drain() Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = Batch{}
	if out.Events == nil {
		out.Events = []log.GameEvent{}
	}
	return out
}

// apply runs one engine transition and adopts its result. A rejection
// leaves the session untouched.
func (s *Session) apply(ctx context.Context, transition func(*battle.Battle) (*battle.Battle, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	nb, err := transition(s.battle)
	if err != nil {
		return err
	}
	s.battle = nb
	s.collect(nb)
	return s.sync(ctx)
}

// collect moves the battle's pending signals into the session. The battle
// is owned by the session at this point, so draining it in place is safe.
func (s *Session) collect(b *battle.Battle) {
	sig := b.DrainSignals()
	s.pending.Events = append(s.pending.Events, sig.Events...)
	s.pending.Collapsed = append(s.pending.Collapsed, sig.Collapsed...)
}

// sync fires the lifecycle event that leads to the battle's state.
func (s *Session) sync(ctx context.Context) error {
	want := StateOf(s.battle)
	cur := s.machine.Current()
	if cur == want {
		return nil
	}
	for _, ev := range lifecycle {
		if ev.Dst == want && slices.Contains(ev.Src, cur) {
			return s.machine.Event(ctx, ev.Name)
		}
	}
	return fmt.Errorf("session %s: no lifecycle transition from %s to %s", s.ID, cur, want)
}
