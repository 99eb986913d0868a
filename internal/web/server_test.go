package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/quiz"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
	"github.com/peterkuimelis/quizcrawl/internal/session"
	"github.com/peterkuimelis/quizcrawl/internal/view"
)

type fixedQuestions struct{}

func (fixedQuestions) Next(int, *rng.Stream) quiz.Question {
	return quiz.Question{Prompt: "5 - 2 = ?", Answer: "3"}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine := battle.NewEngine(battle.EngineConfig{Questions: fixedQuestions{}})
	srv := NewServer(engine, &content.EncounterFile{Encounters: []content.Encounter{
		{Name: "Lone Cultist", HP: 50, MaxHP: 50, Energy: 3,
			Deck:    []content.CardEntry{{Card: "strike", Count: 6}, {Card: "defend", Count: 2}},
			Enemies: []string{"cultist"}},
	}})
	srv.Delay = 0
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestIndexAndStatic(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	css, err := http.Get(ts.URL + "/static/style.css")
	require.NoError(t, err)
	css.Body.Close()
	assert.Equal(t, http.StatusOK, css.StatusCode)

	missing, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPICards(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()

	var cards []CardInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	require.NotEmpty(t, cards)
	var strike *CardInfo
	for i := range cards {
		if cards[i].ID == "strike" {
			strike = &cards[i]
		}
	}
	require.NotNil(t, strike)
	assert.Equal(t, "Strike", strike.Name)
	assert.Equal(t, "Attack", strike.CardType)
	assert.Equal(t, 1, strike.Cost)
}

func TestAPIEncounters(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/encounters")
	require.NoError(t, err)
	defer resp.Body.Close()

	var encounters []EncounterInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&encounters))
	require.Len(t, encounters, 1)
	assert.Equal(t, 1, encounters[0].Number)
	assert.Equal(t, []string{"cultist"}, encounters[0].Enemies)
	assert.Equal(t, []string{"strike", "defend"}, encounters[0].Cards)
}

func dial(t *testing.T, ts *httptest.Server) (context.Context, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.CloseNow() })
	return ctx, c
}

func exchange(t *testing.T, ctx context.Context, c *websocket.Conn, msg view.ClientMessage) view.ServerMessage {
	t.Helper()
	require.NoError(t, wsjson.Write(ctx, c, msg))
	return read(t, ctx, c)
}

func read(t *testing.T, ctx context.Context, c *websocket.Conn) view.ServerMessage {
	t.Helper()
	var out view.ServerMessage
	require.NoError(t, wsjson.Read(ctx, c, &out))
	return out
}

func TestSocketBattle(t *testing.T) {
	ts := newTestServer(t)
	ctx, c := dial(t, ts)

	early := exchange(t, ctx, c, view.ClientMessage{Type: "play", Card: "strike#1"})
	assert.Equal(t, "error", early.Type)
	assert.Contains(t, early.Error, "send start first")

	missing := exchange(t, ctx, c, view.ClientMessage{Type: "start", Encounter: 4})
	assert.Equal(t, "error", missing.Type)

	opening := exchange(t, ctx, c, view.ClientMessage{Type: "start", Encounter: 1, Seed: 9})
	require.Equal(t, "state", opening.Type)
	require.NotNil(t, opening.State)
	require.Len(t, opening.State.Hand, 5)
	assert.NotEmpty(t, opening.Events)

	var strike string
	for _, card := range opening.State.Hand {
		if strings.HasPrefix(card.ID, "strike") {
			strike = card.ID
			break
		}
	}
	require.NotEmpty(t, strike, "five of eight cards drawn, at least three are strikes")

	staged := exchange(t, ctx, c, view.ClientMessage{Type: "play", Card: strike, Target: "cultist#1"})
	require.Equal(t, "state", staged.Type)
	require.NotNil(t, staged.State.Question)
	assert.Equal(t, "5 - 2 = ?", staged.State.Question.Prompt)

	answered := exchange(t, ctx, c, view.ClientMessage{Type: "answer", Answer: "3"})
	require.Equal(t, "state", answered.Type)
	assert.Equal(t, 34, answered.State.Enemies[0].HP)

	bogus := exchange(t, ctx, c, view.ClientMessage{Type: "dance"})
	assert.Equal(t, "error", bogus.Type)

	// The turn change, then one message per enemy step until the player
	// has control again.
	ended := exchange(t, ctx, c, view.ClientMessage{Type: "end_turn"})
	require.Equal(t, "state", ended.Type)
	assert.Equal(t, "Enemy", ended.State.Phase)
	steps := 0
	for ended.State.Phase != "Player" {
		ended = read(t, ctx, c)
		require.Equal(t, "state", ended.Type)
		steps++
	}
	assert.GreaterOrEqual(t, steps, 1)
	assert.Equal(t, 2, ended.State.Turn)

	current := exchange(t, ctx, c, view.ClientMessage{Type: "state"})
	assert.Equal(t, 2, current.State.Turn)
	assert.Empty(t, current.Events)
}

func TestFailedPushStopsEnemyPhase(t *testing.T) {
	engine := battle.NewEngine(battle.EngineConfig{Questions: fixedQuestions{}})
	sess, err := session.New(engine, "pair", battle.Setup{
		Seed: 3, HP: 50, Deck: []string{"strike", "strike", "strike", "strike", "strike"},
		Enemies: []string{"cultist", "cultist"},
	})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, sess.EndTurn(ctx))

	gone := errors.New("socket closed")
	pushes := 0
	err = paceEnemyPhase(ctx, sess, 20*time.Millisecond, func() error {
		pushes++
		return gone
	})

	assert.ErrorIs(t, err, gone)
	assert.Equal(t, 1, pushes)
	assert.Equal(t, session.StateEnemy, sess.State(), "the second cultist never acts")
}
