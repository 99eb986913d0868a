package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/quiz"
	"github.com/peterkuimelis/quizcrawl/internal/rng"
)

type fixedQuestions struct{}

func (fixedQuestions) Next(int, *rng.Stream) quiz.Question {
	return quiz.Question{Prompt: "2 * 3 = ?", Answer: "6"}
}

func newHost() *Host {
	engine := battle.NewEngine(battle.EngineConfig{Questions: fixedQuestions{}})
	return NewHost(engine, &content.EncounterFile{Encounters: []content.Encounter{
		{Name: "Lone Cultist", HP: 50, MaxHP: 50, Energy: 3, Difficulty: 1,
			Deck:    []content.CardEntry{{Card: "strike", Count: 8}},
			Enemies: []string{"cultist"}},
	}})
}

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, fn handler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", res.Content[0])
	return ""
}

func decode(t *testing.T, res *mcp.CallToolResult) ToolResponse {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	return resp
}

func TestListEncounters(t *testing.T) {
	h := newHost()
	resp := decode(t, call(t, h.handleListEncounters, nil))

	require.Len(t, resp.Encounters, 1)
	assert.Equal(t, 1, resp.Encounters[0].Number)
	assert.Equal(t, "Lone Cultist", resp.Encounters[0].Name)
	assert.Equal(t, []string{"cultist"}, resp.Encounters[0].Enemies)
}

func TestDefaultEncountersAreListed(t *testing.T) {
	h := NewHost(battle.NewEngine(battle.EngineConfig{}), nil)
	resp := decode(t, call(t, h.handleListEncounters, nil))
	assert.Len(t, resp.Encounters, len(content.DefaultEncounters().Encounters))
}

func TestToolsNeedABattle(t *testing.T) {
	h := newHost()
	for name, fn := range map[string]handler{
		"play_card":        h.handlePlayCard,
		"answer_question":  h.handleAnswerQuestion,
		"choose_discard":   h.handleChooseDiscard,
		"use_consumable":   h.handleUseConsumable,
		"end_turn":         h.handleEndTurn,
		"get_battle_state": h.handleGetBattleState,
	} {
		res := call(t, fn, map[string]any{"card": "1", "answer": "6", "cards": "1", "consumable": "fire_bomb"})
		assert.True(t, res.IsError, name)
		assert.Contains(t, resultText(t, res), "start_battle", name)
	}
}

func TestStartBattle(t *testing.T) {
	h := newHost()

	bad := call(t, h.handleStartBattle, map[string]any{"encounter": 0})
	assert.True(t, bad.IsError)
	missing := call(t, h.handleStartBattle, map[string]any{"encounter": 9})
	assert.True(t, missing.IsError)

	resp := decode(t, call(t, h.handleStartBattle, map[string]any{"encounter": 1, "seed": 7}))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "Lone Cultist", resp.Encounter)
	assert.Equal(t, "player", resp.Pending)
	assert.False(t, resp.GameOver)
	require.NotNil(t, resp.State)
	assert.Len(t, resp.State.Hand, 5)
	assert.NotEmpty(t, resp.Events)

	again := call(t, h.handleStartBattle, map[string]any{"encounter": 1})
	assert.True(t, again.IsError, "only one battle at a time")
}

func TestPlayAnswerAndEndTurn(t *testing.T) {
	h := newHost()
	decode(t, call(t, h.handleStartBattle, map[string]any{"encounter": 1, "seed": 7}))

	staged := decode(t, call(t, h.handlePlayCard, map[string]any{"card": "1", "target": "1"}))
	assert.Equal(t, "answering", staged.Pending)
	require.NotNil(t, staged.State.Question)
	assert.Equal(t, "2 * 3 = ?", staged.State.Question.Prompt)
	assert.Equal(t, 2, staged.State.Player.Energy)

	wrongTime := call(t, h.handlePlayCard, map[string]any{"card": "1"})
	assert.True(t, wrongTime.IsError)

	answered := decode(t, call(t, h.handleAnswerQuestion, map[string]any{"answer": "6"}))
	assert.Equal(t, "player", answered.Pending)
	assert.Equal(t, 34, answered.State.Enemies[0].HP)
	assert.Len(t, answered.State.Hand, 4)

	state := decode(t, call(t, h.handleGetBattleState, nil))
	assert.Empty(t, state.Events, "events are drained once")
	assert.Equal(t, 34, state.State.Enemies[0].HP)

	next := decode(t, call(t, h.handleEndTurn, nil))
	assert.Equal(t, "player", next.Pending)
	assert.Equal(t, 2, next.State.Turn)
	assert.NotEmpty(t, next.Events)
}

func TestRejectedDiscardAndConsumable(t *testing.T) {
	h := newHost()
	decode(t, call(t, h.handleStartBattle, map[string]any{"encounter": 1}))

	res := call(t, h.handleChooseDiscard, map[string]any{"cards": "1 2"})
	assert.True(t, res.IsError)
	res = call(t, h.handleUseConsumable, map[string]any{"consumable": "fire_bomb"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "consumable not held")
}

func TestHandCardAndEnemyTarget(t *testing.T) {
	hand := []string{"strike#1", "defend#2"}
	assert.Equal(t, "defend#2", handCard(hand, "2"))
	assert.Equal(t, "strike#9", handCard(hand, "strike#9"))
	assert.Equal(t, "3", handCard(hand, "3"))

	enemies := []battle.Enemy{{ID: "cultist#1"}, {ID: "acid_slime#2"}}
	assert.Equal(t, "acid_slime#2", enemyTarget(enemies, "2"))
	assert.Equal(t, "", enemyTarget(enemies, ""))
}
