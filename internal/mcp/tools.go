package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/view"
)

// RegisterTools adds all battle tools to the MCP server.
func RegisterTools(s *server.MCPServer, h *Host) {
	s.AddTool(listEncountersTool(), h.handleListEncounters)
	s.AddTool(startBattleTool(), h.handleStartBattle)
	s.AddTool(playCardTool(), h.handlePlayCard)
	s.AddTool(answerQuestionTool(), h.handleAnswerQuestion)
	s.AddTool(chooseDiscardTool(), h.handleChooseDiscard)
	s.AddTool(useConsumableTool(), h.handleUseConsumable)
	s.AddTool(endTurnTool(), h.handleEndTurn)
	s.AddTool(getBattleStateTool(), h.handleGetBattleState)
}

// --- Tool definitions ---

func listEncountersTool() mcp.Tool {
	return mcp.NewTool("list_encounters",
		mcp.WithDescription("List the encounters start_battle can use. Read-only."),
	)
}

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a quizcrawl battle. Returns the opening state: your hand, the enemies and their telegraphed intents. "+
			"Cards other than instant ones are staged behind a question you must answer with answer_question."),
		mcp.WithNumber("encounter", mcp.Required(), mcp.Description("Encounter number (1-indexed, see list_encounters)")),
		mcp.WithNumber("seed", mcp.Description("Random seed. The same seed and inputs replay the same battle.")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from hand. Use when pending is 'player'. Energy is paid immediately."),
		mcp.WithString("card", mcp.Required(), mcp.Description("1-based hand position or card instance id (e.g. 'strike#3')")),
		mcp.WithString("target", mcp.Description("Enemy id (e.g. 'cultist#1') or 1-based enemy position. Defaults to the first living enemy.")),
	)
}

func answerQuestionTool() mcp.Tool {
	return mcp.NewTool("answer_question",
		mcp.WithDescription("Answer the staged question. Use when pending is 'answering'. A correct answer applies the card."),
		mcp.WithString("answer", mcp.Required(), mcp.Description("Your answer")),
	)
}

func chooseDiscardTool() mcp.Tool {
	return mcp.NewTool("choose_discard",
		mcp.WithDescription("Choose the cards to discard. Use when pending is 'discarding'."),
		mcp.WithString("cards", mcp.Required(), mcp.Description("Space-separated 1-based hand positions or card ids (e.g. '1 3')")),
	)
}

func useConsumableTool() mcp.Tool {
	return mcp.NewTool("use_consumable",
		mcp.WithDescription("Use a held consumable. Use when pending is 'player'."),
		mcp.WithString("consumable", mcp.Required(), mcp.Description("Consumable id (e.g. 'fire_bomb')")),
		mcp.WithString("target", mcp.Description("Enemy id or 1-based enemy position, for targeted consumables")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn. The whole enemy phase runs and its events are returned with your next turn's state."),
	)
}

func getBattleStateTool() mcp.Tool {
	return mcp.NewTool("get_battle_state",
		mcp.WithDescription("Get the current battle state and accumulated events without acting. Read-only."),
	)
}

// --- Tool handlers ---

func (h *Host) handleListEncounters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(&ToolResponse{Events: []view.EventView{}, Encounters: h.encounterViews()})), nil
}

func (h *Host) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number := request.GetInt("encounter", 0)
	if number < 1 {
		return mcp.NewToolResultError("encounter must be >= 1"), nil
	}
	seed := request.GetInt("seed", 1)

	sess, err := h.start(number, uint32(seed))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start battle: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(h.respond(sess))), nil
}

func (h *Host) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b := sess.Battle()
	card := handCard(b.Hand, request.GetString("card", ""))
	target := enemyTarget(b.Enemies, request.GetString("target", ""))

	if err := sess.Play(ctx, card, target); err != nil {
		return mcp.NewToolResultErrorf("Cannot play %s: %v", card, err), nil
	}
	return mcp.NewToolResultText(respondJSON(h.respond(sess))), nil
}

func (h *Host) handleAnswerQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := sess.Answer(ctx, request.GetString("answer", "")); err != nil {
		return mcp.NewToolResultErrorf("Cannot answer: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(h.respond(sess))), nil
}

func (h *Host) handleChooseDiscard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hand := sess.Battle().Hand
	var cards []string
	for _, p := range strings.Fields(request.GetString("cards", "")) {
		cards = append(cards, handCard(hand, p))
	}
	if err := sess.Discard(ctx, cards); err != nil {
		return mcp.NewToolResultErrorf("Cannot discard: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(h.respond(sess))), nil
}

func (h *Host) handleUseConsumable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := request.GetString("consumable", "")
	target := enemyTarget(sess.Battle().Enemies, request.GetString("target", ""))
	if err := sess.Use(ctx, id, target); err != nil {
		return mcp.NewToolResultErrorf("Cannot use %s: %v", id, err), nil
	}
	return mcp.NewToolResultText(respondJSON(h.respond(sess))), nil
}

func (h *Host) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := sess.EndTurn(ctx); err != nil {
		return mcp.NewToolResultErrorf("Cannot end turn: %v", err), nil
	}
	if err := sess.RunEnemyPhase(ctx, 0, nil); err != nil {
		return mcp.NewToolResultErrorf("Enemy phase interrupted: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(h.respond(sess))), nil
}

func (h *Host) handleGetBattleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(h.respond(sess))), nil
}

// handCard resolves a 1-based hand position; anything else is taken as a
// card instance id.
func handCard(hand []string, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(hand) {
		return hand[n-1]
	}
	return arg
}

// enemyTarget resolves a 1-based roster position; anything else is taken as
// an enemy id.
func enemyTarget(enemies []battle.Enemy, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(enemies) {
		return enemies[n-1].ID
	}
	return arg
}
