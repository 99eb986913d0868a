package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/session"
	"github.com/peterkuimelis/quizcrawl/internal/view"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID  string           `json:"session_id,omitempty"`
	Encounter  string           `json:"encounter,omitempty"`
	Events     []view.EventView `json:"events"`
	Collapsed  []string         `json:"collapsed,omitempty"`
	State      *view.BattleView `json:"state,omitempty"`
	Pending    string           `json:"pending"` // lifecycle state: player, answering, discarding, enemy, over
	GameOver   bool             `json:"game_over"`
	Result     string           `json:"result,omitempty"`
	Rewards    *RewardView      `json:"rewards,omitempty"`
	Encounters []EncounterView  `json:"encounters,omitempty"`
}

// RewardView carries the post-battle values after supply modifiers.
type RewardView struct {
	HP     int `json:"hp"`
	Gold   int `json:"gold"`
	Offers int `json:"offers"`
}

// EncounterView is one selectable encounter.
type EncounterView struct {
	Number  int      `json:"number"`
	Name    string   `json:"name"`
	Enemies []string `json:"enemies"`
}

// Base rewards before supply modifiers.
const (
	baseGold   = 20
	baseOffers = 3
)

// Host owns the engine and the single active battle of a stdio process.
type Host struct {
	engine     *battle.Engine
	tables     *content.Tables
	encounters *content.EncounterFile

	mu     sync.Mutex
	active *session.Session
}

// NewHost creates a host. A nil encounter file falls back to the defaults.
func NewHost(engine *battle.Engine, encounters *content.EncounterFile) *Host {
	if encounters == nil {
		encounters = content.DefaultEncounters()
	}
	return &Host{engine: engine, tables: engine.Tables, encounters: encounters}
}

// current returns the active session, if any.
func (h *Host) current() (*session.Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return nil, fmt.Errorf("no battle is running, use start_battle first")
	}
	return h.active, nil
}

// start replaces a finished (or absent) session with a new one.
func (h *Host) start(number int, seed uint32) (*session.Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active != nil && h.active.State() != session.StateOver {
		return nil, fmt.Errorf("a battle is already running, only one battle at a time is supported")
	}
	enc, err := h.encounters.ByNumber(number)
	if err != nil {
		return nil, err
	}
	sess, err := session.New(h.engine, enc.Name, battle.SetupFromEncounter(enc, seed))
	if err != nil {
		return nil, err
	}
	h.active = sess
	return sess, nil
}

// respond drains the session's signals into a ToolResponse.
func (h *Host) respond(sess *session.Session) *ToolResponse {
	b := sess.Battle()
	batch := sess.Drain()
	resp := &ToolResponse{
		SessionID: sess.ID,
		Encounter: sess.Encounter,
		Events:    view.BuildEventViews(batch.Events),
		Collapsed: batch.Collapsed,
		State:     view.BuildBattleView(b, h.tables),
		Pending:   sess.State(),
		GameOver:  b.Over(),
	}
	if b.Over() {
		resp.Result = b.Result.String()
		if b.Result == battle.Victory {
			resp.Rewards = &RewardView{
				HP:     h.engine.PostBattleHP(b),
				Gold:   h.engine.GoldReward(b, baseGold),
				Offers: h.engine.OfferCount(b, baseOffers),
			}
		}
	}
	return resp
}

func (h *Host) encounterViews() []EncounterView {
	var out []EncounterView
	for i, e := range h.encounters.Encounters {
		out = append(out, EncounterView{Number: i + 1, Name: e.Name, Enemies: e.Enemies})
	}
	return out
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
