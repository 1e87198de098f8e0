package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/log"
	skirmishnet "github.com/peterkuimelis/skirmish/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []skirmishnet.EventView `json:"events"`
	Dropped  int                     `json:"dropped,omitempty"` // events lost to the bounded log
	State    *skirmishnet.StateView  `json:"state,omitempty"`
	Attack   *skirmishnet.AttackView `json:"attack,omitempty"`
	Rejected string                  `json:"rejected,omitempty"`
	GameOver bool                    `json:"game_over"`
	Winner   string                  `json:"winner,omitempty"`
}

// GameSession holds the state of a single MCP game session. Tool calls may
// arrive concurrently, so every access goes through mu.
type GameSession struct {
	mu   sync.Mutex
	sess *game.Session
	seq  int // last event already reported
}

// NewGameSession loads rules and scenarios from disk and starts scenario.
func NewGameSession(rulesPath, scenariosPath string, scenario int) (*GameSession, error) {
	rules, err := config.Load(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	cat := game.NewCatalog()
	scenarios, err := game.LoadScenarios(scenariosPath, cat)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	if scenario < 0 || scenario >= len(scenarios) {
		return nil, fmt.Errorf("scenario must be 0-%d, got %d", len(scenarios)-1, scenario)
	}

	sess, err := game.NewSession(cat, scenarios,
		game.WithRules(rules),
		game.WithLogger(log.NewMemoryLogger(rules.LogCapacity)),
	)
	if err != nil {
		return nil, err
	}
	if scenario != 0 {
		if err := sess.LoadScenario(scenario); err != nil {
			return nil, err
		}
	}
	return &GameSession{sess: sess}, nil
}

// Do applies one command and reports everything that happened since the
// previous call.
func (gs *GameSession) Do(msg skirmishnet.ClientMessage) (ToolResponse, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	reply, seq := skirmishnet.Respond(gs.sess, msg, gs.seq)
	gs.seq = seq
	if reply.Type == "error" {
		return ToolResponse{}, fmt.Errorf("%s", reply.Error)
	}
	resp := ToolResponse{
		Events:   reply.Events,
		Dropped:  reply.Dropped,
		State:    reply.State,
		Attack:   reply.Attack,
		Rejected: reply.Rejected,
		GameOver: reply.Type == "game_over",
		Winner:   reply.Winner,
	}
	if resp.Events == nil {
		resp.Events = []skirmishnet.EventView{}
	}
	return resp, nil
}

func respondJSON(resp ToolResponse) string {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
