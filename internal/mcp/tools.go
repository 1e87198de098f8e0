package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/skirmish/internal/game"
	skirmishnet "github.com/peterkuimelis/skirmish/internal/net"
)

var (
	// mu guards the package configuration and activeSession.
	mu sync.Mutex

	// activeSession is the singleton game session (one per stdio process).
	activeSession *GameSession

	// scenariosFile is the path to the scenarios YAML file, set by main.
	// Empty means the built-in scenarios.
	scenariosFile string

	// rulesFile is the path to the rules YAML file, set by main.
	rulesFile string
)

// SetScenariosFile sets the path to the scenarios YAML file.
func SetScenariosFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	scenariosFile = path
}

// SetRulesFile sets the path to the rules YAML file.
func SetRulesFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	rulesFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(newGameTool(), handleNewGame)
	s.AddTool(drawTool(), handleDraw)
	s.AddTool(playTool(), handlePlay)
	s.AddTool(selectAttackerTool(), handleSelectAttacker)
	s.AddTool(attackTool(), handleAttack)
	s.AddTool(cancelTargetTool(), handleCancelTarget)
	s.AddTool(endTurnTool(), handleEndTurn)
	s.AddTool(resetGameTool(), handleResetGame)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Start a new skirmish against the scripted opponent, replacing any running game. "+
			"Returns the initial state and the events of the opening turn."),
		mcp.WithNumber("scenario", mcp.Description("0-based scenario index (default 0)")),
	)
}

func drawTool() mcp.Tool {
	return mcp.NewTool("draw",
		mcp.WithDescription("Pay the draw cost to move the top card of your deck into your hand. Main phase only."),
	)
}

func playTool() mcp.Tool {
	return mcp.NewTool("play",
		mcp.WithDescription("Pay a hand card's cost and place it on your battlefield. Main phase only."),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of a card in your hand")),
	)
}

func selectAttackerTool() mcp.Tool {
	return mcp.NewTool("select_attacker",
		mcp.WithDescription("Choose a ready unit on your battlefield to attack with. Enters target selection."),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of a unit on your battlefield")),
	)
}

func attackTool() mcp.Tool {
	return mcp.NewTool("attack",
		mcp.WithDescription("Resolve the selected attacker against a target. Only valid during target selection; "+
			"state.legal_targets lists the choices."),
		mcp.WithString("target", mcp.Required(), mcp.Description("ID of an opposing unit, or \"opponent-side\" for a direct attack")),
	)
}

func cancelTargetTool() mcp.Tool {
	return mcp.NewTool("cancel_target",
		mcp.WithDescription("Leave target selection without attacking."),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn. The opponent's whole turn runs before this returns."),
	)
}

func resetGameTool() mcp.Tool {
	return mcp.NewTool("reset_game",
		mcp.WithDescription("Restart the current scenario from its initial state."),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state and any events not yet reported. Read-only."),
	)
}

// --- Tool handlers ---

func handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenario := request.GetInt("scenario", 0)

	mu.Lock()
	sess, err := NewGameSession(rulesFile, scenariosFile, scenario)
	if err != nil {
		mu.Unlock()
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess
	mu.Unlock()

	return run(sess, skirmishnet.CmdState, nil)
}

func handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return runActive(skirmishnet.CmdDraw, nil)
}

func handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID := request.GetString("card_id", "")
	if cardID == "" {
		return mcp.NewToolResultError("card_id is required."), nil
	}
	return runActive(skirmishnet.CmdPlay, func(m *skirmishnet.ClientMessage) { m.CardID = cardID })
}

func handleSelectAttacker(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID := request.GetString("card_id", "")
	if cardID == "" {
		return mcp.NewToolResultError("card_id is required."), nil
	}
	return runActive(skirmishnet.CmdSelectAttacker, func(m *skirmishnet.ClientMessage) { m.CardID = cardID })
}

func handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := request.GetString("target", "")
	if target == "" {
		return mcp.NewToolResultErrorf("target is required: a unit ID or %q.", game.OpponentSide), nil
	}
	return runActive(skirmishnet.CmdAttack, func(m *skirmishnet.ClientMessage) { m.Target = target })
}

func handleCancelTarget(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return runActive(skirmishnet.CmdCancel, nil)
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return runActive(skirmishnet.CmdEndTurn, nil)
}

func handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return runActive(skirmishnet.CmdReset, nil)
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return runActive(skirmishnet.CmdState, nil)
}

// runActive applies a command to the running game.
func runActive(command string, fill func(*skirmishnet.ClientMessage)) (*mcp.CallToolResult, error) {
	mu.Lock()
	sess := activeSession
	mu.Unlock()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use new_game first."), nil
	}
	return run(sess, command, fill)
}

func run(sess *GameSession, command string, fill func(*skirmishnet.ClientMessage)) (*mcp.CallToolResult, error) {
	msg := skirmishnet.ClientMessage{Type: "command", Command: command}
	if fill != nil {
		fill(&msg)
	}
	resp, err := sess.Do(msg)
	if err != nil {
		return mcp.NewToolResultErrorf("Command failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
