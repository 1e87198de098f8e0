package net

// Message types for the JSON protocol over TCP and WebSocket.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "state", "game_over" or "error"

	State  *StateView  `json:"state,omitempty"`
	Events []EventView `json:"events,omitempty"`

	// Events logged since the previous reply that the bounded log no longer holds
	Dropped int `json:"dropped,omitempty"`

	// For a resolved "attack" command
	Attack *AttackView `json:"attack,omitempty"`

	// Set when the command was a legal request the rules turned down
	Rejected string `json:"rejected,omitempty"`

	// For "error": the message itself was malformed
	Error string `json:"error,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Side    string `json:"side"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes one card instance.
type CardView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Faction   string   `json:"faction,omitempty"`
	Health    int      `json:"health"`
	MaxHealth int      `json:"max_health"`
	Armor     int      `json:"armor"`
	Attack    int      `json:"attack"`
	Cost      int      `json:"cost"`
	Bounty    int      `json:"bounty"`
	Acted     bool     `json:"acted,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Gold        int        `json:"gold"`
	Health      int        `json:"health"`
	HandCount   int        `json:"hand_count"`
	Hand        []CardView `json:"hand,omitempty"` // only for the player
	DeckCount   int        `json:"deck_count"`
	Battlefield []CardView `json:"battlefield"`
}

// StateView is the session state from the player's perspective.
type StateView struct {
	Scenario      string     `json:"scenario"`
	ScenarioIndex int        `json:"scenario_index"`
	Turn          int        `json:"turn"`
	TurnSide      string     `json:"turn_side"`
	Phase         string     `json:"phase"`
	Status        string     `json:"status"`
	You           PlayerView `json:"you"`
	Opponent      PlayerView `json:"opponent"`
	Attacker      *CardView  `json:"attacker,omitempty"`
	LegalTargets  []string   `json:"legal_targets,omitempty"`
}

// AttackView reports one resolved attack.
type AttackView struct {
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
	Direct   bool   `json:"direct,omitempty"`
	Damage   int    `json:"damage"`
	Defeated bool   `json:"defeated,omitempty"`
	Bounty   int    `json:"bounty,omitempty"`
}

// --- Client → Server messages ---

// Command names accepted in ClientMessage.Command.
const (
	CmdState          = "state"
	CmdDraw           = "draw"
	CmdPlay           = "play"
	CmdSelectAttacker = "select_attacker"
	CmdAttack         = "attack"
	CmdCancel         = "cancel"
	CmdEndTurn        = "end_turn"
	CmdLoadScenario   = "load_scenario"
	CmdReset          = "reset"
)

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type    string `json:"type"` // "command"
	Command string `json:"command"`

	// For "play" and "select_attacker"
	CardID string `json:"card_id,omitempty"`

	// For "attack": a card ID or "opponent-side"
	Target string `json:"target,omitempty"`

	// For "load_scenario" (0-based)
	Scenario int `json:"scenario,omitempty"`
}
