package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// SideID identifies one of the two competing sides.
type SideID int

const (
	SidePlayer SideID = iota
	SideOpponent
)

func (s SideID) String() string {
	if s == SidePlayer {
		return "Player"
	}
	return "Opponent"
}

// Other returns the opposing side.
func (s SideID) Other() SideID {
	return 1 - s
}

// ParseSide accepts "player" or "opponent" (case-insensitive).
func ParseSide(s string) (SideID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "player":
		return SidePlayer, nil
	case "opponent", "enemy":
		return SideOpponent, nil
	default:
		return SidePlayer, fmt.Errorf("unknown side %q", s)
	}
}

type Phase int

const (
	PhaseMain Phase = iota
	PhaseTargetSelection
	PhaseOpponentTurn
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMain:
		return "Main Phase"
	case PhaseTargetSelection:
		return "Target Selection"
	case PhaseOpponentTurn:
		return "Opponent Turn"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "None"
	}
}

type Status int

const (
	StatusPlaying Status = iota
	StatusPlayerWins
	StatusOpponentWins
)

func (s Status) String() string {
	switch s {
	case StatusPlayerWins:
		return "Player Wins"
	case StatusOpponentWins:
		return "Opponent Wins"
	default:
		return "Playing"
	}
}

// Winner returns the winning side, or false while the game is still on.
func (s Status) Winner() (SideID, bool) {
	switch s {
	case StatusPlayerWins:
		return SidePlayer, true
	case StatusOpponentWins:
		return SideOpponent, true
	}
	return SidePlayer, false
}

// Keyword is a card ability. The set is closed; effects resolve through an EffectHook.
type Keyword int

const (
	KeywordLeadership Keyword = iota + 1
	KeywordFortified
	KeywordPiercing
)

var keywordNames = map[Keyword]string{
	KeywordLeadership: "Leadership",
	KeywordFortified:  "Fortified",
	KeywordPiercing:   "Piercing",
}

func (k Keyword) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Description is the rules text shown to players.
func (k Keyword) Description() string {
	switch k {
	case KeywordLeadership:
		return "Gains +1 attack for every other Leadership unit on its battlefield."
	case KeywordFortified:
		return "Gains +1 armor while defending."
	case KeywordPiercing:
		return "Attacks ignore the target's armor."
	default:
		return ""
	}
}

// ParseKeyword resolves a keyword by name (case-insensitive).
func ParseKeyword(s string) (Keyword, error) {
	for k, name := range keywordNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown keyword %q", s)
}

// --- Card template (static, from the catalog) ---

type Template struct {
	Name        string
	Faction     string
	Description string
	MaxHealth   int
	Armor       int
	Attack      int
	Cost        int
	Bounty      int // gold awarded to the side that defeats it
	Keywords    []Keyword
}

func (t Template) String() string {
	return t.Name
}

// Validate checks that the template can produce a legal instance.
func (t Template) Validate() error {
	switch {
	case t.Name == "":
		return fmt.Errorf("card template has no name")
	case t.MaxHealth <= 0:
		return fmt.Errorf("%s: max health must be positive, got %d", t.Name, t.MaxHealth)
	case t.Armor < 0 || t.Attack < 0 || t.Cost < 0 || t.Bounty < 0:
		return fmt.Errorf("%s: armor, attack, cost and bounty must not be negative", t.Name)
	}
	return nil
}

// --- CardInstance (runtime card in deck/hand/battlefield) ---

type CardInstance struct {
	ID        string // unique per copy
	Name      string
	Faction   string
	Health    int
	MaxHealth int
	Armor     int
	Attack    int
	Cost      int
	Bounty    int
	Acted     bool // attacked this turn cycle
	Keywords  []Keyword
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s (ATK %d/ARM %d, HP %d/%d)", ci.Name, ci.Attack, ci.Armor, ci.Health, ci.MaxHealth)
}

// HasKeyword reports whether the card carries k.
func (ci *CardInstance) HasKeyword(k Keyword) bool {
	for _, kw := range ci.Keywords {
		if kw == k {
			return true
		}
	}
	return false
}

// Defeated reports whether the card has no health left.
func (ci *CardInstance) Defeated() bool {
	return ci.Health <= 0
}

// Clone returns a copy that shares no mutable state with ci.
func (ci *CardInstance) Clone() *CardInstance {
	if ci == nil {
		return nil
	}
	c := *ci
	c.Keywords = append([]Keyword(nil), ci.Keywords...)
	return &c
}

// --- Commands ---

// Command names a player-facing mutating operation checked against the phase table.
type Command int

const (
	CommandDraw Command = iota
	CommandPlay
	CommandSelectAttacker
	CommandAttack
	CommandCancelTarget
	CommandEndTurn
)

func (c Command) String() string {
	switch c {
	case CommandDraw:
		return "draw"
	case CommandPlay:
		return "play"
	case CommandSelectAttacker:
		return "select attacker"
	case CommandAttack:
		return "attack"
	case CommandCancelTarget:
		return "cancel target selection"
	case CommandEndTurn:
		return "end turn"
	default:
		return "unknown"
	}
}

// OpponentSide is the attack target naming the opposing side's health pool.
const OpponentSide = "opponent-side"

// AttackResult describes one resolved attack.
type AttackResult struct {
	Attacker string // attacker instance ID
	Target   string // target instance ID, or OpponentSide for a direct attack
	Direct   bool
	Damage   int
	Defeated bool
	Bounty   int // gold credited to the attacking side
}
