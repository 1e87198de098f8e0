package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is an immutable starting configuration. Loading it instances
// fresh copies of every named card.
type Scenario struct {
	Name           string
	First          SideID
	PlayerGold     int
	OpponentGold   int
	PlayerRoster   []string // starting battlefield
	OpponentRoster []string
	PlayerHand     []string
	OpponentHand   []string
	PlayerDeck     []string // first entry is drawn first
	OpponentDeck   []string
	ShuffleDecks   bool
}

// Validate checks the scenario against a catalog.
func (sc Scenario) Validate(cat *Catalog) error {
	if sc.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(sc.PlayerRoster) == 0 || len(sc.OpponentRoster) == 0 {
		return fmt.Errorf("scenario %q: both sides need a starting battlefield", sc.Name)
	}
	if sc.PlayerGold < 0 || sc.OpponentGold < 0 {
		return fmt.Errorf("scenario %q: starting gold must not be negative", sc.Name)
	}
	for _, list := range [][]string{
		sc.PlayerRoster, sc.OpponentRoster,
		sc.PlayerHand, sc.OpponentHand,
		sc.PlayerDeck, sc.OpponentDeck,
	} {
		for _, name := range list {
			if _, ok := cat.Lookup(name); !ok {
				return fmt.Errorf("scenario %q: unknown card %q", sc.Name, name)
			}
		}
	}
	return nil
}

// BuiltinScenarios returns the scenarios shipped with the engine.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			Name:           "Border Skirmish",
			First:          SidePlayer,
			PlayerGold:     3,
			OpponentGold:   2,
			PlayerRoster:   []string{"Footman", "Archer"},
			OpponentRoster: []string{"Goblin Raider", "Goblin Raider"},
			PlayerDeck:     []string{"Squire", "Footman", "Pikeman", "Archer", "Captain"},
			OpponentDeck:   []string{"Goblin Raider", "Orc Shaman", "Warg Rider"},
		},
		{
			Name:           "Ambush at the Ford",
			First:          SideOpponent,
			PlayerGold:     4,
			OpponentGold:   3,
			PlayerRoster:   []string{"Footman", "Pikeman", "Archer"},
			OpponentRoster: []string{"Warg Rider", "Goblin Raider"},
			PlayerHand:     []string{"Squire"},
			PlayerDeck:     []string{"Archer", "Knight", "Footman"},
			OpponentDeck:   []string{"Orc Brute", "Goblin Warchief"},
		},
		{
			Name:           "Last Stand",
			First:          SidePlayer,
			PlayerGold:     6,
			OpponentGold:   6,
			PlayerRoster:   []string{"Knight"},
			OpponentRoster: []string{"Orc Brute", "Goblin Warchief", "Goblin Raider"},
			PlayerHand:     []string{"Captain", "Squire"},
			PlayerDeck:     []string{"Captain", "Archer", "Pikeman", "Footman"},
			OpponentDeck:   []string{"Troll", "Warg Rider"},
			ShuffleDecks:   true,
		},
	}
}

// ScenarioFile represents the top-level YAML structure.
type ScenarioFile struct {
	Cards     []CardEntry     `yaml:"cards"`
	Scenarios []ScenarioEntry `yaml:"scenarios"`
}

// CardEntry declares an extra card template.
type CardEntry struct {
	Name        string   `yaml:"name"`
	Faction     string   `yaml:"faction"`
	Description string   `yaml:"description"`
	Health      int      `yaml:"health"`
	Armor       int      `yaml:"armor"`
	Attack      int      `yaml:"attack"`
	Cost        int      `yaml:"cost"`
	Bounty      int      `yaml:"bounty"`
	Keywords    []string `yaml:"keywords"`
}

// ScenarioEntry represents a single scenario in the YAML file.
type ScenarioEntry struct {
	Name     string    `yaml:"name"`
	First    string    `yaml:"first"`
	Shuffle  bool      `yaml:"shuffle"`
	Player   SideEntry `yaml:"player"`
	Opponent SideEntry `yaml:"opponent"`
}

// SideEntry is one side's starting setup.
type SideEntry struct {
	Gold        int          `yaml:"gold"`
	Battlefield []string     `yaml:"battlefield"`
	Hand        []string     `yaml:"hand"`
	Deck        []CountEntry `yaml:"deck"`
}

// CountEntry represents a card and its count in a deck.
type CountEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// LoadScenarioFile reads a scenario file, registers its cards in cat and
// returns its scenarios in file order.
func LoadScenarioFile(path string, cat *Catalog) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenarios(data, cat)
}

// LoadScenarios loads a scenario file, or returns BuiltinScenarios when
// path is empty.
func LoadScenarios(path string, cat *Catalog) ([]Scenario, error) {
	if path == "" {
		return BuiltinScenarios(), nil
	}
	return LoadScenarioFile(path, cat)
}

// ParseScenarios parses scenario YAML. See LoadScenarioFile. Nothing is
// registered in cat unless the whole file is valid.
func ParseScenarios(data []byte, cat *Catalog) ([]Scenario, error) {
	var sf ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	staged := cat.clone()
	var templates []Template
	for _, ce := range sf.Cards {
		tpl := Template{
			Name:        ce.Name,
			Faction:     ce.Faction,
			Description: ce.Description,
			MaxHealth:   ce.Health,
			Armor:       ce.Armor,
			Attack:      ce.Attack,
			Cost:        ce.Cost,
			Bounty:      ce.Bounty,
		}
		for _, kw := range ce.Keywords {
			k, err := ParseKeyword(kw)
			if err != nil {
				return nil, fmt.Errorf("card %q: %w", ce.Name, err)
			}
			tpl.Keywords = append(tpl.Keywords, k)
		}
		if err := staged.Add(tpl); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	var scenarios []Scenario
	for _, se := range sf.Scenarios {
		first, err := ParseSide(se.First)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", se.Name, err)
		}
		playerDeck, err := expandDeck(se.Player.Deck)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: player deck: %w", se.Name, err)
		}
		opponentDeck, err := expandDeck(se.Opponent.Deck)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: opponent deck: %w", se.Name, err)
		}
		sc := Scenario{
			Name:           se.Name,
			First:          first,
			PlayerGold:     se.Player.Gold,
			OpponentGold:   se.Opponent.Gold,
			PlayerRoster:   se.Player.Battlefield,
			OpponentRoster: se.Opponent.Battlefield,
			PlayerHand:     se.Player.Hand,
			OpponentHand:   se.Opponent.Hand,
			PlayerDeck:     playerDeck,
			OpponentDeck:   opponentDeck,
			ShuffleDecks:   se.Shuffle,
		}
		if err := sc.Validate(staged); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("scenario file defines no scenarios")
	}

	for _, tpl := range templates {
		if err := cat.Add(tpl); err != nil {
			invariant("staged template %q rejected: %v", tpl.Name, err)
		}
	}
	return scenarios, nil
}

// expandDeck turns count entries into a top-first name list. A missing
// count means one copy.
func expandDeck(entries []CountEntry) ([]string, error) {
	var names []string
	for _, e := range entries {
		if e.Count < 0 {
			return nil, fmt.Errorf("card %q has negative count %d", e.Name, e.Count)
		}
		n := e.Count
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			names = append(names, e.Name)
		}
	}
	return names, nil
}
