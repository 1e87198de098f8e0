package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable constants of a battle.
type Rules struct {
	HandSize        int  `yaml:"hand_size" json:"hand_size"`
	DrawCost        int  `yaml:"draw_cost" json:"draw_cost"`
	BattlefieldSize int  `yaml:"battlefield_size" json:"battlefield_size"`
	SideHealth      int  `yaml:"side_health" json:"side_health"`
	TurnIncome      int  `yaml:"turn_income" json:"turn_income"`
	LogCapacity     int  `yaml:"log_capacity" json:"log_capacity"`
	KeywordEffects  bool `yaml:"keyword_effects" json:"keyword_effects"`
	HealthDefeat    bool `yaml:"health_defeat" json:"health_defeat"` // exhausted health pool loses the game
}

// Default returns the rules used when no rules file is given.
func Default() Rules {
	return Rules{
		HandSize:        5,
		DrawCost:        1,
		BattlefieldSize: 5,
		SideHealth:      20,
		TurnIncome:      0,
		LogCapacity:     50,
		KeywordEffects:  false,
		HealthDefeat:    false,
	}
}

// Validate reports the first rule that cannot produce a playable game.
func (r Rules) Validate() error {
	switch {
	case r.HandSize <= 0:
		return fmt.Errorf("hand_size must be positive, got %d", r.HandSize)
	case r.BattlefieldSize <= 0:
		return fmt.Errorf("battlefield_size must be positive, got %d", r.BattlefieldSize)
	case r.DrawCost < 0:
		return fmt.Errorf("draw_cost must not be negative, got %d", r.DrawCost)
	case r.SideHealth < 0:
		return fmt.Errorf("side_health must not be negative, got %d", r.SideHealth)
	case r.TurnIncome < 0:
		return fmt.Errorf("turn_income must not be negative, got %d", r.TurnIncome)
	case r.LogCapacity < 0:
		return fmt.Errorf("log_capacity must not be negative, got %d", r.LogCapacity)
	}
	return nil
}

// Load reads a rules file. Fields absent from the file keep their defaults,
// and an empty path or a missing file yields Default().
func Load(path string) (Rules, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Rules{}, err
	}
	return Parse(data)
}

// Parse decodes rules YAML on top of the defaults.
func Parse(data []byte) (Rules, error) {
	rules := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("parse rules YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}
