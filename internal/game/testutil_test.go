package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/log"
)

// unit creates a plain test template with no cost, bounty or keywords.
func unit(name string, hp, atk, armor int) Template {
	return Template{Name: name, Faction: "Test", MaxHealth: hp, Attack: atk, Armor: armor}
}

// duelScenario is the UnitA versus UnitB setup used throughout the tests.
func duelScenario() (Scenario, []Template) {
	unitA := unit("UnitA", 10, 3, 0)
	unitB := unit("UnitB", 5, 2, 1)
	unitB.Bounty = 4
	sc := Scenario{
		Name:           "Duel",
		First:          SidePlayer,
		PlayerRoster:   []string{"UnitA"},
		OpponentRoster: []string{"UnitB"},
	}
	return sc, []Template{unitA, unitB}
}

// newTestSession builds a session over the built-in catalog plus extra templates.
func newTestSession(t *testing.T, sc Scenario, extra []Template, opts ...Option) (*Session, *log.MemoryLogger) {
	t.Helper()
	cat := NewCatalog()
	for _, tpl := range extra {
		require.NoError(t, cat.Add(tpl))
	}
	logger := log.NewMemoryLogger(0)
	opts = append([]Option{WithLogger(logger)}, opts...)
	s, err := NewSession(cat, []Scenario{sc}, opts...)
	require.NoError(t, err)
	return s, logger
}

func rulesWith(mutate func(*config.Rules)) config.Rules {
	r := config.Default()
	mutate(&r)
	return r
}

// byName returns the first card with the given name, or nil.
func byName(cards []*CardInstance, name string) *CardInstance {
	for _, c := range cards {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// live returns the session's own instance (not a view copy) by name.
func live(s *Session, id SideID, name string) *CardInstance {
	return byName(s.sides[id].Battlefield, name)
}
