package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	rules, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), rules)

	rules, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), rules)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("draw_cost: 3\nkeyword_effects: true\n"), 0o644))

	rules, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, rules.DrawCost)
	assert.True(t, rules.KeywordEffects)
	assert.Equal(t, Default().HandSize, rules.HandSize)
	assert.Equal(t, Default().LogCapacity, rules.LogCapacity)
}

func TestHealthDefeatIsOptIn(t *testing.T) {
	assert.False(t, Default().HealthDefeat)

	rules, err := Parse([]byte("health_defeat: true\n"))
	require.NoError(t, err)
	assert.True(t, rules.HealthDefeat)
	assert.Equal(t, Default().SideHealth, rules.SideHealth)
}

func TestSampleRulesFileMatchesDefaults(t *testing.T) {
	rules, err := Load(filepath.Join("..", "..", "rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), rules)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("hand_sise: 4\n"))
	require.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	rules, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), rules)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Rules){
		"zero hand":          func(r *Rules) { r.HandSize = 0 },
		"zero battlefield":   func(r *Rules) { r.BattlefieldSize = 0 },
		"negative draw cost": func(r *Rules) { r.DrawCost = -1 },
		"negative health":    func(r *Rules) { r.SideHealth = -5 },
		"negative income":    func(r *Rules) { r.TurnIncome = -1 },
		"negative log":       func(r *Rules) { r.LogCapacity = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := Default()
			mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
