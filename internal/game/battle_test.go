package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/log"
)

func TestDamageLaw(t *testing.T) {
	for atk := 0; atk <= 6; atk++ {
		for armor := 0; armor <= 6; armor++ {
			a := Instantiate(unit("A", 5, atk, 0))
			b := Instantiate(unit("B", 5, 0, armor))
			assert.Equal(t, max(0, atk-armor), Damage(a, b, nil, NoEffects{}), "atk=%d armor=%d", atk, armor)
		}
	}
}

func TestKeywordEffects(t *testing.T) {
	captain := Instantiate(Captain())
	second := Instantiate(Captain())
	squire := Instantiate(Squire())
	knight := Instantiate(Knight())
	pikeman := Instantiate(Pikeman())
	allies := []*CardInstance{captain, second, squire}

	hook := KeywordEffects{}
	assert.Equal(t, 4, EffectiveAttack(captain, allies, hook))
	assert.Equal(t, 3, EffectiveAttack(captain, allies, NoEffects{}))
	assert.Equal(t, 1, EffectiveAttack(squire, allies, hook))

	assert.Equal(t, 4, Damage(captain, squire, allies, hook))
	assert.Equal(t, 3, Damage(captain, squire, allies, NoEffects{}))
	// Knight: armor 2, Fortified +1.
	assert.Equal(t, 1, Damage(captain, knight, allies, hook))
	// Piercing ignores armor, Fortified included.
	assert.Equal(t, 2, Damage(pikeman, knight, nil, hook))
}

func TestKeywordEffectsInSession(t *testing.T) {
	sc := Scenario{
		Name:           "Pierce",
		PlayerRoster:   []string{"Pikeman"},
		OpponentRoster: []string{"Knight"},
	}
	rules := rulesWith(func(r *config.Rules) { r.KeywordEffects = true })
	s, logger := newTestSession(t, sc, nil, WithRules(rules))

	require.NoError(t, s.SelectAttacker(live(s, SidePlayer, "Pikeman").ID))
	res, err := s.Attack(live(s, SideOpponent, "Knight").ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Damage)
	assert.Equal(t, 8, live(s, SideOpponent, "Knight").Health)

	dmg := logger.EventsOfType(log.EventDamage)
	require.Len(t, dmg, 1)
	assert.Equal(t, "Knight takes 2 damage (HP 10 → 8)", dmg[0].Details)
}

func TestDefeatRemovesTargetAndPaysBounty(t *testing.T) {
	sc := Scenario{
		Name:           "Rout",
		PlayerRoster:   []string{"Knight"},
		OpponentRoster: []string{"Goblin Raider", "Orc Brute"},
	}
	s, logger := newTestSession(t, sc, nil)
	raider := live(s, SideOpponent, "Goblin Raider")

	require.NoError(t, s.SelectAttacker(live(s, SidePlayer, "Knight").ID))
	res, err := s.Attack(raider.ID)
	require.NoError(t, err)

	assert.True(t, res.Defeated)
	assert.Equal(t, 4, res.Damage)
	assert.Equal(t, 0, raider.Health)
	assert.Nil(t, live(s, SideOpponent, "Goblin Raider"))
	assert.Equal(t, raider.Bounty, s.Side(SidePlayer).Gold)
	assert.Len(t, logger.EventsOfType(log.EventDefeat), 1)
	assert.Equal(t, StatusPlaying, s.Status())
}

func TestEvaluate(t *testing.T) {
	full := func() *Side {
		return &Side{Battlefield: []*CardInstance{Instantiate(Squire())}, Health: 10}
	}
	empty := &Side{Health: 10}

	assert.Equal(t, StatusPlaying, Evaluate(full(), full()))
	assert.Equal(t, StatusPlayerWins, Evaluate(full(), empty))
	assert.Equal(t, StatusOpponentWins, Evaluate(empty, full()))
	// Opponent checked first.
	assert.Equal(t, StatusPlayerWins, Evaluate(empty, empty))

	// Health never decides Evaluate.
	drained := full()
	drained.Health = 0
	assert.Equal(t, StatusPlaying, Evaluate(drained, full()))
	assert.Equal(t, StatusOpponentWins, EvaluateHealth(drained, full()))
	assert.Equal(t, StatusPlayerWins, EvaluateHealth(full(), drained))
	assert.Equal(t, StatusPlaying, EvaluateHealth(full(), full()))
}
