package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/log"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.NewSession(game.NewCatalog(), game.BuiltinScenarios())
	require.NoError(t, err)
	return s
}

func TestRespondInitialState(t *testing.T) {
	s := newSession(t)
	reply, seq := Respond(s, ClientMessage{Type: "command", Command: CmdState}, 0)

	assert.Equal(t, "state", reply.Type)
	require.NotNil(t, reply.State)
	assert.Equal(t, "Border Skirmish", reply.State.Scenario)
	assert.Equal(t, "Player", reply.State.TurnSide)
	assert.Len(t, reply.State.You.Battlefield, 2)
	assert.Len(t, reply.State.Opponent.Battlefield, 2)
	assert.Empty(t, reply.Rejected)
	assert.NotEmpty(t, reply.Events)
	assert.Equal(t, reply.Events[len(reply.Events)-1].Seq, seq)

	// Nothing new is reported the second time.
	reply, seq2 := Respond(s, ClientMessage{Type: "command", Command: CmdState}, seq)
	assert.Empty(t, reply.Events)
	assert.Equal(t, seq, seq2)
}

func TestRespondHidesOpponentHand(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.LoadScenario(1)) // opponent moves first

	reply, _ := Respond(s, ClientMessage{Command: CmdState}, 0)
	assert.Nil(t, reply.State.Opponent.Hand)
	assert.Equal(t, 1, reply.State.You.HandCount)
	assert.Len(t, reply.State.You.Hand, 1)
	assert.Equal(t, 2, reply.State.Turn)
}

func TestRespondDrawAndPlay(t *testing.T) {
	s := newSession(t)

	reply, seq := Respond(s, ClientMessage{Command: CmdDraw}, 0)
	require.Empty(t, reply.Rejected)
	require.Len(t, reply.State.You.Hand, 1)
	card := reply.State.You.Hand[0]
	assert.Equal(t, "Squire", card.Name)

	reply, _ = Respond(s, ClientMessage{Command: CmdPlay, CardID: card.ID}, seq)
	require.Empty(t, reply.Rejected)
	assert.Len(t, reply.State.You.Battlefield, 3)
	assert.Empty(t, reply.State.You.Hand)

	var types []string
	for _, ev := range reply.Events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, "Play")
}

func TestRespondRejection(t *testing.T) {
	s := newSession(t)

	reply, _ := Respond(s, ClientMessage{Command: CmdPlay, CardID: "missing"}, 0)
	assert.Equal(t, "state", reply.Type)
	assert.Contains(t, reply.Rejected, "not in hand")
	assert.Empty(t, reply.Error)
}

func TestRespondUnknownCommand(t *testing.T) {
	s := newSession(t)

	reply, _ := Respond(s, ClientMessage{Command: "fly"}, 0)
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Error, "unknown command")
	assert.NotNil(t, reply.State)
}

func TestRespondAttack(t *testing.T) {
	s := newSession(t)
	v := s.Snapshot()
	attacker := v.Player.Battlefield[0]
	target := v.Opponent.Battlefield[0]

	reply, seq := Respond(s, ClientMessage{Command: CmdSelectAttacker, CardID: attacker.ID}, 0)
	require.Empty(t, reply.Rejected)
	assert.Equal(t, "Target Selection", reply.State.Phase)
	require.NotNil(t, reply.State.Attacker)
	assert.Contains(t, reply.State.LegalTargets, target.ID)

	reply, _ = Respond(s, ClientMessage{Command: CmdAttack, Target: target.ID}, seq)
	require.Empty(t, reply.Rejected)
	require.NotNil(t, reply.Attack)
	assert.Equal(t, attacker.ID, reply.Attack.Attacker)
	assert.Equal(t, target.ID, reply.Attack.Target)
	assert.Equal(t, "Main Phase", reply.State.Phase)
}

func TestDispatchLoadAndReset(t *testing.T) {
	s := newSession(t)

	_, err := Dispatch(s, ClientMessage{Command: CmdLoadScenario, Scenario: 2})
	require.NoError(t, err)
	idx, sc := s.Scenario()
	assert.Equal(t, 2, idx)
	assert.Equal(t, "Last Stand", sc.Name)

	_, err = Dispatch(s, ClientMessage{Command: CmdLoadScenario, Scenario: 9})
	assert.ErrorIs(t, err, game.ErrRejected)

	_, err = Dispatch(s, ClientMessage{Command: CmdReset})
	require.NoError(t, err)
	idx, _ = s.Scenario()
	assert.Equal(t, 2, idx)
}

func TestEventsSinceReportsGap(t *testing.T) {
	events := []log.GameEvent{{Seq: 5}, {Seq: 6}, {Seq: 7}}

	views, seq, dropped := EventsSince(events, 2)
	assert.Len(t, views, 3)
	assert.Equal(t, 7, seq)
	assert.Equal(t, 2, dropped)

	views, seq, dropped = EventsSince(events, 5)
	assert.Len(t, views, 2)
	assert.Equal(t, 7, seq)
	assert.Zero(t, dropped)

	views, seq, dropped = EventsSince(events, 7)
	assert.Empty(t, views)
	assert.Equal(t, 7, seq)
	assert.Zero(t, dropped)
}

func TestRespondReportsDroppedEvents(t *testing.T) {
	rules := config.Default()
	rules.LogCapacity = 3
	s, err := game.NewSession(game.NewCatalog(), game.BuiltinScenarios(),
		game.WithRules(rules),
		game.WithLogger(log.NewMemoryLogger(rules.LogCapacity)),
	)
	require.NoError(t, err)

	_, seq := Respond(s, ClientMessage{Command: CmdState}, 0)

	// A whole opponent turn logs far more than three events.
	reply, next := Respond(s, ClientMessage{Command: CmdEndTurn}, seq)
	assert.Len(t, reply.Events, 3)
	assert.Positive(t, reply.Dropped)
	assert.Equal(t, next-seq, reply.Dropped+len(reply.Events))
}
