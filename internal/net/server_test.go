package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/game"
)

func testServer() *Server {
	return &Server{
		Catalog:   game.NewCatalog(),
		Scenarios: game.BuiltinScenarios(),
		Rules:     config.Default(),
	}
}

func TestServeConn(t *testing.T) {
	srv := testServer()
	client, conn := net.Pipe()
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- srv.ServeConn(context.Background(), conn)
		conn.Close()
	}()

	dec := json.NewDecoder(client)
	enc := json.NewEncoder(client)

	var msg ServerMessage
	require.NoError(t, dec.Decode(&msg))
	require.NotNil(t, msg.State)
	assert.Equal(t, "Border Skirmish", msg.State.Scenario)

	require.NoError(t, enc.Encode(ClientMessage{Type: "command", Command: CmdDraw}))
	require.NoError(t, dec.Decode(&msg))
	assert.Len(t, msg.State.You.Hand, 1)
	assert.Equal(t, 2, msg.State.You.Gold)

	require.NoError(t, enc.Encode(ClientMessage{Type: "command", Command: CmdCancel}))
	require.NoError(t, dec.Decode(&msg))
	assert.NotEmpty(t, msg.Rejected)

	client.Close()
	assert.NoError(t, <-done)
}

func TestServerStartScenario(t *testing.T) {
	srv := testServer()
	srv.Scenario = 2

	sess, err := srv.NewSession()
	require.NoError(t, err)
	_, sc := sess.Scenario()
	assert.Equal(t, "Last Stand", sc.Name)

	srv.Scenario = 5
	_, err = srv.NewSession()
	assert.ErrorIs(t, err, game.ErrRejected)
}

func TestClientParse(t *testing.T) {
	c := NewClient(nil, strings.NewReader(""), &bytes.Buffer{})
	c.last = &StateView{
		You: PlayerView{
			Hand:        []CardView{{ID: "h1", Name: "Squire"}},
			Battlefield: []CardView{{ID: "b1", Name: "Footman"}, {ID: "b2", Name: "Archer"}},
		},
		Opponent: PlayerView{Battlefield: []CardView{{ID: "o1", Name: "Goblin Raider"}}},
	}

	tests := []struct {
		line string
		want ClientMessage
	}{
		{"draw", ClientMessage{Type: "command", Command: CmdDraw}},
		{"play 1", ClientMessage{Type: "command", Command: CmdPlay, CardID: "h1"}},
		{"attack 2", ClientMessage{Type: "command", Command: CmdSelectAttacker, CardID: "b2"}},
		{"target 1", ClientMessage{Type: "command", Command: CmdAttack, Target: "o1"}},
		{"target side", ClientMessage{Type: "command", Command: CmdAttack, Target: game.OpponentSide}},
		{"cancel", ClientMessage{Type: "command", Command: CmdCancel}},
		{"end", ClientMessage{Type: "command", Command: CmdEndTurn}},
		{"load 3", ClientMessage{Type: "command", Command: CmdLoadScenario, Scenario: 2}},
		{"reset", ClientMessage{Type: "command", Command: CmdReset}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, quit, err := c.parse(tt.line)
			require.NoError(t, err)
			assert.False(t, quit)
			assert.Equal(t, tt.want, got)
		})
	}

	_, quit, err := c.parse("quit")
	require.NoError(t, err)
	assert.True(t, quit)

	for _, bad := range []string{"play", "play 5", "attack x", "fly"} {
		_, _, err := c.parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestClientREPL(t *testing.T) {
	srv := testServer()
	client, conn := net.Pipe()

	go func() {
		_ = srv.ServeConn(context.Background(), conn)
		conn.Close()
	}()

	var out bytes.Buffer
	c := NewClient(client, strings.NewReader("draw\nplay 1\nquit\n"), &out)
	require.NoError(t, c.RunREPL(context.Background()))
	client.Close()

	text := out.String()
	assert.Contains(t, text, "Border Skirmish")
	assert.Contains(t, text, "Squire")
	require.NotNil(t, c.last)
	assert.Len(t, c.last.You.Battlefield, 3)
}
