package net

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/skirmish/internal/game"
)

// ErrUnknownCommand is returned for a command name Dispatch does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Dispatch applies one client command to the session. Rejections come back
// as errors matching game.ErrRejected; the session has already logged them.
func Dispatch(s *game.Session, msg ClientMessage) (*game.AttackResult, error) {
	switch msg.Command {
	case CmdState:
		return nil, nil
	case CmdDraw:
		return nil, s.Draw()
	case CmdPlay:
		return nil, s.Play(msg.CardID)
	case CmdSelectAttacker:
		return nil, s.SelectAttacker(msg.CardID)
	case CmdAttack:
		res, err := s.Attack(msg.Target)
		if err != nil {
			return nil, err
		}
		return &res, nil
	case CmdCancel:
		return nil, s.CancelTargetSelection()
	case CmdEndTurn:
		return nil, s.EndTurn()
	case CmdLoadScenario:
		return nil, s.LoadScenario(msg.Scenario)
	case CmdReset:
		s.ResetGame()
		return nil, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, msg.Command)
	}
}

// Respond dispatches msg and builds the reply, carrying every event logged
// after seq. It returns the reply and the new event cursor.
func Respond(s *game.Session, msg ClientMessage, seq int) (ServerMessage, int) {
	res, err := Dispatch(s, msg)

	reply := ServerMessage{Type: "state"}
	switch {
	case errors.Is(err, game.ErrRejected):
		reply.Rejected = err.Error()
	case err != nil:
		reply.Type = "error"
		reply.Error = err.Error()
	}
	if res != nil {
		reply.Attack = &AttackView{
			Attacker: res.Attacker,
			Target:   res.Target,
			Direct:   res.Direct,
			Damage:   res.Damage,
			Defeated: res.Defeated,
			Bounty:   res.Bounty,
		}
	}

	v := s.Snapshot()
	reply.State = BuildStateView(v)
	reply.Events, seq, reply.Dropped = EventsSince(v.Events, seq)
	if winner, over := v.Status.Winner(); over && reply.Type != "error" {
		reply.Type = "game_over"
		reply.Winner = winner.String()
	}
	return reply, seq
}
