package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/skirmish/internal/game"
)

// Client talks to a server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   *bufio.Reader
	out  io.Writer
	last *StateView
}

// Connect dials a server and runs the REPL on stdin/stdout.
func Connect(ctx context.Context, addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	c := NewClient(conn, os.Stdin, os.Stdout)
	return c.RunREPL(ctx)
}

// NewClient wires a REPL to an established connection.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// RunREPL renders each server message and sends the next command typed by
// the user. It returns when the user quits or input ends.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for ctx.Err() == nil {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		c.render(msg)

		var cmd ClientMessage
		for {
			fmt.Fprint(c.out, "> ")
			line, err := c.in.ReadString('\n')
			if strings.TrimSpace(line) == "" && err != nil {
				return nil
			}
			var quit bool
			cmd, quit, err = c.parse(line)
			if quit {
				return nil
			}
			if err == nil {
				break
			}
			fmt.Fprintf(c.out, "%v\n", err)
			c.printHelp()
		}
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("send command: %w", err)
		}
	}
	return ctx.Err()
}

// parse turns a REPL line into a command. Indexes are 1-based positions in
// the most recently shown hand or battlefield.
func (c *Client) parse(line string) (ClientMessage, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ClientMessage{}, false, fmt.Errorf("empty command")
	}
	msg := ClientMessage{Type: "command"}
	arg := func() (int, error) {
		if len(fields) < 2 {
			return 0, fmt.Errorf("%s needs a number", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", fields[1])
		}
		return n, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return msg, true, nil
	case "state", "s":
		msg.Command = CmdState
	case "draw", "d":
		msg.Command = CmdDraw
	case "play", "p":
		n, err := arg()
		if err != nil {
			return msg, false, err
		}
		id, err := c.pick(c.hand(), n)
		if err != nil {
			return msg, false, err
		}
		msg.Command, msg.CardID = CmdPlay, id
	case "attack", "a":
		n, err := arg()
		if err != nil {
			return msg, false, err
		}
		id, err := c.pick(c.battlefield(true), n)
		if err != nil {
			return msg, false, err
		}
		msg.Command, msg.CardID = CmdSelectAttacker, id
	case "target", "t":
		msg.Command = CmdAttack
		if len(fields) > 1 && strings.EqualFold(fields[1], "side") {
			msg.Target = game.OpponentSide
			break
		}
		n, err := arg()
		if err != nil {
			return msg, false, err
		}
		id, err := c.pick(c.battlefield(false), n)
		if err != nil {
			return msg, false, err
		}
		msg.Target = id
	case "cancel", "c":
		msg.Command = CmdCancel
	case "end", "e":
		msg.Command = CmdEndTurn
	case "load", "l":
		n, err := arg()
		if err != nil {
			return msg, false, err
		}
		msg.Command, msg.Scenario = CmdLoadScenario, n-1
	case "reset", "r":
		msg.Command = CmdReset
	default:
		return msg, false, fmt.Errorf("unknown command %q", fields[0])
	}
	return msg, false, nil
}

func (c *Client) hand() []CardView {
	if c.last == nil {
		return nil
	}
	return c.last.You.Hand
}

func (c *Client) battlefield(own bool) []CardView {
	if c.last == nil {
		return nil
	}
	if own {
		return c.last.You.Battlefield
	}
	return c.last.Opponent.Battlefield
}

func (c *Client) pick(cards []CardView, n int) (string, error) {
	if n < 1 || n > len(cards) {
		return "", fmt.Errorf("choose 1-%d", len(cards))
	}
	return cards[n-1].ID, nil
}

func (c *Client) render(msg ServerMessage) {
	if msg.Dropped > 0 {
		fmt.Fprintf(c.out, "(%d earlier events not shown)\n", msg.Dropped)
	}
	for _, ev := range msg.Events {
		c.renderEvent(ev)
	}
	if msg.Error != "" {
		fmt.Fprintf(c.out, "error: %s\n", msg.Error)
	}
	if msg.State != nil {
		c.last = msg.State
		c.renderState(msg.State)
	}
	if msg.Type == "game_over" {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintln(c.out, "          GAME OVER")
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintf(c.out, "%s wins. Type 'reset' or 'load N' to play again.\n", msg.Winner)
	}
}

func (c *Client) renderEvent(ev EventView) {
	phase := ev.Phase
	for len(phase) < 16 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "── %s ── Turn %d (%s) ── %s\n", sv.Scenario, sv.Turn, sv.TurnSide, sv.Phase)
	opp := sv.Opponent
	fmt.Fprintf(c.out, "OPPONENT  Gold: %d  Health: %d  Hand: %d  Deck: %d\n",
		opp.Gold, opp.Health, opp.HandCount, opp.DeckCount)
	for i, cv := range opp.Battlefield {
		fmt.Fprintf(c.out, "  [%d] %s\n", i+1, cardLine(cv))
	}
	you := sv.You
	fmt.Fprintf(c.out, "YOU       Gold: %d  Health: %d  Deck: %d\n", you.Gold, you.Health, you.DeckCount)
	for i, cv := range you.Battlefield {
		fmt.Fprintf(c.out, "  [%d] %s\n", i+1, cardLine(cv))
	}
	if len(you.Hand) > 0 {
		fmt.Fprintln(c.out, "HAND")
		for i, cv := range you.Hand {
			fmt.Fprintf(c.out, "  (%d) %s, cost %d\n", i+1, cardLine(cv), cv.Cost)
		}
	}
	if sv.Attacker != nil {
		fmt.Fprintf(c.out, "Attacking with %s: 'target N', 'target side' or 'cancel'\n", sv.Attacker.Name)
	}
}

func cardLine(cv CardView) string {
	line := fmt.Sprintf("%s  ATK %d  ARM %d  HP %d/%d", cv.Name, cv.Attack, cv.Armor, cv.Health, cv.MaxHealth)
	if len(cv.Keywords) > 0 {
		line += "  [" + strings.Join(cv.Keywords, ", ") + "]"
	}
	if cv.Acted {
		line += "  (acted)"
	}
	return line
}

func (c *Client) printHelp() {
	fmt.Fprintln(c.out, "commands: draw | play N | attack N | target N|side | cancel | end | load N | reset | state | quit")
}
