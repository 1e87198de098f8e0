package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/log"
)

// Server hosts one single-player session per TCP connection.
type Server struct {
	Addr      string
	Catalog   *game.Catalog
	Scenarios []game.Scenario
	Rules     config.Rules
	Scenario  int // loaded for every new connection
}

// NewSession creates a session for one client.
func (s *Server) NewSession() (*game.Session, error) {
	sess, err := game.NewSession(s.Catalog, s.Scenarios,
		game.WithRules(s.Rules),
		game.WithLogger(log.NewMemoryLogger(s.Rules.LogCapacity)),
	)
	if err != nil {
		return nil, err
	}
	if s.Scenario != 0 {
		if err := sess.LoadScenario(s.Scenario); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// Run listens on Addr and serves clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	stdlog.Printf("skirmish server listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		stdlog.Printf("client connected from %s", conn.RemoteAddr())
		go func() {
			defer conn.Close()
			if err := s.ServeConn(ctx, conn); err != nil {
				stdlog.Printf("client %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

// ServeConn runs the request/response loop for one client: an initial state
// message, then one reply per command.
func (s *Server) ServeConn(ctx context.Context, conn io.ReadWriter) error {
	sess, err := s.NewSession()
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	reply, seq := Respond(sess, ClientMessage{Type: "command", Command: CmdState}, 0)
	if err := enc.Encode(reply); err != nil {
		return fmt.Errorf("send state: %w", err)
	}

	for ctx.Err() == nil {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		reply, seq = Respond(sess, msg, seq)
		if err := enc.Encode(reply); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
	return ctx.Err()
}
