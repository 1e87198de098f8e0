package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gorilla/mux"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/game"
	skirmishlog "github.com/peterkuimelis/skirmish/internal/log"
	skirmishnet "github.com/peterkuimelis/skirmish/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string   `json:"name"`
	Faction     string   `json:"faction"`
	Description string   `json:"description,omitempty"`
	MaxHealth   int      `json:"maxHealth"`
	Armor       int      `json:"armor"`
	Attack      int      `json:"attack"`
	Cost        int      `json:"cost"`
	Bounty      int      `json:"bounty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Server is the skirmish web UI server.
type Server struct {
	catalog   *game.Catalog
	scenarios []game.Scenario
	rules     config.Rules
	router    *mux.Router
}

// NewServer creates a web server over a catalog and scenario list.
func NewServer(cat *game.Catalog, scenarios []game.Scenario, rules config.Rules) (*Server, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, errors.New("no scenarios")
	}
	for _, sc := range scenarios {
		if err := sc.Validate(cat); err != nil {
			return nil, err
		}
	}
	s := &Server{
		catalog:   cat,
		scenarios: scenarios,
		rules:     rules,
		router:    mux.NewRouter(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	}).Methods(http.MethodGet)

	s.router.PathPrefix("/static/").
		Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))).
		Methods(http.MethodGet)

	s.router.HandleFunc("/api/cards", s.handleCards).Methods(http.MethodGet)
	s.router.HandleFunc("/api/scenarios", s.handleScenarios).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, t := range s.catalog.Templates() {
		ci := CardInfo{
			Name:        t.Name,
			Faction:     t.Faction,
			Description: t.Description,
			MaxHealth:   t.MaxHealth,
			Armor:       t.Armor,
			Attack:      t.Attack,
			Cost:        t.Cost,
			Bounty:      t.Bounty,
		}
		for _, k := range t.Keywords {
			ci.Keywords = append(ci.Keywords, k.String())
		}
		cards = append(cards, ci)
	}
	writeJSON(w, cards)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	infos := make([]ScenarioInfo, 0, len(s.scenarios))
	for i, sc := range s.scenarios {
		infos = append(infos, scenarioInfo(i, sc))
	}
	writeJSON(w, infos)
}

// handleWebSocket runs one private session for the lifetime of the socket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	sess, err := game.NewSession(s.catalog, s.scenarios,
		game.WithRules(s.rules),
		game.WithLogger(skirmishlog.NewMemoryLogger(s.rules.LogCapacity)),
	)
	if err != nil {
		log.Printf("new session: %v", err)
		wsConn.Close(websocket.StatusInternalError, "could not start session")
		return
	}

	if err := s.serveSession(r.Context(), wsConn, sess); err != nil {
		log.Printf("WebSocket session: %v", err)
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "")
}

func (s *Server) serveSession(ctx context.Context, conn *websocket.Conn, sess *game.Session) error {
	reply, seq := skirmishnet.Respond(sess, skirmishnet.ClientMessage{Command: skirmishnet.CmdState}, 0)
	if err := wsjson.Write(ctx, conn, reply); err != nil {
		return err
	}
	for {
		var msg skirmishnet.ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return err
		}
		reply, seq = skirmishnet.Respond(sess, msg, seq)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			return err
		}
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
