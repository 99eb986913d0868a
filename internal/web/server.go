package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/peterkuimelis/quizcrawl/internal/battle"
	"github.com/peterkuimelis/quizcrawl/internal/content"
	"github.com/peterkuimelis/quizcrawl/internal/session"
	"github.com/peterkuimelis/quizcrawl/internal/view"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CardType    string `json:"cardType"`
	Cost        int    `json:"cost"`
	Instant     bool   `json:"instant,omitempty"`
	Exhaust     bool   `json:"exhaust,omitempty"`
}

// EncounterInfo is the JSON representation of an encounter for the
// /api/encounters endpoint.
type EncounterInfo struct {
	Number     int      `json:"number"`
	Name       string   `json:"name"`
	Difficulty int      `json:"difficulty"`
	Enemies    []string `json:"enemies"`
	Cards      []string `json:"cards"`
}

// Server is the quizcrawl web UI server. Every socket runs its own session
// against the shared engine, so the engine's logger must be safe for
// concurrent use.
type Server struct {
	engine     *battle.Engine
	encounters *content.EncounterFile
	mux        *http.ServeMux

	// Delay paces enemy steps on the socket.
	Delay time.Duration
}

// NewServer creates a new web server. A nil encounter file falls back to the
// defaults.
func NewServer(engine *battle.Engine, encounters *content.EncounterFile) *Server {
	if encounters == nil {
		encounters = content.DefaultEncounters()
	}
	s := &Server{
		engine:     engine,
		encounters: encounters,
		mux:        http.NewServeMux(),
		Delay:      600 * time.Millisecond,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the routes, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/encounters", s.handleEncounters)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := []CardInfo{}
	for _, id := range s.engine.Tables.CardIDs() {
		def, _ := s.engine.Tables.Card(id)
		cards = append(cards, CardInfo{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			CardType:    def.Type.String(),
			Cost:        def.Cost,
			Instant:     def.Instant,
			Exhaust:     def.Exhaust,
		})
	}
	writeJSON(w, cards)
}

func (s *Server) handleEncounters(w http.ResponseWriter, r *http.Request) {
	encounters := []EncounterInfo{}
	for i, e := range s.encounters.Encounters {
		ei := EncounterInfo{
			Number:     i + 1,
			Name:       e.Name,
			Difficulty: e.Difficulty,
			Enemies:    e.Enemies,
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range e.Deck {
			if !seen[c.Card] {
				ei.Cards = append(ei.Cards, c.Card)
				seen[c.Card] = true
			}
		}
		encounters = append(encounters, ei)
	}
	writeJSON(w, encounters)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write JSON response: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	c := &conn{srv: s, ws: wsConn}
	if err := c.serve(r.Context()); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
			log.Printf("WebSocket session ended: %v", err)
		}
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "bye")
}

// conn is one browser socket. It owns at most one session at a time;
// a "start" message replaces it.
type conn struct {
	srv  *Server
	ws   *websocket.Conn
	sess *session.Session
}

func (c *conn) serve(ctx context.Context) error {
	for {
		var msg view.ClientMessage
		if err := wsjson.Read(ctx, c.ws, &msg); err != nil {
			return err
		}
		if err := c.handle(ctx, msg); err != nil {
			var we errWrite
			if errors.As(err, &we) {
				return we.err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if werr := c.send(ctx, view.ServerMessage{Type: "error", Error: err.Error()}); werr != nil {
				return werr
			}
		}
	}
}

// errWrite marks failures of the socket itself, as opposed to rejected
// commands that are reported back to the client.
type errWrite struct{ err error }

func (e errWrite) Error() string { return e.err.Error() }
func (e errWrite) Unwrap() error { return e.err }

func (c *conn) handle(ctx context.Context, msg view.ClientMessage) error {
	if msg.Type == "start" {
		return c.start(ctx, msg)
	}
	if c.sess == nil {
		return fmt.Errorf("no battle is running, send start first")
	}

	var err error
	switch msg.Type {
	case "play":
		err = c.sess.Play(ctx, msg.Card, msg.Target)
	case "answer":
		err = c.sess.Answer(ctx, msg.Answer)
	case "discard":
		err = c.sess.Discard(ctx, msg.Cards)
	case "use":
		err = c.sess.Use(ctx, msg.Card, msg.Target)
	case "end_turn":
		return c.endTurn(ctx)
	case "state":
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		return err
	}
	return c.pushState(ctx)
}

func (c *conn) start(ctx context.Context, msg view.ClientMessage) error {
	enc, err := c.srv.encounters.ByNumber(msg.Encounter)
	if err != nil {
		return err
	}
	seed := msg.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	sess, err := session.New(c.srv.engine, enc.Name, battle.SetupFromEncounter(enc, seed))
	if err != nil {
		return err
	}
	c.sess = sess
	log.Printf("session %s: %s (seed %d)", sess.ID, enc.Name, seed)
	return c.pushState(ctx)
}

// endTurn ends the player turn and streams one state message per enemy
// step so the client can animate the enemy phase.
func (c *conn) endTurn(ctx context.Context) error {
	if err := c.sess.EndTurn(ctx); err != nil {
		return err
	}
	if err := c.pushState(ctx); err != nil {
		return err
	}
	return paceEnemyPhase(ctx, c.sess, c.srv.Delay, func() error { return c.pushState(ctx) })
}

// paceEnemyPhase runs the enemy phase, calling push after every step. A
// failed push stops the phase before the next delay.
func paceEnemyPhase(ctx context.Context, sess *session.Session, delay time.Duration, push func() error) error {
	stepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var werr error
	err := sess.RunEnemyPhase(stepCtx, delay, func(*battle.Battle) {
		if werr == nil {
			werr = push()
		}
		if werr != nil {
			cancel()
		}
	})
	if werr != nil {
		return werr
	}
	return err
}

// pushState sends the drained events with the current state, or the final
// result once the battle is over.
func (c *conn) pushState(ctx context.Context) error {
	b := c.sess.Battle()
	batch := c.sess.Drain()
	msg := view.ServerMessage{
		Type:      "state",
		State:     view.BuildBattleView(b, c.srv.engine.Tables),
		Events:    view.BuildEventViews(batch.Events),
		Collapsed: batch.Collapsed,
	}
	if b.Over() {
		msg.Type = "game_over"
		msg.Result = b.Result.String()
	}
	return c.send(ctx, msg)
}

func (c *conn) send(ctx context.Context, msg view.ServerMessage) error {
	if err := wsjson.Write(ctx, c.ws, msg); err != nil {
		return errWrite{err}
	}
	return nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
