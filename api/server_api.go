// Package api serves the read-only spectator feed of the running game
// over websocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-terminal/internal/config"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
	mc "github.com/saeidalz13/battleship-terminal/models/connection"
)

const SpectatePath = "/battleship/spectate"

const (
	connHealthCheckInterval time.Duration = time.Second * 45
	shutdownTimeout         time.Duration = time.Second * 5
	maxReadSize             int64         = 512
)

var defaultPort = 8000

type Server struct {
	port     int
	stage    string
	hub      *Hub
	upgrader websocket.Upgrader
}

var (
	_ mb.ShotListener      = (*Server)(nil)
	_ mb.GameStartListener = (*Server)(nil)
)

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	server := Server{stage: config.StageDev}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == 0 {
		server.port = defaultPort
	}

	noGame, err := mc.NewMessage[mc.NoPayload](mc.CodeNoGame).Encode()
	if err != nil {
		panic(err)
	}
	server.hub = NewHub(noGame)

	server.upgrader = websocket.Upgrader{
		HandshakeTimeout: time.Second * 5,
		ReadBufferSize:   1024,
		WriteBufferSize:  2048,
		CheckOrigin:      func(r *http.Request) bool { return true },
	}
	if server.stage == config.StageProd {
		server.upgrader.CheckOrigin = sameHostOrigin
	}

	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid spectator port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if err := config.ValidateStage(stage); err != nil {
			return err
		}
		s.stage = stage
		return nil
	}
}

// sameHostOrigin accepts clients without an Origin header and browsers
// served from the same host.
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+SpectatePath, s.HandleSpectate)
	return mux
}

// Run serves spectators until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("spectator feed listening on port %d\n", s.port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) HandleSpectate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		log.Println(err)
		return
	}

	spectator := NewSpectator(conn)
	log.Printf("a new spectator connected\tid: %s\tremote addr: %s", spectator.id, conn.RemoteAddr().String())

	if !s.hub.Register(spectator) {
		log.Printf("spectator feed is shutting down, rejecting\tid: %s", spectator.id)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
		conn.Close()
		return
	}
	go spectator.writeLoop()
	go spectator.readLoop(s.hub)
}

// OnGameStart makes the new game the welcome of later spectators and
// announces it to the connected ones.
func (s *Server) OnGameStart(game *mb.Game) {
	if msg := s.refreshWelcome(game); msg != nil {
		s.hub.Broadcast(msg)
	}
}

func (s *Server) refreshWelcome(game *mb.Game) []byte {
	msg, err := mc.NewMessageWithPayload(mc.CodeSpectateWelcome, mc.NewRespSpectateWelcome(game)).Encode()
	if err != nil {
		log.Println(err)
		return nil
	}
	s.hub.SetWelcome(msg)
	return msg
}

// OnShot broadcasts the shot, followed by the game over frame when the
// shot ended the game.
func (s *Server) OnShot(game *mb.Game, record mb.ShotRecord) {
	s.refreshWelcome(game)

	msg, err := mc.NewMessageWithPayload(mc.CodeShot, mc.NewRespShot(game, record)).Encode()
	if err != nil {
		log.Println(err)
		return
	}
	s.hub.Broadcast(msg)

	if !game.Finished {
		return
	}

	msg, err = mc.NewMessageWithPayload(mc.CodeGameOver, mc.NewRespGameOver(game)).Encode()
	if err != nil {
		log.Println(err)
		return
	}
	s.hub.Broadcast(msg)
}
