// Package server exposes the hand state machine to remote clients over
// WebSocket. A browser client holding the other half of the contract
// connects here, receives observations and legal masks, and answers with
// action ids; the server owns the authoritative state.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/kuhnlab/kuhnbot/internal/bot"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// Server accepts WebSocket connections and runs one game session per
// connection.
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu       sync.Mutex
	sessions int
	nextSeed int64
}

// New creates a server from config. Passing a quartz mock clock puts every
// decision timeout under test control.
func New(config *Config, clock quartz.Clock, logger *log.Logger) *Server {
	seed := config.Game.Seed
	if seed == 0 {
		seed = randutil.TimeSeed()
	}
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The parity client is served from arbitrary dev origins.
				return true
			},
		},
		logger:   logger.WithPrefix("server"),
		clock:    clock,
		nextSeed: seed,
	}
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{
		Addr:    s.config.ListenAddr(),
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting parity server", "addr", httpServer.Addr, "bot", s.config.Game.Bot)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	rng := randutil.New(s.takeSeed())
	botAgent, err := bot.New(s.config.Game.Bot, rng)
	if err != nil {
		s.logger.Error("failed to create bot", "error", err)
		return
	}

	s.trackSession(1)
	defer s.trackSession(-1)

	sess := newSession(conn, botAgent, rng, s.config.Game, s.clock, s.logger)
	if err := sess.run(r.Context()); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		s.logger.Info("session ended", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// takeSeed hands each session its own deterministic seed so concurrent
// sessions never share an RNG.
func (s *Server) takeSeed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := s.nextSeed
	s.nextSeed++
	return seed
}

func (s *Server) trackSession(delta int) {
	s.mu.Lock()
	s.sessions += delta
	count := s.sessions
	s.mu.Unlock()
	s.logger.Info("session count changed", "sessions", count)
}
