// Package server exposes a road world over HTTP and streams traffic light
// states to websocket clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/pkg/config"
	"github.com/potemkeen/self-driving-car/pkg/marking"
	"github.com/potemkeen/self-driving-car/pkg/store"
	"github.com/potemkeen/self-driving-car/pkg/world"
)

var log = logrus.WithField("module", "server")

// Server serves one world. Every handler and the draw loop take mu before
// touching the world.
type Server struct {
	cfg   *config.Config
	store store.Store
	hub   *Hub

	mu       sync.Mutex
	world    *world.World
	lastTick int
}

// New creates a server for w. A nil store disables saving after generation.
func New(w *world.World, cfg *config.Config, st store.Store) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{
		cfg:      cfg,
		store:    st,
		hub:      NewHub(),
		world:    w,
		lastTick: -1,
	}
}

// Handler returns the routes served by Start.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/world", s.handleWorld)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/frame", s.handleFrame)
	mux.HandleFunc("GET /api/frame.svg", s.handleFrameSVG)
	mux.HandleFunc("GET /api/route", s.handleRoute)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /ws/lights", s.handleLights)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start listens on the configured port and runs the draw loop until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	go s.Run(loopCtx)

	errc := make(chan error, 1)
	go func() {
		log.Infof("road world server starting on http://localhost%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// Run ticks the world at the configured frame cadence until ctx is done.
func (s *Server) Run(ctx context.Context) {
	frame := time.Duration(s.cfg.Server.FrameMillis) * time.Millisecond
	if frame <= 0 {
		frame = time.Second / 60
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step advances one frame and broadcasts when the light tick changes.
func (s *Server) step() {
	s.mu.Lock()
	s.world.Tick()
	tick := s.world.LightTick()
	if tick == s.lastTick {
		s.mu.Unlock()
		return
	}
	s.lastTick = tick
	msg := s.lightsMessageLocked()
	s.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("encoding light states")
		return
	}
	s.hub.Broadcast(data)
}

// LightsMessage is pushed to light stream clients.
type LightsMessage struct {
	Tick   int          `json:"tick"`
	Lights []LightState `json:"lights"`
}

// LightState is one signal in a LightsMessage.
type LightState struct {
	Center [2]float64         `json:"center"`
	State  marking.LightState `json:"state"`
}

func (s *Server) lightsMessageLocked() LightsMessage {
	s.world.UpdateLights()
	lights := marking.Filter(s.world.Markings, marking.Light)
	msg := LightsMessage{Tick: s.world.LightTick(), Lights: make([]LightState, 0, len(lights))}
	for _, l := range lights {
		msg.Lights = append(msg.Lights, LightState{
			Center: [2]float64{l.Center.X, l.Center.Y},
			State:  l.State,
		})
	}
	return msg
}
