package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/potemkeen/self-driving-car/pkg/analytics"
	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/render"
	"github.com/potemkeen/self-driving-car/pkg/routing"
	"github.com/potemkeen/self-driving-car/pkg/scene2d"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Road World</title></head>
<body style="margin:0;background:#2A5;font-family:system-ui">
<img src="/api/frame.svg" style="display:block;margin:auto;max-height:100vh">
</body></html>`)
}

func (s *Server) handleWorld(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	snap := s.world.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	report := s.world.Generate()
	snap := s.world.Snapshot()
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(r.Context(), snap); err != nil {
			log.WithError(err).Error("saving generated world")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	view, err := s.parseView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	scene := scene2d.Assemble2D(s.world, view)
	s.mu.Unlock()
	if report := scene2d.ValidateScene(scene); !report.Valid {
		log.WithField("errors", report.Messages()).Warn("frame failed validation")
	}
	writeJSON(w, http.StatusOK, scene)
}

func (s *Server) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	view, err := s.parseView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")

	s.mu.Lock()
	defer s.mu.Unlock()
	surface := render.NewSVGSurface(w, render.Viewport{
		Width:  s.cfg.Render.Width,
		Height: s.cfg.Render.Height,
		Center: view.Point,
		Zoom:   s.cfg.Render.Zoom,
	})
	s.world.Draw(surface, view.Point, view.ShowStart, view.Radius)
	surface.Close()
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	sx, errX := queryFloat(r, "sx", 0)
	sy, errY := queryFloat(r, "sy", 0)
	if err := errors.Join(errX, errY); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	corridor, err := s.world.CorridorToTarget(geo.Pt(sx, sy), true)
	s.mu.Unlock()
	if errors.Is(err, routing.ErrNoRoute) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"length":   corridor.Length(),
		"corridor": corridor,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats, report := analytics.Resolve(s.world)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":      stats,
		"validation": report,
	})
}

// parseView reads x, y, radius and start from the query string. Missing
// values fall back to the origin and the configured render radius.
func (s *Server) parseView(r *http.Request) (scene2d.View, error) {
	x, errX := queryFloat(r, "x", 0)
	y, errY := queryFloat(r, "y", 0)
	radius, errR := queryFloat(r, "radius", s.cfg.Render.Radius)
	if err := errors.Join(errX, errY, errR); err != nil {
		return scene2d.View{}, err
	}
	var showStart bool
	if v := r.URL.Query().Get("start"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return scene2d.View{}, fmt.Errorf("invalid start %q", v)
		}
		showStart = b
	}
	return scene2d.View{Point: geo.Pt(x, y), Radius: radius, ShowStart: showStart}, nil
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("writing response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
