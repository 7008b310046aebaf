package validation

import (
	"fmt"

	"github.com/potemkeen/self-driving-car/pkg/config"
)

// ValidateConfig checks a project configuration before any generation runs.
func ValidateConfig(c *config.Config) *Report {
	r := NewReport()

	validateWorld(c, r)
	validateLights(c, r)
	validateRender(c, r)
	validateServer(c, r)
	validateStore(c, r)

	return r
}

func positive(r *Report, path string, v float64) {
	if v <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("%s must be greater than 0", path),
			Path:        path,
			ActualValue: v,
			Expected:    "> 0",
		})
	}
}

func validateWorld(c *config.Config, r *Report) {
	w := c.World
	positive(r, "world.road_width", w.RoadWidth)
	positive(r, "world.building_width", w.BuildingWidth)
	positive(r, "world.building_min_length", w.BuildingMinLength)
	positive(r, "world.tree_size", w.TreeSize)

	if w.RoadRoundness < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "world.road_roundness must be non-negative",
			Path:        "world.road_roundness",
			ActualValue: w.RoadRoundness,
			Expected:    ">= 0",
		})
	}
	if w.Spacing < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "world.spacing must be non-negative",
			Path:        "world.spacing",
			ActualValue: w.Spacing,
			Expected:    ">= 0",
		})
	}
	if w.RoadRoundness > 64 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("world.road_roundness %d makes envelope unions slow", w.RoadRoundness),
			Path:        "world.road_roundness",
			ActualValue: w.RoadRoundness,
			Suggestions: []string{"Values between 4 and 16 look round at typical zoom levels"},
		})
	}
	if w.BuildingMinLength > 0 && w.BuildingMinLength < w.Spacing {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "world.building_min_length is shorter than world.spacing; buildings will be sparse",
			Path:        "world.building_min_length",
			ActualValue: w.BuildingMinLength,
			Expected:    fmt.Sprintf(">= %.0f", w.Spacing),
		})
	}
}

func validateLights(c *config.Config, r *Report) {
	l := c.Lights
	if l.Green <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "lights.green must be greater than 0",
			Path:        "lights.green",
			ActualValue: l.Green,
			Expected:    "> 0",
		})
	}
	if l.Yellow < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "lights.yellow must be non-negative",
			Path:        "lights.yellow",
			ActualValue: l.Yellow,
			Expected:    ">= 0",
		})
	}
	if l.FramesPerTick <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "lights.frames_per_tick must be greater than 0",
			Path:        "lights.frames_per_tick",
			ActualValue: l.FramesPerTick,
			Expected:    "> 0",
		})
	}
}

func validateRender(c *config.Config, r *Report) {
	positive(r, "render.radius", c.Render.Radius)
	positive(r, "render.zoom", c.Render.Zoom)
	positive(r, "render.width", float64(c.Render.Width))
	positive(r, "render.height", float64(c.Render.Height))
}

func validateServer(c *config.Config, r *Report) {
	s := c.Server
	if s.Port <= 0 || s.Port > 65535 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("server.port %d is out of range", s.Port),
			Path:        "server.port",
			ActualValue: s.Port,
			Expected:    "1-65535",
		})
	}
	positive(r, "server.frame_millis", float64(s.FrameMillis))
}

func validateStore(c *config.Config, r *Report) {
	s := c.Store
	switch s.Backend {
	case config.BackendFile:
		if s.Path == "" {
			r.AddError(Result{
				Level:    LevelConfig,
				Message:  "store.path is required for the file backend",
				Path:     "store.path",
				Expected: "a file path",
			})
		}
	case config.BackendMongo:
		for path, v := range map[string]string{
			"store.mongo_uri":  s.MongoURI,
			"store.database":   s.Database,
			"store.collection": s.Collection,
			"store.name":       s.Name,
		} {
			if v == "" {
				r.AddError(Result{
					Level:    LevelConfig,
					Message:  fmt.Sprintf("%s is required for the mongo backend", path),
					Path:     path,
					Expected: "non-empty",
				})
			}
		}
	default:
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("store.backend %q is not supported", s.Backend),
			Path:        "store.backend",
			ActualValue: s.Backend,
			Expected:    `"file" or "mongo"`,
		})
	}
}
