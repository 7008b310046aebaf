package validation

import (
	"testing"

	"github.com/potemkeen/self-driving-car/pkg/config"
)

func hasErrorAt(r *Report, path string) bool {
	for _, e := range r.Errors {
		if e.Path == path {
			return true
		}
	}
	return false
}

func TestValidateConfigDefaultIsValid(t *testing.T) {
	r := ValidateConfig(config.Default())
	if !r.Valid {
		t.Fatalf("default config should be valid: %v", r.Messages())
	}
	if len(r.Warnings) != 0 {
		t.Errorf("default config should not warn: %v", r.Messages())
	}
}

func TestValidateConfigWorld(t *testing.T) {
	c := config.Default()
	c.World.RoadWidth = 0
	c.World.RoadRoundness = -1
	c.World.Spacing = -5
	c.World.TreeSize = -1

	r := ValidateConfig(c)
	if r.Valid {
		t.Fatal("expected invalid report")
	}
	for _, path := range []string{"world.road_width", "world.road_roundness", "world.spacing", "world.tree_size"} {
		if !hasErrorAt(r, path) {
			t.Errorf("expected error at %s", path)
		}
	}
}

func TestValidateConfigWarnings(t *testing.T) {
	c := config.Default()
	c.World.RoadRoundness = 100
	c.World.BuildingMinLength = 10

	r := ValidateConfig(c)
	if !r.Valid {
		t.Fatalf("warnings should not invalidate: %v", r.Messages())
	}
	if len(r.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d: %v", len(r.Warnings), r.Messages())
	}
}

func TestValidateConfigLights(t *testing.T) {
	c := config.Default()
	c.Lights.Green = 0
	c.Lights.Yellow = -1
	c.Lights.FramesPerTick = 0

	r := ValidateConfig(c)
	if len(r.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(r.Errors), r.Messages())
	}

	c = config.Default()
	c.Lights.Yellow = 0
	if r := ValidateConfig(c); !r.Valid {
		t.Errorf("zero yellow is allowed: %v", r.Messages())
	}
}

func TestValidateConfigStore(t *testing.T) {
	c := config.Default()
	c.Store.Backend = "s3"
	if r := ValidateConfig(c); !hasErrorAt(r, "store.backend") {
		t.Error("expected unsupported backend error")
	}

	c = config.Default()
	c.Store.Backend = config.BackendMongo
	r := ValidateConfig(c)
	if !hasErrorAt(r, "store.mongo_uri") {
		t.Error("expected missing mongo_uri error")
	}
	if len(r.Errors) != 1 {
		t.Errorf("expected only the uri error, got %v", r.Messages())
	}
}

func TestValidateConfigServer(t *testing.T) {
	c := config.Default()
	c.Server.Port = 70000
	if r := ValidateConfig(c); !hasErrorAt(r, "server.port") {
		t.Error("expected port range error")
	}
}
