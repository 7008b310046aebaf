package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadProject(t *testing.T) {
	dir := writeProject(t, `
config_version: "0.2.0"
world:
  road_width: 80
  road_roundness: 6
  seed: 42
lights:
  green: 3
store:
  backend: mongo
  mongo_uri: mongodb://localhost:27017
`)
	c, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if c.ConfigVersion != "0.2.0" {
		t.Errorf("config_version = %q, want %q", c.ConfigVersion, "0.2.0")
	}
	if c.World.RoadWidth != 80 {
		t.Errorf("road_width = %v, want 80", c.World.RoadWidth)
	}
	if c.World.RoadRoundness != 6 {
		t.Errorf("road_roundness = %d, want 6", c.World.RoadRoundness)
	}
	if c.World.Seed != 42 {
		t.Errorf("seed = %d, want 42", c.World.Seed)
	}
	if c.Lights.Green != 3 {
		t.Errorf("green = %d, want 3", c.Lights.Green)
	}
	if c.Store.Backend != BackendMongo {
		t.Errorf("backend = %q, want %q", c.Store.Backend, BackendMongo)
	}

	// Unset fields keep defaults.
	if c.World.BuildingWidth != 150 {
		t.Errorf("building_width = %v, want default 150", c.World.BuildingWidth)
	}
	if c.Lights.Yellow != 1 || c.Lights.FramesPerTick != 60 {
		t.Errorf("lights = %+v, want default yellow and frames per tick", c.Lights)
	}
	if c.Store.Collection != "worlds" {
		t.Errorf("collection = %q, want default", c.Store.Collection)
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestLoadProjectOrDefault(t *testing.T) {
	c, err := LoadProjectOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.World.TreeSize != 160 {
		t.Errorf("tree_size = %v, want 160", c.World.TreeSize)
	}

	bad := writeProject(t, "world: [not a map")
	if _, err := LoadProjectOrDefault(bad); err == nil {
		t.Error("expected parse error to be reported")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	c := Default()
	c.World.Spacing = 75
	if err := c.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *c {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, c)
	}
}

func TestSnapshotPath(t *testing.T) {
	c := Default()
	if got := c.SnapshotPath("/proj"); got != filepath.Join("/proj", "world.json") {
		t.Errorf("relative path = %q", got)
	}
	c.Store.Path = "/abs/w.json"
	if got := c.SnapshotPath("/proj"); got != "/abs/w.json" {
		t.Errorf("absolute path = %q", got)
	}
}
