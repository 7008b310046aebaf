// Package config loads road world project configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up inside a project directory.
const FileName = "world.yaml"

// Default returns the configuration used when a field is not set.
func Default() *Config {
	return &Config{
		ConfigVersion: "0.1.0",
		World: WorldDef{
			RoadWidth:         100,
			RoadRoundness:     10,
			BuildingWidth:     150,
			BuildingMinLength: 150,
			Spacing:           50,
			TreeSize:          160,
			Seed:              1,
		},
		Lights: LightsDef{
			Green:         2,
			Yellow:        1,
			FramesPerTick: 60,
		},
		Render: RenderDef{
			Radius: 1000,
			Width:  1000,
			Height: 1000,
			Zoom:   1,
		},
		Server: ServerDef{
			Port:        3000,
			FrameMillis: 1000 / 60,
		},
		Store: StoreDef{
			Backend:    BackendFile,
			Path:       "world.json",
			Database:   "roadworld",
			Collection: "worlds",
			Name:       "default",
		},
	}
}

// Load reads a configuration from a YAML file. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	return cfg, nil
}

// LoadProject loads the configuration from a project directory.
// It looks for world.yaml in the given directory.
func LoadProject(projectDir string) (*Config, error) {
	return Load(filepath.Join(projectDir, FileName))
}

// LoadProjectOrDefault is LoadProject, falling back to Default when the
// project has no configuration file.
func LoadProjectOrDefault(projectDir string) (*Config, error) {
	cfg, err := LoadProject(projectDir)
	if err != nil {
		if _, statErr := os.Stat(filepath.Join(projectDir, FileName)); os.IsNotExist(statErr) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// SnapshotPath resolves the file store path relative to the project.
func (c *Config) SnapshotPath(projectDir string) string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(projectDir, c.Store.Path)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
