// Package store persists world snapshots. The world package never touches
// storage itself; callers load and save through a Store.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/pkg/config"
	"github.com/potemkeen/self-driving-car/pkg/graph"
	"github.com/potemkeen/self-driving-car/pkg/world"
)

var log = logrus.WithField("module", "store")

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("store: snapshot not found")

// Store loads and saves world snapshots.
type Store interface {
	Load(ctx context.Context) (*world.Snapshot, error)
	Save(ctx context.Context, snap *world.Snapshot) error
	Close(ctx context.Context) error
}

// Open builds the store selected by cfg. Relative file paths resolve
// against projectDir.
func Open(ctx context.Context, cfg config.StoreDef, projectDir string) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendFile:
		path := cfg.Path
		if path == "" {
			path = config.Default().Store.Path
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectDir, path)
		}
		return NewFileStore(path), nil
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection, cfg.Name)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// LoadWorld loads the saved world, or an empty one when nothing was saved.
// A world whose derived data was not saved is regenerated.
func LoadWorld(ctx context.Context, s Store, cfg *config.Config) (*world.World, error) {
	lights := world.WithLights(world.LightTiming{
		Green:         cfg.Lights.Green,
		Yellow:        cfg.Lights.Yellow,
		FramesPerTick: cfg.Lights.FramesPerTick,
	})
	snap, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		log.Info("no saved world, starting empty")
		return world.FromConfig(graph.New(), cfg), nil
	}
	if err != nil {
		return nil, err
	}
	w := world.FromSnapshot(snap, lights, world.WithSeed(cfg.World.Seed))
	if rep := w.Refresh(); rep != nil {
		log.Infof("regenerated loaded world: %s", rep.Summary)
	}
	return w, nil
}
