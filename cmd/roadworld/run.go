package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/internal/server"
	"github.com/potemkeen/self-driving-car/pkg/analytics"
	"github.com/potemkeen/self-driving-car/pkg/config"
	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/osm"
	"github.com/potemkeen/self-driving-car/pkg/race"
	"github.com/potemkeen/self-driving-car/pkg/render"
	"github.com/potemkeen/self-driving-car/pkg/store"
	"github.com/potemkeen/self-driving-car/pkg/validation"
	"github.com/potemkeen/self-driving-car/pkg/world"
)

var log = logrus.WithField("module", "cli")

// project is an opened project directory.
type project struct {
	dir   string
	cfg   *config.Config
	store store.Store
}

// openProject loads the configuration and opens the snapshot store. It
// fails when the configuration has errors.
func openProject(ctx context.Context, dir string) (*project, error) {
	cfg, err := config.LoadProjectOrDefault(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if report := validation.ValidateConfig(cfg); !report.Valid {
		printValidationReport(report)
		return nil, fmt.Errorf("configuration has validation errors")
	}
	st, err := store.Open(ctx, cfg.Store, dir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &project{dir: dir, cfg: cfg, store: st}, nil
}

func (p *project) load(ctx context.Context) (*world.World, error) {
	w, err := store.LoadWorld(ctx, p.store, p.cfg)
	if err != nil {
		return nil, fmt.Errorf("loading world: %w", err)
	}
	return w, nil
}

func (p *project) close(ctx context.Context) {
	if err := p.store.Close(ctx); err != nil {
		log.WithError(err).Warn("closing store")
	}
}

func runGenerate(ctx context.Context, dir string) error {
	p, err := openProject(ctx, dir)
	if err != nil {
		return err
	}
	defer p.close(ctx)

	w, err := p.load(ctx)
	if err != nil {
		return err
	}
	report := w.Generate()
	if err := p.store.Save(ctx, w.Snapshot()); err != nil {
		return fmt.Errorf("saving world: %w", err)
	}
	printValidationReport(report)
	fmt.Printf("Generated %d envelopes, %d borders, %d buildings, %d trees\n",
		len(w.Envelopes), len(w.RoadBorders), len(w.Buildings), len(w.Trees))
	return nil
}

func runValidate(ctx context.Context, dir string) error {
	cfg, err := config.LoadProjectOrDefault(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	report := validation.ValidateConfig(cfg)

	if report.Valid {
		st, err := store.Open(ctx, cfg.Store, dir)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close(ctx)
		w, err := store.LoadWorld(ctx, st, cfg)
		if err != nil {
			return fmt.Errorf("loading world: %w", err)
		}
		_, spatial := analytics.Resolve(w)
		report.Merge(spatial)
	}

	printValidationReport(report)
	if !report.Valid {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func runImportOSM(ctx context.Context, dir, file string) error {
	p, err := openProject(ctx, dir)
	if err != nil {
		return err
	}
	defer p.close(ctx)

	res, err := osm.ParseFile(file)
	if err != nil {
		return err
	}
	w := world.FromConfig(res.Graph, p.cfg)
	for _, b := range res.Buildings {
		w.AddBuilding(b)
	}
	w.Offset = res.Center.Scale(-1)
	report := w.Generate()
	if err := p.store.Save(ctx, w.Snapshot()); err != nil {
		return fmt.Errorf("saving world: %w", err)
	}
	printValidationReport(report)
	fmt.Printf("Imported %d points, %d segments, %d buildings (%.0f x %.0f)\n",
		w.Graph.NumPoints(), w.Graph.NumSegments(), len(res.Buildings), res.Width, res.Height)
	return nil
}

type routeOptions struct {
	sx, sy    float64
	fromFlags bool
	cars      int
}

// startPoint is the flag position, or the start marking when no flag is set.
func (o routeOptions) startPoint(w *world.World) geo.Point {
	if o.fromFlags {
		return geo.Pt(o.sx, o.sy)
	}
	pos, _ := race.StartPose(w.Markings)
	return pos
}

func runRoute(ctx context.Context, dir string, opts routeOptions) error {
	p, err := openProject(ctx, dir)
	if err != nil {
		return err
	}
	defer p.close(ctx)

	w, err := p.load(ctx)
	if err != nil {
		return err
	}
	corridor, err := w.CorridorToTarget(opts.startPoint(w), true)
	if err != nil {
		return err
	}
	printCorridor(corridor)

	if opts.cars > 0 {
		r := race.New(corridor, race.Grid(opts.cars, w.Markings)...)
		r.Step()
		printStandings(r)
	}
	return nil
}

type renderOptions struct {
	out       string
	x, y      float64
	radius    float64
	radiusSet bool
	showStart bool
	cars      int
}

func runRender(ctx context.Context, dir string, opts renderOptions) error {
	p, err := openProject(ctx, dir)
	if err != nil {
		return err
	}
	defer p.close(ctx)

	w, err := p.load(ctx)
	if err != nil {
		return err
	}
	if opts.cars > 0 {
		start, _ := race.StartPose(w.Markings)
		corridor, err := w.CorridorToTarget(start, true)
		if err != nil {
			return err
		}
		r := race.New(corridor, race.Grid(opts.cars, w.Markings, "blue", "orange", "purple")...)
		r.Step()
		r.Attach(w)
	}

	radius := p.cfg.Render.Radius
	if opts.radiusSet {
		radius = opts.radius
	}
	view := geo.Pt(opts.x, opts.y)

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	surface := render.NewSVGSurface(f, render.Viewport{
		Width:  p.cfg.Render.Width,
		Height: p.cfg.Render.Height,
		Center: view,
		Zoom:   p.cfg.Render.Zoom,
	})
	w.Draw(surface, view, opts.showStart, radius)
	surface.Close()

	log.Infof("wrote %s", opts.out)
	return f.Close()
}

func runStats(ctx context.Context, dir string) error {
	p, err := openProject(ctx, dir)
	if err != nil {
		return err
	}
	defer p.close(ctx)

	w, err := p.load(ctx)
	if err != nil {
		return err
	}
	stats, report := analytics.Resolve(w)
	printStats(stats)
	if len(report.Warnings) > 0 || len(report.Info) > 0 {
		fmt.Println()
		printValidationReport(report)
	}
	return nil
}

func runSchema(out string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(world.Snapshot))
	schema.Title = "Road World Snapshot"
	schema.Description = "A saved road graph with its generation parameters and derived geometry"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	return writeOutput(out, append(data, '\n'))
}

func runExport(ctx context.Context, dir, out string) error {
	p, err := openProject(ctx, dir)
	if err != nil {
		return err
	}
	defer p.close(ctx)

	w, err := p.load(ctx)
	if err != nil {
		return err
	}
	data, err := exportGeoJSON(w).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	return writeOutput(out, data)
}

func runServe(ctx context.Context, dir string, port int, portSet bool) error {
	p, err := openProject(ctx, dir)
	if err != nil {
		return err
	}
	defer p.close(context.Background())

	w, err := p.load(ctx)
	if err != nil {
		return err
	}
	if portSet {
		p.cfg.Server.Port = port
	}
	log.Infof("project: %s", p.dir)
	return server.New(w, p.cfg, p.store).Start(ctx)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return os.Rename(tmp, path)
}
