// Package app wires the geoplot pipeline: reduce a trajectory, pin it to a
// timeline, build the GeoJSON document and write both render artifacts.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/geoplot/internal/adapters/output"
	"github.com/okian/geoplot/internal/adapters/render"
	"github.com/okian/geoplot/internal/config"
	"github.com/okian/geoplot/internal/domain/geojson"
	"github.com/okian/geoplot/internal/domain/model"
	"github.com/okian/geoplot/internal/domain/reducer"
	"github.com/okian/geoplot/internal/domain/timeline"
	"github.com/okian/geoplot/pkg/logger"
	"github.com/okian/geoplot/pkg/metrics"
)

// Output file extensions.
const (
	geoJSONExt = ".geojson"
	htmlExt    = ".html"
)

// Engine renders trajectories with one validated configuration.
type Engine struct {
	cfg     *config.Config
	mode    model.Mode
	step    time.Duration
	start   time.Time
	pinned  bool
	clock   func() time.Time
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock sets the time source for the first timestamp. It is ignored when
// the configuration pins start_time.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithMetrics sets the metrics manager renders are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// New validates cfg and constructs an Engine. Configuration problems are
// reported here, before any trajectory is read.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, pinned, err := cfg.Start()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	e := &Engine{
		cfg:     cfg,
		mode:    cfg.Mode(),
		step:    cfg.Step(),
		start:   start,
		pinned:  pinned,
		clock:   time.Now,
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Named("engine")
	}
	return e, nil
}

// Outputs returns the GeoJSON and HTML paths a render writes.
func (e *Engine) Outputs() (geoJSONPath, htmlPath string) {
	base := filepath.Join(e.cfg.OutputDir, e.cfg.Simulation.Name)
	return base + geoJSONExt, base + htmlExt
}

// Render transforms traj and writes both artifacts. Either both files are
// replaced or, on error, the one not yet written keeps its previous content.
func (e *Engine) Render(ctx context.Context, traj model.Trajectory) error {
	began := time.Now()
	log := e.logger.With(
		logger.String("render_id", uuid.NewString()),
		logger.String("simulation", e.cfg.Simulation.Name),
	)
	log.Info(ctx, "render started",
		logger.Int("episodes", len(traj)),
		logger.Int("steps", traj.Steps()),
	)

	err := e.render(ctx, log, traj)
	if err != nil {
		log.Error(ctx, "render failed", logger.Error(err))
		return err
	}

	elapsed := time.Since(began)
	e.metrics.RecordRender(elapsed)
	log.Info(ctx, "render finished", logger.Duration("elapsed", elapsed))
	return nil
}

func (e *Engine) render(ctx context.Context, log logger.Logger, traj model.Trajectory) error {
	var red reducer.Reduction
	err := e.stage(ctx, metrics.StageReduce, func() error {
		var err error
		red, err = reducer.Reduce(traj, e.cfg.Coordinates, e.cfg.Feature)
		return err
	})
	if err != nil {
		return fmt.Errorf("reduce trajectory: %w", err)
	}
	if red.Empty() {
		log.Warn(ctx, "trajectory has fewer than two episodes, emitting an empty document")
	}

	var stamps []time.Time
	err = e.stage(ctx, metrics.StageTimeline, func() error {
		start := e.start
		if !e.pinned {
			start = e.clock()
		}
		var err error
		stamps, err = timeline.Generate(start, e.step, e.cfg.Simulation.Slots())
		return err
	})
	if err != nil {
		return fmt.Errorf("generate timeline: %w", err)
	}

	var doc geojson.Document
	err = e.stage(ctx, metrics.StageBuild, func() error {
		var err error
		doc, err = geojson.Build(red.Positions, red.Features, stamps)
		return err
	})
	if err != nil {
		return fmt.Errorf("build geojson: %w", err)
	}

	e.metrics.RecordShape(traj.Steps(), len(red.Positions), len(red.Features), len(stamps))
	e.metrics.RecordFeatures(doc.Features())
	log.Debug(ctx, "document built",
		logger.Int("entities", len(red.Positions)),
		logger.Int("vectors", len(red.Features)),
		logger.Int("slots", len(stamps)),
		logger.Int("features", doc.Features()),
	)

	geoJSONPath, htmlPath := e.Outputs()

	err = e.stage(ctx, metrics.StageGeoJSON, func() error {
		n, err := output.WriteFile(ctx, geoJSONPath, func(w io.Writer) error {
			return render.EncodeGeoJSON(w, doc)
		})
		if err == nil {
			e.metrics.RecordOutput(metrics.OutputGeoJSON, n)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	log.Info(ctx, "geojson written", logger.String("path", geoJSONPath))

	first, last, _ := timeline.Bounds(stamps)
	page := render.NewPageData(e.cfg.Simulation.Name, e.cfg.CesiumToken, e.mode,
		timeline.Format(first), timeline.Format(last), doc)
	err = e.stage(ctx, metrics.StagePage, func() error {
		n, err := output.WriteFile(ctx, htmlPath, func(w io.Writer) error {
			return render.Page(w, page)
		})
		if err == nil {
			e.metrics.RecordOutput(metrics.OutputHTML, n)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	log.Info(ctx, "page written", logger.String("path", htmlPath))

	return nil
}

// stage runs fn after checking ctx and records its duration or failure.
func (e *Engine) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		e.metrics.RecordError(name)
		return err
	}
	began := time.Now()
	if err := fn(); err != nil {
		e.metrics.RecordError(name)
		return err
	}
	e.metrics.RecordStage(name, time.Since(began))
	return nil
}
