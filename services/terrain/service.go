// Package terrain owns a noise field and height sampler, regenerates the
// terrain on demand and answers world-space queries.
package terrain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/services/heightfield"
	"github.com/VoidMesh/terrain/services/mesh"
	"github.com/VoidMesh/terrain/services/noise"
	"github.com/VoidMesh/terrain/services/scatter"
)

// ErrNotConfigured is returned when the service is used before Configure
// or queried before the first Regenerate.
var ErrNotConfigured = errors.New("terrain: not configured")

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) LoggerInterface
}

// DefaultLoggerWrapper wraps the internal logging package.
type DefaultLoggerWrapper struct {
	keyvals []interface{}
}

// NewDefaultLoggerWrapper creates a new default logger wrapper.
func NewDefaultLoggerWrapper() LoggerInterface {
	return &DefaultLoggerWrapper{}
}

func (l *DefaultLoggerWrapper) Debug(msg string, keysAndValues ...interface{}) {
	logging.WithFields(l.keyvals...).Debug(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Info(msg string, keysAndValues ...interface{}) {
	logging.WithFields(l.keyvals...).Info(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Warn(msg string, keysAndValues ...interface{}) {
	logging.WithFields(l.keyvals...).Warn(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Error(msg string, keysAndValues ...interface{}) {
	logging.WithFields(l.keyvals...).Error(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) With(keysAndValues ...interface{}) LoggerInterface {
	merged := make([]interface{}, 0, len(l.keyvals)+len(keysAndValues))
	merged = append(merged, l.keyvals...)
	merged = append(merged, keysAndValues...)
	return &DefaultLoggerWrapper{keyvals: merged}
}

// scatterLogger lets scatter placers share the service logger.
type scatterLogger struct {
	LoggerInterface
}

func (l scatterLogger) With(keysAndValues ...interface{}) scatter.LoggerInterface {
	return scatterLogger{l.LoggerInterface.With(keysAndValues...)}
}

// Service provides terrain generation and queries. Configure and Regenerate
// take the write lock; queries take the read lock.
type Service struct {
	mu     sync.RWMutex
	logger LoggerInterface
	render mesh.RenderSink
	debug  mesh.DebugSink

	cfg        Config
	configured bool
	noise      noise.Generator
	surface    *Surface
}

// NewService creates a new terrain service with dependency injection. Either
// sink may be nil.
func NewService(render mesh.RenderSink, debug mesh.DebugSink, logger LoggerInterface) *Service {
	componentLogger := logger.With("component", "terrain-service")
	componentLogger.Debug("Creating new terrain service")
	return &Service{
		logger: componentLogger,
		render: render,
		debug:  debug,
	}
}

// NewServiceWithDefaultLogger creates a service with the default logger and a
// logging debug sink (convenience constructor for production use).
func NewServiceWithDefaultLogger(render mesh.RenderSink) *Service {
	logger := NewDefaultLoggerWrapper()
	return NewService(render, NewLoggingDebugSink(logger), logger)
}

// Configure validates cfg and makes it current. The noise field is rebuilt
// when the backend changes and reseeded in place when only the seed does.
// The previous surface is dropped; call Regenerate to rebuild.
func (s *Service) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("Rejected terrain configuration", "error", err)
		return err
	}
	cfg = cfg.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.configured || s.noise.GetBackend() != cfg.NoiseBackend:
		gen, err := noise.NewGeneratorWithBackend(cfg.NoiseBackend, cfg.Seed)
		if err != nil {
			return fmt.Errorf("failed to create noise generator: %w", err)
		}
		s.noise = *gen
	case s.noise.GetSeed() != cfg.Seed:
		s.noise.Reseed(cfg.Seed)
	}

	s.cfg = cfg
	s.configured = true
	s.surface = nil

	s.logger.Debug("Terrain configured",
		"quads_x", cfg.Grid.QuadsX,
		"quads_y", cfg.Grid.QuadsY,
		"seed", cfg.Seed,
		"backend", cfg.NoiseBackend)
	return nil
}

// Config returns the current configuration.
func (s *Service) Config() (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.configured {
		return Config{}, ErrNotConfigured
	}
	return s.cfg, nil
}

// Regenerate rebuilds the grid, mesh and sections from the current
// configuration, pushes them to the render sink and samples normals for the
// debug sink.
func (s *Service) Regenerate(ctx context.Context) (*Surface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configured {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	surface := &Surface{cfg: s.cfg, noise: s.noise}
	sampler, err := heightfield.NewSampler(s.cfg.Grid, &surface.noise)
	if err != nil {
		return nil, fmt.Errorf("failed to create height sampler: %w", err)
	}
	surface.sampler = sampler

	var grid heightfield.Grid
	if s.cfg.Workers > 1 {
		grid, err = sampler.BuildGridParallel(ctx, s.cfg.Workers)
		if err != nil {
			return nil, fmt.Errorf("failed to build terrain grid: %w", err)
		}
	} else {
		grid = sampler.BuildGrid()
	}

	surface.mesh = mesh.Build(grid)
	surface.minHeight, surface.maxHeight = surface.mesh.HeightRange()
	surface.sections = buildSections(s.cfg, surface.mesh)
	surface.buildTime = time.Since(start)

	if s.render != nil {
		s.render.ClearSections()
		for _, section := range surface.sections {
			s.render.CreateSection(section)
		}
	}
	s.drawNormals(surface)

	s.surface = surface
	s.logger.Info("Terrain regenerated",
		"vertices", len(surface.mesh.Vertices),
		"triangles", surface.mesh.TriangleCount(),
		"sections", len(surface.sections),
		"min_height", surface.minHeight,
		"max_height", surface.maxHeight,
		"duration", surface.buildTime)
	return surface, nil
}

func (s *Service) drawNormals(surface *Surface) {
	if s.debug == nil || !s.cfg.Debug.DrawNormals {
		return
	}
	points, normals := mesh.DebugSamples(surface.mesh.Vertices, surface.mesh.Normals, s.cfg.Debug.MaxSamples)
	for i := range points {
		points[i] = points[i].Add(s.cfg.Origin)
	}
	s.debug.DrawNormals(points, normals, s.cfg.Debug.NormalLength)
}

// Surface returns the latest build.
func (s *Service) Surface() (*Surface, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.surface == nil {
		return nil, ErrNotConfigured
	}
	return s.surface, nil
}

// HeightAtWorldXY returns the world Z of the current surface.
func (s *Service) HeightAtWorldXY(x, y float64, clampToBounds bool) (float64, error) {
	surface, err := s.Surface()
	if err != nil {
		return 0, err
	}
	return surface.HeightAtWorldXY(x, y, clampToBounds), nil
}

// NormalAtWorldXY returns the unit normal of the current surface.
func (s *Service) NormalAtWorldXY(x, y float64, clampToBounds bool) (mgl64.Vec3, error) {
	surface, err := s.Surface()
	if err != nil {
		return heightfield.UpVector, err
	}
	return surface.NormalAtWorldXY(x, y, clampToBounds), nil
}

// Scatter runs requests against the current surface. Without a surface every
// batch reports no-terrain and scatter.ErrNoTerrain is returned.
func (s *Service) Scatter(ctx context.Context, opts scatter.Options, sink scatter.SpawnSink, requests []scatter.SpawnRequest) ([]scatter.BatchResult, error) {
	var terrain scatter.Terrain
	if surface, err := s.Surface(); err == nil {
		terrain = surface
	}

	placer := scatter.NewPlacer(terrain, sink, opts, scatterLogger{s.logger})
	return placer.Generate(ctx, requests)
}
