package terrain

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/testutil"
	"github.com/VoidMesh/terrain/services/heightfield"
	"github.com/VoidMesh/terrain/services/mesh"
	"github.com/VoidMesh/terrain/services/noise"
	"github.com/VoidMesh/terrain/services/scatter"
)

// MockLogger implements LoggerInterface for testing
type MockLogger struct {
	mu    sync.Mutex
	calls []LogCall
}

type LogCall struct {
	Level  string
	Msg    string
	KeyVal []interface{}
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		calls: make([]LogCall, 0),
	}
}

func (m *MockLogger) record(level, msg string, keysAndValues []interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, LogCall{Level: level, Msg: msg, KeyVal: keysAndValues})
}

func (m *MockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.record("debug", msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.record("info", msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.record("warn", msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.record("error", msg, keysAndValues)
}

func (m *MockLogger) With(keysAndValues ...interface{}) LoggerInterface {
	// Return self for simplicity in tests
	return m
}

func (m *MockLogger) GetCallsOfLevel(level string) []LogCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var filtered []LogCall
	for _, call := range m.calls {
		if call.Level == level {
			filtered = append(filtered, call)
		}
	}
	return filtered
}

// recordingDebugSink captures the last DrawNormals call.
type recordingDebugSink struct {
	points  []mgl64.Vec3
	normals []mgl64.Vec3
	length  float64
	calls   int
}

func (d *recordingDebugSink) DrawNormals(points, normals []mgl64.Vec3, length float64) {
	d.calls++
	d.points, d.normals, d.length = points, normals, length
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Grid.QuadsX = 16
	cfg.Grid.QuadsY = 12
	cfg.Grid.Spacing = 100
	cfg.Grid.Flatten.Size = mgl64.Vec2{600, 400}
	cfg.Grid.Flatten.Falloff = 200
	return cfg
}

func newConfiguredService(t *testing.T, cfg Config) (*Service, *mesh.Collector, *recordingDebugSink) {
	t.Helper()
	collector := mesh.NewCollector()
	debug := &recordingDebugSink{}
	svc := NewService(collector, debug, NewMockLogger())
	require.NoError(t, svc.Configure(cfg))
	return svc, collector, debug
}

func TestNewService(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name           string
		logger         LoggerInterface
		expectLogCalls func(t *testing.T, mockLogger *MockLogger)
	}{
		{
			name:   "successful service creation with mock logger",
			logger: NewMockLogger(),
			expectLogCalls: func(t *testing.T, mockLogger *MockLogger) {
				debugCalls := mockLogger.GetCallsOfLevel("debug")
				assert.Len(t, debugCalls, 1)
				assert.Equal(t, "Creating new terrain service", debugCalls[0].Msg)
			},
		},
		{
			name:   "service creation with default logger wrapper",
			logger: NewDefaultLoggerWrapper(),
			expectLogCalls: func(t *testing.T, mockLogger *MockLogger) {
				// Default logger wrapper doesn't accumulate calls in our mock
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(nil, nil, tt.logger)

			require.NotNil(t, service)
			assert.NotNil(t, service.logger)

			if mockLogger, ok := tt.logger.(*MockLogger); ok {
				tt.expectLogCalls(t, mockLogger)
			}
		})
	}

	assert.NotNil(t, NewServiceWithDefaultLogger(mesh.NewCollector()))
}

func TestDefaultLoggerWrapper(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	wrapper := NewDefaultLoggerWrapper()
	child := wrapper.With("terrain_id", "abc")
	assert.NotSame(t, wrapper, child)

	assert.NotPanics(t, func() {
		child.Debug("debug message", "key", "value")
		child.Info("info message")
		child.Warn("warn message")
		child.Error("error message")
	})
}

func TestService_NotConfigured(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	svc := NewService(nil, nil, NewMockLogger())
	ctx := testutil.CreateTestContext(t)

	_, err := svc.Regenerate(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Config()
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.HeightAtWorldXY(0, 0, true)
	assert.ErrorIs(t, err, ErrNotConfigured)

	n, err := svc.NormalAtWorldXY(0, 0, true)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, heightfield.UpVector, n)

	// Configured but not yet regenerated
	require.NoError(t, svc.Configure(smallConfig()))
	_, err = svc.Surface()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestService_Configure(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "opensimplex backend", mutate: func(c *Config) { c.NoiseBackend = "OpenSimplex" }},
		{name: "zero quads", mutate: func(c *Config) { c.Grid.QuadsX = 0 }, expectErr: true},
		{name: "negative spacing", mutate: func(c *Config) { c.Grid.Spacing = -5 }, expectErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.NoiseBackend = "worley" }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewMockLogger()
			svc := NewService(nil, nil, logger)
			cfg := smallConfig()
			tt.mutate(&cfg)

			err := svc.Configure(cfg)
			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, heightfield.ErrInvalidConfig))
				assert.Len(t, logger.GetCallsOfLevel("warn"), 1)
				return
			}
			require.NoError(t, err)

			got, err := svc.Config()
			require.NoError(t, err)
			_, parseErr := noise.ParseBackend(string(got.NoiseBackend))
			assert.NoError(t, parseErr)
		})
	}
}

func TestService_RegenerateSections(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name           string
		mutate         func(c *Config)
		expectSections []int
	}{
		{
			name:           "surface slab and water",
			mutate:         func(c *Config) {},
			expectSections: []int{mesh.SectionSurface, mesh.SectionSlab, mesh.SectionWater},
		},
		{
			name:           "slab needs flatten",
			mutate:         func(c *Config) { c.Grid.Flatten.Enabled = false },
			expectSections: []int{mesh.SectionSurface, mesh.SectionWater},
		},
		{
			name:           "slab inset swallows the pad",
			mutate:         func(c *Config) { c.Slab.Inset = 300 },
			expectSections: []int{mesh.SectionSurface, mesh.SectionWater},
		},
		{
			name: "overlays hidden",
			mutate: func(c *Config) {
				c.Slab.Show = false
				c.Water.Show = false
			},
			expectSections: []int{mesh.SectionSurface},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			svc, collector, _ := newConfiguredService(t, cfg)

			surface, err := svc.Regenerate(testutil.CreateTestContext(t))
			require.NoError(t, err)

			var indices []int
			for _, s := range collector.Sections() {
				indices = append(indices, s.Index)
			}
			assert.Equal(t, tt.expectSections, indices)
			assert.Len(t, surface.Sections(), len(tt.expectSections))

			main, ok := collector.Section(mesh.SectionSurface)
			require.True(t, ok)
			assert.True(t, main.WantsCollision)
			assert.Equal(t, 2*cfg.Grid.QuadsX*cfg.Grid.QuadsY, main.TriangleCount())
		})
	}
}

func TestService_OverlayGeometry(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := smallConfig()
	cfg.Grid.Flatten.Center = mgl64.Vec2{100, -50}
	cfg.Grid.Flatten.Height = 30
	cfg.Water.Z = -12
	cfg.Water.UVTile = 8
	svc, collector, _ := newConfiguredService(t, cfg)

	_, err := svc.Regenerate(testutil.CreateTestContext(t))
	require.NoError(t, err)

	slab, ok := collector.Section(mesh.SectionSlab)
	require.True(t, ok)
	assert.False(t, slab.WantsCollision)
	// 600x400 pad with a 20 inset on each side
	assert.Equal(t, mgl64.Vec3{100 - 280, -50 - 180, 31}, slab.Vertices[0])
	assert.Equal(t, mgl64.Vec3{100 + 280, -50 + 180, 31}, slab.Vertices[2])

	water, ok := collector.Section(mesh.SectionWater)
	require.True(t, ok)
	assert.False(t, water.WantsCollision)
	assert.Equal(t, mgl64.Vec3{-1000, -800, -11.5}, water.Vertices[0])
	assert.Equal(t, mgl64.Vec2{8, 8}, water.UVs[2])
}

func TestService_RegenerateClearsPreviousSections(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	svc, collector, _ := newConfiguredService(t, smallConfig())
	ctx := testutil.CreateTestContext(t)

	_, err := svc.Regenerate(ctx)
	require.NoError(t, err)
	require.Len(t, collector.Sections(), 3)

	cfg := smallConfig()
	cfg.Water.Show = false
	require.NoError(t, svc.Configure(cfg))
	_, err = svc.Regenerate(ctx)
	require.NoError(t, err)
	assert.Len(t, collector.Sections(), 2)
}

func TestService_WorldQueries(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := smallConfig()
	cfg.Origin = mgl64.Vec3{5000, -2000, 250}
	svc, _, debug := newConfiguredService(t, cfg)

	surface, err := svc.Regenerate(testutil.CreateTestContext(t))
	require.NoError(t, err)

	for _, p := range [][2]float64{{0, 0}, {-350, 120}, {790, -590}} {
		local := surface.HeightAtLocalXY(p[0], p[1], true)
		world, err := svc.HeightAtWorldXY(p[0]+5000, p[1]-2000, true)
		require.NoError(t, err)
		assert.Equal(t, local+250, world)

		n, err := svc.NormalAtWorldXY(p[0]+5000, p[1]-2000, true)
		require.NoError(t, err)
		assert.Equal(t, surface.NormalAtLocalXY(p[0], p[1], true), n)
	}

	// Flatten pad sits at origin height in world space
	h, err := svc.HeightAtWorldXY(5000, -2000, false)
	require.NoError(t, err)
	assert.Equal(t, 250.0, h)

	assert.Equal(t, 250.0, surface.WaterLevel())
	assert.Equal(t, mgl64.Vec2{4200, -2600}, surface.LocalToWorld(-800, -600))

	// Debug samples are shifted into world space
	require.Equal(t, 1, debug.calls)
	assert.Equal(t, 300.0, debug.length)
	assert.LessOrEqual(t, len(debug.points), 512)
	assert.Equal(t, surface.Mesh().Vertices[0].Add(cfg.Origin), debug.points[0])
}

func TestService_DebugDisabled(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := smallConfig()
	cfg.Debug.DrawNormals = false
	svc, _, debug := newConfiguredService(t, cfg)

	_, err := svc.Regenerate(testutil.CreateTestContext(t))
	require.NoError(t, err)
	assert.Zero(t, debug.calls)
}

func TestService_SeedsAndWorkers(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)
	cfg := smallConfig()
	cfg.Grid.Flatten.Enabled = false

	svc, _, _ := newConfiguredService(t, cfg)
	serial, err := svc.Regenerate(ctx)
	require.NoError(t, err)

	parallelCfg := cfg
	parallelCfg.Workers = 4
	require.NoError(t, svc.Configure(parallelCfg))
	parallel, err := svc.Regenerate(ctx)
	require.NoError(t, err)
	assert.Equal(t, serial.Mesh().Vertices, parallel.Mesh().Vertices)

	reseeded := cfg
	reseeded.Seed = 42
	require.NoError(t, svc.Configure(reseeded))
	other, err := svc.Regenerate(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, serial.Mesh().Vertices, other.Mesh().Vertices)

	// Back to the first seed reproduces the first build exactly
	require.NoError(t, svc.Configure(cfg))
	again, err := svc.Regenerate(ctx)
	require.NoError(t, err)
	assert.Equal(t, serial.Mesh().Vertices, again.Mesh().Vertices)

	// Earlier surfaces stay queryable and unchanged after later builds
	assert.Equal(t, serial.Mesh().Vertices[7].Z(), serial.HeightAtLocalXY(serial.Mesh().Vertices[7].X(), serial.Mesh().Vertices[7].Y(), false))
}

func TestService_ConcurrentQueries(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	svc, _, _ := newConfiguredService(t, smallConfig())
	ctx := testutil.CreateTestContext(t)
	_, err := svc.Regenerate(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, _ = svc.HeightAtWorldXY(float64(i*50-400), float64(j-100), true)
			}
		}(i)
	}
	for i := 0; i < 3; i++ {
		_, err := svc.Regenerate(ctx)
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestService_Scatter(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	req := scatter.DefaultSpawnRequest("rock")
	req.Count = 50
	req.MinZ = -10000
	req.MaxZ = 10000

	var spawned int
	sink := scatter.SpawnSinkFunc(func(context.Context, string, scatter.Transform) error {
		spawned++
		return nil
	})

	t.Run("flat terrain accepts every try", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Grid.Amplitude = 0
		svc, _, _ := newConfiguredService(t, cfg)
		_, err := svc.Regenerate(testutil.CreateTestContext(t))
		require.NoError(t, err)

		results, err := svc.Scatter(testutil.CreateTestContext(t), scatter.DefaultOptions(), sink, []scatter.SpawnRequest{req})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 50, results[0].Accepted)
		assert.Equal(t, 50, results[0].TriesUsed)
		assert.Equal(t, 50, spawned)
		for _, pl := range results[0].Placements {
			assert.Equal(t, heightfield.UpVector, pl.Normal)
		}
	})

	t.Run("without a surface", func(t *testing.T) {
		svc := NewService(nil, nil, NewMockLogger())
		results, err := svc.Scatter(testutil.CreateTestContext(t), scatter.DefaultOptions(), sink, []scatter.SpawnRequest{req})
		assert.ErrorIs(t, err, scatter.ErrNoTerrain)
		require.Len(t, results, 1)
		assert.Equal(t, scatter.StatusNoTerrain, results[0].Status)
	})
}

func TestLoggingDebugSink(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	logger := NewMockLogger()
	sink := NewLoggingDebugSink(logger)

	sink.DrawNormals(nil, nil, 100)
	sink.DrawNormals(
		[]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}},
		[]mgl64.Vec3{heightfield.UpVector, mgl64.Vec3{1, 0, 1}.Normalize()},
		300,
	)

	calls := logger.GetCallsOfLevel("debug")
	require.Len(t, calls, 2)
	assert.Equal(t, "No normals to draw", calls[0].Msg)
	assert.Equal(t, "Drawing surface normals", calls[1].Msg)
	assert.Contains(t, calls[1].KeyVal, 2)
}
