package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/testutil"
	"github.com/VoidMesh/terrain/services/heightfield"
	"github.com/VoidMesh/terrain/services/noise"
	"github.com/VoidMesh/terrain/services/scatter"
	"github.com/VoidMesh/terrain/services/terrain"
)

func TestLoad_Defaults(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	for _, key := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "TERRAIN_SEED", "SCATTER_SEED", "TERRAIN_PRESET_FILE", "NOISE_BACKEND",
		"LOG_FORMAT", "LOG_STRUCTURED", "TERRAIN_MAX_QUADS", "SCATTER_MAX_COUNT", "SCATTER_MAX_TRIES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "./terrain.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Nil(t, cfg.Terrain.Seed)
	assert.Nil(t, cfg.Terrain.ScatterSeed)
	assert.Empty(t, cfg.Terrain.PresetFile)
	assert.Equal(t, 1024, cfg.Terrain.MaxQuads)
	assert.Equal(t, 10000, cfg.Terrain.MaxScatterCount)
	assert.Equal(t, 1000, cfg.Terrain.MaxTriesPerInstance)
	assert.Equal(t, "json", cfg.Logging.OutputFormat())
}

func TestLoad_EnvOverrides(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "server and database",
			env:  map[string]string{"PORT": "9090", "DB_PATH": "/tmp/x.db", "READ_TIMEOUT": "3s"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Server.Port)
				assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
				assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "terrain seeds",
			env:  map[string]string{"TERRAIN_SEED": "-42", "SCATTER_SEED": "7", "TERRAIN_WORKERS": "8"},
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Terrain.Seed)
				assert.Equal(t, int64(-42), *cfg.Terrain.Seed)
				require.NotNil(t, cfg.Terrain.ScatterSeed)
				assert.Equal(t, int64(7), *cfg.Terrain.ScatterSeed)
				assert.Equal(t, 8, cfg.Terrain.Workers)
			},
		},
		{
			name: "scatter limits",
			env:  map[string]string{"SCATTER_MAX_COUNT": "250", "SCATTER_MAX_TRIES": "40"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 250, cfg.Terrain.MaxScatterCount)
				assert.Equal(t, 40, cfg.Terrain.MaxTriesPerInstance)
			},
		},
		{
			name: "unstructured logging forces text output",
			env:  map[string]string{"LOG_FORMAT": "logfmt", "LOG_STRUCTURED": "false"},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Logging.Structured)
				assert.Equal(t, "logfmt", cfg.Logging.Format)
				assert.Equal(t, "text", cfg.Logging.OutputFormat())
			},
		},
		{
			name: "structured logging keeps the format",
			env:  map[string]string{"LOG_FORMAT": "logfmt", "LOG_STRUCTURED": "true"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "logfmt", cfg.Logging.OutputFormat())
			},
		},
		{
			name: "malformed values fall back",
			env:  map[string]string{"TERRAIN_SEED": "abc", "DB_MAX_OPEN_CONNS": "many", "LOG_STRUCTURED": "maybe"},
			check: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.Terrain.Seed)
				assert.Equal(t, 1, cfg.Database.MaxOpenConns)
				assert.True(t, cfg.Logging.Structured)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, Load())
		})
	}
}

func TestParsePreset(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name    string
		yaml    string
		wantErr error
		check   func(t *testing.T, p Preset)
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, p Preset) {
				assert.Equal(t, DefaultPreset(), p)
			},
		},
		{
			name: "partial terrain section",
			yaml: "terrain:\n  seed: 99\n  grid:\n    quads_x: 32\n  water:\n    z: -50\n",
			check: func(t *testing.T, p Preset) {
				def := terrain.DefaultConfig()
				assert.Equal(t, int64(99), p.Terrain.Seed)
				assert.Equal(t, 32, p.Terrain.Grid.QuadsX)
				assert.Equal(t, def.Grid.QuadsY, p.Terrain.Grid.QuadsY)
				assert.Equal(t, -50.0, p.Terrain.Water.Z)
				assert.Equal(t, def.Water.Padding, p.Terrain.Water.Padding)
			},
		},
		{
			name: "requests decode over the default request",
			yaml: "scatter:\n  options:\n    seed: 5\n  requests:\n    - object_type: fern\n      count: 12\n      max_slope_deg: 30\n",
			check: func(t *testing.T, p Preset) {
				assert.Equal(t, int64(5), p.Scatter.Options.Seed)
				assert.True(t, p.Scatter.Options.AlignToSurfaceNormal)
				require.Len(t, p.Scatter.Requests, 1)

				req := p.Scatter.Requests[0]
				assert.Equal(t, "fern", req.ObjectType)
				assert.Equal(t, 12, req.Count)
				assert.Equal(t, 30.0, req.MaxSlopeDeg)
				assert.Equal(t, -math.MaxFloat64, req.MinZ)
				assert.Equal(t, math.MaxFloat64, req.MaxZ)
				assert.Equal(t, mgl64.Vec2{1, 1}, req.ScaleRange)
				assert.Equal(t, scatter.DefaultMaxTriesPerInstance, req.MaxTriesPerInstance)
			},
		},
		{
			name:    "invalid grid",
			yaml:    "terrain:\n  grid:\n    spacing: 0\n",
			wantErr: heightfield.ErrInvalidConfig,
		},
		{
			name:    "unknown backend",
			yaml:    "terrain:\n  noise_backend: value\n",
			wantErr: heightfield.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := ParsePreset([]byte(tt.yaml))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			tt.check(t, preset)
		})
	}

	_, err := ParsePreset([]byte("terrain: [unterminated"))
	assert.Error(t, err)
}

func TestLoadPreset_ExampleFile(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	preset, err := LoadPreset(filepath.Join("..", "..", "configs", "terrain.yaml"))
	require.NoError(t, err)

	assert.Equal(t, int64(1337), preset.Terrain.Seed)
	assert.Equal(t, noise.BackendGradient, preset.Terrain.NoiseBackend)
	assert.Equal(t, 4, preset.Terrain.Workers)
	assert.False(t, preset.Terrain.Debug.DrawNormals)
	assert.Equal(t, mgl64.Vec2{5000, 5000}, preset.Terrain.Grid.Flatten.Size)

	require.Len(t, preset.Scatter.Requests, 2)
	assert.Equal(t, "pine", preset.Scatter.Requests[0].ObjectType)
	assert.Equal(t, mgl64.Vec2{0.8, 1.3}, preset.Scatter.Requests[0].ScaleRange)
	assert.Equal(t, "boulder", preset.Scatter.Requests[1].ObjectType)
	assert.Equal(t, scatter.MaxSlopeDeg, preset.Scatter.Requests[1].MaxSlopeDeg)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTerrainConfig_ResolvePreset(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terrain:\n  seed: 10\n  workers: 2\n"), 0o600))

	seed := int64(2024)
	scatterSeed := int64(-3)

	tests := []struct {
		name    string
		cfg     TerrainConfig
		wantErr bool
		check   func(t *testing.T, p Preset)
	}{
		{
			name: "no file uses defaults",
			cfg:  TerrainConfig{},
			check: func(t *testing.T, p Preset) {
				assert.Equal(t, DefaultPreset(), p)
			},
		},
		{
			name: "file only",
			cfg:  TerrainConfig{PresetFile: path},
			check: func(t *testing.T, p Preset) {
				assert.Equal(t, int64(10), p.Terrain.Seed)
				assert.Equal(t, 2, p.Terrain.Workers)
			},
		},
		{
			name: "environment wins over file",
			cfg: TerrainConfig{
				PresetFile:   path,
				Seed:         &seed,
				NoiseBackend: "opensimplex",
				QuadsX:       64,
				QuadsY:       48,
				Workers:      6,
				ScatterSeed:  &scatterSeed,
			},
			check: func(t *testing.T, p Preset) {
				assert.Equal(t, int64(2024), p.Terrain.Seed)
				assert.Equal(t, noise.BackendOpenSimplex, p.Terrain.NoiseBackend)
				assert.Equal(t, 64, p.Terrain.Grid.QuadsX)
				assert.Equal(t, 48, p.Terrain.Grid.QuadsY)
				assert.Equal(t, 6, p.Terrain.Workers)
				assert.Equal(t, int64(-3), p.Scatter.Options.Seed)
			},
		},
		{
			name:    "bad backend override",
			cfg:     TerrainConfig{NoiseBackend: "worley"},
			wantErr: true,
		},
		{
			name:    "missing file",
			cfg:     TerrainConfig{PresetFile: filepath.Join(t.TempDir(), "nope.yaml")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := tt.cfg.ResolvePreset()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, preset)
		})
	}
}
