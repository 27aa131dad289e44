package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/testutil"
	"github.com/VoidMesh/terrain/services/terrain"
)

func TestRebuildSurface(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := terrain.DefaultConfig()
	cfg.Grid.QuadsX = 8
	cfg.Grid.QuadsY = 6
	cfg.Debug.DrawNormals = true
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)

	t.Run("stored config rebuilds", func(t *testing.T) {
		row := db.Terrain{ID: "terrain-1", Name: "preview", ConfigJson: string(raw)}
		surface, err := rebuildSurface(testutil.CreateTestContext(t), row)
		require.NoError(t, err)

		assert.Equal(t, 8, surface.Config().Grid.QuadsX)
		assert.False(t, surface.Config().Debug.DrawNormals, "previews never draw normals")
		assert.Len(t, surface.Mesh().Vertices, 9*7)
		assert.NotEmpty(t, HeightBands(surface, 16, 8))
	})

	t.Run("corrupt config", func(t *testing.T) {
		_, err := rebuildSurface(testutil.CreateTestContext(t), db.Terrain{ID: "bad", ConfigJson: "{"})
		assert.Error(t, err)
	})
}

func TestShortIDAndTruncate(t *testing.T) {
	assert.Equal(t, "abcdefgh", shortID("abcdefgh-1234"))
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "trunc…", truncate("truncated name", 6))
}
