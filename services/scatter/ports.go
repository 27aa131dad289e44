package scatter

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/heightfield"
)

//go:generate go tool mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// Terrain is the surface the placer samples. Local coordinates are centered
// on the terrain; world coordinates include its origin.
type Terrain interface {
	LocalHalfExtents() (float64, float64)
	LocalToWorld(localX, localY float64) mgl64.Vec2
	HeightAtWorldXY(x, y float64, clampToBounds bool) float64
	NormalAtWorldXY(x, y float64, clampToBounds bool) mgl64.Vec3
	WaterLevel() float64
	// FlattenCore reports the flatten pad in local space, if flattening is on.
	FlattenCore() (heightfield.FlattenRegion, bool)
}

// SpawnSink receives every accepted candidate. A non-nil error means the
// object was not created and the candidate is dropped.
type SpawnSink interface {
	Spawn(ctx context.Context, objectType string, transform Transform) error
}

// SpawnSinkFunc adapts a function to SpawnSink.
type SpawnSinkFunc func(ctx context.Context, objectType string, transform Transform) error

// Spawn calls f.
func (f SpawnSinkFunc) Spawn(ctx context.Context, objectType string, transform Transform) error {
	return f(ctx, objectType, transform)
}
