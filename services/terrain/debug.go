package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/mesh"
	"github.com/VoidMesh/terrain/services/scatter"
)

var _ mesh.DebugSink = (*LoggingDebugSink)(nil)

// LoggingDebugSink reports normal samples through the structured logger
// instead of drawing them.
type LoggingDebugSink struct {
	logger LoggerInterface
}

// NewLoggingDebugSink creates a debug sink that writes summaries to logger.
func NewLoggingDebugSink(logger LoggerInterface) *LoggingDebugSink {
	return &LoggingDebugSink{logger: logger.With("component", "terrain-debug")}
}

// DrawNormals logs how many normals were sampled and how steep they are.
func (d *LoggingDebugSink) DrawNormals(points, normals []mgl64.Vec3, length float64) {
	if len(points) == 0 {
		d.logger.Debug("No normals to draw")
		return
	}

	maxSlope, sumSlope := 0.0, 0.0
	for _, n := range normals {
		slope := scatter.SlopeDegrees(n)
		maxSlope = math.Max(maxSlope, slope)
		sumSlope += slope
	}

	d.logger.Debug("Drawing surface normals",
		"samples", len(points),
		"length", length,
		"mean_slope_deg", sumSlope/float64(max(1, len(normals))),
		"max_slope_deg", maxSlope)
}
