package scatter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMaxTriesPerInstance is the per-object attempt allowance.
	DefaultMaxTriesPerInstance = 25
	// DefaultCount is the instance count of a fresh request.
	DefaultCount = 100
	// DefaultSeed seeds the placement stream when none is given.
	DefaultSeed = 12345
	// MaxSlopeDeg is the widest slope window.
	MaxSlopeDeg = 90.0
)

// Region is an axis-aligned rectangle in terrain-local coordinates.
type Region struct {
	Min mgl64.Vec2 `json:"min" yaml:"min"`
	Max mgl64.Vec2 `json:"max" yaml:"max"`
}

// Contains reports whether p lies inside r, edges included.
func (r Region) Contains(p mgl64.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() &&
		p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

// ClampTo clamps r into [-halfW,halfW]x[-halfH,halfH] and swaps inverted
// bounds so Min <= Max on both axes.
func (r Region) ClampTo(halfW, halfH float64) Region {
	minX := mgl64.Clamp(r.Min.X(), -halfW, halfW)
	minY := mgl64.Clamp(r.Min.Y(), -halfH, halfH)
	maxX := mgl64.Clamp(r.Max.X(), -halfW, halfW)
	maxY := mgl64.Clamp(r.Max.Y(), -halfH, halfH)
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return Region{Min: mgl64.Vec2{minX, minY}, Max: mgl64.Vec2{maxX, maxY}}
}

// SpawnRequest describes one batch of objects to scatter.
type SpawnRequest struct {
	ObjectType string `json:"object_type" yaml:"object_type"`
	Count      int    `json:"count" yaml:"count"`

	// Inclusive world Z window
	MinZ float64 `json:"min_z" yaml:"min_z"`
	MaxZ float64 `json:"max_z" yaml:"max_z"`

	// Slope window in degrees, only checked when narrower than [0,90]
	MinSlopeDeg float64 `json:"min_slope_deg" yaml:"min_slope_deg"`
	MaxSlopeDeg float64 `json:"max_slope_deg" yaml:"max_slope_deg"`

	// MinSpacing <= 0 disables the spacing check
	MinSpacing float64 `json:"min_spacing" yaml:"min_spacing"`

	SurfaceOffset       float64    `json:"surface_offset" yaml:"surface_offset"`
	RandomYaw           bool       `json:"random_yaw" yaml:"random_yaw"`
	ScaleRange          mgl64.Vec2 `json:"scale_range" yaml:"scale_range"`
	MaxTriesPerInstance int        `json:"max_tries_per_instance" yaml:"max_tries_per_instance"`

	DisallowBelowWater    bool    `json:"disallow_below_water" yaml:"disallow_below_water"`
	DisallowOnFlattenCore bool    `json:"disallow_on_flatten_core" yaml:"disallow_on_flatten_core"`
	FlattenCoreExtra      float64 `json:"flatten_core_extra" yaml:"flatten_core_extra"`

	// Region overrides the placer's region for this request only
	Region *Region `json:"region,omitempty" yaml:"region,omitempty"`
}

// DefaultSpawnRequest returns an unconstrained request for objectType.
func DefaultSpawnRequest(objectType string) SpawnRequest {
	return SpawnRequest{
		ObjectType:          objectType,
		Count:               DefaultCount,
		MinZ:                -math.MaxFloat64,
		MaxZ:                math.MaxFloat64,
		MinSlopeDeg:         0,
		MaxSlopeDeg:         MaxSlopeDeg,
		RandomYaw:           true,
		ScaleRange:          mgl64.Vec2{1, 1},
		MaxTriesPerInstance: DefaultMaxTriesPerInstance,
	}
}

// Budget is the total number of attempts the request may spend. The product
// saturates at math.MaxInt instead of wrapping.
func (r SpawnRequest) Budget() int {
	tries, count := max(1, r.MaxTriesPerInstance), max(1, r.Count)
	if tries > math.MaxInt/count {
		return math.MaxInt
	}
	return tries * count
}

func (r SpawnRequest) hasSlopeWindow() bool {
	return r.MinSlopeDeg > 0 || r.MaxSlopeDeg < MaxSlopeDeg
}

// Transform places one spawned object.
type Transform struct {
	Location mgl64.Vec3 `json:"location"`
	Rotation mgl64.Quat `json:"rotation"`
	Scale    float64    `json:"scale"`
}

// Placement is an accepted candidate handed successfully to the sink.
type Placement struct {
	Position  mgl64.Vec2 `json:"position"`
	Normal    mgl64.Vec3 `json:"normal"`
	YawDeg    float64    `json:"yaw_deg"`
	Transform Transform  `json:"transform"`
}

// Status summarizes how a batch ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusSkipped   Status = "skipped"
	StatusNoTerrain Status = "no-terrain"
)

// Rejections counts discarded candidates by the check that discarded them.
type Rejections struct {
	Height      int `json:"height"`
	BelowWater  int `json:"below_water"`
	FlattenCore int `json:"flatten_core"`
	Slope       int `json:"slope"`
	Spacing     int `json:"spacing"`
}

// Total is the number of rejected candidates.
func (r Rejections) Total() int {
	return r.Height + r.BelowWater + r.FlattenCore + r.Slope + r.Spacing
}

// BatchResult reports the outcome of one SpawnRequest.
type BatchResult struct {
	ObjectType   string      `json:"object_type"`
	Requested    int         `json:"requested"`
	Accepted     int         `json:"accepted"`
	TriesUsed    int         `json:"tries_used"`
	SinkFailures int         `json:"sink_failures"`
	Status       Status      `json:"status"`
	Rejections   Rejections  `json:"rejections"`
	Placements   []Placement `json:"placements"`
}

// Options configures a Placer.
type Options struct {
	Seed int64 `json:"seed" yaml:"seed"`
	// Region restricts sampling for every request without its own region
	Region *Region `json:"region,omitempty" yaml:"region,omitempty"`
	// AlignToSurfaceNormal tilts objects onto the surface; otherwise only yaw is applied
	AlignToSurfaceNormal bool `json:"align_to_surface_normal" yaml:"align_to_surface_normal"`
}

// DefaultOptions returns the default seed with surface alignment on.
func DefaultOptions() Options {
	return Options{
		Seed:                 DefaultSeed,
		AlignToSurfaceNormal: true,
	}
}
