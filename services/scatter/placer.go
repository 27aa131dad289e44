// Package scatter places objects on a terrain by rejection sampling against
// height, water, slope, flatten-pad and spacing constraints.
package scatter

import (
	"context"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/heightfield"
)

var (
	// ErrNoTerrain is returned by Generate when no terrain is bound.
	ErrNoTerrain = errors.New("scatter: no terrain bound")
	// ErrNoSink is returned by Generate when no spawn sink is bound.
	ErrNoSink = errors.New("scatter: no spawn sink bound")
)

// Placer runs spawn requests against a terrain. A Placer is not safe for
// concurrent Generate calls.
type Placer struct {
	terrain Terrain
	sink    SpawnSink
	opts    Options
	newRand func(seed int64) RandomGeneratorInterface
	logger  LoggerInterface
}

// NewPlacer creates a placer with dependency injection.
func NewPlacer(terrain Terrain, sink SpawnSink, opts Options, logger LoggerInterface) *Placer {
	componentLogger := logger.With("component", "scatter-placer")
	componentLogger.Debug("Creating new scatter placer", "seed", opts.Seed, "align", opts.AlignToSurfaceNormal)

	return &Placer{
		terrain: terrain,
		sink:    sink,
		opts:    opts,
		newRand: NewRandomGenerator,
		logger:  componentLogger,
	}
}

// Options returns the placer configuration.
func (p *Placer) Options() Options {
	return p.opts
}

// Generate runs every request in order from one random stream seeded with
// Options.Seed, so identical inputs yield identical placements. Without a
// terrain every batch reports StatusNoTerrain and ErrNoTerrain is returned.
func (p *Placer) Generate(ctx context.Context, requests []SpawnRequest) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(requests))

	if p.terrain == nil {
		p.logger.Warn("Scatter requested without a terrain", "requests", len(requests))
		for _, req := range requests {
			results = append(results, BatchResult{
				ObjectType: req.ObjectType,
				Requested:  req.Count,
				Status:     StatusNoTerrain,
			})
		}
		return results, ErrNoTerrain
	}
	if p.sink == nil {
		return nil, ErrNoSink
	}

	halfW, halfH := p.terrain.LocalHalfExtents()
	rng := p.newRand(p.opts.Seed)

	for i, req := range requests {
		if req.ObjectType == "" {
			p.logger.Debug("Skipping request without object type", "index", i)
			results = append(results, BatchResult{Requested: req.Count, Status: StatusSkipped})
			continue
		}

		area := p.samplingArea(req, halfW, halfH)
		result := p.runBatch(ctx, rng, req, area)

		p.logger.Info("Scatter batch finished",
			"object_type", result.ObjectType,
			"accepted", result.Accepted,
			"requested", result.Requested,
			"tries", result.TriesUsed,
			"status", result.Status)
		results = append(results, result)
	}

	return results, nil
}

func (p *Placer) samplingArea(req SpawnRequest, halfW, halfH float64) Region {
	switch {
	case req.Region != nil:
		return req.Region.ClampTo(halfW, halfH)
	case p.opts.Region != nil:
		return p.opts.Region.ClampTo(halfW, halfH)
	default:
		return Region{Min: mgl64.Vec2{-halfW, -halfH}, Max: mgl64.Vec2{halfW, halfH}}
	}
}

// maxPlacementPrealloc bounds the up-front reservation for a batch's
// placements; larger batches grow the slice as objects are accepted.
const maxPlacementPrealloc = 1024

func placementCapacity(count int) int {
	return min(max(0, count), maxPlacementPrealloc)
}

// candidate is a sampled point that passed the surface constraints.
type candidate struct {
	local  mgl64.Vec2
	world  mgl64.Vec2
	z      float64
	normal mgl64.Vec3
}

func (p *Placer) runBatch(ctx context.Context, rng RandomGeneratorInterface, req SpawnRequest, area Region) BatchResult {
	result := BatchResult{
		ObjectType: req.ObjectType,
		Requested:  req.Count,
		Placements: make([]Placement, 0, placementCapacity(req.Count)),
	}
	budget := req.Budget()

	for result.Accepted < req.Count && result.TriesUsed < budget {
		result.TriesUsed++

		rx := rng.FloatRange(area.Min.X(), area.Max.X())
		ry := rng.FloatRange(area.Min.Y(), area.Max.Y())

		c, ok := p.accept(req, rx, ry, &result.Rejections)
		if !ok {
			continue
		}
		if !respectsSpacing(req.MinSpacing, c.world, result.Placements) {
			result.Rejections.Spacing++
			continue
		}

		yaw := 0.0
		if req.RandomYaw {
			yaw = rng.FloatRange(0, 360)
		}
		scale := rng.FloatRange(req.ScaleRange.X(), req.ScaleRange.Y())

		transform := p.buildTransform(c, req.SurfaceOffset, yaw, scale)
		if err := p.sink.Spawn(ctx, req.ObjectType, transform); err != nil {
			result.SinkFailures++
			p.logger.Warn("Spawn sink rejected placement",
				"object_type", req.ObjectType,
				"x", c.world.X(),
				"y", c.world.Y(),
				"error", err)
			continue
		}

		result.Placements = append(result.Placements, Placement{
			Position:  c.world,
			Normal:    c.normal,
			YawDeg:    yaw,
			Transform: transform,
		})
		result.Accepted++
	}

	result.Status = StatusPartial
	if result.Accepted >= req.Count {
		result.Status = StatusCompleted
	}
	return result
}

// accept applies the surface constraints in order: height window, water,
// flatten core, then slope. The normal is always computed and turned to face +Z.
func (p *Placer) accept(req SpawnRequest, localX, localY float64, rej *Rejections) (candidate, bool) {
	world := p.terrain.LocalToWorld(localX, localY)
	c := candidate{
		local: mgl64.Vec2{localX, localY},
		world: world,
		z:     p.terrain.HeightAtWorldXY(world.X(), world.Y(), true),
	}

	if c.z < req.MinZ || c.z > req.MaxZ {
		rej.Height++
		return c, false
	}
	if req.DisallowBelowWater && c.z < p.terrain.WaterLevel() {
		rej.BelowWater++
		return c, false
	}
	if req.DisallowOnFlattenCore {
		if core, ok := p.terrain.FlattenCore(); ok && insideCore(core, req.FlattenCoreExtra, c.local) {
			rej.FlattenCore++
			return c, false
		}
	}

	c.normal = heightfield.SafeNormal(p.terrain.NormalAtWorldXY(world.X(), world.Y(), true))
	if c.normal.Z() < 0 {
		c.normal = c.normal.Mul(-1)
	}

	if req.hasSlopeWindow() {
		slope := SlopeDegrees(c.normal)
		if slope < req.MinSlopeDeg || slope > req.MaxSlopeDeg {
			rej.Slope++
			return c, false
		}
	}
	return c, true
}

func (p *Placer) buildTransform(c candidate, surfaceOffset, yawDeg, scale float64) Transform {
	location := mgl64.Vec3{c.world.X(), c.world.Y(), c.z}.Add(c.normal.Mul(surfaceOffset))
	yaw := mgl64.DegToRad(yawDeg)

	var rotation mgl64.Quat
	if p.opts.AlignToSurfaceNormal {
		align := mgl64.QuatBetweenVectors(heightfield.UpVector, c.normal)
		spin := mgl64.QuatRotate(yaw, c.normal)
		rotation = spin.Mul(align).Normalize()
	} else {
		rotation = mgl64.QuatRotate(yaw, heightfield.UpVector)
	}

	return Transform{Location: location, Rotation: rotation, Scale: scale}
}

// SlopeDegrees is the angle between n and the up axis.
func SlopeDegrees(n mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Acos(mgl64.Clamp(n.Z(), -1, 1)))
}

func insideCore(core heightfield.FlattenRegion, extra float64, local mgl64.Vec2) bool {
	hx, hy := core.HalfExtents()
	extra = math.Max(0, extra)
	return math.Abs(local.X()-core.Center.X()) <= hx+extra &&
		math.Abs(local.Y()-core.Center.Y()) <= hy+extra
}

func respectsSpacing(minSpacing float64, p mgl64.Vec2, placed []Placement) bool {
	if minSpacing <= 0 {
		return true
	}
	minDist2 := minSpacing * minSpacing
	for _, q := range placed {
		d := p.Sub(q.Position)
		if d.Dot(d) < minDist2 {
			return false
		}
	}
	return true
}
