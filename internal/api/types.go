package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/services/mesh"
	"github.com/VoidMesh/terrain/services/scatter"
	"github.com/VoidMesh/terrain/services/terrain"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Limits bound what a single request may ask the server to build or
// scatter. Zero disables a limit.
type Limits struct {
	MaxQuads            int
	MaxScatterCount     int
	MaxTriesPerInstance int
}

// CreateTerrainRequest is decoded over the preset terrain so a body only
// needs the fields it changes.
type CreateTerrainRequest struct {
	Name   string         `json:"name"`
	Config terrain.Config `json:"config"`

	maxQuads int
}

func (req *CreateTerrainRequest) Bind(r *http.Request) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.New("name is required")
	}
	grid := req.Config.Grid
	if req.maxQuads > 0 && (grid.QuadsX > req.maxQuads || grid.QuadsY > req.maxQuads) {
		return fmt.Errorf("grid of %dx%d quads exceeds the limit of %d per axis", grid.QuadsX, grid.QuadsY, req.maxQuads)
	}
	return req.Config.Validate()
}

// ScatterRequest runs spawn batches against a terrain. Without requests the
// preset batches are used.
type ScatterRequest struct {
	Options  scatter.Options   `json:"options"`
	Requests []json.RawMessage `json:"requests"`

	batches []scatter.SpawnRequest
	limits  Limits
}

func (req *ScatterRequest) Bind(r *http.Request) error {
	if len(req.Requests) == 0 {
		return nil
	}
	req.batches = make([]scatter.SpawnRequest, 0, len(req.Requests))
	for i, raw := range req.Requests {
		batch := scatter.DefaultSpawnRequest("")
		if err := json.Unmarshal(raw, &batch); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
		if batch.Count < 0 {
			return fmt.Errorf("request %d: count must not be negative", i)
		}
		if limit := req.limits.MaxScatterCount; limit > 0 && batch.Count > limit {
			return fmt.Errorf("request %d: count %d exceeds the limit of %d", i, batch.Count, limit)
		}
		if limit := req.limits.MaxTriesPerInstance; limit > 0 && batch.MaxTriesPerInstance > limit {
			return fmt.Errorf("request %d: max_tries_per_instance %d exceeds the limit of %d", i, batch.MaxTriesPerInstance, limit)
		}
		req.batches = append(req.batches, batch)
	}
	return nil
}

// SectionSummary describes one generated section without its geometry.
type SectionSummary struct {
	Index          int    `json:"index"`
	Name           string `json:"name"`
	WantsCollision bool   `json:"wants_collision"`
	Vertices       int    `json:"vertices"`
	Triangles      int    `json:"triangles"`
}

func newSectionSummaries(sections []mesh.Section) []SectionSummary {
	out := make([]SectionSummary, 0, len(sections))
	for _, s := range sections {
		out = append(out, SectionSummary{
			Index:          s.Index,
			Name:           s.Name,
			WantsCollision: s.WantsCollision,
			Vertices:       len(s.Vertices),
			Triangles:      s.TriangleCount(),
		})
	}
	return out
}

type TerrainResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Seed         int64            `json:"seed"`
	NoiseBackend string           `json:"noise_backend"`
	MinHeight    float64          `json:"min_height"`
	MaxHeight    float64          `json:"max_height"`
	CreatedAt    time.Time        `json:"created_at"`
	Config       *terrain.Config  `json:"config,omitempty"`
	Sections     []SectionSummary `json:"sections,omitempty"`
	BuildMillis  float64          `json:"build_ms,omitempty"`
}

func newTerrainResponse(row db.Terrain) TerrainResponse {
	return TerrainResponse{
		ID:           row.ID,
		Name:         row.Name,
		Seed:         row.Seed,
		NoiseBackend: row.NoiseBackend,
		MinHeight:    row.MinHeight,
		MaxHeight:    row.MaxHeight,
		CreatedAt:    row.CreatedAt,
	}
}

type HeightResponse struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
	Clamp  bool    `json:"clamp"`
}

type NormalResponse struct {
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Normal   mgl64.Vec3 `json:"normal"`
	SlopeDeg float64    `json:"slope_deg"`
}

type ScatterResponse struct {
	RunID     string                `json:"run_id"`
	TerrainID string                `json:"terrain_id"`
	Status    string                `json:"status"`
	Results   []scatter.BatchResult `json:"results"`
}

type PlacementResponse struct {
	Seq        int64             `json:"seq"`
	ObjectType string            `json:"object_type"`
	Transform  scatter.Transform `json:"transform"`
}

type ScatterRunResponse struct {
	ID            string                `json:"id"`
	TerrainID     string                `json:"terrain_id"`
	Seed          int64                 `json:"seed"`
	AlignToNormal bool                  `json:"align_to_normal"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	FinishedAt    *time.Time            `json:"finished_at,omitempty"`
	Results       []scatter.BatchResult `json:"results,omitempty"`
	Placements    []PlacementResponse   `json:"placements,omitempty"`
}

func newScatterRunResponse(run db.ScatterRun) (ScatterRunResponse, error) {
	resp := ScatterRunResponse{
		ID:            run.ID,
		TerrainID:     run.TerrainID,
		Seed:          run.Seed,
		AlignToNormal: run.AlignToNormal,
		Status:        run.Status,
		CreatedAt:     run.CreatedAt,
	}
	if run.FinishedAt.Valid {
		finished := run.FinishedAt.Time
		resp.FinishedAt = &finished
	}
	if run.ResultsJson.Valid {
		if err := json.Unmarshal([]byte(run.ResultsJson.String), &resp.Results); err != nil {
			return ScatterRunResponse{}, fmt.Errorf("failed to decode results of run %s: %w", run.ID, err)
		}
	}
	return resp, nil
}
