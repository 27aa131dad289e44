package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/services/heightfield"
	"github.com/VoidMesh/terrain/services/scatter"
)

const handlerTimeout = 30 * time.Second

type Handler struct {
	conn     *sql.DB
	queries  *db.LoggingQueries
	registry *Registry
	preset   config.Preset
	limits   Limits
}

func NewHandler(conn *sql.DB, preset config.Preset, limits Limits) *Handler {
	queries := db.NewLoggingQueries(conn)
	return &Handler{
		conn:     conn,
		queries:  queries,
		registry: NewRegistry(queries),
		preset:   preset,
		limits:   limits,
	}
}

// Registry exposes the live terrains.
func (h *Handler) Registry() *Registry {
	return h.registry
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.conn.PingContext(r.Context()); err != nil {
		logging.GetLogger().Error("Health check database ping failed", "error", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"service":   "voidmesh-terrain",
		"version":   "1.0.0",
		"terrains":  h.registry.Len(),
	}

	render.Status(r, code)
	render.JSON(w, r, response)
}

func (h *Handler) CreateTerrain(w http.ResponseWriter, r *http.Request) {
	req := &CreateTerrainRequest{Config: h.preset.Terrain, maxQuads: h.limits.MaxQuads}
	if err := render.Bind(r, req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid terrain request", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	row, handle, surface, err := h.registry.Create(ctx, req.Name, req.Config)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to create terrain", err)
		return
	}

	cfg := surface.Config()
	resp := newTerrainResponse(row)
	resp.Config = &cfg
	resp.Sections = newSectionSummaries(handle.Sections.Sections())
	resp.BuildMillis = float64(surface.BuildDuration().Microseconds()) / 1000

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

func (h *Handler) ListTerrains(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListTerrains(r.Context())
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to list terrains", err)
		return
	}

	terrains := make([]TerrainResponse, 0, len(rows))
	for _, row := range rows {
		terrains = append(terrains, newTerrainResponse(row))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"terrains": terrains,
	})
}

func (h *Handler) GetTerrain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	row, err := h.queries.GetTerrain(ctx, id)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to get terrain", err)
		return
	}
	handle, err := h.registry.Get(ctx, id)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to load terrain", err)
		return
	}
	surface, err := handle.Service.Surface()
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "terrain has no surface", err)
		return
	}

	cfg := surface.Config()
	resp := newTerrainResponse(row)
	resp.Config = &cfg
	resp.Sections = newSectionSummaries(handle.Sections.Sections())

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) DeleteTerrain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.registry.Delete(r.Context(), id); err != nil {
		h.renderError(w, r, statusFor(err), "failed to delete terrain", err)
		return
	}
	render.NoContent(w, r)
}

func (h *Handler) GetHeight(w http.ResponseWriter, r *http.Request) {
	handle, x, y, clamp, ok := h.pointQuery(w, r)
	if !ok {
		return
	}

	height, err := handle.Service.HeightAtWorldXY(x, y, clamp)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to sample height", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, HeightResponse{X: x, Y: y, Height: height, Clamp: clamp})
}

func (h *Handler) GetNormal(w http.ResponseWriter, r *http.Request) {
	handle, x, y, clamp, ok := h.pointQuery(w, r)
	if !ok {
		return
	}

	normal, err := handle.Service.NormalAtWorldXY(x, y, clamp)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to sample normal", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NormalResponse{X: x, Y: y, Normal: normal, SlopeDeg: scatter.SlopeDegrees(normal)})
}

func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid section index", err)
		return
	}

	handle, err := h.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to load terrain", err)
		return
	}

	section, ok := handle.Sections.Section(index)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, fmt.Sprintf("section %d not found", index), nil)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, section)
}

func (h *Handler) Scatter(w http.ResponseWriter, r *http.Request) {
	terrainID := chi.URLParam(r, "id")

	// An empty body, chunked or not, runs the preset requests
	req := &ScatterRequest{Options: h.preset.Scatter.Options, limits: h.limits}
	if r.ContentLength != 0 {
		if err := render.Bind(r, req); err != nil && !errors.Is(err, io.EOF) {
			h.renderError(w, r, http.StatusBadRequest, "invalid scatter request", err)
			return
		}
	}
	batches := req.batches
	if len(batches) == 0 {
		batches = h.preset.Scatter.Requests
	}
	if len(batches) == 0 {
		h.renderError(w, r, http.StatusBadRequest, "no scatter requests given and none configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	handle, err := h.registry.Get(ctx, terrainID)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to load terrain", err)
		return
	}

	resp, err := h.runScatter(ctx, handle, req.Options, batches)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to scatter objects", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// runScatter journals one scatter run in a single transaction: the run row,
// every spawned placement and the final results commit together.
func (h *Handler) runScatter(ctx context.Context, handle *TerrainHandle, opts scatter.Options, batches []scatter.SpawnRequest) (ScatterResponse, error) {
	runID := uuid.NewString()
	logger := logging.WithRunID(runID)

	requestsJSON, err := json.Marshal(batches)
	if err != nil {
		return ScatterResponse{}, fmt.Errorf("failed to encode requests: %w", err)
	}

	tx, err := h.conn.BeginTx(ctx, nil)
	if err != nil {
		return ScatterResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := h.queries.WithTx(tx)
	err = qtx.CreateScatterRun(ctx, db.CreateScatterRunParams{
		ID:            runID,
		TerrainID:     handle.ID,
		Seed:          opts.Seed,
		AlignToNormal: opts.AlignToSurfaceNormal,
		RequestsJson:  string(requestsJSON),
	})
	if err != nil {
		return ScatterResponse{}, fmt.Errorf("failed to create scatter run: %w", err)
	}

	journal := db.NewPlacementJournal(qtx, runID)
	results, err := handle.Service.Scatter(ctx, opts, journal, batches)
	if err != nil {
		return ScatterResponse{}, err
	}

	status := runStatus(results)
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return ScatterResponse{}, fmt.Errorf("failed to encode results: %w", err)
	}
	err = qtx.FinishScatterRun(ctx, db.FinishScatterRunParams{
		ID:          runID,
		Status:      status,
		ResultsJson: sql.NullString{String: string(resultsJSON), Valid: true},
	})
	if err != nil {
		return ScatterResponse{}, fmt.Errorf("failed to finish scatter run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ScatterResponse{}, fmt.Errorf("failed to commit scatter run: %w", err)
	}

	logger.Info("Scatter run stored",
		"terrain_id", handle.ID,
		"batches", len(results),
		"placements", journal.Count(),
		"status", status)

	return ScatterResponse{
		RunID:     runID,
		TerrainID: handle.ID,
		Status:    status,
		Results:   results,
	}, nil
}

func (h *Handler) ListScatterRuns(w http.ResponseWriter, r *http.Request) {
	terrainID := chi.URLParam(r, "id")

	if _, err := h.queries.GetTerrain(r.Context(), terrainID); err != nil {
		h.renderError(w, r, statusFor(err), "failed to get terrain", err)
		return
	}

	runs, err := h.queries.ListScatterRunsByTerrain(r.Context(), terrainID)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to list scatter runs", err)
		return
	}

	out := make([]ScatterRunResponse, 0, len(runs))
	for _, run := range runs {
		resp, err := newScatterRunResponse(run)
		if err != nil {
			h.renderError(w, r, http.StatusInternalServerError, "failed to decode scatter run", err)
			return
		}
		resp.Results = nil
		out = append(out, resp)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"terrain_id": terrainID,
		"runs":       out,
	})
}

func (h *Handler) GetScatterRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runId")

	run, err := h.queries.GetScatterRun(r.Context(), runID)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to get scatter run", err)
		return
	}

	resp, err := newScatterRunResponse(run)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to decode scatter run", err)
		return
	}

	placements, err := h.queries.ListPlacementsByRun(r.Context(), runID)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to list placements", err)
		return
	}
	resp.Placements = make([]PlacementResponse, 0, len(placements))
	for _, p := range placements {
		resp.Placements = append(resp.Placements, PlacementResponse{
			Seq:        p.Seq,
			ObjectType: p.ObjectType,
			Transform:  p.Transform(),
		})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// DeleteScatterRun clears one run's placements from the journal.
func (h *Handler) DeleteScatterRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runId")

	rows, err := h.queries.DeleteScatterRun(r.Context(), runID)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to delete scatter run", err)
		return
	}
	if rows == 0 {
		h.renderError(w, r, http.StatusNotFound, "scatter run not found", sql.ErrNoRows)
		return
	}

	logging.WithRunID(runID).Info("Scatter run deleted")
	render.NoContent(w, r)
}

// pointQuery parses the x, y and clamp query parameters and resolves the
// terrain. It renders the error itself and reports false on failure.
func (h *Handler) pointQuery(w http.ResponseWriter, r *http.Request) (*TerrainHandle, float64, float64, bool, bool) {
	query := r.URL.Query()

	x, err := strconv.ParseFloat(query.Get("x"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid x coordinate", err)
		return nil, 0, 0, false, false
	}
	y, err := strconv.ParseFloat(query.Get("y"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid y coordinate", err)
		return nil, 0, 0, false, false
	}

	clamp := true
	if raw := query.Get("clamp"); raw != "" {
		clamp, err = strconv.ParseBool(raw)
		if err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid clamp flag", err)
			return nil, 0, 0, false, false
		}
	}

	handle, err := h.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to load terrain", err)
		return nil, 0, 0, false, false
	}
	logging.WithCoords(x, y).Debug("Point query", "terrain_id", handle.ID, "clamp", clamp)
	return handle, x, y, clamp, true
}

func runStatus(results []scatter.BatchResult) string {
	for _, result := range results {
		if result.Status == scatter.StatusPartial {
			return string(scatter.StatusPartial)
		}
	}
	return string(scatter.StatusCompleted)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTerrainNotFound), errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, heightfield.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		logging.GetLogger().Error("API error", "error", err, "message", message, "status", status)
		if status < 500 {
			errorResponse.Message = err.Error()
		} else {
			// Don't expose internal errors to the client
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
