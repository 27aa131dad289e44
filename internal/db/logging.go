package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/VoidMesh/terrain/internal/logging"
)

// LoggingQueries wraps the generated Queries struct to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

// Helper function to log query execution
func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)
	logger := logging.GetLogger()

	if err != nil {
		logger.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		logger.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// CreateTerrain with logging
func (lq *LoggingQueries) CreateTerrain(ctx context.Context, arg CreateTerrainParams) error {
	start := time.Now()
	logging.GetLogger().Debug("Executing CreateTerrain", "terrain_id", arg.ID, "seed", arg.Seed)

	err := lq.Queries.CreateTerrain(ctx, arg)
	lq.logQuery("CreateTerrain", start, err, arg.ID, arg.Name, arg.Seed)
	return err
}

// GetTerrain with logging
func (lq *LoggingQueries) GetTerrain(ctx context.Context, id string) (Terrain, error) {
	start := time.Now()
	result, err := lq.Queries.GetTerrain(ctx, id)
	lq.logQuery("GetTerrain", start, err, id)
	return result, err
}

// ListTerrains with logging
func (lq *LoggingQueries) ListTerrains(ctx context.Context) ([]Terrain, error) {
	start := time.Now()
	result, err := lq.Queries.ListTerrains(ctx)
	lq.logQuery("ListTerrains", start, err)

	if err == nil {
		logging.GetLogger().Debug("ListTerrains result", "terrain_count", len(result))
	}
	return result, err
}

// UpdateTerrainHeights with logging
func (lq *LoggingQueries) UpdateTerrainHeights(ctx context.Context, arg UpdateTerrainHeightsParams) error {
	start := time.Now()
	err := lq.Queries.UpdateTerrainHeights(ctx, arg)
	lq.logQuery("UpdateTerrainHeights", start, err, arg)
	return err
}

// DeleteTerrain with logging
func (lq *LoggingQueries) DeleteTerrain(ctx context.Context, id string) (int64, error) {
	start := time.Now()
	logging.GetLogger().Debug("Executing DeleteTerrain", "terrain_id", id)

	rows, err := lq.Queries.DeleteTerrain(ctx, id)
	lq.logQuery("DeleteTerrain", start, err, id)
	return rows, err
}

// DeleteScatterRun with logging
func (lq *LoggingQueries) DeleteScatterRun(ctx context.Context, id string) (int64, error) {
	start := time.Now()
	logging.GetLogger().Debug("Executing DeleteScatterRun", "run_id", id)

	rows, err := lq.Queries.DeleteScatterRun(ctx, id)
	lq.logQuery("DeleteScatterRun", start, err, id)
	return rows, err
}

// CreateScatterRun with logging
func (lq *LoggingQueries) CreateScatterRun(ctx context.Context, arg CreateScatterRunParams) error {
	start := time.Now()
	logging.GetLogger().Debug("Executing CreateScatterRun",
		"run_id", arg.ID,
		"terrain_id", arg.TerrainID,
		"seed", arg.Seed,
	)

	err := lq.Queries.CreateScatterRun(ctx, arg)
	lq.logQuery("CreateScatterRun", start, err, arg.ID, arg.TerrainID, arg.Seed)
	return err
}

// FinishScatterRun with logging
func (lq *LoggingQueries) FinishScatterRun(ctx context.Context, arg FinishScatterRunParams) error {
	start := time.Now()
	err := lq.Queries.FinishScatterRun(ctx, arg)
	lq.logQuery("FinishScatterRun", start, err, arg.ID, arg.Status)
	return err
}

// GetScatterRun with logging
func (lq *LoggingQueries) GetScatterRun(ctx context.Context, id string) (ScatterRun, error) {
	start := time.Now()
	result, err := lq.Queries.GetScatterRun(ctx, id)
	lq.logQuery("GetScatterRun", start, err, id)
	return result, err
}

// ListScatterRunsByTerrain with logging
func (lq *LoggingQueries) ListScatterRunsByTerrain(ctx context.Context, terrainID string) ([]ScatterRun, error) {
	start := time.Now()
	result, err := lq.Queries.ListScatterRunsByTerrain(ctx, terrainID)
	lq.logQuery("ListScatterRunsByTerrain", start, err, terrainID)
	return result, err
}

// CreatePlacement with logging
func (lq *LoggingQueries) CreatePlacement(ctx context.Context, arg CreatePlacementParams) error {
	start := time.Now()
	err := lq.Queries.CreatePlacement(ctx, arg)
	lq.logQuery("CreatePlacement", start, err, arg.RunID, arg.Seq, arg.ObjectType)
	return err
}

// ListPlacementsByRun with logging
func (lq *LoggingQueries) ListPlacementsByRun(ctx context.Context, runID string) ([]Placement, error) {
	start := time.Now()
	result, err := lq.Queries.ListPlacementsByRun(ctx, runID)
	lq.logQuery("ListPlacementsByRun", start, err, runID)

	if err == nil {
		logging.GetLogger().Debug("ListPlacementsByRun result", "placement_count", len(result), "run_id", runID)
	}
	return result, err
}

// CountPlacementsByRun with logging
func (lq *LoggingQueries) CountPlacementsByRun(ctx context.Context, runID string) (int64, error) {
	start := time.Now()
	count, err := lq.Queries.CountPlacementsByRun(ctx, runID)
	lq.logQuery("CountPlacementsByRun", start, err, runID)
	return count, err
}
