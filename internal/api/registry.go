package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/services/mesh"
	"github.com/VoidMesh/terrain/services/terrain"
)

// ErrTerrainNotFound is returned for ids with no stored terrain.
var ErrTerrainNotFound = errors.New("terrain not found")

// TerrainHandle is a live terrain service and the sections it last emitted.
type TerrainHandle struct {
	ID       string
	Name     string
	Service  *terrain.Service
	Sections *mesh.Collector
}

// Registry keeps built terrains in memory. A terrain missing from memory is
// rebuilt from its stored configuration, once, however many requests ask.
type Registry struct {
	queries *db.LoggingQueries

	mu      sync.RWMutex
	handles map[string]*TerrainHandle
	// deletes advances on every Delete so a rebuild that raced one does not
	// cache a terrain that is gone
	deletes uint64
	loads   singleflight.Group
}

func NewRegistry(queries *db.LoggingQueries) *Registry {
	return &Registry{
		queries: queries,
		handles: make(map[string]*TerrainHandle),
	}
}

func (r *Registry) build(ctx context.Context, id, name string, cfg terrain.Config) (*TerrainHandle, *terrain.Surface, error) {
	logger := terrain.NewDefaultLoggerWrapper().With("terrain_id", id)
	sections := mesh.NewCollector()
	service := terrain.NewService(sections, terrain.NewLoggingDebugSink(logger), logger)

	if err := service.Configure(cfg); err != nil {
		return nil, nil, err
	}
	surface, err := service.Regenerate(ctx)
	if err != nil {
		return nil, nil, err
	}

	return &TerrainHandle{ID: id, Name: name, Service: service, Sections: sections}, surface, nil
}

// Create builds a new terrain, stores it and registers it.
func (r *Registry) Create(ctx context.Context, name string, cfg terrain.Config) (db.Terrain, *TerrainHandle, *terrain.Surface, error) {
	id := uuid.NewString()
	handle, surface, err := r.build(ctx, id, name, cfg)
	if err != nil {
		return db.Terrain{}, nil, nil, err
	}

	built := surface.Config()
	configJSON, err := json.Marshal(built)
	if err != nil {
		return db.Terrain{}, nil, nil, fmt.Errorf("failed to encode terrain config: %w", err)
	}

	minHeight, maxHeight := surface.HeightRange()
	err = r.queries.CreateTerrain(ctx, db.CreateTerrainParams{
		ID:           id,
		Name:         name,
		Seed:         built.Seed,
		NoiseBackend: string(built.NoiseBackend),
		ConfigJson:   string(configJSON),
		MinHeight:    minHeight,
		MaxHeight:    maxHeight,
	})
	if err != nil {
		return db.Terrain{}, nil, nil, fmt.Errorf("failed to store terrain: %w", err)
	}

	row, err := r.queries.GetTerrain(ctx, id)
	if err != nil {
		return db.Terrain{}, nil, nil, fmt.Errorf("failed to read back terrain: %w", err)
	}

	r.mu.Lock()
	r.handles[id] = handle
	r.mu.Unlock()

	logging.WithDuration("terrain_build", surface.BuildDuration()).Info("Terrain created", "terrain_id", id, "name", name, "seed", built.Seed)
	return row, handle, surface, nil
}

// Get returns the live terrain, rebuilding it from the database when needed.
func (r *Registry) Get(ctx context.Context, id string) (*TerrainHandle, error) {
	r.mu.RLock()
	handle, ok := r.handles[id]
	r.mu.RUnlock()
	if ok {
		return handle, nil
	}

	// The rebuild is shared, so one caller giving up must not fail the rest
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := r.loads.Do(id, func() (interface{}, error) {
		return r.load(loadCtx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*TerrainHandle), nil
}

func (r *Registry) load(ctx context.Context, id string) (*TerrainHandle, error) {
	r.mu.RLock()
	handle, ok := r.handles[id]
	generation := r.deletes
	r.mu.RUnlock()
	if ok {
		return handle, nil
	}

	row, err := r.queries.GetTerrain(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTerrainNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load terrain: %w", err)
	}

	var cfg terrain.Config
	if err := json.Unmarshal([]byte(row.ConfigJson), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode stored config of terrain %s: %w", id, err)
	}

	handle, surface, err := r.build(ctx, row.ID, row.Name, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild terrain %s: %w", id, err)
	}

	if !r.store(id, handle, generation) {
		// A delete ran meanwhile; only hand the terrain out if it survived
		if _, err := r.queries.GetTerrain(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrTerrainNotFound
			}
			return nil, fmt.Errorf("failed to load terrain: %w", err)
		}
		return handle, nil
	}

	logging.WithDuration("terrain_rebuild", surface.BuildDuration()).Info("Terrain rebuilt from storage", "terrain_id", id)
	return handle, nil
}

// store caches handle unless a Delete happened after generation was read.
func (r *Registry) store(id string, handle *TerrainHandle, generation uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deletes != generation {
		return false
	}
	r.handles[id] = handle
	return true
}

// Evict drops the in-memory terrain; the stored row is kept.
func (r *Registry) Evict(id string) {
	r.mu.Lock()
	delete(r.handles, id)
	r.mu.Unlock()
}

// Delete removes the terrain and its scatter history.
func (r *Registry) Delete(ctx context.Context, id string) error {
	rows, err := r.queries.DeleteTerrain(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete terrain: %w", err)
	}
	r.mu.Lock()
	delete(r.handles, id)
	r.deletes++
	r.mu.Unlock()
	if rows == 0 {
		return ErrTerrainNotFound
	}
	return nil
}

// Len is the number of terrains held in memory.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
