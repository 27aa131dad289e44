package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/scatter"
)

// PlacementWriter is the subset of the queries a PlacementJournal needs.
type PlacementWriter interface {
	CreatePlacement(ctx context.Context, arg CreatePlacementParams) error
}

// PlacementJournal records every spawned object of one scatter run as a
// placements row, numbered in spawn order.
type PlacementJournal struct {
	mu     sync.Mutex
	writer PlacementWriter
	runID  string
	seq    int64
}

var _ scatter.SpawnSink = (*PlacementJournal)(nil)

// NewPlacementJournal creates a journal writing rows for runID.
func NewPlacementJournal(writer PlacementWriter, runID string) *PlacementJournal {
	return &PlacementJournal{writer: writer, runID: runID}
}

// Spawn stores the transform. A failed insert does not consume a sequence
// number, so the placer's accepted count always matches Count().
func (j *PlacementJournal) Spawn(ctx context.Context, objectType string, transform scatter.Transform) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	q := transform.Rotation
	err := j.writer.CreatePlacement(ctx, CreatePlacementParams{
		RunID:      j.runID,
		Seq:        j.seq,
		ObjectType: objectType,
		X:          transform.Location.X(),
		Y:          transform.Location.Y(),
		Z:          transform.Location.Z(),
		Qw:         q.W,
		Qx:         q.V.X(),
		Qy:         q.V.Y(),
		Qz:         q.V.Z(),
		Scale:      transform.Scale,
	})
	if err != nil {
		return fmt.Errorf("journal placement %d of run %s: %w", j.seq, j.runID, err)
	}
	j.seq++
	return nil
}

// Count is the number of rows written so far.
func (j *PlacementJournal) Count() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}

// RunID is the scatter run the journal writes to.
func (j *PlacementJournal) RunID() string {
	return j.runID
}

// Transform rebuilds the spawn transform stored in the row.
func (p Placement) Transform() scatter.Transform {
	return scatter.Transform{
		Location: mgl64.Vec3{p.X, p.Y, p.Z},
		Rotation: mgl64.Quat{W: p.Qw, V: mgl64.Vec3{p.Qx, p.Qy, p.Qz}},
		Scale:    p.Scale,
	}
}
