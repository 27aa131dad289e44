package mesh

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Section indices a terrain emits.
const (
	SectionSurface = 0
	SectionSlab    = 1
	SectionWater   = 2
)

// SectionName returns a readable label for a section index.
func SectionName(index int) string {
	switch index {
	case SectionSurface:
		return "surface"
	case SectionSlab:
		return "slab"
	case SectionWater:
		return "water"
	default:
		return "section"
	}
}

// Section is one mesh handed to a render sink.
type Section struct {
	Index          int    `json:"index"`
	Name           string `json:"name"`
	WantsCollision bool   `json:"wants_collision"`
	Mesh
}

// NewSection labels m with its index.
func NewSection(index int, m Mesh, wantsCollision bool) Section {
	return Section{
		Index:          index,
		Name:           SectionName(index),
		WantsCollision: wantsCollision,
		Mesh:           m,
	}
}

// RenderSink receives generated sections. The sink owns materials and
// collision cooking; nothing flows back.
type RenderSink interface {
	ClearSections()
	CreateSection(section Section)
}

// DebugSink receives sampled surface normals for visualization.
type DebugSink interface {
	DrawNormals(points, normals []mgl64.Vec3, length float64)
}

// Collector is an in-memory RenderSink keyed by section index.
type Collector struct {
	mu       sync.RWMutex
	sections map[int]Section
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{sections: make(map[int]Section)}
}

// ClearSections drops every collected section.
func (c *Collector) ClearSections() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sections = make(map[int]Section)
}

// CreateSection stores section, replacing any with the same index.
func (c *Collector) CreateSection(section Section) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sections == nil {
		c.sections = make(map[int]Section)
	}
	c.sections[section.Index] = section
}

// Section returns the section at index, if present.
func (c *Collector) Section(index int) (Section, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sections[index]
	return s, ok
}

// Sections returns every collected section ordered by index.
func (c *Collector) Sections() []Section {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Section, 0, len(c.sections))
	for _, s := range c.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
