package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/cmd/debug/components"
	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/services/terrain"
)

const (
	previewCols = 64
	previewRows = 28
)

// runSummary pairs a scatter run with its stored placement count.
type runSummary struct {
	run        db.ScatterRun
	placements int64
}

// TerrainBrowserModel lists stored terrains and previews the selected one.
type TerrainBrowserModel struct {
	queries *db.LoggingQueries

	terrains []db.Terrain
	cursor   int
	width    int
	height   int

	// Preview of the selected terrain
	selectedID string
	surface    *terrain.Surface
	bands      [][]int
	runs       []runSummary
	buildTime  time.Duration

	isLoading bool
	errorMsg  string
}

// NewTerrainBrowserModel creates a new terrain browser
func NewTerrainBrowserModel(queries *db.LoggingQueries) TerrainBrowserModel {
	return TerrainBrowserModel{queries: queries}
}

// Init loads the terrain list
func (m TerrainBrowserModel) Init() tea.Cmd {
	return m.loadTerrainsCmd()
}

// Update handles browser messages
func (m TerrainBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.terrains)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(m.terrains) {
				m.isLoading = true
				return m, m.previewCmd(m.terrains[m.cursor])
			}
		case "r":
			return m, m.loadTerrainsCmd()
		}

	case terrainsLoadedMsg:
		m.terrains = msg.terrains
		m.errorMsg = ""
		if m.cursor >= len(m.terrains) {
			m.cursor = max(0, len(m.terrains)-1)
		}

	case previewLoadedMsg:
		m.isLoading = false
		m.errorMsg = ""
		m.selectedID = msg.terrainID
		m.surface = msg.surface
		m.bands = msg.bands
		m.runs = msg.runs
		m.buildTime = msg.buildTime

	case browserErrorMsg:
		m.isLoading = false
		m.errorMsg = string(msg)
	}

	return m, nil
}

// View renders the browser
func (m TerrainBrowserModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Terrain Browser") + "\n")

	list := components.BorderStyle.Render(m.renderList())
	panels := []string{list}
	if m.bands != nil {
		preview := components.FocusedBorderStyle.Render(RenderHeightmap(m.bands))
		panels = append(panels, preview, m.renderInfoPanel())
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n")
	}

	status := "↑/↓ select • Enter preview • r refresh • q back"
	if m.isLoading {
		status = "Building preview..."
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(status))

	return s.String()
}

func (m TerrainBrowserModel) renderList() string {
	if len(m.terrains) == 0 {
		return "No terrains stored yet.\nCreate one with POST /api/v1/terrains"
	}

	var rows []string
	rows = append(rows, components.SubtitleStyle.Render("Stored terrains"))
	for i, t := range m.terrains {
		line := fmt.Sprintf("%-18s seed %-8d", truncate(t.Name, 18), t.Seed)
		if t.ID == m.selectedID {
			line = "* " + line
		} else {
			line = "  " + line
		}
		if i == m.cursor {
			rows = append(rows, components.TableSelectedCellStyle.Render(line))
		} else {
			rows = append(rows, components.TableCellStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

func (m TerrainBrowserModel) renderInfoPanel() string {
	if m.surface == nil {
		return ""
	}

	cfg := m.surface.Config()
	lo, hi := m.surface.HeightRange()
	mesh := m.surface.Mesh()

	var info strings.Builder
	info.WriteString(components.SubtitleStyle.Render("Surface") + "\n")
	info.WriteString(fmt.Sprintf("Grid:      %dx%d @ %.0f\n", cfg.Grid.QuadsX, cfg.Grid.QuadsY, cfg.Grid.Spacing))
	info.WriteString(fmt.Sprintf("Backend:   %s\n", cfg.NoiseBackend))
	info.WriteString(fmt.Sprintf("Heights:   %.1f .. %.1f\n", lo, hi))
	info.WriteString(fmt.Sprintf("Water:     %.1f\n", m.surface.WaterLevel()))
	info.WriteString(fmt.Sprintf("Triangles: %d\n", mesh.TriangleCount()))
	info.WriteString(fmt.Sprintf("Build:     %s\n", m.buildTime.Round(time.Millisecond)))

	info.WriteString("\n" + components.SubtitleStyle.Render("Scatter runs") + "\n")
	if len(m.runs) == 0 {
		info.WriteString("none\n")
	}
	for _, r := range m.runs {
		status := lipgloss.NewStyle().Foreground(components.GetStatusColor(r.run.Status)).Render(r.run.Status)
		info.WriteString(fmt.Sprintf("%s %4d obj %s\n", shortID(r.run.ID), r.placements, status))
	}

	return components.InfoPanelStyle.Render(info.String())
}

// SetSize updates the browser size
func (m *TerrainBrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m TerrainBrowserModel) loadTerrainsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		terrains, err := m.queries.ListTerrains(ctx)
		if err != nil {
			return browserErrorMsg(err.Error())
		}
		return terrainsLoadedMsg{terrains: terrains}
	}
}

func (m TerrainBrowserModel) previewCmd(row db.Terrain) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		surface, err := rebuildSurface(ctx, row)
		if err != nil {
			return browserErrorMsg(err.Error())
		}

		runs, err := m.queries.ListScatterRunsByTerrain(ctx, row.ID)
		if err != nil {
			return browserErrorMsg(err.Error())
		}
		summaries := make([]runSummary, 0, len(runs))
		for _, run := range runs {
			count, err := m.queries.CountPlacementsByRun(ctx, run.ID)
			if err != nil {
				return browserErrorMsg(err.Error())
			}
			summaries = append(summaries, runSummary{run: run, placements: count})
		}

		return previewLoadedMsg{
			terrainID: row.ID,
			surface:   surface,
			bands:     HeightBands(surface, previewCols, previewRows),
			runs:      summaries,
			buildTime: surface.BuildDuration(),
		}
	}
}

// rebuildSurface regenerates a stored terrain without a render sink. Normal
// drawing is switched off, so the debug sink stays idle.
func rebuildSurface(ctx context.Context, row db.Terrain) (*terrain.Surface, error) {
	var cfg terrain.Config
	if err := json.Unmarshal([]byte(row.ConfigJson), &cfg); err != nil {
		return nil, fmt.Errorf("decode config of %s: %w", row.ID, err)
	}
	cfg.Debug.DrawNormals = false

	service := terrain.NewServiceWithDefaultLogger(nil)
	if err := service.Configure(cfg); err != nil {
		return nil, err
	}
	return service.Regenerate(ctx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type terrainsLoadedMsg struct {
	terrains []db.Terrain
}

type previewLoadedMsg struct {
	terrainID string
	surface   *terrain.Surface
	bands     [][]int
	runs      []runSummary
	buildTime time.Duration
}

type browserErrorMsg string
