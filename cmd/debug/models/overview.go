package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/terrain/cmd/debug/components"
	"github.com/VoidMesh/terrain/internal/db"
)

// Stats aggregates the stored terrains and their scatter history.
type Stats struct {
	Terrains      int
	Runs          int
	Placements    int64
	RunsByStatus  map[string]int
	LatestTerrain string
}

// CollectStats walks every terrain and run once.
func CollectStats(ctx context.Context, queries *db.LoggingQueries) (Stats, error) {
	stats := Stats{RunsByStatus: make(map[string]int)}

	terrains, err := queries.ListTerrains(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.Terrains = len(terrains)
	if len(terrains) > 0 {
		stats.LatestTerrain = terrains[0].Name
	}

	for _, t := range terrains {
		runs, err := queries.ListScatterRunsByTerrain(ctx, t.ID)
		if err != nil {
			return Stats{}, err
		}
		for _, run := range runs {
			stats.Runs++
			stats.RunsByStatus[run.Status]++

			count, err := queries.CountPlacementsByRun(ctx, run.ID)
			if err != nil {
				return Stats{}, err
			}
			stats.Placements += count
		}
	}
	return stats, nil
}

// OverviewModel handles the storage overview view
type OverviewModel struct {
	queries *db.LoggingQueries
	stats   Stats
	loaded  bool
	err     string
	width   int
	height  int
}

// NewOverviewModel creates a new overview model
func NewOverviewModel(queries *db.LoggingQueries) OverviewModel {
	return OverviewModel{queries: queries}
}

// Init loads the statistics
func (m OverviewModel) Init() tea.Cmd {
	return m.loadStatsCmd()
}

// Update handles overview messages
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadStatsCmd()
		}

	case statsLoadedMsg:
		m.stats = msg.stats
		m.loaded = true
		m.err = ""

	case statsErrorMsg:
		m.err = string(msg)
	}

	return m, nil
}

// View renders the overview
func (m OverviewModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Storage Overview") + "\n\n")

	var body string
	switch {
	case m.err != "":
		body = components.ErrorStyle.Render("Error: " + m.err)
	case !m.loaded:
		body = "Loading..."
	default:
		body = fmt.Sprintf("Terrains:    %d\nLatest:      %s\nScatter runs: %d\nPlacements:  %d\n\nCompleted:   %d\nPartial:     %d\nRunning:     %d",
			m.stats.Terrains,
			m.stats.LatestTerrain,
			m.stats.Runs,
			m.stats.Placements,
			m.stats.RunsByStatus["completed"],
			m.stats.RunsByStatus["partial"],
			m.stats.RunsByStatus["running"],
		)
	}
	s.WriteString(components.BorderStyle.Render(body) + "\n\n")

	statusBar := components.StatusBarStyle.Width(m.width).Render("Press 'r' to refresh • 'q' to go back")
	s.WriteString(statusBar)

	return s.String()
}

// SetSize updates the overview size
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m OverviewModel) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := CollectStats(ctx, m.queries)
		if err != nil {
			return statsErrorMsg(err.Error())
		}
		return statsLoadedMsg{stats: stats}
	}
}

type statsLoadedMsg struct {
	stats Stats
}

type statsErrorMsg string
