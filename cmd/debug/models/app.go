package models

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/logging"
)

// ViewType represents the different views in the inspector
type ViewType int

const (
	MenuView ViewType = iota
	TerrainBrowserView
	OverviewView
)

const viewCount = 3

// App is the main application model
type App struct {
	queries *db.LoggingQueries

	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	menu     MenuModel
	browser  TerrainBrowserModel
	overview OverviewModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance
func NewApp(queries *db.LoggingQueries, startView string) *App {
	app := &App{
		queries:     queries,
		currentView: MenuView,
		menu:        NewMenuModel(),
		browser:     NewTerrainBrowserModel(queries),
		overview:    NewOverviewModel(queries),
	}

	// Set starting view based on parameter
	switch startView {
	case "terrains":
		app.currentView = TerrainBrowserView
	case "overview":
		app.currentView = OverviewView
	default:
		app.currentView = MenuView
	}

	return app
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	logging.GetLogger().Debug("Initializing terrain inspector", "view", m.currentView)
	return m.initView(m.currentView)
}

func (m *App) initView(view ViewType) tea.Cmd {
	switch view {
	case TerrainBrowserView:
		return m.browser.Init()
	case OverviewView:
		return m.overview.Init()
	default:
		return m.menu.Init()
	}
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Update all view models with new size
		m.menu.SetSize(msg.Width, msg.Height)
		m.browser.SetSize(msg.Width, msg.Height)
		m.overview.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global key bindings
		switch msg.String() {
		case "ctrl+c", "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			// If not in menu, go back to menu instead of quitting
			m.currentView = MenuView
			return m, m.menu.Init()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			// Cycle through views
			m.currentView = ViewType((int(m.currentView) + 1) % viewCount)
			return m, m.initView(m.currentView)
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.initView(m.currentView)
	}

	// Handle help view
	if m.showHelp {
		return m, nil
	}

	// Route message to current view
	switch m.currentView {
	case MenuView:
		newModel, cmd := m.menu.Update(msg)
		m.menu = newModel.(MenuModel)
		return m, cmd
	case TerrainBrowserView:
		newModel, cmd := m.browser.Update(msg)
		m.browser = newModel.(TerrainBrowserModel)
		return m, cmd
	case OverviewView:
		newModel, cmd := m.overview.Update(msg)
		m.overview = newModel.(OverviewModel)
		return m, cmd
	}

	return m, nil
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case TerrainBrowserView:
		return m.browser.View()
	case OverviewView:
		return m.overview.View()
	}

	return "Unknown view"
}

func renderHelp() string {
	return `
VoidMesh Terrain Inspector - Help

Global Keys:
  q, Ctrl+C    Quit (from menu) / Back to menu
  ?            Toggle this help
  Tab          Cycle through views

Terrain Browser:
  ↑/↓, j/k     Select a terrain
  Enter        Rebuild and preview the selection
  r            Reload the terrain list

Legend:
  ~ water   . sand   : grass   - forest   = rock   # cliff   ^ snow

Press ? again to close this help
`
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// NewSwitchViewMsg creates a new switch view message
func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}
