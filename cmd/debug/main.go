package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/terrain/cmd/debug/models"
	"github.com/VoidMesh/terrain/internal/db"
	"github.com/VoidMesh/terrain/internal/logging"
)

func main() {
	dbPath := flag.String("db", "./terrain.db", "Path to the SQLite database")
	startView := flag.String("view", "menu", "Starting view (menu, terrains, overview)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file or nowhere
	logOutput := io.Discard
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOutput = f
	}
	logging.InitLoggerWithWriter(logOutput, logging.ParseLevel(*logLevel))
	logger := logging.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	conn, err := db.Open(ctx, *dbPath, db.PoolSettings{MaxOpenConns: 1})
	cancel()
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	app := models.NewApp(db.NewLoggingQueries(conn), *startView)

	// Create and run the Bubble Tea program
	program := tea.NewProgram(app, tea.WithAltScreen())

	logger.Info("Starting VoidMesh terrain inspector", "db_path", *dbPath, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}
