package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nkvxness/shelftui/internal/adapter"
	"github.com/nkvxness/shelftui/internal/catalog"
	"github.com/nkvxness/shelftui/internal/notify"
	"github.com/nkvxness/shelftui/internal/store"
	"github.com/nkvxness/shelftui/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("shelftui must run in an interactive terminal")
	}

	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting shelftui", "server", cfg.Server.URL)

	// Page cache
	cache, err := store.NewPageCache(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		logger.Warn("cache unavailable, running without persistence", "error", err)
		cache, _ = store.NewPageCache("", "")
	}
	defer cache.Close()

	// Notifications, bridged into the Tea loop via a channel observer
	notifyCh := make(chan struct{}, 1)
	notes := notify.NewManager(tui.NewChannelObserver(notifyCh))
	defer notes.Close()

	// Remote store client and repository
	client := catalog.NewClient(cfg.Server.URL, cfg.Server.Timeout, logger)
	repo := catalog.NewRepository(client, cache, notes, logger)

	// Run the TUI
	model := tui.NewModel(repo, notes, notifyCh, cfg.UI.PageSize, cfg.UI.FuzzySearch)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	logger.Info("shelftui exited")
	return nil
}
