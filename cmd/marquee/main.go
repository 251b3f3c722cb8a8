package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/avelius/marquee/internal/adapter"
	"github.com/avelius/marquee/internal/api"
	"github.com/avelius/marquee/internal/service"
	"github.com/avelius/marquee/internal/store"
	"github.com/avelius/marquee/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	clearCache := flag.Bool("clear-cache", false, "remove the local session cache and exit")
	flag.Parse()
	if *clearCache {
		if err := adapter.ClearCache(); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	}

	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.NewLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", "1.0.0")

	firstRun := !cfg.IsConfigured()
	if firstRun {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}

	// Local session cache
	sessionStore, err := store.Open(adapter.GetCachePath())
	if err != nil {
		logger.Warn("session cache unavailable, using memory store", "error", err)
		sessionStore, _ = store.Open("")
	}
	defer sessionStore.Close()

	// API client and services
	client := api.NewClient(cfg.Server.URL, logger)
	sessionSvc := service.NewSessionService(client, sessionStore, logger)
	catalogSvc := service.NewCatalogService(client, logger)

	// On a fresh setup offer a terminal sign-in before the TUI starts
	if firstRun && sessionSvc.CurrentUser() == nil {
		if err := promptSignIn(sessionSvc); err != nil {
			fmt.Printf("Sign-in skipped: %v\n", err)
		}
	}

	model := tui.NewModel(sessionSvc, catalogSvc, logger, cfg.UI.ShelfSize)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow collects the server URL on first run and saves the config
func runSetupFlow(cfg *adapter.Config) error {
	fmt.Println("Welcome to Marquee!")
	fmt.Println()

	fmt.Print("Enter the catalog server URL (e.g., http://localhost:8080): ")
	reader := bufio.NewReader(os.Stdin)
	url, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read server URL: %w", err)
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("a server URL is required")
	}
	cfg.Server.URL = strings.TrimRight(url, "/")

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// promptSignIn runs a one-time terminal login so the TUI starts signed in.
// The password is read without echo.
func promptSignIn(sessionSvc *service.SessionService) error {
	fmt.Print("Sign in now? [Y/n]: ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "n" || answer == "no" {
		return nil
	}

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := sessionSvc.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Printf("✓ Signed in as %s\n", user.FullName)
	return nil
}
