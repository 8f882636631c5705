package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/todo-tui/internal/config"
	"github.com/pdxmph/todo-tui/internal/db"
	"github.com/pdxmph/todo-tui/internal/kv"
	_ "github.com/pdxmph/todo-tui/internal/kv/file"
	"github.com/pdxmph/todo-tui/internal/kv/sqlite"
	"github.com/pdxmph/todo-tui/internal/logger"
	"github.com/pdxmph/todo-tui/internal/store"
	"github.com/pdxmph/todo-tui/internal/todo"
	"github.com/pdxmph/todo-tui/internal/tui"
)

func main() {
	configPath := flag.String("config", config.Path(), "path to config file")
	initFlag := flag.Bool("init", false, "write the default config and create the database, then exit")
	fixtures := flag.String("fixtures", "", "create a database with sample tasks at `path`, then exit")
	backend := flag.String("backend", "", fmt.Sprintf("storage backend to use, one of %s (overrides config)", strings.Join(kv.Backends(), ", ")))
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}

	if *initFlag {
		if err := initialize(cfg, *configPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *fixtures != "" {
		if err := createFixtures(cfg, *fixtures); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Created fixtures database at %s\n", *fixtures)
		return
	}

	// Log to a file so the UI stays clean
	logFile, err := logger.Init(cfg.Log.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	manager, err := kv.NewManager(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer manager.Close()
	logger.Info("using %s backend at %s", manager.Name(), cfg.Storage.Path)

	adapter := store.New(manager.Backend(),
		store.WithKey(cfg.Storage.Key),
		store.WithTimeout(cfg.Storage.Timeout.Duration),
	)

	list, err := todo.Restore(context.Background(), adapter)
	if err != nil {
		// start empty; the next change overwrites whatever could not be read
		logger.Error("%v", err)
	}
	logger.Info("loaded %d tasks", list.Len())

	p := tea.NewProgram(tui.New(list, adapter), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// initialize writes the default config if there is none and creates the sqlite database
func initialize(cfg *config.Config, configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cfg.SaveTo(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote config to %s\n", configPath)
	}

	if cfg.Storage.Backend != "sqlite" && cfg.Storage.Backend != "" {
		fmt.Printf("Backend %s needs no initialization\n", cfg.Storage.Backend)
		return nil
	}

	if _, err := os.Stat(cfg.Storage.Path); err == nil {
		fmt.Printf("Database already exists at %s\n", cfg.Storage.Path)
		return nil
	}

	if err := db.Initialize(cfg.Storage.Path); err != nil {
		return err
	}
	fmt.Printf("Created database at %s\n", cfg.Storage.Path)
	return nil
}

// createFixtures creates a sqlite database holding the sample tasks
func createFixtures(cfg *config.Config, path string) error {
	if err := db.Initialize(path); err != nil {
		return fmt.Errorf("initializing fixtures database: %w", err)
	}

	backend, err := sqlite.NewBackend(path)
	if err != nil {
		return fmt.Errorf("opening fixtures database: %w", err)
	}
	defer backend.Close()

	adapter := store.New(backend, store.WithKey(cfg.Storage.Key))
	tasks, err := adapter.Seed(context.Background())
	if err != nil {
		return err
	}
	for _, t := range tasks {
		fmt.Printf("  %s\n", t.Title)
	}
	return nil
}
