package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"pantryassistant"
	"pantryassistant/internal/app"
	"pantryassistant/interpreter"
	"pantryassistant/inventory/sqlstore"
	"pantryassistant/storage"
)

func main() {
	dbPath := flag.String("db", "", "inventory database path (defaults to DATABASE_PATH)")
	seedPath := flag.String("seed", "", "seed file to load into an empty inventory")
	reset := flag.Bool("reset", false, "overwrite the inventory with the seed before starting")
	debug := flag.Bool("debug", false, "dump every response")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := pantryassistant.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	// Keep the prompt readable: only warnings and above reach stderr.
	if !*debug {
		cfg.Log.Level = "warn"
	}
	cfg.Log.Format = "console"
	slog.SetDefault(pantryassistant.NewSlogLogger(cfg.Log, os.Stderr))

	if *dbPath != "" {
		cfg.Assistant.DatabasePath = *dbPath
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Assistant.DatabasePath), 0o755); err != nil {
		slog.Error("SETUP: Failed to create database directory", "error", err)
		return
	}
	store, err := sqlstore.Open(cfg.Assistant.DatabasePath, false)
	if err != nil {
		slog.Error("SETUP: Failed to open inventory database", "error", err)
		return
	}
	defer store.Close() // nolint: errcheck

	var seed storage.SeedState
	if *seedPath != "" {
		seed = storage.NewFileSeedState(*seedPath)
	} else if seed, err = app.NewSeedState(ctx, cfg.Assistant); err != nil {
		slog.Error("SETUP: Failed to configure seed source", "error", err)
		return
	}
	if _, err := app.SeedInventory(ctx, store, seed, *reset); err != nil {
		slog.Error("SETUP: Failed to seed inventory", "error", err)
		return
	}

	journal, cleanup, err := app.OpenJournal(pantryassistant.NewJournalFilePath("cli"))
	if err != nil {
		slog.Error("SETUP: Failed to open command journal", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("Failed to flush command journal", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, app.Options{Store: store, Journal: journal})
	if err != nil {
		slog.Error("SETUP: Failed to assemble services", "error", err)
		return
	}

	if err := repl(ctx, a.Commands, *debug); err != nil {
		slog.Error("Failed to read input", "error", err)
	}
}

func repl(ctx context.Context, commands interpreter.Processor, debug bool) error {
	fmt.Println("Pantry assistant. Type a command, or \"quit\" to exit.")

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errc <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			text := strings.TrimSpace(line)
			switch strings.ToLower(text) {
			case "":
				continue
			case "quit", "exit":
				return nil
			}

			resp := commands.Process(ctx, text)
			if debug {
				pantryassistant.Dump(os.Stderr, text, resp)
			}
			fmt.Println(resp.Text)
		}
	}
}
