package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/gymbro/internal/export"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "GymBro server URL (e.g. https://gymbro.tail1234.ts.net)")
	outDir := flag.String("out", "workouts", "output directory for exported JSON files")
	apiKey := flag.String("api-key", "", "API key if the server requires one")
	limit := flag.Int("limit", 100, "maximum sessions to fetch")
	dryRun := flag.Bool("dry-run", false, "list what would be exported without writing")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymbro-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: gymbro-export -server <URL> [-out DIR] [-limit N] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	*serverURL = strings.TrimRight(*serverURL, "/")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := export.OpenStateDB(filepath.Join(homeDir, ".gymbro-export"))
	if err != nil {
		log.Error("failed to open state db", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	client := export.NewClient(*serverURL, *apiKey)
	result, err := export.Run(context.Background(), client, state, *outDir, *limit, *dryRun, log)
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	log.Info("export complete", "fetched", result.Fetched, "written", result.Written, "skipped", result.Skipped)
}
