package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/claude/gymbro/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "GymBro server URL (e.g. https://gymbro.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key if the server requires one")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymbro-mcp", Version)
		return
	}

	// Logs go to stderr — stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: gymbro-mcp -server <URL> [-api-key KEY]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ds := mcp.NewHTTPClient(strings.TrimRight(*serverURL, "/"), *apiKey)
	s := mcp.New(ds, Version, log)

	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
