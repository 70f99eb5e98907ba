// Package mcp parses MCP command flags and serves the tracker over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/louisbranch/playtally/internal/campaign/service"
	mcpserver "github.com/louisbranch/playtally/internal/mcp"
	entrypoint "github.com/louisbranch/playtally/internal/platform/cmd"
	"github.com/louisbranch/playtally/internal/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath string `env:"PLAYTALLY_DB_PATH"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "tracker.db")
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter on stdio.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		store, err := openTrackerStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close tracker store: %v", err)
			}
		}()

		server, err := mcpserver.NewServer(service.NewService(store))
		if err != nil {
			return err
		}
		return server.Run(ctx)
	})
}

func openTrackerStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tracker sqlite store: %w", err)
	}
	return store, nil
}
