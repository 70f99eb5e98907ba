// Package tracker parses tracker service flags and launches the HTTP API.
package tracker

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/louisbranch/playtally/internal/campaign/service"
	entrypoint "github.com/louisbranch/playtally/internal/platform/cmd"
	"github.com/louisbranch/playtally/internal/storage/sqlite"
	"github.com/louisbranch/playtally/internal/web"
)

// Config holds tracker command configuration.
type Config struct {
	Addr   string `env:"PLAYTALLY_TRACKER_ADDR" envDefault:"localhost:8090"`
	DBPath string `env:"PLAYTALLY_DB_PATH"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The tracker HTTP server address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "tracker.db")
	}
	return cfg, nil
}

// Run starts the tracker HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTracker, func(ctx context.Context) error {
		store, err := openTrackerStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close tracker store: %v", err)
			}
		}()

		svc := service.NewService(store)
		return web.NewServer(cfg.Addr, svc).Run(ctx)
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
