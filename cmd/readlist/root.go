package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hoanghai1803/readlist/internal/config"
	"github.com/hoanghai1803/readlist/internal/feeds"
	"github.com/hoanghai1803/readlist/internal/readinglist"
	"github.com/hoanghai1803/readlist/internal/storage"
)

var (
	configPath string
	dataDir    string

	cfg     *config.Config
	dbConn  *sql.DB
	svc     *readinglist.Service
	fetcher *feeds.Fetcher
)

var rootCmd = &cobra.Command{
	Use:   "readlist",
	Short: "Save pages to read later",
	Long: `readlist keeps a reading list of pages you want to come back to.

It shares its database with the readlist server, so pages added here show up
in the popup and the other way round.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		dbConn, err = storage.OpenDatabase(filepath.Join(dataDir, "readlist.db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := storage.RunMigrations(dbConn); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		store := readinglist.NewKVStore(storage.NewStore(dbConn), cfg.ReadingList.StorageKey)
		svc = readinglist.NewService(store, readinglist.Options{
			MaxRetries: cfg.ReadingList.ServiceRetries(),
		})
		fetcher = feeds.NewFetcher(feeds.Options{
			Timeout:       cfg.Fetch.Timeout(),
			MaxConcurrent: cfg.Fetch.MaxConcurrent,
			MaxItems:      cfg.Fetch.MaxFeedItems,
		})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbConn != nil {
			err := dbConn.Close()
			dbConn = nil
			if err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "./data", "path to data directory")
}

// parseItemID parses a reading list item id argument.
func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}
