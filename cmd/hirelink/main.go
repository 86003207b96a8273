// Package main provides the entry point for the HireLink server and CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Linda-Mensah/hire-link/internal/config"
	"github.com/Linda-Mensah/hire-link/internal/server"
	"github.com/Linda-Mensah/hire-link/internal/storage"
	"github.com/Linda-Mensah/hire-link/internal/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "hirelink",
	Short:         "HireLink applicant tracking",
	Long:          "HireLink accepts job applications and moves candidates through a recruiting pipeline from application to offer.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file (optional)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openApplications opens the configured slot and rehydrates the application store from it.
// The caller owns the returned slot.
func openApplications(ctx context.Context, cfg config.Config) (*store.Store, storage.Slot, storage.LoadResult, error) {
	slot, err := storage.Open(ctx, server.SlotOptions(cfg))
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to open storage: %w", err)
	}

	jobs, err := store.Catalog(cfg.JobsFile)
	if err != nil {
		_ = slot.Close()
		return nil, nil, "", err
	}

	apps := store.New(store.WithSlot(slot), store.WithJobs(jobs))
	result, err := apps.Load(ctx)
	if err != nil {
		_ = slot.Close()
		return nil, nil, "", err
	}
	return apps, slot, result, nil
}
