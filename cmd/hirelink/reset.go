package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Linda-Mensah/hire-link/internal/auth"
	"github.com/Linda-Mensah/hire-link/internal/server"
	"github.com/Linda-Mensah/hire-link/internal/storage"
	"github.com/Linda-Mensah/hire-link/internal/store"
)

var resetSessionOnly bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear persisted state",
	Long:  "Deletes the stored applications and auth session so the next start uses seed data and an anonymous session.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetSessionOnly, "session-only", false, "Only sign out the stored session")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slot, err := storage.Open(cmd.Context(), server.SlotOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = slot.Close() }()

	keys := []string{auth.StorageKey}
	if !resetSessionOnly {
		keys = append(keys, store.StorageKey)
	}

	for _, key := range keys {
		if err := slot.Delete(cmd.Context(), key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %s\n", key)
	}
	return nil
}
