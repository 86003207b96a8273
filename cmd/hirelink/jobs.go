package main

import (
	"github.com/spf13/cobra"

	"github.com/Linda-Mensah/hire-link/internal/observability"
	"github.com/Linda-Mensah/hire-link/internal/store"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List open positions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		jobs, err := store.Catalog(cfg.JobsFile)
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintJobs(jobs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
