package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Linda-Mensah/hire-link/internal/observability"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

var boardStage string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the recruiting pipeline",
	Long:  "Prints every pipeline stage with its candidates, read from the configured storage. With --stage, prints full records for one stage.",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

var candidateCmd = &cobra.Command{
	Use:   "candidate <id>",
	Short: "Print one candidate's record",
	Args:  cobra.ExactArgs(1),
	RunE:  runCandidate,
}

func init() {
	boardCmd.Flags().StringVar(&boardStage, "stage", "", "Only show candidates in this stage (applied, reviewed, interview_scheduled, offer_sent)")
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(candidateCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stage := types.Stage(boardStage)
	if boardStage != "" && !stage.IsValid() {
		return fmt.Errorf("unknown stage: %q", boardStage)
	}

	apps, slot, result, err := openApplications(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = slot.Close() }()

	observability.NewPrinter(cmd.ErrOrStderr()).PrintLoadResult("applications", result)

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if boardStage == "" {
		printer.PrintBoard(apps.Snapshot().Candidates)
		return nil
	}

	for _, c := range apps.GetCandidatesByStage(stage) {
		printer.PrintCandidate(c)
	}
	return nil
}

func runCandidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	apps, slot, _, err := openApplications(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = slot.Close() }()

	c, ok := apps.GetCandidate(args[0])
	if !ok {
		return fmt.Errorf("candidate not found: %s", args[0])
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintCandidate(c)
	return nil
}
