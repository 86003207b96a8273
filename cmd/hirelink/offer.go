package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Linda-Mensah/hire-link/internal/offer"
)

var (
	offerOutDir   string
	offerBase     int
	offerBonus    int
	offerPosition string
	offerNotes    string
)

// maxBaseSalary matches the limit on the HTTP offer request.
const maxBaseSalary = 10_000_000

var offerCmd = &cobra.Command{
	Use:   "offer <candidate-id>",
	Short: "Generate an offer letter and move the candidate to Offer Sent",
	Long:  "Generates an offer letter for the candidate, persists it with the candidate record and writes a copy as offer-<name>.txt.",
	Args:  cobra.ExactArgs(1),
	RunE:  runOffer,
}

func init() {
	offerCmd.Flags().StringVarP(&offerOutDir, "out", "o", ".", "Directory to write the letter to")
	offerCmd.Flags().IntVar(&offerBase, "base", offer.DefaultBaseSalary, "Base salary")
	offerCmd.Flags().IntVar(&offerBonus, "bonus", offer.DefaultBonusPercent, "Target bonus percent")
	offerCmd.Flags().StringVar(&offerPosition, "position", "", "Position title (optional)")
	offerCmd.Flags().StringVar(&offerNotes, "notes", "", "Additional notes (optional)")
	rootCmd.AddCommand(offerCmd)
}

func runOffer(cmd *cobra.Command, args []string) error {
	id := args[0]
	if offerBase <= 0 {
		return fmt.Errorf("base salary must be positive")
	}
	if offerBase > maxBaseSalary {
		return fmt.Errorf("base salary must be at most %d", maxBaseSalary)
	}
	if offerBonus < 0 || offerBonus > 100 {
		return fmt.Errorf("bonus percent must be between 0 and 100")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	apps, slot, _, err := openApplications(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = slot.Close() }()

	terms := offer.Terms{
		BaseSalary:   offerBase,
		BonusPercent: offerBonus,
		Position:     offerPosition,
		Notes:        offerNotes,
		Company:      offer.DefaultCompany,
	}

	ok, err := apps.GenerateOfferWithTerms(cmd.Context(), id, terms)
	if err != nil {
		return fmt.Errorf("failed to generate offer: %w", err)
	}
	if !ok {
		return fmt.Errorf("candidate not found: %s", id)
	}
	if err := apps.LastPersistError(); err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}

	c, _ := apps.GetCandidate(id)
	letter, _ := c.OfferLetter.Get()

	if err := os.MkdirAll(offerOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(offerOutDir, offer.SafeFileName(c.FullName))
	if err := os.WriteFile(path, []byte(letter), 0o644); err != nil {
		return fmt.Errorf("failed to write offer letter: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Offer for %s written to %s\n", c.FullName, path)
	return nil
}
