package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/turkokards/internal/config"
	"github.com/arcanaland/turkokards/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck|path]",
	Short: "Validate a tarot deck directory",
	Long: `Validate checks that a deck directory can be used for readings: a cardslist.txt
with at least thirteen unique cards, an image for every card and, as warnings,
reversed images and card definitions.

The argument is a registered deck id or a path to a deck directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := args[0]
		if cfg, err := config.LoadConfig(); err == nil {
			if p, err := cfg.DeckPath(args[0]); err == nil {
				deckPath = p
			}
		}

		if _, err := os.Stat(deckPath); os.IsNotExist(err) {
			return fmt.Errorf("deck directory not found: %s", deckPath)
		}

		results, err := validator.NewValidator(deckPath).Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Println(colorize.CyanString("Deck: ") + colorize.HiWhiteString("%s", deckPath))
		for _, warn := range results.Warnings {
			fmt.Println(colorize.YellowString("  warning: ") + warn)
		}
		for _, msg := range results.Errors {
			fmt.Println(colorize.RedString("  error:   ") + msg)
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("deck has %d errors", len(results.Errors))
		}
		fmt.Printf("%s (%d warnings)\n", colorize.GreenString("Ready for readings"), len(results.Warnings))
		return nil
	},
}
