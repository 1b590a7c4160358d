package cmd

import (
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:     "read [deck]",
	Aliases: []string{"draw"},
	Short:   "Draw a new thirteen card reading",
	Long: `Read draws thirteen cards from a deck, three of them reversed, and appends the
reading to the log. Without a deck argument the default deck from your config is used.

Examples:
  turkokards read
  turkokards read Rider_Waite --art`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		deckID := cfg.DefaultDeck
		if len(args) == 1 {
			deckID = args[0]
		}

		r, err := s.GenerateReading(deckID)
		if err != nil {
			return err
		}
		printReading(r)

		if art, _ := cmd.Flags().GetBool("art"); art {
			return printArt(cmd.Context(), s, r)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(readCmd)

	readCmd.Flags().BoolP("art", "a", false, "Render the card images as ANSI art")
}
