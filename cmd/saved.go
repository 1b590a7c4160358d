package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [file]",
	Short: "Open a saved reading",
	Long: `Open displays a reading saved with 'turkokards save'. If the reading was drawn
from another deck, that deck becomes the current one. The reading is appended to
the log so it becomes the latest reading.

A bare file name is looked up in the saves directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.OpenSavedReading(cfg.SavePath(args[0]))
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

var saveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Save the latest reading",
	Long: `Save writes the latest reading in the log to a file, headed by the current deck.
A bare file name is placed in the saves directory; .txt is added when missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		path, err := s.SaveCurrentReading(cfg.SavePath(args[0]))
		if err != nil {
			return err
		}
		fmt.Println("Reading saved to:", colorize.HiWhiteString("%s", path))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(openCmd)
	RootCmd.AddCommand(saveCmd)

	openCmd.Flags().BoolP("art", "a", false, "Render the card images as ANSI art")
}
