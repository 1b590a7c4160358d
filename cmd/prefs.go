package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/turkokards/internal/settings"
)

var sizeCmd = &cobra.Command{
	Use:   "size [preset|width]",
	Short: "Show or set the card display width",
	Long: `Size sets the width cards are displayed at, either as a preset
(XS, Small, Medium, Large, XL, 700, XXL, 900, XXX) or in pixels.
The latest reading is shown again at the new size.
Without an argument the current width and the presets are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 0 {
			current := s.Settings().CardWidth
			fmt.Println(colorize.CyanString("Card width: ") + colorize.HiWhiteString("%d", current))
			for _, p := range settings.SizePresets {
				marker := " "
				if p.Width == current {
					marker = "*"
				}
				fmt.Printf("%s %-6s %4d\n", marker, p.Label, p.Width)
			}
			return nil
		}

		width, err := settings.PresetWidth(args[0])
		if err != nil {
			return err
		}
		r, err := s.SetCardWidth(width)
		if err != nil {
			return err
		}
		fmt.Printf("Card width set to: %d\n", width)

		if r != nil {
			if art, _ := cmd.Flags().GetBool("art"); art {
				return printArt(cmd.Context(), s, r)
			}
		}
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Toggle between dark and light mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		dark, err := s.ToggleTheme()
		if err != nil {
			return err
		}
		if dark {
			fmt.Println("Dark mode on.")
		} else {
			fmt.Println("Dark mode off.")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sizeCmd)
	RootCmd.AddCommand(themeCmd)

	sizeCmd.Flags().BoolP("art", "a", false, "Render the redisplayed reading as ANSI art")
}
