package cmd

import (
	"errors"
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/turkokards/internal/ansiart"
	"github.com/arcanaland/turkokards/internal/card"
	"github.com/arcanaland/turkokards/internal/deck"
)

var showCmd = &cobra.Command{
	Use:   "show [card]",
	Short: "Display a card with ANSI art and its definition",
	Long: `Show displays a card's image as ANSI terminal art next to its definition.
Name the card as it appears in the deck's card list; add " reversed" for the
reversed image and definition.

Examples:
  turkokards show "The Fool"
  turkokards show --deck Rider_Waite "Ace of Cups reversed"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		deckID, _ := cmd.Flags().GetString("deck")
		if deckID == "" {
			deckID = cfg.DefaultDeck
		}

		repo := deck.FromConfig(cfg)
		h, err := repo.Resolve(deckID)
		if err != nil {
			return err
		}

		c := card.ParseLabel(args[0])
		definition, err := repo.DefinitionText(h, c.Label())
		if errors.Is(err, deck.ErrDefinitionNotFound) {
			definition = "Definition not found."
		} else if err != nil {
			return err
		}

		var art string
		path, err := repo.ImagePath(cmd.Context(), h, c.Label())
		if err != nil {
			consoleLogger("show").Warn().Err(err).Str("deck", deckID).Msg("no image")
		} else {
			width, _ := cmd.Flags().GetInt("width")
			if width <= 0 {
				width = s.Settings().CardWidth
			}
			art, err = ansiart.NewRenderer(1).RenderFile(path, ansiart.Columns(width)/2)
			if err != nil {
				return fmt.Errorf("error rendering image: %w", err)
			}
		}

		displayCard(c, deckID, art, definition)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("deck", "d", "", "Deck to look the card up in (defaults to the configured deck)")
	showCmd.Flags().IntP("width", "w", 0, "Card width in pixels (defaults to the stored setting)")
}

// displayCard displays the card information with ANSI art
func displayCard(c card.Card, deckID, ansiArt, definition string) {
	ansiLines := strings.Split(strings.TrimSuffix(ansiArt, "\n"), "\n")
	maxAnsiWidth := 0
	for _, line := range ansiLines {
		if w := len([]rune(ansiart.Strip(line))); w > maxAnsiWidth {
			maxAnsiWidth = w
		}
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", c.Name))
	infoLines = append(infoLines, colorize.CyanString("Deck: ")+colorize.HiWhiteString("%s", deckID))
	if c.Reversed {
		infoLines = append(infoLines, colorize.CyanString("Drawn: ")+colorize.HiRedString("reversed"))
	} else {
		infoLines = append(infoLines, colorize.CyanString("Drawn: ")+colorize.HiWhiteString("upright"))
	}

	// ANSI art on the left, info on the right
	spacing := 4
	infoStartCol := maxAnsiWidth + spacing
	if maxAnsiWidth == 0 {
		infoStartCol = 0
	}
	infoWidth := terminalWidth() - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	infoLines = append(infoLines, "", colorize.CyanString("Definition:"))
	infoLines = append(infoLines, wrapText(definition, infoWidth)...)

	fmt.Println()
	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(ansiLines) && maxAnsiWidth > 0 {
			fmt.Print(ansiLines[i])
			visibleWidth := len([]rune(ansiart.Strip(ansiLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}
		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}
	fmt.Println()
}
