package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/turkokards/internal/ansiart"
	"github.com/arcanaland/turkokards/internal/reading"
	"github.com/arcanaland/turkokards/internal/session"
)

// printReading lists a reading, one position per line
func printReading(r *reading.Reading) {
	fmt.Println(colorize.CyanString("Deck: ") + colorize.HiWhiteString("%s", r.DeckID))
	fmt.Println()

	width := 0
	for _, e := range r.Entries {
		if len(e.Position) > width {
			width = len(e.Position)
		}
	}
	for i, e := range r.Entries {
		label := colorize.HiWhiteString("%s", e.Card.Name)
		if e.Card.Reversed {
			label = colorize.HiRedString("%s", e.Card.Label())
		}
		fmt.Printf("%2d. %s  %s\n", i+1, colorize.CyanString("%-*s", width, e.Position), label)
	}
	fmt.Println()
}

// printArt resolves every image of the reading and prints it as ANSI art
func printArt(ctx context.Context, s *session.Session, r *reading.Reading) error {
	images, err := s.ResolveImages(ctx, r)
	if err != nil {
		return err
	}

	renderer := ansiart.NewRenderer(reading.Size)
	columns := ansiart.Columns(s.Settings().CardWidth)
	if tw := terminalWidth(); columns > tw-4 {
		columns = tw - 4
	}

	for i, e := range r.Entries {
		fmt.Println(colorize.CyanString("%s", e.Position))
		if images.Paths[i] == "" {
			fmt.Println(colorize.YellowString("Image not found: %s", e.Card.Label()))
			fmt.Println()
			continue
		}
		art, err := renderer.RenderFile(images.Paths[i], columns)
		if err != nil {
			fmt.Println(colorize.YellowString("%s: %v", e.Card.Label(), err))
			continue
		}
		fmt.Print(art)
		fmt.Println(colorize.HiWhiteString("%s", e.Card.Label()))
		fmt.Println()
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}
		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result = append(result, currentLine)
				currentLine = word
			}
		}
		result = append(result, currentLine)
	}
	return result
}
