package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/turkokards/internal/config"
	"github.com/arcanaland/turkokards/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage the decks in your deck library",
	Long:  `Commands for managing the tarot decks registered in your config.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		repo := deck.FromConfig(cfg)
		for _, id := range repo.IDs() {
			h, _ := repo.Resolve(id)
			status := colorize.HiBlackString("not installed")
			if cards, err := repo.CardList(h); err == nil {
				status = fmt.Sprintf("%d cards", len(cards))
			}

			if id == cfg.DefaultDeck {
				fmt.Printf("* %s (%s) [DEFAULT]\n", colorize.HiWhiteString("%s", id), status)
			} else {
				fmt.Printf("  %s (%s)\n", id, status)
			}
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		// Make sure the deck is registered and readable
		repo := deck.FromConfig(cfg)
		h, err := repo.Resolve(deckID)
		if err != nil {
			return err
		}
		if _, err := repo.CardList(h); err != nil {
			return fmt.Errorf("not a usable deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckID); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Printf("Default deck set to: %s\n", deckID)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		// One folder per registered deck, ready for cardslist.txt and assets
		for id := range cfg.Decks {
			deckPath, err := cfg.DeckPath(id)
			if err != nil {
				return err
			}
			for _, sub := range []string{deck.ImagesDir, deck.DefinitionsDir} {
				if err := os.MkdirAll(filepath.Join(deckPath, sub), 0755); err != nil {
					return fmt.Errorf("error creating deck library: %w", err)
				}
			}
		}
		for _, dir := range []string{cfg.SavesDir, cfg.MusicDir, filepath.Dir(cfg.LogFile)} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("error creating %s: %w", dir, err)
			}
		}

		fmt.Println("Deck library initialized at:", cfg.DeckLibrary)
		fmt.Println("Add a cardslist.txt, card_images/ and card_definitions/ to each deck folder.")
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
