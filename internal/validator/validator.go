package validator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/turkokards/internal/card"
	"github.com/arcanaland/turkokards/internal/deck"
	"github.com/arcanaland/turkokards/internal/reading"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	cards []string
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateCardList(); err != nil {
		return v.Results, err
	}

	v.validateDirectoryStructure()
	v.validateImages()
	v.validateDefinitions()

	return v.Results, nil
}

func (v *Validator) validateCardList() error {
	listPath := filepath.Join(v.DeckPath, deck.CardListFile)
	file, err := os.Open(listPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s not found in %s", deck.CardListFile, v.DeckPath)
	}
	if err != nil {
		return fmt.Errorf("error opening %s: %w", deck.CardListFile, err)
	}
	defer file.Close()

	seen := make(map[string]int)
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("duplicate card %q on line %d (first on line %d)", name, lineNo, first))
			continue
		}
		if strings.Contains(name, "reversed") {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %q contains \"reversed\" and will always be read as reversed", name))
		}
		if strings.Contains(name, ": ") {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %q contains \": \" which breaks the reading log format", name))
		}
		seen[name] = lineNo
		v.cards = append(v.cards, name)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", deck.CardListFile, err)
	}

	if len(v.cards) < reading.Size {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("%s has %d unique cards, a reading needs %d", deck.CardListFile, len(v.cards), reading.Size))
	}
	return nil
}

// validateDirectoryStructure checks if the deck has the expected directory structure
func (v *Validator) validateDirectoryStructure() {
	if _, err := os.Stat(filepath.Join(v.DeckPath, deck.ImagesDir)); os.IsNotExist(err) {
		v.Results.Errors = append(v.Results.Errors, deck.ImagesDir+" directory not found")
	}
	if _, err := os.Stat(filepath.Join(v.DeckPath, deck.DefinitionsDir)); os.IsNotExist(err) {
		v.Results.Warnings = append(v.Results.Warnings, deck.DefinitionsDir+" directory not found")
	}
}

// validateImages checks every card has an upright image; reversed images are optional
func (v *Validator) validateImages() {
	dir := filepath.Join(v.DeckPath, deck.ImagesDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return // Already reported
	}

	var missing, missingReversed []string
	for _, name := range v.cards {
		if !exists(filepath.Join(dir, card.FileStem(name)+deck.ImageExt)) {
			missing = append(missing, name)
		}
		reversed := card.Card{Name: name, Reversed: true}.Label()
		if !exists(filepath.Join(dir, card.FileStem(reversed)+deck.ImageExt)) {
			missingReversed = append(missingReversed, reversed)
		}
	}

	if len(missing) > 0 {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("missing card images: %s", strings.Join(missing, ", ")))
	}
	if len(missingReversed) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("missing reversed card images: %s", strings.Join(missingReversed, ", ")))
	}
}

// validateDefinitions warns about cards without a definition
func (v *Validator) validateDefinitions() {
	dir := filepath.Join(v.DeckPath, deck.DefinitionsDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return
	}

	var missing []string
	for _, name := range v.cards {
		if !exists(filepath.Join(dir, card.FileStem(name)+deck.DefinitionExt)) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("missing card definitions: %s", strings.Join(missing, ", ")))
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
