package card

import "strings"

// ReversedSuffix is appended to a card name when the card is drawn upside down
const ReversedSuffix = " reversed"

// Card represents a tarot card as it appears in a reading
type Card struct {
	Name     string // Name as listed in the deck's cardslist.txt
	Reversed bool   // Drawn upside down
}

// Label returns the display label used in logs, saved readings and file lookups
func (c Card) Label() string {
	if c.Reversed && !strings.Contains(c.Name, "reversed") {
		return c.Name + ReversedSuffix
	}
	return c.Name
}

// ParseLabel turns a display label back into a card.
// Any label containing "reversed" is reversed, matching how existing logs were read.
func ParseLabel(label string) Card {
	label = strings.TrimSpace(label)
	return Card{
		Name:     strings.TrimSuffix(label, ReversedSuffix),
		Reversed: strings.Contains(label, "reversed"),
	}
}

// FileStem returns the normalized file name (without extension) for a label
func FileStem(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}
