package reading

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/arcanaland/turkokards/internal/card"
)

// Positions are the thirteen slots of the spread, in display order
var Positions = [Size]string{
	"Resolution",
	"Counterforce",
	"Force",
	"Outcome",
	"Hopes and Fears",
	"External Influences",
	"Self-Perception",
	"Immediate Future",
	"Past Influence",
	"Conscious Influences",
	"Subconscious Influences",
	"Challenges/Obstacles",
	"Present Situation",
}

const (
	// Size is the number of cards in a reading
	Size = 13
	// ReversedCount is int(0.26 * 13)
	ReversedCount = 3

	separator = ": "
)

// ErrInsufficientCards is returned when a card list cannot fill a reading
var ErrInsufficientCards = errors.New("not enough unique cards for a reading")

// ParseError describes a malformed log or saved-reading line
type ParseError struct {
	Line   int // 1-based, 0 when the error concerns the whole input
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
	return fmt.Sprintf("parse error on line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// Entry is one position of a reading
type Entry struct {
	Position string
	Card     card.Card
}

// Line renders the entry the way it is written to the log
func (e Entry) Line() string {
	return e.Position + separator + e.Card.Label()
}

// Reading is a complete thirteen card spread
type Reading struct {
	ID      uuid.UUID
	DeckID  string
	Entries [Size]Entry
}

// Lines returns the log serialization of the reading
func (r *Reading) Lines() []string {
	lines := make([]string, 0, Size)
	for _, e := range r.Entries {
		lines = append(lines, e.Line())
	}
	return lines
}

// ReversedTotal counts the reversed entries
func (r *Reading) ReversedTotal() int {
	n := 0
	for _, e := range r.Entries {
		if e.Card.Reversed {
			n++
		}
	}
	return n
}

// Generate draws a new reading from a deck's card list.
// Cards are sampled without replacement and ReversedCount position indices are
// picked, also without replacement, to be reversed.
func Generate(deckID string, cards []string, rnd *rand.Rand) (*Reading, error) {
	unique := dedupe(cards)
	if len(unique) < Size {
		return nil, fmt.Errorf("%w: deck %s has %d", ErrInsufficientCards, deckID, len(unique))
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	drawn := rnd.Perm(len(unique))[:Size]
	reversed := make(map[int]bool, ReversedCount)
	for _, idx := range rnd.Perm(Size)[:ReversedCount] {
		reversed[idx] = true
	}

	r := &Reading{ID: uuid.New(), DeckID: deckID}
	for i, position := range Positions {
		r.Entries[i] = Entry{
			Position: position,
			Card:     card.Card{Name: unique[drawn[i]], Reversed: reversed[i]},
		}
	}
	return r, nil
}

// Replay rebuilds a reading from thirteen log lines without drawing anything
func Replay(deckID string, lines []string) (*Reading, error) {
	if len(lines) != Size {
		return nil, &ParseError{Reason: fmt.Sprintf("expected %d lines, got %d", Size, len(lines))}
	}

	r := &Reading{ID: uuid.New(), DeckID: deckID}
	for i, line := range lines {
		entry, err := ParseLine(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = i + 1
			}
			return nil, err
		}
		r.Entries[i] = entry
	}
	return r, nil
}

// ParseLine splits a "<Position>: <Label>" line on its first separator
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	position, label, ok := strings.Cut(strings.TrimSpace(line), separator)
	if !ok {
		return Entry{}, &ParseError{Text: line, Reason: `missing ": " separator`}
	}
	if position == "" || strings.TrimSpace(label) == "" {
		return Entry{}, &ParseError{Text: line, Reason: "empty position or card"}
	}
	return Entry{Position: position, Card: card.ParseLabel(label)}, nil
}

func dedupe(cards []string) []string {
	seen := make(map[string]bool, len(cards))
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
