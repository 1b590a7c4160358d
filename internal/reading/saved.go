package reading

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const deckHeader = "Deck"

// Saved is the content of a saved reading file
type Saved struct {
	DeckID string
	Lines  []string
}

// Reading replays the saved lines
func (s *Saved) Reading() (*Reading, error) {
	return Replay(s.DeckID, s.Lines)
}

// WriteSaved writes the "Deck: <id>" header followed by the reading lines
func WriteSaved(w io.Writer, deckID string, lines []string) error {
	if len(lines) != Size {
		return &ParseError{Reason: fmt.Sprintf("expected %d lines, got %d", Size, len(lines))}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s%s\n", deckHeader, separator, deckID)
	for _, line := range lines {
		fmt.Fprintln(bw, strings.TrimRight(line, "\r\n"))
	}
	return bw.Flush()
}

// ParseSaved reads a saved reading file.
// The first line names the deck; the next thirteen lines are the reading.
func ParseSaved(r io.Reader) (*Saved, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, &ParseError{Reason: "empty file"}
	}

	key, deckID, ok := strings.Cut(strings.TrimSpace(lines[0]), separator)
	if !ok || key != deckHeader || deckID == "" {
		return nil, &ParseError{Line: 1, Text: lines[0], Reason: `expected "Deck: <id>" header`}
	}

	body := lines[1:]
	if len(body) != Size {
		return nil, &ParseError{Reason: fmt.Sprintf("expected %d reading lines, got %d", Size, len(body))}
	}
	for i, line := range body {
		if _, err := ParseLine(line); err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = i + 2
			}
			return nil, err
		}
	}
	return &Saved{DeckID: deckID, Lines: body}, nil
}
