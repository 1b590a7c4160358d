package reading

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
)

func deckOf(n int) []string {
	cards := make([]string, n)
	for i := range cards {
		cards[i] = fmt.Sprintf("Card %02d", i)
	}
	return cards
}

func TestGenerateShape(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	cards := deckOf(22)
	for i := 0; i < 100; i++ {
		r, err := Generate("Rider_Waite", cards, rnd)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		seen := map[string]bool{}
		for j, e := range r.Entries {
			if e.Position != Positions[j] {
				t.Fatalf("entry %d position %q, want %q", j, e.Position, Positions[j])
			}
			if seen[e.Card.Name] {
				t.Fatalf("duplicate card %q in reading", e.Card.Name)
			}
			seen[e.Card.Name] = true
		}
		if got := r.ReversedTotal(); got != ReversedCount {
			t.Fatalf("reversed count %d, want %d", got, ReversedCount)
		}
	}
}

func TestGenerateVariesAcrossCalls(t *testing.T) {
	cards := deckOf(78)
	a, _ := Generate("iNOVA", cards, nil)
	b, _ := Generate("iNOVA", cards, nil)
	if strings.Join(a.Lines(), "\n") == strings.Join(b.Lines(), "\n") {
		t.Fatal("two unseeded readings were identical")
	}
}

func TestGenerateInsufficientCards(t *testing.T) {
	cards := append(deckOf(12), "Card 00", "", "Card 01")
	_, err := Generate("tiny", cards, rand.New(rand.NewPCG(3, 4)))
	if !errors.Is(err, ErrInsufficientCards) {
		t.Fatalf("expected ErrInsufficientCards, got %v", err)
	}
}

func TestReplayRoundTrip(t *testing.T) {
	r, err := Generate("turkokards", deckOf(30), rand.New(rand.NewPCG(5, 6)))
	if err != nil {
		t.Fatal(err)
	}
	back, err := Replay("turkokards", r.Lines())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	for i := range r.Entries {
		want, got := r.Entries[i], back.Entries[i]
		if want.Position != got.Position || want.Card.Label() != got.Card.Label() || want.Card.Reversed != got.Card.Reversed {
			t.Fatalf("entry %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestReplayErrors(t *testing.T) {
	good := make([]string, Size)
	for i := range good {
		good[i] = Positions[i] + ": The Fool"
	}

	if _, err := Replay("x", good[:12]); err == nil {
		t.Fatal("expected error for 12 lines")
	}

	bad := append([]string(nil), good...)
	bad[4] = "Hopes and Fears - The Tower"
	_, err := Replay("x", bad)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Line != 5 {
		t.Fatalf("error line %d, want 5", pe.Line)
	}
}

func TestParseLineSplitsOnFirstSeparator(t *testing.T) {
	e, err := ParseLine("Outcome: Card: With Colon reversed\n")
	if err != nil {
		t.Fatal(err)
	}
	if e.Position != "Outcome" || e.Card.Name != "Card: With Colon" || !e.Card.Reversed {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestSavedRoundTrip(t *testing.T) {
	r, _ := Generate("deviant_dark", deckOf(20), rand.New(rand.NewPCG(7, 8)))
	var buf bytes.Buffer
	if err := WriteSaved(&buf, r.DeckID, r.Lines()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Deck: deviant_dark\n") {
		t.Fatalf("missing header: %q", buf.String())
	}
	saved, err := ParseSaved(&buf)
	if err != nil {
		t.Fatalf("parse saved: %v", err)
	}
	if saved.DeckID != "deviant_dark" {
		t.Fatalf("deck id %q", saved.DeckID)
	}
	back, err := saved.Reading()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(back.Lines(), "\n") != strings.Join(r.Lines(), "\n") {
		t.Fatal("saved reading did not round trip")
	}
}

func TestParseSavedRejectsBadHeader(t *testing.T) {
	var b strings.Builder
	b.WriteString("iNOVA\n")
	for _, p := range Positions {
		b.WriteString(p + ": The Sun\n")
	}
	if _, err := ParseSaved(strings.NewReader(b.String())); err == nil {
		t.Fatal("expected header error")
	}
}
