package deck

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/arcanaland/turkokards/internal/card"
	"github.com/arcanaland/turkokards/internal/config"
)

// Files and directories inside a deck folder
const (
	CardListFile   = "cardslist.txt"
	ImagesDir      = "card_images"
	DefinitionsDir = "card_definitions"
	ImageExt       = ".jpg"
	DefinitionExt  = ".txt"
)

var (
	ErrEmptyList          = errors.New("card list is empty")
	ErrImageNotFound      = errors.New("image not found")
	ErrDefinitionNotFound = errors.New("definition not found")
)

// UnknownDeckError is returned when a deck id is not registered
type UnknownDeckError struct {
	ID          string
	Suggestions []string
}

func (e *UnknownDeckError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown deck %q (did you mean %s?)", e.ID, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("unknown deck %q", e.ID)
}

// IOError wraps a failed read of a deck file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("error %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// PollPolicy bounds the wait for a card image to appear on disk
type PollPolicy struct {
	Attempts int
	Interval time.Duration
}

// DefaultPollPolicy checks seven times, 150ms apart
var DefaultPollPolicy = PollPolicy{Attempts: 7, Interval: 150 * time.Millisecond}

// Handle is a resolved deck
type Handle struct {
	ID   string
	Path string
}

// Repository resolves deck ids to their folders
type Repository struct {
	decks map[string]string
	poll  PollPolicy
}

// NewRepository creates a repository over a set of deck id -> directory entries
func NewRepository(decks map[string]string, poll PollPolicy) *Repository {
	if poll.Attempts < 1 {
		poll.Attempts = 1
	}
	registry := make(map[string]string, len(decks))
	for id, dir := range decks {
		registry[id] = dir
	}
	return &Repository{decks: registry, poll: poll}
}

// FromConfig builds a repository from the registered decks of a config
func FromConfig(cfg *config.Config) *Repository {
	decks := make(map[string]string, len(cfg.Decks))
	for id := range cfg.Decks {
		path, err := cfg.DeckPath(id)
		if err != nil {
			continue
		}
		decks[id] = path
	}
	return NewRepository(decks, PollPolicy{
		Attempts: cfg.ImagePoll.Attempts,
		Interval: cfg.ImagePoll.Interval(),
	})
}

// IDs returns the registered deck ids in sorted order
func (r *Repository) IDs() []string {
	ids := make([]string, 0, len(r.decks))
	for id := range r.decks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve looks up a registered deck
func (r *Repository) Resolve(deckID string) (*Handle, error) {
	path, ok := r.decks[deckID]
	if !ok {
		return nil, &UnknownDeckError{ID: deckID, Suggestions: r.suggest(deckID)}
	}
	return &Handle{ID: deckID, Path: path}, nil
}

func (r *Repository) suggest(deckID string) []string {
	if deckID == "" {
		return nil
	}
	var out []string
	for _, m := range fuzzy.Find(deckID, r.IDs()) {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// CardList reads the deck's card names, one per line.
// Blank lines and repeated names are dropped.
func (r *Repository) CardList(h *Handle) ([]string, error) {
	path := filepath.Join(h.Path, CardListFile)
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "opening", Path: path, Err: err}
	}
	defer file.Close()

	var cards []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cards = append(cards, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, &IOError{Op: "reading", Path: path, Err: err}
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyList, path)
	}
	return cards, nil
}

// ImageFile returns where the image for a card label is expected
func ImageFile(h *Handle, label string) string {
	return filepath.Join(h.Path, ImagesDir, card.FileStem(label)+ImageExt)
}

// DefinitionFile returns where the definition for a card label is expected
func DefinitionFile(h *Handle, label string) string {
	return filepath.Join(h.Path, DefinitionsDir, card.FileStem(label)+DefinitionExt)
}

// ImagePath waits for the card's image to exist.
// Images may still be being written by another process, so the check is
// repeated according to the poll policy before giving up.
func (r *Repository) ImagePath(ctx context.Context, h *Handle, label string) (string, error) {
	path := ImageFile(h, label)

	for attempt := 1; ; attempt++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		if attempt >= r.poll.Attempts {
			break
		}
		timer := time.NewTimer(r.poll.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "", fmt.Errorf("%w: %s", ErrImageNotFound, label)
}

// DefinitionText reads the card's definition
func (r *Repository) DefinitionText(h *Handle, label string) (string, error) {
	path := DefinitionFile(h, label)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrDefinitionNotFound, label)
	}
	if err != nil {
		return "", &IOError{Op: "reading", Path: path, Err: err}
	}
	return string(data), nil
}
