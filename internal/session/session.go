// Package session owns the state of one running application: the selected
// deck, the user's settings, the reading on screen, any in-flight image
// lookups and the background music. Presentation code (CLI or TUI) talks to
// the engine only through a Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/turkokards/internal/config"
	"github.com/arcanaland/turkokards/internal/deck"
	"github.com/arcanaland/turkokards/internal/logbook"
	"github.com/arcanaland/turkokards/internal/logger"
	"github.com/arcanaland/turkokards/internal/music"
	"github.com/arcanaland/turkokards/internal/reading"
	"github.com/arcanaland/turkokards/internal/settings"
)

var (
	// ErrSuperseded is returned by ResolveImages when a newer request replaced it
	ErrSuperseded = errors.New("superseded by a newer reading")
	ErrNoReading  = errors.New("no reading on display")
	ErrNoMusic    = errors.New("music is not configured")
)

// Options wires a session to its collaborators
type Options struct {
	Decks       *deck.Repository
	Log         *logbook.Log
	Settings    *settings.Store
	Jukebox     *music.Jukebox // optional
	Logger      zerolog.Logger
	DefaultDeck string
	Rand        *rand.Rand // nil draws from the runtime's random source
}

// Session is the application state shared by every user action
type Session struct {
	decks   *deck.Repository
	journal *logbook.Log
	store   *settings.Store
	jukebox *music.Jukebox
	log     zerolog.Logger
	rnd     *rand.Rand

	mu       sync.Mutex
	deckID   string
	prefs    settings.Settings
	current  *reading.Reading
	cancel   context.CancelFunc
	renderID uint64
}

// New creates a session and loads the stored settings. The current deck is the
// one the latest reading came from, falling back to DefaultDeck.
func New(opts Options) *Session {
	s := &Session{
		decks:   opts.Decks,
		journal: opts.Log,
		store:   opts.Settings,
		jukebox: opts.Jukebox,
		log:     logger.Component(opts.Logger, "session"),
		rnd:     opts.Rand,
		deckID:  opts.DefaultDeck,
	}
	s.prefs = s.store.Load()
	if s.prefs.Deck != "" {
		if _, err := s.decks.Resolve(s.prefs.Deck); err == nil {
			s.deckID = s.prefs.Deck
		} else {
			s.log.Warn().Err(err).Msg("ignoring stored deck")
		}
	}
	return s
}

// FromConfig builds a session from the application config
func FromConfig(cfg *config.Config, log zerolog.Logger) *Session {
	return New(Options{
		Decks:       deck.FromConfig(cfg),
		Log:         logbook.New(cfg.LogFile),
		Settings:    settings.NewStore(cfg.SettingsFile),
		Jukebox:     music.NewJukebox(music.NewExecPlayer(cfg.PlayerCommand), cfg.MusicDir, cfg.MusicTracks),
		Logger:      log,
		DefaultDeck: cfg.DefaultDeck,
	})
}

func (s *Session) DeckID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deckID
}

func (s *Session) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Current returns the reading on display, or nil
func (s *Session) Current() *reading.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// DeckIDs lists the registered decks
func (s *Session) DeckIDs() []string {
	return s.decks.IDs()
}

// SelectDeck switches the current deck without drawing a reading
func (s *Session) SelectDeck(deckID string) error {
	if _, err := s.decks.Resolve(deckID); err != nil {
		return err
	}
	s.mu.Lock()
	s.deckID = deckID
	s.mu.Unlock()
	return nil
}

// GenerateReading draws a new reading from a deck, logs it and puts it on display
func (s *Session) GenerateReading(deckID string) (*reading.Reading, error) {
	h, err := s.decks.Resolve(deckID)
	if err != nil {
		return nil, err
	}
	cards, err := s.decks.CardList(h)
	if err != nil {
		return nil, err
	}
	r, err := reading.Generate(h.ID, cards, s.rnd)
	if err != nil {
		return nil, err
	}
	if err := s.journal.AppendReading(r); err != nil {
		return nil, err
	}

	s.display(h.ID, r)
	s.log.Debug().Str("deck", h.ID).Str("reading", r.ID.String()).Int("cards", len(cards)).Msg("generated reading")
	return r, nil
}

// OpenSavedReading loads a saved reading file. If it was drawn from another
// deck the session switches to that deck first. The lines are appended to the
// log so the opened reading becomes the latest one.
func (s *Session) OpenSavedReading(path string) (*reading.Reading, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening reading: %w", err)
	}
	saved, err := reading.ParseSaved(file)
	file.Close()
	if err != nil {
		return nil, err
	}

	if saved.DeckID != s.DeckID() {
		if err := s.SelectDeck(saved.DeckID); err != nil {
			return nil, err
		}
		s.log.Debug().Str("deck", saved.DeckID).Msg("switched deck for saved reading")
	}

	r, err := saved.Reading()
	if err != nil {
		return nil, err
	}
	if err := s.journal.AppendLines(saved.Lines); err != nil {
		return nil, err
	}

	s.display(saved.DeckID, r)
	s.log.Debug().Str("path", path).Str("reading", r.ID.String()).Msg("opened saved reading")
	return r, nil
}

// SaveCurrentReading writes the latest logged reading under the current deck.
// A .txt extension is added when missing; the final path is returned.
func (s *Session) SaveCurrentReading(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		path += ".txt"
	}
	lines, err := s.journal.LastReading()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating saves directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error saving reading: %w", err)
	}
	if err := reading.WriteSaved(file, s.DeckID(), lines); err != nil {
		file.Close()
		return "", fmt.Errorf("error saving reading: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error saving reading: %w", err)
	}

	s.log.Debug().Str("path", path).Msg("saved reading")
	return path, nil
}

// ClearLog deletes the reading log and reports whether it existed
func (s *Session) ClearLog() (bool, error) {
	existed, err := s.journal.Clear()
	if err == nil {
		s.log.Debug().Bool("existed", existed).Msg("cleared log")
	}
	return existed, err
}

// SetCardWidth stores a new width and redisplays the latest logged reading
// at that size. The returned reading is nil when the log holds no reading.
func (s *Session) SetCardWidth(width int) (*reading.Reading, error) {
	if err := s.store.SaveCardWidth(width); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.prefs.CardWidth = width
	s.mu.Unlock()

	lines, err := s.journal.LastReading()
	var short *logbook.ShortLogError
	if errors.As(err, &short) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r, err := reading.Replay(s.DeckID(), lines)
	if err != nil {
		return nil, err
	}
	s.display(r.DeckID, r)
	return r, nil
}

// ToggleTheme flips and stores dark mode
func (s *Session) ToggleTheme() (bool, error) {
	dark := !s.Settings().DarkMode
	if err := s.store.SaveDarkMode(dark); err != nil {
		return !dark, err
	}
	s.mu.Lock()
	s.prefs.DarkMode = dark
	s.mu.Unlock()
	return dark, nil
}

// Definition returns the definition text for an entry of the current reading
func (s *Session) Definition(e reading.Entry) (string, error) {
	r := s.Current()
	if r == nil {
		return "", ErrNoReading
	}
	h, err := s.decks.Resolve(r.DeckID)
	if err != nil {
		return "", err
	}
	return s.decks.DefinitionText(h, e.Card.Label())
}

// ToggleMusic turns the background track on or off
func (s *Session) ToggleMusic() (bool, error) {
	if s.jukebox == nil {
		return false, ErrNoMusic
	}
	return s.jukebox.Toggle()
}

// Music reports whether music is on and the selected track
func (s *Session) Music() (bool, string) {
	if s.jukebox == nil {
		return false, ""
	}
	return s.jukebox.On(), s.jukebox.Current()
}

// NextTrack moves to the next background track
func (s *Session) NextTrack() (string, error) {
	if s.jukebox == nil {
		return "", ErrNoMusic
	}
	if err := s.jukebox.Next(); err != nil {
		return "", err
	}
	return s.jukebox.Current(), nil
}

// Dismiss takes the current reading off display and drops pending image lookups
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.current = nil
}

// Close releases everything on display: pending image lookups, the current
// reading and the music.
func (s *Session) Close() error {
	s.Dismiss()
	if s.jukebox != nil {
		return s.jukebox.Close()
	}
	return nil
}

// display puts a reading on screen and remembers its deck for later sessions
func (s *Session) display(deckID string, r *reading.Reading) {
	s.mu.Lock()
	s.supersedeLocked()
	s.deckID = deckID
	s.current = r
	changed := s.prefs.Deck != deckID
	s.prefs.Deck = deckID
	s.mu.Unlock()

	if changed {
		if err := s.store.SaveCurrentDeck(deckID); err != nil {
			s.log.Warn().Err(err).Str("deck", deckID).Msg("could not store current deck")
		}
	}
}

// supersedeLocked cancels the in-flight image lookup, if any
func (s *Session) supersedeLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.renderID++
}

// Images holds the resolved image path for each position; empty means the
// image never appeared.
type Images struct {
	Reading *reading.Reading
	Paths   [reading.Size]string
}

// Missing lists the labels whose image was not found, in position order
func (im *Images) Missing() []string {
	var out []string
	for i, p := range im.Paths {
		if p == "" {
			out = append(out, im.Reading.Entries[i].Card.Label())
		}
	}
	return out
}

// ResolveImages waits for the images of all thirteen cards concurrently.
// Only a lookup for the reading on display runs; any other returns
// ErrSuperseded at once. Displaying a new reading, or a later lookup for the
// same one, cancels it and makes it return ErrSuperseded.
func (s *Session) ResolveImages(ctx context.Context, r *reading.Reading) (*Images, error) {
	h, err := s.decks.Resolve(r.DeckID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	if s.current == nil || s.current.ID != r.ID {
		s.mu.Unlock()
		return nil, ErrSuperseded
	}
	s.supersedeLocked()
	id := s.renderID
	s.cancel = cancel
	s.mu.Unlock()

	out := &Images{Reading: r}
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range r.Entries {
		g.Go(func() error {
			path, err := s.decks.ImagePath(gctx, h, e.Card.Label())
			if errors.Is(err, deck.ErrImageNotFound) {
				s.log.Warn().Str("card", e.Card.Label()).Msg("image not found")
				return nil
			}
			if err != nil {
				return err
			}
			out.Paths[i] = path
			return nil
		})
	}
	err = g.Wait()

	s.mu.Lock()
	stale := s.renderID != id
	if !stale {
		s.cancel = nil
	}
	s.mu.Unlock()

	if stale {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
