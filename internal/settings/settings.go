// Package settings persists the user preferences: card width, dark mode and
// the deck of the latest reading.
//
// The file is INI with a single [Settings] section so files written by earlier
// releases keep loading.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"
)

const (
	section     = "Settings"
	keyWidth    = "card_width"
	keyDarkMode = "dark_mode"
	keyDeck     = "current_deck"

	DefaultCardWidth = 333
)

var ErrInvalidWidth = errors.New("card width must be positive")

// Settings holds the persisted preferences
type Settings struct {
	CardWidth int
	DarkMode  bool
	Deck      string // deck of the latest reading, empty until one is drawn
}

// Defaults returns the preferences used when nothing is stored
func Defaults() Settings {
	return Settings{CardWidth: DefaultCardWidth}
}

// Preset is a named card width
type Preset struct {
	Label string
	Width int
}

// SizePresets are the widths offered in the size menu
var SizePresets = []Preset{
	{"XS", 200}, {"Small", 300}, {"Medium", 400}, {"Large", 500},
	{"XL", 600}, {"700", 700}, {"XXL", 800}, {"900", 900}, {"XXX", 1000},
}

// PresetWidth parses a preset label or a plain number of pixels
func PresetWidth(s string) (int, error) {
	for _, p := range SizePresets {
		if p.Label == s {
			return p.Width, nil
		}
	}
	width, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown size %q", s)
	}
	if width < 1 {
		return 0, ErrInvalidWidth
	}
	return width, nil
}

// Store reads and writes the settings file
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the stored settings. A missing file or bad value falls back to
// the defaults; Load never fails.
func (s *Store) Load() Settings {
	out := Defaults()
	file, err := s.open()
	if err != nil {
		return out
	}
	sec := file.Section(section)
	out.CardWidth = sec.Key(keyWidth).MustInt(DefaultCardWidth)
	if out.CardWidth < 1 {
		out.CardWidth = DefaultCardWidth
	}
	out.DarkMode = sec.Key(keyDarkMode).MustBool(false)
	out.Deck = sec.Key(keyDeck).String()
	return out
}

// SaveCardWidth stores the width and leaves dark_mode as it is on disk
func (s *Store) SaveCardWidth(width int) error {
	if width < 1 {
		return ErrInvalidWidth
	}
	return s.update(keyWidth, strconv.Itoa(width))
}

// SaveDarkMode stores the theme and leaves card_width as it is on disk
func (s *Store) SaveDarkMode(dark bool) error {
	value := "False"
	if dark {
		value = "True"
	}
	return s.update(keyDarkMode, value)
}

// SaveCurrentDeck remembers the deck the latest reading came from
func (s *Store) SaveCurrentDeck(deckID string) error {
	return s.update(keyDeck, deckID)
}

func (s *Store) open() (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{Loose: true}, s.path)
}

func (s *Store) update(key, value string) error {
	file, err := s.open()
	if err != nil {
		// unreadable file: start over rather than refuse to save
		file = ini.Empty()
	}
	file.Section(section).Key(key).SetValue(value)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating settings directory: %w", err)
	}
	if err := file.SaveTo(s.path); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}
	return nil
}
