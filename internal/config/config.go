package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	DefaultDeck   string            `toml:"default_deck"`
	DeckLibrary   string            `toml:"deck_library"`
	LogFile       string            `toml:"log_file"`
	SettingsFile  string            `toml:"settings_file"`
	SavesDir      string            `toml:"saves_dir"`
	MusicDir      string            `toml:"music_dir"`
	MusicTracks   []string          `toml:"music_tracks"`
	PlayerCommand []string          `toml:"player_command"`
	Decks         map[string]string `toml:"decks"`
	ImagePoll     ImagePoll         `toml:"image_poll"`
}

// ImagePoll controls how long card image lookups wait for a file to appear
type ImagePoll struct {
	Attempts   int `toml:"attempts"`
	IntervalMS int `toml:"interval_ms"`
}

// Interval returns the pause between attempts
func (p ImagePoll) Interval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}

// DefaultDecks maps the bundled deck ids to their folders in the deck library
var DefaultDecks = map[string]string{
	"iNOVA":                 "iNOVA",
	"turkokards":            "turkokards",
	"Rider_Waite":           "Rider_Waite",
	"playing_dark_extended": "playing_dark_extended",
	"playing_dark":          "playing_dark",
	"deviant_dark":          "deviant_dark",
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDataDir returns the application's data directory
func GetDataDir() string {
	return filepath.Join(GetXDGDataHome(), "turkokards")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "turkokards", "config.toml")
}

// Default returns the configuration written on first run
func Default() *Config {
	dataDir := GetDataDir()
	decks := make(map[string]string, len(DefaultDecks))
	for id, folder := range DefaultDecks {
		decks[id] = folder
	}
	return &Config{
		DefaultDeck:   "iNOVA",
		DeckLibrary:   filepath.Join(dataDir, "decks"),
		LogFile:       filepath.Join(dataDir, "logs", "tarot_log.txt"),
		SettingsFile:  filepath.Join(GetXDGConfigHome(), "turkokards", "settings.ini"),
		SavesDir:      filepath.Join(dataDir, "saves"),
		MusicDir:      filepath.Join(dataDir, "music"),
		MusicTracks:   []string{"background.flac", "background_01.flac", "background_02.flac"},
		PlayerCommand: []string{"ffplay", "-nodisp", "-loglevel", "quiet", "-loop", "0"},
		Decks:         decks,
		ImagePoll:     ImagePoll{Attempts: 7, IntervalMS: 150},
	}
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	// Start from defaults so keys missing from an older file keep working
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if len(config.Decks) == 0 {
		config.Decks = Default().Decks
	}
	if config.ImagePoll.Attempts < 1 {
		config.ImagePoll.Attempts = 1
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// DeckPath returns the directory of a registered deck
func (c *Config) DeckPath(deckID string) (string, error) {
	folder, ok := c.Decks[deckID]
	if !ok {
		return "", fmt.Errorf("deck not registered: %s", deckID)
	}
	if filepath.IsAbs(folder) {
		return folder, nil
	}
	return filepath.Join(c.DeckLibrary, folder), nil
}

// SavePath places a bare file name in the saves directory
func (c *Config) SavePath(name string) string {
	if filepath.Base(name) == name {
		return filepath.Join(c.SavesDir, name)
	}
	return name
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckID string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	if _, ok := config.Decks[deckID]; !ok {
		return fmt.Errorf("deck not registered: %s", deckID)
	}

	config.DefaultDeck = deckID
	return writeConfig(config)
}
