package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcanaland/turkokards/internal/config"
	"github.com/arcanaland/turkokards/internal/deck"
	"github.com/arcanaland/turkokards/internal/logbook"
	"github.com/arcanaland/turkokards/internal/reading"
	"github.com/arcanaland/turkokards/internal/settings"
)

// setupLibrary points the XDG dirs at a temp dir and installs two small decks
func setupLibrary(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	if err := run("deck", "init"); err != nil {
		t.Fatalf("deck init: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"Rider_Waite", "iNOVA"} {
		path, err := cfg.DeckPath(id)
		if err != nil {
			t.Fatal(err)
		}
		var names []string
		for i := 0; i < 22; i++ {
			names = append(names, fmt.Sprintf("%s %02d", id, i))
		}
		if err := os.WriteFile(filepath.Join(path, deck.CardListFile), []byte(strings.Join(names, "\n")+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func run(args ...string) error {
	RootCmd.SetArgs(args)
	return RootCmd.ExecuteContext(context.Background())
}

func lastReading(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	lines, err := logbook.New(cfg.LogFile).LastReading()
	if err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestReadSaveOpenRoundTrip(t *testing.T) {
	cfg := setupLibrary(t)

	if err := run("read", "Rider_Waite"); err != nil {
		t.Fatalf("read: %v", err)
	}
	drawn := lastReading(t, cfg)

	if err := run("save", "monday"); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(cfg.SavesDir, "monday.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "Deck: Rider_Waite\n" + strings.Join(drawn, "\n") + "\n"
	if string(data) != want {
		t.Fatalf("saved file:\n%s\nwant:\n%s", data, want)
	}

	if err := run("read"); err != nil {
		t.Fatalf("read default deck: %v", err)
	}
	if got := lastReading(t, cfg); strings.HasPrefix(got[0], "Resolution: Rider_Waite") {
		t.Fatalf("expected a reading from the default deck, got %q", got[0])
	}

	if err := run("open", "monday.txt"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := lastReading(t, cfg); strings.Join(got, "\n") != strings.Join(drawn, "\n") {
		t.Fatalf("log after open:\n%v\nwant:\n%v", got, drawn)
	}
	if got := settings.NewStore(cfg.SettingsFile).Load().Deck; got != "Rider_Waite" {
		t.Fatalf("current deck %q after open", got)
	}

	if err := run("log", "show"); err != nil {
		t.Fatalf("log show: %v", err)
	}
}

func TestPreferenceCommands(t *testing.T) {
	cfg := setupLibrary(t)
	store := settings.NewStore(cfg.SettingsFile)

	tests := []struct {
		args  []string
		check func(settings.Settings) bool
	}{
		{[]string{"size", "Large"}, func(s settings.Settings) bool { return s.CardWidth == 500 }},
		{[]string{"size", "450"}, func(s settings.Settings) bool { return s.CardWidth == 450 }},
		{[]string{"theme"}, func(s settings.Settings) bool { return s.DarkMode }},
		{[]string{"theme"}, func(s settings.Settings) bool { return !s.DarkMode && s.CardWidth == 450 }},
	}
	for _, tt := range tests {
		if err := run(tt.args...); err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if got := store.Load(); !tt.check(got) {
			t.Fatalf("%v: settings %+v", tt.args, got)
		}
	}
}

func TestSizeRedisplaysUnderReadingDeck(t *testing.T) {
	cfg := setupLibrary(t)
	if err := run("read", "Rider_Waite"); err != nil {
		t.Fatal(err)
	}
	before := lastReading(t, cfg)

	if err := run("size", "Small"); err != nil {
		t.Fatalf("size: %v", err)
	}
	if got := lastReading(t, cfg); strings.Join(got, "\n") != strings.Join(before, "\n") {
		t.Fatal("resize changed the log")
	}
	if got := settings.NewStore(cfg.SettingsFile).Load().Deck; got != "Rider_Waite" {
		t.Fatalf("current deck %q after resize", got)
	}
}

func TestLogClear(t *testing.T) {
	cfg := setupLibrary(t)
	if err := run("log", "clear"); err != nil {
		t.Fatalf("clear missing log: %v", err)
	}
	if err := run("read"); err != nil {
		t.Fatal(err)
	}
	if err := run("log", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(cfg.LogFile); !os.IsNotExist(err) {
		t.Fatal("log file still present")
	}
	if err := run("log", "show"); err != nil {
		t.Fatalf("log show on empty log: %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	setupLibrary(t)

	var unknown *deck.UnknownDeckError
	var short *logbook.ShortLogError
	tests := []struct {
		args  []string
		check func(error) bool
	}{
		{[]string{"read", "Rider_Wait"}, func(err error) bool { return errors.As(err, &unknown) }},
		{[]string{"read", "turkokards"}, func(err error) bool { return err != nil }},
		{[]string{"save", "nothing"}, func(err error) bool { return errors.As(err, &short) }},
		{[]string{"open", "missing.txt"}, func(err error) bool { return errors.Is(err, os.ErrNotExist) }},
		{[]string{"size", "huge"}, func(err error) bool { return err != nil }},
	}
	for _, tt := range tests {
		if err := run(tt.args...); !tt.check(err) {
			t.Fatalf("%v: unexpected error %v", tt.args, err)
		}
	}
}

func TestReadRejectsSmallDeck(t *testing.T) {
	cfg := setupLibrary(t)
	path, _ := cfg.DeckPath("playing_dark")
	if err := os.WriteFile(filepath.Join(path, deck.CardListFile), []byte("Ace\nKing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run("read", "playing_dark"); !errors.Is(err, reading.ErrInsufficientCards) {
		t.Fatalf("expected ErrInsufficientCards, got %v", err)
	}
}
