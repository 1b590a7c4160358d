package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setHomes(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := setHomes(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if _, err := os.Stat(GetConfigFilePath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.DefaultDeck != "iNOVA" {
		t.Fatalf("default deck %q", cfg.DefaultDeck)
	}
	if want := filepath.Join(dir, "data", "turkokards", "logs", "tarot_log.txt"); cfg.LogFile != want {
		t.Fatalf("log file %q, want %q", cfg.LogFile, want)
	}
	if cfg.ImagePoll.Attempts != 7 || cfg.ImagePoll.Interval() != 150*time.Millisecond {
		t.Fatalf("unexpected poll policy %+v", cfg.ImagePoll)
	}
	if len(cfg.Decks) != len(DefaultDecks) {
		t.Fatalf("decks %v", cfg.Decks)
	}
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	setHomes(t)
	path := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	data := "default_deck = \"Rider_Waite\"\n\n[image_poll]\nattempts = 0\ninterval_ms = 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultDeck != "Rider_Waite" {
		t.Fatalf("default deck %q", cfg.DefaultDeck)
	}
	if cfg.ImagePoll.Attempts != 1 {
		t.Fatalf("attempts %d, want clamp to 1", cfg.ImagePoll.Attempts)
	}
	if _, ok := cfg.Decks["deviant_dark"]; !ok {
		t.Fatal("default decks missing")
	}
}

func TestSetDefaultDeck(t *testing.T) {
	setHomes(t)
	if err := SetDefaultDeck("playing_dark"); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultDeck != "playing_dark" {
		t.Fatalf("default deck %q", cfg.DefaultDeck)
	}
	if err := SetDefaultDeck("nope"); err == nil {
		t.Fatal("expected error for unregistered deck")
	}
}

func TestDeckPath(t *testing.T) {
	cfg := &Config{DeckLibrary: "/lib", Decks: map[string]string{"a": "A", "b": "/abs/B"}}
	if p, _ := cfg.DeckPath("a"); p != filepath.Join("/lib", "A") {
		t.Fatalf("relative deck path %q", p)
	}
	if p, _ := cfg.DeckPath("b"); p != "/abs/B" {
		t.Fatalf("absolute deck path %q", p)
	}
	if _, err := cfg.DeckPath("c"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSavePath(t *testing.T) {
	cfg := &Config{SavesDir: "/saves"}
	if got := cfg.SavePath("monday.txt"); got != filepath.Join("/saves", "monday.txt") {
		t.Fatalf("bare name: %q", got)
	}
	if got := cfg.SavePath("./monday.txt"); got != "./monday.txt" {
		t.Fatalf("relative path: %q", got)
	}
}
