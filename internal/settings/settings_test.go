package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "settings.ini"))
	if got := s.Load(); got != Defaults() {
		t.Fatalf("Load() = %+v, want defaults", got)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	data := "[Settings]\ncard_width = wide\ndark_mode = maybe\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path).Load(); got != Defaults() {
		t.Fatalf("Load() = %+v, want defaults", got)
	}
}

func TestLoadLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tarot_config")
	data := "[Settings]\ncard_width = 600\ndark_mode = True\n\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	got := NewStore(path).Load()
	if got.CardWidth != 600 || !got.DarkMode {
		t.Fatalf("Load() = %+v", got)
	}
}

func TestSavePreservesOtherKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.ini")
	s := NewStore(path)

	if err := s.SaveDarkMode(true); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCardWidth(500); err != nil {
		t.Fatal(err)
	}
	got := s.Load()
	if got.CardWidth != 500 || !got.DarkMode {
		t.Fatalf("Load() = %+v", got)
	}

	if err := s.SaveDarkMode(false); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); got.CardWidth != 500 || got.DarkMode {
		t.Fatalf("Load() = %+v", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[Settings]") || !strings.Contains(string(data), "False") {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
}

func TestSaveCardWidthRejectsNonPositive(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "settings.ini"))
	if err := s.SaveCardWidth(0); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
}

func TestPresetWidth(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"XS", 200, false},
		{"XXX", 1000, false},
		{"450", 450, false},
		{"-3", 0, true},
		{"huge", 0, true},
	}
	for _, tt := range tests {
		got, err := PresetWidth(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("PresetWidth(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestSaveCurrentDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	s := NewStore(path)
	if err := s.SaveCardWidth(600); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCurrentDeck("Rider_Waite"); err != nil {
		t.Fatal(err)
	}

	got := NewStore(path).Load()
	if got.Deck != "Rider_Waite" || got.CardWidth != 600 {
		t.Fatalf("Load() = %+v", got)
	}
}
