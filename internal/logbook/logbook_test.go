package logbook

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcanaland/turkokards/internal/reading"
)

func testReading(t *testing.T, seed uint64) *reading.Reading {
	t.Helper()
	cards := make([]string, 22)
	for i := range cards {
		cards[i] = fmt.Sprintf("Major %02d", i)
	}
	r, err := reading.Generate("Rider_Waite", cards, rand.New(rand.NewPCG(seed, seed+1)))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestAppendCreatesLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tarot_log.txt")
	log := New(path)

	if err := log.AppendReading(testReading(t, 1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != reading.Size {
		t.Fatalf("log has %d lines", n)
	}
}

func TestLastReadingReturnsNewest(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "tarot_log.txt"))
	first, second := testReading(t, 1), testReading(t, 2)
	if err := log.AppendReading(first); err != nil {
		t.Fatal(err)
	}
	if err := log.AppendReading(second); err != nil {
		t.Fatal(err)
	}

	got, err := log.LastReading()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, "\n") != strings.Join(second.Lines(), "\n") {
		t.Fatalf("got %v\nwant %v", got, second.Lines())
	}
}

func TestLastReadingShortLog(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "tarot_log.txt"))

	_, err := log.LastReading()
	var short *ShortLogError
	if !errors.As(err, &short) || short.Have != 0 {
		t.Fatalf("expected empty ShortLogError, got %v", err)
	}

	if err := log.AppendLines([]string{"Resolution: The Fool", "Force: The Sun"}); err != nil {
		t.Fatal(err)
	}
	_, err = log.LastReading()
	if !errors.As(err, &short) || short.Have != 2 {
		t.Fatalf("expected ShortLogError{2}, got %v", err)
	}
}

func TestClear(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "tarot_log.txt"))

	existed, err := log.Clear()
	if err != nil || existed {
		t.Fatalf("clear on missing log: %v, %v", existed, err)
	}

	if err := log.AppendReading(testReading(t, 3)); err != nil {
		t.Fatal(err)
	}
	existed, err = log.Clear()
	if err != nil || !existed {
		t.Fatalf("clear on existing log: %v, %v", existed, err)
	}
	if _, err := os.Stat(log.Path()); !os.IsNotExist(err) {
		t.Fatal("log file still present")
	}
}

func TestLastReadingKeepsBlankLines(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "tarot_log.txt"))
	r := testReading(t, 4)
	if err := log.AppendReading(r); err != nil {
		t.Fatal(err)
	}
	if err := log.AppendLines([]string{""}); err != nil {
		t.Fatal(err)
	}

	got, err := log.LastReading()
	if err != nil {
		t.Fatal(err)
	}
	want := append(r.Lines()[1:], "")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}
