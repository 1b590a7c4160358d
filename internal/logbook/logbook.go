package logbook

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/turkokards/internal/reading"
)

// ShortLogError is returned when the log holds less than one full reading
type ShortLogError struct {
	Have int
}

func (e *ShortLogError) Error() string {
	return fmt.Sprintf("log has %d lines, need %d for a reading", e.Have, reading.Size)
}

// Log is the append-only record of readings. Its last thirteen lines are
// always the most recent reading.
type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

func (l *Log) Path() string { return l.path }

// AppendReading writes the reading's thirteen lines
func (l *Log) AppendReading(r *reading.Reading) error {
	return l.AppendLines(r.Lines())
}

// AppendLines appends raw lines, creating the log if needed
func (l *Log) AppendLines(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("error creating log directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening log: %w", err)
	}

	w := bufio.NewWriter(file)
	for _, line := range lines {
		w.WriteString(strings.TrimRight(line, "\r\n"))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("error writing log: %w", err)
	}
	return file.Close()
}

// LastReading returns the final thirteen lines of the log
func (l *Log) LastReading() ([]string, error) {
	file, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &ShortLogError{}
	}
	if err != nil {
		return nil, fmt.Errorf("error opening log: %w", err)
	}
	defer file.Close()

	// ring of the last reading.Size lines, blank ones included
	var ring [reading.Size]string
	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		ring[count%reading.Size] = scanner.Text()
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log: %w", err)
	}
	if count < reading.Size {
		return nil, &ShortLogError{Have: count}
	}

	out := make([]string, 0, reading.Size)
	for i := 0; i < reading.Size; i++ {
		out = append(out, ring[(count+i)%reading.Size])
	}
	return out, nil
}

// Clear deletes the log file and reports whether there was one
func (l *Log) Clear() (bool, error) {
	err := os.Remove(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error clearing log: %w", err)
	}
	return true, nil
}
