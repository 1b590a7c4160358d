package music

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

var ErrNoTrack = errors.New("no track selected")

// Player loops one audio file at a time
type Player interface {
	Play(path string) error
	Stop() error
	Playing() bool
}

// ExecPlayer plays through an external command such as ffplay.
// The track path is appended to Command.
type ExecPlayer struct {
	Command []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewExecPlayer(command []string) *ExecPlayer {
	return &ExecPlayer{Command: command}
}

func (p *ExecPlayer) Play(path string) error {
	if len(p.Command) == 0 {
		return errors.New("no player command configured")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("error opening track: %w", err)
	}
	if err := p.Stop(); err != nil {
		return err
	}

	args := append(append([]string(nil), p.Command[1:]...), path)
	cmd := exec.Command(p.Command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error starting player: %w", err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
		}
		p.mu.Unlock()
	}()
	return nil
}

func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("error stopping player: %w", err)
	}
	return nil
}

func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// Jukebox tracks the selected background track and whether music is on
type Jukebox struct {
	player  Player
	dir     string
	tracks  []string
	current string
	on      bool
}

// NewJukebox selects the first track; music starts off
func NewJukebox(player Player, dir string, tracks []string) *Jukebox {
	j := &Jukebox{player: player, dir: dir, tracks: tracks}
	if len(tracks) > 0 {
		j.current = tracks[0]
	}
	return j
}

func (j *Jukebox) Tracks() []string { return j.tracks }
func (j *Jukebox) Current() string  { return j.current }
func (j *Jukebox) On() bool         { return j.on }

// Toggle switches music on or off and reports the new state
func (j *Jukebox) Toggle() (bool, error) {
	if j.on {
		j.on = false
		return false, j.player.Stop()
	}
	if j.current == "" {
		return false, ErrNoTrack
	}
	if err := j.player.Play(filepath.Join(j.dir, j.current)); err != nil {
		return false, err
	}
	j.on = true
	return true, nil
}

// Select changes the track, restarting playback if music is on
func (j *Jukebox) Select(track string) error {
	known := false
	for _, t := range j.tracks {
		if t == track {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown track %q", track)
	}
	j.current = track
	if !j.on {
		return nil
	}
	return j.player.Play(filepath.Join(j.dir, track))
}

// Next selects the track after the current one
func (j *Jukebox) Next() error {
	if len(j.tracks) == 0 {
		return ErrNoTrack
	}
	idx := 0
	for i, t := range j.tracks {
		if t == j.current {
			idx = (i + 1) % len(j.tracks)
			break
		}
	}
	return j.Select(j.tracks[idx])
}

// Close stops playback
func (j *Jukebox) Close() error {
	j.on = false
	return j.player.Stop()
}
