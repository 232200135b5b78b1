// Package sound plays the pokedex audio cues.
//
// Without a configured player command every cue rings the terminal bell and
// the intro theme is unavailable. With one, cue files are looked up in the
// sound directory and handed to the command as its only argument.
package sound

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// Cue names a short sound effect.
type Cue int

const (
	// CueExclamation accompanies card toggles and scroll jumps.
	CueExclamation Cue = iota
	// CueButton accompanies opening and closing the lid.
	CueButton
)

// IntroFile is the theme started by IntroToggle.
const IntroFile = "pokemon-abertura.mp3"

// File returns the asset name played for c.
func (c Cue) File() string {
	switch c {
	case CueButton:
		return "pokemon-button.mp3"
	default:
		return "pokemon-exclamation.mp3"
	}
}

func (c Cue) String() string {
	switch c {
	case CueButton:
		return "button"
	default:
		return "exclamation"
	}
}

// Options configure a Player.
type Options struct {
	Enabled bool
	// Command plays one file per invocation, e.g. "paplay" or "afplay".
	Command string
	Dir     string
	// Out receives the bell when no command is set. Defaults to os.Stderr.
	Out    io.Writer
	Logger *slog.Logger
}

// Player plays cues and owns the intro process.
type Player struct {
	mu      sync.Mutex
	enabled bool
	command string
	dir     string
	out     io.Writer
	logger  *slog.Logger
	intro   *exec.Cmd
}

// New builds a Player from opts.
func New(opts Options) *Player {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		enabled: opts.Enabled,
		command: opts.Command,
		dir:     opts.Dir,
		out:     out,
		logger:  logger,
	}
}

// Enabled reports whether cues are played.
func (p *Player) Enabled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// SetEnabled turns cues on or off. Disabling stops the intro.
func (p *Player) SetEnabled(enabled bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
	if !enabled {
		p.StopIntro()
	}
}

// Play fires c without blocking. Failures are logged.
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	if p.command == "" {
		if _, err := io.WriteString(p.out, "\a"); err != nil {
			p.logger.Debug("bell failed", "cue", c.String(), "error", err)
		}
		return
	}
	cmd := exec.Command(p.command, filepath.Join(p.dir, c.File()))
	if err := cmd.Start(); err != nil {
		p.logger.Warn("sound cue failed", "cue", c.String(), "error", err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			p.logger.Debug("sound cue exited", "cue", c.String(), "error", err)
		}
	}()
}

// IntroToggle starts the intro theme, or stops it when already playing. It
// returns whether the theme is playing afterwards. The state resets on its
// own when playback ends.
func (p *Player) IntroToggle() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.intro != nil {
		p.stopIntroLocked()
		return false
	}
	if !p.enabled || p.command == "" {
		return false
	}

	cmd := exec.Command(p.command, filepath.Join(p.dir, IntroFile))
	if err := cmd.Start(); err != nil {
		p.logger.Warn("intro theme failed", "error", err)
		return false
	}
	p.intro = cmd
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.intro == cmd {
			p.intro = nil
			if err != nil {
				p.logger.Debug("intro theme exited", "error", err)
			}
		}
	}()
	return true
}

// IntroPlaying reports whether the intro process is alive.
func (p *Player) IntroPlaying() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.intro != nil
}

// StopIntro kills the intro process if one is running.
func (p *Player) StopIntro() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopIntroLocked()
}

func (p *Player) stopIntroLocked() {
	if p.intro == nil {
		return
	}
	if p.intro.Process != nil {
		_ = p.intro.Process.Kill()
	}
	p.intro = nil
}
