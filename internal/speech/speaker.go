// Package speech plays companion replies through an external text-to-speech command.
package speech

import (
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/easeaico/virtual-companion/internal/logging"
)

// CommandSpeaker runs a TTS command such as "say" or "espeak" with the text
// as its last argument. A new Speak interrupts the one in progress.
type CommandSpeaker struct {
	name string
	args []string

	mu      sync.Mutex
	cancel  context.CancelFunc
	running int
	done    chan struct{}
}

// NewCommandSpeaker parses command ("espeak -s 160") into a speaker.
func NewCommandSpeaker(command string) (*CommandSpeaker, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, goerr.New("speech command is empty")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, goerr.Wrap(err, "speech command not found", goerr.V("command", fields[0]))
	}
	return &CommandSpeaker{name: fields[0], args: fields[1:]}, nil
}

// Speak starts playback and returns immediately.
func (s *CommandSpeaker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running++
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	args := append(append([]string(nil), s.args...), text)
	cmd := exec.CommandContext(ctx, s.name, args...)

	go func() {
		defer close(done)
		defer cancel()
		if err := cmd.Run(); err != nil && ctx.Err() == nil {
			logging.Default().Warn("speech command failed", "command", s.name, "error", err)
		}

		s.mu.Lock()
		s.running--
		s.mu.Unlock()
	}()
}

// Stop interrupts playback. It is a no-op when nothing is playing.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Speaking reports whether any playback process is still running.
func (s *CommandSpeaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running > 0
}

// Wait blocks until the latest playback finished.
func (s *CommandSpeaker) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Muted is a Speaker that discards everything.
type Muted struct{}

func (Muted) Speak(string)   {}
func (Muted) Stop()          {}
func (Muted) Speaking() bool { return false }
