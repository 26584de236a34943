package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/easeaico/virtual-companion/internal/types"
)

const (
	orbGlyph  = "●"
	minPulse  = 200 * time.Millisecond
	timestamp = "15:04"
)

var dim = color.New(color.Faint)

// screen draws the avatar orb in the prompt and prints conversation lines
// above it.
type screen struct {
	rl       *readline.Instance
	name     string
	userName string

	mu     sync.Mutex
	state  types.VisualState
	bright bool
}

func newScreen(rl *readline.Instance, name, userName string, initial types.VisualState) *screen {
	s := &screen{
		rl:       rl,
		name:     name,
		userName: userName,
		state:    initial,
		bright:   true,
	}
	rl.SetPrompt(s.prompt())
	return s
}

func (s *screen) out() io.Writer {
	return s.rl.Stdout()
}

// animate redraws the prompt on every state change and toggles the orb
// between its gradient stops twice per animation period.
func (s *screen) animate(ctx context.Context, updates <-chan types.VisualState) {
	timer := time.NewTimer(s.halfPeriod())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case state := <-updates:
			s.mu.Lock()
			s.state = state
			s.mu.Unlock()
		case <-timer.C:
			s.mu.Lock()
			s.bright = !s.bright
			s.mu.Unlock()
			timer.Reset(s.halfPeriod())
		}
		s.rl.SetPrompt(s.prompt())
		s.rl.Refresh()
	}
}

func (s *screen) halfPeriod() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(s.state.AnimationPeriod/2, minPulse)
}

func (s *screen) prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stop := s.state.Primary.From
	if !s.bright {
		stop = s.state.Primary.To
	}
	orb := rgbColor(stop).Sprint(orbGlyph)
	if s.state.Palette == types.PaletteProcessing {
		return fmt.Sprintf("%s %s %s > ", orb, s.name, dim.Sprint("is thinking"))
	}
	return fmt.Sprintf("%s %s > ", orb, s.name)
}

func (s *screen) printMessage(msg types.Message) {
	s.mu.Lock()
	accent := rgbColor(s.state.Secondary.From)
	s.mu.Unlock()

	speaker := s.userName
	if msg.Sender == types.SenderCompanion {
		speaker = accent.Sprint(s.name)
	}
	fmt.Fprintf(s.out(), "%s %s: %s\n", dim.Sprint(msg.Timestamp.Local().Format(timestamp)), speaker, msg.Content)
}

func (s *screen) println(text string) {
	fmt.Fprintln(s.out(), text)
}

func rgbColor(c types.Color) *color.Color {
	return color.RGB(int(c.R), int(c.G), int(c.B))
}

// pushLatest replaces any undelivered state in ch with vs.
func pushLatest(ch chan types.VisualState, vs types.VisualState) {
	for {
		select {
		case ch <- vs:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
