// Package companion ties the affective engine to the conversation: it owns the
// session state, talks to the reply model and publishes visual state changes.
package companion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/easeaico/virtual-companion/internal/emotion"
	"github.com/easeaico/virtual-companion/internal/types"
)

// Session is the mutable state of one conversation. It is not safe for
// concurrent use on its own; the Orchestrator guards it.
type Session struct {
	ID        string
	StartedAt time.Time
	Messages  []types.Message
	Moods     *emotion.MoodAggregator

	Committed float64
	Preview   float64
	Drafting  bool
	// Draft is the trimmed text behind Preview.
	Draft    string
	Activity types.Activity
}

// NewSession returns an empty idle session at base intensity.
func NewSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Moods:     emotion.NewMoodAggregator(),
		Committed: emotion.BaseIntensity,
		Preview:   emotion.BaseIntensity,
		Activity:  types.ActivityIdle,
	}
}

// RestoreSession loads messages and moods from store concurrently into a new session.
func RestoreSession(ctx context.Context, store Store) (*Session, error) {
	if store == nil {
		return nil, goerr.New("store is required")
	}

	var (
		messages []types.Message
		moods    []types.MoodEntry
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		loaded, err := store.LoadMessages(egCtx)
		if err != nil {
			return goerr.Wrap(err, "failed to load messages")
		}
		messages = loaded
		return nil
	})
	eg.Go(func() error {
		loaded, err := store.LoadMoods(egCtx)
		if err != nil {
			return goerr.Wrap(err, "failed to load moods")
		}
		moods = loaded
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	session := NewSession()
	session.Messages = messages
	session.Moods.Restore(moods)
	return session, nil
}

// CurrentIntensity is the draft preview while typing, else the committed value.
func (s *Session) CurrentIntensity() float64 {
	if s.Drafting {
		return s.Preview
	}
	return s.Committed
}

func (s *Session) clearDraft() {
	s.Preview = emotion.BaseIntensity
	s.Drafting = false
	s.Draft = ""
}
