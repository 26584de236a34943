package companion

import (
	"context"

	"github.com/easeaico/virtual-companion/internal/types"
)

// Store persists whole collections; every save replaces what was stored before.
type Store interface {
	// LoadMessages returns the conversation oldest first.
	LoadMessages(ctx context.Context) ([]types.Message, error)
	SaveMessages(ctx context.Context, messages []types.Message) error
	// LoadMoods returns mood entries newest first.
	LoadMoods(ctx context.Context) ([]types.MoodEntry, error)
	SaveMoods(ctx context.Context, moods []types.MoodEntry) error
}

// ReplyGenerator produces the companion's next line for a rendered prompt.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, promptContext string) (string, error)
}

// Speaker plays replies aloud. Speak must not block on playback.
type Speaker interface {
	Speak(text string)
	Stop()
	Speaking() bool
}
