package companion_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/easeaico/virtual-companion/internal/companion"
	"github.com/easeaico/virtual-companion/internal/emotion"
	"github.com/easeaico/virtual-companion/internal/types"
)

type failingStore struct {
	fakeStore
}

func (s *failingStore) LoadMoods(ctx context.Context) ([]types.MoodEntry, error) {
	return nil, goerr.New("connection refused")
}

func TestNewSessionDefaults(t *testing.T) {
	s := companion.NewSession()
	gt.NotEqual(t, s.ID, "")
	gt.Equal(t, s.Committed, emotion.BaseIntensity)
	gt.Equal(t, s.Preview, emotion.BaseIntensity)
	gt.Equal(t, s.Activity, types.ActivityIdle)
	gt.Equal(t, s.Moods.CurrentCompanionMood(), types.NeutralMoodLevel)
	gt.Equal(t, s.CurrentIntensity(), emotion.BaseIntensity)
}

func TestRestoreSession(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		messages: []types.Message{
			types.NewMessage(types.SenderUser, "hello", now.Add(-time.Minute)),
			types.NewMessage(types.SenderCompanion, "hi!", now),
		},
		moods: []types.MoodEntry{
			{ID: types.NewMoodEntryID(), Level: 5, Timestamp: now},
			{ID: types.NewMoodEntryID(), Level: 4, Timestamp: now.Add(-time.Hour)},
			{ID: types.NewMoodEntryID(), Level: 4, Timestamp: now.Add(-2 * time.Hour)},
			{ID: types.NewMoodEntryID(), Level: 1, Timestamp: now.Add(-3 * time.Hour)},
		},
	}

	s, err := companion.RestoreSession(context.Background(), store)
	gt.NoError(t, err)
	gt.A(t, s.Messages).Length(2)
	gt.Equal(t, s.Messages[0].Content, "hello")
	gt.Equal(t, s.Moods.Len(), 4)
	gt.Equal(t, s.Moods.CurrentCompanionMood(), 4)
	gt.Equal(t, s.Committed, emotion.BaseIntensity)
}

func TestRestoreSessionError(t *testing.T) {
	_, err := companion.RestoreSession(context.Background(), &failingStore{})
	gt.Error(t, err)

	_, err = companion.RestoreSession(context.Background(), nil)
	gt.Error(t, err)
}
