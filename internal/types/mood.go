package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinMoodLevel and MaxMoodLevel bound a check-in level.
	MinMoodLevel = 1
	MaxMoodLevel = 5
	// NeutralMoodLevel is the companion mood before any check-in.
	NeutralMoodLevel = 3
)

type MoodEntryID string

// NewMoodEntryID generates a new unique MoodEntryID
func NewMoodEntryID() MoodEntryID {
	return MoodEntryID(uuid.New().String())
}

// MoodEntry is a single user check-in.
type MoodEntry struct {
	ID        MoodEntryID `json:"id"`
	Level     int         `json:"level"`
	Timestamp time.Time   `json:"timestamp"`
}

// ClampMoodLevel bounds level to 1-5.
func ClampMoodLevel(level int) int {
	switch {
	case level < MinMoodLevel:
		return MinMoodLevel
	case level > MaxMoodLevel:
		return MaxMoodLevel
	default:
		return level
	}
}
