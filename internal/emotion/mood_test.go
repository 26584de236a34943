package emotion_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/easeaico/virtual-companion/internal/emotion"
	"github.com/easeaico/virtual-companion/internal/types"
)

func TestMoodEmptyIsNeutral(t *testing.T) {
	m := emotion.NewMoodAggregator()
	gt.Equal(t, m.CurrentCompanionMood(), 3)
	_, ok := m.Latest()
	gt.False(t, ok)
}

func TestMoodRoundedAverageOfNewestThree(t *testing.T) {
	m := emotion.NewMoodAggregator()
	// recorded oldest to newest: 1, 5, 5 -> log newest first [5,5,1]
	m.Record(1)
	m.Record(5)
	m.Record(5)
	gt.Equal(t, m.CurrentCompanionMood(), 4)

	// a fourth entry pushes the 1 out of the window
	m.Record(2)
	gt.Equal(t, m.CurrentCompanionMood(), 4) // round(12/3)
}

func TestMoodFewerThanThreeEntries(t *testing.T) {
	m := emotion.NewMoodAggregator()
	m.Record(2)
	gt.Equal(t, m.CurrentCompanionMood(), 2)
	m.Record(5)
	gt.Equal(t, m.CurrentCompanionMood(), 4) // round(3.5)
}

func TestMoodRecordPrependsAndStampsEntry(t *testing.T) {
	m := emotion.NewMoodAggregator()
	first := m.Record(2)
	second := m.Record(4)

	gt.NotEqual(t, first.ID, second.ID)
	gt.False(t, second.Timestamp.IsZero())

	latest, ok := m.Latest()
	gt.True(t, ok)
	gt.Equal(t, latest.ID, second.ID)

	entries := m.Entries()
	gt.A(t, entries).Length(2)
	gt.Equal(t, entries[0].Level, 4)
	gt.Equal(t, entries[1].Level, 2)
}

func TestMoodLogIsCapped(t *testing.T) {
	m := emotion.NewMoodAggregator()
	first := m.Record(1)
	for i := 0; i < emotion.MoodLogCapacity-1; i++ {
		m.Record(3)
	}
	gt.Equal(t, m.Len(), emotion.MoodLogCapacity)
	gt.Equal(t, m.Entries()[emotion.MoodLogCapacity-1].ID, first.ID)

	// the 51st entry evicts the oldest
	m.Record(5)
	gt.Equal(t, m.Len(), emotion.MoodLogCapacity)
	for _, e := range m.Entries() {
		gt.NotEqual(t, e.ID, first.ID)
	}
}

func TestMoodRecordClampsLevel(t *testing.T) {
	m := emotion.NewMoodAggregator()
	gt.Equal(t, m.Record(9).Level, types.MaxMoodLevel)
	gt.Equal(t, m.Record(-1).Level, types.MinMoodLevel)
}

func TestMoodRestore(t *testing.T) {
	m := emotion.NewMoodAggregator()
	m.Restore([]types.MoodEntry{
		{ID: "c", Level: 5},
		{ID: "b", Level: 5},
		{ID: "a", Level: 1},
	})
	gt.Equal(t, m.CurrentCompanionMood(), 4)

	latest, ok := m.Latest()
	gt.True(t, ok)
	gt.Equal(t, latest.ID, types.MoodEntryID("c"))
}

func TestMoodInstruction(t *testing.T) {
	gt.Equal(t, emotion.MoodInstruction(3), "")
	gt.S(t, emotion.MoodInstruction(1)).Contains("gentle")
	gt.S(t, emotion.MoodInstruction(5)).Contains("Celebrate")
}
