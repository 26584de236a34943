package emotion

import (
	"math"
	"time"

	"github.com/easeaico/virtual-companion/internal/types"
)

const (
	// MoodLogCapacity is the number of check-ins kept, newest first.
	MoodLogCapacity = 50
	// moodWindow is how many recent check-ins the rolling average covers.
	moodWindow = 3
)

// MoodAggregator keeps the bounded check-in log and derives the companion mood.
// It is not safe for concurrent use; the orchestrator serializes access.
type MoodAggregator struct {
	entries []types.MoodEntry
	nowFunc func() time.Time
}

// NewMoodAggregator returns an empty aggregator.
func NewMoodAggregator() *MoodAggregator {
	return &MoodAggregator{nowFunc: time.Now}
}

// Record prepends a new check-in and drops entries beyond MoodLogCapacity.
// Levels outside 1-5 are clamped.
func (m *MoodAggregator) Record(level int) types.MoodEntry {
	entry := types.MoodEntry{
		ID:        types.NewMoodEntryID(),
		Level:     types.ClampMoodLevel(level),
		Timestamp: m.nowFunc(),
	}

	entries := make([]types.MoodEntry, 0, min(len(m.entries)+1, MoodLogCapacity))
	entries = append(entries, entry)
	entries = append(entries, m.entries...)
	if len(entries) > MoodLogCapacity {
		entries = entries[:MoodLogCapacity]
	}
	m.entries = entries
	return entry
}

// CurrentCompanionMood returns the rounded mean of the three newest check-ins,
// or the neutral level when there are none.
func (m *MoodAggregator) CurrentCompanionMood() int {
	if len(m.entries) == 0 {
		return types.NeutralMoodLevel
	}

	window := m.entries
	if len(window) > moodWindow {
		window = window[:moodWindow]
	}

	sum := 0
	for _, entry := range window {
		sum += entry.Level
	}
	avg := math.Round(float64(sum) / float64(len(window)))
	return types.ClampMoodLevel(int(avg))
}

// Latest returns the newest check-in.
func (m *MoodAggregator) Latest() (types.MoodEntry, bool) {
	if len(m.entries) == 0 {
		return types.MoodEntry{}, false
	}
	return m.entries[0], true
}

// Entries returns a copy of the log, newest first.
func (m *MoodAggregator) Entries() []types.MoodEntry {
	out := make([]types.MoodEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of stored check-ins.
func (m *MoodAggregator) Len() int {
	return len(m.entries)
}

// Restore replaces the log with persisted entries, given newest first.
func (m *MoodAggregator) Restore(entries []types.MoodEntry) {
	if len(entries) > MoodLogCapacity {
		entries = entries[:MoodLogCapacity]
	}
	m.entries = make([]types.MoodEntry, len(entries))
	copy(m.entries, entries)
	for i := range m.entries {
		m.entries[i].Level = types.ClampMoodLevel(m.entries[i].Level)
	}
}
