package storage

import (
	"time"

	"github.com/easeaico/virtual-companion/internal/types"
)

// messageModel maps to the companion_messages table.
type messageModel struct {
	ID      string `gorm:"primaryKey;size:36"`
	UserID  string `gorm:"index:idx_companion_messages_user_seq,priority:1;size:128;not null"`
	Seq     int    `gorm:"index:idx_companion_messages_user_seq,priority:2;not null"`
	Sender  string `gorm:"size:16;not null"`
	Content string `gorm:"type:text;not null"`
	SentAt  time.Time
}

func (messageModel) TableName() string {
	return "companion_messages"
}

// moodEntryModel maps to the companion_mood_entries table. Seq 0 is the newest entry.
type moodEntryModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"index:idx_companion_moods_user_seq,priority:1;size:128;not null"`
	Seq        int    `gorm:"index:idx_companion_moods_user_seq,priority:2;not null"`
	Level      int    `gorm:"not null"`
	RecordedAt time.Time
}

func (moodEntryModel) TableName() string {
	return "companion_mood_entries"
}

func messageFromModel(model messageModel) types.Message {
	return types.Message{
		ID:        types.MessageID(model.ID),
		Content:   model.Content,
		Timestamp: model.SentAt,
		Sender:    types.Sender(model.Sender),
	}
}

func messageToModel(userID string, seq int, msg types.Message) messageModel {
	return messageModel{
		ID:      string(msg.ID),
		UserID:  userID,
		Seq:     seq,
		Sender:  string(msg.Sender),
		Content: msg.Content,
		SentAt:  msg.Timestamp,
	}
}

func moodFromModel(model moodEntryModel) types.MoodEntry {
	return types.MoodEntry{
		ID:        types.MoodEntryID(model.ID),
		Level:     model.Level,
		Timestamp: model.RecordedAt,
	}
}

func moodToModel(userID string, seq int, entry types.MoodEntry) moodEntryModel {
	return moodEntryModel{
		ID:         string(entry.ID),
		UserID:     userID,
		Seq:        seq,
		Level:      entry.Level,
		RecordedAt: entry.Timestamp,
	}
}
