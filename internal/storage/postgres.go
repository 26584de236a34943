package storage

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/easeaico/virtual-companion/internal/types"
)

const insertBatchSize = 100

// Postgres stores one user's conversation and mood log in PostgreSQL.
type Postgres struct {
	db     *gorm.DB
	userID string
}

// OpenPostgres connects to databaseURL and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL, userID string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, goerr.New("database URL is required")
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open gorm database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get sql db")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, goerr.Wrap(err, "failed to ping database")
	}

	return NewPostgres(db, userID), nil
}

// NewPostgres wraps an open gorm handle.
func NewPostgres(db *gorm.DB, userID string) *Postgres {
	return &Postgres{db: db, userID: userID}
}

// Migrate creates or updates the companion tables.
func (p *Postgres) Migrate(ctx context.Context) error {
	if err := p.db.WithContext(ctx).AutoMigrate(&messageModel{}, &moodEntryModel{}); err != nil {
		return goerr.Wrap(err, "failed to migrate companion tables")
	}
	return nil
}

func (p *Postgres) DB() *gorm.DB {
	return p.db
}

func (p *Postgres) LoadMessages(ctx context.Context) ([]types.Message, error) {
	var records []messageModel
	if err := p.db.WithContext(ctx).
		Where("user_id = ?", p.userID).
		Order("seq ASC").
		Find(&records).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to query messages", goerr.V("user_id", p.userID))
	}

	results := make([]types.Message, 0, len(records))
	for _, record := range records {
		results = append(results, messageFromModel(record))
	}
	return results, nil
}

func (p *Postgres) SaveMessages(ctx context.Context, messages []types.Message) error {
	records := make([]messageModel, 0, len(messages))
	for i, msg := range messages {
		records = append(records, messageToModel(p.userID, i, msg))
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", p.userID).Delete(&messageModel{}).Error; err != nil {
			return goerr.Wrap(err, "failed to clear messages")
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
			return goerr.Wrap(err, "failed to insert messages")
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save messages", goerr.V("user_id", p.userID), goerr.V("count", len(records)))
	}
	return nil
}

func (p *Postgres) LoadMoods(ctx context.Context) ([]types.MoodEntry, error) {
	var records []moodEntryModel
	if err := p.db.WithContext(ctx).
		Where("user_id = ?", p.userID).
		Order("seq ASC").
		Find(&records).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to query mood entries", goerr.V("user_id", p.userID))
	}

	results := make([]types.MoodEntry, 0, len(records))
	for _, record := range records {
		results = append(results, moodFromModel(record))
	}
	return results, nil
}

func (p *Postgres) SaveMoods(ctx context.Context, moods []types.MoodEntry) error {
	records := make([]moodEntryModel, 0, len(moods))
	for i, entry := range moods {
		records = append(records, moodToModel(p.userID, i, entry))
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", p.userID).Delete(&moodEntryModel{}).Error; err != nil {
			return goerr.Wrap(err, "failed to clear mood entries")
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
			return goerr.Wrap(err, "failed to insert mood entries")
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save mood entries", goerr.V("user_id", p.userID), goerr.V("count", len(records)))
	}
	return nil
}

func (p *Postgres) Close() error {
	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get sql db")
	}
	if err := sqlDB.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}
