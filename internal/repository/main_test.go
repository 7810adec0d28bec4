package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"moodboard/internal/database"
	"moodboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory sqlite database with the board schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func seedPost(t *testing.T, db *gorm.DB, text string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{Text: text, Mood: models.MoodNone, CreatedAt: createdAt.UTC()}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func seedReactions(t *testing.T, db *gorm.DB, postID uint, kind models.ReactionType, n int) {
	t.Helper()
	repo := NewReactionRepository(db)
	for range n {
		require.NoError(t, repo.Create(context.Background(), &models.Reaction{PostID: postID, Type: kind}))
	}
}
