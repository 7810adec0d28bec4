package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"moodboard/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepository_CreateRequiresPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)

	err := repo.Create(context.Background(), &models.Reaction{PostID: 404, Type: models.ReactionHaha})
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReactionRepository_ListByPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	a := seedPost(t, db, "a", time.Now())
	b := seedPost(t, db, "b", time.Now())
	seedReactions(t, db, a.ID, models.ReactionLove, 2)
	seedReactions(t, db, b.ID, models.ReactionAngry, 1)

	all, err := repo.ListByPostIDs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyB, err := repo.ListByPostIDs(ctx, []uint{b.ID})
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
	assert.Equal(t, models.ReactionAngry, onlyB[0].Type)

	none, err := repo.ListByPostIDs(ctx, []uint{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, isForeignKeyViolation(nil))
}
