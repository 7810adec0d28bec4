package repository

import (
	"context"
	"testing"
	"time"

	"moodboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReplyRepository(db)
	ctx := context.Background()
	post := seedPost(t, db, "thread", time.Now())

	first := &models.Reply{PostID: post.ID, Text: "first"}
	second := &models.Reply{PostID: post.ID, Text: "second"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	replies, err := repo.ListByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "first", replies[0].Text)
	assert.Equal(t, "second", replies[1].Text)

	all, err := repo.ListByPostIDs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = repo.Create(ctx, &models.Reply{PostID: post.ID + 1, Text: "orphan"})
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
