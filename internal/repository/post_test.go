package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"moodboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Text: "hello board", Mood: models.MoodHappy}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello board", got.Text)
	assert.Equal(t, models.MoodHappy, got.Mood)
	assert.Zero(t, got.Likes)

	_, err = repo.GetByID(ctx, 999)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	older := seedPost(t, db, "older", base.Add(-2*time.Hour))
	newer := seedPost(t, db, "newer", base.Add(-time.Hour))
	tied := seedPost(t, db, "tied", base.Add(-time.Hour))

	posts, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []uint{tied.ID, newer.ID, older.ID}, []uint{posts[0].ID, posts[1].ID, posts[2].ID})

	page, err := repo.List(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, newer.ID, page[0].ID)
}

func TestPostRepository_Increments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	post := seedPost(t, db, "count me", time.Now())

	for range 3 {
		_, err := repo.IncrementLikes(ctx, post.ID)
		require.NoError(t, err)
	}
	updated, err := repo.IncrementReposts(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Likes)
	assert.Equal(t, 1, updated.Reposts)

	_, err = repo.IncrementLikes(ctx, post.ID+100)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	doomed := seedPost(t, db, "doomed", time.Now())
	kept := seedPost(t, db, "kept", time.Now())
	seedReactions(t, db, doomed.ID, models.ReactionLove, 2)
	seedReactions(t, db, kept.ID, models.ReactionFire, 1)
	require.NoError(t, NewReplyRepository(db).Create(ctx, &models.Reply{PostID: doomed.ID, Text: "bye"}))

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	var reactions, replies int64
	require.NoError(t, db.Model(&models.Reaction{}).Count(&reactions).Error)
	require.NoError(t, db.Model(&models.Reply{}).Count(&replies).Error)
	assert.EqualValues(t, 1, reactions)
	assert.Zero(t, replies)

	err := repo.Delete(ctx, doomed.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestPostRepository_DeleteStatements(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "replies" WHERE post_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reactions" WHERE post_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeleteMissingRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "replies"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reactions"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 42)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
