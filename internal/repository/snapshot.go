package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"moodboard/internal/feed"
	"moodboard/internal/models"

	"gorm.io/gorm"
)

// SnapshotFilter narrows a snapshot. A zero Since loads the whole board.
type SnapshotFilter struct {
	Since time.Time
}

// SnapshotStore reads consistent point-in-time copies of the board.
type SnapshotStore interface {
	Snapshot(ctx context.Context, filter SnapshotFilter) (feed.Snapshot, error)
}

type snapshotStore struct {
	db *gorm.DB
}

// NewSnapshotStore creates a snapshot store over db.
func NewSnapshotStore(db *gorm.DB) SnapshotStore {
	return &snapshotStore{db: db}
}

// Snapshot loads posts and the reactions and replies that belong to them inside a
// single read transaction so every record reflects the same point in time.
func (s *snapshotStore) Snapshot(ctx context.Context, filter SnapshotFilter) (feed.Snapshot, error) {
	snap := feed.Snapshot{
		Posts:     []models.Post{},
		Reactions: []models.Reaction{},
		Replies:   []models.Reply{},
	}

	var opts *sql.TxOptions
	if s.db.Dialector.Name() == "postgres" {
		opts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := tx.Order("id ASC")
		if !filter.Since.IsZero() {
			posts = posts.Where("created_at >= ?", filter.Since.UTC())
		}
		if err := posts.Find(&snap.Posts).Error; err != nil {
			return fmt.Errorf("load posts: %w", err)
		}

		reactions := tx.Order("id ASC")
		replies := tx.Order("id ASC")
		if !filter.Since.IsZero() {
			ids := tx.Model(&models.Post{}).Select("id").Where("created_at >= ?", filter.Since.UTC())
			reactions = reactions.Where("post_id IN (?)", ids)
			replies = replies.Where("post_id IN (?)", ids)
		}
		if err := reactions.Find(&snap.Reactions).Error; err != nil {
			return fmt.Errorf("load reactions: %w", err)
		}
		if err := replies.Find(&snap.Replies).Error; err != nil {
			return fmt.Errorf("load replies: %w", err)
		}
		return nil
	}, opts)
	if err != nil {
		return feed.Snapshot{}, err
	}
	return snap, nil
}
