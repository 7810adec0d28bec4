package repository

import (
	"context"
	"log/slog"

	"moodboard/internal/models"
	"moodboard/internal/observability"

	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	ListByPostID(ctx context.Context, postID uint) ([]models.Reply, error)
	ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Reply, error)
}

type replyRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewReplyRepository creates a new reply repository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db, log: observability.NewRepoLogger("replies")}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePost(tx, reply.PostID); err != nil {
			return err
		}
		return tx.Create(reply).Error
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.NewNotFoundError("Post", reply.PostID)
		}
		if models.ErrorCode(err) == "" {
			r.log.LogError(ctx, err, "create")
		}
		return err
	}
	r.log.LogWrite(ctx, "create",
		slog.Uint64("post_id", uint64(reply.PostID)),
		slog.Uint64("reply_id", uint64(reply.ID)),
	)
	return nil
}

// ListByPostID returns a post's replies oldest first.
func (r *replyRepository) ListByPostID(ctx context.Context, postID uint) ([]models.Reply, error) {
	replies := []models.Reply{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// ListByPostIDs returns replies for the given posts; nil means every post.
func (r *replyRepository) ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Reply, error) {
	replies := []models.Reply{}
	if postIDs != nil && len(postIDs) == 0 {
		return replies, nil
	}
	query := r.db.WithContext(ctx).Order("id ASC")
	if postIDs != nil {
		query = query.Where("post_id IN ?", postIDs)
	}
	if err := query.Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}
