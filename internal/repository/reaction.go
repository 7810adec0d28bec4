package repository

import (
	"context"
	"log/slog"

	"moodboard/internal/models"
	"moodboard/internal/observability"

	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Reaction, error)
}

type reactionRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db, log: observability.NewRepoLogger("reactions")}
}

// Create appends a reaction. The target post must exist.
func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePost(tx, reaction.PostID); err != nil {
			return err
		}
		return tx.Create(reaction).Error
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.NewNotFoundError("Post", reaction.PostID)
		}
		if models.ErrorCode(err) == "" {
			r.log.LogError(ctx, err, "create")
		}
		return err
	}
	r.log.LogWrite(ctx, "create",
		slog.Uint64("post_id", uint64(reaction.PostID)),
		slog.String("type", string(reaction.Type)),
	)
	return nil
}

// ListByPostIDs returns reactions for the given posts; nil means every post.
func (r *reactionRepository) ListByPostIDs(ctx context.Context, postIDs []uint) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	if postIDs != nil && len(postIDs) == 0 {
		return reactions, nil
	}
	query := r.db.WithContext(ctx).Order("id ASC")
	if postIDs != nil {
		query = query.Where("post_id IN ?", postIDs)
	}
	if err := query.Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// requirePost fails with NOT_FOUND when no post has the given id.
func requirePost(tx *gorm.DB, postID uint) error {
	var count int64
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}
