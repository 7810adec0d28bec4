package service

import (
	"context"
	"log/slog"
	"strings"

	"moodboard/internal/feed"
	"moodboard/internal/models"
	"moodboard/internal/observability"
	"moodboard/internal/repository"
)

type PostService struct {
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
	replyRepo    repository.ReplyRepository
	events       EventPublisher
}

type CreatePostInput struct {
	Text     string `validate:"required,max=280"`
	Mood     string `validate:"omitempty,mood"`
	ImageURL string `validate:"omitempty,max=512"`
}

type CreateReplyInput struct {
	PostID   uint   `validate:"required"`
	Text     string `validate:"required,max=280"`
	ImageURL string `validate:"omitempty,max=512"`
}

type reactionInput struct {
	Type string `validate:"required,reaction"`
}

// NewPostService wires the post service. events may be nil.
func NewPostService(
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
	replyRepo repository.ReplyRepository,
	events EventPublisher,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
		replyRepo:    replyRepo,
		events:       events,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Mood = strings.ToLower(strings.TrimSpace(in.Mood))
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	mood := models.Mood(in.Mood)
	if mood == "" {
		mood = models.MoodNone
	}

	post := &models.Post{
		Text:     in.Text,
		Mood:     mood,
		ImageURL: in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.BoardWritesTotal.WithLabelValues("post").Inc()
	s.publish(ctx, EventPostCreated, feed.Entry{Post: *post, Metrics: feed.Metrics{Reactions: map[models.ReactionType]int{}}})
	return post, nil
}

// GetPost returns a post with its aggregated engagement.
func (s *PostService) GetPost(ctx context.Context, id uint) (*feed.Entry, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return s.withMetrics(ctx, *post)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err)
	}
	observability.BoardWritesTotal.WithLabelValues("delete").Inc()
	s.publish(ctx, EventPostDeleted, PostDeletedPayload{ID: id})
	return nil
}

func (s *PostService) LikePost(ctx context.Context, id uint) (*feed.Entry, error) {
	post, err := s.postRepo.IncrementLikes(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	observability.BoardWritesTotal.WithLabelValues("like").Inc()
	return s.engagementChanged(ctx, *post)
}

func (s *PostService) RepostPost(ctx context.Context, id uint) (*feed.Entry, error) {
	post, err := s.postRepo.IncrementReposts(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	observability.BoardWritesTotal.WithLabelValues("repost").Inc()
	return s.engagementChanged(ctx, *post)
}

// React records a typed reaction and returns the post's refreshed engagement.
func (s *PostService) React(ctx context.Context, postID uint, reactionType string) (*feed.Entry, error) {
	in := reactionInput{Type: strings.ToLower(strings.TrimSpace(reactionType))}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	kind := models.ReactionType(in.Type)

	if err := s.reactionRepo.Create(ctx, &models.Reaction{PostID: postID, Type: kind}); err != nil {
		return nil, wrapRepoError(err)
	}
	observability.BoardWritesTotal.WithLabelValues("reaction").Inc()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return s.engagementChanged(ctx, *post)
}

func (s *PostService) Reply(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	reply := &models.Reply{
		PostID:   in.PostID,
		Text:     in.Text,
		ImageURL: in.ImageURL,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, wrapRepoError(err)
	}

	observability.BoardWritesTotal.WithLabelValues("reply").Inc()
	s.publish(ctx, EventReplyCreated, reply)
	return reply, nil
}

// ListReplies returns a post's replies oldest first.
func (s *PostService) ListReplies(ctx context.Context, postID uint) ([]models.Reply, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, wrapRepoError(err)
	}
	replies, err := s.replyRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}

func (s *PostService) engagementChanged(ctx context.Context, post models.Post) (*feed.Entry, error) {
	entry, err := s.withMetrics(ctx, post)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventPostEngagementUpdated, entry)
	return entry, nil
}

func (s *PostService) withMetrics(ctx context.Context, post models.Post) (*feed.Entry, error) {
	ids := []uint{post.ID}
	reactions, err := s.reactionRepo.ListByPostIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	replies, err := s.replyRepo.ListByPostIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	metrics := feed.Aggregate([]models.Post{post}, reactions, replies)
	return &feed.Entry{Post: post, Metrics: metrics[post.ID]}, nil
}

func (s *PostService) publish(ctx context.Context, eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		observability.Logger.WarnContext(ctx, "failed to publish board event",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
	}
}

// wrapRepoError passes AppErrors through and hides everything else behind INTERNAL_ERROR.
func wrapRepoError(err error) error {
	if models.ErrorCode(err) != "" {
		return err
	}
	return models.NewInternalError(err)
}
