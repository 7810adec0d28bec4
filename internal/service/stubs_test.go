package service

import (
	"context"
	"sync"

	"moodboard/internal/feed"
	"moodboard/internal/models"
	"moodboard/internal/repository"
)

// memoryBoard is an in-memory stand-in for the post, reaction, reply and snapshot repositories.
type memoryBoard struct {
	mu        sync.Mutex
	nextID    uint
	posts     map[uint]*models.Post
	reactions []models.Reaction
	replies   []models.Reply
	err       error
}

func newMemoryBoard() *memoryBoard {
	return &memoryBoard{posts: map[uint]*models.Post{}}
}

func (b *memoryBoard) id() uint {
	b.nextID++
	return b.nextID
}

type memPosts struct{ *memoryBoard }
type memReactions struct{ *memoryBoard }
type memReplies struct{ *memoryBoard }

var (
	_ repository.PostRepository     = memPosts{}
	_ repository.ReactionRepository = memReactions{}
	_ repository.ReplyRepository    = memReplies{}
	_ repository.SnapshotStore      = (*memoryBoard)(nil)
)

func (r memPosts) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	post.ID = r.id()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r memPosts) GetByID(_ context.Context, id uint) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	cp := *p
	return &cp, nil
}

func (r memPosts) List(_ context.Context, _, _ int) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (r memPosts) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return models.NewNotFoundError("Post", id)
	}
	delete(r.posts, id)
	return nil
}

func (r memPosts) IncrementLikes(_ context.Context, id uint) (*models.Post, error) {
	return r.bump(id, func(p *models.Post) { p.Likes++ })
}

func (r memPosts) IncrementReposts(_ context.Context, id uint) (*models.Post, error) {
	return r.bump(id, func(p *models.Post) { p.Reposts++ })
}

func (r memPosts) bump(id uint, fn func(*models.Post)) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	fn(p)
	cp := *p
	return &cp, nil
}

func (r memReactions) Create(_ context.Context, reaction *models.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[reaction.PostID]; !ok {
		return models.NewNotFoundError("Post", reaction.PostID)
	}
	reaction.ID = r.id()
	r.reactions = append(r.reactions, *reaction)
	return nil
}

func (r memReactions) ListByPostIDs(_ context.Context, postIDs []uint) ([]models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Reaction{}
	for _, re := range r.reactions {
		if postIDs == nil || containsID(postIDs, re.PostID) {
			out = append(out, re)
		}
	}
	return out, nil
}

func (r memReplies) Create(_ context.Context, reply *models.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[reply.PostID]; !ok {
		return models.NewNotFoundError("Post", reply.PostID)
	}
	reply.ID = r.id()
	r.replies = append(r.replies, *reply)
	return nil
}

func (r memReplies) ListByPostID(ctx context.Context, postID uint) ([]models.Reply, error) {
	return r.ListByPostIDs(ctx, []uint{postID})
}

func (r memReplies) ListByPostIDs(_ context.Context, postIDs []uint) ([]models.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Reply{}
	for _, re := range r.replies {
		if postIDs == nil || containsID(postIDs, re.PostID) {
			out = append(out, re)
		}
	}
	return out, nil
}

func (b *memoryBoard) Snapshot(_ context.Context, filter repository.SnapshotFilter) (feed.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return feed.Snapshot{}, b.err
	}
	snap := feed.Snapshot{Posts: []models.Post{}}
	for _, p := range b.posts {
		if filter.Since.IsZero() || !p.CreatedAt.Before(filter.Since) {
			snap.Posts = append(snap.Posts, *p)
		}
	}
	snap.Reactions = append([]models.Reaction{}, b.reactions...)
	snap.Replies = append([]models.Reply{}, b.replies...)
	return snap, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type publishedEvent struct {
	Type    string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
