// Package seed builds demo boards for development and tests, either from
// generated fake content or from a YAML fixture.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"moodboard/internal/models"
	"moodboard/internal/observability"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how a Factory generates and persists boards.
type Options struct {
	// Seed makes generated content reproducible; zero picks a random seed.
	Seed int64
	// MaxAge bounds how far in the past generated posts are created.
	MaxAge time.Duration
	// MaxReactions and MaxReplies bound per-post engagement.
	MaxReactions int
	MaxReplies   int
	// DryRun builds boards and assigns synthetic IDs without writing.
	DryRun bool
	// Now anchors generated timestamps; zero means time.Now.
	Now time.Time
}

// BoardPost is a post together with the engagement seeded for it.
type BoardPost struct {
	Post      models.Post
	Reactions []models.Reaction
	Replies   []models.Reply
}

// Board is a set of posts ready to be written.
type Board []BoardPost

// Counts returns the number of posts, reactions and replies in the board.
func (b Board) Counts() (posts, reactions, replies int) {
	for _, bp := range b {
		reactions += len(bp.Reactions)
		replies += len(bp.Replies)
	}
	return len(b), reactions, replies
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

var moodChoices = []models.Mood{
	models.MoodNone, models.MoodHappy, models.MoodSad, models.MoodAngry,
	models.MoodChill, models.MoodHyped, models.MoodAnxious,
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.MaxAge <= 0 {
		opts.MaxAge = 12 * time.Hour
	}
	if opts.MaxReactions <= 0 {
		opts.MaxReactions = 12
	}
	if opts.MaxReplies <= 0 {
		opts.MaxReplies = 4
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed), nextID: 1000}
}

func (f *Factory) now() time.Time {
	if f.opts.Now.IsZero() {
		return time.Now().UTC()
	}
	return f.opts.Now.UTC()
}

// since returns a random instant between after and the factory's now.
func (f *Factory) since(after time.Time) time.Time {
	span := f.now().Sub(after)
	if span <= 0 {
		return after
	}
	return after.Add(time.Duration(f.faker.Int64() % int64(span)).Abs())
}

// BuildPost constructs a post with fake text, a random mood and a created_at
// spread over the configured age window. It does not persist it.
func (f *Factory) BuildPost(overrides ...func(*models.Post)) models.Post {
	post := models.Post{
		Text:      clip(f.faker.Sentence(f.faker.Number(3, 18))),
		Mood:      moodChoices[f.faker.Number(0, len(moodChoices)-1)],
		Likes:     f.faker.Number(0, 20),
		Reposts:   f.faker.Number(0, 5),
		CreatedAt: f.since(f.now().Add(-f.opts.MaxAge)),
	}
	if f.faker.Number(1, 5) == 1 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.faker.UUID())
	}
	for _, override := range overrides {
		override(&post)
	}
	return post
}

// BuildBoard generates n posts with random reactions and replies.
func (f *Factory) BuildBoard(n int) Board {
	board := make(Board, 0, n)
	for range n {
		post := f.BuildPost()
		bp := BoardPost{Post: post}

		for range f.faker.Number(0, f.opts.MaxReactions) {
			bp.Reactions = append(bp.Reactions, models.Reaction{
				Type:      models.ReactionTypes[f.faker.Number(0, len(models.ReactionTypes)-1)],
				CreatedAt: f.since(post.CreatedAt),
			})
		}
		for range f.faker.Number(0, f.opts.MaxReplies) {
			bp.Replies = append(bp.Replies, models.Reply{
				Text:      clip(f.faker.HipsterSentence(f.faker.Number(3, 12))),
				CreatedAt: f.since(post.CreatedAt),
			})
		}
		board = append(board, bp)
	}
	return board
}

// Persist writes every post of the board with its reactions and replies in a
// single transaction, filling in the generated IDs. In DryRun mode IDs are
// synthetic and nothing is written.
func (f *Factory) Persist(ctx context.Context, board Board) error {
	if f.opts.DryRun {
		for i := range board {
			f.assignIDs(&board[i])
		}
		return nil
	}

	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range board {
			bp := &board[i]
			if err := tx.Create(&bp.Post).Error; err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			for j := range bp.Reactions {
				bp.Reactions[j].PostID = bp.Post.ID
			}
			for j := range bp.Replies {
				bp.Replies[j].PostID = bp.Post.ID
			}
			if len(bp.Reactions) > 0 {
				if err := tx.CreateInBatches(&bp.Reactions, 100).Error; err != nil {
					return fmt.Errorf("create reactions: %w", err)
				}
			}
			if len(bp.Replies) > 0 {
				if err := tx.CreateInBatches(&bp.Replies, 100).Error; err != nil {
					return fmt.Errorf("create replies: %w", err)
				}
			}
		}
		posts, reactions, replies := board.Counts()
		observability.Logger.InfoContext(ctx, "seeded board",
			slog.Int("posts", posts),
			slog.Int("reactions", reactions),
			slog.Int("replies", replies),
		)
		return nil
	})
}

func (f *Factory) assignIDs(bp *BoardPost) {
	bp.Post.ID = f.synthetic()
	for j := range bp.Reactions {
		bp.Reactions[j].ID = f.synthetic()
		bp.Reactions[j].PostID = bp.Post.ID
	}
	for j := range bp.Replies {
		bp.Replies[j].ID = f.synthetic()
		bp.Replies[j].PostID = bp.Post.ID
	}
}

func (f *Factory) synthetic() uint {
	f.nextID++
	return f.nextID
}

// Clear removes every reply, reaction and post.
func Clear(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Reply{}, &models.Reaction{}, &models.Post{}} {
			if err := tx.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= models.MaxTextLength {
		return s
	}
	return string([]rune(s)[:models.MaxTextLength])
}
