package service

import (
	"context"
	"strconv"
	"time"

	"moodboard/internal/feed"
	"moodboard/internal/models"
	"moodboard/internal/observability"
	"moodboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FeedInput selects a ranked view of the board.
type FeedInput struct {
	Strategy string
	// At is the evaluation time; zero means now.
	At     time.Time
	Limit  int
	Offset int
}

// FeedResult is one ranked page of the board.
type FeedResult struct {
	Strategy string       `json:"strategy"`
	Fallback bool         `json:"fallback"`
	At       time.Time    `json:"at"`
	Total    int          `json:"total"`
	Posts    []feed.Entry `json:"posts"`
}

// StrategyList describes the registered ranking strategies.
type StrategyList struct {
	Default    string   `json:"default"`
	Strategies []string `json:"strategies"`
}

type FeedService struct {
	snapshots repository.SnapshotStore
	ranker    *feed.Ranker
	now       func() time.Time
}

// NewFeedService creates a feed service. A nil ranker uses the built-in strategies.
func NewFeedService(snapshots repository.SnapshotStore, ranker *feed.Ranker) *FeedService {
	if ranker == nil {
		ranker = feed.NewRanker(nil)
	}
	return &FeedService{
		snapshots: snapshots,
		ranker:    ranker,
		now:       time.Now,
	}
}

// Feed loads a snapshot, ranks it with the requested strategy and returns the
// requested page. Limit and offset apply after ranking; a zero limit returns
// every remaining post.
func (s *FeedService) Feed(ctx context.Context, in FeedInput) (*FeedResult, error) {
	if in.Limit < 0 || in.Offset < 0 {
		return nil, models.NewValidationError("limit and offset must not be negative")
	}

	registry := s.ranker.Registry()
	fallback := in.Strategy != "" && !registry.Known(in.Strategy)
	strategy := registry.Resolve(in.Strategy)

	at := in.At
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()

	ctx, span := observability.Tracer.Start(ctx, "feed.rank")
	defer span.End()
	span.SetAttributes(
		attribute.String("feed.strategy", strategy.Name),
		attribute.Bool("feed.fallback", fallback),
		attribute.String("feed.at", at.Format(time.RFC3339)),
	)

	filter := repository.SnapshotFilter{}
	if strategy.Window > 0 {
		filter.Since = at.Add(-strategy.Window)
	}
	snap, err := s.snapshots.Snapshot(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		return nil, models.NewInternalError(err)
	}
	observability.FeedSnapshotPosts.Observe(float64(len(snap.Posts)))

	started := time.Now()
	entries := s.ranker.Rank(snap, strategy.Name, at)
	observability.FeedRankDuration.WithLabelValues(strategy.Name).Observe(time.Since(started).Seconds())
	observability.FeedRequestsTotal.WithLabelValues(strategy.Name, strconv.FormatBool(fallback)).Inc()
	span.SetAttributes(attribute.Int("feed.posts", len(entries)))

	return &FeedResult{
		Strategy: strategy.Name,
		Fallback: fallback,
		At:       at,
		Total:    len(entries),
		Posts:    paginate(entries, in.Limit, in.Offset),
	}, nil
}

// Strategies lists every registered strategy name.
func (s *FeedService) Strategies() StrategyList {
	registry := s.ranker.Registry()
	return StrategyList{
		Default:    registry.Default(),
		Strategies: registry.Names(),
	}
}

func paginate(entries []feed.Entry, limit, offset int) []feed.Entry {
	if offset >= len(entries) {
		return []feed.Entry{}
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}
