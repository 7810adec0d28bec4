package feed

import (
	"slices"
	"time"

	"moodboard/internal/models"
)

// Entry is a ranked post with its derived metrics. Both embedded structs are
// flattened when encoded to JSON.
type Entry struct {
	models.Post
	Metrics
}

// Snapshot is one consistent read of the board.
type Snapshot struct {
	Posts     []models.Post
	Reactions []models.Reaction
	Replies   []models.Reply
}

// Ranker orders snapshots using the strategies of a Registry.
type Ranker struct {
	registry *Registry
}

// NewRanker creates a Ranker. A nil registry selects DefaultRegistry.
func NewRanker(registry *Registry) *Ranker {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Ranker{registry: registry}
}

// Registry returns the strategies the ranker resolves names against.
func (r *Ranker) Registry() *Registry {
	return r.registry
}

// Rank filters snap by the named strategy's window, computes metrics for the
// remaining posts and returns them in strategy order. Unknown names rank with
// the default strategy. The snapshot is not modified.
func (r *Ranker) Rank(snap Snapshot, strategy string, now time.Time) []Entry {
	s := r.registry.Resolve(strategy)

	eligible := make([]models.Post, 0, len(snap.Posts))
	for _, p := range snap.Posts {
		if s.Eligible(p.CreatedAt, now) {
			eligible = append(eligible, p)
		}
	}

	metrics := Aggregate(eligible, snap.Reactions, snap.Replies)
	entries := make([]Entry, len(eligible))
	for i, p := range eligible {
		entries[i] = Entry{Post: p, Metrics: metrics[p.ID]}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return s.Compare(a, b, now)
	})
	return entries
}

// Rank orders posts with the built-in strategies.
func Rank(posts []models.Post, reactions []models.Reaction, replies []models.Reply, strategy string, now time.Time) []Entry {
	return NewRanker(nil).Rank(Snapshot{Posts: posts, Reactions: reactions, Replies: replies}, strategy, now)
}
