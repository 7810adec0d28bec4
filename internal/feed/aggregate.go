// Package feed orders board posts by engagement.
//
// Everything in this package is a pure function of its arguments. Metrics are
// recomputed from the supplied events on every call and never cached, so a
// ranking always reflects exactly the snapshot it was given. Re-scanning every
// event per request is fine at the board's scale; a write-invalidated metrics
// cache would be the next step if it stops being fine.
package feed

import "moodboard/internal/models"

// Metrics holds the derived engagement counters of one post.
type Metrics struct {
	ReactionCount int `json:"reaction_count"`
	ReplyCount    int `json:"reply_count"`
	LoveCount     int `json:"love_count"`
	HahaCount     int `json:"haha_count"`
	AngryCount    int `json:"angry_count"`
	SadCount      int `json:"sad_count"`
	// Reactions is the per-type breakdown shown to clients. Never nil.
	Reactions map[models.ReactionType]int `json:"reactions"`
}

func newMetrics() *Metrics {
	return &Metrics{Reactions: make(map[models.ReactionType]int)}
}

func (m *Metrics) addReaction(t models.ReactionType) {
	m.ReactionCount++
	m.Reactions[t]++
	switch t {
	case models.ReactionLove:
		m.LoveCount++
	case models.ReactionHaha:
		m.HahaCount++
	case models.ReactionAngry:
		m.AngryCount++
	case models.ReactionSad:
		m.SadCount++
	}
}

// Aggregate counts reactions and replies per post. Every post in posts gets an
// entry, all-zero when nothing references it. Events naming a post outside
// posts are ignored.
func Aggregate(posts []models.Post, reactions []models.Reaction, replies []models.Reply) map[uint]Metrics {
	acc := make(map[uint]*Metrics, len(posts))
	for _, p := range posts {
		if _, ok := acc[p.ID]; !ok {
			acc[p.ID] = newMetrics()
		}
	}

	for _, r := range reactions {
		if m, ok := acc[r.PostID]; ok {
			m.addReaction(r.Type)
		}
	}
	for _, r := range replies {
		if m, ok := acc[r.PostID]; ok {
			m.ReplyCount++
		}
	}

	out := make(map[uint]Metrics, len(acc))
	for id, m := range acc {
		out[id] = *m
	}
	return out
}
