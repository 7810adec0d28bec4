package feed

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Strategy names.
const (
	Trending      = "trending"
	New           = "new"
	Rising        = "rising"
	Top           = "top"
	Best          = "best"
	Hot           = "hot"
	Controversial = "controversial"
)

// DefaultStrategy is used for empty or unknown strategy names.
const DefaultStrategy = Trending

const (
	risingWindow = 2 * time.Hour
	hotWindow    = 6 * time.Hour

	// minAgeHours floors the decay denominator for posts created at or after
	// the evaluation instant.
	minAgeHours = 1.0 / 3600
)

// Strategy is a named ranking order with an optional age window.
type Strategy struct {
	Name string
	// Window drops posts older than this before scoring. Zero keeps every post.
	Window time.Duration
	// Compare returns a negative number when a ranks before b. It must be a
	// total order over posts with distinct IDs.
	Compare func(a, b Entry, now time.Time) int
}

// Eligible reports whether a post created at createdAt is inside the window at now.
func (s Strategy) Eligible(createdAt time.Time, now time.Time) bool {
	if s.Window <= 0 {
		return true
	}
	return now.Sub(createdAt) <= s.Window
}

// Registry maps strategy names to strategies.
type Registry struct {
	strategies map[string]Strategy
	fallback   string
}

// NewRegistry builds a registry that resolves unknown names to fallback.
// It panics if fallback is not among strategies.
func NewRegistry(fallback string, strategies ...Strategy) *Registry {
	r := &Registry{
		strategies: make(map[string]Strategy, len(strategies)),
		fallback:   fallback,
	}
	for _, s := range strategies {
		r.strategies[normalizeName(s.Name)] = s
	}
	if _, ok := r.strategies[normalizeName(fallback)]; !ok {
		panic(fmt.Sprintf("feed: fallback strategy %q is not registered", fallback))
	}
	return r
}

// Resolve returns the strategy registered under name, or the fallback.
func (r *Registry) Resolve(name string) Strategy {
	if s, ok := r.strategies[normalizeName(name)]; ok {
		return s
	}
	return r.strategies[normalizeName(r.fallback)]
}

// Known reports whether name resolves to a strategy of its own.
func (r *Registry) Known(name string) bool {
	_, ok := r.strategies[normalizeName(name)]
	return ok
}

// Default returns the fallback strategy name.
func (r *Registry) Default() string {
	return r.fallback
}

// Names returns the registered strategy names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name)
	}
	slices.Sort(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var defaultRegistry = NewRegistry(DefaultStrategy,
	Strategy{Name: Trending, Compare: newestFirst},
	Strategy{Name: New, Compare: newestFirst},
	Strategy{Name: Rising, Window: risingWindow, Compare: byRising},
	Strategy{Name: Top, Compare: byTop},
	Strategy{Name: Best, Compare: byBest},
	Strategy{Name: Hot, Window: hotWindow, Compare: byHot},
	Strategy{Name: Controversial, Compare: byControversy},
)

// DefaultRegistry returns the built-in strategies.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Engagement is the unweighted sum of reactions, reposts, likes and replies.
func (e Entry) Engagement() int {
	return e.ReactionCount + e.Reposts + e.Likes + e.ReplyCount
}

// Quality weights reposts and reactions above plain likes and replies.
func (e Entry) Quality() float64 {
	return float64(e.Likes) +
		float64(e.Reposts)*2 +
		float64(e.ReactionCount)*1.5 +
		float64(e.ReplyCount)*0.5
}

// DecayedScore is engagement per hour of age, scaled by 1000.
func (e Entry) DecayedScore(now time.Time) float64 {
	hours := now.Sub(e.CreatedAt).Hours()
	if hours < minAgeHours {
		hours = minAgeHours
	}
	return float64(e.Engagement()) * 1000 / hours
}

// ControversyRatio is (angry+sad)/(love+haha). A post without love or haha
// reactions scores 0 however many negative reactions it has.
func (e Entry) ControversyRatio() float64 {
	positive := e.LoveCount + e.HahaCount
	if positive == 0 {
		return 0
	}
	return float64(e.AngryCount+e.SadCount) / float64(positive)
}

func byIDAsc(a, b Entry) int {
	return cmp.Compare(a.ID, b.ID)
}

// newestFirst breaks timestamp ties by insertion order, later first.
func newestFirst(a, b Entry, _ time.Time) int {
	return cmp.Or(
		b.CreatedAt.Compare(a.CreatedAt),
		cmp.Compare(b.ID, a.ID),
	)
}

func byRising(a, b Entry, _ time.Time) int {
	return cmp.Or(
		cmp.Compare(b.Engagement(), a.Engagement()),
		b.CreatedAt.Compare(a.CreatedAt),
		byIDAsc(a, b),
	)
}

func byTop(a, b Entry, _ time.Time) int {
	return cmp.Or(
		cmp.Compare(b.Engagement(), a.Engagement()),
		byIDAsc(a, b),
	)
}

func byBest(a, b Entry, _ time.Time) int {
	return cmp.Or(
		cmp.Compare(b.Quality(), a.Quality()),
		byIDAsc(a, b),
	)
}

func byHot(a, b Entry, now time.Time) int {
	return cmp.Or(
		cmp.Compare(b.DecayedScore(now), a.DecayedScore(now)),
		byIDAsc(a, b),
	)
}

func byControversy(a, b Entry, _ time.Time) int {
	return cmp.Or(
		cmp.Compare(b.ControversyRatio(), a.ControversyRatio()),
		cmp.Compare(b.Engagement(), a.Engagement()),
		byIDAsc(a, b),
	)
}
