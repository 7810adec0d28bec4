package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"moodboard/internal/models"

	"gopkg.in/yaml.v3"
)

// Age is a duration before the fixture's anchor time, written like "90m" or "3h".
type Age time.Duration

// UnmarshalYAML parses a Go duration string.
func (a *Age) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("line %d: invalid age %q: %w", value.Line, raw, err)
	}
	if d < 0 {
		return fmt.Errorf("line %d: age %q is negative", value.Line, raw)
	}
	*a = Age(d)
	return nil
}

// Fixture is a hand-written board. Ages are relative so a fixture ranks the
// same way whenever it is loaded.
type Fixture struct {
	Posts []FixturePost `yaml:"posts"`
}

// FixturePost describes one post and its engagement.
type FixturePost struct {
	Text      string         `yaml:"text"`
	Mood      string         `yaml:"mood"`
	ImageURL  string         `yaml:"image_url"`
	Age       Age            `yaml:"age"`
	Likes     int            `yaml:"likes"`
	Reposts   int            `yaml:"reposts"`
	Reactions map[string]int `yaml:"reactions"`
	Replies   []FixtureReply `yaml:"replies"`
}

// FixtureReply describes one reply to a fixture post.
type FixtureReply struct {
	Text string `yaml:"text"`
	Age  Age    `yaml:"age"`
}

// LoadFixture reads and parses a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture, rejecting unknown fields. An empty
// document is an empty board.
func ParseFixture(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fx, nil
}

// Board resolves the fixture against now and validates every entry.
func (fx *Fixture) Board(now time.Time) (Board, error) {
	now = now.UTC()
	board := make(Board, 0, len(fx.Posts))

	for i, fp := range fx.Posts {
		if err := checkText(fp.Text); err != nil {
			return nil, fmt.Errorf("post %d: %w", i, err)
		}
		mood := models.Mood(strings.ToLower(strings.TrimSpace(fp.Mood)))
		if mood == "" {
			mood = models.MoodNone
		}
		if !mood.Valid() {
			return nil, fmt.Errorf("post %d: unknown mood %q", i, fp.Mood)
		}
		if fp.Likes < 0 || fp.Reposts < 0 {
			return nil, fmt.Errorf("post %d: likes and reposts must not be negative", i)
		}

		created := now.Add(-time.Duration(fp.Age))
		bp := BoardPost{Post: models.Post{
			Text:      strings.TrimSpace(fp.Text),
			Mood:      mood,
			Likes:     fp.Likes,
			Reposts:   fp.Reposts,
			ImageURL:  fp.ImageURL,
			CreatedAt: created,
		}}

		kinds := make([]string, 0, len(fp.Reactions))
		for kind := range fp.Reactions {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			rt := models.ReactionType(kind)
			if !rt.Valid() {
				return nil, fmt.Errorf("post %d: unknown reaction type %q", i, kind)
			}
			if fp.Reactions[kind] < 0 {
				return nil, fmt.Errorf("post %d: negative %s count", i, kind)
			}
			for range fp.Reactions[kind] {
				bp.Reactions = append(bp.Reactions, models.Reaction{Type: rt, CreatedAt: created})
			}
		}

		for j, fr := range fp.Replies {
			if err := checkText(fr.Text); err != nil {
				return nil, fmt.Errorf("post %d reply %d: %w", i, j, err)
			}
			at := now.Add(-time.Duration(fr.Age))
			if at.Before(created) {
				at = created
			}
			bp.Replies = append(bp.Replies, models.Reply{Text: strings.TrimSpace(fr.Text), CreatedAt: at})
		}

		board = append(board, bp)
	}
	return board, nil
}

func checkText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text is required")
	}
	if utf8.RuneCountInString(text) > models.MaxTextLength {
		return fmt.Errorf("text exceeds %d characters", models.MaxTextLength)
	}
	return nil
}
