// Package models contains data structures for the board's domain models.
package models

import "time"

// MaxTextLength is the longest post or reply body accepted, in characters.
const MaxTextLength = 280

// Mood is the author-selected tone of a post.
type Mood string

// Supported moods.
const (
	MoodNone    Mood = "none"
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodChill   Mood = "chill"
	MoodHyped   Mood = "hyped"
	MoodAnxious Mood = "anxious"
)

var moods = map[Mood]struct{}{
	MoodNone:    {},
	MoodHappy:   {},
	MoodSad:     {},
	MoodAngry:   {},
	MoodChill:   {},
	MoodHyped:   {},
	MoodAnxious: {},
}

// Valid reports whether m is one of the supported moods.
func (m Mood) Valid() bool {
	_, ok := moods[m]
	return ok
}

// Post represents a post on the board.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:varchar(280);not null" json:"text"`
	Mood     Mood   `gorm:"type:varchar(16);not null;default:'none'" json:"mood"`
	Likes    int    `gorm:"not null;default:0" json:"likes"`
	Reposts  int    `gorm:"not null;default:0" json:"reposts"`
	ImageURL string `json:"image_url,omitempty"`
	// CreatedAt is set once on insert and never updated.
	CreatedAt time.Time `gorm:"index;<-:create" json:"created_at"`
}
