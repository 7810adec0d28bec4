package models

import "time"

// ReactionType is one of the fixed reaction kinds a post can receive.
type ReactionType string

// Supported reaction types.
const (
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
	ReactionFire  ReactionType = "fire"
)

// ReactionTypes lists every supported reaction type in display order.
var ReactionTypes = []ReactionType{ReactionLove, ReactionHaha, ReactionSad, ReactionAngry, ReactionFire}

// Valid reports whether t is a supported reaction type.
func (t ReactionType) Valid() bool {
	for _, known := range ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Reaction is a single typed reaction on a post. Reactions are append-only.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	PostID    uint         `gorm:"not null;index" json:"post_id"`
	Post      *Post        `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Type      ReactionType `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}
