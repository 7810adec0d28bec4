// Package service holds the board's business logic between HTTP handlers and repositories.
package service

import "context"

// Live feed event types.
const (
	EventPostCreated           = "post_created"
	EventPostDeleted           = "post_deleted"
	EventPostEngagementUpdated = "post_engagement_updated"
	EventReplyCreated          = "reply_created"
)

// EventPublisher delivers board events to live subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// PostDeletedPayload identifies a removed post.
type PostDeletedPayload struct {
	ID uint `json:"id"`
}
