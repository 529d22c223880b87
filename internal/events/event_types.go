package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPremiumGranted    EventType = "premium_granted"
	EventForumTopicCreated EventType = "forum_topic_created"
	EventForumReplyCreated EventType = "forum_reply_created"
	EventAccountDeleted    EventType = "account_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PremiumGrantedPayload payload.
type PremiumGrantedPayload struct {
	Source       string `json:"source"` // "trial" or "promo"
	PromoCode    string `json:"promo_code,omitempty"`
	PremiumUntil int64  `json:"premium_until"`
}

// ForumTopicCreatedPayload payload.
type ForumTopicCreatedPayload struct {
	TopicID  string `json:"topic_id"`
	Category string `json:"category"`
	Title    string `json:"title"`
}

// ForumReplyCreatedPayload payload.
type ForumReplyCreatedPayload struct {
	TopicID     string `json:"topic_id"`
	ReplyID     string `json:"reply_id"`
	TopicAuthor string `json:"topic_author_id"`
	BodyPreview string `json:"body_preview"`
}

// AccountDeletedPayload payload.
type AccountDeletedPayload struct {
	Email string `json:"email,omitempty"`
}
