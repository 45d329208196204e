package models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is a single user's like or dislike on a post. At most one
// reaction exists per (PostID, UserID) pair; the forum_posts counters are
// kept in step with the reaction set by the forum engine.
type Reaction struct {
	ID        uuid.UUID    `json:"id"`
	PostID    uuid.UUID    `json:"postId"`
	UserID    string       `json:"userId"`
	Type      ReactionType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}
