package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a top-level comment on a post. Replies is populated when a
// thread view is assembled; it is not stored on the comment document.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"postId"`
	Content    string    `json:"content"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	Replies    []*Reply  `json:"replies"`
}

// Reply is a second-level comment. Replies do not themselves accept replies.
type Reply struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"postId"`
	CommentID  uuid.UUID `json:"commentId"`
	Content    string    `json:"content"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}
