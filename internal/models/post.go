package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a forum post with denormalized reaction counters.
type Post struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"authorName"`
	LikeCount    int       `json:"likeCount"`
	DislikeCount int       `json:"dislikeCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PostPage is one page of posts, newest first.
type PostPage struct {
	Posts      []*Post `json:"posts"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}
