package models

import (
	"time"

	"github.com/google/uuid"
)

// Tip is an eco-tip from the community library.
type Tip struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Counts     TipCounts `json:"_count"`
}

// TipCounts carries the per-tip aggregate counts returned with list views.
type TipCounts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// TipLike marks that a user liked a tip. Unique per (TipID, UserID).
type TipLike struct {
	ID        uuid.UUID `json:"id"`
	TipID     uuid.UUID `json:"tipId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TipComment is a flat comment on a tip. Tip comments do not thread.
type TipComment struct {
	ID         uuid.UUID `json:"id"`
	TipID      uuid.UUID `json:"tipId"`
	Content    string    `json:"content"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TipPage is one page of tips, newest first.
type TipPage struct {
	Tips       []*Tip `json:"tips"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}
