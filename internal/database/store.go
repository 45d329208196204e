// internal/database/store.go
package database

import (
	"context"
	"time"

	"github.com/Kahlar/webdevproject/internal/models"

	"github.com/google/uuid"
)

// Store defines the persistence operations the engine actors depend on.
// MongoDB implements it; tests substitute in-memory fakes.
type Store interface {
	// Connection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	// Post methods
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetPosts(ctx context.Context, page, limit int) (*models.PostPage, error)
	UpdatePostReactionCounts(ctx context.Context, postID uuid.UUID, likeDelta, dislikeDelta int) error

	// Reaction methods. GetReaction returns (nil, nil) when the user has no
	// stored reaction for the post.
	GetReaction(ctx context.Context, postID uuid.UUID, userID string) (*models.Reaction, error)
	InsertReaction(ctx context.Context, reaction *models.Reaction) error
	DeleteReaction(ctx context.Context, postID uuid.UUID, userID string) error
	UpdateReactionType(ctx context.Context, postID uuid.UUID, userID string, reactionType models.ReactionType) error

	// Comment and reply methods
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	SaveReply(ctx context.Context, reply *models.Reply) error
	GetPostReplies(ctx context.Context, postID uuid.UUID) ([]*models.Reply, error)

	// Tip methods
	SaveTip(ctx context.Context, tip *models.Tip) error
	GetTip(ctx context.Context, id uuid.UUID) (*models.Tip, error)
	GetTips(ctx context.Context, category string, page, limit int) (*models.TipPage, error)
	CountTipLikes(ctx context.Context, tipID uuid.UUID) (int64, error)
	CountTipComments(ctx context.Context, tipID uuid.UUID) (int64, error)
	GetTipLike(ctx context.Context, tipID uuid.UUID, userID string) (*models.TipLike, error)
	InsertTipLike(ctx context.Context, like *models.TipLike) error
	DeleteTipLike(ctx context.Context, tipID uuid.UUID, userID string) error
	SaveTipComment(ctx context.Context, comment *models.TipComment) error
	GetTipComments(ctx context.Context, tipID uuid.UUID) ([]*models.TipComment, error)

	// Tracker methods
	SaveAction(ctx context.Context, entry *models.ActionEntry) error
	GetUserActions(ctx context.Context, userID string) ([]*models.ActionEntry, error)
	AddUserPoints(ctx context.Context, userID string, delta int) error
	GetUserPoints(ctx context.Context, userID string) (*models.UserPoints, error)
	GetLeaderboard(ctx context.Context, limit int) ([]*models.UserPoints, error)

	// Carbon footprint methods
	SaveFootprint(ctx context.Context, record *models.FootprintRecord) error
	GetFootprints(ctx context.Context, userID string, start, end *time.Time) ([]*models.FootprintRecord, error)
}

var _ Store = (*MongoDB)(nil)
