package actors

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Kahlar/webdevproject/internal/database"
	"github.com/Kahlar/webdevproject/internal/models"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for forum post operations
type (
	CreatePostMsg struct {
		Title      string
		Content    string
		AuthorName string
	}

	GetPostMsg struct {
		PostID uuid.UUID
	}

	GetPostsMsg struct {
		Page  int
		Limit int
	}

	SetReactionMsg struct {
		PostID uuid.UUID
		UserID string
		Type   models.ReactionType
	}

	GetReactionMsg struct {
		PostID uuid.UUID
		UserID string
	}

	GetInteractionsMsg struct {
		PostID uuid.UUID
	}
)

// ReactionState is the outcome of a reaction toggle: the type that was
// acted on and whether it is now active for the user.
type ReactionState struct {
	Type         models.ReactionType `json:"type"`
	Active       bool                `json:"active"`
	LikeCount    int                 `json:"likeCount"`
	DislikeCount int                 `json:"dislikeCount"`
}

// InteractionCounts is the aggregate like/dislike view of a post.
type InteractionCounts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// ForumActor owns forum posts and the reaction set. Running every reaction
// toggle through one actor serializes them in-process; the unique index on
// (postId, userId) holds the invariant across processes.
type ForumActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
	logger  *slog.Logger
}

func NewForumActor(store database.Store, metrics *utils.MetricsCollector, logger *slog.Logger) actor.Actor {
	return &ForumActor{
		store:   store,
		metrics: metrics,
		logger:  logger.With("component", "forum_actor"),
	}
}

func (a *ForumActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Info("forum actor started")
	case *actor.Stopping:
		a.logger.Info("forum actor stopping")
	case *CreatePostMsg:
		a.handleCreatePost(ctx, msg)
	case *GetPostMsg:
		a.handleGetPost(ctx, msg)
	case *GetPostsMsg:
		a.handleGetPosts(ctx, msg)
	case *SetReactionMsg:
		a.handleSetReaction(ctx, msg)
	case *GetReactionMsg:
		a.handleGetReaction(ctx, msg)
	case *GetInteractionsMsg:
		a.handleGetInteractions(ctx, msg)
	default:
		a.logger.Warn("unknown message type", "type", msg)
	}
}

func (a *ForumActor) handleCreatePost(ctx actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	title := strings.TrimSpace(msg.Title)
	content := strings.TrimSpace(msg.Content)
	if title == "" || content == "" {
		ctx.Respond(utils.NewInvalidInputError("Title and content are required"))
		return
	}

	authorName := strings.TrimSpace(msg.AuthorName)
	if authorName == "" {
		authorName = "Anonymous"
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:           uuid.New(),
		Title:        title,
		Content:      content,
		AuthorName:   authorName,
		LikeCount:    0,
		DislikeCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.store.SavePost(context.Background(), post); err != nil {
		a.logger.Error("failed to save post", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create post", err))
		return
	}

	a.logger.Info("post created", "postId", post.ID, "author", post.AuthorName)
	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	ctx.Respond(post)
}

func (a *ForumActor) handleGetPost(ctx actor.Context, msg *GetPostMsg) {
	post, err := a.store.GetPost(context.Background(), msg.PostID)
	if err != nil {
		ctx.Respond(asAppError(err, "Failed to get post"))
		return
	}
	ctx.Respond(post)
}

func (a *ForumActor) handleGetPosts(ctx actor.Context, msg *GetPostsMsg) {
	startTime := time.Now()

	page, err := a.store.GetPosts(context.Background(), msg.Page, msg.Limit)
	if err != nil {
		a.logger.Error("failed to list posts", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to list posts", err))
		return
	}

	a.metrics.AddOperationLatency("list_posts", time.Since(startTime))
	ctx.Respond(page)
}

// handleSetReaction implements the tri-state toggle: no stored reaction
// inserts one, the same type clears it, a different type switches it. The
// reaction write and the counter $inc are two separate writes; a crash
// between them leaves the counters drifted from the true tally. That
// weakness is documented, and counters are clamped on read so drift never
// serializes as a negative count.
func (a *ForumActor) handleSetReaction(ctx actor.Context, msg *SetReactionMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	if _, err := a.store.GetPost(dbCtx, msg.PostID); err != nil {
		ctx.Respond(asAppError(err, "Failed to get post"))
		return
	}

	existing, err := a.store.GetReaction(dbCtx, msg.PostID, msg.UserID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to read reaction", err))
		return
	}

	var active bool
	switch {
	case existing == nil:
		reaction := &models.Reaction{
			ID:        uuid.New(),
			PostID:    msg.PostID,
			UserID:    msg.UserID,
			Type:      msg.Type,
			CreatedAt: time.Now().UTC(),
		}
		if err := a.store.InsertReaction(dbCtx, reaction); err != nil {
			ctx.Respond(asAppError(err, "Failed to store reaction"))
			return
		}
		if err := a.applyCounterDelta(dbCtx, msg.PostID, msg.Type, 1); err != nil {
			ctx.Respond(asAppError(err, "Failed to update post counters"))
			return
		}
		active = true
		a.logger.Info("reaction added", "postId", msg.PostID, "type", msg.Type)

	case existing.Type == msg.Type:
		if err := a.store.DeleteReaction(dbCtx, msg.PostID, msg.UserID); err != nil {
			ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to remove reaction", err))
			return
		}
		if err := a.applyCounterDelta(dbCtx, msg.PostID, msg.Type, -1); err != nil {
			ctx.Respond(asAppError(err, "Failed to update post counters"))
			return
		}
		active = false
		a.logger.Info("reaction removed", "postId", msg.PostID, "type", msg.Type)

	default:
		if err := a.store.UpdateReactionType(dbCtx, msg.PostID, msg.UserID, msg.Type); err != nil {
			ctx.Respond(asAppError(err, "Failed to switch reaction"))
			return
		}
		// One operation, two ±1 adjustments: old type down, new type up.
		likeDelta, dislikeDelta := 1, -1
		if msg.Type == models.ReactionDislike {
			likeDelta, dislikeDelta = -1, 1
		}
		if err := a.store.UpdatePostReactionCounts(dbCtx, msg.PostID, likeDelta, dislikeDelta); err != nil {
			ctx.Respond(asAppError(err, "Failed to update post counters"))
			return
		}
		active = true
		a.logger.Info("reaction switched", "postId", msg.PostID, "from", existing.Type, "to", msg.Type)
	}

	post, err := a.store.GetPost(dbCtx, msg.PostID)
	if err != nil {
		ctx.Respond(asAppError(err, "Failed to reload post"))
		return
	}

	a.metrics.AddOperationLatency("set_reaction", time.Since(startTime))
	ctx.Respond(&ReactionState{
		Type:         msg.Type,
		Active:       active,
		LikeCount:    post.LikeCount,
		DislikeCount: post.DislikeCount,
	})
}

func (a *ForumActor) applyCounterDelta(ctx context.Context, postID uuid.UUID, reactionType models.ReactionType, delta int) error {
	if reactionType == models.ReactionLike {
		return a.store.UpdatePostReactionCounts(ctx, postID, delta, 0)
	}
	return a.store.UpdatePostReactionCounts(ctx, postID, 0, delta)
}

func (a *ForumActor) handleGetReaction(ctx actor.Context, msg *GetReactionMsg) {
	reaction, err := a.store.GetReaction(context.Background(), msg.PostID, msg.UserID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to read reaction", err))
		return
	}

	reactionType := models.ReactionNone
	if reaction != nil {
		reactionType = reaction.Type
	}
	ctx.Respond(&ReactionState{Type: reactionType, Active: reaction != nil})
}

func (a *ForumActor) handleGetInteractions(ctx actor.Context, msg *GetInteractionsMsg) {
	post, err := a.store.GetPost(context.Background(), msg.PostID)
	if err != nil {
		ctx.Respond(asAppError(err, "Failed to get post"))
		return
	}
	ctx.Respond(&InteractionCounts{Likes: post.LikeCount, Dislikes: post.DislikeCount})
}

// asAppError passes AppErrors through and wraps anything else as a database
// failure, so handlers always see the taxonomy.
func asAppError(err error, message string) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	return utils.NewAppError(utils.ErrDatabase, message, err)
}
