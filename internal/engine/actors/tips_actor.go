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

// Message types for eco-tip operations
type (
	CreateTipMsg struct {
		Title      string
		Content    string
		Category   string
		AuthorName string
	}

	GetTipsMsg struct {
		Category string
		Page     int
		Limit    int
	}

	ToggleTipLikeMsg struct {
		TipID  uuid.UUID
		UserID string
	}

	AddTipCommentMsg struct {
		TipID      uuid.UUID
		Content    string
		AuthorName string
	}

	GetTipCommentsMsg struct {
		TipID uuid.UUID
	}
)

// TipLikeState is the outcome of a like toggle on a tip.
type TipLikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// TipComments wraps a tip's comment list.
type TipComments struct {
	Comments []*models.TipComment `json:"comments"`
}

// TipsActor owns the eco-tips library: tips, tip likes, tip comments.
type TipsActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
	logger  *slog.Logger
}

func NewTipsActor(store database.Store, metrics *utils.MetricsCollector, logger *slog.Logger) actor.Actor {
	return &TipsActor{
		store:   store,
		metrics: metrics,
		logger:  logger.With("component", "tips_actor"),
	}
}

func (a *TipsActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Info("tips actor started")
	case *CreateTipMsg:
		a.handleCreateTip(ctx, msg)
	case *GetTipsMsg:
		a.handleGetTips(ctx, msg)
	case *ToggleTipLikeMsg:
		a.handleToggleLike(ctx, msg)
	case *AddTipCommentMsg:
		a.handleAddComment(ctx, msg)
	case *GetTipCommentsMsg:
		a.handleGetComments(ctx, msg)
	default:
		a.logger.Warn("unknown message type", "type", msg)
	}
}

func (a *TipsActor) handleCreateTip(ctx actor.Context, msg *CreateTipMsg) {
	startTime := time.Now()

	title := strings.TrimSpace(msg.Title)
	content := strings.TrimSpace(msg.Content)
	category := strings.TrimSpace(msg.Category)
	authorName := strings.TrimSpace(msg.AuthorName)
	if title == "" || content == "" || category == "" || authorName == "" {
		ctx.Respond(utils.NewInvalidInputError("Title, content, category and author name are required"))
		return
	}

	now := time.Now().UTC()
	tip := &models.Tip{
		ID:         uuid.New(),
		Title:      title,
		Content:    content,
		Category:   category,
		AuthorName: authorName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := a.store.SaveTip(context.Background(), tip); err != nil {
		a.logger.Error("failed to save tip", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create tip", err))
		return
	}

	a.logger.Info("tip created", "tipId", tip.ID, "category", tip.Category)
	a.metrics.AddOperationLatency("create_tip", time.Since(startTime))
	ctx.Respond(tip)
}

func (a *TipsActor) handleGetTips(ctx actor.Context, msg *GetTipsMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	page, err := a.store.GetTips(dbCtx, msg.Category, msg.Page, msg.Limit)
	if err != nil {
		a.logger.Error("failed to list tips", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to list tips", err))
		return
	}

	// Annotate each tip with its like and comment counts, as the library
	// view displays them inline.
	for _, tip := range page.Tips {
		likes, err := a.store.CountTipLikes(dbCtx, tip.ID)
		if err != nil {
			ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to count tip likes", err))
			return
		}
		comments, err := a.store.CountTipComments(dbCtx, tip.ID)
		if err != nil {
			ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to count tip comments", err))
			return
		}
		tip.Counts = models.TipCounts{Likes: likes, Comments: comments}
	}

	a.metrics.AddOperationLatency("list_tips", time.Since(startTime))
	ctx.Respond(page)
}

// handleToggleLike flips the user's like on a tip: absent inserts, present
// deletes. Tips have no dislike, so this is a plain binary toggle.
func (a *TipsActor) handleToggleLike(ctx actor.Context, msg *ToggleTipLikeMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	if _, err := a.store.GetTip(dbCtx, msg.TipID); err != nil {
		ctx.Respond(asAppError(err, "Failed to get tip"))
		return
	}

	existing, err := a.store.GetTipLike(dbCtx, msg.TipID, msg.UserID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to read tip like", err))
		return
	}

	var liked bool
	if existing == nil {
		like := &models.TipLike{
			ID:        uuid.New(),
			TipID:     msg.TipID,
			UserID:    msg.UserID,
			CreatedAt: time.Now().UTC(),
		}
		if err := a.store.InsertTipLike(dbCtx, like); err != nil {
			ctx.Respond(asAppError(err, "Failed to store tip like"))
			return
		}
		liked = true
	} else {
		if err := a.store.DeleteTipLike(dbCtx, msg.TipID, msg.UserID); err != nil {
			ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to remove tip like", err))
			return
		}
		liked = false
	}

	likes, err := a.store.CountTipLikes(dbCtx, msg.TipID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to count tip likes", err))
		return
	}

	a.metrics.AddOperationLatency("toggle_tip_like", time.Since(startTime))
	ctx.Respond(&TipLikeState{Liked: liked, Likes: likes})
}

func (a *TipsActor) handleAddComment(ctx actor.Context, msg *AddTipCommentMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	content := strings.TrimSpace(msg.Content)
	authorName := strings.TrimSpace(msg.AuthorName)
	if content == "" || authorName == "" {
		ctx.Respond(utils.NewInvalidInputError("Content and author name are required"))
		return
	}

	if _, err := a.store.GetTip(dbCtx, msg.TipID); err != nil {
		ctx.Respond(asAppError(err, "Failed to get tip"))
		return
	}

	comment := &models.TipComment{
		ID:         uuid.New(),
		TipID:      msg.TipID,
		Content:    content,
		AuthorName: authorName,
		CreatedAt:  time.Now().UTC(),
	}

	if err := a.store.SaveTipComment(dbCtx, comment); err != nil {
		a.logger.Error("failed to save tip comment", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create tip comment", err))
		return
	}

	a.metrics.AddOperationLatency("add_tip_comment", time.Since(startTime))
	ctx.Respond(comment)
}

func (a *TipsActor) handleGetComments(ctx actor.Context, msg *GetTipCommentsMsg) {
	dbCtx := context.Background()

	if _, err := a.store.GetTip(dbCtx, msg.TipID); err != nil {
		ctx.Respond(asAppError(err, "Failed to get tip"))
		return
	}

	comments, err := a.store.GetTipComments(dbCtx, msg.TipID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load tip comments", err))
		return
	}
	if comments == nil {
		comments = []*models.TipComment{}
	}

	ctx.Respond(&TipComments{Comments: comments})
}
