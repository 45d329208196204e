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

// Message types for comment and reply operations
type (
	AddCommentMsg struct {
		PostID     uuid.UUID
		Content    string
		AuthorName string
	}

	AddReplyMsg struct {
		PostID     uuid.UUID
		CommentID  uuid.UUID
		Content    string
		AuthorName string
	}

	GetThreadMsg struct {
		PostID uuid.UUID
	}
)

// Thread is the nested view of a post's comments: comments newest first,
// each carrying its replies in insertion order.
type Thread struct {
	Comments []*models.Comment `json:"comments"`
}

// CommentActor owns the comment/reply set and assembles thread views.
type CommentActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
	logger  *slog.Logger
}

func NewCommentActor(store database.Store, metrics *utils.MetricsCollector, logger *slog.Logger) actor.Actor {
	return &CommentActor{
		store:   store,
		metrics: metrics,
		logger:  logger.With("component", "comment_actor"),
	}
}

func (a *CommentActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Info("comment actor started")
	case *AddCommentMsg:
		a.handleAddComment(ctx, msg)
	case *AddReplyMsg:
		a.handleAddReply(ctx, msg)
	case *GetThreadMsg:
		a.handleGetThread(ctx, msg)
	default:
		a.logger.Warn("unknown message type", "type", msg)
	}
}

func (a *CommentActor) handleAddComment(ctx actor.Context, msg *AddCommentMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	content := strings.TrimSpace(msg.Content)
	authorName := strings.TrimSpace(msg.AuthorName)
	if content == "" || authorName == "" {
		ctx.Respond(utils.NewInvalidInputError("Content and author name are required"))
		return
	}

	if _, err := a.store.GetPost(dbCtx, msg.PostID); err != nil {
		ctx.Respond(asAppError(err, "Failed to get post"))
		return
	}

	comment := &models.Comment{
		ID:         uuid.New(),
		PostID:     msg.PostID,
		Content:    content,
		AuthorName: authorName,
		CreatedAt:  time.Now().UTC(),
		Replies:    []*models.Reply{},
	}

	if err := a.store.SaveComment(dbCtx, comment); err != nil {
		a.logger.Error("failed to save comment", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create comment", err))
		return
	}

	a.logger.Info("comment added", "postId", msg.PostID, "commentId", comment.ID)
	a.metrics.AddOperationLatency("add_comment", time.Since(startTime))
	ctx.Respond(comment)
}

func (a *CommentActor) handleAddReply(ctx actor.Context, msg *AddReplyMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	content := strings.TrimSpace(msg.Content)
	authorName := strings.TrimSpace(msg.AuthorName)
	if content == "" || authorName == "" {
		ctx.Respond(utils.NewInvalidInputError("Content and author name are required"))
		return
	}

	parent, err := a.store.GetComment(dbCtx, msg.CommentID)
	if err != nil {
		ctx.Respond(asAppError(err, "Failed to get comment"))
		return
	}
	if parent.PostID != msg.PostID {
		ctx.Respond(utils.NewInvalidInputError("Comment does not belong to this post"))
		return
	}

	reply := &models.Reply{
		ID:         uuid.New(),
		PostID:     msg.PostID,
		CommentID:  msg.CommentID,
		Content:    content,
		AuthorName: authorName,
		CreatedAt:  time.Now().UTC(),
	}

	if err := a.store.SaveReply(dbCtx, reply); err != nil {
		a.logger.Error("failed to save reply", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create reply", err))
		return
	}

	a.logger.Info("reply added", "commentId", msg.CommentID, "replyId", reply.ID)
	a.metrics.AddOperationLatency("add_reply", time.Since(startTime))
	ctx.Respond(reply)
}

func (a *CommentActor) handleGetThread(ctx actor.Context, msg *GetThreadMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	if _, err := a.store.GetPost(dbCtx, msg.PostID); err != nil {
		ctx.Respond(asAppError(err, "Failed to get post"))
		return
	}

	comments, err := a.store.GetPostComments(dbCtx, msg.PostID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load comments", err))
		return
	}

	replies, err := a.store.GetPostReplies(dbCtx, msg.PostID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load replies", err))
		return
	}

	byComment := make(map[uuid.UUID][]*models.Reply, len(comments))
	for _, reply := range replies {
		byComment[reply.CommentID] = append(byComment[reply.CommentID], reply)
	}

	for _, comment := range comments {
		comment.Replies = byComment[comment.ID]
		if comment.Replies == nil {
			comment.Replies = []*models.Reply{}
		}
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	a.metrics.AddOperationLatency("get_thread", time.Since(startTime))
	ctx.Respond(&Thread{Comments: comments})
}
