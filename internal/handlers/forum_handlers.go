package handlers

import (
	"net/http"
	"strconv"

	"github.com/Kahlar/webdevproject/internal/engine/actors"
	"github.com/Kahlar/webdevproject/internal/models"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/google/uuid"
)

// CreatePostRequest represents a request to create a new forum post
type CreatePostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

// AddCommentRequest represents a request to comment on a post
type AddCommentRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

// AddReplyRequest represents a request to reply to a comment
type AddReplyRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

// InteractionRequest represents a like/dislike toggle on a post
type InteractionRequest struct {
	Type string `json:"type"`
}

// parsePagination reads page/limit query parameters leniently: anything
// unparseable falls back to the defaults.
func parsePagination(r *http.Request) (int, int) {
	page, limit := 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	return page, limit
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, utils.NewInvalidInputError("Invalid " + name + " format")
	}
	return id, nil
}

// HandleListPosts returns one page of forum posts, newest first.
func (s *Server) HandleListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)

		result, err := s.ask(s.Engine.GetForumActor(), &actors.GetPostsMsg{Page: page, Limit: limit})
		s.respond(w, result, err)
	}
}

// HandleCreatePost creates a new forum post.
func (s *Server) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetForumActor(), &actors.CreatePostMsg{
			Title:      req.Title,
			Content:    req.Content,
			AuthorName: req.AuthorName,
		})
		s.respond(w, result, err)
	}
}

// HandleGetThread returns a post's comments with nested replies.
func (s *Server) HandleGetThread() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "postId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.GetThreadMsg{PostID: postID})
		s.respond(w, result, err)
	}
}

// HandleAddComment attaches a comment to a post.
func (s *Server) HandleAddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "postId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req AddCommentRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.AddCommentMsg{
			PostID:     postID,
			Content:    req.Content,
			AuthorName: req.AuthorName,
		})
		s.respond(w, result, err)
	}
}

// HandleAddReply attaches a reply to a comment.
func (s *Server) HandleAddReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "postId")
		if err != nil {
			s.respondError(w, err)
			return
		}
		commentID, err := pathID(r, "commentId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req AddReplyRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.AddReplyMsg{
			PostID:     postID,
			CommentID:  commentID,
			Content:    req.Content,
			AuthorName: req.AuthorName,
		})
		s.respond(w, result, err)
	}
}

// HandleSetReaction toggles the caller's like/dislike on a post and reports
// the new active state, e.g. {"like": true}.
func (s *Server) HandleSetReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "postId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req InteractionRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		reactionType, ok := models.ParseReactionType(req.Type)
		if !ok {
			s.respondError(w, utils.NewInvalidInputError("Invalid interaction type"))
			return
		}

		result, err := s.ask(s.Engine.GetForumActor(), &actors.SetReactionMsg{
			PostID: postID,
			UserID: userID(r),
			Type:   reactionType,
		})
		if err != nil {
			s.respond(w, nil, err)
			return
		}

		if state, ok := result.(*actors.ReactionState); ok {
			s.respond(w, map[string]bool{string(state.Type): state.Active}, nil)
			return
		}
		s.respond(w, result, nil)
	}
}

// HandleGetInteractions returns a post's aggregate like/dislike counts.
func (s *Server) HandleGetInteractions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "postId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetForumActor(), &actors.GetInteractionsMsg{PostID: postID})
		s.respond(w, result, err)
	}
}

// HandleGetReaction returns the caller's current reaction for a post, or
// "none".
func (s *Server) HandleGetReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "postId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetForumActor(), &actors.GetReactionMsg{
			PostID: postID,
			UserID: userID(r),
		})
		if err != nil {
			s.respond(w, nil, err)
			return
		}

		if state, ok := result.(*actors.ReactionState); ok {
			s.respond(w, map[string]string{"type": string(state.Type)}, nil)
			return
		}
		s.respond(w, result, nil)
	}
}
