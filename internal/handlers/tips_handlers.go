package handlers

import (
	"net/http"

	"github.com/Kahlar/webdevproject/internal/engine/actors"
)

// CreateTipRequest represents a request to add an eco-tip
type CreateTipRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	AuthorName string `json:"authorName"`
}

// AddTipCommentRequest represents a request to comment on a tip
type AddTipCommentRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

// HandleListTips returns one page of tips with like/comment counts,
// optionally filtered by category.
func (s *Server) HandleListTips() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)

		result, err := s.ask(s.Engine.GetTipsActor(), &actors.GetTipsMsg{
			Category: r.URL.Query().Get("category"),
			Page:     page,
			Limit:    limit,
		})
		s.respond(w, result, err)
	}
}

// HandleCreateTip adds a tip to the library.
func (s *Server) HandleCreateTip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTipRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetTipsActor(), &actors.CreateTipMsg{
			Title:      req.Title,
			Content:    req.Content,
			Category:   req.Category,
			AuthorName: req.AuthorName,
		})
		s.respond(w, result, err)
	}
}

// HandleTipInteraction toggles the caller's like on a tip.
func (s *Server) HandleTipInteraction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tipID, err := pathID(r, "tipId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetTipsActor(), &actors.ToggleTipLikeMsg{
			TipID:  tipID,
			UserID: userID(r),
		})
		s.respond(w, result, err)
	}
}

// HandleGetTipComments returns a tip's comments, newest first.
func (s *Server) HandleGetTipComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tipID, err := pathID(r, "tipId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetTipsActor(), &actors.GetTipCommentsMsg{TipID: tipID})
		s.respond(w, result, err)
	}
}

// HandleAddTipComment attaches a comment to a tip.
func (s *Server) HandleAddTipComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tipID, err := pathID(r, "tipId")
		if err != nil {
			s.respondError(w, err)
			return
		}

		var req AddTipCommentRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetTipsActor(), &actors.AddTipCommentMsg{
			TipID:      tipID,
			Content:    req.Content,
			AuthorName: req.AuthorName,
		})
		s.respond(w, result, err)
	}
}
