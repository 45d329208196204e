package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Kahlar/webdevproject/internal/engine/actors"
	"github.com/Kahlar/webdevproject/internal/utils"
)

// LogActionRequest represents a request to log an eco-action
type LogActionRequest struct {
	Action   string `json:"action"`
	Category string `json:"category"`
}

// RecordFootprintRequest represents a request to store a computed carbon
// footprint value
type RecordFootprintRequest struct {
	CarbonFootprint float64 `json:"carbonFootprint"`
	Date            string  `json:"date"`
}

// HandleLogAction records an eco-action and awards points.
func (s *Server) HandleLogAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogActionRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		result, err := s.ask(s.Engine.GetTrackerActor(), &actors.LogActionMsg{
			UserID:   userID(r),
			Action:   req.Action,
			Category: req.Category,
		})
		s.respond(w, result, err)
	}
}

// HandleUserActions returns a user's action history, newest first.
func (s *Server) HandleUserActions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetTrackerActor(), &actors.GetUserActionsMsg{
			UserID: r.PathValue("userId"),
		})
		s.respond(w, result, err)
	}
}

// HandleUserSummary returns a user's total points and level.
func (s *Server) HandleUserSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetTrackerActor(), &actors.GetSummaryMsg{
			UserID: r.PathValue("userId"),
		})
		s.respond(w, result, err)
	}
}

// HandleUserBadge returns the highest badge a user has reached.
func (s *Server) HandleUserBadge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetTrackerActor(), &actors.GetBadgeMsg{
			UserID: r.PathValue("userId"),
		})
		s.respond(w, result, err)
	}
}

// HandleLeaderboard returns the top users by points.
func (s *Server) HandleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		result, err := s.ask(s.Engine.GetTrackerActor(), &actors.GetLeaderboardMsg{Limit: limit})
		s.respond(w, result, err)
	}
}

// HandleRecordFootprint stores a computed carbon footprint value.
func (s *Server) HandleRecordFootprint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordFootprintRequest
		if err := decodeBody(r, &req); err != nil {
			s.respondError(w, err)
			return
		}

		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			s.respondError(w, utils.NewInvalidInputError("Invalid date format, expected RFC 3339"))
			return
		}

		result, err := s.ask(s.Engine.GetTrackerActor(), &actors.RecordFootprintMsg{
			UserID:          userID(r),
			CarbonFootprint: req.CarbonFootprint,
			Date:            date,
		})
		s.respond(w, result, err)
	}
}

// HandleGetFootprints returns a user's footprint history, optionally
// bounded to a date range.
func (s *Server) HandleGetFootprints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := &actors.GetFootprintsMsg{UserID: userID(r)}
		if id := r.URL.Query().Get("userId"); id != "" {
			msg.UserID = id
		}

		startStr := r.URL.Query().Get("startDate")
		endStr := r.URL.Query().Get("endDate")
		if startStr != "" && endStr != "" {
			start, err := time.Parse(time.RFC3339, startStr)
			if err != nil {
				s.respondError(w, utils.NewInvalidInputError("Invalid startDate format, expected RFC 3339"))
				return
			}
			end, err := time.Parse(time.RFC3339, endStr)
			if err != nil {
				s.respondError(w, utils.NewInvalidInputError("Invalid endDate format, expected RFC 3339"))
				return
			}
			msg.Start, msg.End = &start, &end
		}

		result, err := s.ask(s.Engine.GetTrackerActor(), msg)
		s.respond(w, result, err)
	}
}
