package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HandleHealth reports liveness and database health.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")

		if err := s.Store.Ping(ctx); err != nil {
			s.Logger.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status":    "error",
				"message":   "Database connection is not healthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"message":   "All systems operational",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HandleStats serves the metrics snapshot.
func (s *Server) HandleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.Metrics.Snapshot())
	}
}

// Routes registers every handler on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.HandleHealth())
	mux.HandleFunc("GET /stats", s.HandleStats())

	mux.HandleFunc("GET /forum", s.HandleListPosts())
	mux.HandleFunc("POST /forum", s.HandleCreatePost())
	mux.HandleFunc("GET /forum/{postId}/comments", s.HandleGetThread())
	mux.HandleFunc("POST /forum/{postId}/comments", s.HandleAddComment())
	mux.HandleFunc("POST /forum/{postId}/comments/{commentId}/replies", s.HandleAddReply())
	mux.HandleFunc("GET /forum/{postId}/interactions", s.HandleGetInteractions())
	mux.HandleFunc("POST /forum/{postId}/interactions", s.HandleSetReaction())
	mux.HandleFunc("GET /forum/{postId}/reaction", s.HandleGetReaction())

	mux.HandleFunc("GET /tips", s.HandleListTips())
	mux.HandleFunc("POST /tips", s.HandleCreateTip())
	mux.HandleFunc("POST /tips/{tipId}/interactions", s.HandleTipInteraction())
	mux.HandleFunc("GET /tips/{tipId}/comments", s.HandleGetTipComments())
	mux.HandleFunc("POST /tips/{tipId}/comments", s.HandleAddTipComment())

	mux.HandleFunc("POST /tracker/actions", s.HandleLogAction())
	mux.HandleFunc("GET /tracker/users/{userId}/actions", s.HandleUserActions())
	mux.HandleFunc("GET /tracker/users/{userId}/summary", s.HandleUserSummary())
	mux.HandleFunc("GET /tracker/users/{userId}/badge", s.HandleUserBadge())
	mux.HandleFunc("GET /leaderboard", s.HandleLeaderboard())

	mux.HandleFunc("POST /carbon", s.HandleRecordFootprint())
	mux.HandleFunc("GET /carbon", s.HandleGetFootprints())

	return mux
}
