package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Kahlar/webdevproject/internal/database"
	"github.com/Kahlar/webdevproject/internal/engine"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// anonymousUserID is used when the identity provider header is absent.
const anonymousUserID = "anonymous"

// Server holds all server dependencies: the actor system, engine and store.
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Store          database.Store
	Metrics        *utils.MetricsCollector
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	store database.Store,
	metrics *utils.MetricsCollector,
	logger *slog.Logger,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Store:          store,
		Metrics:        metrics,
		Logger:         logger.With("component", "http"),
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// userID resolves the caller's identity from the external identity
// provider's header, falling back to the anonymous placeholder.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-Id"); id != "" {
		return id
	}
	return anonymousUserID
}

// ask sends a message to an actor and waits for the response within the
// request timeout.
func (s *Server) ask(pid *actor.PID, msg interface{}) (interface{}, error) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewActorTimeoutError(pid.String())
	}
	return result, nil
}

// respond serializes an actor result, converting AppErrors to their HTTP
// status and the standard error body.
func (s *Server) respond(w http.ResponseWriter, result interface{}, err error) {
	s.Metrics.IncrementRequests()

	if err == nil {
		if appErr, ok := result.(*utils.AppError); ok {
			err = appErr
		}
	}
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	s.Metrics.IncrementErrors()

	status := http.StatusInternalServerError
	message := "Internal server error"
	if appErr, ok := err.(*utils.AppError); ok {
		status = utils.AppErrorToHTTPStatus(appErr.Code)
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// decodeBody parses a JSON request body, rejecting unknown fields so typos
// surface as invalid input instead of silently dropped data.
func decodeBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return utils.NewInvalidInputError("Invalid request body")
	}
	return nil
}
