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

// Message types for tracker operations
type (
	LogActionMsg struct {
		UserID   string
		Action   string
		Category string
	}

	GetUserActionsMsg struct {
		UserID string
	}

	GetSummaryMsg struct {
		UserID string
	}

	GetBadgeMsg struct {
		UserID string
	}

	GetLeaderboardMsg struct {
		Limit int
	}

	RecordFootprintMsg struct {
		UserID          string
		CarbonFootprint float64
		Date            time.Time
	}

	GetFootprintsMsg struct {
		UserID string
		Start  *time.Time
		End    *time.Time
	}
)

// ActionLogged is the response to a logged action.
type ActionLogged struct {
	Entry        *models.ActionEntry `json:"entry"`
	PointsEarned int                 `json:"pointsEarned"`
}

// BadgeResult names the highest badge a user has reached.
type BadgeResult struct {
	UserID string `json:"userId"`
	Badge  string `json:"badge"`
}

// ActionHistory wraps a user's logged actions, newest first.
type ActionHistory struct {
	Actions []*models.ActionEntry `json:"actions"`
}

// Leaderboard is the top users by points, descending.
type Leaderboard struct {
	Users []*models.UserPoints `json:"users"`
}

// FootprintHistory wraps a user's stored footprint records, newest first.
type FootprintHistory struct {
	Records []*models.FootprintRecord `json:"records"`
}

// Points awarded per known action; anything else earns the default.
var actionPoints = map[string]int{
	"Used public transport":        10,
	"Recycled household waste":     15,
	"Bought local organic produce": 20,
}

const defaultActionPoints = 5

// TrackerActor owns the eco-action log and the per-user points tally that
// backs the leaderboard and badges.
type TrackerActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
	logger  *slog.Logger
}

func NewTrackerActor(store database.Store, metrics *utils.MetricsCollector, logger *slog.Logger) actor.Actor {
	return &TrackerActor{
		store:   store,
		metrics: metrics,
		logger:  logger.With("component", "tracker_actor"),
	}
}

func (a *TrackerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Info("tracker actor started")
	case *LogActionMsg:
		a.handleLogAction(ctx, msg)
	case *GetUserActionsMsg:
		a.handleGetUserActions(ctx, msg)
	case *GetSummaryMsg:
		a.handleGetSummary(ctx, msg)
	case *GetBadgeMsg:
		a.handleGetBadge(ctx, msg)
	case *GetLeaderboardMsg:
		a.handleGetLeaderboard(ctx, msg)
	case *RecordFootprintMsg:
		a.handleRecordFootprint(ctx, msg)
	case *GetFootprintsMsg:
		a.handleGetFootprints(ctx, msg)
	default:
		a.logger.Warn("unknown message type", "type", msg)
	}
}

func (a *TrackerActor) handleLogAction(ctx actor.Context, msg *LogActionMsg) {
	startTime := time.Now()
	dbCtx := context.Background()

	action := strings.TrimSpace(msg.Action)
	if action == "" {
		ctx.Respond(utils.NewInvalidInputError("Action is required"))
		return
	}

	points, ok := actionPoints[action]
	if !ok {
		points = defaultActionPoints
	}

	entry := &models.ActionEntry{
		ID:        uuid.New(),
		UserID:    msg.UserID,
		Action:    action,
		Category:  strings.TrimSpace(msg.Category),
		Points:    points,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.store.SaveAction(dbCtx, entry); err != nil {
		a.logger.Error("failed to save action", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to log action", err))
		return
	}

	if err := a.store.AddUserPoints(dbCtx, msg.UserID, points); err != nil {
		a.logger.Error("failed to update user points", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update points", err))
		return
	}

	a.logger.Info("action logged", "userId", msg.UserID, "action", action, "points", points)
	a.metrics.AddOperationLatency("log_action", time.Since(startTime))
	ctx.Respond(&ActionLogged{Entry: entry, PointsEarned: points})
}

func (a *TrackerActor) handleGetUserActions(ctx actor.Context, msg *GetUserActionsMsg) {
	actions, err := a.store.GetUserActions(context.Background(), msg.UserID)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load actions", err))
		return
	}
	if actions == nil {
		actions = []*models.ActionEntry{}
	}
	ctx.Respond(&ActionHistory{Actions: actions})
}

func (a *TrackerActor) handleGetSummary(ctx actor.Context, msg *GetSummaryMsg) {
	points, err := a.store.GetUserPoints(context.Background(), msg.UserID)
	if err != nil {
		// A user with no logged actions simply has zero points.
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			ctx.Respond(&models.TrackerSummary{
				UserID:      msg.UserID,
				TotalPoints: 0,
				Level:       models.LevelForPoints(0),
			})
			return
		}
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load points", err))
		return
	}

	ctx.Respond(&models.TrackerSummary{
		UserID:      points.UserID,
		TotalPoints: points.Points,
		Level:       models.LevelForPoints(points.Points),
	})
}

func (a *TrackerActor) handleGetBadge(ctx actor.Context, msg *GetBadgeMsg) {
	points, err := a.store.GetUserPoints(context.Background(), msg.UserID)
	if err != nil {
		ctx.Respond(asAppError(err, "Failed to load points"))
		return
	}

	ctx.Respond(&BadgeResult{
		UserID: points.UserID,
		Badge:  models.BadgeForPoints(points.Points),
	})
}

func (a *TrackerActor) handleGetLeaderboard(ctx actor.Context, msg *GetLeaderboardMsg) {
	startTime := time.Now()

	users, err := a.store.GetLeaderboard(context.Background(), msg.Limit)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load leaderboard", err))
		return
	}

	a.metrics.AddOperationLatency("get_leaderboard", time.Since(startTime))
	ctx.Respond(&Leaderboard{Users: users})
}

func (a *TrackerActor) handleRecordFootprint(ctx actor.Context, msg *RecordFootprintMsg) {
	if msg.CarbonFootprint <= 0 || msg.Date.IsZero() {
		ctx.Respond(utils.NewInvalidInputError("Carbon footprint and date are required"))
		return
	}

	record := &models.FootprintRecord{
		ID:              uuid.New(),
		UserID:          msg.UserID,
		CarbonFootprint: msg.CarbonFootprint,
		Date:            msg.Date,
		CreatedAt:       time.Now().UTC(),
	}

	if err := a.store.SaveFootprint(context.Background(), record); err != nil {
		a.logger.Error("failed to save footprint", "error", err)
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to record footprint", err))
		return
	}

	ctx.Respond(record)
}

func (a *TrackerActor) handleGetFootprints(ctx actor.Context, msg *GetFootprintsMsg) {
	records, err := a.store.GetFootprints(context.Background(), msg.UserID, msg.Start, msg.End)
	if err != nil {
		ctx.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load footprints", err))
		return
	}
	if records == nil {
		records = []*models.FootprintRecord{}
	}
	ctx.Respond(&FootprintHistory{Records: records})
}
