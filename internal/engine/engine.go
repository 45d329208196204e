package engine

import (
	"log/slog"

	"github.com/Kahlar/webdevproject/internal/database"
	"github.com/Kahlar/webdevproject/internal/engine/actors"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine spawns and owns one actor per domain aggregate. Handlers reach the
// aggregates through the PIDs it exposes.
type Engine struct {
	system     *actor.ActorSystem
	forumPID   *actor.PID
	commentPID *actor.PID
	tipsPID    *actor.PID
	trackerPID *actor.PID
}

// NewEngine creates the engine and spawns the domain actors.
func NewEngine(system *actor.ActorSystem, store database.Store, metrics *utils.MetricsCollector, logger *slog.Logger) *Engine {
	forumProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewForumActor(store, metrics, logger)
	})
	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(store, metrics, logger)
	})
	tipsProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewTipsActor(store, metrics, logger)
	})
	trackerProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewTrackerActor(store, metrics, logger)
	})

	return &Engine{
		system:     system,
		forumPID:   system.Root.Spawn(forumProps),
		commentPID: system.Root.Spawn(commentProps),
		tipsPID:    system.Root.Spawn(tipsProps),
		trackerPID: system.Root.Spawn(trackerProps),
	}
}

func (e *Engine) GetForumActor() *actor.PID   { return e.forumPID }
func (e *Engine) GetCommentActor() *actor.PID { return e.commentPID }
func (e *Engine) GetTipsActor() *actor.PID    { return e.tipsPID }
func (e *Engine) GetTrackerActor() *actor.PID { return e.trackerPID }

// Stop shuts the domain actors down, waiting for in-flight messages.
func (e *Engine) Stop() {
	e.system.Root.StopFuture(e.forumPID).Wait()
	e.system.Root.StopFuture(e.commentPID).Wait()
	e.system.Root.StopFuture(e.tipsPID).Wait()
	e.system.Root.StopFuture(e.trackerPID).Wait()
}
