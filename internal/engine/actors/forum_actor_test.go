package actors

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Kahlar/webdevproject/internal/database"
	"github.com/Kahlar/webdevproject/internal/models"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ask(t *testing.T, system *actor.ActorSystem, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	future := system.Root.RequestFuture(pid, msg, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	return result
}

func spawnForumActor(t *testing.T) (*actor.ActorSystem, *actor.PID, *database.MemoryStore) {
	t.Helper()
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewForumActor(store, utils.NewMetricsCollector(), testLogger())
	})
	pid := system.Root.Spawn(props)
	t.Cleanup(func() {
		system.Root.StopFuture(pid).Wait()
	})
	return system, pid, store
}

func TestForumActorCreatePost(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	result := ask(t, system, pid, &CreatePostMsg{
		Title:      "Recycling Tips",
		Content:    "Please share tips",
		AuthorName: "Amy",
	})

	post, ok := result.(*models.Post)
	require.True(t, ok, "expected a post, got %T: %v", result, result)
	assert.Equal(t, "Recycling Tips", post.Title)
	assert.Equal(t, "Amy", post.AuthorName)
	assert.Equal(t, 0, post.LikeCount)
	assert.Equal(t, 0, post.DislikeCount)
}

func TestForumActorCreatePostDefaultsAuthor(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	result := ask(t, system, pid, &CreatePostMsg{Title: "T", Content: "C", AuthorName: "   "})

	post, ok := result.(*models.Post)
	require.True(t, ok)
	assert.Equal(t, "Anonymous", post.AuthorName)
}

func TestForumActorCreatePostValidation(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	result := ask(t, system, pid, &CreatePostMsg{Title: "  ", Content: "body"})

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}

func TestForumActorListPostsNewestFirst(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	ask(t, system, pid, &CreatePostMsg{Title: "first", Content: "c", AuthorName: "a"})
	time.Sleep(5 * time.Millisecond)
	ask(t, system, pid, &CreatePostMsg{Title: "second", Content: "c", AuthorName: "a"})

	result := ask(t, system, pid, &GetPostsMsg{Page: 1, Limit: 10})
	page, ok := result.(*models.PostPage)
	require.True(t, ok)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "second", page.Posts[0].Title)
	assert.Equal(t, "first", page.Posts[1].Title)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestForumActorListPostsClampsPagination(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	ask(t, system, pid, &CreatePostMsg{Title: "t", Content: "c", AuthorName: "a"})

	result := ask(t, system, pid, &GetPostsMsg{Page: -3, Limit: 0})
	page, ok := result.(*models.PostPage)
	require.True(t, ok)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Posts, 1)
}

func TestForumActorReactionToggle(t *testing.T) {
	system, pid, store := spawnForumActor(t)

	created := ask(t, system, pid, &CreatePostMsg{
		Title:      "Recycling Tips",
		Content:    "Please share tips",
		AuthorName: "Amy",
	})
	post := created.(*models.Post)

	// Like: reaction becomes active.
	result := ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionLike})
	state, ok := result.(*ReactionState)
	require.True(t, ok, "expected a reaction state, got %T: %v", result, result)
	assert.True(t, state.Active)
	assert.Equal(t, models.ReactionLike, state.Type)
	assert.Equal(t, 1, state.LikeCount)

	// Same type again: idempotent toggle-off, net counter change zero.
	result = ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionLike})
	state = result.(*ReactionState)
	assert.False(t, state.Active)
	assert.Equal(t, 0, state.LikeCount)

	stored, err := store.GetReaction(context.Background(), post.ID, "u1")
	require.NoError(t, err)
	assert.Nil(t, stored, "reaction should be absent after toggle-off")

	// Dislike: new reaction of the other type.
	result = ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionDislike})
	state = result.(*ReactionState)
	assert.True(t, state.Active)
	assert.Equal(t, 1, state.DislikeCount)
	assert.Equal(t, 0, state.LikeCount)
}

func TestForumActorReactionSwitch(t *testing.T) {
	system, pid, store := spawnForumActor(t)

	created := ask(t, system, pid, &CreatePostMsg{Title: "t", Content: "c", AuthorName: "a"})
	post := created.(*models.Post)

	ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionLike})
	result := ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionDislike})

	state := result.(*ReactionState)
	assert.True(t, state.Active)
	assert.Equal(t, 0, state.LikeCount, "switch decrements the old counter")
	assert.Equal(t, 1, state.DislikeCount, "switch increments the new counter")

	// Exactly one reaction document remains, with the new type.
	stored, err := store.GetReaction(context.Background(), post.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.ReactionDislike, stored.Type)
}

func TestForumActorReactionsIndependentPerUser(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	created := ask(t, system, pid, &CreatePostMsg{Title: "t", Content: "c", AuthorName: "a"})
	post := created.(*models.Post)

	ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionLike})
	result := ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u2", Type: models.ReactionLike})

	state := result.(*ReactionState)
	assert.Equal(t, 2, state.LikeCount)
}

func TestForumActorReactionUnknownPost(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	result := ask(t, system, pid, &SetReactionMsg{PostID: uuid.New(), UserID: "u1", Type: models.ReactionLike})

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestForumActorGetReaction(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	created := ask(t, system, pid, &CreatePostMsg{Title: "t", Content: "c", AuthorName: "a"})
	post := created.(*models.Post)

	result := ask(t, system, pid, &GetReactionMsg{PostID: post.ID, UserID: "u1"})
	state := result.(*ReactionState)
	assert.Equal(t, models.ReactionNone, state.Type)
	assert.False(t, state.Active)

	ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionLike})

	result = ask(t, system, pid, &GetReactionMsg{PostID: post.ID, UserID: "u1"})
	state = result.(*ReactionState)
	assert.Equal(t, models.ReactionLike, state.Type)
	assert.True(t, state.Active)
}

func TestForumActorGetInteractions(t *testing.T) {
	system, pid, _ := spawnForumActor(t)

	created := ask(t, system, pid, &CreatePostMsg{Title: "t", Content: "c", AuthorName: "a"})
	post := created.(*models.Post)

	ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u1", Type: models.ReactionLike})
	ask(t, system, pid, &SetReactionMsg{PostID: post.ID, UserID: "u2", Type: models.ReactionDislike})

	result := ask(t, system, pid, &GetInteractionsMsg{PostID: post.ID})
	counts, ok := result.(*InteractionCounts)
	require.True(t, ok)
	assert.Equal(t, 1, counts.Likes)
	assert.Equal(t, 1, counts.Dislikes)
}
