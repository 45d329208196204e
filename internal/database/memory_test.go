package database

import (
	"context"
	"testing"
	"time"

	"github.com/Kahlar/webdevproject/internal/models"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memPost(t *testing.T, store *MemoryStore) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:        uuid.New(),
		Title:     "t",
		Content:   "c",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SavePost(context.Background(), post))
	return post
}

func TestMemoryStoreReactionUniqueness(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	post := memPost(t, store)

	reaction := &models.Reaction{
		ID:        uuid.New(),
		PostID:    post.ID,
		UserID:    "u1",
		Type:      models.ReactionLike,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertReaction(ctx, reaction))

	err := store.InsertReaction(ctx, &models.Reaction{
		ID:     uuid.New(),
		PostID: post.ID,
		UserID: "u1",
		Type:   models.ReactionDislike,
	})
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrDuplicate))

	// The stored reaction keeps its original type.
	stored, err := store.GetReaction(ctx, post.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.ReactionLike, stored.Type)
}

func TestMemoryStoreReactionAbsentIsNilNil(t *testing.T) {
	store := NewMemoryStore()
	post := memPost(t, store)

	stored, err := store.GetReaction(context.Background(), post.ID, "nobody")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestMemoryStoreCountsClampedOnRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	post := memPost(t, store)

	require.NoError(t, store.UpdatePostReactionCounts(ctx, post.ID, -2, 1))

	got, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)
	assert.Equal(t, 1, got.DislikeCount)
}

func TestMemoryStoreUpdateCountsUnknownPost(t *testing.T) {
	store := NewMemoryStore()

	err := store.UpdatePostReactionCounts(context.Background(), uuid.New(), 1, 0)
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestMemoryStoreLeaderboardTieBreak(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.AddUserPoints(ctx, "zed", 10))
	require.NoError(t, store.AddUserPoints(ctx, "amy", 10))
	require.NoError(t, store.AddUserPoints(ctx, "max", 30))

	users, err := store.GetLeaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "max", users[0].UserID)
	// Equal points order by user id.
	assert.Equal(t, "amy", users[1].UserID)
	assert.Equal(t, "zed", users[2].UserID)
}

func TestMemoryStorePostPagination(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		memPost(t, store)
	}

	page, err := store.GetPosts(ctx, 2, 5)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 5)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	// Past the end returns an empty page, not an error.
	page, err = store.GetPosts(ctx, 9, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}
