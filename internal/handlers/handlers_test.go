package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kahlar/webdevproject/internal/database"
	"github.com/Kahlar/webdevproject/internal/engine"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *http.ServeMux) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	metrics := utils.NewMetricsCollector()
	eng := engine.NewEngine(system, store, metrics, logger)
	t.Cleanup(func() {
		eng.Stop()
	})

	server := NewServer(system, eng, store, metrics, logger)
	return server, server.Routes()
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func createPostHTTP(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	rec := doRequest(t, mux, http.MethodPost, "/forum", "",
		`{"title":"Recycling Tips","content":"Please share tips","authorName":"Amy"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var post struct {
		ID string `json:"id"`
	}
	decodeJSON(t, rec, &post)
	require.NotEmpty(t, post.ID)
	return post.ID
}

func TestForumPostLifecycle(t *testing.T) {
	_, mux := newTestServer(t)

	postID := createPostHTTP(t, mux)

	rec := doRequest(t, mux, http.MethodGet, "/forum?page=1&limit=10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Posts []struct {
			ID           string `json:"id"`
			Title        string `json:"title"`
			LikeCount    int    `json:"likeCount"`
			DislikeCount int    `json:"dislikeCount"`
		} `json:"posts"`
		Total int64 `json:"total"`
	}
	decodeJSON(t, rec, &page)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, postID, page.Posts[0].ID)
	assert.Equal(t, "Recycling Tips", page.Posts[0].Title)
	assert.Equal(t, 0, page.Posts[0].LikeCount)
	assert.Equal(t, int64(1), page.Total)
}

func TestCreatePostMissingTitle(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/forum", "", `{"content":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Contains(t, body["error"], "Title")
}

func TestCreatePostUnknownField(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/forum", "", `{"title":"t","content":"c","tittle":"typo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReactionToggleOverHTTP(t *testing.T) {
	_, mux := newTestServer(t)
	postID := createPostHTTP(t, mux)

	// Like toggles on.
	rec := doRequest(t, mux, http.MethodPost, "/forum/"+postID+"/interactions", "u1", `{"type":"like"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var state map[string]bool
	decodeJSON(t, rec, &state)
	liked, present := state["like"]
	assert.True(t, present)
	assert.True(t, liked)

	// Same type toggles off.
	rec = doRequest(t, mux, http.MethodPost, "/forum/"+postID+"/interactions", "u1", `{"type":"like"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &state)
	assert.False(t, state["like"])

	// Dislike from a second user.
	rec = doRequest(t, mux, http.MethodPost, "/forum/"+postID+"/interactions", "u2", `{"type":"dislike"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/forum/"+postID+"/interactions", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var counts struct {
		Likes    int `json:"likes"`
		Dislikes int `json:"dislikes"`
	}
	decodeJSON(t, rec, &counts)
	assert.Equal(t, 0, counts.Likes)
	assert.Equal(t, 1, counts.Dislikes)

	// Each caller sees their own reaction.
	rec = doRequest(t, mux, http.MethodGet, "/forum/"+postID+"/reaction", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reaction map[string]string
	decodeJSON(t, rec, &reaction)
	assert.Equal(t, "dislike", reaction["type"])

	rec = doRequest(t, mux, http.MethodGet, "/forum/"+postID+"/reaction", "u1", "")
	decodeJSON(t, rec, &reaction)
	assert.Equal(t, "none", reaction["type"])
}

func TestReactionInvalidType(t *testing.T) {
	_, mux := newTestServer(t)
	postID := createPostHTTP(t, mux)

	rec := doRequest(t, mux, http.MethodPost, "/forum/"+postID+"/interactions", "u1", `{"type":"love"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Invalid interaction type", body["error"])
}

func TestReactionUnknownPost(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/forum/"+uuid.NewString()+"/interactions", "u1", `{"type":"like"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReactionMalformedPostID(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/forum/not-a-uuid/interactions", "u1", `{"type":"like"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentThreadOverHTTP(t *testing.T) {
	_, mux := newTestServer(t)
	postID := createPostHTTP(t, mux)

	rec := doRequest(t, mux, http.MethodPost, "/forum/"+postID+"/comments", "",
		`{"content":"Great idea","authorName":"Ben"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var comment struct {
		ID string `json:"id"`
	}
	decodeJSON(t, rec, &comment)
	require.NotEmpty(t, comment.ID)

	rec = doRequest(t, mux, http.MethodPost, "/forum/"+postID+"/comments/"+comment.ID+"/replies", "",
		`{"content":"Agreed","authorName":"Cal"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, mux, http.MethodGet, "/forum/"+postID+"/comments", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var thread struct {
		Comments []struct {
			Content string `json:"content"`
			Replies []struct {
				Content string `json:"content"`
			} `json:"replies"`
		} `json:"comments"`
	}
	decodeJSON(t, rec, &thread)
	require.Len(t, thread.Comments, 1)
	assert.Equal(t, "Great idea", thread.Comments[0].Content)
	require.Len(t, thread.Comments[0].Replies, 1)
	assert.Equal(t, "Agreed", thread.Comments[0].Replies[0].Content)
}

func TestCommentOnMissingPost(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/forum/"+uuid.NewString()+"/comments", "",
		`{"content":"hello","authorName":"Ben"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTipsOverHTTP(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/tips", "",
		`{"title":"Cold washes","content":"Wash at 30 degrees","category":"energy","authorName":"Amy"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tip struct {
		ID string `json:"id"`
	}
	decodeJSON(t, rec, &tip)
	require.NotEmpty(t, tip.ID)

	rec = doRequest(t, mux, http.MethodPost, "/tips/"+tip.ID+"/interactions", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var like struct {
		Liked bool  `json:"liked"`
		Likes int64 `json:"likes"`
	}
	decodeJSON(t, rec, &like)
	assert.True(t, like.Liked)
	assert.Equal(t, int64(1), like.Likes)

	rec = doRequest(t, mux, http.MethodPost, "/tips/"+tip.ID+"/comments", "",
		`{"content":"works for me","authorName":"Ben"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/tips?category=energy", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Tips []struct {
			ID     string `json:"id"`
			Counts struct {
				Likes    int64 `json:"likes"`
				Comments int64 `json:"comments"`
			} `json:"_count"`
		} `json:"tips"`
	}
	decodeJSON(t, rec, &page)
	require.Len(t, page.Tips, 1)
	assert.Equal(t, tip.ID, page.Tips[0].ID)
	assert.Equal(t, int64(1), page.Tips[0].Counts.Likes)
	assert.Equal(t, int64(1), page.Tips[0].Counts.Comments)
}

func TestTrackerOverHTTP(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/tracker/actions", "u1",
		`{"action":"Used public transport","category":"transport"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var logged struct {
		PointsEarned int `json:"pointsEarned"`
	}
	decodeJSON(t, rec, &logged)
	assert.Equal(t, 10, logged.PointsEarned)

	rec = doRequest(t, mux, http.MethodGet, "/tracker/users/u1/summary", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		TotalPoints int    `json:"totalPoints"`
		Level       string `json:"level"`
	}
	decodeJSON(t, rec, &summary)
	assert.Equal(t, 10, summary.TotalPoints)
	assert.Equal(t, "Newbie", summary.Level)

	rec = doRequest(t, mux, http.MethodGet, "/leaderboard?limit=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var board struct {
		Users []struct {
			UserID string `json:"userId"`
			Points int    `json:"points"`
		} `json:"users"`
	}
	decodeJSON(t, rec, &board)
	require.Len(t, board.Users, 1)
	assert.Equal(t, "u1", board.Users[0].UserID)
	assert.Equal(t, 10, board.Users[0].Points)

	rec = doRequest(t, mux, http.MethodGet, "/tracker/users/ghost/badge", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCarbonOverHTTP(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/carbon", "u1",
		`{"carbonFootprint":12.5,"date":"2026-08-30T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, mux, http.MethodPost, "/carbon", "u1",
		`{"carbonFootprint":8.1,"date":"not a date"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/carbon", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Records []struct {
			CarbonFootprint float64 `json:"carbonFootprint"`
		} `json:"records"`
	}
	decodeJSON(t, rec, &history)
	require.Len(t, history.Records, 1)
	assert.Equal(t, 12.5, history.Records[0].CarbonFootprint)

	// Another user's history is empty.
	rec = doRequest(t, mux, http.MethodGet, "/carbon", "u2", "")
	decodeJSON(t, rec, &history)
	assert.Empty(t, history.Records)
}

func TestHealthAndStats(t *testing.T) {
	_, mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]string
	decodeJSON(t, rec, &health)
	assert.Equal(t, "healthy", health["status"])

	doRequest(t, mux, http.MethodGet, "/forum", "", "")

	rec = doRequest(t, mux, http.MethodGet, "/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		Requests uint64 `json:"requests"`
	}
	decodeJSON(t, rec, &stats)
	assert.GreaterOrEqual(t, stats.Requests, uint64(1))
}
