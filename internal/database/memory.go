// internal/database/memory.go
package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Kahlar/webdevproject/internal/models"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store backend used for local development
// (MONGODB_URI=memory) and tests. It mirrors the MongoDB adapter's
// semantics: newest-first sorts, lenient pagination, unique reactions per
// (postId, userId), counters clamped on read.
type MemoryStore struct {
	mu sync.RWMutex

	posts       map[uuid.UUID]*models.Post
	reactions   map[uuid.UUID]map[string]*models.Reaction // postID -> userID -> reaction
	comments    map[uuid.UUID]*models.Comment
	replies     []*models.Reply
	tips        map[uuid.UUID]*models.Tip
	tipLikes    map[uuid.UUID]map[string]*models.TipLike // tipID -> userID -> like
	tipComments []*models.TipComment
	actions     []*models.ActionEntry
	points      map[string]int
	footprints  []*models.FootprintRecord
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:     make(map[uuid.UUID]*models.Post),
		reactions: make(map[uuid.UUID]map[string]*models.Reaction),
		comments:  make(map[uuid.UUID]*models.Comment),
		tips:      make(map[uuid.UUID]*models.Tip),
		tipLikes:  make(map[uuid.UUID]map[string]*models.TipLike),
		points:    make(map[string]int),
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error  { return nil }
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func (s *MemoryStore) SavePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	copied := *post
	copied.LikeCount = clampCount(copied.LikeCount)
	copied.DislikeCount = clampCount(copied.DislikeCount)
	return &copied, nil
}

func (s *MemoryStore) GetPosts(ctx context.Context, page, limit int) (*models.PostPage, error) {
	page, limit = normalizePagination(page, limit)

	s.mu.RLock()
	all := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		copied := *post
		copied.LikeCount = clampCount(copied.LikeCount)
		copied.DislikeCount = clampCount(copied.DislikeCount)
		all = append(all, &copied)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return &models.PostPage{
		Posts:      all[start:end],
		Total:      total,
		Page:       page,
		TotalPages: pageCount(total, limit),
	}, nil
}

func (s *MemoryStore) UpdatePostReactionCounts(ctx context.Context, postID uuid.UUID, likeDelta, dislikeDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	post.LikeCount += likeDelta
	post.DislikeCount += dislikeDelta
	post.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) GetReaction(ctx context.Context, postID uuid.UUID, userID string) (*models.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reaction, ok := s.reactions[postID][userID]
	if !ok {
		return nil, nil
	}
	copied := *reaction
	return &copied, nil
}

func (s *MemoryStore) InsertReaction(ctx context.Context, reaction *models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.reactions[reaction.PostID]
	if !ok {
		byUser = make(map[string]*models.Reaction)
		s.reactions[reaction.PostID] = byUser
	}
	if _, exists := byUser[reaction.UserID]; exists {
		return utils.NewAppError(utils.ErrDuplicate, "Reaction already exists", nil)
	}
	copied := *reaction
	byUser[reaction.UserID] = &copied
	return nil
}

func (s *MemoryStore) DeleteReaction(ctx context.Context, postID uuid.UUID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reactions[postID], userID)
	return nil
}

func (s *MemoryStore) UpdateReactionType(ctx context.Context, postID uuid.UUID, userID string, reactionType models.ReactionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reaction, ok := s.reactions[postID][userID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Reaction not found", nil)
	}
	reaction.Type = reactionType
	return nil
}

func (s *MemoryStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *comment
	copied.Replies = nil
	s.comments[comment.ID] = &copied
	return nil
}

func (s *MemoryStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	copied := *comment
	return &copied, nil
}

func (s *MemoryStore) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	s.mu.RLock()
	var comments []*models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	s.mu.RUnlock()

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *MemoryStore) SaveReply(ctx context.Context, reply *models.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *reply
	s.replies = append(s.replies, &copied)
	return nil
}

func (s *MemoryStore) GetPostReplies(ctx context.Context, postID uuid.UUID) ([]*models.Reply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var replies []*models.Reply
	for _, reply := range s.replies {
		if reply.PostID == postID {
			copied := *reply
			replies = append(replies, &copied)
		}
	}
	return replies, nil
}

func (s *MemoryStore) SaveTip(ctx context.Context, tip *models.Tip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *tip
	s.tips[tip.ID] = &copied
	return nil
}

func (s *MemoryStore) GetTip(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tip, ok := s.tips[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Tip not found", nil)
	}
	copied := *tip
	return &copied, nil
}

func (s *MemoryStore) GetTips(ctx context.Context, category string, page, limit int) (*models.TipPage, error) {
	page, limit = normalizePagination(page, limit)

	s.mu.RLock()
	var all []*models.Tip
	for _, tip := range s.tips {
		if category == "" || tip.Category == category {
			copied := *tip
			all = append(all, &copied)
		}
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return &models.TipPage{
		Tips:       all[start:end],
		Total:      total,
		Page:       page,
		TotalPages: pageCount(total, limit),
	}, nil
}

func (s *MemoryStore) CountTipLikes(ctx context.Context, tipID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.tipLikes[tipID])), nil
}

func (s *MemoryStore) CountTipComments(ctx context.Context, tipID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, comment := range s.tipComments {
		if comment.TipID == tipID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) GetTipLike(ctx context.Context, tipID uuid.UUID, userID string) (*models.TipLike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	like, ok := s.tipLikes[tipID][userID]
	if !ok {
		return nil, nil
	}
	copied := *like
	return &copied, nil
}

func (s *MemoryStore) InsertTipLike(ctx context.Context, like *models.TipLike) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.tipLikes[like.TipID]
	if !ok {
		byUser = make(map[string]*models.TipLike)
		s.tipLikes[like.TipID] = byUser
	}
	if _, exists := byUser[like.UserID]; exists {
		return utils.NewAppError(utils.ErrDuplicate, "Tip already liked", nil)
	}
	copied := *like
	byUser[like.UserID] = &copied
	return nil
}

func (s *MemoryStore) DeleteTipLike(ctx context.Context, tipID uuid.UUID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tipLikes[tipID], userID)
	return nil
}

func (s *MemoryStore) SaveTipComment(ctx context.Context, comment *models.TipComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *comment
	s.tipComments = append(s.tipComments, &copied)
	return nil
}

func (s *MemoryStore) GetTipComments(ctx context.Context, tipID uuid.UUID) ([]*models.TipComment, error) {
	s.mu.RLock()
	var comments []*models.TipComment
	for _, comment := range s.tipComments {
		if comment.TipID == tipID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	s.mu.RUnlock()

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *MemoryStore) SaveAction(ctx context.Context, entry *models.ActionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.actions = append(s.actions, &copied)
	return nil
}

func (s *MemoryStore) GetUserActions(ctx context.Context, userID string) ([]*models.ActionEntry, error) {
	s.mu.RLock()
	var entries []*models.ActionEntry
	for _, entry := range s.actions {
		if entry.UserID == userID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *MemoryStore) AddUserPoints(ctx context.Context, userID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[userID] += delta
	return nil
}

func (s *MemoryStore) GetUserPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	points, ok := s.points[userID]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found: "+userID, nil)
	}
	return &models.UserPoints{UserID: userID, Points: points}, nil
}

func (s *MemoryStore) GetLeaderboard(ctx context.Context, limit int) ([]*models.UserPoints, error) {
	if limit < 1 {
		limit = 10
	}

	s.mu.RLock()
	leaderboard := make([]*models.UserPoints, 0, len(s.points))
	for userID, points := range s.points {
		leaderboard = append(leaderboard, &models.UserPoints{UserID: userID, Points: points})
	}
	s.mu.RUnlock()

	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].Points != leaderboard[j].Points {
			return leaderboard[i].Points > leaderboard[j].Points
		}
		return leaderboard[i].UserID < leaderboard[j].UserID
	})
	if len(leaderboard) > limit {
		leaderboard = leaderboard[:limit]
	}
	return leaderboard, nil
}

func (s *MemoryStore) SaveFootprint(ctx context.Context, record *models.FootprintRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.footprints = append(s.footprints, &copied)
	return nil
}

func (s *MemoryStore) GetFootprints(ctx context.Context, userID string, start, end *time.Time) ([]*models.FootprintRecord, error) {
	s.mu.RLock()
	var records []*models.FootprintRecord
	for _, record := range s.footprints {
		if record.UserID != userID {
			continue
		}
		if start != nil && end != nil && (record.Date.Before(*start) || record.Date.After(*end)) {
			continue
		}
		copied := *record
		records = append(records, &copied)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}
