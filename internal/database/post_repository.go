// internal/database/post_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Kahlar/webdevproject/internal/models"
	"github.com/Kahlar/webdevproject/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument represents the MongoDB schema for a forum post.
type PostDocument struct {
	ID           string    `bson:"_id"`
	Title        string    `bson:"title"`
	Content      string    `bson:"content"`
	AuthorName   string    `bson:"authorName"`
	LikeCount    int       `bson:"likes"`
	DislikeCount int       `bson:"dislikes"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func postToDocument(post *models.Post) *PostDocument {
	return &PostDocument{
		ID:           post.ID.String(),
		Title:        post.Title,
		Content:      post.Content,
		AuthorName:   post.AuthorName,
		LikeCount:    post.LikeCount,
		DislikeCount: post.DislikeCount,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

func documentToPost(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	return &models.Post{
		ID:           id,
		Title:        doc.Title,
		Content:      doc.Content,
		AuthorName:   doc.AuthorName,
		LikeCount:    clampCount(doc.LikeCount),
		DislikeCount: clampCount(doc.DislikeCount),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

// clampCount keeps counter drift from ever surfacing as a negative count.
func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// normalizePagination applies the lenient page/limit rules: values below 1
// clamp to the defaults instead of being rejected.
func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// pageCount computes the number of pages for a total at the given page size.
func pageCount(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// SavePost creates or updates a post.
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	doc := postToDocument(post)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Posts.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetPost retrieves a post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToPost(&doc)
}

// GetPosts returns one page of posts, newest first.
func (m *MongoDB) GetPosts(ctx context.Context, page, limit int) (*models.PostPage, error) {
	page, limit = normalizePagination(page, limit)

	total, err := m.Posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := m.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	posts := make([]*models.Post, 0, limit)
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding post document", "error", err)
			continue
		}

		post, err := documentToPost(&doc)
		if err != nil {
			m.logger.Error("error converting post document", "error", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return &models.PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		TotalPages: pageCount(total, limit),
	}, nil
}

// UpdatePostReactionCounts adjusts the denormalized like/dislike counters
// with a single atomic $inc, avoiding read-modify-write races.
func (m *MongoDB) UpdatePostReactionCounts(ctx context.Context, postID uuid.UUID, likeDelta, dislikeDelta int) error {
	filter := bson.M{"_id": postID.String()}
	update := bson.M{
		"$inc": bson.M{
			"likes":    likeDelta,
			"dislikes": dislikeDelta,
		},
		"$set": bson.M{
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := m.Posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return nil
}
