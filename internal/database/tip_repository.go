// internal/database/tip_repository.go
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

// TipDocument represents an eco-tip in MongoDB.
type TipDocument struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	Category   string    `bson:"category"`
	AuthorName string    `bson:"authorName"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

// TipLikeDocument marks a user's like on a tip. Unique per (tipId, userId).
type TipLikeDocument struct {
	ID        string    `bson:"_id"`
	TipID     string    `bson:"tipId"`
	UserID    string    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
}

// TipCommentDocument is a flat comment on a tip.
type TipCommentDocument struct {
	ID         string    `bson:"_id"`
	TipID      string    `bson:"tipId"`
	Content    string    `bson:"content"`
	AuthorName string    `bson:"authorName"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func documentToTip(doc *TipDocument) (*models.Tip, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid tip ID: %v", err)
	}

	return &models.Tip{
		ID:         id,
		Title:      doc.Title,
		Content:    doc.Content,
		Category:   doc.Category,
		AuthorName: doc.AuthorName,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// SaveTip creates or updates a tip.
func (m *MongoDB) SaveTip(ctx context.Context, tip *models.Tip) error {
	doc := TipDocument{
		ID:         tip.ID.String(),
		Title:      tip.Title,
		Content:    tip.Content,
		Category:   tip.Category,
		AuthorName: tip.AuthorName,
		CreatedAt:  tip.CreatedAt,
		UpdatedAt:  tip.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Tips.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetTip retrieves a tip by ID.
func (m *MongoDB) GetTip(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	var doc TipDocument

	err := m.Tips.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Tip not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToTip(&doc)
}

// GetTips returns one page of tips, newest first, optionally filtered by
// category. Like/comment counts are annotated by the caller.
func (m *MongoDB) GetTips(ctx context.Context, category string, page, limit int) (*models.TipPage, error) {
	page, limit = normalizePagination(page, limit)

	query := bson.M{}
	if category != "" {
		query["category"] = category
	}

	total, err := m.Tips.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count tips: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := m.Tips.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	tips := make([]*models.Tip, 0, limit)
	for cursor.Next(ctx) {
		var doc TipDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding tip document", "error", err)
			continue
		}

		tip, err := documentToTip(&doc)
		if err != nil {
			m.logger.Error("error converting tip document", "error", err)
			continue
		}
		tips = append(tips, tip)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return &models.TipPage{
		Tips:       tips,
		Total:      total,
		Page:       page,
		TotalPages: pageCount(total, limit),
	}, nil
}

// CountTipLikes returns the number of likes stored for a tip.
func (m *MongoDB) CountTipLikes(ctx context.Context, tipID uuid.UUID) (int64, error) {
	return m.TipLikes.CountDocuments(ctx, bson.M{"tipId": tipID.String()})
}

// CountTipComments returns the number of comments stored for a tip.
func (m *MongoDB) CountTipComments(ctx context.Context, tipID uuid.UUID) (int64, error) {
	return m.TipComments.CountDocuments(ctx, bson.M{"tipId": tipID.String()})
}

// GetTipLike returns the user's like for a tip, or (nil, nil) when absent.
func (m *MongoDB) GetTipLike(ctx context.Context, tipID uuid.UUID, userID string) (*models.TipLike, error) {
	var doc TipLikeDocument

	filter := bson.M{"tipId": tipID.String(), "userId": userID}
	err := m.TipLikes.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid tip like ID: %v", err)
	}
	parsedTipID, err := uuid.Parse(doc.TipID)
	if err != nil {
		return nil, fmt.Errorf("invalid tip ID: %v", err)
	}

	return &models.TipLike{
		ID:        id,
		TipID:     parsedTipID,
		UserID:    doc.UserID,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// InsertTipLike stores a new like; racing inserts trip the unique index.
func (m *MongoDB) InsertTipLike(ctx context.Context, like *models.TipLike) error {
	doc := TipLikeDocument{
		ID:        like.ID.String(),
		TipID:     like.TipID.String(),
		UserID:    like.UserID,
		CreatedAt: like.CreatedAt,
	}

	_, err := m.TipLikes.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrDuplicate, "Tip already liked", err)
	}
	return err
}

// DeleteTipLike removes the user's like for a tip.
func (m *MongoDB) DeleteTipLike(ctx context.Context, tipID uuid.UUID, userID string) error {
	filter := bson.M{"tipId": tipID.String(), "userId": userID}
	_, err := m.TipLikes.DeleteOne(ctx, filter)
	return err
}

// SaveTipComment creates or updates a tip comment.
func (m *MongoDB) SaveTipComment(ctx context.Context, comment *models.TipComment) error {
	doc := TipCommentDocument{
		ID:         comment.ID.String(),
		TipID:      comment.TipID.String(),
		Content:    comment.Content,
		AuthorName: comment.AuthorName,
		CreatedAt:  comment.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.TipComments.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetTipComments returns all comments for a tip, newest first.
func (m *MongoDB) GetTipComments(ctx context.Context, tipID uuid.UUID) ([]*models.TipComment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.TipComments.Find(ctx, bson.M{"tipId": tipID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.TipComment
	for cursor.Next(ctx) {
		var doc TipCommentDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding tip comment document", "error", err)
			continue
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			m.logger.Error("error converting tip comment document", "error", err)
			continue
		}
		parsedTipID, err := uuid.Parse(doc.TipID)
		if err != nil {
			m.logger.Error("error converting tip comment document", "error", err)
			continue
		}

		comments = append(comments, &models.TipComment{
			ID:         id,
			TipID:      parsedTipID,
			Content:    doc.Content,
			AuthorName: doc.AuthorName,
			CreatedAt:  doc.CreatedAt,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return comments, nil
}
