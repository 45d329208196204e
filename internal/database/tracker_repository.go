// internal/database/tracker_repository.go
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

// ActionDocument is one logged eco-action in MongoDB.
type ActionDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Action    string    `bson:"action"`
	Category  string    `bson:"category"`
	Points    int       `bson:"points"`
	CreatedAt time.Time `bson:"createdAt"`
}

// UserDocument carries the per-user points tally. Unique per userId.
type UserDocument struct {
	UserID string `bson:"userId"`
	Points int    `bson:"points"`
}

// SaveAction appends an action entry to the tracker log.
func (m *MongoDB) SaveAction(ctx context.Context, entry *models.ActionEntry) error {
	doc := ActionDocument{
		ID:        entry.ID.String(),
		UserID:    entry.UserID,
		Action:    entry.Action,
		Category:  entry.Category,
		Points:    entry.Points,
		CreatedAt: entry.CreatedAt,
	}

	_, err := m.Actions.InsertOne(ctx, doc)
	return err
}

// GetUserActions returns a user's action history, newest first.
func (m *MongoDB) GetUserActions(ctx context.Context, userID string) ([]*models.ActionEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.Actions.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.ActionEntry
	for cursor.Next(ctx) {
		var doc ActionDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding action document", "error", err)
			continue
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			m.logger.Error("error converting action document", "error", err)
			continue
		}

		entries = append(entries, &models.ActionEntry{
			ID:        id,
			UserID:    doc.UserID,
			Action:    doc.Action,
			Category:  doc.Category,
			Points:    doc.Points,
			CreatedAt: doc.CreatedAt,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return entries, nil
}

// AddUserPoints adjusts a user's points tally with an atomic $inc, creating
// the user document on first use.
func (m *MongoDB) AddUserPoints(ctx context.Context, userID string, delta int) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"userId": userID}
	update := bson.M{"$inc": bson.M{"points": delta}}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetUserPoints returns a user's points tally.
func (m *MongoDB) GetUserPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found: "+userID, err)
	}
	if err != nil {
		return nil, err
	}

	return &models.UserPoints{UserID: doc.UserID, Points: doc.Points}, nil
}

// GetLeaderboard returns the top users by points, descending.
func (m *MongoDB) GetLeaderboard(ctx context.Context, limit int) ([]*models.UserPoints, error) {
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	leaderboard := make([]*models.UserPoints, 0, limit)
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding user document", "error", err)
			continue
		}
		leaderboard = append(leaderboard, &models.UserPoints{UserID: doc.UserID, Points: doc.Points})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return leaderboard, nil
}
