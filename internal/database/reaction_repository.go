// internal/database/reaction_repository.go
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
)

// ReactionDocument represents a user's reaction to a post in MongoDB. The
// collection carries a unique index on (postId, userId), which is what
// actually holds the one-reaction-per-user invariant under concurrency.
type ReactionDocument struct {
	ID        string    `bson:"_id"`
	PostID    string    `bson:"postId"`
	UserID    string    `bson:"userId"`
	Type      string    `bson:"type"`
	CreatedAt time.Time `bson:"createdAt"`
}

func documentToReaction(doc *ReactionDocument) (*models.Reaction, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid reaction ID: %v", err)
	}
	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	return &models.Reaction{
		ID:        id,
		PostID:    postID,
		UserID:    doc.UserID,
		Type:      models.ReactionType(doc.Type),
		CreatedAt: doc.CreatedAt,
	}, nil
}

// GetReaction returns the user's stored reaction for a post, or (nil, nil)
// when there is none.
func (m *MongoDB) GetReaction(ctx context.Context, postID uuid.UUID, userID string) (*models.Reaction, error) {
	var doc ReactionDocument

	filter := bson.M{"postId": postID.String(), "userId": userID}
	err := m.Reactions.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return documentToReaction(&doc)
}

// InsertReaction stores a new reaction. A concurrent insert for the same
// (postId, userId) pair trips the unique index and surfaces as a duplicate.
func (m *MongoDB) InsertReaction(ctx context.Context, reaction *models.Reaction) error {
	doc := ReactionDocument{
		ID:        reaction.ID.String(),
		PostID:    reaction.PostID.String(),
		UserID:    reaction.UserID,
		Type:      string(reaction.Type),
		CreatedAt: reaction.CreatedAt,
	}

	_, err := m.Reactions.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrDuplicate, "Reaction already exists", err)
	}
	return err
}

// DeleteReaction removes the user's reaction for a post.
func (m *MongoDB) DeleteReaction(ctx context.Context, postID uuid.UUID, userID string) error {
	filter := bson.M{"postId": postID.String(), "userId": userID}
	_, err := m.Reactions.DeleteOne(ctx, filter)
	return err
}

// UpdateReactionType switches an existing reaction between like and dislike.
func (m *MongoDB) UpdateReactionType(ctx context.Context, postID uuid.UUID, userID string, reactionType models.ReactionType) error {
	filter := bson.M{"postId": postID.String(), "userId": userID}
	update := bson.M{"$set": bson.M{"type": string(reactionType)}}

	result, err := m.Reactions.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Reaction not found", nil)
	}
	return nil
}
