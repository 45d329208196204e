// internal/database/comment_repository.go
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

// CommentDocument represents a top-level comment in MongoDB.
type CommentDocument struct {
	ID         string    `bson:"_id"`
	PostID     string    `bson:"postId"`
	Content    string    `bson:"content"`
	AuthorName string    `bson:"authorName"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// ReplyDocument represents a reply to a comment in MongoDB.
type ReplyDocument struct {
	ID         string    `bson:"_id"`
	PostID     string    `bson:"postId"`
	CommentID  string    `bson:"commentId"`
	Content    string    `bson:"content"`
	AuthorName string    `bson:"authorName"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func documentToComment(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}
	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	return &models.Comment{
		ID:         id,
		PostID:     postID,
		Content:    doc.Content,
		AuthorName: doc.AuthorName,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func documentToReply(doc *ReplyDocument) (*models.Reply, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid reply ID: %v", err)
	}
	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}
	commentID, err := uuid.Parse(doc.CommentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}

	return &models.Reply{
		ID:         id,
		PostID:     postID,
		CommentID:  commentID,
		Content:    doc.Content,
		AuthorName: doc.AuthorName,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

// SaveComment creates or updates a comment.
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	doc := CommentDocument{
		ID:         comment.ID.String(),
		PostID:     comment.PostID.String(),
		Content:    comment.Content,
		AuthorName: comment.AuthorName,
		CreatedAt:  comment.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Comments.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save comment: %v", err)
	}
	return nil
}

// GetComment retrieves a comment by ID.
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToComment(&doc)
}

// GetPostComments returns all comments for a post, newest first.
func (m *MongoDB) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.Comments.Find(ctx, bson.M{"postId": postID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding comment document", "error", err)
			continue
		}

		comment, err := documentToComment(&doc)
		if err != nil {
			m.logger.Error("error converting comment document", "error", err)
			continue
		}
		comments = append(comments, comment)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return comments, nil
}

// SaveReply creates or updates a reply.
func (m *MongoDB) SaveReply(ctx context.Context, reply *models.Reply) error {
	doc := ReplyDocument{
		ID:         reply.ID.String(),
		PostID:     reply.PostID.String(),
		CommentID:  reply.CommentID.String(),
		Content:    reply.Content,
		AuthorName: reply.AuthorName,
		CreatedAt:  reply.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Replies.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save reply: %v", err)
	}
	return nil
}

// GetPostReplies returns all replies for a post in insertion order, so a
// thread view can group them under their comments in one pass.
func (m *MongoDB) GetPostReplies(ctx context.Context, postID uuid.UUID) ([]*models.Reply, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := m.Replies.Find(ctx, bson.M{"postId": postID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var replies []*models.Reply
	for cursor.Next(ctx) {
		var doc ReplyDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding reply document", "error", err)
			continue
		}

		reply, err := documentToReply(&doc)
		if err != nil {
			m.logger.Error("error converting reply document", "error", err)
			continue
		}
		replies = append(replies, reply)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return replies, nil
}
