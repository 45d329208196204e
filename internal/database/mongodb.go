// internal/database/mongodb.go
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kahlar/webdevproject/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB is the persistence gateway. It owns the client handle and exposes
// the named collections; all business logic lives above it.
type MongoDB struct {
	Client      *mongo.Client
	Posts       *mongo.Collection
	Comments    *mongo.Collection
	Replies     *mongo.Collection
	Reactions   *mongo.Collection
	Tips        *mongo.Collection
	TipLikes    *mongo.Collection
	TipComments *mongo.Collection
	Actions     *mongo.Collection
	Users       *mongo.Collection
	Footprints  *mongo.Collection

	logger *slog.Logger
}

// NewMongoDB connects to MongoDB with bounded retries and a fixed backoff,
// then ensures the indexes the uniqueness invariants depend on. After the
// last attempt fails the error is permanent; callers should treat every
// later operation as an internal failure.
func NewMongoDB(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= cfg.ConnectRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = mongo.Connect(connectCtx, opts)
		if err == nil {
			err = client.Database("admin").RunCommand(connectCtx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
		cancel()
		if err == nil {
			break
		}

		logger.Warn("mongodb connection attempt failed",
			"attempt", attempt, "retries", cfg.ConnectRetries, "error", err)
		if attempt < cfg.ConnectRetries {
			select {
			case <-time.After(cfg.ConnectBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB after %d attempts: %w", cfg.ConnectRetries, err)
	}

	logger.Info("connected to MongoDB", "database", cfg.Name)

	db := client.Database(cfg.Name)
	m := &MongoDB{
		Client:      client,
		Posts:       db.Collection("forum_posts"),
		Comments:    db.Collection("forum_comments"),
		Replies:     db.Collection("forum_replies"),
		Reactions:   db.Collection("post_reactions"),
		Tips:        db.Collection("tips"),
		TipLikes:    db.Collection("tip_likes"),
		TipComments: db.Collection("tip_comments"),
		Actions:     db.Collection("tracker_actions"),
		Users:       db.Collection("users"),
		Footprints:  db.Collection("carbon_footprints"),
		logger:      logger,
	}

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return m, nil
}

// ensureIndexes creates the unique indexes that back the one-reaction-per-user
// invariants. Application-level checks alone cannot hold them under
// concurrent requests.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	_, err := m.Reactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.TipLikes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tipId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Ping verifies the connection is still healthy.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
