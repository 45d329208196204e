// internal/database/footprint_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Kahlar/webdevproject/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FootprintDocument stores a carbon footprint record in MongoDB.
type FootprintDocument struct {
	ID              string    `bson:"_id"`
	UserID          string    `bson:"userId"`
	CarbonFootprint float64   `bson:"carbonFootprint"`
	Date            time.Time `bson:"date"`
	CreatedAt       time.Time `bson:"createdAt"`
}

// SaveFootprint stores a footprint record.
func (m *MongoDB) SaveFootprint(ctx context.Context, record *models.FootprintRecord) error {
	doc := FootprintDocument{
		ID:              record.ID.String(),
		UserID:          record.UserID,
		CarbonFootprint: record.CarbonFootprint,
		Date:            record.Date,
		CreatedAt:       record.CreatedAt,
	}

	_, err := m.Footprints.InsertOne(ctx, doc)
	return err
}

// GetFootprints returns a user's footprint history, newest first, optionally
// bounded to a date range.
func (m *MongoDB) GetFootprints(ctx context.Context, userID string, start, end *time.Time) ([]*models.FootprintRecord, error) {
	query := bson.M{"userId": userID}
	if start != nil && end != nil {
		query["date"] = bson.M{"$gte": *start, "$lte": *end}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := m.Footprints.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var records []*models.FootprintRecord
	for cursor.Next(ctx) {
		var doc FootprintDocument
		if err := cursor.Decode(&doc); err != nil {
			m.logger.Error("error decoding footprint document", "error", err)
			continue
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			m.logger.Error("error converting footprint document", "error", err)
			continue
		}

		records = append(records, &models.FootprintRecord{
			ID:              id,
			UserID:          doc.UserID,
			CarbonFootprint: doc.CarbonFootprint,
			Date:            doc.Date,
			CreatedAt:       doc.CreatedAt,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return records, nil
}
