package toolRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toolshare/database"
	"toolshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoToolRepo struct {
	coll *mongo.Collection
}

// NewMongoToolRepo creates a ToolRepository backed by the "tools" collection.
func NewMongoToolRepo() ToolRepository {
	repo := &mongoToolRepo{coll: database.Collection("tools")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("failed to create tool indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoToolRepo) Create(ctx context.Context, tool *models.Tool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, tool); err != nil {
		return fmt.Errorf("failed to create tool: %w", err)
	}
	return nil
}

func (r *mongoToolRepo) GetByID(ctx context.Context, id string) (*models.Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tool models.Tool
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tool); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch tool %s: %w", id, err)
	}
	return &tool, nil
}

func (r *mongoToolRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Tool, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tools: %w", err)
	}
	defer cursor.Close(ctx)

	var tools []models.Tool
	if err := cursor.All(ctx, &tools); err != nil {
		return nil, fmt.Errorf("failed to decode tools: %w", err)
	}
	return tools, nil
}

func (r *mongoToolRepo) Replace(ctx context.Context, tool *models.Tool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tool.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": tool.ID}, tool)
	if err != nil {
		return fmt.Errorf("failed to update tool %s: %w", tool.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoToolRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tool %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoToolRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	tools := []models.Tool{}
	if err := cursor.All(ctx, &tools); err != nil {
		return nil, fmt.Errorf("failed to decode tools: %w", err)
	}
	return tools, nil
}

func (r *mongoToolRepo) UpdateRating(ctx context.Context, id string, stats models.RatingStats) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"rating": stats.Average, "numReviews": stats.Count}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to update rating for tool %s: %w", id, err)
	}
	return nil
}
