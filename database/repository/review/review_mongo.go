package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"toolshare/database"
	"toolshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository backed by the "reviews" collection.
func NewMongoReviewRepo() ReviewRepository {
	repo := &mongoReviewRepo{coll: database.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("failed to create review indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}, {Key: "reviewerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "revieweeId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "toolId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *mongoReviewRepo) Exists(ctx context.Context, bookingID, reviewerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"bookingId": bookingID, "reviewerId": reviewerID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return n > 0, nil
}

func (r *mongoReviewRepo) page(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Review, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *mongoReviewRepo) ListByReviewee(ctx context.Context, userID string, skip, limit int64) ([]models.Review, int64, error) {
	reviews, total, err := r.page(ctx, bson.M{"revieweeId": userID}, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews for user %s: %w", userID, err)
	}
	return reviews, total, nil
}

func (r *mongoReviewRepo) ListByTool(ctx context.Context, toolID string, skip, limit int64) ([]models.Review, int64, error) {
	reviews, total, err := r.page(ctx, bson.M{"toolId": toolID}, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews for tool %s: %w", toolID, err)
	}
	return reviews, total, nil
}

func (r *mongoReviewRepo) ratings(ctx context.Context, filter bson.M) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"rating": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []int
	for cursor.Next(ctx) {
		var doc struct {
			Rating int `bson:"rating"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ratings = append(ratings, doc.Rating)
	}
	return ratings, cursor.Err()
}

func (r *mongoReviewRepo) RatingsForReviewee(ctx context.Context, userID string) ([]int, error) {
	ratings, err := r.ratings(ctx, bson.M{"revieweeId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for user %s: %w", userID, err)
	}
	return ratings, nil
}

func (r *mongoReviewRepo) RatingsForTool(ctx context.Context, toolID, ownerID string) ([]int, error) {
	ratings, err := r.ratings(ctx, bson.M{"toolId": toolID, "revieweeId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for tool %s: %w", toolID, err)
	}
	return ratings, nil
}
