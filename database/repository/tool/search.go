package toolRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"toolshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const earthRadiusKm = 6378.1

// buildSearchFilters returns the find filter and an equivalent count filter.
// $near cannot be used in countDocuments, so the count uses $geoWithin over the same radius.
func buildSearchFilters(c models.ToolSearchCriteria) (bson.M, bson.M) {
	filter := bson.M{}

	if c.Category != "" && c.Category != "all" {
		filter["category"] = c.Category
	}
	if c.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(c.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		price := bson.M{}
		if c.MinPrice != nil {
			price["$gte"] = *c.MinPrice
		}
		if c.MaxPrice != nil {
			price["$lte"] = *c.MaxPrice
		}
		filter["price.daily"] = price
	}

	count := bson.M{}
	for k, v := range filter {
		count[k] = v
	}

	if c.Lat != nil && c.Lng != nil {
		maxKm := c.MaxDistanceKm
		if maxKm <= 0 {
			maxKm = 10
		}
		point := bson.M{"type": "Point", "coordinates": bson.A{*c.Lng, *c.Lat}}
		filter["location"] = bson.M{"$near": bson.M{
			"$geometry":    point,
			"$maxDistance": maxKm * 1000,
		}}
		count["location"] = bson.M{"$geoWithin": bson.M{
			"$centerSphere": bson.A{bson.A{*c.Lng, *c.Lat}, maxKm / earthRadiusKm},
		}}
	}
	return filter, count
}

func (r *mongoToolRepo) Search(ctx context.Context, c models.ToolSearchCriteria) ([]models.Tool, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter, countFilter := buildSearchFilters(c)

	opts := options.Find().
		SetSkip(models.Skip(c.Page, c.Limit)).
		SetLimit(int64(c.Limit))
	// $near already orders by distance.
	if _, geo := filter["location"]; !geo {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search tools: %w", err)
	}
	defer cursor.Close(ctx)

	tools := []models.Tool{}
	if err := cursor.All(ctx, &tools); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tools: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, countFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tools: %w", err)
	}
	return tools, total, nil
}
