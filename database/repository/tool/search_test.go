package toolRepo

import (
	"testing"

	"toolshare/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func float(v float64) *float64 { return &v }

func radians(km float64) float64 { return km / earthRadiusKm }

func TestBuildSearchFilters(t *testing.T) {
	tests := []struct {
		name      string
		criteria  models.ToolSearchCriteria
		wantFind  bson.M
		wantCount bson.M
	}{
		{
			name:      "empty criteria",
			criteria:  models.ToolSearchCriteria{},
			wantFind:  bson.M{},
			wantCount: bson.M{},
		},
		{
			name:      "category all is ignored",
			criteria:  models.ToolSearchCriteria{Category: "all"},
			wantFind:  bson.M{},
			wantCount: bson.M{},
		},
		{
			name:      "category",
			criteria:  models.ToolSearchCriteria{Category: "Garden"},
			wantFind:  bson.M{"category": "Garden"},
			wantCount: bson.M{"category": "Garden"},
		},
		{
			name:     "search text is escaped",
			criteria: models.ToolSearchCriteria{Search: "saw (10.5)"},
			wantFind: bson.M{"$or": bson.A{
				bson.M{"title": primitive.Regex{Pattern: `saw \(10\.5\)`, Options: "i"}},
				bson.M{"description": primitive.Regex{Pattern: `saw \(10\.5\)`, Options: "i"}},
			}},
			wantCount: bson.M{"$or": bson.A{
				bson.M{"title": primitive.Regex{Pattern: `saw \(10\.5\)`, Options: "i"}},
				bson.M{"description": primitive.Regex{Pattern: `saw \(10\.5\)`, Options: "i"}},
			}},
		},
		{
			name:      "price range",
			criteria:  models.ToolSearchCriteria{MinPrice: float(5), MaxPrice: float(20)},
			wantFind:  bson.M{"price.daily": bson.M{"$gte": 5.0, "$lte": 20.0}},
			wantCount: bson.M{"price.daily": bson.M{"$gte": 5.0, "$lte": 20.0}},
		},
		{
			name:      "min price only",
			criteria:  models.ToolSearchCriteria{MinPrice: float(0)},
			wantFind:  bson.M{"price.daily": bson.M{"$gte": 0.0}},
			wantCount: bson.M{"price.daily": bson.M{"$gte": 0.0}},
		},
		{
			name:     "location uses near for find and geoWithin for count",
			criteria: models.ToolSearchCriteria{Lat: float(40.7), Lng: float(-74), MaxDistanceKm: 5},
			wantFind: bson.M{"location": bson.M{"$near": bson.M{
				"$geometry":    bson.M{"type": "Point", "coordinates": bson.A{-74.0, 40.7}},
				"$maxDistance": 5000.0,
			}}},
			wantCount: bson.M{"location": bson.M{"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{-74.0, 40.7}, radians(5)},
			}}},
		},
		{
			name:     "location defaults to ten kilometres",
			criteria: models.ToolSearchCriteria{Lat: float(1), Lng: float(2)},
			wantFind: bson.M{"location": bson.M{"$near": bson.M{
				"$geometry":    bson.M{"type": "Point", "coordinates": bson.A{2.0, 1.0}},
				"$maxDistance": 10000.0,
			}}},
			wantCount: bson.M{"location": bson.M{"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{2.0, 1.0}, radians(10)},
			}}},
		},
		{
			name:      "latitude without longitude is not a geo query",
			criteria:  models.ToolSearchCriteria{Lat: float(1)},
			wantFind:  bson.M{},
			wantCount: bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			find, count := buildSearchFilters(tt.criteria)
			assert.Equal(t, tt.wantFind, find)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}
