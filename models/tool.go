package models

import "time"

type ToolCategory string

const (
	CategoryPowerTools ToolCategory = "Power tools"
	CategoryHandTools  ToolCategory = "Hand tools"
	CategoryGarden     ToolCategory = "Garden"
	CategoryCleaning   ToolCategory = "Cleaning"
	CategoryAutomotive ToolCategory = "Automotive"
	CategoryOther      ToolCategory = "Other"
)

var toolCategories = map[ToolCategory]bool{
	CategoryPowerTools: true,
	CategoryHandTools:  true,
	CategoryGarden:     true,
	CategoryCleaning:   true,
	CategoryAutomotive: true,
	CategoryOther:      true,
}

// IsValid reports whether c is one of the listed categories.
func (c ToolCategory) IsValid() bool {
	return toolCategories[c]
}

type ToolCondition string

const (
	ConditionExcellent ToolCondition = "Excellent"
	ConditionGood      ToolCondition = "Good"
	ConditionFair      ToolCondition = "Fair"
)

func (c ToolCondition) IsValid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// ToolPrice holds the owner's rates. Daily must be positive, hourly may be zero.
type ToolPrice struct {
	Hourly float64 `bson:"hourly" json:"hourly"`
	Daily  float64 `bson:"daily" json:"daily"`
}

// DateRange is a closed interval; both ends count as occupied.
type DateRange struct {
	From time.Time `bson:"from" json:"from"`
	To   time.Time `bson:"to" json:"to"`
}

type ToolAvailability struct {
	IsAvailable      bool        `bson:"isAvailable" json:"isAvailable"`
	UnavailableDates []DateRange `bson:"unavailableDates" json:"unavailableDates"`
}

// Tool is a listing owned by a single user.
type Tool struct {
	ID           string           `bson:"id" json:"id"`
	OwnerID      string           `bson:"ownerId" json:"ownerId"`
	Title        string           `bson:"title" json:"title"`
	Description  string           `bson:"description" json:"description"`
	Category     ToolCategory     `bson:"category" json:"category"`
	Condition    ToolCondition    `bson:"condition" json:"condition"`
	Images       []string         `bson:"images" json:"images"`
	ImageIDs     []string         `bson:"imageIds,omitempty" json:"-"` // media host ids, parallel to Images
	Price        ToolPrice        `bson:"price" json:"price"`
	Deposit      float64          `bson:"deposit" json:"deposit"`
	Location     *GeoPoint        `bson:"location,omitempty" json:"location,omitempty"`
	Availability ToolAvailability `bson:"availability" json:"availability"`
	Rating       float64          `bson:"rating" json:"rating"`
	NumReviews   int              `bson:"numReviews" json:"numReviews"`
	CreatedAt    time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// ToolInput carries create and update fields. Nil pointers mean "not supplied".
type ToolInput struct {
	Title       *string  `form:"title" json:"title"`
	Description *string  `form:"description" json:"description"`
	Category    *string  `form:"category" json:"category"`
	Condition   *string  `form:"condition" json:"condition"`
	PriceHourly *float64 `form:"priceHourly" json:"priceHourly"`
	PriceDaily  *float64 `form:"priceDaily" json:"priceDaily"`
	Deposit     *float64 `form:"deposit" json:"deposit"`
	Lat         *float64 `form:"lat" json:"lat"`
	Lng         *float64 `form:"lng" json:"lng"`
	IsAvailable *bool    `form:"isAvailable" json:"isAvailable"`
}

// ImageRef is an image stored on the media host.
type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// BlackoutRequest replaces a tool's blackout list. Dates accept RFC3339 or YYYY-MM-DD.
type BlackoutRequest struct {
	UnavailableDates []struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"unavailableDates"`
}

// ToolSearchCriteria filters the public listing.
type ToolSearchCriteria struct {
	Category      string
	Search        string
	MinPrice      *float64
	MaxPrice      *float64
	Lat           *float64
	Lng           *float64
	MaxDistanceKm float64
	Page          int
	Limit         int
}

type ToolPage struct {
	Tools      []Tool     `json:"tools"`
	Pagination Pagination `json:"pagination"`
}

// AvailabilityResult is the outcome of an availability check.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}
