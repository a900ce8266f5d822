// Command seed fills a development database with owners and tool listings around a fixed point.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"time"

	"toolshare/config"
	"toolshare/database"
	"toolshare/database/repository"
	"toolshare/models"
	"toolshare/services/tool"
	"toolshare/services/user"
	"toolshare/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const seedPassword = "$Password1234"

type listing struct {
	Title    string
	Category models.ToolCategory
	Daily    float64
	Hourly   float64
	Deposit  float64
}

var catalogue = []listing{
	{"Cordless drill", models.CategoryPowerTools, 8, 2, 50},
	{"Circular saw", models.CategoryPowerTools, 12, 3, 80},
	{"Socket set", models.CategoryHandTools, 5, 0, 20},
	{"Lawn mower", models.CategoryGarden, 15, 4, 100},
	{"Hedge trimmer", models.CategoryGarden, 10, 0, 60},
	{"Pressure washer", models.CategoryCleaning, 18, 5, 120},
	{"Carpet cleaner", models.CategoryCleaning, 20, 0, 100},
	{"Car jack", models.CategoryAutomotive, 6, 0, 40},
}

func main() {
	owners := flag.Int("owners", 5, "number of owner accounts to create")
	perOwner := flag.Int("tools", 3, "listings per owner")
	lat := flag.Float64("lat", 40.7128, "centre latitude")
	lng := flag.Float64("lng", -74.0060, "centre longitude")
	radiusKm := flag.Float64("radius", 5, "maximum distance from the centre in km")
	reset := flag.Bool("reset", false, "delete existing tools before seeding")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	database.InitDB()
	defer database.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *reset {
		if _, err := database.Collection("tools").DeleteMany(ctx, bson.M{}); err != nil {
			logger.Fatal("failed to clear tools collection", zap.Error(err))
		}
	}

	repos := repository.NewMongoRepositories()
	users := &user.DefaultUserService{Repo: repos.Users}
	tools := &tool.DefaultToolService{Repo: repos.Tools}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for i := 1; i <= *owners; i++ {
		email := fmt.Sprintf("owner_%d@example.com", i)
		auth, err := users.Register(ctx, models.RegisterRequest{
			Name:     fmt.Sprintf("Owner %d", i),
			Email:    email,
			Password: seedPassword,
			Address:  "123 Sample Street, Sample City",
		})
		if utils.IsKind(err, utils.KindValidation) {
			auth, err = users.Login(ctx, models.LoginRequest{Email: email, Password: seedPassword})
		}
		if err != nil {
			logger.Fatal("failed to prepare owner", zap.String("email", email), zap.Error(err))
		}

		for j := 0; j < *perOwner; j++ {
			l := catalogue[rng.Intn(len(catalogue))]

			// Spread listings over the disc. 1 km is roughly 0.009 degrees of latitude.
			distanceKm := rng.Float64() * *radiusKm
			angle := rng.Float64() * 2 * math.Pi
			pLat := *lat + distanceKm*0.009*math.Sin(angle)
			pLng := *lng + distanceKm*0.009*math.Cos(angle)/math.Cos(*lat*math.Pi/180)

			title := l.Title
			description := fmt.Sprintf("%s in good working order. Pick up from owner %d.", l.Title, i)
			category := string(l.Category)
			in := models.ToolInput{
				Title:       &title,
				Description: &description,
				Category:    &category,
				PriceDaily:  &l.Daily,
				PriceHourly: &l.Hourly,
				Deposit:     &l.Deposit,
				Lat:         &pLat,
				Lng:         &pLng,
			}
			if _, err := tools.CreateTool(ctx, auth.User.ID, in, nil); err != nil {
				logger.Fatal("failed to create tool", zap.String("ownerId", auth.User.ID), zap.Error(err))
			}
			created++
		}
	}
	logger.Info("seed complete", zap.Int("owners", *owners), zap.Int("tools", created))
}
