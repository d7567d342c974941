package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/yibu/backend/internal/database"
	"github.com/yibu/backend/internal/hashtag"
	"github.com/yibu/backend/internal/logger"
	"github.com/yibu/backend/internal/models"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// The rollover pass logs through the structured logger
	if err := logger.Initialize("info", "seed.log"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev":
		seedDev()
	case "test":
		seedTest()
	case "clean":
		cleanSeed()
	default:
		fmt.Println("Usage: seed [dev|test|clean]")
		fmt.Println("  dev   - Simulate realistic hashtag traffic")
		fmt.Println("  test  - Seed minimal hashtag data")
		fmt.Println("  clean - Remove all hashtag records (use with caution)")
		os.Exit(1)
	}
}

// curated tags with categories so trending pages look plausible in dev
var curatedTags = map[string]models.HashtagCategory{
	"ai":         models.CategoryTechnology,
	"golang":     models.CategoryTechnology,
	"webdev":     models.CategoryTechnology,
	"music":      models.CategoryMusic,
	"hiphop":     models.CategoryMusic,
	"synthwave":  models.CategoryMusic,
	"streetart":  models.CategoryArt,
	"painting":   models.CategoryArt,
	"football":   models.CategorySports,
	"esports":    models.CategoryGaming,
	"indiegames": models.CategoryGaming,
	"ramen":      models.CategoryFood,
	"backpacking": models.CategoryTravel,
	"streetwear": models.CategoryFashion,
	"breaking":   models.CategoryNews,
}

func seedDev() {
	log.Println("🌱 Seeding hashtag usage...")

	if err := database.Initialize(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	gofakeit.Seed(0)
	ctx := context.Background()
	tracker := hashtag.NewTracker(database.DB)

	// Curated tags get a skewed traffic distribution: a few hot tags, a long
	// tail of quiet ones
	events := 0
	for name, category := range curatedTags {
		uses := gofakeit.Number(5, 400)
		if gofakeit.Bool() {
			uses *= 4 // occasionally make a tag spike
		}
		for i := 0; i < uses; i++ {
			if err := tracker.RecordUsage(ctx, name); err != nil {
				log.Printf("⚠️ Failed to record usage for #%s: %v", name, err)
				break
			}
		}
		events += uses

		if err := tracker.SetCategory(ctx, name, category); err != nil {
			log.Printf("⚠️ Failed to set category for #%s: %v", name, err)
		}
	}

	// Random long-tail tags, lazily created with default category
	for i := 0; i < 40; i++ {
		name := gofakeit.Word()
		uses := gofakeit.Number(1, 25)
		for j := 0; j < uses; j++ {
			if err := tracker.RecordUsage(ctx, name); err != nil {
				log.Printf("⚠️ Failed to record usage for #%s: %v", name, err)
				break
			}
		}
		events += uses
	}

	// Pin a couple of tags the way an editor would
	for _, name := range []string{"music", "ai"} {
		if err := tracker.SetFeatured(ctx, name, true); err != nil {
			log.Printf("⚠️ Failed to feature #%s: %v", name, err)
		}
	}

	// Score everything once so trending is populated immediately
	scheduler := hashtag.NewScheduler(database.DB, time.Minute)
	scheduler.RunPass(time.Now().UTC())

	log.Printf("✅ Seeded %d usage events across %d curated tags", events, len(curatedTags))
}

func seedTest() {
	log.Println("🌱 Seeding minimal hashtag data...")

	if err := database.Initialize(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	tracker := hashtag.NewTracker(database.DB)

	for _, name := range []string{"alpha", "beta", "gamma"} {
		for i := 0; i < 3; i++ {
			if err := tracker.RecordUsage(ctx, name); err != nil {
				log.Fatalf("❌ Failed to record usage: %v", err)
			}
		}
	}

	hashtag.NewScheduler(database.DB, time.Minute).RunPass(time.Now().UTC())

	log.Println("✅ Test data seeded")
}

func cleanSeed() {
	log.Println("🗑️ Removing all hashtag records...")

	if err := database.Initialize(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	result := database.DB.Exec("DELETE FROM hashtags")
	if result.Error != nil {
		log.Fatalf("❌ Failed to clean hashtags: %v", result.Error)
	}

	log.Printf("✅ Removed %d hashtag records", result.RowsAffected)
}
