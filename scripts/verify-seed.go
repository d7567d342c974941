package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/yibu/backend/internal/database"
	"github.com/yibu/backend/internal/models"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize database connection
	if err := database.Initialize(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("🔍 Verifying seed data...")
	fmt.Println()

	// Count records
	var total, scored, banned, featured int64

	database.DB.Model(&models.Hashtag{}).Count(&total)
	database.DB.Model(&models.Hashtag{}).Where("last_scored_at IS NOT NULL").Count(&scored)
	database.DB.Model(&models.Hashtag{}).Where("is_banned = ?", true).Count(&banned)
	database.DB.Model(&models.Hashtag{}).Where("is_featured = ?", true).Count(&featured)

	fmt.Println("📊 Record Counts:")
	fmt.Printf("  Hashtags:  %d\n", total)
	fmt.Printf("  Scored:    %d\n", scored)
	fmt.Printf("  Banned:    %d\n", banned)
	fmt.Printf("  Featured:  %d\n", featured)
	fmt.Println()

	if total == 0 {
		log.Fatal("❌ No hashtags found - did the seed command run?")
	}
	if scored == 0 {
		log.Fatal("❌ No scored hashtags - the rollover pass did not run during seeding")
	}

	// Show the current top of the trending surface
	var top []models.Hashtag
	database.DB.
		Where("is_banned = ?", false).
		Order("is_featured DESC, trending_score DESC, total_usage DESC, name ASC").
		Limit(10).
		Find(&top)

	fmt.Println("🔥 Top trending hashtags:")
	for i, tag := range top {
		line, _ := json.Marshal(map[string]interface{}{
			"name":     tag.Name,
			"score":    tag.TrendingScore,
			"velocity": tag.Velocity,
			"total":    tag.TotalUsage,
			"category": tag.Category,
		})
		fmt.Printf("  %2d. %s\n", i+1, line)
	}

	fmt.Println()
	fmt.Println("✅ Seed data looks good")
}
