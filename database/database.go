package database

import (
	"fmt"
	"log"
	"os"

	"shopsave-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the global database handle used by all controllers.
var DB *gorm.DB

func dsn() string {
	if v := os.Getenv("DB_DSN"); v != "" {
		return v
	}
	user := envOr("DB_USER", "root")
	pass := envOr("DB_PASSWORD", "")
	host := envOr("DB_HOST", "127.0.0.1")
	port := envOr("DB_PORT", "3306")
	name := envOr("DB_NAME", "shopsave")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", user, pass, host, port, name)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ConnectDatabase() {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("✅ Database connected successfully!")

	err = DB.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Retailer{},
		&models.MasterProduct{},
		&models.RetailerCurrentPricing{},
		&models.PriceHistory{},
		&models.SuggestionDetails{},
		&models.MatchSuggestion{},
		&models.User{},
		&models.BasketItem{},
		&models.PriceAlert{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("❌ Failed to migrate the database: %v\n", err)
	}
	fmt.Println("✅ Database migrated successfully!")
}
