package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/digiadi/digiadi-backend/config"
	"github.com/digiadi/digiadi-backend/database"
	"github.com/digiadi/digiadi-backend/models"
	"github.com/digiadi/digiadi-backend/router"
	"github.com/digiadi/digiadi-backend/utils"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if err := database.SeedAdmin(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}
	if err := database.SeedCategories(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed categories: %v", err)
	}

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
