package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"janawaaz-be/config"
	"janawaaz-be/controllers"
	"janawaaz-be/engine"
	"janawaaz-be/routes"
	"janawaaz-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Println("MongoDB connection established successfully!")

	config.ConnectRedis()

	issues := store.NewMongoIssues(db.Collection("issues"))
	users := store.NewMongoUsers(db.Collection("users"))
	eng := engine.New(issues)

	issueController := controllers.NewIssueController(eng)
	authController := controllers.NewAuthController(users)

	dailyLimit := 5
	if v := os.Getenv("ISSUE_DAILY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			dailyLimit = n
		}
	}

	r := gin.Default()
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{origin},
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	} else {
		r.Use(cors.Default())
	}

	routes.AuthRoutes(r, authController)
	routes.IssueRoutes(r, issueController, users, dailyLimit)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
