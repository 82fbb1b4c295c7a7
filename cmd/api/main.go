package main

import (
	"log"
	"time"

	"wavehub/internal/database"
	"wavehub/internal/handlers"
	"wavehub/internal/mailer"
	"wavehub/internal/middleware"
	"wavehub/internal/monitoring"
	"wavehub/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := utils.EnsureJWTReady(); err != nil {
		log.Fatal("JWT configuration error:", err)
	}

	database.InitDB()
	defer database.CloseDB()
	database.CreateTables()

	mailer.Init()

	router := gin.Default()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(monitoring.RequestMetricsMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)

	passwordLimiter := middleware.RateLimitByIP(5, time.Minute)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/forgot-password", passwordLimiter, handlers.ForgotPassword)
		auth.POST("/reset-password", passwordLimiter, handlers.ResetPassword)
	}

	router.GET("/api/releases", middleware.OptionalAuth(), handlers.ListReleases)

	authed := router.Group("/api", middleware.RequireAuth())
	{
		authed.POST("/upload-url", handlers.CreateUploadURL)
		authed.GET("/user/following", handlers.GetFollowing)
		authed.GET("/user/songs", handlers.GetUserSongs)
	}

	log.Println("wavehub API starting on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
