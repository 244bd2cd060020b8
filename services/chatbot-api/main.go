package main

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alvin0727/AI-Chatbot/services/chatbot-api/apihandlers"
)

var conf ChatbotApiConfig

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.UserManagementConfig.UserJWTConfig.SignKey,
		conf.UserManagementConfig.UserJWTConfig.ExpiresIn,
		conf.UserManagementConfig.RefreshJWTConfig.SignKey,
		conf.UserManagementConfig.RefreshJWTConfig.ExpiresIn,
		chatbotDBService,
		userMgmtService,
		llmClientService,
		conf.UserManagementConfig.UseSecureCookies,
	)
	v1APIHandlers.AddUserAPI(v1Root)
	v1APIHandlers.AddChatAPI(v1Root)

	// Start the server
	slog.Info("Starting Chatbot API on port " + conf.GinConfig.Port)
	if err := router.Run(":" + conf.GinConfig.Port); err != nil {
		slog.Error("Exited Chatbot API", slog.String("error", err.Error()))
		return
	}
}
