package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docchat/docchat/internal/middleware"
)

type RouterDeps struct {
	Chat            *ChatHandler
	JWTSecret       []byte
	RateLimitWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/conversations/:conversationid",
		middleware.RateLimit(deps.RateLimitWindow),
		deps.Chat.Chat,
	)
}
