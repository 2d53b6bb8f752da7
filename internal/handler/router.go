package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikalabs/walletchat/internal/middleware"
)

type RouterDeps struct {
	Chat            *ChatHandler
	Knowledge       *KnowledgeHandler
	RateLimitWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api.POST("/chat", middleware.RateLimit(deps.RateLimitWindow), deps.Chat.Chat)

	api.GET("/knowledge", deps.Knowledge.List)
	api.GET("/knowledge/search", deps.Knowledge.Search)
	api.GET("/knowledge/categories/:category", deps.Knowledge.ByCategory)
}
