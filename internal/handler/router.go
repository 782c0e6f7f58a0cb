package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yatagawa/anirec/internal/middleware"
)

type RouterDeps struct {
	Meta            *MetaHandler
	Recommend       *RecommendHandler
	Classify        *ClassifyHandler
	Auth            *AuthHandler
	Admin           *AdminHandler
	JWTSecret       []byte
	RateLimitWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/", deps.Meta.Home)
	api.GET("/titles", deps.Recommend.Titles)
	api.GET("/search", deps.Recommend.Search)
	api.GET("/info", deps.Recommend.Info)
	api.GET("/random", deps.Recommend.Random)
	api.GET("/stats", deps.Meta.Stats)

	limited := api.Group("")
	limited.Use(middleware.RateLimit(deps.RateLimitWindow))
	limited.GET("/recommend", deps.Recommend.Recommend)
	limited.GET("/classify", deps.Classify.Classify)

	api.POST("/auth/login", deps.Auth.Login)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	adminGroup.POST("/reload", deps.Admin.Reload)
	adminGroup.POST("/import", deps.Admin.Import)
}
