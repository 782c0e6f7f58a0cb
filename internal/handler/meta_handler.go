package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yatagawa/anirec/internal/pkg/response"
	"github.com/yatagawa/anirec/internal/service"
)

type MetaHandler struct {
	recs *service.RecommendService
}

func NewMetaHandler(recs *service.RecommendService) *MetaHandler {
	return &MetaHandler{recs: recs}
}

func (h *MetaHandler) Home(c *gin.Context) {
	total := 0
	if stats, err := h.recs.Stats(c.Request.Context()); err == nil {
		total = stats.TotalAnime
	}
	response.Success(c, gin.H{
		"message": "Anime Recommendation API",
		"endpoints": gin.H{
			"/titles":    "GET - List all available anime titles",
			"/recommend": "GET - Get recommendations (param: title, top_n)",
			"/search":    "GET - Search titles (param: query, limit)",
			"/info":      "GET - Get anime info (param: title)",
			"/random":    "GET - Get random anime (param: count)",
			"/stats":     "GET - Get dataset statistics",
			"/classify":  "GET - Predict media type (param: title, k)",
		},
		"total_anime": total,
	})
}

func (h *MetaHandler) Stats(c *gin.Context) {
	stats, err := h.recs.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, stats)
}
