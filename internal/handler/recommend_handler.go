package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yatagawa/anirec/internal/pkg/errs"
	"github.com/yatagawa/anirec/internal/pkg/response"
	"github.com/yatagawa/anirec/internal/service"
)

type RecommendHandler struct {
	recs *service.RecommendService
}

func NewRecommendHandler(recs *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recs: recs}
}

func (h *RecommendHandler) Recommend(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "missing 'title' parameter")
		return
	}
	topN := intQuery(c, "top_n", 0)
	recs, suggestions, err := h.recs.Recommend(c.Request.Context(), title, topN)
	if errs.IsNotFound(err) {
		response.ErrorWithData(c, http.StatusNotFound, "not_found",
			fmt.Sprintf("anime '%s' not found", title),
			gin.H{"suggestions": suggestions})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"query":           title,
		"count":           len(recs),
		"recommendations": recs,
	})
}

func (h *RecommendHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "missing 'query' parameter")
		return
	}
	limit := intQuery(c, "limit", 0)
	matches, err := h.recs.Search(c.Request.Context(), query, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"query":   query,
		"count":   len(matches),
		"results": matches,
	})
}

func (h *RecommendHandler) Info(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "missing 'title' parameter")
		return
	}
	rec, err := h.recs.Info(c.Request.Context(), title)
	if errs.IsNotFound(err) {
		response.Error(c, http.StatusNotFound, "not_found", fmt.Sprintf("anime '%s' not found", title))
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rec)
}

func (h *RecommendHandler) Random(c *gin.Context) {
	count := intQuery(c, "count", 1)
	titles, err := h.recs.Random(c.Request.Context(), count)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"count":  len(titles),
		"titles": titles,
	})
}

func (h *RecommendHandler) Titles(c *gin.Context) {
	titles, err := h.recs.Titles(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"count":  len(titles),
		"titles": titles,
	})
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
