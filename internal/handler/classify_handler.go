package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatagawa/anirec/internal/pkg/errs"
	"github.com/yatagawa/anirec/internal/pkg/response"
	"github.com/yatagawa/anirec/internal/service"
)

type ClassifyHandler struct {
	recs *service.RecommendService
}

func NewClassifyHandler(recs *service.RecommendService) *ClassifyHandler {
	return &ClassifyHandler{recs: recs}
}

func (h *ClassifyHandler) Classify(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "missing 'title' parameter")
		return
	}
	k := intQuery(c, "k", 0)
	pred, err := h.recs.Classify(c.Request.Context(), title, k)
	if errs.IsNotFound(err) {
		response.Error(c, http.StatusNotFound, "not_found", fmt.Sprintf("anime '%s' not found", title))
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"query":      title,
		"prediction": pred,
	})
}
