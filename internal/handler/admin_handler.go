package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatagawa/anirec/internal/pkg/response"
	"github.com/yatagawa/anirec/internal/service"
)

type AdminHandler struct {
	datasets *service.DatasetService
	importer *service.ImportService
}

// NewAdminHandler wires the write surface. importer is nil when no
// database is configured; /admin/import then reports 503.
func NewAdminHandler(datasets *service.DatasetService, importer *service.ImportService) *AdminHandler {
	return &AdminHandler{datasets: datasets, importer: importer}
}

func (h *AdminHandler) Reload(c *gin.Context) {
	if err := h.datasets.Reload(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *AdminHandler) Import(c *gin.Context) {
	if h.importer == nil {
		response.Error(c, http.StatusServiceUnavailable, "no_db", "database not configured")
		return
	}
	if err := h.importer.Run(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
