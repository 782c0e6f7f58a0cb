package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatagawa/anirec/internal/pkg/response"
	"github.com/yatagawa/anirec/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Key string `json:"key"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.Key == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "key required")
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Key)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}
