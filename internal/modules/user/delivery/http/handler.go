package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	userDto "github.com/playverse/community-backend/internal/modules/user/dto"
	user "github.com/playverse/community-backend/internal/modules/user/service"
	"github.com/playverse/community-backend/pkg/response"
	"github.com/playverse/community-backend/pkg/validator"
)

type AuthHandler struct {
	service user.AuthService
}

func NewAuthHandler(service user.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req userDto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
