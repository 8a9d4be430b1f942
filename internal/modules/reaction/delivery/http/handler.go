package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	reactionDto "github.com/playverse/community-backend/internal/modules/reaction/dto"
	reaction "github.com/playverse/community-backend/internal/modules/reaction/service"
	"github.com/playverse/community-backend/pkg/response"
	"github.com/playverse/community-backend/pkg/validator"
)

type ReactionHandler struct {
	service reaction.ReactionService
}

func NewReactionHandler(service reaction.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	var req reactionDto.ReactionToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.ToggleReaction(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReactionHandler) GetReactions(c *gin.Context) {
	contentType := c.Param("content_type")
	if !entity.IsValidContentType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content type"})
		return
	}

	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}

	// Viewer is optional here: the route is protected, but the response only
	// needs the viewer to fill user_reaction.
	var viewerID *uuid.UUID
	if id, err := response.GetUserID(c); err == nil {
		viewerID = &id
	}

	resp, err := h.service.GetReactions(c.Request.Context(), viewerID, contentID, contentType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
