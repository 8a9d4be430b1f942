package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	followDto "github.com/playverse/community-backend/internal/modules/follow/dto"
	follow "github.com/playverse/community-backend/internal/modules/follow/service"
	"github.com/playverse/community-backend/pkg/response"
	"github.com/playverse/community-backend/pkg/validator"
)

type FollowHandler struct {
	service follow.FollowService
}

func NewFollowHandler(service follow.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

// FollowAction multiplexes the follow state machine. For accept/reject the
// path parameter is the sender of the original request.
func (h *FollowHandler) FollowAction(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req followDto.FollowActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case followDto.ActionFollow:
		err = h.service.Follow(ctx, userID, targetID)
	case followDto.ActionUnfollow:
		err = h.service.Unfollow(ctx, userID, targetID)
	case followDto.ActionCancelRequest:
		err = h.service.CancelRequest(ctx, userID, targetID)
	case followDto.ActionAccept:
		err = h.service.Accept(ctx, userID, targetID)
	case followDto.ActionReject:
		err = h.service.Reject(ctx, userID, targetID)
	}

	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "action": req.Action})
}

func (h *FollowHandler) FollowStatus(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.Status(c.Request.Context(), userID, targetID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
