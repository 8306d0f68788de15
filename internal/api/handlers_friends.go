package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tberezin/lifehub-server/internal/models"
)

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.svc.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) SearchUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "email query parameter is required")
		return
	}

	user, err := h.svc.SearchUserByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) SendFriendRequest(c *gin.Context) {
	var req models.SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.svc.SendFriendRequest(c.Request.Context(), userID(c), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "Friend request sent",
	})
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	if err := h.svc.AcceptFriendRequest(c.Request.Context(), userID(c), c.Param("uid")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "Friend request accepted",
	})
}

func (h *Handler) RejectFriendRequest(c *gin.Context) {
	if err := h.svc.RejectFriendRequest(c.Request.Context(), userID(c), c.Param("uid")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "Friend request rejected",
	})
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	if err := h.svc.RemoveFriend(c.Request.Context(), userID(c), c.Param("uid")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "Friend removed",
	})
}
