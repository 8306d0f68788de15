package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tberezin/lifehub-server/internal/models"
)

func (h *Handler) ListSecretItems(c *gin.Context) {
	items, err := h.svc.ListSecretItems(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if items == nil {
		items = []models.SecretItem{}
	}

	c.JSON(http.StatusOK, models.SecretItemListResponse{
		Status: "success",
		Items:  items,
	})
}

func (h *Handler) CreateSecretItem(c *gin.Context) {
	var req models.CreateSecretItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.svc.CreateSecretItem(c.Request.Context(), userID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SecretItemResponse{
		Status: "success",
		Item:   item,
	})
}

func (h *Handler) RenameSecretItem(c *gin.Context) {
	var req models.RenameSecretItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.svc.RenameSecretItem(c.Request.Context(), userID(c), c.Param("id"), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SecretItemResponse{
		Status: "success",
		Item:   item,
	})
}

func (h *Handler) UpdateNoteContent(c *gin.Context) {
	var req models.UpdateNoteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.svc.UpdateNoteContent(c.Request.Context(), userID(c), c.Param("id"), req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SecretItemResponse{
		Status: "success",
		Item:   item,
	})
}

func (h *Handler) MoveSecretItem(c *gin.Context) {
	var req models.MoveSecretItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.svc.MoveSecretItem(c.Request.Context(), userID(c), c.Param("id"), req.ParentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SecretItemResponse{
		Status: "success",
		Item:   item,
	})
}

func (h *Handler) ShareSecretItem(c *gin.Context) {
	var req models.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.svc.ShareSecretItem(c.Request.Context(), userID(c), c.Param("id"), req.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "Item shared",
	})
}

func (h *Handler) DeleteSecretItem(c *gin.Context) {
	deleted, err := h.svc.DeleteSecretItem(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{
		Status:  "success",
		Message: "Items deleted",
		Deleted: deleted,
	})
}
