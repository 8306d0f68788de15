package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tberezin/lifehub-server/internal/models"
)

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if events == nil {
		events = []models.Event{}
	}

	c.JSON(http.StatusOK, models.EventListResponse{
		Status: "success",
		Events: events,
	})
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), userID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.EventResponse{
		Status: "success",
		Event:  event,
	})
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EventResponse{
		Status: "success",
		Event:  event,
	})
}

func (h *Handler) ToggleEvent(c *gin.Context) {
	event, err := h.svc.ToggleEvent(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EventResponse{
		Status: "success",
		Event:  event,
	})
}

func (h *Handler) ShareEvent(c *gin.Context) {
	var req models.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.svc.ShareEvent(c.Request.Context(), userID(c), c.Param("id"), req.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "Event shared",
	})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.svc.DeleteEvent(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{
		Status:  "success",
		Message: "Event deleted",
	})
}
