package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tberezin/lifehub-server/internal/models"
)

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.svc.ListTodos(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if todos == nil {
		todos = []models.Todo{}
	}

	c.JSON(http.StatusOK, models.TodoListResponse{
		Status: "success",
		Todos:  todos,
	})
}

func (h *Handler) CreateTodo(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	todo, err := h.svc.CreateTodo(c.Request.Context(), userID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TodoResponse{
		Status: "success",
		Todo:   todo,
	})
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	todo, err := h.svc.UpdateTodoText(c.Request.Context(), userID(c), c.Param("id"), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{
		Status: "success",
		Todo:   todo,
	})
}

func (h *Handler) ToggleTodo(c *gin.Context) {
	todo, err := h.svc.ToggleTodo(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{
		Status: "success",
		Todo:   todo,
	})
}

func (h *Handler) SyncTodo(c *gin.Context) {
	var req models.SyncTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	todo, err := h.svc.SyncTodo(c.Request.Context(), userID(c), c.Param("id"), req.Color)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{
		Status: "success",
		Todo:   todo,
	})
}

func (h *Handler) UnlinkTodo(c *gin.Context) {
	todo, err := h.svc.UnlinkTodo(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{
		Status: "success",
		Todo:   todo,
	})
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.svc.DeleteTodo(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{
		Status:  "success",
		Message: "Todo deleted",
	})
}
