package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tberezin/lifehub-server/internal/models"
	"github.com/tberezin/lifehub-server/internal/service"
	"github.com/tberezin/lifehub-server/internal/utils"
)

// Handler holds the service and exposes the HTTP endpoints
type Handler struct {
	svc    service.Service
	logger *utils.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: utils.NewLogger(),
	}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")

	// Public routes
	auth := apiGroup.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
	}

	// Authenticated routes
	authorized := apiGroup.Group("")
	authorized.Use(AuthMiddleware())
	{
		authorized.GET("/profile", h.GetProfile)
		authorized.GET("/users/search", h.SearchUser)

		authorized.POST("/friends/requests", h.SendFriendRequest)
		authorized.POST("/friends/requests/:uid/accept", h.AcceptFriendRequest)
		authorized.POST("/friends/requests/:uid/reject", h.RejectFriendRequest)
		authorized.DELETE("/friends/:uid", h.RemoveFriend)

		authorized.GET("/events", h.ListEvents)
		authorized.POST("/events", h.CreateEvent)
		authorized.PUT("/events/:id", h.UpdateEvent)
		authorized.POST("/events/:id/toggle", h.ToggleEvent)
		authorized.POST("/events/:id/share", h.ShareEvent)
		authorized.DELETE("/events/:id", h.DeleteEvent)

		authorized.GET("/todos", h.ListTodos)
		authorized.POST("/todos", h.CreateTodo)
		authorized.PUT("/todos/:id", h.UpdateTodo)
		authorized.POST("/todos/:id/toggle", h.ToggleTodo)
		authorized.POST("/todos/:id/sync", h.SyncTodo)
		authorized.POST("/todos/:id/unlink", h.UnlinkTodo)
		authorized.DELETE("/todos/:id", h.DeleteTodo)

		authorized.GET("/transactions", h.ListTransactions)
		authorized.GET("/transactions/summary", h.FinanceSummary)
		authorized.POST("/transactions", h.CreateTransaction)
		authorized.PUT("/transactions/:id", h.UpdateTransaction)
		authorized.DELETE("/transactions/:id", h.DeleteTransaction)

		authorized.GET("/secret/items", h.ListSecretItems)
		authorized.POST("/secret/items", h.CreateSecretItem)
		authorized.PUT("/secret/items/:id", h.RenameSecretItem)
		authorized.PUT("/secret/items/:id/content", h.UpdateNoteContent)
		authorized.POST("/secret/items/:id/move", h.MoveSecretItem)
		authorized.POST("/secret/items/:id/share", h.ShareSecretItem)
		authorized.DELETE("/secret/items/:id", h.DeleteSecretItem)
	}
}

// userID returns the verified subject id set by the auth middleware.
func userID(c *gin.Context) string {
	return c.GetString("userId")
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

// respondError maps service errors onto HTTP statuses and error codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, service.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, service.ErrSelfRequest):
		status, code = http.StatusBadRequest, "SELF_REQUEST"
	case errors.Is(err, service.ErrNotFriends):
		status, code = http.StatusBadRequest, "NOT_FRIENDS"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, service.ErrUnauthorized):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, service.ErrUserNotFound):
		status, code = http.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, service.ErrEmailExists):
		status, code = http.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, service.ErrAlreadySynced):
		status, code = http.StatusConflict, "ALREADY_SYNCED"
	case errors.Is(err, service.ErrNotSynced):
		status, code = http.StatusConflict, "NOT_SYNCED"
	case errors.Is(err, service.ErrAlreadyFriends):
		status, code = http.StatusConflict, "ALREADY_FRIENDS"
	case errors.Is(err, service.ErrDuplicateRequest):
		status, code = http.StatusConflict, "DUPLICATE_REQUEST"
	default:
		h.logger.Error("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL_ERROR",
			Message: "An internal error occurred",
		})
		return
	}

	c.JSON(status, models.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: err.Error(),
	})
}

// Auth handlers
func (h *Handler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	resp, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
