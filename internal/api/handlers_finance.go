package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tberezin/lifehub-server/internal/models"
)

func (h *Handler) ListTransactions(c *gin.Context) {
	txns, err := h.svc.ListTransactions(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if txns == nil {
		txns = []models.Transaction{}
	}

	c.JSON(http.StatusOK, models.TransactionListResponse{
		Status:       "success",
		Transactions: txns,
	})
}

func (h *Handler) FinanceSummary(c *gin.Context) {
	summary, err := h.svc.GetFinanceSummary(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	txn, err := h.svc.CreateTransaction(c.Request.Context(), userID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TransactionResponse{
		Status:      "success",
		Transaction: txn,
	})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	txn, err := h.svc.UpdateTransaction(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionResponse{
		Status:      "success",
		Transaction: txn,
	})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.svc.DeleteTransaction(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{
		Status:  "success",
		Message: "Transaction deleted",
	})
}
