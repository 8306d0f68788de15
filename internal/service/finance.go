package service

import (
	"context"
	"fmt"

	"github.com/tberezin/lifehub-server/internal/models"
)

func (s *DefaultService) getOwnedTransaction(ctx context.Context, userID, txnID string) (*models.Transaction, error) {
	txn, err := s.repo.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}

	if txn == nil {
		return nil, ErrNotFound
	}

	if txn.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	return txn, nil
}

func (s *DefaultService) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	txns, err := s.repo.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	return txns, nil
}

// GetFinanceSummary totals the caller's income and expenses server-side.
func (s *DefaultService) GetFinanceSummary(ctx context.Context, userID string) (*models.FinanceSummaryResponse, error) {
	income, expense, err := s.repo.GetFinanceSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error computing summary: %w", err)
	}

	return &models.FinanceSummaryResponse{
		Status:  "success",
		Income:  income,
		Expense: expense,
		Balance: income - expense,
	}, nil
}

func validateTransaction(txnType string, amount float64) error {
	if txnType != models.TransactionIncome && txnType != models.TransactionExpense {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, txnType)
	}
	if amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrValidation)
	}
	return nil
}

func (s *DefaultService) CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateTransaction(req.Type, req.Amount); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		OwnerID:     userID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
	}

	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	return txn, nil
}

func (s *DefaultService) UpdateTransaction(ctx context.Context, userID, txnID string, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := s.getOwnedTransaction(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}

	if err := validateTransaction(req.Type, req.Amount); err != nil {
		return nil, err
	}

	txn.Type = req.Type
	txn.Amount = req.Amount
	txn.Description = req.Description
	txn.Date = req.Date
	txn.Category = req.Category

	if err := s.repo.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}

	return txn, nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, userID, txnID string) error {
	txn, err := s.getOwnedTransaction(ctx, userID, txnID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTransaction(ctx, txn.ID); err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}

	return nil
}
