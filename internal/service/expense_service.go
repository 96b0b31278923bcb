package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

var (
	// ErrExpenseNotFound covers both "no such row" and "owned by someone
	// else"; the two are indistinguishable on purpose.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrValidation marks bad input the handler maps to 400.
	ErrValidation = errors.New("invalid expense")
)

type ExpenseService struct {
	expenseRepo repository.ExpenseRepo
}

func NewExpenseService(expenseRepo repository.ExpenseRepo) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// Create validates the entry and inserts it with the resolved user as owner.
func (s *ExpenseService) Create(ctx context.Context, userID int, p ExpenseParams) (models.Expense, error) {
	if p.Amount <= 0 {
		return models.Expense{}, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	category := strings.TrimSpace(p.Category)
	if category == "" {
		return models.Expense{}, fmt.Errorf("%w: category is required", ErrValidation)
	}

	return s.expenseRepo.Create(ctx, models.Expense{
		UserID:   userID,
		Amount:   p.Amount,
		Date:     p.Date,
		Category: category,
		Notes:    strings.TrimSpace(p.Notes),
	})
}

// History lists the user's expenses newest first, optionally filtered by category.
func (s *ExpenseService) History(ctx context.Context, userID int, category string) ([]models.Expense, error) {
	return s.expenseRepo.ListByUser(ctx, userID, strings.TrimSpace(category))
}

// Delete removes an owned expense. The existence check runs first so the
// caller can distinguish "nothing to delete" from success.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID int) error {
	e, err := s.expenseRepo.GetByIDAndUser(ctx, expenseID, userID)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}
	return s.expenseRepo.Delete(ctx, expenseID, userID)
}
