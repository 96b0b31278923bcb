package repository

import (
	"context"
	"database/sql"

	"expense_tracker/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, phoneNumber, hash string) (int, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error)
}

// ExpenseRepo persists ledger entries. Every query is owner-scoped: a user id
// is part of each statement, never applied as an afterthought.
type ExpenseRepo interface {
	Create(ctx context.Context, e models.Expense) (models.Expense, error)
	ListByUser(ctx context.Context, userID int, category string) ([]models.Expense, error)
	GetByIDAndUser(ctx context.Context, id, userID int) (*models.Expense, error)
	Delete(ctx context.Context, id, userID int) error
}

type Repository struct {
	Auth     Authorization
	Expenses ExpenseRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(db),
		Expenses: NewExpenseSQLite(db),
	}
}
