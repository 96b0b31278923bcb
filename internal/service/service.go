package service

import (
	"context"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

// Authorization is the unified login-or-register flow plus token verification.
type Authorization interface {
	Authenticate(ctx context.Context, phoneNumber, password string) (AuthResult, error)
	ParseToken(accessToken string) (int, error)
}

// Ledger exposes owner-scoped expense operations. The user id always comes
// from a verified token, never from the request body.
type Ledger interface {
	Create(ctx context.Context, userID int, p ExpenseParams) (models.Expense, error)
	History(ctx context.Context, userID int, category string) ([]models.Expense, error)
	Delete(ctx context.Context, userID, expenseID int) error
}

// AuthResult is the outcome of a successful authentication.
// Created distinguishes implicit registration from a plain login.
type AuthResult struct {
	Token   string
	UserID  int
	Created bool
}

// ExpenseParams carries validated input for a new ledger entry.
type ExpenseParams struct {
	Amount   float64
	Date     time.Time
	Category string
	Notes    string
}

type Service struct {
	Authorization
	Ledger
}

// NewService wires the repository layer into concrete services. The signing
// secret is injected here so both services are testable with fixed secrets.
func NewService(repos *repository.Repository, signingSecret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, signingSecret, tokenTTL),
		Ledger:        NewExpenseService(repos.Expenses),
	}
}
