package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"expense_tracker/internal/models"
)

// ErrPhoneNumberTaken reports an insert rejected by the UNIQUE constraint on
// phone_number. The auth resolver treats it as a concurrent registration and
// retries the request as a login.
var ErrPhoneNumberTaken = errors.New("phone number already registered")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (phone_number, password_hash) VALUES (?, ?)`
	selectUserByPhoneSQL = `SELECT id, phone_number, password_hash FROM users WHERE phone_number = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, phoneNumber, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, phoneNumber, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", phoneNumber, ErrPhoneNumberTaken)
		}
		return 0, fmt.Errorf("insert user %q: %w", phoneNumber, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", phoneNumber, err)
	}
	return int(lastID), nil
}

// GetByPhoneNumber fetches a user by phone number. Returns (nil, nil) if not found.
func (r *UserRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByPhoneSQL, phoneNumber).
		Scan(&u.ID, &u.PhoneNumber, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", phoneNumber, err)
	}
	return &u, nil
}

// isUniqueViolation matches the SQLite unique-constraint error text
// (modernc.org/sqlite reports "UNIQUE constraint failed: <table>.<column>").
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
