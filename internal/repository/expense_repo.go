package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expense_tracker/internal/models"
)

type ExpenseSQLite struct {
	db *sql.DB
}

func NewExpenseSQLite(db *sql.DB) *ExpenseSQLite { return &ExpenseSQLite{db: db} }

var _ ExpenseRepo = (*ExpenseSQLite)(nil)

const (
	insertExpenseSQL = `INSERT INTO expenses (user_id, amount, date, category, notes) VALUES (?, ?, ?, ?, ?)`

	selectExpensesByUserSQL = `SELECT id, user_id, amount, date, category, notes FROM expenses WHERE user_id = ?`

	selectExpenseByIDAndUserSQL = `SELECT id, user_id, amount, date, category, notes FROM expenses WHERE id = ? AND user_id = ?`

	deleteExpenseSQL = `DELETE FROM expenses WHERE id = ? AND user_id = ?`

	// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"
	sqliteTimeLayout = "2006-01-02 15:04:05"
)

// Create inserts a new expense for its owner and returns it with the assigned id.
func (r *ExpenseSQLite) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	} else {
		e.Date = e.Date.UTC()
	}

	// empty notes are stored as NULL
	var notes sql.NullString
	if e.Notes != "" {
		notes = sql.NullString{String: e.Notes, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, insertExpenseSQL,
		e.UserID,
		e.Amount,
		e.Date.Format(sqliteTimeLayout),
		e.Category,
		notes,
	)
	if err != nil {
		return models.Expense{}, fmt.Errorf("insert expense for user %d: %w", e.UserID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Expense{}, fmt.Errorf("get last insert id for expense: %w", err)
	}
	e.ID = int(lastID)
	return e, nil
}

// ListByUser returns the user's expenses, newest first, optionally filtered by category.
func (r *ExpenseSQLite) ListByUser(ctx context.Context, userID int, category string) ([]models.Expense, error) {
	q := selectExpensesByUserSQL
	args := []any{userID}
	if category != "" {
		q += " AND category = ?"
		args = append(args, category)
	}
	q += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Expense, 0, 32)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses for user %d: %w", userID, err)
	}
	return out, nil
}

// GetByIDAndUser fetches a single expense scoped to its owner.
// Returns (nil, nil) if no such owned row exists.
func (r *ExpenseSQLite) GetByIDAndUser(ctx context.Context, id, userID int) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, selectExpenseByIDAndUserSQL, id, userID)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select expense %d for user %d: %w", id, userID, err)
	}
	return &e, nil
}

// Delete removes an expense scoped to its owner. Deleting a row that is
// already gone is not an error; callers check existence first.
func (r *ExpenseSQLite) Delete(ctx context.Context, id, userID int) error {
	if _, err := r.db.ExecContext(ctx, deleteExpenseSQL, id, userID); err != nil {
		return fmt.Errorf("delete expense %d for user %d: %w", id, userID, err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (models.Expense, error) {
	var (
		e     models.Expense
		notes sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Date, &e.Category, &notes); err != nil {
		return models.Expense{}, err
	}
	e.Date = e.Date.UTC()
	if notes.Valid {
		e.Notes = notes.String
	}
	return e, nil
}
