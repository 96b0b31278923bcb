package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"expense_tracker/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockExpenseRepo(t *testing.T) (*ExpenseSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewExpenseSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestExpenseSQLite_Create(t *testing.T) {
	date := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)

	t.Run("success with notes", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertExpenseSQL)).
			WithArgs(7, 12.5, "2024-01-01 12:30:00", "food", "lunch").
			WillReturnResult(sqlmock.NewResult(3, 1))

		got, err := repo.Create(context.Background(), models.Expense{
			UserID:   7,
			Amount:   12.5,
			Date:     date,
			Category: "food",
			Notes:    "lunch",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != 3 {
			t.Fatalf("expected assigned id 3, got %d", got.ID)
		}
		if got.UserID != 7 {
			t.Fatalf("owner changed during insert: %d", got.UserID)
		}
	})

	t.Run("empty notes stored as NULL", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertExpenseSQL)).
			WithArgs(7, 9.0, "2024-01-01 12:30:00", "food", nil).
			WillReturnResult(sqlmock.NewResult(4, 1))

		_, err := repo.Create(context.Background(), models.Expense{
			UserID:   7,
			Amount:   9.0,
			Date:     date,
			Category: "food",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertExpenseSQL)).
			WithArgs(7, 9.0, "2024-01-01 12:30:00", "food", nil).
			WillReturnError(errors.New("db exec failed"))

		_, err := repo.Create(context.Background(), models.Expense{
			UserID:   7,
			Amount:   9.0,
			Date:     date,
			Category: "food",
		})
		if err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestExpenseSQLite_ListByUser(t *testing.T) {
	newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no filter, ordered by date desc", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "date", "category", "notes"}).
			AddRow(2, 7, 9.0, newer, "transport", nil).
			AddRow(1, 7, 12.5, older, "food", "lunch")
		mock.ExpectQuery(regexp.QuoteMeta(selectExpensesByUserSQL + " ORDER BY date DESC")).
			WithArgs(7).
			WillReturnRows(rows)

		got, err := repo.ListByUser(context.Background(), 7, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(got))
		}
		if got[0].ID != 2 || got[1].ID != 1 {
			t.Fatalf("order not preserved: %+v", got)
		}
		if got[1].Notes != "lunch" {
			t.Fatalf("notes not scanned: %+v", got[1])
		}
		if got[0].Notes != "" {
			t.Fatalf("NULL notes should scan as empty string: %+v", got[0])
		}
	})

	t.Run("category filter appended", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "date", "category", "notes"}).
			AddRow(1, 7, 12.5, older, "food", nil)
		mock.ExpectQuery(regexp.QuoteMeta(selectExpensesByUserSQL+" AND category = ? ORDER BY date DESC")).
			WithArgs(7, "food").
			WillReturnRows(rows)

		got, err := repo.ListByUser(context.Background(), 7, "food")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Category != "food" {
			t.Fatalf("unexpected rows: %+v", got)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectExpensesByUserSQL + " ORDER BY date DESC")).
			WithArgs(7).
			WillReturnError(errors.New("db query failed"))

		if _, err := repo.ListByUser(context.Background(), 7, ""); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestExpenseSQLite_GetByIDAndUser(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "date", "category", "notes"}).
			AddRow(15, 7, 12.5, date, "food", nil)
		mock.ExpectQuery(regexp.QuoteMeta(selectExpenseByIDAndUserSQL)).
			WithArgs(15, 7).
			WillReturnRows(rows)

		e, err := repo.GetByIDAndUser(context.Background(), 15, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e == nil || e.ID != 15 || e.UserID != 7 {
			t.Fatalf("unexpected expense: %+v", e)
		}
	})

	t.Run("not found or not owned", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectExpenseByIDAndUserSQL)).
			WithArgs(15, 8).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "date", "category", "notes"}))

		e, err := repo.GetByIDAndUser(context.Background(), 15, 8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e != nil {
			t.Fatalf("expected nil for another user's row, got %+v", e)
		}
	})
}

func TestExpenseSQLite_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteExpenseSQL)).
			WithArgs(15, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), 15, 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockExpenseRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteExpenseSQL)).
			WithArgs(15, 7).
			WillReturnError(errors.New("db exec failed"))

		if err := repo.Delete(context.Background(), 15, 7); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}
