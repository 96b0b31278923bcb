package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errMissingFields   = "Missing required fields"
	errInvalidDate     = "invalid date; use RFC3339 or YYYY-MM-DD"
	errInvalidID       = "Invalid expense ID"
	errExpenseNotFound = "Expense not found or not authorized to delete"
	errCreateExpense   = "Failed to create expense"
	errFetchHistory    = "Failed to fetch history"
	errDeleteExpense   = "Failed to delete expense"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Request DTO for creating an expense.
type expenseRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Date     string  `json:"date" binding:"required"` // RFC3339 or YYYY-MM-DD
	Category string  `json:"category" binding:"required"`
	Notes    string  `json:"notes,omitempty"`
}

// parseExpenseDate accepts RFC3339, "YYYY-MM-DD HH:MM:SS", or "YYYY-MM-DD".
func parseExpenseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(layoutDateTime, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(layoutDate, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"message": userMsg})
}

// @Summary      Create expense
// @Description  Inserts a ledger entry owned by the authenticated user.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      expenseRequest  true  "Expense payload"
// @Success      201   {object}  models.Expense
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/expenses [post]
// @Security     BearerAuth
func (h *Handler) createExpense(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingFields})
		return
	}

	date, err := parseExpenseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidDate})
		return
	}

	expense, err := h.services.Ledger.Create(c.Request.Context(), userID, service.ExpenseParams{
		Amount:   req.Amount,
		Date:     date,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errMissingFields})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateExpense, "expense_create_failed", err, "user_id", userID)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// @Summary      Expense history
// @Description  Lists the authenticated user's expenses, newest first.
// @Tags         expenses
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {array}   models.Expense
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/expenses/history [get]
// @Security     BearerAuth
func (h *Handler) expenseHistory(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	history, err := h.services.Ledger.History(c.Request.Context(), userID, c.Query("category"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errFetchHistory, "expense_history_failed", err, "user_id", userID)
		return
	}
	if history == nil {
		history = []models.Expense{}
	}

	c.JSON(http.StatusOK, history)
}

// @Summary      Delete expense
// @Description  Deletes an expense the authenticated user owns.
// @Tags         expenses
// @Produce      json
// @Param        id  path  int  true  "Expense id"
// @Success      204  "no content"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/expenses/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteExpense(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	expenseID, err := strconv.Atoi(c.Param("id"))
	if err != nil || expenseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidID})
		return
	}

	if err := h.services.Ledger.Delete(c.Request.Context(), userID, expenseID); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errExpenseNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteExpense, "expense_delete_failed", err, "user_id", userID, "expense_id", expenseID)
		return
	}

	c.Status(http.StatusNoContent)
}
