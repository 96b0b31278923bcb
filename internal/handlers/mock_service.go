package handlers

import (
	"context"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	authResult service.AuthResult
	authErr    error
	parseID    int
	parseErr   error

	lastAuthPhone    string
	lastAuthPassword string
	lastParseToken   string
	authCalls        int
}

func (m *mockAuth) Authenticate(ctx context.Context, phoneNumber, password string) (service.AuthResult, error) {
	m.authCalls++
	m.lastAuthPhone = phoneNumber
	m.lastAuthPassword = password
	return m.authResult, m.authErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockLedger struct {
	createResp models.Expense
	createErr  error
	histResp   []models.Expense
	histErr    error
	deleteErr  error

	lastCreateUserID  int
	lastCreateParams  service.ExpenseParams
	lastHistUserID    int
	lastHistCategory  string
	lastDeleteUserID  int
	lastDeleteExpense int
	createCalls       int
	deleteCalls       int
}

func (m *mockLedger) Create(ctx context.Context, userID int, p service.ExpenseParams) (models.Expense, error) {
	m.createCalls++
	m.lastCreateUserID = userID
	m.lastCreateParams = p
	return m.createResp, m.createErr
}

func (m *mockLedger) History(ctx context.Context, userID int, category string) ([]models.Expense, error) {
	m.lastHistUserID = userID
	m.lastHistCategory = category
	return m.histResp, m.histErr
}

func (m *mockLedger) Delete(ctx context.Context, userID, expenseID int) error {
	m.deleteCalls++
	m.lastDeleteUserID = userID
	m.lastDeleteExpense = expenseID
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
