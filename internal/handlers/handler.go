package handlers

import (
	"expense_tracker/internal/logger"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "expense_tracker/docs"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/api/health", h.health)

	// Unified login-or-register endpoint
	router.POST("/api/auth", h.authenticate)

	// Token-protected ledger endpoints
	h.registerExpenseRoutes(router)

	// Live expense feed (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerExpenseRoutes(r *gin.Engine) {
	api := r.Group("/api", h.userIdMiddleware)
	{
		api.POST("/expenses", h.createExpense)
		api.GET("/expenses/history", h.expenseHistory)
		api.DELETE("/expenses/:id", h.deleteExpense)
	}
}
