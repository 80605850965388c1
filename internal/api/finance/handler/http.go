package financeHandler

import (
	financeService "FinTrackGolang/internal/api/finance/service"
	"FinTrackGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type FinanceHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	financeService financeService.IFinanceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	financeService financeService.IFinanceService,
) *FinanceHandler {
	return &FinanceHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		financeService: financeService,
	}
}

func (h *FinanceHandler) Start(srv fiber.Router) {
	finances := srv.Group("/finances")

	finances.Post("/categories", h.middleware.NewTokenMiddleware, h.CreateCategory)
	finances.Get("/categories", h.middleware.NewTokenMiddleware, h.GetCategories)
	finances.Get("/categories/:id", h.middleware.NewTokenMiddleware, h.GetCategoryByID)
	finances.Put("/categories/:id", h.middleware.NewTokenMiddleware, h.UpdateCategory)
	finances.Delete("/categories/:id", h.middleware.NewTokenMiddleware, h.DeleteCategory)

	finances.Post("/transactions", h.middleware.NewTokenMiddleware, h.CreateTransaction)
	finances.Get("/transactions", h.middleware.NewTokenMiddleware, h.GetTransactions)
	finances.Get("/transactions/report", h.middleware.NewTokenMiddleware, h.GetMonthlyReport)
	finances.Get("/transactions/export", h.middleware.NewTokenMiddleware, h.ExportTransactions)
	finances.Get("/transactions/:id", h.middleware.NewTokenMiddleware, h.GetTransactionByID)
	finances.Delete("/transactions/:id", h.middleware.NewTokenMiddleware, h.DeleteTransaction)

	finances.Post("/goals", h.middleware.NewTokenMiddleware, h.CreateGoal)
	finances.Get("/goals", h.middleware.NewTokenMiddleware, h.GetGoals)
	finances.Get("/goals/:id", h.middleware.NewTokenMiddleware, h.GetGoalByID)
	finances.Put("/goals/:id", h.middleware.NewTokenMiddleware, h.UpdateGoal)
	finances.Delete("/goals/:id", h.middleware.NewTokenMiddleware, h.DeleteGoal)
}
