package analysisHandler

import (
	analysisService "FinTrackGolang/internal/api/analysis/service"
	"FinTrackGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	analysisService analysisService.IAnalysisService,
) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		analysisService: analysisService,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	analysis := srv.Group("/analysis")

	analysis.Post("/insights", h.middleware.NewTokenMiddleware, h.GenerateInsight)
	analysis.Get("/insights", h.middleware.NewTokenMiddleware, h.GetInsights)
	analysis.Get("/insights/:id", h.middleware.NewTokenMiddleware, h.GetInsightByID)
	analysis.Delete("/insights/:id", h.middleware.NewTokenMiddleware, h.DeleteInsight)

	analysis.Post("/chat", h.middleware.NewTokenMiddleware, h.Chat)
	analysis.Get("/chat", h.middleware.NewTokenMiddleware, h.GetChatHistory)
	analysis.Delete("/chat", h.middleware.NewTokenMiddleware, h.ClearChatHistory)
}
