package authHandler

import (
	authService "FinTrackGolang/internal/api/auth/service"
	"FinTrackGolang/internal/middleware"
	"FinTrackGolang/pkg/google"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log            *logrus.Logger
	authService    authService.AuthService
	validator      *validator.Validate
	middleware     middleware.Middleware
	googleProvider google.ItfGoogle
}

func New(
	log *logrus.Logger,
	as authService.AuthService,
	validate *validator.Validate,
	middleware middleware.Middleware,
	googleProvider google.ItfGoogle,
) *AuthHandler {
	return &AuthHandler{
		log:            log,
		authService:    as,
		validator:      validate,
		middleware:     middleware,
		googleProvider: googleProvider,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/login", h.middleware.NewRateLimiter, h.HandleLogin)
	auth.Post("/refresh", h.middleware.NewRateLimiter, h.HandleRefreshToken)
	auth.Post("/logout", h.HandleLogout)
	auth.Get("/login-gl", h.HandleGoogleLogin)
	auth.Get("/callback-gl", h.CallBackFromGoogle)

	users := srv.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Get("/profile", h.middleware.NewTokenMiddleware, h.HandleGetProfile)
	users.Patch("/profile", h.middleware.NewTokenMiddleware, h.HandleUpdateProfile)
	users.Delete("/profile", h.middleware.NewTokenMiddleware, h.HandleDeleteUser)

	password := srv.Group("/password")
	password.Post("/forgot", h.middleware.NewRateLimiter, h.HandleForgotPassword)
	password.Patch("/reset", h.middleware.NewRateLimiter, h.HandleResetPassword)
}
