package authHandler

import (
	"FinTrackGolang/internal/api/auth"
	authService "FinTrackGolang/internal/api/auth/service"
	contextPkg "FinTrackGolang/pkg/context"
	"FinTrackGolang/pkg/handlerUtil"
	jwtPkg "FinTrackGolang/pkg/jwt"
	"FinTrackGolang/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func setAuthCookies(ctx *fiber.Ctx, res auth.LoginUserResponse) {
	ctx.Cookie(&fiber.Cookie{
		Name:     jwtPkg.AccessCookieName,
		Value:    res.AccessToken,
		Expires:  time.Unix(res.ExpiresAt, 0),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	ctx.Cookie(&fiber.Cookie{
		Name:     jwtPkg.RefreshCookieName,
		Value:    res.RefreshToken,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func clearAuthCookies(ctx *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	ctx.Cookie(&fiber.Cookie{Name: jwtPkg.AccessCookieName, Value: "", Expires: expired, HTTPOnly: true})
	ctx.Cookie(&fiber.Cookie{Name: jwtPkg.RefreshCookieName, Value: "", Expires: expired, HTTPOnly: true})
}

func (h *AuthHandler) HandleRegister(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing register request")

	var req auth.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.authService.User().RegisterUser(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "register_user")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, fiber.Map{
			"message": "User registered successfully",
		})
	}
}

func (h *AuthHandler) HandleLogin(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.LoginUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.authService.Auth().Login(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "login")
	}

	setAuthCookies(ctx, res)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AuthHandler) HandleRefreshToken(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.RefreshTokenRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken = ctx.Cookies(jwtPkg.RefreshCookieName)
	}
	if refreshToken == "" {
		return errHandler.HandleUnauthorized(ctx, requestID, "No refresh token provided")
	}

	res, err := h.authService.Auth().RefreshToken(c, refreshToken)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "refresh_token")
	}

	setAuthCookies(ctx, res)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *AuthHandler) HandleLogout(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	refreshToken := ctx.Cookies(jwtPkg.RefreshCookieName)

	if err := h.authService.Auth().Logout(c, refreshToken); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "logout")
	}

	clearAuthCookies(ctx)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Logged out successfully",
		})
	}
}

func (h *AuthHandler) HandleGoogleLogin(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	requestID := h.middleware.GetRequestID(ctx)

	authURL, err := h.authService.Auth().LoginGoogle()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "google_login")
	}

	return ctx.Redirect(authURL.String(), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) CallBackFromGoogle(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	code := ctx.Query("code")
	if code == "" {
		return errHandler.HandleUnauthorized(ctx, requestID, "Missing authorization code")
	}

	payload, err := h.googleProvider.GetUserExchangeToken(ctx, code)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "google_exchange")
	}

	googleUser, err := authService.DecodeGoogleUser(payload)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "google_decode")
	}

	res, err := h.authService.Auth().UserLoginGoogle(c, googleUser)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "google_user_login")
	}

	setAuthCookies(ctx, res)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
