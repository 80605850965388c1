package middleware

import (
	jwtPkg "FinTrackGolang/pkg/jwt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func newGuardedApp(t *testing.T) *fiber.App {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	m := New(log)

	app := fiber.New()
	app.Get("/me", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		user, err := jwtPkg.GetUserLoginData(c)
		if err != nil {
			return err
		}
		return c.SendString(user.Username)
	})
	return app
}

func signAccessToken(t *testing.T) string {
	t.Helper()

	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       "user-1",
		"username": "maria",
		"email":    "maria@example.com",
	}, time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return token
}

func TestTokenMiddleware_AccessCookie(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-access-secret")
	app := newGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: jwtPkg.AccessCookieName, Value: signAccessToken(t)})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "maria" {
		t.Errorf("user = %q, want maria", body)
	}
}

func TestTokenMiddleware_AuthorizationHeader(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-access-secret")
	app := newGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signAccessToken(t))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestTokenMiddleware_MalformedHeaderRejected(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-access-secret")
	app := newGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token not-a-bearer")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestTokenMiddleware_MissingClaimsRejected(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-access-secret")
	app := newGuardedApp(t)

	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": "user-1"}, time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: jwtPkg.AccessCookieName, Value: token})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
