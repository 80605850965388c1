package jwtPkg

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newExtractApp() *fiber.App {
	app := fiber.New()
	app.Get("/guarded", func(c *fiber.Ctx) error {
		token, err := ExtractToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		return c.SendString(token)
	})
	return app
}

func TestExtractToken_AuthorizationHeader(t *testing.T) {
	app := newExtractApp()

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "header-token" {
		t.Errorf("token = %q, want header-token", body)
	}
}

func TestExtractToken_CookieFallback(t *testing.T) {
	app := newExtractApp()

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "cookie-token"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "cookie-token" {
		t.Errorf("token = %q, want cookie-token", body)
	}
}

func TestExtractToken_HeaderWinsOverCookie(t *testing.T) {
	app := newExtractApp()

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "cookie-token"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "header-token" {
		t.Errorf("token = %q, want the header token", body)
	}
}

func TestExtractToken_MalformedHeader(t *testing.T) {
	app := newExtractApp()

	for _, header := range []string{"Token abc", "Bearer ", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", header)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test(%q): %v", header, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, resp.StatusCode)
		}
	}
}

func TestExtractToken_NothingProvided(t *testing.T) {
	app := newExtractApp()

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestVerifyTokenHeader_SignedCookie(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-access-secret")

	token, _, err := Sign(map[string]interface{}{"id": "user-1"}, time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	app := fiber.New()
	app.Get("/guarded", func(c *fiber.Ctx) error {
		parsed, err := VerifyTokenHeader(c, "JWT_ACCESS_TOKEN_SECRET")
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		if !parsed.Valid {
			return c.Status(fiber.StatusUnauthorized).SendString("invalid token")
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
