package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"vendrefacile/internal/auth"
	"vendrefacile/internal/http/handlers"
	"vendrefacile/internal/repos"
)

// newTestApp wires the real routes over an in-memory seeded database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gw, err := repos.Open(":memory:", ":memory:")
	if err != nil {
		t.Fatalf("open gateway: %v", err)
	}
	t.Cleanup(func() { _ = gw.Write.Close() })

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	app := fiber.New()
	handlers.NewDeps(gw, jwtSvc).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// login authenticates one of the seeded demo users and returns its token.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	if out.Token == "" {
		t.Fatal("empty token")
	}
	return out.Token
}

const (
	sellerEmail = "seller@vendrefacile.local"
	buyerEmail  = "buyer@vendrefacile.local"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, "GET", "/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: status %d", resp.StatusCode)
	}
}
