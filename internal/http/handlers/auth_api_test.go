package handlers_test

import (
	"net/http"
	"testing"

	"vendrefacile/internal/domain"
)

func TestRegisterLoginProfile(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]any{
		"email":    "nina@example.com",
		"password": "s3cret-mot",
		"username": "nina75",
		"city":     "Marseille",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	var reg struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	decode(t, resp, &reg)
	if reg.User.ID == 0 || reg.Token == "" || reg.User.Role != domain.RoleUser {
		t.Fatalf("register payload: %+v", reg)
	}

	// Same email again is a conflict.
	resp = doJSON(t, app, "POST", "/api/auth/register", "", map[string]any{
		"email":    "nina@example.com",
		"password": "s3cret-mot",
		"username": "autre_nom",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: status %d", resp.StatusCode)
	}

	// Fresh credentials log in.
	resp = doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email": "nina@example.com", "password": "s3cret-mot",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	var in struct {
		Token string `json:"token"`
	}
	decode(t, resp, &in)

	resp = doJSON(t, app, "GET", "/api/profile", in.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile: status %d", resp.StatusCode)
	}
	var u domain.User
	decode(t, resp, &u)
	if u.Username != "nina75" || u.City != "Marseille" {
		t.Fatalf("profile: %+v", u)
	}

	resp = doJSON(t, app, "PUT", "/api/profile", in.Token, map[string]string{"city": "Nice"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile update: status %d", resp.StatusCode)
	}
	decode(t, resp, &u)
	if u.City != "Nice" || u.Username != "nina75" {
		t.Fatalf("patched profile: %+v", u)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email": sellerEmail, "password": "wrong-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: status %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "password123",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown email: status %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/profile", "/api/annonces/mine", "/api/conversations", "/api/favorites"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s without token: status %d", path, resp.StatusCode)
		}
	}
	resp := doJSON(t, app, "GET", "/api/profile", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: status %d", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []map[string]any{
		{"email": "not-an-email", "password": "s3cret-mot", "username": "ok_name"},
		{"email": "a@b.fr", "password": "short", "username": "ok_name"},
		{"email": "a@b.fr", "password": "s3cret-mot", "username": "x"},
	}
	for i, body := range cases {
		resp := doJSON(t, app, "POST", "/api/auth/register", "", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("case %d: status %d", i, resp.StatusCode)
		}
	}
}
