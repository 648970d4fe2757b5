package handlers_test

import (
	"net/http"
	"testing"

	"vendrefacile/internal/repos"
)

func TestOpenConversationEndpoint(t *testing.T) {
	app := newTestApp(t)
	buyer := login(t, app, buyerEmail)
	seller := login(t, app, sellerEmail)

	// The seeded thread on annonce 1 already exists for this buyer.
	resp := doJSON(t, app, "POST", "/api/conversations", buyer, map[string]any{"annonce_id": 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("existing thread: status %d", resp.StatusCode)
	}
	var conv repos.ConversationRow
	decode(t, resp, &conv)
	if conv.ID != 1 {
		t.Fatalf("existing thread: got id %d", conv.ID)
	}

	resp = doJSON(t, app, "POST", "/api/conversations", buyer, map[string]any{"annonce_id": 2})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("new thread: status %d", resp.StatusCode)
	}
	decode(t, resp, &conv)
	if conv.AnnonceID != 2 {
		t.Fatalf("new thread: %+v", conv)
	}

	resp = doJSON(t, app, "POST", "/api/conversations", seller, map[string]any{"annonce_id": 1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("own listing: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/conversations", buyer, map[string]any{"annonce_id": 999})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing listing: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/conversations", buyer, map[string]any{"annonce_id": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero id: status %d", resp.StatusCode)
	}
}

func TestConversationListEndpoint(t *testing.T) {
	app := newTestApp(t)
	buyer := login(t, app, buyerEmail)

	resp := doJSON(t, app, "GET", "/api/conversations", buyer, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var rows []repos.ConversationRow
	decode(t, resp, &rows)
	if len(rows) != 1 || rows[0].OtherUser != "vendeur_demo" || rows[0].AnnonceTitle != "iPhone 12 128Go" {
		t.Fatalf("list: %+v", rows)
	}
}

func TestMessageEndpoints(t *testing.T) {
	app := newTestApp(t)
	buyer := login(t, app, buyerEmail)
	seller := login(t, app, sellerEmail)

	resp := doJSON(t, app, "GET", "/api/conversations/1/messages", buyer, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("messages: status %d", resp.StatusCode)
	}
	var msgs []repos.MessageRow
	decode(t, resp, &msgs)
	if len(msgs) != 2 || msgs[0].SenderName != "acheteur_demo" {
		t.Fatalf("messages: %+v", msgs)
	}

	resp = doJSON(t, app, "POST", "/api/conversations/1/messages", seller, map[string]any{"content": "Oui, toujours dispo."})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("send: status %d", resp.StatusCode)
	}
	var sent repos.MessageRow
	decode(t, resp, &sent)
	if sent.SenderID != 1 || sent.Content != "Oui, toujours dispo." {
		t.Fatalf("sent: %+v", sent)
	}

	resp = doJSON(t, app, "POST", "/api/conversations/1/messages", buyer, map[string]any{"content": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank content: status %d", resp.StatusCode)
	}
}

func TestMessageAccessIsHiddenFromOutsiders(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"email": "tiers@vendrefacile.local", "password": "password123", "username": "tiers_demo",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	var reg struct {
		Token string `json:"token"`
	}
	decode(t, resp, &reg)

	// A thread you are not part of and a thread that does not exist
	// answer the same way.
	for _, path := range []string{"/api/conversations/1/messages", "/api/conversations/999/messages"} {
		resp = doJSON(t, app, "GET", path, reg.Token, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s: status %d", path, resp.StatusCode)
		}
		resp = doJSON(t, app, "POST", path, reg.Token, map[string]any{"content": "bonjour"})
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s send: status %d", path, resp.StatusCode)
		}
	}
}
