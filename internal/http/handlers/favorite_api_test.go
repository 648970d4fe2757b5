package handlers_test

import (
	"net/http"
	"testing"

	"vendrefacile/internal/repos"
)

func TestFavoriteEndpoints(t *testing.T) {
	app := newTestApp(t)
	buyer := login(t, app, buyerEmail)

	resp := doJSON(t, app, "GET", "/api/favorites", buyer, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var rows []repos.FavoriteRow
	decode(t, resp, &rows)
	if len(rows) != 1 || rows[0].Title != "iPhone 12 128Go" {
		t.Fatalf("list: %+v", rows)
	}

	// The seeded favorite on annonce 1 makes this a duplicate.
	resp = doJSON(t, app, "POST", "/api/favorites/1", buyer, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/favorites/2", buyer, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/favorites/999", buyer, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing annonce: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "DELETE", "/api/favorites/2", buyer, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove: status %d", resp.StatusCode)
	}
	// Removing again is a no-op, not an error.
	resp = doJSON(t, app, "DELETE", "/api/favorites/2", buyer, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove twice: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/favorites", buyer, nil)
	decode(t, resp, &rows)
	if len(rows) != 1 {
		t.Fatalf("after remove: %+v", rows)
	}
}
