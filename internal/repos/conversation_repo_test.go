package repos

import (
	"errors"
	"testing"

	"vendrefacile/internal/domain"
)

func TestCreateConversationDuplicate(t *testing.T) {
	r := NewConversationRepo(testGateway(t))

	// The seed already holds the (iPhone, buyer) thread.
	if _, err := r.Create(1, 2, 1); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}

	cv, err := r.ByAnnonceAndBuyer(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if cv.BuyerID != 2 || cv.SellerID != 1 {
		t.Fatalf("fallback row: %+v", cv)
	}

	// A different annonce for the same buyer is a fresh thread.
	fresh, err := r.Create(2, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.ID == cv.ID {
		t.Fatal("new thread reused an id")
	}
}

func TestForParticipantGating(t *testing.T) {
	gw := testGateway(t)
	r := NewConversationRepo(gw)

	if _, err := gw.Write.Exec(gw.Write.Rebind(`
	  INSERT INTO users(email, password_hash, username) VALUES(?, ?, ?)`),
		"tiers@vendrefacile.local", "x", "tiers_demo"); err != nil {
		t.Fatal(err)
	}

	if _, err := r.ForParticipant(1, 1); err != nil {
		t.Fatalf("seller is a participant: %v", err)
	}
	if _, err := r.ForParticipant(1, 2); err != nil {
		t.Fatalf("buyer is a participant: %v", err)
	}

	// Non-participant and absent conversation must be indistinguishable.
	_, errStranger := r.ForParticipant(1, 3)
	_, errMissing := r.ForParticipant(999, 3)
	if !errors.Is(errStranger, domain.ErrNotFound) || !errors.Is(errMissing, domain.ErrNotFound) {
		t.Fatalf("gating errors differ: %v vs %v", errStranger, errMissing)
	}
}

func TestMessagesOrderAndAppend(t *testing.T) {
	r := NewConversationRepo(testGateway(t))

	m, err := r.AppendMessage(1, 2, "Je peux passer samedi.")
	if err != nil {
		t.Fatal(err)
	}
	if m.ID == 0 || m.SenderID != 2 {
		t.Fatalf("appended message: %+v", m)
	}

	msgs, err := r.Messages(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("want 3 messages, got %d", len(msgs))
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].ID <= msgs[i-1].ID {
			t.Fatalf("messages not oldest-first: %+v", msgs)
		}
	}
	if msgs[0].SenderName != "acheteur_demo" {
		t.Fatalf("sender name missing: %+v", msgs[0])
	}
}

func TestListForUserShowsOtherParticipant(t *testing.T) {
	r := NewConversationRepo(testGateway(t))

	asBuyer, err := r.ListForUser(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(asBuyer) != 1 || asBuyer[0].OtherUser != "vendeur_demo" {
		t.Fatalf("buyer view: %+v", asBuyer)
	}
	if asBuyer[0].AnnonceTitle != "iPhone 12 128Go" {
		t.Fatalf("missing annonce title: %+v", asBuyer[0])
	}

	asSeller, err := r.ListForUser(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(asSeller) != 1 || asSeller[0].OtherUser != "acheteur_demo" {
		t.Fatalf("seller view: %+v", asSeller)
	}
}
