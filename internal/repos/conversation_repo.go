package repos

import (
	"database/sql"
	"errors"

	"vendrefacile/internal/domain"
)

type ConversationRepo struct {
	gw *Gateway
}

func NewConversationRepo(gw *Gateway) *ConversationRepo { return &ConversationRepo{gw: gw} }

// ErrDuplicate signals that UNIQUE(annonce_id, buyer_id) already holds a row
// for this pair. The broker turns it into a fallback read, never an error.
var ErrDuplicate = errors.New("conversation already exists")

const conversationColumns = `id, annonce_id, buyer_id, seller_id, CAST(created_at AS TEXT) AS created_at`

// Create attempts the optimistic insert. There is deliberately no
// pre-check: the uniqueness constraint is the only guard that holds under
// concurrent attempts from the same buyer.
func (r *ConversationRepo) Create(annonceID, buyerID, sellerID int64) (domain.Conversation, error) {
	var cv domain.Conversation
	err := r.gw.Write.Get(&cv, r.gw.Write.Rebind(`
	  INSERT INTO conversations(annonce_id, buyer_id, seller_id)
	  VALUES(?, ?, ?)
	  RETURNING `+conversationColumns), annonceID, buyerID, sellerID)
	if isUniqueViolation(err) {
		return domain.Conversation{}, ErrDuplicate
	}
	return cv, err
}

// ByAnnonceAndBuyer is the conflict-fallback lookup. It reads the primary:
// the row that just beat us to the insert may not have replicated yet.
func (r *ConversationRepo) ByAnnonceAndBuyer(annonceID, buyerID int64) (domain.Conversation, error) {
	var cv domain.Conversation
	err := r.gw.Write.Get(&cv, r.gw.Write.Rebind(`
	  SELECT `+conversationColumns+` FROM conversations
	  WHERE annonce_id = ? AND buyer_id = ?`), annonceID, buyerID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Conversation{}, domain.ErrNotFound
	}
	return cv, err
}

// ConversationRow annotates a thread with the listing title and the display
// name of the participant who is not the caller.
type ConversationRow struct {
	domain.Conversation
	AnnonceTitle string `db:"annonce_title" json:"annonce_title"`
	OtherUser    string `db:"other_user" json:"other_user"`
}

func (r *ConversationRepo) ListForUser(userID int64) ([]ConversationRow, error) {
	out := []ConversationRow{}
	err := r.gw.Read.Select(&out, r.gw.Read.Rebind(`
	  SELECT cv.id, cv.annonce_id, cv.buyer_id, cv.seller_id, CAST(cv.created_at AS TEXT) AS created_at,
	    a.title AS annonce_title,
	    CASE WHEN cv.buyer_id = ? THEN u2.username ELSE u1.username END AS other_user
	  FROM conversations cv
	  JOIN annonces a ON a.id = cv.annonce_id
	  JOIN users u1 ON u1.id = cv.buyer_id
	  JOIN users u2 ON u2.id = cv.seller_id
	  WHERE cv.buyer_id = ? OR cv.seller_id = ?
	  ORDER BY cv.created_at DESC, cv.id DESC`), userID, userID, userID)
	return out, err
}

// ForParticipant fetches the conversation only if userID is its buyer or
// seller. An absent row and a non-participant both come back as
// domain.ErrNotFound so callers cannot probe for existence.
func (r *ConversationRepo) ForParticipant(convID, userID int64) (domain.Conversation, error) {
	var cv domain.Conversation
	err := r.gw.Write.Get(&cv, r.gw.Write.Rebind(`
	  SELECT `+conversationColumns+` FROM conversations
	  WHERE id = ? AND (buyer_id = ? OR seller_id = ?)`), convID, userID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Conversation{}, domain.ErrNotFound
	}
	return cv, err
}

// MessageRow annotates a message with its sender's display name.
type MessageRow struct {
	domain.Message
	SenderName string `db:"sender_name" json:"sender_name"`
}

func (r *ConversationRepo) Messages(convID int64) ([]MessageRow, error) {
	out := []MessageRow{}
	err := r.gw.Read.Select(&out, r.gw.Read.Rebind(`
	  SELECT m.id, m.conversation_id, m.sender_id, m.content, m.read,
	    CAST(m.created_at AS TEXT) AS created_at, u.username AS sender_name
	  FROM messages m
	  JOIN users u ON u.id = m.sender_id
	  WHERE m.conversation_id = ?
	  ORDER BY m.created_at ASC, m.id ASC`), convID)
	return out, err
}

func (r *ConversationRepo) AppendMessage(convID, senderID int64, content string) (domain.Message, error) {
	var m domain.Message
	err := r.gw.Write.Get(&m, r.gw.Write.Rebind(`
	  INSERT INTO messages(conversation_id, sender_id, content)
	  VALUES(?, ?, ?)
	  RETURNING id, conversation_id, sender_id, content, read, CAST(created_at AS TEXT) AS created_at`),
		convID, senderID, content)
	return m, err
}
