package services

import (
	"errors"
	"strings"

	"vendrefacile/internal/domain"
	"vendrefacile/internal/repos"
)

// OpenResult is the broker's success value: the canonical conversation for
// (annonce, buyer), whether this call created it or an earlier one did.
type OpenResult struct {
	Conversation domain.Conversation
	Created      bool
}

// ConversationService brokers buyer/seller threads. Its single invariant is
// one conversation per (annonce, buyer), delegated to the store's unique
// constraint rather than any in-process coordination.
type ConversationService struct {
	Annonces *repos.AnnonceRepo
	Convs    *repos.ConversationRepo
}

func NewConversationService(annonces *repos.AnnonceRepo, convs *repos.ConversationRepo) *ConversationService {
	return &ConversationService{Annonces: annonces, Convs: convs}
}

// Open resolves the seller, rejects self-contact before any write, then
// inserts optimistically. Losing the race to another request is not an
// error: the existing row is fetched and returned as the canonical thread.
func (s *ConversationService) Open(annonceID, buyerID int64) (OpenResult, error) {
	sellerID, err := s.Annonces.OwnerID(annonceID)
	if err != nil {
		return OpenResult{}, err
	}
	if sellerID == buyerID {
		return OpenResult{}, domain.ErrOwnListing
	}

	cv, err := s.Convs.Create(annonceID, buyerID, sellerID)
	if err == nil {
		return OpenResult{Conversation: cv, Created: true}, nil
	}
	if !errors.Is(err, repos.ErrDuplicate) {
		return OpenResult{}, err
	}
	cv, err = s.Convs.ByAnnonceAndBuyer(annonceID, buyerID)
	if err != nil {
		return OpenResult{}, err
	}
	return OpenResult{Conversation: cv, Created: false}, nil
}

func (s *ConversationService) ListForUser(userID int64) ([]repos.ConversationRow, error) {
	return s.Convs.ListForUser(userID)
}

// Messages gates on participation. A missing conversation and a foreign one
// produce the same ErrForbidden so non-participants learn nothing.
func (s *ConversationService) Messages(convID, callerID int64) ([]repos.MessageRow, error) {
	if _, err := s.Convs.ForParticipant(convID, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	return s.Convs.Messages(convID)
}

// Send appends a message from the caller, with the same participant gating
// as Messages.
func (s *ConversationService) Send(convID, callerID int64, content string) (domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, domain.Invalid("content is required")
	}
	if _, err := s.Convs.ForParticipant(convID, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Message{}, domain.ErrForbidden
		}
		return domain.Message{}, err
	}
	return s.Convs.AppendMessage(convID, callerID, content)
}
