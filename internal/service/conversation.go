package service

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
)

const maxMessagesPage = 100

type ConversationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Conversation, error)
	FindMessages(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error)
	AddMessage(ctx context.Context, m domain.Message) (domain.Message, error)
}

type ConversationService struct {
	repo ConversationRepository
}

func NewConversationService(repo ConversationRepository) *ConversationService {
	return &ConversationService{
		repo: repo,
	}
}

func (s *ConversationService) Messages(ctx context.Context, conversationID, viewerID uint, limit, offset int) ([]domain.Message, error) {
	if err := s.checkMember(ctx, conversationID, viewerID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > maxMessagesPage {
		limit = maxMessagesPage
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.repo.FindMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMessages -> %w", err)
	}

	return messages, nil
}

func (s *ConversationService) PostMessage(ctx context.Context, conversationID, senderID uint, body string) (domain.Message, error) {
	if err := s.checkMember(ctx, conversationID, senderID); err != nil {
		return domain.Message{}, err
	}

	msg, err := s.repo.AddMessage(ctx, domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.AddMessage -> %w", err)
	}

	return msg, nil
}

func (s *ConversationService) checkMember(ctx context.Context, conversationID, userID uint) error {
	conv, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !conv.HasParticipant(userID) {
		return ErrNotConversationMember
	}

	return nil
}
