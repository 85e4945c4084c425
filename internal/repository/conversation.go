package repository

import (
	"context"
	"fmt"

	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/repository/dao"
)

var ErrConversationNotFound = dao.ErrConversationNotFound

type ConversationDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Conversation, error)
	FindMessages(ctx context.Context, conversationID uint, limit, offset int) ([]dao.Message, error)
	InsertMessage(ctx context.Context, m dao.Message) (dao.Message, error)
}

type ConversationRepository struct {
	dao ConversationDAO
}

func NewConversationRepository(dao ConversationDAO) *ConversationRepository {
	return &ConversationRepository{
		dao: dao,
	}
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uint) (domain.Conversation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	ids := make([]uint, len(found.Participants))
	for i, p := range found.Participants {
		ids[i] = p.UserID
	}

	return domain.Conversation{
		ID:             found.ID,
		ContestID:      found.ContestID,
		AuthorID:       found.AuthorID,
		ParticipantIDs: ids,
		CreatedAt:      found.CreatedAt,
	}, nil
}

func (r *ConversationRepository) FindMessages(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error) {
	found, err := r.dao.FindMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMessages -> %w", err)
	}

	out := make([]domain.Message, len(found))
	for i, m := range found {
		out[i] = messageDaoToDomain(m)
	}

	return out, nil
}

func (r *ConversationRepository) AddMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	created, err := r.dao.InsertMessage(ctx, dao.Message{
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.InsertMessage -> %w", err)
	}

	return messageDaoToDomain(created), nil
}

func messageDaoToDomain(m dao.Message) domain.Message {
	return domain.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}
