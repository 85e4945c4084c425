package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type Conversation struct {
	ID           uint                      `gorm:"primaryKey"`
	ContestID    uint                      `gorm:"index"`
	AuthorID     uint                      `gorm:"not null"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
}

type ConversationParticipant struct {
	ConversationID uint `gorm:"primaryKey"`
	UserID         uint `gorm:"primaryKey"`
}

type Message struct {
	ID             uint   `gorm:"primaryKey"`
	ConversationID uint   `gorm:"index;not null"`
	SenderID       uint   `gorm:"not null"`
	Body           string `gorm:"not null"`
	CreatedAt      time.Time
}

type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{
		db: db,
	}
}

func (d *ConversationDAO) FindByID(ctx context.Context, id uint) (Conversation, error) {
	var c Conversation

	result := d.db.WithContext(ctx).Preload("Participants").First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Conversation{}, ErrConversationNotFound
		}

		return Conversation{}, result.Error
	}

	return c, nil
}

func (d *ConversationDAO) FindMessages(ctx context.Context, conversationID uint, limit, offset int) ([]Message, error) {
	var messages []Message

	result := d.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}

func (d *ConversationDAO) InsertMessage(ctx context.Context, m Message) (Message, error) {
	result := d.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return Message{}, ErrConversationNotFound
		}

		return Message{}, updateFailed(result.Error)
	}

	return m, nil
}
